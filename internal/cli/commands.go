package cli

import (
	"fmt"

	"github.com/arthur-debert/eventmgr/internal/commands"
	"github.com/arthur-debert/eventmgr/internal/version"
	"github.com/arthur-debert/eventmgr/pkg/cobrax/topics"
	"github.com/arthur-debert/eventmgr/pkg/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globalFlags are the persistent flags shared by every subcommand
type globalFlags struct {
	verbosity  int
	configPath string
	wide       bool
	noStrict   bool
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:     "eventmgr",
		Short:   commands.MsgRootShort,
		Long:    commands.MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(flags.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&flags.verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Config file (TOML or YAML)")
	rootCmd.PersistentFlags().BoolVar(&flags.wide, "wide", false, "Accept multi-character source units in handler expressions")
	rootCmd.PersistentFlags().BoolVar(&flags.noStrict, "no-strict", false, "Allow binding and triggering unregistered events")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newParseCmd(flags))
	rootCmd.AddCommand(newInspectCmd(flags))
	rootCmd.AddCommand(newTriggerCmd(flags))

	installTopics(rootCmd, topics.NewGlamourRenderer())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: commands.MsgVersionShort,
		Long:  commands.MsgVersionLong,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "eventmgr version %s\n", version.Version)
			if version.Commit != "" {
				fmt.Fprintf(out, "Commit: %s\n", version.Commit)
			}
			if version.Date != "" {
				fmt.Fprintf(out, "Built:  %s\n", version.Date)
			}
		},
	}
}
