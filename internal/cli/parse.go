package cli

import (
	"fmt"

	"github.com/arthur-debert/eventmgr/internal/commands"
	"github.com/arthur-debert/eventmgr/pkg/event"
	"github.com/arthur-debert/eventmgr/pkg/ui/styles"
	"github.com/spf13/cobra"
)

func newParseCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <expression>...",
		Short: commands.MsgParseShort,
		Long:  commands.MsgParseLong,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.resolveOptions(cmd, nil)
			if err != nil {
				return err
			}
			g := event.GrammarFor(opts.WideSourceUnit)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, commands.MsgGrammarFormat, g.Name())
			for _, expr := range args {
				d, err := g.Parse(expr)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s  %s\n",
					styles.Render("Action", expr),
					fmt.Sprintf(commands.MsgDescriptorFormat, d.Unit, d.Type, d.Member))
			}
			return nil
		},
	}
}
