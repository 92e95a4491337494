package cli

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/eventmgr/internal/commands"
	"github.com/arthur-debert/eventmgr/pkg/event"
	"github.com/arthur-debert/eventmgr/pkg/ui/styles"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newTriggerCmd(flags *globalFlags) *cobra.Command {
	var rawArgs []string

	cmd := &cobra.Command{
		Use:     "trigger <manifest> <event>",
		Short:   commands.MsgTriggerShort,
		Long:    commands.MsgTriggerLong,
		Example: commands.MsgTriggerExample,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := parseArgs(rawArgs)
			if err != nil {
				return err
			}

			m, _, err := flags.loadManager(cmd, args[0])
			if err != nil {
				return err
			}

			name := args[1]
			if err := m.Trigger(name, payload); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, styles.Render("Success",
				fmt.Sprintf(commands.MsgTriggeredFormat, name, len(m.Actions(name)))))

			if payload.Len() == 0 {
				return nil
			}
			data, err := yaml.Marshal(payload.Values())
			if err != nil {
				return fmt.Errorf(commands.MsgErrRenderArgs, err)
			}
			fmt.Fprintln(out, styles.Render("Header", commands.MsgArgsHeader))
			fmt.Fprint(out, string(data))
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&rawArgs, "arg", "a", nil, "Set an event argument (key=value, value parsed as YAML)")
	return cmd
}

// parseArgs builds the trigger payload from key=value pairs
func parseArgs(pairs []string) (*event.Args, error) {
	args := event.NewArgs(nil)
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf(commands.MsgErrBadArg, pair)
		}
		if raw == "" {
			args.Set(key, "")
			continue
		}
		var value interface{}
		if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
			return nil, fmt.Errorf(commands.MsgErrArgValue, pair, err)
		}
		args.Set(key, value)
	}
	return args, nil
}
