package cli

import (
	"fmt"
	"io"

	"github.com/arthur-debert/eventmgr/internal/commands"
	"github.com/arthur-debert/eventmgr/pkg/event"
	"github.com/arthur-debert/eventmgr/pkg/ui/styles"
	"github.com/spf13/cobra"
)

func newInspectCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <manifest>",
		Short: commands.MsgInspectShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, _, err := flags.loadManager(cmd, args[0])
			if err != nil {
				return err
			}
			renderManager(cmd.OutOrStdout(), m)
			return nil
		},
	}
}

// renderManager lists registered events first, then events that only
// have bindings (possible when strict mode is off).
func renderManager(w io.Writer, m *event.Manager) {
	names := m.Events()
	for _, name := range m.BoundEvents() {
		if !m.IsRegistered(name) {
			names = append(names, name)
		}
	}

	fmt.Fprintf(w, "%s %s\n",
		styles.Render("Header", commands.MsgEventsHeader),
		styles.Render("Muted", fmt.Sprintf("(strict=%t, grammar=%s)", m.Strict(), m.Grammar().Name())))

	if len(names) == 0 {
		fmt.Fprintln(w, styles.Render("Muted", commands.MsgNoEvents))
		return
	}

	for _, name := range names {
		line := styles.Render("Event", name)
		if !m.IsRegistered(name) {
			line += " " + styles.Render("Muted", commands.MsgUnregistered)
		}
		fmt.Fprintln(w, line)

		actions := m.Actions(name)
		if len(actions) == 0 {
			fmt.Fprintln(w, styles.Render("Indent", styles.Render("Muted", commands.MsgNoActions)))
			continue
		}
		for i, a := range actions {
			fmt.Fprintln(w, styles.Render("Indent", fmt.Sprintf("%d. %s %s",
				i+1,
				styles.Render("Action", a.String()),
				styles.Render("Kind", a.Kind().String()))))
		}
	}
}
