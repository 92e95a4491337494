package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/eventmgr/pkg/errors"
	"github.com/arthur-debert/eventmgr/pkg/event"
	"github.com/arthur-debert/eventmgr/pkg/logging"
)

// newBuiltinScope returns the scope manifests resolve against when run
// from the command line. Output of the print and say handlers goes to out.
func newBuiltinScope(out io.Writer) *event.Scope {
	s := event.NewScope()
	logger := logging.GetLogger("builtin")

	funcs := map[string]event.HandlerFunc{
		"log": func(args *event.Args) error {
			logger.Info().Interface("args", args.Values()).Msg("Event handled")
			return nil
		},
		"incr": func(args *event.Args) error {
			args.Incr("count")
			return nil
		},
		"print": func(args *event.Args) error {
			pairs := make([]string, 0, args.Len())
			for _, k := range args.Keys() {
				pairs = append(pairs, fmt.Sprintf("%s=%s", k, args.String(k)))
			}
			_, err := fmt.Fprintln(out, strings.Join(pairs, " "))
			return err
		},
	}
	for name, fn := range funcs {
		s.MustRegisterFunc(name, fn)
	}

	s.MustRegisterType("Counter", func() event.Listener {
		return event.Methods{
			"incr": func(args *event.Args) error {
				args.Incr("count")
				return nil
			},
			"reset": func(args *event.Args) error {
				args.Set("count", 0)
				return nil
			},
		}
	})

	echo := func(s *event.Scope) error {
		err := s.RegisterType("Echo", func() event.Listener {
			return event.Methods{
				"say": func(args *event.Args) error {
					msg := args.String("message")
					if msg == "" {
						msg = "echo"
					}
					_, err := fmt.Fprintln(out, msg)
					return err
				},
			}
		})
		if errors.IsErrorCode(err, errors.ErrAlreadyExists) {
			return nil
		}
		return err
	}
	for _, unit := range []string{"e", "echo"} {
		s.MustRegisterUnit(unit, echo)
	}

	return s
}
