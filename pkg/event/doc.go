// Package event gives any host value a synchronous, in-process event
// capability: declare the event names it supports, bind actions to them and
// trigger them with a shared mutable payload.
//
// # Register and bind
//
// A host holds (or embeds) a Manager. Event names are declared up front with
// RegisterEvent; in strict mode (the default) binding or triggering an
// undeclared name fails with an UNREGISTERED_EVENT error.
//
//	m := event.New()
//	m.RegisterEvent("user.created", []string{"user.deleted", "user.updated"})
//	err := m.On("user.created", func(args *event.Args) error {
//	    args.Incr("count")
//	    return nil
//	})
//
// # Action forms
//
// A handler passed to On is one of:
//
//   - a function or Handler, invoked directly;
//   - a Descriptor (or a map with a "member" key), resolved at dispatch;
//   - a string expression "unit#Type@member", parsed into a Descriptor.
//
// Deferred actions are resolved against a Scope every time the event is
// triggered, so the unit, type or function they name may be registered after
// the binding is made:
//
//	event.RegisterType("Mailer", func() event.Listener {
//	    return event.Methods{"welcome": sendWelcome}
//	})
//	m.On("user.created", "Mailer@welcome")
//
// # Trigger
//
// Trigger runs every action bound to the event in binding order, in the
// calling goroutine, passing the same *Args to each. The first error stops
// dispatch and is returned as-is; actions that already ran keep their effects.
// Handlers must not retain the *Args after they return.
//
// A Manager is not safe for concurrent use without external locking.
package event
