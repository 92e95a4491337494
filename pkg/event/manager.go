package event

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/arthur-debert/eventmgr/pkg/errors"
	"github.com/arthur-debert/eventmgr/pkg/logging"
	"github.com/rs/zerolog"
)

// eventRegistry is the per-manager state: declared names and the ordered
// actions bound to each name.
type eventRegistry struct {
	registered map[string]struct{}
	bindings   map[string][]Action
}

func newEventRegistry() eventRegistry {
	return eventRegistry{
		registered: make(map[string]struct{}),
		bindings:   make(map[string][]Action),
	}
}

// Manager holds the events of one host value. The zero value is not usable;
// create managers with New.
type Manager struct {
	strict  bool
	grammar Grammar
	scope   *Scope
	logger  zerolog.Logger

	reg eventRegistry
}

// Option configures a Manager
type Option func(*Manager)

// WithStrict turns the registration check of On and Trigger on or off
func WithStrict(strict bool) Option {
	return func(m *Manager) { m.strict = strict }
}

// WithScope sets the scope deferred actions resolve against
func WithScope(s *Scope) Option {
	return func(m *Manager) {
		if s != nil {
			m.scope = s
		}
	}
}

// WithLogger replaces the default "event" component logger
func WithLogger(logger zerolog.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// WithGrammar sets the grammar used for string handlers
func WithGrammar(g Grammar) Option {
	return func(m *Manager) { m.grammar = g }
}

// New creates a Manager in strict mode bound to DefaultScope
func New(opts ...Option) *Manager {
	m := &Manager{
		strict:  true,
		grammar: StrictGrammar,
		scope:   defaultScope,
		logger:  logging.GetLogger("event"),
		reg:     newEventRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Strict reports whether strict mode is on
func (m *Manager) Strict() bool { return m.strict }

// SetStrict turns strict mode on or off
func (m *Manager) SetStrict(strict bool) { m.strict = strict }

// Scope returns the scope deferred actions resolve against
func (m *Manager) Scope() *Scope { return m.scope }

// Grammar returns the grammar used for string handlers
func (m *Manager) Grammar() Grammar { return m.grammar }

// RegisterEvent declares event names. Each argument may be a name, or a
// slice, array or map of names nested to any depth. Map keys are ignored.
// Other values are registered under their fmt.Sprint form.
func (m *Manager) RegisterEvent(events ...any) {
	for _, name := range flattenNames(events, nil) {
		m.reg.registered[name] = struct{}{}
		m.logger.Trace().Str("event", name).Msg("Event registered")
	}
}

func flattenNames(values []any, out []string) []string {
	for _, v := range values {
		switch tv := v.(type) {
		case nil:
			continue
		case string:
			out = append(out, tv)
			continue
		case []string:
			out = append(out, tv...)
			continue
		case []byte:
			out = append(out, string(tv))
			continue
		}

		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Slice, reflect.Array:
			nested := make([]any, rv.Len())
			for i := range nested {
				nested[i] = rv.Index(i).Interface()
			}
			out = flattenNames(nested, out)
			continue
		case reflect.Map:
			nested := make([]any, 0, rv.Len())
			for it := rv.MapRange(); it.Next(); {
				nested = append(nested, it.Value().Interface())
			}
			out = flattenNames(nested, out)
			continue
		}
		out = append(out, fmt.Sprint(v))
	}
	return out
}

// IsRegistered reports whether name was declared with RegisterEvent
func (m *Manager) IsRegistered(name string) bool {
	_, ok := m.reg.registered[name]
	return ok
}

// Events returns the registered event names in sorted order
func (m *Manager) Events() []string {
	names := make([]string, 0, len(m.reg.registered))
	for name := range m.reg.registered {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BoundEvents returns the names that have at least one action, sorted
func (m *Manager) BoundEvents() []string {
	names := make([]string, 0, len(m.reg.bindings))
	for name, actions := range m.reg.bindings {
		if len(actions) > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Actions returns a copy of the actions bound to name, in binding order
func (m *Manager) Actions(name string) []Action {
	actions := m.reg.bindings[name]
	if len(actions) == 0 {
		return nil
	}
	out := make([]Action, len(actions))
	copy(out, actions)
	return out
}

// Binding pairs an event name with a handler for OnEach
type Binding struct {
	Event   string
	Handler any
}

// On binds handler to event. See the package documentation for the
// accepted handler forms.
func (m *Manager) On(event string, handler any) error {
	if err := m.checkRegistered(event); err != nil {
		return err
	}

	action, err := newAction(handler, m.grammar)
	if err != nil {
		if eventErr, ok := err.(*errors.EventError); ok {
			eventErr.WithDetail("event", event)
		}
		return err
	}

	m.reg.bindings[event] = append(m.reg.bindings[event], action)
	m.logger.Trace().
		Str("event", event).
		Str("kind", action.Kind().String()).
		Str("action", action.String()).
		Msg("Action bound")
	return nil
}

// OnEach binds every pair in order. It stops at the first failure; pairs
// before it stay bound.
func (m *Manager) OnEach(bindings ...Binding) error {
	for _, b := range bindings {
		if err := m.On(b.Event, b.Handler); err != nil {
			return err
		}
	}
	return nil
}

// Trigger calls every action bound to event, in binding order, with args.
// A nil args is replaced by an empty one. The first resolution or handler
// error stops dispatch; handler errors are returned unchanged and panics
// are not recovered. Actions bound while the event is dispatching run from
// the next Trigger on.
func (m *Manager) Trigger(event string, args *Args) error {
	if err := m.checkRegistered(event); err != nil {
		return err
	}

	actions := m.reg.bindings[event]
	if len(actions) == 0 {
		m.logger.Trace().Str("event", event).Msg("No actions bound")
		return nil
	}

	if args == nil {
		args = NewArgs(nil)
	}

	logger := m.logger.With().Str("event", event).Logger()
	logger.Debug().Int("actions", len(actions)).Msg("Triggering event")
	done := logging.LogOperationStart(logger, "trigger")

	for i, action := range actions {
		fn, err := m.scope.resolve(action)
		if err != nil {
			if eventErr, ok := err.(*errors.EventError); ok {
				eventErr.WithDetail("event", event).WithDetail("index", i)
			}
			m.logger.Debug().Err(err).Str("event", event).Int("index", i).Msg("Action resolution failed")
			return err
		}
		if err := fn(args); err != nil {
			m.logger.Debug().Err(err).Str("event", event).Int("index", i).Msg("Action failed")
			return err
		}
	}

	done()
	return nil
}

func (m *Manager) checkRegistered(event string) error {
	if m.strict && !m.IsRegistered(event) {
		return errors.Newf(errors.ErrUnregisteredEvent, "Event `%s` not registered!", event).
			WithDetail("event", event)
	}
	return nil
}
