package event

import (
	"sync"

	"github.com/arthur-debert/eventmgr/pkg/errors"
	"github.com/arthur-debert/eventmgr/pkg/registry"
)

// Listener is the value built for "Type@member" actions. Handler returns the
// function registered under member.
type Listener interface {
	Handler(member string) (HandlerFunc, bool)
}

// Methods is a Listener backed by a plain map of member names
type Methods map[string]HandlerFunc

// Handler implements Listener
func (m Methods) Handler(member string) (HandlerFunc, bool) {
	fn, ok := m[member]
	return fn, ok && fn != nil
}

// TypeFactory builds a fresh Listener for each resolution
type TypeFactory func() Listener

// UnitLoader makes a source unit available, typically by registering
// types and functions into s.
type UnitLoader func(s *Scope) error

// Scope is the set of names deferred actions resolve against. It is safe
// for concurrent use.
type Scope struct {
	units registry.Registry[UnitLoader]
	types registry.Registry[TypeFactory]
	funcs registry.Registry[HandlerFunc]

	state *loadState

	// loading holds the units being loaded by the call chain that owns this
	// view of the scope. It is nil outside loaders.
	loading map[string]bool
}

// loadState tracks unit loads shared by every view of a Scope
type loadState struct {
	mu    sync.Mutex
	units map[string]*unitLoad
}

// unitLoad is one load of a unit. done is closed once the loader returned;
// err is set before that.
type unitLoad struct {
	done chan struct{}
	err  error
}

// NewScope creates an empty Scope
func NewScope() *Scope {
	return &Scope{
		units: registry.New[UnitLoader]("unit"),
		types: registry.New[TypeFactory]("type"),
		funcs: registry.New[HandlerFunc]("function"),
		state: &loadState{units: make(map[string]*unitLoad)},
	}
}

var defaultScope = NewScope()

// DefaultScope returns the process-wide scope used by managers created
// without WithScope.
func DefaultScope() *Scope {
	return defaultScope
}

// RegisterUnit registers a source unit loader in the default scope
func RegisterUnit(name string, load UnitLoader) error {
	return defaultScope.RegisterUnit(name, load)
}

// RegisterType registers a listener type in the default scope
func RegisterType(name string, factory TypeFactory) error {
	return defaultScope.RegisterType(name, factory)
}

// RegisterFunc registers a handler function in the default scope
func RegisterFunc(name string, fn HandlerFunc) error {
	return defaultScope.RegisterFunc(name, fn)
}

// RegisterUnit registers the loader for a source unit
func (s *Scope) RegisterUnit(name string, load UnitLoader) error {
	if load == nil {
		return errors.Newf(errors.ErrInvalidArgument, "unit '%s' has no loader", name)
	}
	return s.units.Register(name, load)
}

// RegisterType registers a factory under a type name
func (s *Scope) RegisterType(name string, factory TypeFactory) error {
	if factory == nil {
		return errors.Newf(errors.ErrInvalidArgument, "type '%s' has no factory", name)
	}
	return s.types.Register(name, factory)
}

// RegisterFunc registers fn under a member name
func (s *Scope) RegisterFunc(name string, fn HandlerFunc) error {
	if fn == nil {
		return errors.Newf(errors.ErrInvalidArgument, "function '%s' is nil", name)
	}
	return s.funcs.Register(name, fn)
}

// MustRegisterUnit is RegisterUnit for setup code. It panics on error.
func (s *Scope) MustRegisterUnit(name string, load UnitLoader) {
	if load == nil {
		panic(errors.Newf(errors.ErrInvalidArgument, "unit '%s' has no loader", name).Error())
	}
	registry.MustRegister(s.units, name, load)
}

// MustRegisterType is RegisterType for setup code. It panics on error.
func (s *Scope) MustRegisterType(name string, factory TypeFactory) {
	if factory == nil {
		panic(errors.Newf(errors.ErrInvalidArgument, "type '%s' has no factory", name).Error())
	}
	registry.MustRegister(s.types, name, factory)
}

// MustRegisterFunc is RegisterFunc for setup code. It panics on error.
func (s *Scope) MustRegisterFunc(name string, fn HandlerFunc) {
	if fn == nil {
		panic(errors.Newf(errors.ErrInvalidArgument, "function '%s' is nil", name).Error())
	}
	registry.MustRegister(s.funcs, name, fn)
}

// Units returns the registered unit names
func (s *Scope) Units() []string { return s.units.List() }

// Types returns the registered type names
func (s *Scope) Types() []string { return s.types.List() }

// Funcs returns the registered function names
func (s *Scope) Funcs() []string { return s.funcs.List() }

// Loaded reports whether unit has finished loading into s
func (s *Scope) Loaded(unit string) bool {
	s.state.mu.Lock()
	l, ok := s.state.units[unit]
	s.state.mu.Unlock()
	if !ok {
		return false
	}
	select {
	case <-l.done:
		return l.err == nil
	default:
		return false
	}
}

// Load runs the loader for unit unless it already ran successfully.
// Callers racing a load in progress wait for it and share its result. A
// loader that loads its own unit again, directly or through other units,
// gets a no-op. A failed load is forgotten so the next call retries it.
func (s *Scope) Load(unit string) error {
	if s.loading[unit] {
		return nil
	}

	s.state.mu.Lock()
	if l, ok := s.state.units[unit]; ok {
		s.state.mu.Unlock()
		<-l.done
		return l.err
	}
	load, ok := s.units.Lookup(unit)
	if !ok {
		s.state.mu.Unlock()
		return errors.Newf(errors.ErrUnitNotFound, "source unit `%s` is not registered", unit).
			WithDetail("unit", unit)
	}
	l := &unitLoad{done: make(chan struct{})}
	s.state.units[unit] = l
	s.state.mu.Unlock()

	returned := false
	defer func() {
		if !returned {
			// the loader panicked; waiters fail and the next call retries
			l.err = errors.Newf(errors.ErrUnitLoad, "source unit `%s` did not finish loading", unit).
				WithDetail("unit", unit)
		}
		if l.err != nil {
			s.state.mu.Lock()
			delete(s.state.units, unit)
			s.state.mu.Unlock()
		}
		close(l.done)
	}()

	err := load(s.loadingView(unit))
	returned = true
	if err != nil {
		l.err = errors.Wrapf(err, errors.ErrUnitLoad, "failed to load source unit `%s`", unit).
			WithDetail("unit", unit)
	}
	return l.err
}

// loadingView returns a view of s that shares its registries and load
// state and marks unit as being loaded by the current call chain.
func (s *Scope) loadingView(unit string) *Scope {
	loading := make(map[string]bool, len(s.loading)+1)
	for name := range s.loading {
		loading[name] = true
	}
	loading[unit] = true

	view := *s
	view.loading = loading
	return &view
}

// resolve turns an Action into the function to call. Deferred actions
// are looked up anew on every call.
func (s *Scope) resolve(a Action) (HandlerFunc, error) {
	if a.kind == ActionDirect {
		if a.direct == nil {
			return nil, notCallable(a.String())
		}
		return a.direct, nil
	}

	d := a.desc
	if d.Unit != "" {
		if err := s.Load(d.Unit); err != nil {
			return nil, err
		}
	}

	if d.Type == "" {
		fn, ok := s.funcs.Lookup(d.Member)
		if !ok || fn == nil {
			return nil, notCallable(d.String())
		}
		return fn, nil
	}

	factory, ok := s.types.Lookup(d.Type)
	if !ok {
		return nil, errors.Newf(errors.ErrMissingType, "The specific type `%s` does not exist in scope!", d.Type).
			WithDetail("type", d.Type)
	}
	listener := factory()
	if listener == nil {
		return nil, notCallable(d.String())
	}
	fn, ok := listener.Handler(d.Member)
	if !ok || fn == nil {
		return nil, notCallable(d.String())
	}
	return fn, nil
}

func notCallable(rendered string) *errors.EventError {
	return errors.Newf(errors.ErrNotCallable, "Method not callable! Method provided: %s", rendered).
		WithDetail("action", rendered)
}
