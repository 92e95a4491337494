package event

// Chain wraps a Manager for fluent use:
//
//	err := m.Chain().
//	    On("saved", "Audit@record").
//	    On("saved", notify).
//	    Trigger("saved", args).
//	    Err()
//
// The first error is kept and every later call becomes a no-op.
type Chain struct {
	m   *Manager
	err error
}

// Chain starts a fluent call sequence on m
func (m *Manager) Chain() *Chain {
	return &Chain{m: m}
}

// Manager returns the manager the chain operates on
func (c *Chain) Manager() *Manager { return c.m }

// Err returns the first error raised in the chain
func (c *Chain) Err() error { return c.err }

// RegisterEvent calls Manager.RegisterEvent
func (c *Chain) RegisterEvent(events ...any) *Chain {
	if c.err == nil {
		c.m.RegisterEvent(events...)
	}
	return c
}

// On calls Manager.On
func (c *Chain) On(event string, handler any) *Chain {
	if c.err == nil {
		c.err = c.m.On(event, handler)
	}
	return c
}

// OnEach calls Manager.OnEach
func (c *Chain) OnEach(bindings ...Binding) *Chain {
	if c.err == nil {
		c.err = c.m.OnEach(bindings...)
	}
	return c
}

// Trigger calls Manager.Trigger
func (c *Chain) Trigger(event string, args *Args) *Chain {
	if c.err == nil {
		c.err = c.m.Trigger(event, args)
	}
	return c
}
