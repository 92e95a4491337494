package event

import (
	"testing"

	"github.com/arthur-debert/eventmgr/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChainReturnsReceiver(t *testing.T) {
	m := newTestManager()
	c := m.Chain()

	assert.Same(t, m, c.Manager())
	assert.Same(t, c, c.RegisterEvent("saved"))
	assert.Same(t, c, c.On("saved", func(*Args) {}))
	assert.Same(t, c, c.OnEach(Binding{Event: "saved", Handler: func(*Args) {}}))
	assert.Same(t, c, c.Trigger("saved", nil))
	assert.NoError(t, c.Err())
}

func TestChainFluent(t *testing.T) {
	m := newTestManager()
	args := NewArgs(nil)
	incr := func(a *Args) { a.Incr("count") }

	err := m.Chain().
		RegisterEvent("saved").
		On("saved", incr).
		On("saved", incr).
		Trigger("saved", args).
		Err()

	require.NoError(t, err)
	assert.Equal(t, 2, args.Int("count"))
}

func TestChainStickyError(t *testing.T) {
	m := newTestManager()
	args := NewArgs(nil)

	c := m.Chain().
		On("unregistered", func(a *Args) { a.Incr("count") }).
		RegisterEvent("unregistered").
		On("unregistered", func(a *Args) { a.Incr("count") }).
		Trigger("unregistered", args)

	assert.True(t, errors.IsErrorCode(c.Err(), errors.ErrUnregisteredEvent))
	assert.False(t, m.IsRegistered("unregistered"), "calls after the error are skipped")
	assert.Equal(t, 0, args.Int("count"))
}
