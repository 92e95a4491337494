package event

import (
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/eventmgr/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockHandler struct {
	mock.Mock
}

func (m *mockHandler) Handle(args *Args) error {
	ret := m.Called(args)
	return ret.Error(0)
}

func newTestManager(opts ...Option) *Manager {
	base := []Option{WithScope(NewScope()), WithLogger(zerolog.Nop())}
	return New(append(base, opts...)...)
}

func recorder(log *[]string, name string) HandlerFunc {
	return func(*Args) error {
		*log = append(*log, name)
		return nil
	}
}

func TestNewDefaults(t *testing.T) {
	m := New()
	assert.True(t, m.Strict())
	assert.Same(t, DefaultScope(), m.Scope())
	assert.Equal(t, "strict", m.Grammar().Name())
	assert.Empty(t, m.Events())

	m = New(WithStrict(false), WithGrammar(WideGrammar), WithScope(nil))
	assert.False(t, m.Strict())
	assert.Equal(t, "wide", m.Grammar().Name())
	assert.Same(t, DefaultScope(), m.Scope(), "nil scope keeps the default")

	m.SetStrict(true)
	assert.True(t, m.Strict())
}

func TestRegisterEventFlattens(t *testing.T) {
	m := newTestManager()
	m.RegisterEvent(
		"a",
		[]string{"b", "c"},
		[]any{"d", []any{"e", []string{"f"}, [2]string{"g", "h"}}},
		nil,
		[]byte("i"),
		7,
	)

	assert.Equal(t, []string{"7", "a", "b", "c", "d", "e", "f", "g", "h", "i"}, m.Events())
	for _, name := range []string{"a", "f", "h", "7"} {
		assert.True(t, m.IsRegistered(name), name)
	}
	assert.False(t, m.IsRegistered("z"))
}

func TestRegisterEventFlattensMapValues(t *testing.T) {
	m := newTestManager()
	m.RegisterEvent(
		map[string]string{"a": "x", "b": "y"},
		[]any{map[int]any{0: "z", 1: []string{"w"}}},
	)

	assert.Equal(t, []string{"w", "x", "y", "z"}, m.Events())
	assert.False(t, m.IsRegistered("map[a:x b:y]"))
}

func TestRegisterEventDuplicates(t *testing.T) {
	m := newTestManager()
	m.RegisterEvent("a", "a", []string{"a"})
	assert.Equal(t, []string{"a"}, m.Events())
}

func TestOnValidation(t *testing.T) {
	noop := func(*Args) error { return nil }

	t.Run("empty event name is an ordinary name", func(t *testing.T) {
		m := newTestManager()
		err := m.On("", noop)
		assert.True(t, errors.IsErrorCode(err, errors.ErrUnregisteredEvent), "got %v", err)

		m.RegisterEvent("")
		assert.True(t, m.IsRegistered(""))

		called := 0
		require.NoError(t, m.On("", func(*Args) { called++ }))
		require.NoError(t, m.Trigger("", nil))
		assert.Equal(t, 1, called)
	})

	t.Run("strict rejects unregistered", func(t *testing.T) {
		m := newTestManager()
		err := m.On("user.created", noop)
		assert.True(t, errors.IsErrorCode(err, errors.ErrUnregisteredEvent), "got %v", err)
		assert.Contains(t, err.Error(), "Event `user.created` not registered!")
		assert.Empty(t, m.Actions("user.created"))
	})

	t.Run("non-strict accepts unregistered", func(t *testing.T) {
		m := newTestManager(WithStrict(false))
		require.NoError(t, m.On("user.created", noop))
		assert.Len(t, m.Actions("user.created"), 1)
		assert.Equal(t, []string{"user.created"}, m.BoundEvents())
		assert.Empty(t, m.Events())
	})

	t.Run("registration checked before handler", func(t *testing.T) {
		m := newTestManager()
		err := m.On("x", 42)
		assert.True(t, errors.IsErrorCode(err, errors.ErrUnregisteredEvent))
	})

	t.Run("bad handler carries event detail", func(t *testing.T) {
		m := newTestManager()
		m.RegisterEvent("x")

		err := m.On("x", 42)
		assert.True(t, errors.IsErrorCode(err, errors.ErrUnrecognizedAction))
		assert.Equal(t, "x", errors.GetErrorDetails(err)["event"])

		err = m.On("x", "not valid!")
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidArgument))
		assert.Empty(t, m.Actions("x"))
	})
}

func TestOnEach(t *testing.T) {
	m := newTestManager()
	m.RegisterEvent("a", "b")

	err := m.OnEach(
		Binding{Event: "a", Handler: "first"},
		Binding{Event: "b", Handler: "T@second"},
		Binding{Event: "a", Handler: Descriptor{Member: "third"}},
	)
	require.NoError(t, err)

	a := m.Actions("a")
	require.Len(t, a, 2)
	assert.Equal(t, "first", a[0].String())
	assert.Equal(t, "third", a[1].String())
	assert.Equal(t, "T@second", m.Actions("b")[0].String())

	err = m.OnEach(
		Binding{Event: "b", Handler: "kept"},
		Binding{Event: "missing", Handler: "x"},
		Binding{Event: "b", Handler: "never"},
	)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnregisteredEvent))
	assert.Len(t, m.Actions("b"), 2, "pairs before the failure stay bound")
}

func TestActionsReturnsCopy(t *testing.T) {
	m := newTestManager(WithStrict(false))
	require.NoError(t, m.On("a", "one"))

	actions := m.Actions("a")
	actions[0] = Action{}
	assert.Equal(t, "one", m.Actions("a")[0].String())
	assert.Nil(t, m.Actions("none"))
}

func TestTriggerOrder(t *testing.T) {
	m := newTestManager()
	m.RegisterEvent("e")

	var calls []string
	for _, name := range []string{"A", "B", "C"} {
		require.NoError(t, m.On("e", recorder(&calls, name)))
	}

	require.NoError(t, m.Trigger("e", nil))
	require.NoError(t, m.Trigger("e", nil))
	assert.Equal(t, []string{"A", "B", "C", "A", "B", "C"}, calls)
}

func TestTriggerSharesArgs(t *testing.T) {
	m := newTestManager()
	m.RegisterEvent("user.created")

	require.NoError(t, m.On("user.created", func(a *Args) error {
		a.Set("count", 1)
		return nil
	}))
	require.NoError(t, m.On("user.created", func(a *Args) error {
		if a.Int("count") != 1 {
			return stderrors.New("first handler's write not visible")
		}
		a.Set("seen", true)
		return nil
	}))

	args := NewArgs(map[string]any{"count": 0})
	require.NoError(t, m.Trigger("user.created", args))

	assert.Equal(t, 1, args.Int("count"))
	seen, _ := args.Get("seen")
	assert.Equal(t, true, seen)
}

func TestTriggerUserCreatedScenario(t *testing.T) {
	m := newTestManager()
	m.RegisterEvent("user.created")

	h1 := &mockHandler{}
	h2 := &mockHandler{}
	var order []string
	h1.On("Handle", mock.Anything).Run(func(c mock.Arguments) {
		order = append(order, "H1")
		c.Get(0).(*Args).Incr("count")
	}).Return(nil).Once()
	h2.On("Handle", mock.Anything).Run(func(c mock.Arguments) {
		order = append(order, "H2")
		c.Get(0).(*Args).Incr("count")
	}).Return(nil).Once()

	require.NoError(t, m.On("user.created", h1))
	require.NoError(t, m.On("user.created", h2))

	args := NewArgs(map[string]any{"count": 0})
	require.NoError(t, m.Trigger("user.created", args))

	h1.AssertExpectations(t)
	h2.AssertExpectations(t)
	assert.Equal(t, []string{"H1", "H2"}, order)
	assert.Equal(t, 2, args.Int("count"))
}

func TestTriggerStrictUnregistered(t *testing.T) {
	m := newTestManager()
	h := &mockHandler{}

	err := m.Trigger("ghost", NewArgs(nil))
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnregisteredEvent), "got %v", err)
	h.AssertNotCalled(t, "Handle", mock.Anything)

	// bound while non-strict, then strict again: trigger still refuses
	m.SetStrict(false)
	require.NoError(t, m.On("ghost", h))
	m.SetStrict(true)
	err = m.Trigger("ghost", nil)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnregisteredEvent))
	h.AssertNotCalled(t, "Handle", mock.Anything)
}

func TestTriggerNonStrictNoop(t *testing.T) {
	m := newTestManager(WithStrict(false))
	assert.NoError(t, m.Trigger("never.seen", nil))

	m = newTestManager()
	m.RegisterEvent("quiet")
	assert.NoError(t, m.Trigger("quiet", nil))
}

func TestTriggerStopsAtFirstError(t *testing.T) {
	m := newTestManager()
	m.RegisterEvent("e")

	boom := stderrors.New("boom")
	var calls []string
	require.NoError(t, m.On("e", recorder(&calls, "A")))
	require.NoError(t, m.On("e", func(*Args) error {
		calls = append(calls, "B")
		return boom
	}))
	require.NoError(t, m.On("e", recorder(&calls, "C")))

	err := m.Trigger("e", nil)
	assert.Same(t, boom, err, "handler errors are returned unchanged")
	assert.Equal(t, []string{"A", "B"}, calls)
}

func TestTriggerPanicsPropagate(t *testing.T) {
	m := newTestManager()
	m.RegisterEvent("e")
	require.NoError(t, m.On("e", func(*Args) { panic("handler blew up") }))

	assert.PanicsWithValue(t, "handler blew up", func() { _ = m.Trigger("e", nil) })
}

func TestTriggerResolvesDeferredActions(t *testing.T) {
	scope := NewScope()
	m := newTestManager(WithScope(scope))
	m.RegisterEvent("user.created")

	require.NoError(t, m.On("user.created", "audit"))
	require.NoError(t, m.On("user.created", "Mailer@welcome"))
	require.NoError(t, m.On("user.created", "m#Stats@bump"))

	// everything named above is registered after binding
	var calls []string
	require.NoError(t, scope.RegisterFunc("audit", recorder(&calls, "audit")))
	require.NoError(t, scope.RegisterType("Mailer", func() Listener {
		return Methods{"welcome": recorder(&calls, "welcome")}
	}))
	require.NoError(t, scope.RegisterUnit("m", func(s *Scope) error {
		return s.RegisterType("Stats", func() Listener {
			return Methods{"bump": recorder(&calls, "bump")}
		})
	}))

	require.NoError(t, m.Trigger("user.created", nil))
	assert.Equal(t, []string{"audit", "welcome", "bump"}, calls)
	assert.True(t, scope.Loaded("m"))
}

func TestTriggerResolutionFailureIsPartial(t *testing.T) {
	scope := NewScope()
	m := newTestManager(WithScope(scope))
	m.RegisterEvent("e")

	var calls []string
	require.NoError(t, scope.RegisterFunc("first", recorder(&calls, "first")))
	require.NoError(t, m.On("e", "first"))
	require.NoError(t, m.On("e", "Ghost@handle"))
	require.NoError(t, m.On("e", "missing"))

	err := m.Trigger("e", nil)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMissingType), "got %v", err)
	assert.Equal(t, []string{"first"}, calls)

	details := errors.GetErrorDetails(err)
	assert.Equal(t, "e", details["event"])
	assert.Equal(t, 1, details["index"])

	require.NoError(t, scope.RegisterType("Ghost", func() Listener {
		return Methods{"handle": recorder(&calls, "ghost")}
	}))
	err = m.Trigger("e", nil)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotCallable), "got %v", err)
	assert.Contains(t, err.Error(), "Method provided: missing")
	assert.Equal(t, []string{"first", "first", "ghost"}, calls)
}

func TestTriggerSnapshotsActions(t *testing.T) {
	m := newTestManager()
	m.RegisterEvent("e")

	var calls []string
	require.NoError(t, m.On("e", func(*Args) error {
		calls = append(calls, "outer")
		return m.On("e", recorder(&calls, "late"))
	}))

	require.NoError(t, m.Trigger("e", nil))
	assert.Equal(t, []string{"outer"}, calls)

	calls = nil
	require.NoError(t, m.Trigger("e", nil))
	assert.Equal(t, []string{"outer", "late"}, calls)
}

func TestManagersAreIndependent(t *testing.T) {
	a := newTestManager()
	b := newTestManager()
	a.RegisterEvent("only.a")

	assert.True(t, a.IsRegistered("only.a"))
	assert.False(t, b.IsRegistered("only.a"))
}

func TestTriggerLogs(t *testing.T) {
	var buf bytes.Buffer
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	m := newTestManager(WithLogger(zerolog.New(&buf)))
	m.RegisterEvent("e")
	require.NoError(t, m.On("e", func(*Args) {}))
	require.NoError(t, m.Trigger("e", nil))

	out := buf.String()
	assert.Contains(t, out, "Event registered")
	assert.Contains(t, out, "Action bound")
	assert.Contains(t, out, "Triggering event")
	assert.Contains(t, out, `"actions":1`)
	assert.Contains(t, out, `"operation":"trigger"`)
	assert.Contains(t, out, "Operation completed")
	assert.Contains(t, out, `"event":"e"`)
}

func TestTriggerFailureSkipsCompletionLog(t *testing.T) {
	var buf bytes.Buffer
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	m := newTestManager(WithLogger(zerolog.New(&buf)))
	m.RegisterEvent("e")
	require.NoError(t, m.On("e", func(*Args) error { return stderrors.New("boom") }))
	require.Error(t, m.Trigger("e", nil))

	out := buf.String()
	assert.Contains(t, out, "Operation started")
	assert.Contains(t, out, "Action failed")
	assert.NotContains(t, out, "Operation completed")
}
