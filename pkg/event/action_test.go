package event

import (
	"testing"

	"github.com/arthur-debert/eventmgr/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingHandler struct{ calls int }

func (h *countingHandler) Handle(args *Args) error {
	h.calls++
	return nil
}

func TestNewActionDirectForms(t *testing.T) {
	h := &countingHandler{}
	forms := map[string]any{
		"HandlerFunc":        HandlerFunc(func(*Args) error { return nil }),
		"func returning err": func(*Args) error { return nil },
		"func without err":   func(*Args) {},
		"Handler value":      h,
		"method value":       h.Handle,
	}

	for name, handler := range forms {
		t.Run(name, func(t *testing.T) {
			a, err := newAction(handler, StrictGrammar)
			require.NoError(t, err)
			assert.Equal(t, ActionDirect, a.Kind())
			assert.Equal(t, "<direct>", a.String())

			_, ok := a.Descriptor()
			assert.False(t, ok)
			assert.NoError(t, a.direct(NewArgs(nil)))
		})
	}
}

func TestNewActionDescriptorPassThrough(t *testing.T) {
	want := Descriptor{Unit: "lib.ext", Type: "Listener", Member: "handle"}
	forms := map[string]any{
		"value":       want,
		"pointer":     &want,
		"string map":  map[string]string{"unit": "lib.ext", "type": "Listener", "member": "handle"},
		"generic map": map[string]any{"unit": "lib.ext", "type": "Listener", "member": "handle"},
	}

	for name, handler := range forms {
		t.Run(name, func(t *testing.T) {
			a, err := newAction(handler, StrictGrammar)
			require.NoError(t, err)
			assert.Equal(t, ActionDeferred, a.Kind())

			got, ok := a.Descriptor()
			require.True(t, ok)
			assert.Equal(t, want, got)
			assert.Equal(t, "lib.ext#Listener@handle", a.String())
		})
	}
}

func TestNewActionString(t *testing.T) {
	a, err := newAction("Listener@handle", StrictGrammar)
	require.NoError(t, err)
	got, _ := a.Descriptor()
	assert.Equal(t, Descriptor{Type: "Listener", Member: "handle"}, got)

	_, err = newAction("Listener@", StrictGrammar)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidArgument))

	a, err = newAction("lib.ext#Listener@handle", WideGrammar)
	require.NoError(t, err)
	got, _ = a.Descriptor()
	assert.Equal(t, "lib.ext", got.Unit)
}

func TestNewActionUnrecognized(t *testing.T) {
	var nilFunc HandlerFunc
	var nilDesc *Descriptor
	for name, handler := range map[string]any{
		"int":                  42,
		"nil":                  nil,
		"nil HandlerFunc":      nilFunc,
		"nil descriptor":       nilDesc,
		"descriptor no member": Descriptor{Type: "Listener"},
		"map no member":        map[string]any{"type": "Listener"},
		"map member not str":   map[string]any{"member": 3},
		"wrong func signature": func(string) {},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := newAction(handler, StrictGrammar)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrUnrecognizedAction), "got %v", err)
			assert.Contains(t, err.Error(), "Cannot analyze action provided")
		})
	}
}

func TestActionKindString(t *testing.T) {
	assert.Equal(t, "direct", ActionDirect.String())
	assert.Equal(t, "deferred", ActionDeferred.String())
	assert.Equal(t, "unknown", ActionKind(0).String())
}
