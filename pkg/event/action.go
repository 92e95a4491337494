package event

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/eventmgr/pkg/errors"
)

// Handler is implemented by values that can be bound directly to an event.
type Handler interface {
	Handle(args *Args) error
}

// HandlerFunc adapts a function to Handler
type HandlerFunc func(args *Args) error

// Handle calls f(args)
func (f HandlerFunc) Handle(args *Args) error {
	return f(args)
}

// Descriptor names an action to resolve at dispatch time.
// Member is mandatory; Unit and Type are optional.
type Descriptor struct {
	Unit   string `koanf:"unit" yaml:"unit,omitempty"`
	Type   string `koanf:"type" yaml:"type,omitempty"`
	Member string `koanf:"member" yaml:"member"`
}

// String re-assembles the descriptor as unit#Type@member
func (d Descriptor) String() string {
	var b strings.Builder
	if d.Unit != "" {
		b.WriteString(d.Unit)
		b.WriteByte('#')
	}
	if d.Type != "" {
		b.WriteString(d.Type)
		b.WriteByte('@')
	}
	b.WriteString(d.Member)
	return b.String()
}

// ActionKind tells direct actions from deferred ones
type ActionKind int

const (
	_ = ActionKind(iota)
	ActionDirect
	ActionDeferred
)

func (k ActionKind) String() string {
	switch k {
	case ActionDirect:
		return "direct"
	case ActionDeferred:
		return "deferred"
	}
	return "unknown"
}

// Action is one normalized binding: either a function to call as-is or a
// Descriptor resolved on every trigger.
type Action struct {
	kind   ActionKind
	direct HandlerFunc
	desc   Descriptor
}

// Kind returns ActionDirect or ActionDeferred
func (a Action) Kind() ActionKind { return a.kind }

// Descriptor returns the deferred descriptor; ok is false for direct actions
func (a Action) Descriptor() (Descriptor, bool) {
	return a.desc, a.kind == ActionDeferred
}

func (a Action) String() string {
	if a.kind == ActionDirect {
		return "<direct>"
	}
	return a.desc.String()
}

// newAction classifies handler: invocable first, then descriptor-shaped
// values, then string expressions.
func newAction(handler any, g Grammar) (Action, error) {
	if fn, ok := directFunc(handler); ok {
		return Action{kind: ActionDirect, direct: fn}, nil
	}

	if d, ok := descriptorOf(handler); ok {
		return Action{kind: ActionDeferred, desc: d}, nil
	}

	if expr, ok := handler.(string); ok {
		d, err := g.Parse(expr)
		if err != nil {
			return Action{}, err
		}
		return Action{kind: ActionDeferred, desc: d}, nil
	}

	return Action{}, errors.Newf(errors.ErrUnrecognizedAction, "Cannot analyze action provided (%T).", handler).
		WithDetail("handler", fmt.Sprintf("%v", handler))
}

func directFunc(handler any) (HandlerFunc, bool) {
	switch h := handler.(type) {
	case HandlerFunc:
		return h, h != nil
	case func(*Args) error:
		return h, h != nil
	case func(*Args):
		if h == nil {
			return nil, false
		}
		return func(args *Args) error {
			h(args)
			return nil
		}, true
	case Handler:
		if h == nil {
			return nil, false
		}
		return h.Handle, true
	}
	return nil, false
}

func descriptorOf(handler any) (Descriptor, bool) {
	switch h := handler.(type) {
	case Descriptor:
		return h, h.Member != ""
	case *Descriptor:
		if h == nil {
			return Descriptor{}, false
		}
		return *h, h.Member != ""
	case map[string]string:
		d := Descriptor{Unit: h["unit"], Type: h["type"], Member: h["member"]}
		return d, d.Member != ""
	case map[string]any:
		member, _ := h["member"].(string)
		if member == "" {
			return Descriptor{}, false
		}
		unit, _ := h["unit"].(string)
		typ, _ := h["type"].(string)
		return Descriptor{Unit: unit, Type: typ, Member: member}, true
	}
	return Descriptor{}, false
}
