package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/arthur-debert/eventmgr/pkg/errors"
)

// Registry is a generic, thread-safe table of named items.
// It backs the resolution scopes: source units, listener types and
// handler functions are each looked up by name at dispatch time.
type Registry[T any] interface {
	// Register adds an item under name. Names are unique.
	Register(name string, item T) error

	// Lookup retrieves an item by name
	Lookup(name string) (T, bool)

	// List returns all registered names in sorted order
	List() []string

	// Kind returns the label used in error messages ("type", "unit", ...)
	Kind() string
}

type registry[T any] struct {
	mu    sync.RWMutex
	kind  string
	items map[string]T
}

// New creates an empty Registry. kind labels the items in error messages.
func New[T any](kind string) Registry[T] {
	if kind == "" {
		kind = "item"
	}
	return &registry[T]{
		kind:  kind,
		items: make(map[string]T),
	}
}

func (r *registry[T]) Register(name string, item T) error {
	if name == "" {
		return errors.Newf(errors.ErrInvalidArgument, "%s name cannot be empty", r.kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[name]; exists {
		return errors.Newf(errors.ErrAlreadyExists, "%s '%s' is already registered", r.kind, name).
			WithDetail(r.kind, name)
	}

	r.items[name] = item
	return nil
}

func (r *registry[T]) Lookup(name string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, exists := r.items[name]
	return item, exists
}

func (r *registry[T]) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

func (r *registry[T]) Kind() string {
	return r.kind
}

// MustRegister registers an item and panics if registration fails.
// Use it where a registration error is a programming error.
func MustRegister[T any](reg Registry[T], name string, item T) {
	if err := reg.Register(name, item); err != nil {
		panic(fmt.Sprintf("failed to register %s %s: %v", reg.Kind(), name, err))
	}
}
