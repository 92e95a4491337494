package testutil

import (
	"github.com/arthur-debert/eventmgr/pkg/event"
)

// Recorder hands out handler functions that append their name to Calls
type Recorder struct {
	Calls []string
}

// Handler returns a function recording name when called. A non-nil err is
// returned from every call.
func (r *Recorder) Handler(name string, err ...error) event.HandlerFunc {
	return func(*event.Args) error {
		r.Calls = append(r.Calls, name)
		if len(err) > 0 {
			return err[0]
		}
		return nil
	}
}

// Methods builds a Listener whose members record their own names
func (r *Recorder) Methods(members ...string) event.Methods {
	m := make(event.Methods, len(members))
	for _, member := range members {
		m[member] = r.Handler(member)
	}
	return m
}

// Reset forgets the recorded calls
func (r *Recorder) Reset() {
	r.Calls = nil
}
