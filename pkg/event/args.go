package event

import (
	"fmt"
	"sort"
	"strconv"
)

// Args is the mutable payload shared by every action of one Trigger call.
// Changes made by one action are seen by the next and by the caller.
type Args struct {
	values map[string]any
}

// NewArgs returns an Args seeded with a copy of values
func NewArgs(values map[string]any) *Args {
	a := &Args{values: make(map[string]any, len(values))}
	for k, v := range values {
		a.values[k] = v
	}
	return a
}

// Get returns the value stored under key
func (a *Args) Get(key string) (any, bool) {
	v, ok := a.values[key]
	return v, ok
}

// Set stores value under key
func (a *Args) Set(key string, value any) {
	if a.values == nil {
		a.values = make(map[string]any)
	}
	a.values[key] = value
}

// Has reports whether key is present
func (a *Args) Has(key string) bool {
	_, ok := a.values[key]
	return ok
}

// Delete removes key
func (a *Args) Delete(key string) {
	delete(a.values, key)
}

// Len returns the number of keys
func (a *Args) Len() int {
	return len(a.values)
}

// Keys returns the keys in sorted order
func (a *Args) Keys() []string {
	keys := make([]string, 0, len(a.values))
	for k := range a.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Values returns a copy of the payload
func (a *Args) Values() map[string]any {
	out := make(map[string]any, len(a.values))
	for k, v := range a.values {
		out[k] = v
	}
	return out
}

// String returns the value under key formatted as a string, or "" if absent
func (a *Args) String(key string) string {
	v, ok := a.values[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Int returns the value under key as an int. Missing or non-numeric values
// read as 0.
func (a *Args) Int(key string) int {
	switch v := a.values[key].(type) {
	case int:
		return v
	case int8:
		return int(v)
	case int16:
		return int(v)
	case int32:
		return int(v)
	case int64:
		return int(v)
	case uint:
		return int(v)
	case uint8:
		return int(v)
	case uint16:
		return int(v)
	case uint32:
		return int(v)
	case uint64:
		return int(v)
	case float32:
		return int(v)
	case float64:
		return int(v)
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// Incr adds one to the integer under key and returns the new value
func (a *Args) Incr(key string) int {
	n := a.Int(key) + 1
	a.Set(key, n)
	return n
}
