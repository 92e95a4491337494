// Package registry provides a generic, type-safe table of named items
// used to resolve deferred event actions: source units, listener type
// factories and handler functions.
package registry
