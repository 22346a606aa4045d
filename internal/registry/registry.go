// Package registry maps handler names to the Go functions that implement
// task bodies. Declarations bind a body by name; registration happens at
// startup, before any loading, so duplicate names are programmer errors.
package registry

import (
	"fmt"
	"log/slog"

	"github.com/vk/taskgrid/internal/marks"
)

// Registry holds all registered task handlers.
type Registry struct {
	all map[string]marks.TaskFunc
}

// New creates an empty handler registry.
func New() *Registry {
	return &Registry{all: make(map[string]marks.TaskFunc)}
}

// Register adds a handler under the given name.
func (r *Registry) Register(name string, fn marks.TaskFunc) {
	if _, exists := r.all[name]; exists {
		panic(fmt.Sprintf("task handler with name '%s' already registered", name))
	}
	slog.Debug("Registering task handler.", "name", name)
	r.all[name] = fn
}

// Lookup returns the handler registered under name.
func (r *Registry) Lookup(name string) (marks.TaskFunc, bool) {
	fn, ok := r.all[name]
	return fn, ok
}
