// Package session owns the run-scoped state of a collection pass: the
// collector registry, the node identity cache, and the task handler
// registry. A session lives exactly as long as one run; creating a new
// session resets all node identity.
package session

import (
	"github.com/google/uuid"
	"github.com/vk/taskgrid/internal/collect"
	"github.com/vk/taskgrid/internal/nodecache"
	"github.com/vk/taskgrid/internal/registry"
)

// Session is the run context shared by loading and collection.
type Session struct {
	// ID identifies this run in logs and reports.
	ID uuid.UUID
	// Collectors resolve raw references into nodes, in registration order.
	Collectors *collect.Registry
	// Cache maps absolute file locations to their single node instance.
	Cache *nodecache.Cache
	// Handlers maps handler names to task bodies.
	Handlers *registry.Registry
}

// New creates a session with a fresh cache and the built-in file collector
// already registered. Additional collectors can be registered before
// collection starts.
func New() *Session {
	collectors := collect.NewRegistry()
	collectors.Register(collect.FileCollector{})

	return &Session{
		ID:         uuid.New(),
		Collectors: collectors,
		Cache:      nodecache.New(),
		Handlers:   registry.New(),
	}
}
