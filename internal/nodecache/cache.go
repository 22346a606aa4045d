// Package nodecache guarantees that one file on disk resolves to exactly one
// FileNode instance for the lifetime of a run. The downstream graph builder
// deduplicates edges by node identity, not value equality, so two tasks
// referencing the same file must observe the identical object.
//
// The cache is the only shared mutable state of the collection core. It is
// created empty per run and owned by the session, never by the process, so
// node identity cannot leak across unrelated runs in long-lived processes.
package nodecache

import (
	"sync"

	"github.com/vk/taskgrid/internal/nodes"
)

// Cache maps canonical absolute locations to their single node instance.
// It is safe for concurrent use; get-or-create is atomic, so two concurrent
// resolutions of the same location cannot yield two different instances.
type Cache struct {
	mu    sync.Mutex
	nodes map[string]*nodes.FileNode
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{nodes: make(map[string]*nodes.FileNode)}
}

// GetOrCreate returns the node for the given absolute location, constructing
// and storing it on first request. A relative location fails with
// InvalidReferenceError; callers must normalize beforehand.
func (c *Cache) GetOrCreate(path string) (*nodes.FileNode, error) {
	node, err := nodes.NewFileNode(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.nodes[node.Path()]; ok {
		return existing, nil
	}
	c.nodes[node.Path()] = node
	return node, nil
}

// Len returns the number of distinct locations seen so far.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.nodes)
}

// Reset drops all cached nodes. Intended for run teardown and tests.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nodes = make(map[string]*nodes.FileNode)
}
