// Package collect resolves the raw references of a task's declarations into
// concrete nodes. Resolution is pluggable: collectors are tried in
// registration order and the first one that recognizes a reference wins. A
// reference no collector recognizes is a terminal failure for that task's
// collection; nothing here retries or recovers.
package collect

import (
	"context"
	"fmt"

	"github.com/vk/taskgrid/internal/nodecache"
	"github.com/vk/taskgrid/internal/nodes"
	"github.com/zclconf/go-cty/cty"
)

// NodeCollector classifies a raw reference into a node. Implementations
// return (nil, nil) when they do not recognize the reference, leaving it to
// the next collector in line.
type NodeCollector interface {
	TryCollect(ctx context.Context, cache *nodecache.Cache, path string, ref cty.Value) (nodes.Node, error)
}

// NotCollectedError reports a reference that no registered collector could
// classify as a dependency or product.
type NotCollectedError struct {
	Reference string
	TaskName  string
	Path      string
}

func (e *NotCollectedError) Error() string {
	return fmt.Sprintf("%q cannot be parsed as a dependency or product for task %q in %q",
		e.Reference, e.TaskName, e.Path)
}

// Registry holds the collectors for one run in registration order.
type Registry struct {
	collectors []NodeCollector
}

// NewRegistry returns an empty collector registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends a collector. Order matters: earlier collectors get the
// first chance at every reference.
func (r *Registry) Register(c NodeCollector) {
	r.collectors = append(r.collectors, c)
}

// Collect resolves one reference for the named task defined at path. It
// returns the first collector's non-nil result, or NotCollectedError when
// every collector passes.
func (r *Registry) Collect(ctx context.Context, cache *nodecache.Cache, path, taskName string, ref cty.Value) (nodes.Node, error) {
	for _, c := range r.collectors {
		node, err := c.TryCollect(ctx, cache, path, ref)
		if err != nil {
			return nil, err
		}
		if node != nil {
			return node, nil
		}
	}
	return nil, &NotCollectedError{Reference: refString(ref), TaskName: taskName, Path: path}
}

func refString(ref cty.Value) string {
	if ref.IsKnown() && !ref.IsNull() && ref.Type() == cty.String {
		return ref.AsString()
	}
	return ref.GoString()
}
