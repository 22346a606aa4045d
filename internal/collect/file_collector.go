package collect

import (
	"context"
	"path/filepath"

	"github.com/vk/taskgrid/internal/nodecache"
	"github.com/vk/taskgrid/internal/nodes"
	"github.com/zclconf/go-cty/cty"
)

// FileCollector recognizes string references as file paths. Relative paths
// are resolved against the directory of the defining file. All nodes go
// through the identity cache, never through direct construction.
type FileCollector struct{}

// TryCollect implements NodeCollector.
func (FileCollector) TryCollect(ctx context.Context, cache *nodecache.Cache, path string, ref cty.Value) (nodes.Node, error) {
	if ref.IsNull() || !ref.IsKnown() || ref.Type() != cty.String {
		return nil, nil
	}

	location := ref.AsString()
	if location == "" {
		return nil, nil
	}
	if !filepath.IsAbs(location) {
		location = filepath.Join(filepath.Dir(path), location)
	}

	node, err := cache.GetOrCreate(location)
	if err != nil {
		return nil, err
	}
	return node, nil
}
