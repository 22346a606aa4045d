package nodecache

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/taskgrid/internal/nodes"
)

func TestGetOrCreateReturnsSameInstance(t *testing.T) {
	cache := New()
	path := filepath.Join(t.TempDir(), "data.csv")

	first, err := cache.GetOrCreate(path)
	require.NoError(t, err)

	second, err := cache.GetOrCreate(path)
	require.NoError(t, err)

	assert.Same(t, first, second, "one file must map to exactly one node instance")
	assert.Equal(t, 1, cache.Len())
}

func TestGetOrCreateDistinguishesPaths(t *testing.T) {
	cache := New()
	dir := t.TempDir()

	a, err := cache.GetOrCreate(filepath.Join(dir, "a.txt"))
	require.NoError(t, err)
	b, err := cache.GetOrCreate(filepath.Join(dir, "b.txt"))
	require.NoError(t, err)

	assert.NotSame(t, a, b)
	assert.Equal(t, 2, cache.Len())
}

func TestGetOrCreateRejectsRelativePath(t *testing.T) {
	cache := New()

	_, err := cache.GetOrCreate("relative/a.txt")
	require.Error(t, err)

	var invalidErr *nodes.InvalidReferenceError
	assert.ErrorAs(t, err, &invalidErr)
	assert.Equal(t, 0, cache.Len())
}

func TestGetOrCreateConcurrent(t *testing.T) {
	cache := New()
	path := filepath.Join(t.TempDir(), "shared.txt")

	const goroutines = 32
	results := make([]*nodes.FileNode, goroutines)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			node, err := cache.GetOrCreate(path)
			assert.NoError(t, err)
			results[i] = node
		}(i)
	}
	wg.Wait()

	for i := 1; i < goroutines; i++ {
		assert.Same(t, results[0], results[i], "concurrent resolutions must share one instance")
	}
	assert.Equal(t, 1, cache.Len())
}

func TestReset(t *testing.T) {
	cache := New()
	path := filepath.Join(t.TempDir(), "a.txt")

	before, err := cache.GetOrCreate(path)
	require.NoError(t, err)

	cache.Reset()
	assert.Equal(t, 0, cache.Len())

	after, err := cache.GetOrCreate(path)
	require.NoError(t, err)
	assert.NotSame(t, before, after, "reset must drop node identity")
}
