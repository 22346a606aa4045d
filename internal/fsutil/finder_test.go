package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFilesBySuffix(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.hcl", "a.hcl", filepath.Join("sub", "c.hcl"), "note.txt"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, nil, 0o644))
	}

	files, err := FindFilesBySuffix(dir, ".hcl")
	require.NoError(t, err)

	expected := []string{
		filepath.Join(dir, "a.hcl"),
		filepath.Join(dir, "b.hcl"),
		filepath.Join(dir, "sub", "c.hcl"),
	}
	assert.Equal(t, expected, files, "results must be sorted and exclude other suffixes")
}

func TestFindFilesBySuffixEmptySuffixPanics(t *testing.T) {
	assert.Panics(t, func() {
		_, _ = FindFilesBySuffix(t.TempDir(), "")
	})
}
