package session

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestNewSession(t *testing.T) {
	ses := New()

	require.NotNil(t, ses.Collectors)
	require.NotNil(t, ses.Cache)
	require.NotNil(t, ses.Handlers)
	assert.NotEqual(t, ses.ID.String(), New().ID.String(), "every run gets its own ID")
}

func TestSessionWiresFileCollector(t *testing.T) {
	ses := New()
	path := filepath.Join(t.TempDir(), "tasks.hcl")

	node, err := ses.Collectors.Collect(context.Background(), ses.Cache, path, "tasks.hcl::a", cty.StringVal("in.txt"))
	require.NoError(t, err)
	assert.Equal(t, 1, ses.Cache.Len())
	assert.Contains(t, node.Name(), "in.txt")
}

func TestSessionsDoNotShareNodeIdentity(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")

	first := New()
	a, err := first.Cache.GetOrCreate(path)
	require.NoError(t, err)

	second := New()
	b, err := second.Cache.GetOrCreate(path)
	require.NoError(t, err)

	assert.NotSame(t, a, b)
}
