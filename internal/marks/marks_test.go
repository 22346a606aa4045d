package marks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/taskgrid/internal/normalize"
	"github.com/zclconf/go-cty/cty"
)

func noop(ctx context.Context, kwargs map[string]cty.Value) error { return nil }

func depMark(ref string) Mark {
	return Mark{Name: "depends_on", Args: []normalize.Spec{normalize.Scalar(cty.StringVal(ref))}}
}

func TestAttachAndRemove(t *testing.T) {
	c := NewCallable(noop)
	c = Attach(c, depMark("a.txt"))
	c = Attach(c, Mark{Name: "produces", Args: []normalize.Spec{normalize.Scalar(cty.StringVal("out.txt"))}})
	c = Attach(c, depMark("b.txt"))

	stripped, removed := Remove(c, "depends_on")
	require.Len(t, removed, 2)
	assert.Equal(t, depMark("a.txt"), removed[0], "attachment order must be preserved")
	assert.Equal(t, depMark("b.txt"), removed[1])

	require.Len(t, stripped.Marks(), 1)
	assert.Equal(t, "produces", stripped.Marks()[0].Name)

	// The original layer is untouched.
	assert.Len(t, c.Marks(), 3)
}

func TestUnwrapReachesInnermostLayer(t *testing.T) {
	inner := NewCallable(noop)
	wrapped := Attach(inner, depMark("a.txt"))
	wrapped = WithKwargs(wrapped, map[string]cty.Value{"n": cty.NumberIntVal(1)})
	wrapped = Attach(wrapped, depMark("b.txt"))

	assert.Same(t, inner, Unwrap(wrapped))
	assert.Same(t, inner, Unwrap(inner), "unwrapping a bare callable is a no-op")
}

func TestWithKwargs(t *testing.T) {
	c := NewCallable(noop)
	assert.Nil(t, c.Kwargs())

	kwargs := map[string]cty.Value{"retries": cty.NumberIntVal(3)}
	c = WithKwargs(c, kwargs)
	assert.Equal(t, kwargs, c.Kwargs())

	// Kwargs survive further mark attachment.
	c = Attach(c, depMark("a.txt"))
	assert.Equal(t, kwargs, c.Kwargs())
}

func TestDeclarationParsers(t *testing.T) {
	payload := normalize.Scalar(cty.StringVal("in.txt"))

	testCases := []struct {
		name      string
		args      []normalize.Spec
		kwargs    map[string]normalize.Spec
		expectErr string
	}{
		{
			name: "single positional payload",
			args: []normalize.Spec{payload},
		},
		{
			name:   "objects keyword payload",
			kwargs: map[string]normalize.Spec{"objects": payload},
		},
		{
			name:      "no payload",
			expectErr: "depends_on()",
		},
		{
			name:      "too many positional arguments",
			args:      []normalize.Spec{payload, payload},
			expectErr: "depends_on()",
		},
		{
			name:      "unknown keyword",
			kwargs:    map[string]normalize.Spec{"objs": payload},
			expectErr: "depends_on()",
		},
		{
			name:      "positional and keyword together",
			args:      []normalize.Spec{payload},
			kwargs:    map[string]normalize.Spec{"objects": payload},
			expectErr: "depends_on()",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DependsOn(tc.args, tc.kwargs)
			if tc.expectErr != "" {
				require.Error(t, err)
				assert.ErrorContains(t, err, tc.expectErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, payload, got, "the parser is an identity over its payload")
		})
	}
}

func TestProducesParserNamesItself(t *testing.T) {
	_, err := Produces(nil, nil)
	require.Error(t, err)
	assert.ErrorContains(t, err, "produces()")
}
