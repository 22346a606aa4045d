package nodes

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/taskgrid/internal/normalize"
	"github.com/zclconf/go-cty/cty"
)

func TestTaskName(t *testing.T) {
	testCases := []struct {
		name     string
		path     string
		baseName string
		expected string
	}{
		{
			name:     "plain file",
			path:     "module.py",
			baseName: "task_dummy",
			expected: "module.py::task_dummy",
		},
		{
			name:     "nested path uses forward slashes",
			path:     filepath.Join("pkg", "tasks.hcl"),
			baseName: "build",
			expected: "pkg/tasks.hcl::build",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, TaskName(tc.path, tc.baseName))
		})
	}
}

func TestNewTaskDerivesNames(t *testing.T) {
	task := NewTask("tasks.hcl", "build", nil, normalize.Tree[Node]{}, normalize.Tree[Node]{}, nil, nil)

	assert.Equal(t, "tasks.hcl::build", task.Name())
	assert.Equal(t, task.Name(), task.ShortName, "short name defaults to the full name")
	assert.Equal(t, "build", task.BaseName)
	assert.Equal(t, Collected, task.Status())
}

func TestTaskExecuteTransitions(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var got map[string]cty.Value
		task := NewTask("tasks.hcl", "ok", func(ctx context.Context, kwargs map[string]cty.Value) error {
			got = kwargs
			return nil
		}, normalize.Tree[Node]{}, normalize.Tree[Node]{}, nil, map[string]cty.Value{"n": cty.NumberIntVal(1)})

		require.NoError(t, task.Execute(context.Background()))
		assert.Equal(t, Succeeded, task.Status())
		assert.True(t, cty.NumberIntVal(1).RawEquals(got["n"]), "kwargs must be bound to the body")
	})

	t.Run("failure", func(t *testing.T) {
		boom := errors.New("boom")
		task := NewTask("tasks.hcl", "bad", func(ctx context.Context, kwargs map[string]cty.Value) error {
			return boom
		}, normalize.Tree[Node]{}, normalize.Tree[Node]{}, nil, nil)

		require.ErrorIs(t, task.Execute(context.Background()), boom)
		assert.Equal(t, Failed, task.Status())
	})

	t.Run("nil body succeeds", func(t *testing.T) {
		task := NewTask("tasks.hcl", "noop", nil, normalize.Tree[Node]{}, normalize.Tree[Node]{}, nil, nil)
		require.NoError(t, task.Execute(context.Background()))
		assert.Equal(t, Succeeded, task.Status())
	})
}

func TestTaskState(t *testing.T) {
	t.Run("missing defining file is not found", func(t *testing.T) {
		task := NewTask(filepath.Join(t.TempDir(), "missing.hcl"), "a", nil, normalize.Tree[Node]{}, normalize.Tree[Node]{}, nil, nil)
		_, err := task.State()
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("existing defining file has a fingerprint", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tasks.hcl")
		require.NoError(t, os.WriteFile(path, []byte("task \"a\" {}"), 0o644))

		task := NewTask(path, "a", nil, normalize.Tree[Node]{}, normalize.Tree[Node]{}, nil, nil)
		state, err := task.State()
		require.NoError(t, err)
		assert.NotEmpty(t, state)
	})
}

func TestAddReportSection(t *testing.T) {
	task := NewTask("tasks.hcl", "a", nil, normalize.Tree[Node]{}, normalize.Tree[Node]{}, nil, nil)

	task.AddReportSection("call", "stdout", "hello")
	task.AddReportSection("call", "stderr", "") // empty content is dropped
	task.AddReportSection("teardown", "stdout", "bye")

	sections := task.ReportSections()
	require.Len(t, sections, 2)
	assert.Equal(t, ReportSection{When: "call", Key: "stdout", Content: "hello"}, sections[0])
	assert.Equal(t, ReportSection{When: "teardown", Key: "stdout", Content: "bye"}, sections[1])
}
