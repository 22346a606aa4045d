package nodes

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/vk/taskgrid/internal/marks"
	"github.com/vk/taskgrid/internal/normalize"
	"github.com/zclconf/go-cty/cty"
)

// Status is the lifecycle state of a task.
type Status int32

const (
	// Collected means the task has been assembled but not started.
	Collected Status = iota
	// Executing means the task body is currently running.
	Executing
	// Succeeded means the task body returned without error.
	Succeeded
	// Failed means the task body returned an error.
	Failed
)

func (s Status) String() string {
	switch s {
	case Collected:
		return "collected"
	case Executing:
		return "executing"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// ReportSection is one entry accumulated during execution for later display,
// e.g. captured stdout or stderr.
type ReportSection struct {
	When    string
	Key     string
	Content string
}

// Task is a node that executes a function. It owns the resolved dependency
// and product mappings built during collection. Everything except the report
// sections is immutable after construction.
type Task struct {
	// BaseName is the short name the task was declared with.
	BaseName string
	// ShortName is the display name; it defaults to the full name until a
	// display layer shortens it.
	ShortName string
	// Path is the file the task was defined in.
	Path string
	// Fn is the innermost task function, stripped of all wrapping layers.
	Fn marks.TaskFunc
	// DependsOn and Produces map reference keys to resolved nodes.
	DependsOn normalize.Tree[Node]
	Produces  normalize.Tree[Node]
	// Marks are the annotations left on the callable after the dependency
	// and product declarations were extracted. Opaque to this package.
	Marks []marks.Mark
	// Kwargs are extra named values bound to the task body at call time.
	Kwargs map[string]cty.Value

	name   string
	status atomic.Int32

	mu             sync.Mutex
	reportSections []ReportSection
}

// NewTask assembles a task. The unique name is derived from the defining
// path and base name; ShortName defaults to it.
func NewTask(
	path string,
	baseName string,
	fn marks.TaskFunc,
	dependsOn normalize.Tree[Node],
	produces normalize.Tree[Node],
	ms []marks.Mark,
	kwargs map[string]cty.Value,
) *Task {
	name := TaskName(path, baseName)
	return &Task{
		BaseName:  baseName,
		ShortName: name,
		Path:      path,
		Fn:        fn,
		DependsOn: dependsOn,
		Produces:  produces,
		Marks:     ms,
		Kwargs:    kwargs,
		name:      name,
	}
}

// TaskName derives the globally unique task name from the defining file's
// forward-slash path and the task's base name.
func TaskName(path, baseName string) string {
	return filepath.ToSlash(path) + "::" + baseName
}

// Name returns the task's globally unique identifier.
func (t *Task) Name() string {
	return t.name
}

// Status returns the task's current lifecycle state.
func (t *Task) Status() Status {
	return Status(t.status.Load())
}

// State returns the last modification time of the defining file.
func (t *Task) State() (string, error) {
	info, err := os.Stat(t.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, t.name)
		}
		return "", err
	}
	return strconv.FormatInt(info.ModTime().UnixNano(), 10), nil
}

// Execute runs the task body, binding the task's kwargs. The task moves to
// Executing and ends in Succeeded or Failed; no other transitions exist.
func (t *Task) Execute(ctx context.Context) error {
	t.status.Store(int32(Executing))

	if t.Fn != nil {
		if err := t.Fn(ctx, t.Kwargs); err != nil {
			t.status.Store(int32(Failed))
			return err
		}
	}
	t.status.Store(int32(Succeeded))
	return nil
}

// AddReportSection appends a report entry. Empty content is dropped.
func (t *Task) AddReportSection(when, key, content string) {
	if content == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.reportSections = append(t.reportSections, ReportSection{When: when, Key: key, Content: content})
}

// ReportSections returns a copy of the accumulated report entries in order.
func (t *Task) ReportSections() []ReportSection {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]ReportSection, len(t.reportSections))
	copy(out, t.reportSections)
	return out
}
