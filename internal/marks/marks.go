// Package marks models the annotations attached to a task callable. A mark
// carries the positional and keyword payload of one declaration; callables
// are wrapped one layer per attached mark so the task builder can both strip
// declarations and recover the innermost function for storage.
package marks

import (
	"context"
	"slices"

	"github.com/vk/taskgrid/internal/normalize"
	"github.com/zclconf/go-cty/cty"
)

// TaskFunc is the executable body of a task. Kwargs are the extra named
// values declared alongside the task and bound at call time.
type TaskFunc func(ctx context.Context, kwargs map[string]cty.Value) error

// Mark is one annotation attached to a callable.
type Mark struct {
	Name   string
	Args   []normalize.Spec
	Kwargs map[string]normalize.Spec
}

// Callable is a task function together with its attached marks and kwargs.
// Attaching a mark wraps the callable in a new layer; Unwrap walks back to
// the innermost one.
type Callable struct {
	fn     TaskFunc
	marks  []Mark
	kwargs map[string]cty.Value
	inner  *Callable
}

// NewCallable wraps a bare task function.
func NewCallable(fn TaskFunc) *Callable {
	return &Callable{fn: fn}
}

// Fn returns the task function of this layer.
func (c *Callable) Fn() TaskFunc {
	return c.fn
}

// Marks returns the marks visible on this layer, in attachment order.
func (c *Callable) Marks() []Mark {
	return c.marks
}

// Kwargs returns the extra named values declared for the task.
func (c *Callable) Kwargs() map[string]cty.Value {
	return c.kwargs
}

// WithKwargs returns a new layer carrying the given kwargs.
func WithKwargs(c *Callable, kwargs map[string]cty.Value) *Callable {
	return &Callable{fn: c.fn, marks: c.marks, kwargs: kwargs, inner: c}
}

// Attach returns a new layer with the mark appended.
func Attach(c *Callable, mark Mark) *Callable {
	return &Callable{
		fn:     c.fn,
		marks:  append(slices.Clone(c.marks), mark),
		kwargs: c.kwargs,
		inner:  c,
	}
}

// Remove returns a layer stripped of all marks with the given name, plus the
// removed marks in attachment order.
func Remove(c *Callable, name string) (*Callable, []Mark) {
	var kept, removed []Mark
	for _, mark := range c.marks {
		if mark.Name == name {
			removed = append(removed, mark)
			continue
		}
		kept = append(kept, mark)
	}
	stripped := &Callable{fn: c.fn, marks: kept, kwargs: c.kwargs, inner: c}
	return stripped, removed
}

// Unwrap returns the innermost callable, regardless of how many wrapping
// layers marks and kwargs added. Storing the unwrapped form guarantees that
// repeated introspection always observes one canonical function.
func Unwrap(c *Callable) *Callable {
	for c.inner != nil {
		c = c.inner
	}
	return c
}
