package collect

import (
	"context"
	"fmt"

	"github.com/vk/taskgrid/internal/marks"
	"github.com/vk/taskgrid/internal/nodecache"
	"github.com/vk/taskgrid/internal/nodes"
	"github.com/vk/taskgrid/internal/normalize"
	"github.com/zclconf/go-cty/cty"
)

// Definition is one task definition as produced by the declaration layer:
// where it was defined, what it is called, and its annotated callable.
type Definition struct {
	Path     string
	BaseName string
	Callable *marks.Callable
}

// declarationParser validates one declaration's payload, see marks.DependsOn.
type declarationParser func(args []normalize.Spec, kwargs map[string]normalize.Spec) (normalize.Spec, error)

// BuildTask assembles a task from its definition: it extracts the dependency
// and product declarations, normalizes and merges their payloads, resolves
// every leaf reference through the collector registry, and stores the
// innermost callable. Any failure aborts the whole task; collection is
// all-or-nothing so one task's failure cannot corrupt another's graph.
func BuildTask(ctx context.Context, collectors *Registry, cache *nodecache.Cache, def Definition) (*nodes.Task, error) {
	dependsOn, err := collectDeclarations(ctx, collectors, cache, def, "depends_on", marks.DependsOn)
	if err != nil {
		return nil, err
	}
	produces, err := collectDeclarations(ctx, collectors, cache, def, "produces", marks.Produces)
	if err != nil {
		return nil, err
	}

	remaining := def.Callable
	remaining, _ = marks.Remove(remaining, "depends_on")
	remaining, _ = marks.Remove(remaining, "produces")

	unwrapped := marks.Unwrap(def.Callable)

	task := nodes.NewTask(
		def.Path,
		def.BaseName,
		unwrapped.Fn(),
		dependsOn,
		produces,
		remaining.Marks(),
		def.Callable.Kwargs(),
	)
	return task, nil
}

func collectDeclarations(
	ctx context.Context,
	collectors *Registry,
	cache *nodecache.Cache,
	def Definition,
	kind string,
	parse declarationParser,
) (normalize.Tree[nodes.Node], error) {
	taskName := nodes.TaskName(def.Path, def.BaseName)
	_, declarations := marks.Remove(def.Callable, kind)

	normalizer := normalize.NewNormalizer()
	mappings := make([]normalize.Tree[cty.Value], 0, len(declarations))
	for _, mark := range declarations {
		payload, err := parse(mark.Args, mark.Kwargs)
		if err != nil {
			return normalize.Tree[nodes.Node]{}, fmt.Errorf("task %q: %w", taskName, err)
		}
		mappings = append(mappings, normalizer.Normalize(payload))
	}

	merged, err := normalize.Merge(kind, mappings)
	if err != nil {
		return normalize.Tree[nodes.Node]{}, fmt.Errorf("task %q: %w", taskName, err)
	}

	return normalize.MapTree(merged, func(ref cty.Value) (nodes.Node, error) {
		return collectors.Collect(ctx, cache, def.Path, taskName, ref)
	})
}
