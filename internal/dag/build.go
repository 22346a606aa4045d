package dag

import (
	"fmt"

	"github.com/vk/taskgrid/internal/nodes"
	"github.com/vk/taskgrid/internal/normalize"
)

// Build assembles the dependency graph for the given tasks: one vertex per
// task and per distinct resource node, an edge from every dependency to its
// task, and from every task to its products. Cycle detection runs before the
// graph is returned.
func Build(tasks []*nodes.Task) (*Graph, error) {
	g := New()

	for _, task := range tasks {
		g.AddNode(task.Name())
	}

	for _, task := range tasks {
		for _, dep := range normalize.Leaves(task.DependsOn) {
			g.AddNode(dep.Name())
			if err := g.AddEdge(dep.Name(), task.Name()); err != nil {
				return nil, fmt.Errorf("adding dependency edge for task %q: %w", task.Name(), err)
			}
		}
		for _, product := range normalize.Leaves(task.Produces) {
			g.AddNode(product.Name())
			if err := g.AddEdge(task.Name(), product.Name()); err != nil {
				return nil, fmt.Errorf("adding product edge for task %q: %w", task.Name(), err)
			}
		}
	}

	if err := g.DetectCycles(); err != nil {
		return nil, err
	}
	return g, nil
}
