// Package app wires the collection pipeline together: it loads task files,
// collects every task through the session's resolvers, builds the dependency
// graph, and reports a per-task summary.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/taskgrid/internal/collect"
	"github.com/vk/taskgrid/internal/ctxlog"
	"github.com/vk/taskgrid/internal/dag"
	"github.com/vk/taskgrid/internal/loader"
	"github.com/vk/taskgrid/internal/nodes"
	"github.com/vk/taskgrid/internal/normalize"
	"github.com/vk/taskgrid/internal/registry"
	"github.com/vk/taskgrid/internal/session"
)

// Module registers task handlers against an application's registry. The
// surrounding program supplies modules before loading starts.
type Module interface {
	Register(r *registry.Registry)
}

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	session *session.Session
	loader  *loader.Loader
}

// NewApp constructs the application with an isolated logger and a fresh
// session, and registers the given handler modules.
func NewApp(outW io.Writer, config *Config, modules ...Module) *App {
	logger := newLogger(config.LogLevel, config.LogFormat, outW)

	ses := session.New()
	for _, mod := range modules {
		mod.Register(ses.Handlers)
	}
	logger.Debug("Handler modules registered.", "count", len(modules))

	return &App{
		outW:    outW,
		logger:  logger,
		config:  config,
		session: ses,
		loader:  loader.NewLoader(ses.Handlers),
	}
}

// Session returns the application's session. This is primarily for testing.
func (a *App) Session() *session.Session {
	return a.session
}

// Run loads all task files under the configured path, collects every task,
// and builds the dependency graph. The first collection failure aborts the
// run; a failing task never contributes partial state to the graph.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Info("Collection started.", "run_id", a.session.ID.String(), "path", a.config.Path)

	definitions, err := a.loader.Load(ctx, a.config.Path)
	if err != nil {
		return fmt.Errorf("failed to load task files: %w", err)
	}

	tasks := make([]*nodes.Task, 0, len(definitions))
	for _, def := range definitions {
		task, err := collect.BuildTask(ctx, a.session.Collectors, a.session.Cache, def)
		if err != nil {
			return fmt.Errorf("collection failed: %w", err)
		}
		tasks = append(tasks, task)
	}

	graph, err := dag.Build(tasks)
	if err != nil {
		return fmt.Errorf("failed to build dependency graph: %w", err)
	}

	for _, task := range tasks {
		a.logger.Info("Collected task.",
			"task", task.Name(),
			"depends_on", countLeaves(task.DependsOn),
			"produces", countLeaves(task.Produces),
		)
	}
	a.logger.Info("Collection finished.",
		"tasks", len(tasks),
		"nodes", graph.Len(),
		"files", a.session.Cache.Len(),
	)
	return nil
}

func countLeaves(tree normalize.Tree[nodes.Node]) int {
	return len(normalize.Leaves(tree))
}
