// Package loader reads task declarations from HCL files and turns them into
// definitions ready for collection. Each `task` block becomes one
// definition; its repeated `depends_on` and `produces` blocks become marks
// attached to the task's callable, one mark per block, in source order.
package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/taskgrid/internal/collect"
	"github.com/vk/taskgrid/internal/ctxlog"
	"github.com/vk/taskgrid/internal/fsutil"
	"github.com/vk/taskgrid/internal/marks"
	"github.com/vk/taskgrid/internal/nodes"
	"github.com/vk/taskgrid/internal/normalize"
	"github.com/vk/taskgrid/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// TaskFileSuffix is the extension task declaration files must carry.
const TaskFileSuffix = ".hcl"

var fileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "task", LabelNames: []string{"name"}},
	},
}

var taskSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "handler"},
		{Name: "kwargs"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "depends_on"},
		{Type: "produces"},
	},
}

var declarationSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "objects", Required: true},
	},
}

// Loader parses task files and binds declared handlers against a registry.
type Loader struct {
	handlers *registry.Registry
}

// NewLoader creates a loader that resolves `handler` attributes against the
// given registry.
func NewLoader(handlers *registry.Registry) *Loader {
	return &Loader{handlers: handlers}
}

// Load walks the given paths for task files and returns the definitions they
// declare. Paths may name single .hcl files or directories to search
// recursively. Defining paths are made absolute so relative file references
// resolve against the defining file's directory. Duplicate task names are
// rejected here; collection relies on names being globally unique.
func (l *Loader) Load(ctx context.Context, paths ...string) ([]collect.Definition, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := l.findTaskFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered task files.", "count", len(files))

	parser := hclparse.NewParser()
	var definitions []collect.Definition
	seen := make(map[string]struct{})

	for _, file := range files {
		absFile, err := filepath.Abs(file)
		if err != nil {
			return nil, fmt.Errorf("error resolving path %s: %w", file, err)
		}

		hclFile, diags := parser.ParseHCLFile(absFile)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse task file %s: %w", file, diags)
		}

		content, diags := hclFile.Body.Content(fileSchema)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode task file %s: %w", file, diags)
		}

		for _, block := range content.Blocks {
			def, err := l.translateTask(absFile, block)
			if err != nil {
				return nil, err
			}

			name := nodes.TaskName(def.Path, def.BaseName)
			if _, dup := seen[name]; dup {
				return nil, fmt.Errorf("duplicate task name %q in %s", name, file)
			}
			seen[name] = struct{}{}
			definitions = append(definitions, def)
		}
	}

	logger.Debug("Task loading complete.", "tasks", len(definitions))
	return definitions, nil
}

func (l *Loader) translateTask(file string, block *hcl.Block) (collect.Definition, error) {
	baseName := block.Labels[0]

	content, diags := block.Body.Content(taskSchema)
	if diags.HasErrors() {
		return collect.Definition{}, fmt.Errorf("invalid task %q in %s: %w", baseName, file, diags)
	}

	fn, err := l.resolveHandler(file, baseName, content.Attributes["handler"])
	if err != nil {
		return collect.Definition{}, err
	}
	callable := marks.NewCallable(fn)

	if attr, ok := content.Attributes["kwargs"]; ok {
		kwargs, err := evaluateKwargs(file, baseName, attr)
		if err != nil {
			return collect.Definition{}, err
		}
		callable = marks.WithKwargs(callable, kwargs)
	}

	for _, declaration := range content.Blocks {
		payload, err := evaluateObjects(file, baseName, declaration)
		if err != nil {
			return collect.Definition{}, err
		}
		callable = marks.Attach(callable, marks.Mark{
			Name: declaration.Type,
			Args: []normalize.Spec{normalize.FromValue(payload)},
		})
	}

	return collect.Definition{Path: file, BaseName: baseName, Callable: callable}, nil
}

func (l *Loader) resolveHandler(file, baseName string, attr *hcl.Attribute) (marks.TaskFunc, error) {
	if attr == nil {
		// Tasks without a handler get a no-op body; they still contribute
		// their dependency and product edges to the graph.
		return nil, nil
	}

	value, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid handler for task %q in %s: %w", baseName, file, diags)
	}
	if value.IsNull() || value.Type() != cty.String {
		return nil, fmt.Errorf("handler for task %q in %s must be a string", baseName, file)
	}

	name := value.AsString()
	fn, ok := l.handlers.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("task %q in %s references unknown handler %q", baseName, file, name)
	}
	return fn, nil
}

func evaluateKwargs(file, baseName string, attr *hcl.Attribute) (map[string]cty.Value, error) {
	value, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid kwargs for task %q in %s: %w", baseName, file, diags)
	}

	ty := value.Type()
	if value.IsNull() || (!ty.IsObjectType() && !ty.IsMapType()) {
		return nil, fmt.Errorf("kwargs for task %q in %s must be an object", baseName, file)
	}
	return value.AsValueMap(), nil
}

func evaluateObjects(file, baseName string, block *hcl.Block) (cty.Value, error) {
	content, diags := block.Body.Content(declarationSchema)
	if diags.HasErrors() {
		return cty.NilVal, fmt.Errorf("invalid %s block for task %q in %s: %w", block.Type, baseName, file, diags)
	}

	value, diags := content.Attributes["objects"].Expr.Value(nil)
	if diags.HasErrors() {
		return cty.NilVal, fmt.Errorf("invalid %s objects for task %q in %s: %w", block.Type, baseName, file, diags)
	}
	return value, nil
}

// findTaskFiles flattens the given paths into a deduplicated list of task
// files. Paths that do not exist are skipped, matching the behavior of
// optional search locations.
func (l *Loader) findTaskFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if info.IsDir() {
			found, err := fsutil.FindFilesBySuffix(path, TaskFileSuffix)
			if err != nil {
				return nil, err
			}
			for _, f := range found {
				if _, wasSeen := seen[f]; !wasSeen {
					allFiles = append(allFiles, f)
					seen[f] = struct{}{}
				}
			}
		} else if filepath.Ext(path) == TaskFileSuffix {
			if _, wasSeen := seen[path]; !wasSeen {
				allFiles = append(allFiles, path)
				seen[path] = struct{}{}
			}
		}
	}
	return allFiles, nil
}
