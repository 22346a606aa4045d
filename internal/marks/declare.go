package marks

import (
	"fmt"

	"github.com/vk/taskgrid/internal/normalize"
)

// DependsOn parses the payload of one depends_on declaration. It is an
// identity function over the payload; its only job is to reject malformed
// argument lists with an error naming the declaration, so a misspecified
// mark fails the same way at collection time as it would when written.
func DependsOn(args []normalize.Spec, kwargs map[string]normalize.Spec) (normalize.Spec, error) {
	return parseDeclaration("depends_on", args, kwargs)
}

// Produces parses the payload of one produces declaration. See DependsOn.
func Produces(args []normalize.Spec, kwargs map[string]normalize.Spec) (normalize.Spec, error) {
	return parseDeclaration("produces", args, kwargs)
}

func parseDeclaration(name string, args []normalize.Spec, kwargs map[string]normalize.Spec) (normalize.Spec, error) {
	objects, hasKeyword := kwargs["objects"]

	switch {
	case len(args) == 1 && len(kwargs) == 0:
		return args[0], nil
	case len(args) == 0 && hasKeyword && len(kwargs) == 1:
		return objects, nil
	default:
		return normalize.Spec{}, fmt.Errorf(
			"%s() takes a single %q argument, got %d positional and %d keyword arguments",
			name, "objects", len(args), len(kwargs))
	}
}
