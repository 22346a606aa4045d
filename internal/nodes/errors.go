package nodes

import (
	"errors"
	"fmt"
)

// ErrNotFound classifies fingerprint requests for resources that do not
// exist. Callers decide whether absence is meaningful, e.g. a product that
// has not been produced yet.
var ErrNotFound = errors.New("node not found")

// InvalidReferenceError reports a resource reference that could not be put
// in canonical absolute form.
type InvalidReferenceError struct {
	Reference string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("reference %q is not an absolute path", e.Reference)
}
