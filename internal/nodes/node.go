// Package nodes defines the vertices of the task dependency graph: tasks and
// the file-backed resources they depend on or produce. Every node has a
// globally unique name and a coarse content fingerprint used by the graph
// layer to detect staleness.
package nodes

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Node is any addressable entity in the dependency graph.
type Node interface {
	// Name returns the node's globally unique identifier.
	Name() string
	// State returns a fingerprint of the node's current content. Equal
	// fingerprints imply no externally visible change between the two
	// observations; the guarantee is coarse, limited by mtime resolution,
	// and not cryptographic. A missing resource yields an error that
	// matches ErrNotFound.
	State() (string, error)
}

// FileNode is a node backed by a file on disk.
type FileNode struct {
	value string
	path  string
}

// NewFileNode builds a node for the given location. The location must
// already be absolute; callers are responsible for resolving relative
// references beforehand.
func NewFileNode(path string) (*FileNode, error) {
	if !filepath.IsAbs(path) {
		return nil, &InvalidReferenceError{Reference: path}
	}
	clean := filepath.Clean(path)
	return &FileNode{value: clean, path: clean}, nil
}

// Name returns the canonical forward-slash form of the file's location.
func (n *FileNode) Name() string {
	return filepath.ToSlash(n.path)
}

// Value returns the location as requested by the task.
func (n *FileNode) Value() string {
	return n.value
}

// Path returns the absolute location of the file.
func (n *FileNode) Path() string {
	return n.path
}

// State returns the file's last modification time as a fingerprint.
func (n *FileNode) State() (string, error) {
	info, err := os.Stat(n.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, n.Name())
		}
		return "", err
	}
	return strconv.FormatInt(info.ModTime().UnixNano(), 10), nil
}
