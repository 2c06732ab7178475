// Package worktree adapts the user's working directory for the repository
// engine. Paths are always slash-separated and relative to the tree root.
package worktree

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// ErrNotExist is returned by Read for a path that is not in the tree.
var ErrNotExist = errors.New("file does not exist")

// Tree is the working-tree surface the repository reads and writes.
type Tree interface {
	Read(p string) ([]byte, error)
	Write(p string, data []byte) error
	// Remove deletes p. Removing a missing path is not an error.
	Remove(p string) error
	Exists(p string) bool
	// List returns every non-ignored regular file, sorted.
	List() ([]string, error)
}

// Clean normalizes a user-supplied path into tree form and rejects paths that
// escape the root.
func Clean(p string) (string, error) {
	p = strings.ReplaceAll(strings.TrimSpace(p), "\\", "/")
	if p == "" {
		return "", fmt.Errorf("empty path")
	}
	if strings.HasPrefix(p, "/") {
		return "", fmt.Errorf("path %q is absolute", p)
	}
	c := path.Clean(p)
	if c == "." || c == ".." || strings.HasPrefix(c, "../") {
		return "", fmt.Errorf("path %q is outside the working tree", p)
	}
	if strings.ContainsAny(c, "\n\x00") {
		return "", fmt.Errorf("path %q contains invalid characters", p)
	}
	return c, nil
}
