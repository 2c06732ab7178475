package repo

import (
	"sort"

	"github.com/odvcencio/gitlet/pkg/object"
)

// Index is the staging area: blobs staged for addition and paths staged for
// removal. It is persisted as JSON under the "index" key.
type Index struct {
	Added   map[string]object.Hash `json:"added"`
	Removed map[string]bool        `json:"removed"`
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{
		Added:   make(map[string]object.Hash),
		Removed: make(map[string]bool),
	}
}

// Stage records id as the pending content of path. If head already tracks
// path at id the entry is dropped instead, so a no-op add leaves nothing
// behind. Staging a path always cancels its pending removal.
func (ix *Index) Stage(path string, id object.Hash, head map[string]object.Hash) {
	delete(ix.Removed, path)
	if cur, ok := head[path]; ok && cur == id {
		delete(ix.Added, path)
		return
	}
	ix.Added[path] = id
}

// Unstage drops a pending addition and reports whether there was one.
func (ix *Index) Unstage(path string) bool {
	_, ok := ix.Added[path]
	delete(ix.Added, path)
	return ok
}

// MarkRemoved stages path for removal from the next commit.
func (ix *Index) MarkRemoved(path string) {
	delete(ix.Added, path)
	ix.Removed[path] = true
}

// IsRemoved reports whether path is staged for removal.
func (ix *Index) IsRemoved(path string) bool {
	return ix.Removed[path]
}

// Clear drops every staged addition and removal.
func (ix *Index) Clear() {
	ix.Added = make(map[string]object.Hash)
	ix.Removed = make(map[string]bool)
}

// Empty reports whether nothing is staged.
func (ix *Index) Empty() bool {
	return len(ix.Added) == 0 && len(ix.Removed) == 0
}

// Entries returns a copy of the staged additions.
func (ix *Index) Entries() map[string]object.Hash {
	out := make(map[string]object.Hash, len(ix.Added))
	for p, id := range ix.Added {
		out[p] = id
	}
	return out
}

// StagedPaths returns the paths staged for addition, sorted.
func (ix *Index) StagedPaths() []string {
	out := make([]string, 0, len(ix.Added))
	for p := range ix.Added {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// RemovedPaths returns the paths staged for removal, sorted.
func (ix *Index) RemovedPaths() []string {
	out := make([]string, 0, len(ix.Removed))
	for p, ok := range ix.Removed {
		if ok {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}

// apply derives the snapshot of the next commit from its parent's.
func (ix *Index) apply(parent map[string]object.Hash) map[string]object.Hash {
	next := make(map[string]object.Hash, len(parent)+len(ix.Added))
	for p, id := range parent {
		if !ix.Removed[p] {
			next[p] = id
		}
	}
	for p, id := range ix.Added {
		next[p] = id
	}
	return next
}
