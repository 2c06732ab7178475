package repo

import (
	"errors"
	"fmt"

	"github.com/odvcencio/gitlet/pkg/object"
	"github.com/odvcencio/gitlet/pkg/worktree"
)

func cleanPath(p string) (string, error) {
	c, err := worktree.Clean(p)
	if err != nil {
		return "", ErrFileNotExist
	}
	return c, nil
}

// Add stages the working-tree content of path. Content identical to what the
// HEAD commit tracks clears any staged entry instead.
func (r *Repo) Add(path string) error {
	path, err := cleanPath(path)
	if err != nil {
		return err
	}
	st, err := r.LoadState()
	if err != nil {
		return err
	}
	_, head, err := r.head(st)
	if err != nil {
		return err
	}
	data, err := r.Work.Read(path)
	if err != nil {
		if errors.Is(err, worktree.ErrNotExist) {
			return ErrFileNotExist
		}
		return fmt.Errorf("add: %w", err)
	}

	id := r.Store.HashFunc().BlobID(path, data)
	if head.Snapshot[path] != id {
		if _, err := r.Store.WriteBlob(&object.Blob{Path: path, Data: data}); err != nil {
			return fmt.Errorf("add: %w", err)
		}
	}
	st.Index.Stage(path, id, head.Snapshot)
	r.debug("staged", "path", path, "blob", id.Short(7), "staged", st.Index.Added[path] != "")
	return r.SaveState(st)
}

// Remove unstages path if it is staged for addition. If the HEAD commit
// tracks it, the path is also staged for removal and deleted from the working
// tree.
func (r *Repo) Remove(path string) error {
	path, err := cleanPath(path)
	if err != nil {
		return err
	}
	st, err := r.LoadState()
	if err != nil {
		return err
	}
	_, head, err := r.head(st)
	if err != nil {
		return err
	}
	_, staged := st.Index.Added[path]
	tracked := head.Tracks(path)
	if !staged && !tracked {
		return ErrNoReasonToRemove
	}

	st.Index.Unstage(path)
	if tracked {
		st.Index.MarkRemoved(path)
		if err := r.Work.Remove(path); err != nil {
			return fmt.Errorf("rm: %w", err)
		}
	}
	return r.SaveState(st)
}
