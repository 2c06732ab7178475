package repo

import (
	"fmt"
	"strings"

	"github.com/odvcencio/gitlet/pkg/object"
)

// Commit records the staged changes as a new commit on the current branch
// and clears the index.
func (r *Repo) Commit(message string) (object.Hash, error) {
	st, err := r.LoadState()
	if err != nil {
		return "", err
	}
	id, err := r.createCommit(st, message, "")
	if err != nil {
		return "", err
	}
	if err := r.SaveState(st); err != nil {
		return "", err
	}
	return id, nil
}

// createCommit builds the next commit on st's branch from its tip and the
// index, persists it, moves the branch and clears the index. A non-empty
// mergeParent makes it a merge commit, which may leave the snapshot unchanged.
// The caller saves st.
func (r *Repo) createCommit(st *State, message string, mergeParent object.Hash) (object.Hash, error) {
	if strings.TrimSpace(message) == "" {
		return "", ErrEmptyMessage
	}
	parentID, parent, err := r.head(st)
	if err != nil {
		return "", err
	}
	snapshot := st.Index.apply(parent.Snapshot)
	if mergeParent == "" && object.SnapshotEqual(snapshot, parent.Snapshot) {
		return "", ErrNoChanges
	}

	c := &object.Commit{
		Message:     message,
		Timestamp:   r.now().UnixNano(),
		Parent:      parentID,
		MergeParent: mergeParent,
		Snapshot:    snapshot,
	}
	id, err := r.Store.WriteCommit(c)
	if err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	if err := r.UpdateBranch(st.Branch, id); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	st.Index.Clear()
	r.debug("commit created", "commit", id.Short(7), "branch", st.Branch, "files", len(snapshot), "merge", mergeParent != "")
	return id, nil
}
