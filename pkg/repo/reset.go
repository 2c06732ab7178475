package repo

import "github.com/odvcencio/gitlet/pkg/object"

// Reset makes the working tree match the commit named by prefix, moves the
// current branch to it and clears the index.
func (r *Repo) Reset(prefix string) (object.Hash, error) {
	st, err := r.LoadState()
	if err != nil {
		return "", err
	}
	id, err := r.ResolveCommit(prefix)
	if err != nil {
		return "", err
	}
	_, cur, err := r.head(st)
	if err != nil {
		return "", err
	}
	target, err := r.readCommit(id)
	if err != nil {
		return "", err
	}

	if err := r.materialize(cur, target); err != nil {
		return "", err
	}
	if err := r.UpdateBranch(st.Branch, id); err != nil {
		return "", err
	}
	st.Index.Clear()
	if err := r.SaveState(st); err != nil {
		return "", err
	}
	return id, nil
}
