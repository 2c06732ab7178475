package repo

// Branch creates a branch named name at the current HEAD commit. HEAD is not
// moved.
func (r *Repo) Branch(name string) error {
	st, err := r.LoadState()
	if err != nil {
		return err
	}
	id, _, err := r.head(st)
	if err != nil {
		return err
	}
	return r.CreateBranch(name, id)
}

// RemoveBranch deletes the branch named name. The checked-out branch cannot
// be removed.
func (r *Repo) RemoveBranch(name string) error {
	st, err := r.LoadState()
	if err != nil {
		return err
	}
	return r.DeleteBranch(st, name)
}

// CurrentBranch returns the name of the checked-out branch.
func (r *Repo) CurrentBranch() (string, error) {
	st, err := r.LoadState()
	if err != nil {
		return "", err
	}
	return st.Branch, nil
}
