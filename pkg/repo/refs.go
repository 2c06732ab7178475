package repo

import (
	"fmt"
	"sort"
	"strings"

	"github.com/odvcencio/gitlet/pkg/object"
)

const refsPrefix = "refs/heads/"

func branchKey(name string) string {
	return refsPrefix + name
}

func validBranchName(name string) error {
	if name == "" || strings.HasPrefix(name, "-") || strings.ContainsAny(name, " \t\n\x00:\\") {
		return ErrInvalidBranchName
	}
	for _, part := range strings.Split(name, "/") {
		if part == "" || part == "." || part == ".." {
			return ErrInvalidBranchName
		}
	}
	return nil
}

// BranchExists reports whether a branch ref named name is present.
func (r *Repo) BranchExists(name string) (bool, error) {
	if validBranchName(name) != nil {
		return false, nil
	}
	ok, err := r.KV.Has(branchKey(name))
	if err != nil {
		return false, fmt.Errorf("branch exists %q: %w", name, err)
	}
	return ok, nil
}

// ReadBranch returns the commit id branch name points at.
func (r *Repo) ReadBranch(name string) (object.Hash, error) {
	if validBranchName(name) != nil {
		return "", ErrNoSuchBranch
	}
	data, err := r.KV.Get(branchKey(name))
	if err != nil {
		if isNotFound(err) {
			return "", ErrNoSuchBranch
		}
		return "", fmt.Errorf("read branch %q: %w", name, err)
	}
	id := object.Hash(strings.TrimSpace(string(data)))
	if len(id) != object.HashLen {
		return "", fmt.Errorf("read branch %q: bad ref %q: %w", name, id, ErrCorruptState)
	}
	return id, nil
}

// UpdateBranch points name at id, creating the ref if needed.
func (r *Repo) UpdateBranch(name string, id object.Hash) error {
	if err := validBranchName(name); err != nil {
		return err
	}
	if err := r.KV.Put(branchKey(name), []byte(string(id)+"\n")); err != nil {
		return fmt.Errorf("update branch %q: %w", name, err)
	}
	r.debug("branch moved", "branch", name, "commit", id.Short(7))
	return nil
}

// Branches returns every branch name, sorted.
func (r *Repo) Branches() ([]string, error) {
	keys, err := r.KV.List(refsPrefix)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		names = append(names, strings.TrimPrefix(k, refsPrefix))
	}
	sort.Strings(names)
	return names, nil
}

// CreateBranch creates name at id. It fails with ErrBranchExists if the name
// is taken.
func (r *Repo) CreateBranch(name string, id object.Hash) error {
	if err := validBranchName(name); err != nil {
		return err
	}
	ok, err := r.BranchExists(name)
	if err != nil {
		return err
	}
	if ok {
		return ErrBranchExists
	}
	return r.UpdateBranch(name, id)
}

// DeleteBranch removes the ref for name. The commits it pointed at are kept.
func (r *Repo) DeleteBranch(st *State, name string) error {
	ok, err := r.BranchExists(name)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNoSuchBranch
	}
	if name == st.Branch {
		return ErrCurrentBranch
	}
	if err := r.KV.Delete(branchKey(name)); err != nil {
		return fmt.Errorf("delete branch %q: %w", name, err)
	}
	r.debug("branch deleted", "branch", name)
	return nil
}
