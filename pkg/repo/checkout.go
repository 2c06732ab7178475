package repo

import (
	"fmt"
	"sort"

	"github.com/odvcencio/gitlet/pkg/object"
)

// ResolveCommit expands a commit id prefix to the unique full id it names.
// No match, several matches or a malformed prefix fail with ErrNoSuchCommit.
func (r *Repo) ResolveCommit(prefix string) (object.Hash, error) {
	ids, err := r.Store.ResolvePrefix(prefix)
	if err != nil {
		return "", err
	}
	if len(ids) != 1 {
		return "", ErrNoSuchCommit
	}
	return ids[0], nil
}

// CheckoutFile restores path in the working tree to its content in the HEAD
// commit. The index is left unchanged.
func (r *Repo) CheckoutFile(path string) error {
	_, head, err := r.ResolveHeadCommit()
	if err != nil {
		return err
	}
	return r.checkoutPath(head, path)
}

// CheckoutCommitFile restores path in the working tree to its content in the
// commit named by prefix.
func (r *Repo) CheckoutCommitFile(prefix, path string) error {
	if _, err := r.LoadState(); err != nil {
		return err
	}
	id, err := r.ResolveCommit(prefix)
	if err != nil {
		return err
	}
	c, err := r.readCommit(id)
	if err != nil {
		return err
	}
	return r.checkoutPath(c, path)
}

func (r *Repo) checkoutPath(c *object.Commit, path string) error {
	p, err := cleanPath(path)
	if err != nil {
		return ErrPathNotTracked
	}
	id, ok := c.Snapshot[p]
	if !ok {
		return ErrPathNotTracked
	}
	data, err := r.readBlobData(id)
	if err != nil {
		return fmt.Errorf("checkout %s: %w", p, err)
	}
	if err := r.Work.Write(p, data); err != nil {
		return fmt.Errorf("checkout %s: %w", p, err)
	}
	return nil
}

// CheckoutBranch switches to branch name: the working tree is made to match
// the branch tip, HEAD moves and the index is cleared.
func (r *Repo) CheckoutBranch(name string) error {
	st, err := r.LoadState()
	if err != nil {
		return err
	}
	ok, err := r.BranchExists(name)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCheckoutNoSuchBranch
	}
	if name == st.Branch {
		return ErrSameBranch
	}
	_, cur, err := r.head(st)
	if err != nil {
		return err
	}
	targetID, err := r.ReadBranch(name)
	if err != nil {
		return err
	}
	target, err := r.readCommit(targetID)
	if err != nil {
		return err
	}

	if err := r.materialize(cur, target); err != nil {
		return err
	}
	st.Branch = name
	st.Index.Clear()
	return r.SaveState(st)
}

// untrackedInTheWay returns the first path in paths that cur does not track,
// other does, and that exists in the working tree. Such a file would be
// overwritten or adopted without the user ever having committed it.
func (r *Repo) untrackedInTheWay(cur, other *object.Commit, paths []string) (string, bool) {
	for _, p := range paths {
		if !cur.Tracks(p) && other.Tracks(p) && r.Work.Exists(p) {
			return p, true
		}
	}
	return "", false
}

// materialize replaces the working tree's view of cur with target. Every
// check and blob read happens before the first write, so a failure leaves
// the working tree untouched.
func (r *Repo) materialize(cur, target *object.Commit) error {
	paths := sortedPaths(target.Snapshot)
	if p, bad := r.untrackedInTheWay(cur, target, paths); bad {
		r.debug("untracked file blocks checkout", "path", p)
		return ErrUntrackedFile
	}

	contents := make(map[string][]byte, len(paths))
	for _, p := range paths {
		data, err := r.readBlobData(target.Snapshot[p])
		if err != nil {
			return fmt.Errorf("checkout %s: %w", p, err)
		}
		contents[p] = data
	}

	var removed int
	for _, p := range sortedPaths(cur.Snapshot) {
		if target.Tracks(p) {
			continue
		}
		if err := r.Work.Remove(p); err != nil {
			return fmt.Errorf("checkout: %w", err)
		}
		removed++
	}
	for _, p := range paths {
		if err := r.Work.Write(p, contents[p]); err != nil {
			return fmt.Errorf("checkout: %w", err)
		}
	}
	r.debug("materialized commit", "written", len(paths), "removed", removed)
	return nil
}

func sortedPaths(snapshot map[string]object.Hash) []string {
	out := make([]string, 0, len(snapshot))
	for p := range snapshot {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
