package repo

import (
	"fmt"
	"io"
	"sort"
)

// ChangeKind describes an unstaged modification.
type ChangeKind string

const (
	ChangeModified ChangeKind = "modified"
	ChangeDeleted  ChangeKind = "deleted"
)

// Change is a working-tree difference that is not staged.
type Change struct {
	Path string
	Kind ChangeKind
}

// Status summarizes branches, the index and the working tree.
type Status struct {
	Branch    string
	Branches  []string
	Staged    []string
	Removed   []string
	Unstaged  []Change
	Untracked []string
}

// Status compares HEAD, the index and the working tree.
//
// A path is reported as modified but not staged when HEAD tracks it, it is
// not staged, and its working content differs; or when it is staged and its
// working content differs from the staged blob. It is deleted but not staged
// when it is staged for addition, or tracked and not staged for removal, and
// missing from the working tree. Untracked files are present in the working
// tree but neither staged for addition nor tracked (a file staged for
// removal and then recreated counts as untracked).
func (r *Repo) Status() (*Status, error) {
	st, err := r.LoadState()
	if err != nil {
		return nil, err
	}
	_, head, err := r.head(st)
	if err != nil {
		return nil, err
	}
	branches, err := r.Branches()
	if err != nil {
		return nil, err
	}
	files, err := r.Work.List()
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}

	s := &Status{
		Branch:   st.Branch,
		Branches: branches,
		Staged:   st.Index.StagedPaths(),
		Removed:  st.Index.RemovedPaths(),
	}
	hash := r.Store.HashFunc()
	inTree := make(map[string]bool, len(files))
	for _, p := range files {
		inTree[p] = true
		data, err := r.Work.Read(p)
		if err != nil {
			return nil, fmt.Errorf("status: %w", err)
		}
		id := hash.BlobID(p, data)
		staged, isStaged := st.Index.Added[p]
		tracked, isTracked := head.Snapshot[p]
		switch {
		case isStaged:
			if staged != id {
				s.Unstaged = append(s.Unstaged, Change{Path: p, Kind: ChangeModified})
			}
		case isTracked && !st.Index.IsRemoved(p):
			if tracked != id {
				s.Unstaged = append(s.Unstaged, Change{Path: p, Kind: ChangeModified})
			}
		default:
			s.Untracked = append(s.Untracked, p)
		}
	}
	for p := range st.Index.Added {
		if !inTree[p] {
			s.Unstaged = append(s.Unstaged, Change{Path: p, Kind: ChangeDeleted})
		}
	}
	for p := range head.Snapshot {
		_, isStaged := st.Index.Added[p]
		if !inTree[p] && !isStaged && !st.Index.IsRemoved(p) {
			s.Unstaged = append(s.Unstaged, Change{Path: p, Kind: ChangeDeleted})
		}
	}
	sort.Slice(s.Unstaged, func(i, j int) bool { return s.Unstaged[i].Path < s.Unstaged[j].Path })
	return s, nil
}

// Write renders s in the sectioned status format.
func (s *Status) Write(w io.Writer) error {
	var lines []string
	lines = append(lines, "=== Branches ===")
	for _, b := range s.Branches {
		if b == s.Branch {
			b = "*" + b
		}
		lines = append(lines, b)
	}
	lines = append(lines, "", "=== Staged Files ===")
	lines = append(lines, s.Staged...)
	lines = append(lines, "", "=== Removed Files ===")
	lines = append(lines, s.Removed...)
	lines = append(lines, "", "=== Modifications Not Staged For Commit ===")
	for _, c := range s.Unstaged {
		lines = append(lines, fmt.Sprintf("%s (%s)", c.Path, c.Kind))
	}
	lines = append(lines, "", "=== Untracked Files ===")
	lines = append(lines, s.Untracked...)
	lines = append(lines, "")
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}
