package repo

import (
	"testing"
	"time"

	"github.com/odvcencio/gitlet/pkg/kv"
	"github.com/odvcencio/gitlet/pkg/object"
	"github.com/odvcencio/gitlet/pkg/worktree"
)

// stepClock returns a clock that advances one second per call, so every
// commit in a test gets a distinct, predictable timestamp.
func stepClock() func() time.Time {
	t := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

// newMemRepo returns an initialized repository over an in-memory store and
// working tree.
func newMemRepo(t *testing.T) (*Repo, *worktree.Mem) {
	t.Helper()
	work := worktree.NewMem()
	r, err := New(kv.NewMem(), work, DefaultConfig(), Options{Now: stepClock()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := r.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return r, work
}

func writeFile(t *testing.T, r *Repo, path, content string) {
	t.Helper()
	if err := r.Work.Write(path, []byte(content)); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func readFile(t *testing.T, r *Repo, path string) string {
	t.Helper()
	data, err := r.Work.Read(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func addFile(t *testing.T, r *Repo, path, content string) {
	t.Helper()
	writeFile(t, r, path, content)
	if err := r.Add(path); err != nil {
		t.Fatalf("Add(%s): %v", path, err)
	}
}

func commit(t *testing.T, r *Repo, msg string) object.Hash {
	t.Helper()
	id, err := r.Commit(msg)
	if err != nil {
		t.Fatalf("Commit(%q): %v", msg, err)
	}
	return id
}

func branchTip(t *testing.T, r *Repo, name string) object.Hash {
	t.Helper()
	id, err := r.ReadBranch(name)
	if err != nil {
		t.Fatalf("ReadBranch(%s): %v", name, err)
	}
	return id
}

func checkout(t *testing.T, r *Repo, name string) {
	t.Helper()
	if err := r.CheckoutBranch(name); err != nil {
		t.Fatalf("CheckoutBranch(%s): %v", name, err)
	}
}

func loadState(t *testing.T, r *Repo) *State {
	t.Helper()
	st, err := r.LoadState()
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	return st
}

// commitCount returns the number of commit objects in the store.
func commitCount(t *testing.T, r *Repo) int {
	t.Helper()
	ids, err := r.Store.Commits()
	if err != nil {
		t.Fatalf("Commits: %v", err)
	}
	return len(ids)
}
