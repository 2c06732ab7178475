package repo

import (
	"errors"
	"testing"

	"github.com/odvcencio/gitlet/pkg/object"
)

func TestCommitAdvancesBranchAndClearsIndex(t *testing.T) {
	r, _ := newMemRepo(t)
	root := branchTip(t, r, "master")
	addFile(t, r, "a.txt", "1")
	id := commit(t, r, "c1")

	if got := branchTip(t, r, "master"); got != id {
		t.Fatalf("master = %s, want %s", got, id)
	}
	if st := loadState(t, r); !st.Index.Empty() {
		t.Fatalf("index not cleared: %+v", st.Index)
	}
	c, err := r.readCommit(id)
	if err != nil {
		t.Fatal(err)
	}
	if c.Parent != root || c.MergeParent != "" || c.Message != "c1" {
		t.Fatalf("commit = %+v", c)
	}
	if c.Snapshot["a.txt"] != r.Store.HashFunc().BlobID("a.txt", []byte("1")) {
		t.Fatalf("snapshot = %v", c.Snapshot)
	}
}

func TestCommitInheritsAndRemoves(t *testing.T) {
	r, _ := newMemRepo(t)
	addFile(t, r, "a.txt", "a")
	addFile(t, r, "b.txt", "b")
	first := commit(t, r, "c1")

	addFile(t, r, "c.txt", "c")
	if err := r.Remove("a.txt"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	second := commit(t, r, "c2")

	c1, _ := r.readCommit(first)
	c2, _ := r.readCommit(second)
	if c2.Tracks("a.txt") {
		t.Fatal("a.txt should be dropped from c2")
	}
	if c2.Snapshot["b.txt"] != c1.Snapshot["b.txt"] {
		t.Fatal("b.txt should be inherited unchanged")
	}
	if !c2.Tracks("c.txt") {
		t.Fatal("c.txt should be added")
	}
	if !c1.Tracks("a.txt") {
		t.Fatal("removing a path must not alter earlier commits")
	}
}

func TestCommitErrors(t *testing.T) {
	r, _ := newMemRepo(t)
	if _, err := r.Commit("nothing"); !errors.Is(err, ErrNoChanges) {
		t.Fatalf("empty index: got %v, want ErrNoChanges", err)
	}
	addFile(t, r, "a.txt", "1")
	for _, msg := range []string{"", "   ", "\n\t"} {
		if _, err := r.Commit(msg); !errors.Is(err, ErrEmptyMessage) {
			t.Fatalf("Commit(%q): got %v, want ErrEmptyMessage", msg, err)
		}
	}
	if _, ok := loadState(t, r).Index.Added["a.txt"]; !ok {
		t.Fatal("a failed commit must leave the index intact")
	}
	if commitCount(t, r) != 1 {
		t.Fatal("a failed commit must not store a commit")
	}
}

func TestCommitDeterministicIdentity(t *testing.T) {
	snap := map[string]object.Hash{"a.txt": object.HashSHA256.BlobID("a.txt", []byte("x"))}
	a := &object.Commit{Message: "m", Timestamp: 7, Parent: "p", Snapshot: snap}
	b := &object.Commit{Message: "m", Timestamp: 7, Parent: "p", Snapshot: map[string]object.Hash{"a.txt": snap["a.txt"]}}
	if object.HashSHA256.CommitID(a) != object.HashSHA256.CommitID(b) {
		t.Fatal("identical commits should share an id")
	}
	b.Timestamp = 8
	if object.HashSHA256.CommitID(a) == object.HashSHA256.CommitID(b) {
		t.Fatal("differing timestamps should change the id")
	}
}
