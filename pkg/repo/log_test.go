package repo

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/odvcencio/gitlet/pkg/object"
)

func TestLogFollowsFirstParent(t *testing.T) {
	r, _ := newMemRepo(t)
	root := branchTip(t, r, "master")
	addFile(t, r, "a.txt", "1")
	c1 := commit(t, r, "c1")
	if err := r.Branch("other"); err != nil {
		t.Fatal(err)
	}
	addFile(t, r, "a.txt", "2")
	c2 := commit(t, r, "c2")
	checkout(t, r, "other")
	addFile(t, r, "b.txt", "b")
	commit(t, r, "side")
	checkout(t, r, "master")
	report, err := r.Merge("other")
	if err != nil {
		t.Fatal(err)
	}

	entries, err := r.Log()
	if err != nil {
		t.Fatalf("Log: %v", err)
	}
	var ids []object.Hash
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	want := []object.Hash{report.Commit, c2, c1, root}
	if !reflect.DeepEqual(ids, want) {
		t.Fatalf("Log ids = %v, want %v", ids, want)
	}
}

func TestWriteLogEntry(t *testing.T) {
	c := &object.Commit{
		Message:   "hello",
		Timestamp: time.Date(2024, 3, 1, 12, 0, 5, 0, time.UTC).UnixNano(),
	}
	var buf bytes.Buffer
	if err := WriteLogEntry(&buf, LogEntry{ID: "abc", Commit: c}, time.UTC); err != nil {
		t.Fatal(err)
	}
	want := "===\ncommit abc\nDate: Fri Mar 1 12:00:05 2024 +0000\nhello\n\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}

	buf.Reset()
	c.Parent = "1234567890"
	c.MergeParent = "abcdef1234"
	if err := WriteLogEntry(&buf, LogEntry{ID: "m", Commit: c}, time.UTC); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\nMerge: 1234567 abcdef1\n") {
		t.Fatalf("merge line missing: %q", buf.String())
	}
}

func TestGlobalLogIncludesEveryCommitNewestFirst(t *testing.T) {
	r, _ := newMemRepo(t)
	addFile(t, r, "a.txt", "1")
	c1 := commit(t, r, "c1")
	if err := r.Branch("other"); err != nil {
		t.Fatal(err)
	}
	checkout(t, r, "other")
	addFile(t, r, "a.txt", "2")
	c2 := commit(t, r, "c2")
	checkout(t, r, "master")
	if err := r.RemoveBranch("other"); err != nil {
		t.Fatal(err)
	}

	entries, err := r.GlobalLog()
	if err != nil {
		t.Fatalf("GlobalLog: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if entries[0].ID != c2 || entries[1].ID != c1 || entries[2].Commit.Message != "initial commit" {
		t.Fatalf("order = %s, %s, %s", entries[0].ID.Short(7), entries[1].ID.Short(7), entries[2].ID.Short(7))
	}
}

func TestFind(t *testing.T) {
	r, _ := newMemRepo(t)
	addFile(t, r, "a.txt", "1")
	a := commit(t, r, "same")
	addFile(t, r, "a.txt", "2")
	b := commit(t, r, "same")

	ids, err := r.Find("same")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(ids) != 2 || !(ids[0] == a && ids[1] == b || ids[0] == b && ids[1] == a) {
		t.Fatalf("Find = %v", ids)
	}
	if _, err := r.Find("nope"); !errors.Is(err, ErrNoCommitMessage) {
		t.Fatalf("Find missing: got %v", err)
	}
}
