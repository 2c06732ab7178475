package repo

import (
	"bytes"
	"reflect"
	"testing"
)

func TestStatusSections(t *testing.T) {
	r, _ := newMemRepo(t)
	addFile(t, r, "clean.txt", "c")
	addFile(t, r, "edited.txt", "e")
	addFile(t, r, "gone.txt", "g")
	addFile(t, r, "removed.txt", "r")
	commit(t, r, "base")
	if err := r.Branch("other"); err != nil {
		t.Fatal(err)
	}

	addFile(t, r, "staged.txt", "s")
	addFile(t, r, "staged-then-edited.txt", "v1")
	writeFile(t, r, "staged-then-edited.txt", "v2")
	addFile(t, r, "staged-then-deleted.txt", "x")
	if err := r.Work.Remove("staged-then-deleted.txt"); err != nil {
		t.Fatal(err)
	}
	writeFile(t, r, "edited.txt", "changed")
	if err := r.Work.Remove("gone.txt"); err != nil {
		t.Fatal(err)
	}
	if err := r.Remove("removed.txt"); err != nil {
		t.Fatal(err)
	}
	writeFile(t, r, "stray.txt", "?")

	s, err := r.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if !reflect.DeepEqual(s.Branches, []string{"master", "other"}) || s.Branch != "master" {
		t.Fatalf("branches = %v (current %q)", s.Branches, s.Branch)
	}
	if want := []string{"staged-then-deleted.txt", "staged-then-edited.txt", "staged.txt"}; !reflect.DeepEqual(s.Staged, want) {
		t.Fatalf("Staged = %v, want %v", s.Staged, want)
	}
	if want := []string{"removed.txt"}; !reflect.DeepEqual(s.Removed, want) {
		t.Fatalf("Removed = %v", s.Removed)
	}
	wantChanges := []Change{
		{"edited.txt", ChangeModified},
		{"gone.txt", ChangeDeleted},
		{"staged-then-deleted.txt", ChangeDeleted},
		{"staged-then-edited.txt", ChangeModified},
	}
	if !reflect.DeepEqual(s.Unstaged, wantChanges) {
		t.Fatalf("Unstaged = %v, want %v", s.Unstaged, wantChanges)
	}
	if want := []string{"stray.txt"}; !reflect.DeepEqual(s.Untracked, want) {
		t.Fatalf("Untracked = %v", s.Untracked)
	}
}

func TestStatusRecreatedRemovedFileIsUntracked(t *testing.T) {
	r, _ := newMemRepo(t)
	addFile(t, r, "a.txt", "a")
	commit(t, r, "c1")
	if err := r.Remove("a.txt"); err != nil {
		t.Fatal(err)
	}
	writeFile(t, r, "a.txt", "a")

	s, err := r.Status()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(s.Untracked, []string{"a.txt"}) || !reflect.DeepEqual(s.Removed, []string{"a.txt"}) {
		t.Fatalf("status = %+v", s)
	}
	if len(s.Unstaged) != 0 {
		t.Fatalf("Unstaged = %v", s.Unstaged)
	}
}

func TestStatusWrite(t *testing.T) {
	s := &Status{
		Branch:    "master",
		Branches:  []string{"dev", "master"},
		Staged:    []string{"a.txt"},
		Removed:   []string{"b.txt"},
		Unstaged:  []Change{{"c.txt", ChangeModified}},
		Untracked: []string{"d.txt"},
	}
	var buf bytes.Buffer
	if err := s.Write(&buf); err != nil {
		t.Fatal(err)
	}
	want := `=== Branches ===
dev
*master

=== Staged Files ===
a.txt

=== Removed Files ===
b.txt

=== Modifications Not Staged For Commit ===
c.txt (modified)

=== Untracked Files ===
d.txt

`
	if buf.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}
