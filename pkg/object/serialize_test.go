package object

import (
	"bytes"
	"strings"
	"testing"
)

func TestMarshalUnmarshalBlob(t *testing.T) {
	orig := &Blob{Path: "dir/file name.txt", Data: []byte("hello world\n\nline three")}
	got, err := UnmarshalBlob(MarshalBlob(orig))
	if err != nil {
		t.Fatalf("UnmarshalBlob: %v", err)
	}
	if got.Path != orig.Path {
		t.Errorf("Path: got %q, want %q", got.Path, orig.Path)
	}
	if !bytes.Equal(got.Data, orig.Data) {
		t.Errorf("Data: got %q, want %q", got.Data, orig.Data)
	}
}

func TestUnmarshalBlobMalformed(t *testing.T) {
	for _, in := range []string{"no separator", "name x\n\ndata", "path \n\ndata"} {
		if _, err := UnmarshalBlob([]byte(in)); err == nil {
			t.Errorf("UnmarshalBlob(%q): expected error", in)
		}
	}
}

func TestMarshalCommitSortsSnapshot(t *testing.T) {
	c := &Commit{
		Message:   "msg",
		Timestamp: 42,
		Snapshot: map[string]Hash{
			"z.txt": "zz",
			"a.txt": "aa",
			"m.txt": "mm",
		},
	}
	want := "timestamp 42\nfile aa a.txt\nfile mm m.txt\nfile zz z.txt\n\nmsg"
	for i := 0; i < 5; i++ {
		if got := string(MarshalCommit(c)); got != want {
			t.Fatalf("MarshalCommit:\n%s\nwant:\n%s", got, want)
		}
	}
}

func TestMarshalUnmarshalMergeCommit(t *testing.T) {
	orig := &Commit{
		Message:     "Merged other into master\n\nwith a body",
		Timestamp:   -5,
		Parent:      "p1",
		MergeParent: "p2",
		Snapshot:    map[string]Hash{"with space.txt": "h1"},
	}
	got, err := UnmarshalCommit(MarshalCommit(orig))
	if err != nil {
		t.Fatalf("UnmarshalCommit: %v", err)
	}
	if got.Message != orig.Message {
		t.Errorf("Message: got %q", got.Message)
	}
	if got.Parent != "p1" || got.MergeParent != "p2" || !got.IsMerge() {
		t.Errorf("parents: got %q %q", got.Parent, got.MergeParent)
	}
	if got.Timestamp != -5 {
		t.Errorf("Timestamp: got %d", got.Timestamp)
	}
	if got.Snapshot["with space.txt"] != "h1" {
		t.Errorf("Snapshot: got %v", got.Snapshot)
	}
	if p := got.Parents(); len(p) != 2 || p[0] != "p1" || p[1] != "p2" {
		t.Errorf("Parents() = %v", p)
	}
}

func TestUnmarshalCommitErrors(t *testing.T) {
	cases := map[string]string{
		"no separator":   "timestamp 1",
		"no timestamp":   "parent abc\n\nmsg",
		"bad timestamp":  "timestamp x\n\nmsg",
		"unknown key":    "timestamp 1\nauthor me\n\nmsg",
		"bad file line":  "timestamp 1\nfile onlyhash\n\nmsg",
		"duplicate path": "timestamp 1\nfile h1 a\nfile h2 a\n\nmsg",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := UnmarshalCommit([]byte(in)); err == nil {
				t.Errorf("expected error for %q", strings.ReplaceAll(in, "\n", `\n`))
			}
		})
	}
}
