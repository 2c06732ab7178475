package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/odvcencio/gitlet/pkg/object"
)

var benchmarkStatusSink int

func BenchmarkStatus(b *testing.B) {
	dir := b.TempDir()
	r, err := Init(dir, DefaultConfig(), Options{})
	if err != nil {
		b.Fatalf("Init: %v", err)
	}
	defer r.Close()

	const fileCount = 200
	for i := 0; i < fileCount; i++ {
		rel := fmt.Sprintf("bench/file-%03d.txt", i)
		abs := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
			b.Fatalf("MkdirAll(%q): %v", rel, err)
		}
		if err := os.WriteFile(abs, []byte("line 1\nline 2\n"), 0o644); err != nil {
			b.Fatalf("WriteFile(%q): %v", rel, err)
		}
		if err := r.Add(rel); err != nil {
			b.Fatalf("Add(%q): %v", rel, err)
		}
	}
	if _, err := r.Commit("seed"); err != nil {
		b.Fatalf("Commit: %v", err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s, err := r.Status()
		if err != nil {
			b.Fatalf("Status: %v", err)
		}
		benchmarkStatusSink += len(s.Unstaged) + len(s.Untracked)
	}
}

func BenchmarkSplitPointLongHistory(b *testing.B) {
	r, err := Init(b.TempDir(), DefaultConfig(), Options{})
	if err != nil {
		b.Fatalf("Init: %v", err)
	}
	defer r.Close()

	base, err := r.ReadBranch(DefaultBranch)
	if err != nil {
		b.Fatal(err)
	}
	grow := func(msg string, n int) object.Hash {
		prev := base
		for i := 0; i < n; i++ {
			c := &object.Commit{Message: msg, Timestamp: int64(i + 1), Parent: prev, Snapshot: map[string]object.Hash{}}
			id, err := r.Store.WriteCommit(c)
			if err != nil {
				b.Fatal(err)
			}
			prev = id
		}
		return prev
	}
	cur := grow("cur", 2000)
	given := grow("given", 2000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ga, err := r.Ancestors(given)
		if err != nil {
			b.Fatal(err)
		}
		ca, err := r.Ancestors(cur)
		if err != nil {
			b.Fatal(err)
		}
		if split, ok := SplitPoint(ga, ca); !ok || split != base {
			b.Fatalf("SplitPoint = %s, %v", split, ok)
		}
	}
}
