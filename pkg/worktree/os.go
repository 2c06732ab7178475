package worktree

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// OS is a Tree backed by a directory on disk. Ignored paths (the metadata
// directory and .gitletignore patterns) are invisible to List.
type OS struct {
	root   string
	ignore *IgnoreChecker
}

// NewOS returns a Tree rooted at root.
func NewOS(root string) *OS {
	return &OS{root: root, ignore: NewIgnoreChecker(root)}
}

// Root returns the absolute directory the tree is rooted at.
func (t *OS) Root() string {
	return t.root
}

func (t *OS) abs(p string) string {
	return filepath.Join(t.root, filepath.FromSlash(p))
}

func (t *OS) Read(p string) ([]byte, error) {
	data, err := os.ReadFile(t.abs(p))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read %q: %w", p, ErrNotExist)
		}
		return nil, fmt.Errorf("read %q: %w", p, err)
	}
	return data, nil
}

func (t *OS) Write(p string, data []byte) error {
	abs := t.abs(p)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return fmt.Errorf("write %q: mkdir: %w", p, err)
	}
	if err := os.WriteFile(abs, data, 0o644); err != nil {
		return fmt.Errorf("write %q: %w", p, err)
	}
	return nil
}

func (t *OS) Remove(p string) error {
	abs := t.abs(p)
	if err := os.Remove(abs); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %q: %w", p, err)
	}
	t.removeEmptyParents(filepath.Dir(abs))
	return nil
}

func (t *OS) Exists(p string) bool {
	info, err := os.Stat(t.abs(p))
	return err == nil && !info.IsDir()
}

func (t *OS) List() ([]string, error) {
	var files []string
	err := filepath.WalkDir(t.root, func(abs string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(t.root, abs)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}
		if t.ignore.IsIgnored(rel) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list working tree: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

// removeEmptyParents removes empty directories up to (but not including)
// the tree root.
func (t *OS) removeEmptyParents(dir string) {
	for {
		if dir == t.root || !strings.HasPrefix(dir, t.root) {
			return
		}
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			return
		}
		os.Remove(dir)
		dir = filepath.Dir(dir)
	}
}
