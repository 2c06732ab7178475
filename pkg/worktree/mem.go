package worktree

import (
	"fmt"
	"sort"
)

// Mem is an in-memory Tree for tests and embedding.
type Mem struct {
	files map[string][]byte
}

// NewMem returns an empty in-memory tree.
func NewMem() *Mem {
	return &Mem{files: make(map[string][]byte)}
}

func (m *Mem) Read(p string) ([]byte, error) {
	data, ok := m.files[p]
	if !ok {
		return nil, fmt.Errorf("read %q: %w", p, ErrNotExist)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (m *Mem) Write(p string, data []byte) error {
	v := make([]byte, len(data))
	copy(v, data)
	m.files[p] = v
	return nil
}

func (m *Mem) Remove(p string) error {
	delete(m.files, p)
	return nil
}

func (m *Mem) Exists(p string) bool {
	_, ok := m.files[p]
	return ok
}

func (m *Mem) List() ([]string, error) {
	out := make([]string, 0, len(m.files))
	for p := range m.files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out, nil
}

// Snapshot returns a copy of every file, keyed by path.
func (m *Mem) Snapshot() map[string]string {
	out := make(map[string]string, len(m.files))
	for p, d := range m.files {
		out[p] = string(d)
	}
	return out
}
