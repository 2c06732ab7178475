package kv

import (
	"fmt"
	"sort"
	"strings"
)

// Mem is an in-memory Store. It is not safe for concurrent use, matching the
// single-actor model of the repository.
type Mem struct {
	data map[string][]byte
}

// NewMem returns an empty in-memory store.
func NewMem() *Mem {
	return &Mem{data: make(map[string][]byte)}
}

func (m *Mem) Get(key string) ([]byte, error) {
	if err := validKey(key); err != nil {
		return nil, err
	}
	v, ok := m.data[key]
	if !ok {
		return nil, fmt.Errorf("get %q: %w", key, ErrNotFound)
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *Mem) Put(key string, data []byte) error {
	if err := validKey(key); err != nil {
		return err
	}
	v := make([]byte, len(data))
	copy(v, data)
	m.data[key] = v
	return nil
}

func (m *Mem) Has(key string) (bool, error) {
	if err := validKey(key); err != nil {
		return false, err
	}
	_, ok := m.data[key]
	return ok, nil
}

func (m *Mem) Delete(key string) error {
	if err := validKey(key); err != nil {
		return err
	}
	delete(m.data, key)
	return nil
}

func (m *Mem) List(prefix string) ([]string, error) {
	if err := validPrefix(prefix); err != nil {
		return nil, err
	}
	var keys []string
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Len returns the number of stored keys.
func (m *Mem) Len() int {
	return len(m.data)
}
