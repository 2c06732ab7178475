// Package kv defines the minimal key-value persistence layer that every
// piece of repository state (objects, refs, HEAD, index) is stored through.
//
// Keys are slash-separated paths such as "objects/ab/cdef..." or
// "refs/heads/master". Values are opaque bytes.
package kv

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Get when the key is absent.
var ErrNotFound = errors.New("kv: key not found")

// Store is a flat namespace of byte values addressed by slash-separated keys.
type Store interface {
	Get(key string) ([]byte, error)
	Put(key string, data []byte) error
	Has(key string) (bool, error)
	Delete(key string) error
	// List returns every key that starts with prefix, sorted.
	List(prefix string) ([]string, error)
}

// Closer is implemented by stores that hold an open resource.
type Closer interface {
	Close() error
}

// Close releases s if it holds resources. Stores without resources are a no-op.
func Close(s Store) error {
	if c, ok := s.(Closer); ok {
		return c.Close()
	}
	return nil
}

func validKey(key string) error {
	if key == "" {
		return fmt.Errorf("kv: empty key")
	}
	if strings.HasPrefix(key, "/") || strings.HasSuffix(key, "/") {
		return fmt.Errorf("kv: invalid key %q", key)
	}
	for _, part := range strings.Split(key, "/") {
		if part == "" || part == "." || part == ".." {
			return fmt.Errorf("kv: invalid key %q", key)
		}
	}
	return nil
}

// validPrefix accepts "" and any leading part of a valid key, including one
// that ends in "/" or mid-segment.
func validPrefix(prefix string) error {
	if prefix == "" {
		return nil
	}
	if strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("kv: invalid prefix %q", prefix)
	}
	parts := strings.Split(prefix, "/")
	for i, part := range parts {
		last := i == len(parts)-1
		if part == "" && !last || part == "." || part == ".." {
			return fmt.Errorf("kv: invalid prefix %q", prefix)
		}
	}
	return nil
}
