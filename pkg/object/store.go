package object

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/odvcencio/gitlet/pkg/kv"
	"github.com/patrickmn/go-cache"
)

// ErrNotFound is returned when an object id is absent from the store.
var ErrNotFound = errors.New("object not found")

const (
	objectsPrefix = "objects/"

	// commitsPrefix indexes commit ids with empty values so listing commits
	// never touches blob contents.
	commitsPrefix = "commits/"
)

// Store is a content-addressed object store layered over a kv.Store, using
// a 2-character fan-out key layout: objects/ab/cdef0123...
type Store struct {
	kv   kv.Store
	hash HashFunc

	// Commits are immutable, so decoded commits are kept for the lifetime
	// of the store.
	commits *cache.Cache
}

// NewStore creates a Store that persists through s and names objects with h.
func NewStore(s kv.Store, h HashFunc) *Store {
	if h == "" {
		h = HashSHA256
	}
	return &Store{
		kv:      s,
		hash:    h,
		commits: cache.New(cache.NoExpiration, 0),
	}
}

// HashFunc returns the digest algorithm used for object ids.
func (s *Store) HashFunc() HashFunc {
	return s.hash
}

func validHash(h Hash) bool {
	return len(h) == HashLen && isHex(string(h))
}

func isHex(s string) bool {
	for _, c := range s {
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f') {
			return false
		}
	}
	return true
}

// objectKey returns the kv key for a given hash.
func objectKey(h Hash) string {
	return objectsPrefix + string(h[:2]) + "/" + string(h[2:])
}

// Has reports whether the store contains an object with the given hash.
func (s *Store) Has(h Hash) (bool, error) {
	if !validHash(h) {
		return false, nil
	}
	return s.kv.Has(objectKey(h))
}

// Write stores an object and returns its content hash. The stored format is
// "type len\0content". Re-writing an existing object is a no-op.
func (s *Store) Write(objType ObjectType, data []byte) (Hash, error) {
	h := s.hash.Object(objType, data)

	// Fast path: already exists. A commit's index entry is re-put in case
	// an earlier write stopped between the two keys.
	if ok, err := s.kv.Has(objectKey(h)); err != nil {
		return "", fmt.Errorf("object write %s: %w", h, err)
	} else if ok {
		return h, s.indexCommit(objType, h)
	}

	envelope := fmt.Sprintf("%s %d\x00", objType, len(data))
	raw := make([]byte, 0, len(envelope)+len(data))
	raw = append(raw, envelope...)
	raw = append(raw, data...)

	if err := s.kv.Put(objectKey(h), raw); err != nil {
		return "", fmt.Errorf("object write %s: %w", h, err)
	}
	return h, s.indexCommit(objType, h)
}

func (s *Store) indexCommit(objType ObjectType, h Hash) error {
	if objType != TypeCommit {
		return nil
	}
	if err := s.kv.Put(commitsPrefix+string(h), []byte{}); err != nil {
		return fmt.Errorf("object write %s: index: %w", h, err)
	}
	return nil
}

// Read retrieves an object by hash, returning its type and raw content.
func (s *Store) Read(h Hash) (ObjectType, []byte, error) {
	if !validHash(h) {
		return "", nil, fmt.Errorf("object read %q: %w", h, ErrNotFound)
	}
	raw, err := s.kv.Get(objectKey(h))
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return "", nil, fmt.Errorf("object read %s: %w", h, ErrNotFound)
		}
		return "", nil, fmt.Errorf("object read %s: %w", h, err)
	}
	return parseEnvelope(h, raw)
}

func parseEnvelope(h Hash, raw []byte) (ObjectType, []byte, error) {
	nulIdx := bytes.IndexByte(raw, 0)
	if nulIdx < 0 {
		return "", nil, fmt.Errorf("object read %s: invalid format (no NUL)", h)
	}
	header := string(raw[:nulIdx])
	content := raw[nulIdx+1:]

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return "", nil, fmt.Errorf("object read %s: invalid header %q", h, header)
	}
	length, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", nil, fmt.Errorf("object read %s: invalid length %q: %w", h, parts[1], err)
	}
	if len(content) != length {
		return "", nil, fmt.Errorf("object read %s: length mismatch (header=%d, actual=%d)", h, length, len(content))
	}
	return ObjectType(parts[0]), content, nil
}

// ---------------------------------------------------------------------------
// Typed convenience methods
// ---------------------------------------------------------------------------

// WriteBlob serializes and stores a Blob.
func (s *Store) WriteBlob(b *Blob) (Hash, error) {
	if b.Path == "" || strings.ContainsAny(b.Path, "\n\x00") {
		return "", fmt.Errorf("object write blob: invalid path %q", b.Path)
	}
	return s.Write(TypeBlob, MarshalBlob(b))
}

// ReadBlob reads and deserializes a Blob.
func (s *Store) ReadBlob(h Hash) (*Blob, error) {
	objType, data, err := s.Read(h)
	if err != nil {
		return nil, err
	}
	if objType != TypeBlob {
		return nil, fmt.Errorf("object %s: type mismatch: got %q, want %q", h, objType, TypeBlob)
	}
	return UnmarshalBlob(data)
}

// WriteCommit serializes and stores a Commit.
func (s *Store) WriteCommit(c *Commit) (Hash, error) {
	return s.Write(TypeCommit, MarshalCommit(c))
}

// ReadCommit reads and deserializes a Commit. The returned value is shared
// with the store's cache and must not be mutated; use CloneSnapshot.
func (s *Store) ReadCommit(h Hash) (*Commit, error) {
	if cached, ok := s.commits.Get(string(h)); ok {
		return cached.(*Commit), nil
	}
	objType, data, err := s.Read(h)
	if err != nil {
		return nil, err
	}
	if objType != TypeCommit {
		return nil, fmt.Errorf("object %s: type mismatch: got %q, want %q", h, objType, TypeCommit)
	}
	c, err := UnmarshalCommit(data)
	if err != nil {
		return nil, fmt.Errorf("object %s: %w", h, err)
	}
	s.commits.Set(string(h), c, cache.NoExpiration)
	return c, nil
}

// Commits returns the ids of every commit in the store, sorted.
func (s *Store) Commits() ([]Hash, error) {
	return s.commitsWithPrefix("")
}

// ResolvePrefix returns every commit id that starts with prefix. Callers
// decide what zero or several matches mean. A prefix that cannot be part of
// an id matches nothing.
func (s *Store) ResolvePrefix(prefix string) ([]Hash, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" || len(prefix) > HashLen || !isHex(prefix) {
		return nil, nil
	}
	return s.commitsWithPrefix(prefix)
}

func (s *Store) commitsWithPrefix(prefix string) ([]Hash, error) {
	keys, err := s.kv.List(commitsPrefix + prefix)
	if err != nil {
		return nil, fmt.Errorf("list commits: %w", err)
	}

	out := make([]Hash, 0, len(keys))
	for _, k := range keys {
		if h := Hash(strings.TrimPrefix(k, commitsPrefix)); validHash(h) {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}
