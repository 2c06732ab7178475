package object

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"

	"golang.org/x/crypto/blake2b"
)

// HashFunc names a digest algorithm used for object ids. Every algorithm
// produces 32 bytes, so ids are always 64 lowercase hex characters.
type HashFunc string

const (
	HashSHA256  HashFunc = "sha256"
	HashBlake2b HashFunc = "blake2b"
)

// HashLen is the length of a hex-encoded object id.
const HashLen = 64

// ParseHashFunc validates a configured algorithm name. The empty string
// selects the default, sha256.
func ParseHashFunc(name string) (HashFunc, error) {
	switch HashFunc(name) {
	case "", HashSHA256:
		return HashSHA256, nil
	case HashBlake2b:
		return HashBlake2b, nil
	default:
		return "", fmt.Errorf("unknown hash function %q", name)
	}
}

func (f HashFunc) new() hash.Hash {
	if f == HashBlake2b {
		h, err := blake2b.New256(nil)
		if err != nil {
			// Only fails for an oversized key; nil is always valid.
			panic(err)
		}
		return h
	}
	return sha256.New()
}

// Sum hashes raw bytes.
func (f HashFunc) Sum(data []byte) Hash {
	h := f.new()
	h.Write(data)
	return Hash(hex.EncodeToString(h.Sum(nil)))
}

// Object hashes the envelope "type len\0content", mirroring Git's object
// hashing.
func (f HashFunc) Object(objType ObjectType, data []byte) Hash {
	h := f.new()
	fmt.Fprintf(h, "%s %d\x00", objType, len(data))
	h.Write(data)
	return Hash(hex.EncodeToString(h.Sum(nil)))
}

// BlobID returns the id a blob for (path, data) would be stored under.
func (f HashFunc) BlobID(path string, data []byte) Hash {
	return f.Object(TypeBlob, MarshalBlob(&Blob{Path: path, Data: data}))
}

// CommitID returns the id c would be stored under.
func (f HashFunc) CommitID(c *Commit) Hash {
	return f.Object(TypeCommit, MarshalCommit(c))
}
