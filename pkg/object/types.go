package object

// Hash is a 64-character hex-encoded object id.
type Hash string

// Short returns the first n characters of h, or all of it if shorter.
func (h Hash) Short(n int) string {
	if len(h) <= n {
		return string(h)
	}
	return string(h[:n])
}

// ObjectType identifies the kind of object stored.
type ObjectType string

const (
	TypeBlob   ObjectType = "blob"
	TypeCommit ObjectType = "commit"
)

// Blob is the content of one working-tree path at the time it was staged.
// The path is part of the blob's identity: equal bytes at two paths are two
// different blobs.
type Blob struct {
	Path string
	Data []byte
}

// Commit is an immutable node of the commit graph. Snapshot maps every
// tracked path to the id of its blob.
type Commit struct {
	Message     string
	Timestamp   int64 // Unix nanoseconds
	Parent      Hash  // empty for the root commit
	MergeParent Hash  // empty unless this is a merge commit
	Snapshot    map[string]Hash
}

// IsMerge reports whether c has a merge parent.
func (c *Commit) IsMerge() bool {
	return c.MergeParent != ""
}

// Parents returns the non-empty parent ids, first parent first.
func (c *Commit) Parents() []Hash {
	var out []Hash
	if c.Parent != "" {
		out = append(out, c.Parent)
	}
	if c.MergeParent != "" {
		out = append(out, c.MergeParent)
	}
	return out
}

// Tracks reports whether path is part of c's snapshot.
func (c *Commit) Tracks(path string) bool {
	_, ok := c.Snapshot[path]
	return ok
}

// CloneSnapshot returns a copy of c's snapshot that the caller may mutate.
func (c *Commit) CloneSnapshot() map[string]Hash {
	out := make(map[string]Hash, len(c.Snapshot))
	for p, h := range c.Snapshot {
		out[p] = h
	}
	return out
}

// SnapshotEqual reports whether two snapshots track the same paths at the
// same blob ids.
func SnapshotEqual(a, b map[string]Hash) bool {
	if len(a) != len(b) {
		return false
	}
	for p, h := range a {
		if other, ok := b[p]; !ok || other != h {
			return false
		}
	}
	return true
}
