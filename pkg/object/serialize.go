package object

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ---------------------------------------------------------------------------
// Blob
// ---------------------------------------------------------------------------

// MarshalBlob serializes a Blob:
//
//	path <path>
//
//	<data bytes>
func MarshalBlob(b *Blob) []byte {
	var buf bytes.Buffer
	buf.Grow(len(b.Path) + len(b.Data) + 8)
	fmt.Fprintf(&buf, "path %s\n\n", b.Path)
	buf.Write(b.Data)
	return buf.Bytes()
}

// UnmarshalBlob parses a Blob from its serialized form.
func UnmarshalBlob(data []byte) (*Blob, error) {
	idx := bytes.Index(data, []byte("\n\n"))
	if idx < 0 {
		return nil, fmt.Errorf("unmarshal blob: missing header/body separator")
	}
	key, val, ok := strings.Cut(string(data[:idx]), " ")
	if !ok || key != "path" || val == "" {
		return nil, fmt.Errorf("unmarshal blob: malformed header %q", data[:idx])
	}
	body := data[idx+2:]
	out := make([]byte, len(body))
	copy(out, body)
	return &Blob{Path: val, Data: out}, nil
}

// ---------------------------------------------------------------------------
// Commit
// ---------------------------------------------------------------------------

// MarshalCommit serializes a Commit deterministically:
//
//	parent <hash>          (omitted for the root commit)
//	mergeparent <hash>     (omitted unless a merge)
//	timestamp <unix nanos>
//	file <hash> <path>     (one per snapshot entry, sorted by path)
//
//	<message>
func MarshalCommit(c *Commit) []byte {
	var buf bytes.Buffer
	if c.Parent != "" {
		fmt.Fprintf(&buf, "parent %s\n", c.Parent)
	}
	if c.MergeParent != "" {
		fmt.Fprintf(&buf, "mergeparent %s\n", c.MergeParent)
	}
	fmt.Fprintf(&buf, "timestamp %d\n", c.Timestamp)

	paths := make([]string, 0, len(c.Snapshot))
	for p := range c.Snapshot {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		fmt.Fprintf(&buf, "file %s %s\n", c.Snapshot[p], p)
	}

	buf.WriteByte('\n')
	buf.WriteString(c.Message)
	return buf.Bytes()
}

// UnmarshalCommit parses a Commit from its serialized form.
func UnmarshalCommit(data []byte) (*Commit, error) {
	idx := bytes.Index(data, []byte("\n\n"))
	if idx < 0 {
		return nil, fmt.Errorf("unmarshal commit: missing header/message separator")
	}
	header := string(data[:idx])
	message := string(data[idx+2:])

	c := &Commit{Message: message, Snapshot: make(map[string]Hash)}
	sawTimestamp := false
	for _, line := range strings.Split(header, "\n") {
		key, val, ok := strings.Cut(line, " ")
		if !ok {
			return nil, fmt.Errorf("unmarshal commit: malformed header line %q", line)
		}
		switch key {
		case "parent":
			c.Parent = Hash(val)
		case "mergeparent":
			c.MergeParent = Hash(val)
		case "timestamp":
			ts, err := strconv.ParseInt(val, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("unmarshal commit: bad timestamp %q: %w", val, err)
			}
			c.Timestamp = ts
			sawTimestamp = true
		case "file":
			h, p, ok := strings.Cut(val, " ")
			if !ok || h == "" || p == "" {
				return nil, fmt.Errorf("unmarshal commit: malformed file line %q", line)
			}
			if _, dup := c.Snapshot[p]; dup {
				return nil, fmt.Errorf("unmarshal commit: duplicate path %q", p)
			}
			c.Snapshot[p] = Hash(h)
		default:
			return nil, fmt.Errorf("unmarshal commit: unknown header key %q", key)
		}
	}
	if !sawTimestamp {
		return nil, fmt.Errorf("unmarshal commit: missing timestamp")
	}
	return c, nil
}
