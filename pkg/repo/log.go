package repo

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/odvcencio/gitlet/pkg/object"
)

// LogEntry pairs a commit with its id.
type LogEntry struct {
	ID     object.Hash
	Commit *object.Commit
}

const logDateLayout = "Mon Jan 2 15:04:05 2006 -0700"

// WriteLogEntry renders e in log format:
//
//	===
//	commit <id>
//	Merge: <parent7> <mergeParent7>
//	Date: Mon Jan 2 15:04:05 2006 -0700
//	<message>
//
// The Merge line only appears for merge commits.
func WriteLogEntry(w io.Writer, e LogEntry, loc *time.Location) error {
	if loc == nil {
		loc = time.Local
	}
	c := e.Commit
	if _, err := fmt.Fprintf(w, "===\ncommit %s\n", e.ID); err != nil {
		return err
	}
	if c.IsMerge() {
		if _, err := fmt.Fprintf(w, "Merge: %s %s\n", c.Parent.Short(7), c.MergeParent.Short(7)); err != nil {
			return err
		}
	}
	date := time.Unix(0, c.Timestamp).In(loc).Format(logDateLayout)
	_, err := fmt.Fprintf(w, "Date: %s\n%s\n\n", date, c.Message)
	return err
}

// Log returns the first-parent history of HEAD, newest first.
func (r *Repo) Log() ([]LogEntry, error) {
	id, c, err := r.ResolveHeadCommit()
	if err != nil {
		return nil, err
	}
	limit := graphLimit()
	seen := make(map[object.Hash]bool)
	var out []LogEntry
	for {
		if seen[id] {
			return nil, &GraphError{ID: id, Reason: "cycle in first-parent history"}
		}
		if len(out) >= limit {
			return nil, &GraphError{ID: id, Reason: "log exceeded step limit"}
		}
		seen[id] = true
		out = append(out, LogEntry{ID: id, Commit: c})
		if c.Parent == "" {
			return out, nil
		}
		id = c.Parent
		if c, err = r.readCommit(id); err != nil {
			return nil, err
		}
	}
}

// GlobalLog returns every commit in the store, newest first. Commits with
// equal timestamps are ordered by id.
func (r *Repo) GlobalLog() ([]LogEntry, error) {
	if _, err := r.LoadState(); err != nil {
		return nil, err
	}
	ids, err := r.Store.Commits()
	if err != nil {
		return nil, err
	}
	out := make([]LogEntry, 0, len(ids))
	for _, id := range ids {
		c, err := r.readCommit(id)
		if err != nil {
			return nil, err
		}
		out = append(out, LogEntry{ID: id, Commit: c})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Commit.Timestamp != out[j].Commit.Timestamp {
			return out[i].Commit.Timestamp > out[j].Commit.Timestamp
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Find returns the ids of every commit whose message is exactly message,
// sorted. No match fails with ErrNoCommitMessage.
func (r *Repo) Find(message string) ([]object.Hash, error) {
	if _, err := r.LoadState(); err != nil {
		return nil, err
	}
	ids, err := r.Store.Commits()
	if err != nil {
		return nil, err
	}
	var out []object.Hash
	for _, id := range ids {
		c, err := r.readCommit(id)
		if err != nil {
			return nil, err
		}
		if c.Message == message {
			out = append(out, id)
		}
	}
	if len(out) == 0 {
		return nil, ErrNoCommitMessage
	}
	return out, nil
}
