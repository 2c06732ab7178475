package repo

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/odvcencio/gitlet/pkg/object"
)

const (
	headKey  = "HEAD"
	indexKey = "index"
)

// State is the mutable part of a repository that one operation reads at the
// start and writes back at the end: the checked-out branch and the index.
type State struct {
	Branch string
	Index  *Index
}

// LoadState reads HEAD and the index. HEAD must name an existing branch.
func (r *Repo) LoadState() (*State, error) {
	data, err := r.KV.Get(headKey)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotInitialized
		}
		return nil, fmt.Errorf("load state: read HEAD: %w", err)
	}
	content := strings.TrimRight(string(data), "\n")
	if !strings.HasPrefix(content, "ref: "+refsPrefix) {
		return nil, fmt.Errorf("load state: HEAD %q: %w", content, ErrCorruptState)
	}
	branch := strings.TrimPrefix(content, "ref: "+refsPrefix)
	if ok, err := r.BranchExists(branch); err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	} else if !ok {
		return nil, fmt.Errorf("load state: HEAD names missing branch %q: %w", branch, ErrCorruptState)
	}

	ix := NewIndex()
	raw, err := r.KV.Get(indexKey)
	switch {
	case err == nil:
		if err := json.Unmarshal(raw, ix); err != nil {
			return nil, fmt.Errorf("load state: decode index: %w: %w", ErrCorruptState, err)
		}
		if ix.Added == nil {
			ix.Added = make(map[string]object.Hash)
		}
		if ix.Removed == nil {
			ix.Removed = make(map[string]bool)
		}
	case isNotFound(err):
	default:
		return nil, fmt.Errorf("load state: read index: %w", err)
	}
	return &State{Branch: branch, Index: ix}, nil
}

// SaveState writes HEAD and the index back.
func (r *Repo) SaveState(st *State) error {
	if err := r.KV.Put(headKey, []byte("ref: "+refsPrefix+st.Branch+"\n")); err != nil {
		return fmt.Errorf("save state: write HEAD: %w", err)
	}
	data, err := json.MarshalIndent(st.Index, "", "  ")
	if err != nil {
		return fmt.Errorf("save state: encode index: %w", err)
	}
	if err := r.KV.Put(indexKey, data); err != nil {
		return fmt.Errorf("save state: write index: %w", err)
	}
	return nil
}

// head returns the id and commit at the tip of st's branch.
func (r *Repo) head(st *State) (object.Hash, *object.Commit, error) {
	id, err := r.ReadBranch(st.Branch)
	if err != nil {
		return "", nil, err
	}
	c, err := r.readCommit(id)
	if err != nil {
		return "", nil, err
	}
	return id, c, nil
}

// ResolveHeadCommit follows HEAD to the checked-out branch's tip commit.
func (r *Repo) ResolveHeadCommit() (object.Hash, *object.Commit, error) {
	st, err := r.LoadState()
	if err != nil {
		return "", nil, err
	}
	return r.head(st)
}

func (r *Repo) readCommit(id object.Hash) (*object.Commit, error) {
	c, err := r.Store.ReadCommit(id)
	if err != nil {
		return nil, missingObject("read commit", id, err)
	}
	return c, nil
}

func (r *Repo) readBlobData(id object.Hash) ([]byte, error) {
	b, err := r.Store.ReadBlob(id)
	if err != nil {
		return nil, missingObject("read blob", id, err)
	}
	return b.Data, nil
}
