// Package repo implements the gitlet engine: staging, commits, branches,
// checkout, reset and three-way merge over an object store and a working
// tree.
package repo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/odvcencio/gitlet/pkg/kv"
	"github.com/odvcencio/gitlet/pkg/object"
	"github.com/odvcencio/gitlet/pkg/worktree"
)

// MetaDir is the name of the repository metadata directory.
const MetaDir = ".gitlet"

// DefaultBranch is the branch created by Init.
const DefaultBranch = "master"

// Repo is an opened gitlet repository. All persistent state lives in KV;
// the working tree is reached only through Work.
type Repo struct {
	RootDir string // working directory root; empty for in-memory repos
	Dir     string // .gitlet directory; empty for in-memory repos
	KV      kv.Store
	Store   *object.Store
	Work    worktree.Tree
	Config  Config

	log *slog.Logger
	now func() time.Time
}

// Options tunes a Repo. The zero value is valid.
type Options struct {
	Logger *slog.Logger
	// Now supplies commit timestamps. Defaults to time.Now.
	Now func() time.Time
}

// New builds a Repo over an existing store and tree without touching either.
// Call Initialize on a fresh store.
func New(store kv.Store, work worktree.Tree, cfg Config, opts Options) (*Repo, error) {
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	r := &Repo{
		KV:     store,
		Store:  object.NewStore(store, cfg.HashFunc()),
		Work:   work,
		Config: cfg,
		log:    opts.Logger,
		now:    opts.Now,
	}
	if r.log == nil {
		r.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if r.now == nil {
		r.now = time.Now
	}
	return r, nil
}

// Initialize writes the root commit, the default branch, HEAD and an empty
// index. It fails with ErrAlreadyInitialized if HEAD already exists.
func (r *Repo) Initialize() error {
	ok, err := r.KV.Has(headKey)
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	if ok {
		return ErrAlreadyInitialized
	}

	root := &object.Commit{
		Message:   "initial commit",
		Timestamp: 0,
		Snapshot:  map[string]object.Hash{},
	}
	id, err := r.Store.WriteCommit(root)
	if err != nil {
		return fmt.Errorf("init: write root commit: %w", err)
	}
	if err := r.UpdateBranch(DefaultBranch, id); err != nil {
		return fmt.Errorf("init: %w", err)
	}
	st := &State{Branch: DefaultBranch, Index: NewIndex()}
	if err := r.SaveState(st); err != nil {
		return fmt.Errorf("init: %w", err)
	}
	r.log.Debug("initialized repository", "root", id.Short(7), "hash", r.Config.Core.Hash, "storage", r.Config.Core.Storage)
	return nil
}

// Init creates a repository in path: the .gitlet directory, its config file
// and the initial commit. It fails if a .gitlet directory already exists.
func Init(path string, cfg Config, opts Options) (*Repo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("init: abs path: %w", err)
	}
	dir := filepath.Join(abs, MetaDir)
	if _, err := os.Stat(dir); err == nil {
		return nil, ErrAlreadyInitialized
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("init: mkdir %s: %w", dir, err)
	}
	if err := WriteConfig(dir, cfg); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}

	r, err := openAt(abs, dir, cfg, opts)
	if err != nil {
		return nil, err
	}
	if err := r.Initialize(); err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}

// Open searches upward from path for a .gitlet directory and opens the
// repository. It fails with ErrNotInitialized if none is found.
func Open(path string, opts Options) (*Repo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("open: abs path: %w", err)
	}

	cur := abs
	for {
		dir := filepath.Join(cur, MetaDir)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			cfg, err := ReadConfig(dir)
			if err != nil {
				return nil, fmt.Errorf("open: %w", err)
			}
			return openAt(cur, dir, cfg, opts)
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return nil, ErrNotInitialized
		}
		cur = parent
	}
}

func openAt(root, dir string, cfg Config, opts Options) (*Repo, error) {
	store, err := openKV(dir, cfg)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	r, err := New(store, worktree.NewOS(root), cfg, opts)
	if err != nil {
		kv.Close(store)
		return nil, err
	}
	r.RootDir = root
	r.Dir = dir
	return r, nil
}

// Close releases the underlying store.
func (r *Repo) Close() error {
	return kv.Close(r.KV)
}

// debug logs only when the logger has debug enabled, so per-path records in
// hot loops cost nothing otherwise.
func (r *Repo) debug(msg string, args ...any) {
	if r.log.Enabled(context.Background(), slog.LevelDebug) {
		r.log.Debug(msg, args...)
	}
}

// isNotFound reports whether err means the key is absent from the store.
func isNotFound(err error) bool {
	return errors.Is(err, kv.ErrNotFound)
}
