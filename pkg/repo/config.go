package repo

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/odvcencio/gitlet/pkg/kv"
	"github.com/odvcencio/gitlet/pkg/object"
)

const configFile = "config.toml"

// Storage backends.
const (
	StorageDir    = "dir"
	StorageSQLite = "sqlite"
)

// Compression modes for stored objects.
const (
	CompressionNone = "none"
	CompressionZstd = "zstd"
)

// Config is the repository-local settings file, .gitlet/config.toml. It is
// fixed at init time: changing hash or storage afterwards would orphan every
// stored object.
type Config struct {
	Core CoreConfig `toml:"core"`
}

type CoreConfig struct {
	Hash        string `toml:"hash"`
	Compression string `toml:"compression"`
	Storage     string `toml:"storage"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() Config {
	return Config{Core: CoreConfig{
		Hash:        string(object.HashSHA256),
		Compression: CompressionNone,
		Storage:     StorageDir,
	}}
}

// normalize fills empty fields with defaults and rejects unknown values.
func (c *Config) normalize() error {
	def := DefaultConfig()
	if c.Core.Hash == "" {
		c.Core.Hash = def.Core.Hash
	}
	if c.Core.Compression == "" {
		c.Core.Compression = def.Core.Compression
	}
	if c.Core.Storage == "" {
		c.Core.Storage = def.Core.Storage
	}
	if _, err := object.ParseHashFunc(c.Core.Hash); err != nil {
		return badConfig("hash", c.Core.Hash)
	}
	switch c.Core.Compression {
	case CompressionNone, CompressionZstd:
	default:
		return badConfig("compression", c.Core.Compression)
	}
	switch c.Core.Storage {
	case StorageDir, StorageSQLite:
	default:
		return badConfig("storage", c.Core.Storage)
	}
	return nil
}

// HashFunc returns the configured object digest.
func (c Config) HashFunc() object.HashFunc {
	h, err := object.ParseHashFunc(c.Core.Hash)
	if err != nil {
		return object.HashSHA256
	}
	return h
}

// ReadConfig loads dir/config.toml. A missing file yields DefaultConfig.
func ReadConfig(dir string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(filepath.Join(dir, configFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg = Config{}
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return Config{}, fmt.Errorf("read config: decode: %w: %w", ErrCorruptState, err)
	}
	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// WriteConfig atomically writes cfg to dir/config.toml.
func WriteConfig(dir string, cfg Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("write config: encode: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".config-tmp-*")
	if err != nil {
		return fmt.Errorf("write config: tmpfile: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write config: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write config: close: %w", err)
	}
	if err := os.Rename(tmpName, filepath.Join(dir, configFile)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write config: rename: %w", err)
	}
	return nil
}

// openKV opens the persistence backend selected by cfg inside dir.
func openKV(dir string, cfg Config) (kv.Store, error) {
	var store kv.Store
	switch cfg.Core.Storage {
	case StorageSQLite:
		db, err := kv.OpenSQLite(filepath.Join(dir, "store.db"))
		if err != nil {
			return nil, err
		}
		store = db
	default:
		store = kv.NewDir(dir)
	}
	if cfg.Core.Compression == CompressionZstd {
		z, err := kv.NewZstd(store, "objects/")
		if err != nil {
			kv.Close(store)
			return nil, fmt.Errorf("open store: %w", err)
		}
		store = z
	}
	return store, nil
}
