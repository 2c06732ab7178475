package repo

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{Core: CoreConfig{Hash: "blake2b", Compression: CompressionZstd, Storage: StorageSQLite}}
	if err := WriteConfig(dir, cfg); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	got, err := ReadConfig(dir)
	if err != nil {
		t.Fatalf("ReadConfig: %v", err)
	}
	if got != cfg {
		t.Fatalf("ReadConfig = %+v, want %+v", got, cfg)
	}
}

func TestReadConfigMissingUsesDefaults(t *testing.T) {
	got, err := ReadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("ReadConfig: %v", err)
	}
	if got != DefaultConfig() {
		t.Fatalf("ReadConfig = %+v, want defaults", got)
	}
}

func TestReadConfigFillsOmittedKeys(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, configFile), []byte("[core]\nstorage = \"sqlite\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := ReadConfig(dir)
	if err != nil {
		t.Fatalf("ReadConfig: %v", err)
	}
	if got.Core.Storage != StorageSQLite || got.Core.Hash != "sha256" || got.Core.Compression != CompressionNone {
		t.Fatalf("ReadConfig = %+v", got)
	}
}

func TestConfigRejectsUnknownValues(t *testing.T) {
	bad := []Config{
		{Core: CoreConfig{Hash: "md5"}},
		{Core: CoreConfig{Compression: "gzip"}},
		{Core: CoreConfig{Storage: "s3"}},
	}
	for _, cfg := range bad {
		err := cfg.normalize()
		if !errors.Is(err, ErrBadConfig) || !IsUserError(err) {
			t.Errorf("normalize(%+v) = %v, want user error wrapping ErrBadConfig", cfg, err)
		}
	}
	if _, err := Init(t.TempDir(), bad[0], Options{}); !errors.Is(err, ErrBadConfig) {
		t.Fatalf("Init with bad config: got %v", err)
	}
}

func TestReadConfigCorrupt(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, configFile), []byte("[core\nhash="), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadConfig(dir); !errors.Is(err, ErrCorruptState) {
		t.Fatalf("ReadConfig: got %v, want ErrCorruptState", err)
	}
}
