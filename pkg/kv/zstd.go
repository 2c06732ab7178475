package kv

import (
	"fmt"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// Zstd wraps a Store and transparently compresses values whose key starts
// with prefix. Other keys pass through untouched, so small mutable records
// (HEAD, refs, index) stay human-readable on disk.
type Zstd struct {
	inner  Store
	prefix string
	enc    *zstd.Encoder
	dec    *zstd.Decoder
}

// NewZstd wraps inner, compressing every value stored under prefix.
func NewZstd(inner Store, prefix string) (*Zstd, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("zstd: new encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		return nil, fmt.Errorf("zstd: new decoder: %w", err)
	}
	return &Zstd{inner: inner, prefix: prefix, enc: enc, dec: dec}, nil
}

func (z *Zstd) compressed(key string) bool {
	return strings.HasPrefix(key, z.prefix)
}

func (z *Zstd) Get(key string) ([]byte, error) {
	data, err := z.inner.Get(key)
	if err != nil || !z.compressed(key) {
		return data, err
	}
	out, err := z.dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("get %q: zstd decode: %w", key, err)
	}
	return out, nil
}

func (z *Zstd) Put(key string, data []byte) error {
	if !z.compressed(key) {
		return z.inner.Put(key, data)
	}
	return z.inner.Put(key, z.enc.EncodeAll(data, nil))
}

func (z *Zstd) Has(key string) (bool, error) { return z.inner.Has(key) }
func (z *Zstd) Delete(key string) error { return z.inner.Delete(key) }
func (z *Zstd) List(prefix string) ([]string, error) { return z.inner.List(prefix) }

// Close releases the codec state and closes the wrapped store.
func (z *Zstd) Close() error {
	z.enc.Close()
	z.dec.Close()
	return Close(z.inner)
}
