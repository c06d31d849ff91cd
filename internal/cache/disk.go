// Package cache implements a msgpack-serialized, content-hash-keyed disk
// cache of per-file check results, so a "check" run over an unchanged file
// under an unchanged preprocessor configuration can skip lex/parse/bind
// entirely. Entries also store the rendered diagnostics, but "check" skips
// only files whose cached entry is clean and re-checks the rest.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// schemaVersion is bumped whenever FilePayload's shape changes, so a stale
// cache entry from an older binary is silently ignored rather than
// misdecoded.
const schemaVersion uint16 = 1

// Key identifies one cache entry: a file's content hash combined with the
// fingerprint of the preprocessor configuration (predefines, include dirs,
// keyword version) it was compiled under, since the same bytes can check
// clean under one configuration and not another.
type Key [32]byte

// KeyFor derives a Key from a file's content hash and its configuration
// fingerprint.
func KeyFor(contentHash, configFingerprint [32]byte) Key {
	var buf [64]byte
	copy(buf[:32], contentHash[:])
	copy(buf[32:], configFingerprint[:])
	return sha256.Sum256(buf[:])
}

// FilePayload is the cached outcome of checking one source file.
type FilePayload struct {
	Schema        uint16
	Path          string
	ContentHash   [32]byte
	ErrorCount    int
	WarningCount  int
	Clean         bool
	RenderedDiags string // pretty-printed diagnostics, empty when Clean
}

// DiskCache stores FilePayload entries under
// $XDG_CACHE_HOME/<app>/checks/<key>.mp, with atomic temp-file-then-rename
// writes so a crash mid-write never leaves a corrupt entry visible to a
// concurrent reader.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// Open initializes the disk cache at the platform-standard cache directory
// for app, creating it if necessary.
func Open(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Key) string {
	return filepath.Join(c.dir, "checks", hex.EncodeToString(key[:])+".mp")
}

// Put serializes and atomically writes payload under key.
func (c *DiskCache) Put(key Key, payload *FilePayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload.Schema = schemaVersion

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmpName := f.Name()
	defer os.Remove(tmpName)

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, p)
}

// Get reads and deserializes the payload stored under key, if any.
func (c *DiskCache) Get(key Key, out *FilePayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != schemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates every entry, e.g. after a schema or compiler upgrade.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}
