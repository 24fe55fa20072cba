package httputil

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrExpired is returned by [Cache.Get] when an entry exists but has
// outlived its TTL. The stale data stays on disk; callers should fetch
// fresh data and overwrite the entry with [Cache.Set]:
//
//	ok, err := cache.Get(key, &v)
//	if !ok && (err == nil || errors.Is(err, httputil.ErrExpired)) {
//	    // fetch and cache.Set(key, v)
//	}
var ErrExpired = errors.New("cache entry expired")

// Cache is a file-based store for JSON-marshalable values.
//
// Every entry is one file named after the SHA-256 of its key, so arbitrary
// keys (URLs, package names with slashes) are safe. Entries expire when
// their file modification time is older than the TTL; a TTL of zero means
// entries never expire.
//
// A Cache value is not goroutine-safe, but separate Cache values and
// separate processes may share one directory: writes go through a rename,
// so readers never observe a partial entry.
type Cache struct {
	dir    string
	ttl    time.Duration
	prefix string
}

// NewCache returns a Cache storing entries under dir, creating the
// directory as needed. An empty dir selects the user cache directory,
// ~/.cache/aurum on Linux. A zero ttl disables expiry.
func NewCache(dir string, ttl time.Duration) (*Cache, error) {
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(base, "aurum")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir, ttl: ttl}, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string { return c.dir }

// TTL returns the entry time-to-live; zero means entries never expire.
func (c *Cache) TTL() time.Duration { return c.ttl }

// Get looks up key and unmarshals the stored value into v, which must be a
// pointer. It reports (true, nil) on a fresh hit, (false, nil) on a miss,
// and (false, [ErrExpired]) when the entry exists but is stale. Reads never
// touch modification times, so a Get does not refresh an entry's TTL.
func (c *Cache) Get(key string, v any) (bool, error) {
	path := c.entryPath(key)
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if c.ttl > 0 && time.Since(info.ModTime()) > c.ttl {
		return false, ErrExpired
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decoding cache entry: %w", err)
	}
	return true, nil
}

// Set stores v under key, replacing any previous entry and resetting its
// TTL. The value is written to a temporary file first and moved into place,
// so concurrent readers see either the old entry or the new one.
func (c *Cache) Set(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	path := c.entryPath(key)
	tmp, err := os.CreateTemp(c.dir, ".entry-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Namespace returns a view of the cache whose keys all carry the given
// prefix, sharing the parent's directory and TTL. Namespaces nest:
//
//	rpc := cache.Namespace("rpc:")
//	info := rpc.Namespace("info:")   // keys become "rpc:info:<key>"
func (c *Cache) Namespace(prefix string) *Cache {
	return &Cache{dir: c.dir, ttl: c.ttl, prefix: c.prefix + prefix}
}

func (c *Cache) entryPath(key string) string {
	sum := sha256.Sum256([]byte(c.prefix + key))
	return filepath.Join(c.dir, hex.EncodeToString(sum[:])+".json")
}
