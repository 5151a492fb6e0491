// Package cache stores pipeline results (translated records, layout plans
// and rendered artifacts) keyed by content hashes.
//
// Backends:
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [RedisCache]: shared cache for server deployments
//   - [MongoCache]: shared cache with server-side TTL expiry
//   - [NullCache]: disables caching
//
// Keys are built by a [Keyer] so that every option affecting a result
// is part of its key. [Open] picks a backend from a URL.
package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/matzehuels/featuremap/pkg/errors"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value for key and whether it was found. Expired
	// entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend connections.
	Close() error
}

// Default lifetimes. Results are pure functions of their keys, so the TTLs
// only bound disk and memory use.
const (
	RecordTTL   = 7 * 24 * time.Hour
	LayoutTTL   = 7 * 24 * time.Hour
	ArtifactTTL = 24 * time.Hour
)

// DefaultDir returns the file cache directory: $XDG_CACHE_HOME/featuremap,
// falling back to the platform cache directory.
func DefaultDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, "featuremap"), nil
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "featuremap"), nil
}

// Open returns the cache described by url:
//
//	""  or "file"          file cache in DefaultDir
//	file:/path/to/dir      file cache in dir
//	redis://host:6379/0    Redis
//	mongodb://host:27017   MongoDB
//	none                   NullCache
func Open(ctx context.Context, url string) (Cache, error) {
	var (
		c   Cache
		err error
	)
	switch {
	case url == "none":
		return NewNullCache(), nil
	case url == "" || url == "file":
		var dir string
		if dir, err = DefaultDir(); err == nil {
			c, err = fileCache(dir)
		}
	case strings.HasPrefix(url, "file:"):
		c, err = fileCache(strings.TrimPrefix(url, "file:"))
	case strings.HasPrefix(url, "redis://"), strings.HasPrefix(url, "rediss://"):
		var rc *RedisCache
		if rc, err = NewRedisCache(ctx, url); err == nil {
			c = rc
		}
	case strings.HasPrefix(url, "mongodb://"), strings.HasPrefix(url, "mongodb+srv://"):
		var mc *MongoCache
		if mc, err = NewMongoCache(ctx, url, DefaultMongoDatabase); err == nil {
			c = mc
		}
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported cache url %q", url)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "open cache %s", url)
	}
	return c, nil
}

func fileCache(dir string) (Cache, error) {
	fc, err := NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return fc, nil
}
