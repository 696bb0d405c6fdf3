// Package cache provides caching for compiled visualization documents.
//
// The compiler is a pure function of (snapshot bytes, options), so compiled
// documents are cached under a key derived from the SHA-256 of the dataset
// file plus the compile options. A cache hit skips loading, validation, and
// compilation entirely.
//
// Three backends are provided:
//   - FileCache: filesystem-backed, used by the CLI
//   - RedisCache: shared cache for long-running preview servers
//   - MemoryCache / NullCache: testing and --no-cache
package cache

import (
	"context"
	"time"
)

// Default TTLs per cached artifact class.
const (
	// TTLDocument bounds compiled-document entries. Snapshots change
	// rarely and the options space is small, so a day is generous.
	TTLDocument = 24 * time.Hour

	// TTLDataset bounds validated-summary entries used by inspect.
	TTLDataset = 6 * time.Hour
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with an optional TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer generates cache keys for the compiler's cacheable artifacts.
type Keyer interface {
	// DocumentKey generates a key for a compiled document, derived from the
	// dataset content hash and the compile options.
	DocumentKey(datasetHash string, opts DocumentKeyOpts) string

	// DatasetKey generates a key for a validated dataset summary.
	DatasetKey(datasetHash string) string
}

// DocumentKeyOpts are the compile options that affect document output and
// therefore participate in the cache key.
type DocumentKeyOpts struct {
	DataURL string `json:"data_url,omitempty"`
	Inline  bool   `json:"inline,omitempty"`
}

// DefaultKeyer implements the standard key scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// DocumentKey generates a key of the form "doc:<sha256>".
func (k *DefaultKeyer) DocumentKey(datasetHash string, opts DocumentKeyOpts) string {
	return hashKey("doc", datasetHash, opts)
}

// DatasetKey generates a key of the form "dataset:<sha256>".
func (k *DefaultKeyer) DatasetKey(datasetHash string) string {
	return hashKey("dataset", datasetHash)
}

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// Useful when several snapshots share one Redis instance.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// DocumentKey generates a prefixed document key.
func (k *ScopedKeyer) DocumentKey(datasetHash string, opts DocumentKeyOpts) string {
	return k.prefix + k.inner.DocumentKey(datasetHash, opts)
}

// DatasetKey generates a prefixed dataset key.
func (k *ScopedKeyer) DatasetKey(datasetHash string) string {
	return k.prefix + k.inner.DatasetKey(datasetHash)
}
