// Package cache stores serialized import results keyed by document content
// and import options.
//
// Three backends are provided: [NullCache] (caching disabled), [FileCache]
// (one JSON file per entry, used by the CLI) and [RedisCache] (shared
// deployments behind the HTTP server). Keys are derived by a [Keyer] so that
// documents imported with different options never share an entry.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the stored bytes and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// ImportKeyOpts are the import options that change the imported model.
type ImportKeyOpts struct {
	Dialect   string  `json:"dialect"`
	Policy    string  `json:"policy"`
	Tolerance float64 `json:"tolerance"`
}

// Keyer derives cache keys.
type Keyer interface {
	// ImportKey returns the key for a document with the given content hash.
	ImportKey(docHash string, opts ImportKeyOpts) string
}

// DefaultKeyer produces unprefixed keys of the form "import:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns a [DefaultKeyer].
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ImportKey hashes the document hash together with opts.
func (DefaultKeyer) ImportKey(docHash string, opts ImportKeyOpts) string {
	return hashKey("import", docHash, opts)
}

// TTLImport is the default lifetime of a cached import result.
const TTLImport = 7 * 24 * time.Hour
