package cache

// ScopedKeyer wraps a Keyer with a prefix so that several consumers can share
// one backend without colliding, for example the CLI and the HTTP server
// pointed at the same Redis instance:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "server:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// A nil inner keyer means [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ImportKey returns the prefixed key of the inner keyer.
func (k *ScopedKeyer) ImportKey(docHash string, opts ImportKeyOpts) string {
	return k.prefix + k.inner.ImportKey(docHash, opts)
}
