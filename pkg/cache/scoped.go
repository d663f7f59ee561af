package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// This is useful when one cache backend serves several deployments or
// users that need separate namespaces.
//
// Example usage:
//
//	// User-specific keys for private boards
//	userKeyer := NewScopedKeyer(NewDefaultKeyer(), "user:abc123:")
//
//	// Global keys for shared dashboards
//	globalKeyer := NewDefaultKeyer()
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

// OptionKey generates a prefixed key for a rendered option document.
func (k *ScopedKeyer) OptionKey(board string, payload []byte) string {
	return k.prefix + k.inner.OptionKey(board, payload)
}

// DataKey generates a prefixed key for a data payload.
func (k *ScopedKeyer) DataKey(board string, serial int) string {
	return k.prefix + k.inner.DataKey(board, serial)
}
