package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// This is useful when several tenji servers share one redis instance
// or when a deployment wants to invalidate every entry by changing the prefix.
//
// Example usage:
//
//	// Keys for one deployment
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "tenji:v1:")
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

// ConversionKey generates a prefixed key for conversion caching.
func (k *ScopedKeyer) ConversionKey(input string, opts ConversionKeyOpts) string {
	return k.prefix + k.inner.ConversionKey(input, opts)
}
