package cache

// ScopedKeyer wraps a Keyer with a prefix so that several consumers can
// share one backend without seeing each other's entries.
//
//	serverKeyer := NewScopedKeyer(NewDefaultKeyer(), "server:")
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

// GeneratorKey generates a prefixed key for generator output.
func (k *ScopedKeyer) GeneratorKey(generator string, params any, input []byte) string {
	return k.prefix + k.inner.GeneratorKey(generator, params, input)
}
