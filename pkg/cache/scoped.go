package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments can share
// one Redis without colliding.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
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
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// MazeKey generates a prefixed maze key.
func (k *ScopedKeyer) MazeKey(opts MazeKeyOpts) string {
	return k.prefix + k.inner.MazeKey(opts)
}

// RenderKey generates a prefixed render key.
func (k *ScopedKeyer) RenderKey(mazeHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(mazeHash, opts)
}
