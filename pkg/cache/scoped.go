package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments or tenants
// can share one cache backend.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "autogrid:v1:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer selects
// [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// LayoutKey returns the prefixed layout key.
func (k *ScopedKeyer) LayoutKey(boardHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(boardHash, opts)
}

// RenderKey returns the prefixed render key.
func (k *ScopedKeyer) RenderKey(layoutHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(layoutHash, opts)
}
