package cache

// ScopedKeyer wraps a Keyer with a prefix, giving each server tenant or
// test its own namespace in a shared backend:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "v2:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer means
// [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) RecordKey(inputHash string, opts RecordKeyOpts) string {
	return k.prefix + k.inner.RecordKey(inputHash, opts)
}

func (k *ScopedKeyer) LayoutKey(recordHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(recordHash, opts)
}

func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
