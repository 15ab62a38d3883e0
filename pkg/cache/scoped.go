package cache

// ScopedKeyer prefixes every key of an inner Keyer, so that several
// deployments or tenants can share one Redis without colliding.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer if inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) BlueprintKey(blueprintHash string) string {
	return k.prefix + k.inner.BlueprintKey(blueprintHash)
}

func (k *ScopedKeyer) LevelKey(blueprintHash string, opts LevelKeyOpts) string {
	return k.prefix + k.inner.LevelKey(blueprintHash, opts)
}
