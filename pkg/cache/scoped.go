package cache

// ScopedKeyer prefixes every key of an inner Keyer, giving deployments that
// share one Redis or Mongo instance separate namespaces:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "statcard:prod:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner uses DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

func (k *ScopedKeyer) DataKey(username string) string {
	return k.prefix + k.inner.DataKey(username)
}

func (k *ScopedKeyer) QuoteKey(bucket string) string {
	return k.prefix + k.inner.QuoteKey(bucket)
}

func (k *ScopedKeyer) CardKey(paramsHash string) string {
	return k.prefix + k.inner.CardKey(paramsHash)
}
