package cache

import "strings"

// Keyer derives cache keys for each kind of cached entry.
type Keyer interface {
	// HTTPKey keys a raw upstream HTTP response.
	HTTPKey(namespace, key string) string
	// DataKey keys the aggregated profile data of a GitHub user.
	DataKey(username string) string
	// QuoteKey keys the quote served during a time bucket.
	QuoteKey(bucket string) string
	// CardKey keys a rendered card by the hash of its normalized parameters.
	CardKey(paramsHash string) string
}

// DefaultKeyer produces plain "kind:..." keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) HTTPKey(namespace, key string) string { return "http:" + namespace + ":" + key }

// DataKey lowercases username since GitHub logins are case-insensitive.
func (DefaultKeyer) DataKey(username string) string {
	return hashKey("data", strings.ToLower(username))
}

func (DefaultKeyer) QuoteKey(bucket string) string { return "quote:" + bucket }

func (DefaultKeyer) CardKey(paramsHash string) string { return "card:" + paramsHash }
