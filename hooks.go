package redikit

// Hooks lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking.
// The cache calls them on hot paths and from background goroutines.
type Hooks interface {
	// An entry was deleted on read because it could not be decoded.
	// reason ∈ {"value_decode"}
	SelfHeal(storageKey, reason string)

	// A background write-back started by Fetch finished. err is nil on
	// success. This is the observation point for fire-and-forget persistence.
	PersistDone(storageKey string, err error)

	// A background delete after a failed computation finished.
	CleanupDone(storageKey string, err error)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) SelfHeal(string, string)   {}
func (NopHooks) PersistDone(string, error) {}
func (NopHooks) CleanupDone(string, error) {}
