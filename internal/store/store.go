// Package store provides string-keyed persistence for GoPortal.
// The browser UI treats it as the system of record for notes and as a
// write-through cache for generated text; all values are opaque serialized
// strings.
package store

// Storer defines the interface for key-value persistence.
// This allows swapping between MemStore (testing), FSStore (IndexedDB in the
// browser) and SQLiteStore (native).
//
// Failures are non-fatal by contract: callers degrade a failed Get to a
// cache miss and a failed Set to "shown this session, not persisted".
type Storer interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)

	// Set writes value under key, replacing any previous value.
	Set(key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error

	// Lifecycle
	Close() error
}
