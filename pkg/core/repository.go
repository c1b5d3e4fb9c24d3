package core

import "context"

// Repository defines the contract for storing and retrieving records.
// Adhering to this interface keeps the core independent of the underlying
// storage mechanism (filesystem, memory, ...).
type Repository interface {
	// Save persists a record. It creates if not exists, or updates if it does.
	Save(ctx context.Context, r Record) error

	// Get retrieves a record by its ID. Missing records yield ErrNotFound.
	Get(ctx context.Context, id string) (Record, error)

	// List returns all available records, in no particular order.
	List(ctx context.Context) ([]Record, error)

	// Delete removes a record by its ID. Missing records yield ErrNotFound.
	Delete(ctx context.Context, id string) error

	// Initialize ensures the underlying storage is ready.
	Initialize(ctx context.Context) error
}

// Watchable is implemented by repositories that can report changes made
// behind the service's back (e.g. a file edited by hand).
type Watchable interface {
	// Watch emits events for records whose ID matches the glob pattern.
	// The channel is closed when ctx is done.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}

// KV is the opaque key-value store backing the session.
type KV interface {
	// Get returns the raw value and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete is a no-op for missing keys.
	Delete(ctx context.Context, key string) error
}
