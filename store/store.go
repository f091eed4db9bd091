// Package store defines the storage abstraction used by redikit.
//
// The command surface is enumerated explicitly as named methods instead of any
// reflective dispatch: every capability the cache layers rely on is a
// compile-time checked interface. Implementations MUST be safe for concurrent
// use and byte-for-byte transparent on the KV path: Get must return exactly
// the same []byte that was previously passed to Set for a key (no
// prepended/appended metadata, no re-encoding, no mutation).
//
// Collection values (lists, hashes, sets) are strings, matching what the
// remote store returns on the wire.
package store

import (
	"context"
	"time"
)

// Bytes is the minimal scalar surface typed views and the fetch coordinator
// depend on. Local in-process tiers (bigcache, ristretto) implement exactly
// this much.
type Bytes interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	// If an IO/remote error happens, return (nil, false, err).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value with the given TTL. ttl <= 0 means no expiry at the
	// store level; higher layers decide whether that is permitted.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Del removes keys (best-effort) and reports how many existed.
	Del(ctx context.Context, keys ...string) (int64, error)
}

// KV is the full scalar command group, including bulk reads and atomic
// multi-key writes.
type KV interface {
	Bytes

	// MGet returns one slot per requested key; a nil slot is a miss.
	MGet(ctx context.Context, keys ...string) ([][]byte, error)

	// SetMulti stores all items with a shared TTL in one atomic batch
	// (MULTI/EXEC or equivalent). Either all writes apply or none do.
	SetMulti(ctx context.Context, items map[string][]byte, ttl time.Duration) error
}

// Lists is the double-ended list command group.
type Lists interface {
	// LPush prepends values; returns the list length after the push.
	LPush(ctx context.Context, key string, values ...string) (int64, error)
	// RPush appends values; returns the list length after the push.
	RPush(ctx context.Context, key string, values ...string) (int64, error)
	// LPop removes and returns the head; ok=false when the list is empty or absent.
	LPop(ctx context.Context, key string) (string, bool, error)
	// RPop removes and returns the tail; ok=false when the list is empty or absent.
	RPop(ctx context.Context, key string) (string, bool, error)
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)
	LTrim(ctx context.Context, key string, start, stop int64) error
	LLen(ctx context.Context, key string) (int64, error)
}

// Hashes is the field/value map command group.
type Hashes interface {
	HSet(ctx context.Context, key, field, value string) error
	HSetMulti(ctx context.Context, key string, fields map[string]string) error
	// HGet returns ok=false when the field is absent.
	HGet(ctx context.Context, key, field string) (string, bool, error)
	// HGetMulti returns only the fields that exist.
	HGetMulti(ctx context.Context, key string, fields ...string) (map[string]string, error)
	HDel(ctx context.Context, key string, fields ...string) (int64, error)
	HLen(ctx context.Context, key string) (int64, error)
}

// Sets is the unordered-member command group.
type Sets interface {
	SAdd(ctx context.Context, key string, members ...string) (int64, error)
	SRem(ctx context.Context, key string, members ...string) (int64, error)
	SIsMember(ctx context.Context, key, member string) (bool, error)
	SMembers(ctx context.Context, key string) ([]string, error)
	SCard(ctx context.Context, key string) (int64, error)
}

// Scanner walks the keyspace incrementally.
type Scanner interface {
	// Scan returns up to count keys matching the glob pattern, plus the next
	// cursor. A returned cursor of 0 means the scan is complete. Keys created
	// or deleted mid-scan may or may not be observed, as with the remote
	// store's native SCAN.
	Scan(ctx context.Context, cursor uint64, pattern string, count int64) ([]string, uint64, error)

	// Unlink removes keys without blocking on reclamation; returns how many
	// were removed.
	Unlink(ctx context.Context, keys ...string) (int64, error)
}

// Locker is the lease primitive used for distributed mutual exclusion.
// Acquire must be atomic at the store level (set-if-absent with expiry);
// Release must only delete when the stored token matches (check-and-delete),
// so a lease that expired and was re-acquired by another holder is never
// released by the original holder.
type Locker interface {
	// AcquireLock returns (token, true, nil) when the lease was obtained and
	// ("", false, nil) when the name is already leased.
	AcquireLock(ctx context.Context, name string, ttl time.Duration) (token string, ok bool, err error)

	// ReleaseLock deletes the lease iff token matches the current holder.
	// Returns false when the lease is absent or held with a different token.
	ReleaseLock(ctx context.Context, name, token string) (bool, error)
}

// Store is the full command surface the facade depends on.
type Store interface {
	KV
	Lists
	Hashes
	Sets
	Scanner
	Locker

	// Ping verifies connectivity.
	Ping(ctx context.Context) error

	// Close releases resources. In-flight operations are abandoned.
	Close(ctx context.Context) error
}
