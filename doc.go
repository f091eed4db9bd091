// Package redikit is a cache-access facade over a remote key-value store.
// It provides scalar, list, map and set operation groups with a key prefix
// and a default TTL, typed views with pluggable codecs, a compute-or-fetch
// coordinator, a deterministic cache-key deriver, and (via the lock
// subpackage) lease-based distributed mutual exclusion.
//
// Components:
//   - store.Store: explicit adapter interface over the remote store
//     (Redis implementation in store/redis, in-process in store/memory,
//     local byte tiers in store/bigcache and store/ristretto).
//   - Cache: the facade. Owns a store, prefix and default TTL; scalar writes
//     always carry an expiry.
//   - View[V]: typed layer binding a Codec[V] to a byte store. View.Fetch is
//     the compute-or-fetch path: cached value or run the computation, return
//     immediately, persist in the background.
//   - DeriveKey: canonical-JSON + SHA-1 fingerprint for structured values.
//   - lock.Manager: named TTL-bounded leases with token-checked release.
//
// Fetch persistence is fire-and-forget: the cache is not guaranteed warm the
// moment the first call returns. Hooks expose the completion of background
// work for tests and telemetry.
package redikit
