package redikit

import (
	"context"
	"time"

	"github.com/unkn0wn-root/redikit/internal/util"
	st "github.com/unkn0wn-root/redikit/store"
)

// Cache is the facade over a store.Store. Scalar values are strings (the
// store's native value shape); use View for typed values.
type Cache struct {
	st         st.Store
	prefix     string
	defaultTTL time.Duration
	scanCount  int64
	log        Logger
	hooks      Hooks
}

// Store exposes the underlying adapter for layers that compose with the same
// connection (e.g. lock.Manager).
func (c *Cache) Store() st.Store { return c.st }

// DefaultTTL reports the TTL applied to scalar writes that do not override it.
func (c *Cache) DefaultTTL() time.Duration { return c.defaultTTL }

// Ping verifies store connectivity.
func (c *Cache) Ping(ctx context.Context) error { return c.st.Ping(ctx) }

// Close tears the store connection down. In-flight operations are abandoned;
// there is no automatic reconnection.
func (c *Cache) Close(ctx context.Context) error { return c.st.Close(ctx) }

func (c *Cache) key(k string) string { return util.Join(c.prefix, k) }

// Get returns the scalar value at key.
func (c *Cache) Get(ctx context.Context, key string) (string, bool, error) {
	b, ok, err := c.st.Get(ctx, c.key(key))
	if err != nil || !ok {
		return "", false, err
	}
	return string(b), true, nil
}

// Set stores value under key. ttl <= 0 selects the default TTL; scalar writes
// through the facade always expire.
func (c *Cache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	return c.st.Set(ctx, c.key(key), []byte(value), ttl)
}

// SetMany stores all items atomically with a shared TTL (ttl <= 0 selects the
// default).
func (c *Cache) SetMany(ctx context.Context, items map[string]string, ttl time.Duration) error {
	if len(items) == 0 {
		return nil
	}
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	batch := make(map[string][]byte, len(items))
	for k, v := range items {
		batch[c.key(k)] = []byte(v)
	}
	return c.st.SetMulti(ctx, batch, ttl)
}

// GetMany returns the values present among keys; absent keys are omitted.
func (c *Cache) GetMany(ctx context.Context, keys []string) (map[string]string, error) {
	if len(keys) == 0 {
		return map[string]string{}, nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.key(k)
	}
	vals, err := c.st.MGet(ctx, full...)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(keys))
	for i, v := range vals {
		if v != nil {
			out[keys[i]] = string(v)
		}
	}
	return out, nil
}

// Remove deletes keys and reports how many existed.
func (c *Cache) Remove(ctx context.Context, keys ...string) (int64, error) {
	if len(keys) == 0 {
		return 0, nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.key(k)
	}
	return c.st.Del(ctx, full...)
}

// Flush deletes every key matching pattern within the facade's namespace.
// An empty pattern or "*" clears the whole namespace. Deletion runs as an
// incremental scan-and-unlink loop with bounded batches until the store
// reports scan completion.
func (c *Cache) Flush(ctx context.Context, pattern string) error {
	if pattern == "" {
		pattern = "*"
	}
	match := c.key(pattern)

	var cursor uint64
	var removed int64
	for {
		keys, next, err := c.st.Scan(ctx, cursor, match, c.scanCount)
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			n, err := c.st.Unlink(ctx, keys...)
			if err != nil {
				return err
			}
			removed += n
		}
		if next == 0 {
			break
		}
		cursor = next
	}
	c.log.Debug("flushed keys", Fields{"pattern": match, "removed": removed})
	return nil
}
