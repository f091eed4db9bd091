package redikit

import (
	"context"
	"fmt"
	"time"

	cd "github.com/unkn0wn-root/redikit/codec"
	"github.com/unkn0wn-root/redikit/internal/util"
	st "github.com/unkn0wn-root/redikit/store"
)

// ViewOptions tune a typed view constructed over a raw byte store.
type ViewOptions struct {
	Prefix     string
	DefaultTTL time.Duration // 0 => 300s
	Logger     Logger
	Hooks      Hooks
}

// View binds a Codec[V] to a byte store, giving typed scalar access and the
// compute-or-fetch path. The store may be the facade's remote store or a
// local tier (store/bigcache, store/ristretto).
type View[V any] struct {
	kv     st.Bytes
	codec  cd.Codec[V]
	prefix string
	ttl    time.Duration
	log    Logger
	hooks  Hooks
}

// NewView builds a typed view over any byte store.
func NewView[V any](kv st.Bytes, codec cd.Codec[V], opts ViewOptions) (*View[V], error) {
	if kv == nil {
		return nil, fmt.Errorf("redikit: store is required")
	}
	if codec == nil {
		return nil, fmt.Errorf("redikit: codec is required")
	}
	return &View[V]{
		kv:     kv,
		codec:  codec,
		prefix: opts.Prefix,
		ttl:    coalesce[time.Duration](opts.DefaultTTL, DefaultTTL),
		log:    coalesce[Logger](opts.Logger, NopLogger{}),
		hooks:  coalesce[Hooks](opts.Hooks, NopHooks{}),
	}, nil
}

// ViewOf derives a typed view from a facade, inheriting its store, prefix,
// TTL, logger and hooks.
func ViewOf[V any](c *Cache, codec cd.Codec[V]) (*View[V], error) {
	return NewView[V](c.st, codec, ViewOptions{
		Prefix:     c.prefix,
		DefaultTTL: c.defaultTTL,
		Logger:     c.log,
		Hooks:      c.hooks,
	})
}

func (v *View[V]) key(k string) string { return util.Join(v.prefix, k) }

// Get returns the decoded value at key. A stored entry that fails to decode
// is treated as a miss: the corrupt bytes are deleted (self-heal) and ok is
// false, never a garbage value.
func (v *View[V]) Get(ctx context.Context, key string) (V, bool, error) {
	var zero V
	k := v.key(key)
	raw, ok, err := v.kv.Get(ctx, k)
	if err != nil || !ok {
		return zero, false, err
	}
	val, err := v.codec.Decode(raw)
	if err != nil {
		_, _ = v.kv.Del(ctx, k) // self-heal corrupt
		v.hooks.SelfHeal(k, "value_decode")
		v.log.Debug("dropped undecodable entry", Fields{"key": k, "err": err})
		return zero, false, nil
	}
	return val, true, nil
}

// Set encodes and stores value under key. ttl <= 0 selects the view default.
// Encoding failure returns *SerializationError.
func (v *View[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = v.ttl
	}
	payload, err := v.codec.Encode(value)
	if err != nil {
		return &SerializationError{Err: err}
	}
	return v.kv.Set(ctx, v.key(key), payload, ttl)
}

// Remove deletes the entry at key.
func (v *View[V]) Remove(ctx context.Context, key string) error {
	_, err := v.kv.Del(ctx, v.key(key))
	return err
}

// Fetch returns the cached value at key, or runs fn and caches its result.
//
// On a hit the decoded value is returned and fn never runs. On a miss fn runs
// exactly once per call (no coalescing across callers; wrap the critical
// section with lock.Manager if single-flight behavior is required) and its
// value is returned immediately; persistence happens in a background
// goroutine with the view's default TTL, and its failure is observed via
// Hooks.PersistDone and logs but never reaches the caller. The cache is
// therefore not guaranteed warm the instant Fetch returns.
//
// If fn fails, the error propagates unchanged and a background delete clears
// any concurrent write at key.
//
// A store read error degrades to a miss so the computation still runs when
// the store is down; the failed write-back is non-fatal.
func (v *View[V]) Fetch(ctx context.Context, key string, fn func(context.Context) (V, error)) (V, error) {
	var zero V

	val, ok, err := v.Get(ctx, key)
	if err != nil {
		v.log.Warn("fetch read failed; computing", Fields{"key": v.key(key), "err": err})
	} else if ok {
		return val, nil
	}

	out, err := fn(ctx)
	if err != nil {
		go v.cleanup(context.WithoutCancel(ctx), key)
		return zero, err
	}

	go v.persist(context.WithoutCancel(ctx), key, out)
	return out, nil
}

func (v *View[V]) persist(ctx context.Context, key string, value V) {
	err := v.Set(ctx, key, value, 0)
	if err != nil {
		v.log.Error("async persist failed", Fields{"key": v.key(key), "err": err})
	}
	v.hooks.PersistDone(v.key(key), err)
}

func (v *View[V]) cleanup(ctx context.Context, key string) {
	err := v.Remove(ctx, key)
	if err != nil {
		v.log.Warn("async cleanup failed", Fields{"key": v.key(key), "err": err})
	}
	v.hooks.CleanupDone(v.key(key), err)
}
