// Package bigcache adapts allegro/bigcache as a local byte tier.
//
// BigCache has a single global LifeWindow instead of per-entry TTLs, so the
// ttl argument to Set is ignored; size the LifeWindow at construction to the
// freshness you need. Useful as a process-local tier for typed views where a
// remote round-trip is too expensive.
package bigcache

import (
	"context"
	"time"

	bc "github.com/allegro/bigcache/v3"

	st "github.com/unkn0wn-root/redikit/store"
)

type Store struct {
	c *bc.BigCache
}

var _ st.Bytes = (*Store)(nil)

type Config struct {
	LifeWindow         time.Duration
	CleanWindow        time.Duration
	MaxEntriesInWindow int
	MaxEntrySize       int
	HardMaxCacheSizeMB int // ~ memory limit; 0 = unlimited
}

func New(cfg Config) (*Store, error) {
	conf := bc.DefaultConfig(cfg.LifeWindow)
	if cfg.CleanWindow > 0 {
		conf.CleanWindow = cfg.CleanWindow
	}
	if cfg.MaxEntriesInWindow > 0 {
		conf.MaxEntriesInWindow = cfg.MaxEntriesInWindow
	}
	if cfg.MaxEntrySize > 0 {
		conf.MaxEntrySize = cfg.MaxEntrySize
	}
	if cfg.HardMaxCacheSizeMB > 0 {
		conf.HardMaxCacheSize = cfg.HardMaxCacheSizeMB
	}
	c, err := bc.NewBigCache(conf)
	if err != nil {
		return nil, err
	}
	return &Store{c: c}, nil
}

func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	b, err := s.c.Get(key)
	if err == bc.ErrEntryNotFound {
		return nil, false, nil
	}
	return b, err == nil, err
}

func (s *Store) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	return s.c.Set(key, value)
}

func (s *Store) Del(_ context.Context, keys ...string) (int64, error) {
	var n int64
	for _, k := range keys {
		if err := s.c.Delete(k); err == nil {
			n++
		}
	}
	return n, nil
}

func (s *Store) Close(context.Context) error {
	return s.c.Close()
}
