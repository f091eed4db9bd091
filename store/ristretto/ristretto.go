// Package ristretto adapts dgraph-io/ristretto as a local byte tier with
// per-entry TTLs. Useful as a process-local tier for typed views.
package ristretto

import (
	"context"
	"errors"
	"time"

	rc "github.com/dgraph-io/ristretto"

	st "github.com/unkn0wn-root/redikit/store"
)

type Store struct {
	c *rc.Cache
}

var _ st.Bytes = (*Store)(nil)

type Config struct {
	NumCounters int64
	MaxCost     int64
	BufferItems int64
	Metrics     bool
}

func New(cfg Config) (*Store, error) {
	if cfg.NumCounters <= 0 || cfg.MaxCost <= 0 || cfg.BufferItems <= 0 {
		return nil, errors.New("ristretto: invalid config")
	}
	c, err := rc.NewCache(&rc.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
		Metrics:     cfg.Metrics,
	})
	if err != nil {
		return nil, err
	}
	return &Store{c: c}, nil
}

func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := s.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, _ := v.([]byte)
	if b == nil {
		// self-heal: drop unexpected entry shape
		s.c.Del(key)
		return nil, false, nil
	}
	return b, true, nil
}

func (s *Store) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.c.SetWithTTL(key, value, int64(len(value)), ttl)
	return nil
}

func (s *Store) Del(_ context.Context, keys ...string) (int64, error) {
	for _, k := range keys {
		s.c.Del(k)
	}
	return int64(len(keys)), nil
}

func (s *Store) Close(context.Context) error {
	s.c.Wait()
	s.c.Close()
	return nil
}

// Metrics exposes ristretto's counters when enabled in Config.
func (s *Store) Metrics() *rc.Metrics { return s.c.Metrics }
