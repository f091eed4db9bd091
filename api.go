package redikit

import (
	"fmt"
	"time"

	st "github.com/unkn0wn-root/redikit/store"
)

const (
	// DefaultTTL applies to scalar writes that do not override it.
	DefaultTTL = 300 * time.Second

	defaultScanCount = 100
)

// Options tune the facade. Only Store is required; others have sensible
// defaults.
type Options struct {
	// Required
	Store st.Store

	Prefix     string        // applied to all keys; "" => raw keyspace
	DefaultTTL time.Duration // scalar writes; 0 => 300s
	ScanCount  int64         // batch size per scan round in Flush; 0 => 100
	Logger     Logger        // if nil, NopLogger is used
	Hooks      Hooks         // if nil, NopHooks is used
}

// New builds a Cache over an already-constructed store. Use Open to build
// the store from a Config instead.
func New(opts Options) (*Cache, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("redikit: store is required")
	}
	return &Cache{
		st:         opts.Store,
		prefix:     opts.Prefix,
		defaultTTL: coalesce[time.Duration](opts.DefaultTTL, DefaultTTL),
		scanCount:  coalesce[int64](opts.ScanCount, defaultScanCount),
		log:        coalesce[Logger](opts.Logger, NopLogger{}),
		hooks:      coalesce[Hooks](opts.Hooks, NopHooks{}),
	}, nil
}
