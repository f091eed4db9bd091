package redikit

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	goredis "github.com/redis/go-redis/v9"
	"gopkg.in/yaml.v3"

	redisstore "github.com/unkn0wn-root/redikit/store/redis"
)

// Config describes a Redis-backed facade for file-driven deployments.
// Library callers that construct their own store use Options directly.
type Config struct {
	Host     string `yaml:"host" validate:"required"`
	Port     int    `yaml:"port" validate:"gte=1,lte=65535"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db" validate:"gte=0"`

	Prefix            string `yaml:"prefix"`
	DefaultTTLSeconds int    `yaml:"default_ttl_seconds" validate:"gte=0"`
	LockLeaseMillis   int    `yaml:"lock_lease_ms" validate:"gte=0"`

	PoolSize     int `yaml:"pool_size" validate:"gte=0"`
	MinIdleConns int `yaml:"min_idle_conns" validate:"gte=0"`
}

// DefaultConfig returns the baseline: localhost:6379/0, 300 s default TTL,
// 1000 ms lock leases.
func DefaultConfig() Config {
	return Config{
		Host:              "localhost",
		Port:              6379,
		DB:                0,
		DefaultTTLSeconds: 300,
		LockLeaseMillis:   1000,
		PoolSize:          10,
		MinIdleConns:      2,
	}
}

// DefaultTTL converts the configured TTL seconds to a duration.
func (c Config) DefaultTTL() time.Duration {
	return time.Duration(c.DefaultTTLSeconds) * time.Second
}

// LockLease converts the configured lease milliseconds to a duration.
func (c Config) LockLease() time.Duration {
	return time.Duration(c.LockLeaseMillis) * time.Millisecond
}

// LoadConfig reads a YAML config file over DefaultConfig and validates it.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("redikit: read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("redikit: parse config: %w", err)
	}
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(cfg); err != nil {
		return cfg, fmt.Errorf("redikit: validate config: %w", err)
	}
	return cfg, nil
}

// Open connects to the store described by cfg and builds the facade.
// opts.Store must be nil (Open owns store construction); Prefix and
// DefaultTTL from cfg win over zero values in opts. The returned cache owns
// the connection: Close tears it down.
func Open(ctx context.Context, cfg Config, opts Options) (*Cache, error) {
	if opts.Store != nil {
		return nil, fmt.Errorf("redikit: Open builds its own store; use New for custom stores")
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redikit: connect: %w", err)
	}

	s, err := redisstore.New(redisstore.Config{Client: client, CloseClient: true})
	if err != nil {
		_ = client.Close()
		return nil, err
	}

	opts.Store = s
	opts.Prefix = coalesce[string](opts.Prefix, cfg.Prefix)
	opts.DefaultTTL = coalesce[time.Duration](opts.DefaultTTL, cfg.DefaultTTL())
	return New(opts)
}
