// Package redis adapts a go-redis client to the redikit store contract.
package redis

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	st "github.com/unkn0wn-root/redikit/store"
)

var ErrNilClient = errors.New("redis store: nil client")

// releaseScript deletes a lease only when the caller still owns it. A plain
// DEL here would be able to drop a lease acquired by another holder after
// expiry.
var releaseScript = goredis.NewScript(
	`if redis.call("get", KEYS[1]) == ARGV[1] then return redis.call("del", KEYS[1]) else return 0 end`)

type Redis struct {
	rdb         goredis.UniversalClient
	closeClient bool
}

var _ st.Store = (*Redis)(nil)

type Config struct {
	Client      goredis.UniversalClient
	CloseClient bool // set true only if this store exclusively owns the client
}

func New(cfg Config) (*Redis, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	return &Redis{rdb: cfg.Client, closeClient: cfg.CloseClient}, nil
}

func (s *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := s.rdb.Get(ctx, key).Bytes()
	if err == goredis.Nil {
		return nil, false, nil // miss
	}
	if err != nil {
		return nil, false, err // transport/server error
	}
	return b, true, nil
}

func (s *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = 0 // no expiry at the store level
	}
	return s.rdb.Set(ctx, key, value, ttl).Err()
}

func (s *Redis) Del(ctx context.Context, keys ...string) (int64, error) {
	if len(keys) == 0 {
		return 0, nil
	}
	return s.rdb.Del(ctx, keys...).Result()
}

func (s *Redis) MGet(ctx context.Context, keys ...string) ([][]byte, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	vals, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	out := make([][]byte, len(vals))
	for i, v := range vals {
		switch vv := v.(type) {
		case nil:
			out[i] = nil
		case string:
			out[i] = []byte(vv)
		case []byte:
			out[i] = vv
		}
	}
	return out, nil
}

func (s *Redis) SetMulti(ctx context.Context, items map[string][]byte, ttl time.Duration) error {
	if len(items) == 0 {
		return nil
	}
	if ttl <= 0 {
		ttl = 0
	}
	_, err := s.rdb.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		for k, v := range items {
			p.Set(ctx, k, v, ttl)
		}
		return nil
	})
	return err
}

func (s *Redis) LPush(ctx context.Context, key string, values ...string) (int64, error) {
	return s.rdb.LPush(ctx, key, toAny(values)...).Result()
}

func (s *Redis) RPush(ctx context.Context, key string, values ...string) (int64, error) {
	return s.rdb.RPush(ctx, key, toAny(values)...).Result()
}

func (s *Redis) LPop(ctx context.Context, key string) (string, bool, error) {
	v, err := s.rdb.LPop(ctx, key).Result()
	if err == goredis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *Redis) RPop(ctx context.Context, key string) (string, bool, error) {
	v, err := s.rdb.RPop(ctx, key).Result()
	if err == goredis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *Redis) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	return s.rdb.LRange(ctx, key, start, stop).Result()
}

func (s *Redis) LTrim(ctx context.Context, key string, start, stop int64) error {
	return s.rdb.LTrim(ctx, key, start, stop).Err()
}

func (s *Redis) LLen(ctx context.Context, key string) (int64, error) {
	return s.rdb.LLen(ctx, key).Result()
}

func (s *Redis) HSet(ctx context.Context, key, field, value string) error {
	return s.rdb.HSet(ctx, key, field, value).Err()
}

func (s *Redis) HSetMulti(ctx context.Context, key string, fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	flat := make([]interface{}, 0, len(fields)*2)
	for f, v := range fields {
		flat = append(flat, f, v)
	}
	return s.rdb.HSet(ctx, key, flat...).Err()
}

func (s *Redis) HGet(ctx context.Context, key, field string) (string, bool, error) {
	v, err := s.rdb.HGet(ctx, key, field).Result()
	if err == goredis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *Redis) HGetMulti(ctx context.Context, key string, fields ...string) (map[string]string, error) {
	if len(fields) == 0 {
		return map[string]string{}, nil
	}
	vals, err := s.rdb.HMGet(ctx, key, fields...).Result()
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(fields))
	for i, v := range vals {
		switch vv := v.(type) {
		case string:
			out[fields[i]] = vv
		case []byte:
			out[fields[i]] = string(vv)
		}
	}
	return out, nil
}

func (s *Redis) HDel(ctx context.Context, key string, fields ...string) (int64, error) {
	if len(fields) == 0 {
		return 0, nil
	}
	return s.rdb.HDel(ctx, key, fields...).Result()
}

func (s *Redis) HLen(ctx context.Context, key string) (int64, error) {
	return s.rdb.HLen(ctx, key).Result()
}

func (s *Redis) SAdd(ctx context.Context, key string, members ...string) (int64, error) {
	return s.rdb.SAdd(ctx, key, toAny(members)...).Result()
}

func (s *Redis) SRem(ctx context.Context, key string, members ...string) (int64, error) {
	return s.rdb.SRem(ctx, key, toAny(members)...).Result()
}

func (s *Redis) SIsMember(ctx context.Context, key, member string) (bool, error) {
	return s.rdb.SIsMember(ctx, key, member).Result()
}

func (s *Redis) SMembers(ctx context.Context, key string) ([]string, error) {
	return s.rdb.SMembers(ctx, key).Result()
}

func (s *Redis) SCard(ctx context.Context, key string) (int64, error) {
	return s.rdb.SCard(ctx, key).Result()
}

func (s *Redis) Scan(ctx context.Context, cursor uint64, pattern string, count int64) ([]string, uint64, error) {
	return s.rdb.Scan(ctx, cursor, pattern, count).Result()
}

func (s *Redis) Unlink(ctx context.Context, keys ...string) (int64, error) {
	if len(keys) == 0 {
		return 0, nil
	}
	return s.rdb.Unlink(ctx, keys...).Result()
}

func (s *Redis) AcquireLock(ctx context.Context, name string, ttl time.Duration) (string, bool, error) {
	token := uuid.NewString()
	ok, err := s.rdb.SetNX(ctx, name, token, ttl).Result()
	if err != nil {
		return "", false, err
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

func (s *Redis) ReleaseLock(ctx context.Context, name, token string) (bool, error) {
	n, err := releaseScript.Run(ctx, s.rdb, []string{name}, token).Int64()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s *Redis) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// Close releases the underlying redis client only when this store owns it.
// Safe to call multiple times; repeated calls become no-ops.
func (s *Redis) Close(context.Context) error {
	if s.closeClient {
		if err := s.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
	}
	return nil
}

func toAny(in []string) []interface{} {
	out := make([]interface{}, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}
