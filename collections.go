package redikit

import (
	"context"
)

// Lists returns the list command group. Operations delegate 1:1 to the store;
// the facade only contributes the key prefix.
func (c *Cache) Lists() ListOps { return ListOps{c: c} }

// Maps returns the field/value map command group.
func (c *Cache) Maps() MapOps { return MapOps{c: c} }

// Sets returns the unordered-member command group.
func (c *Cache) Sets() SetOps { return SetOps{c: c} }

type ListOps struct{ c *Cache }

// Unshift prepends values to the list head.
func (l ListOps) Unshift(ctx context.Context, key string, values ...string) (int64, error) {
	return l.c.st.LPush(ctx, l.c.key(key), values...)
}

// Push appends values to the list tail.
func (l ListOps) Push(ctx context.Context, key string, values ...string) (int64, error) {
	return l.c.st.RPush(ctx, l.c.key(key), values...)
}

// Shift removes and returns the head; ok=false on an empty or absent list.
func (l ListOps) Shift(ctx context.Context, key string) (string, bool, error) {
	return l.c.st.LPop(ctx, l.c.key(key))
}

// Pop removes and returns the tail; ok=false on an empty or absent list.
func (l ListOps) Pop(ctx context.Context, key string) (string, bool, error) {
	return l.c.st.RPop(ctx, l.c.key(key))
}

func (l ListOps) Range(ctx context.Context, key string, start, stop int64) ([]string, error) {
	return l.c.st.LRange(ctx, l.c.key(key), start, stop)
}

func (l ListOps) Trim(ctx context.Context, key string, start, stop int64) error {
	return l.c.st.LTrim(ctx, l.c.key(key), start, stop)
}

func (l ListOps) Len(ctx context.Context, key string) (int64, error) {
	return l.c.st.LLen(ctx, l.c.key(key))
}

type MapOps struct{ c *Cache }

func (m MapOps) Set(ctx context.Context, key, field, value string) error {
	return m.c.st.HSet(ctx, m.c.key(key), field, value)
}

func (m MapOps) SetMany(ctx context.Context, key string, fields map[string]string) error {
	return m.c.st.HSetMulti(ctx, m.c.key(key), fields)
}

func (m MapOps) Get(ctx context.Context, key, field string) (string, bool, error) {
	return m.c.st.HGet(ctx, m.c.key(key), field)
}

// GetMany returns only the fields that exist.
func (m MapOps) GetMany(ctx context.Context, key string, fields ...string) (map[string]string, error) {
	return m.c.st.HGetMulti(ctx, m.c.key(key), fields...)
}

func (m MapOps) Delete(ctx context.Context, key string, fields ...string) (int64, error) {
	return m.c.st.HDel(ctx, m.c.key(key), fields...)
}

func (m MapOps) Len(ctx context.Context, key string) (int64, error) {
	return m.c.st.HLen(ctx, m.c.key(key))
}

type SetOps struct{ c *Cache }

func (s SetOps) Add(ctx context.Context, key string, members ...string) (int64, error) {
	return s.c.st.SAdd(ctx, s.c.key(key), members...)
}

func (s SetOps) Remove(ctx context.Context, key string, members ...string) (int64, error) {
	return s.c.st.SRem(ctx, s.c.key(key), members...)
}

func (s SetOps) Contains(ctx context.Context, key, member string) (bool, error) {
	return s.c.st.SIsMember(ctx, s.c.key(key), member)
}

func (s SetOps) Members(ctx context.Context, key string) ([]string, error) {
	return s.c.st.SMembers(ctx, s.c.key(key))
}

func (s SetOps) Size(ctx context.Context, key string) (int64, error) {
	return s.c.st.SCard(ctx, s.c.key(key))
}
