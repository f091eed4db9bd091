// Package memory implements the full store contract in process memory.
//
// It exists for tests and single-process deployments: every command group
// (scalars, lists, hashes, sets, scan, leases) behaves like the remote store,
// including lazy TTL expiry and check-and-delete lease release. Pattern
// matching for Scan uses path.Match globs, which covers the *, ? and [...]
// forms the remote store understands.
package memory

import (
	"context"
	"path"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	st "github.com/unkn0wn-root/redikit/store"
)

type entry struct {
	value []byte
	exp   time.Time // zero => no expiry
}

type lease struct {
	token string
	exp   time.Time
}

type Memory struct {
	mu     sync.Mutex
	kv     map[string]entry
	lists  map[string][]string
	hashes map[string]map[string]string
	sets   map[string]map[string]struct{}
	leases map[string]lease

	// now is swappable so expiry behavior stays testable without sleeping.
	now func() time.Time
}

var _ st.Store = (*Memory)(nil)

func New() *Memory {
	return &Memory{
		kv:     make(map[string]entry),
		lists:  make(map[string][]string),
		hashes: make(map[string]map[string]string),
		sets:   make(map[string]map[string]struct{}),
		leases: make(map[string]lease),
		now:    time.Now,
	}
}

// SetClock overrides the time source. For tests.
func (m *Memory) SetClock(now func() time.Time) {
	m.mu.Lock()
	m.now = now
	m.mu.Unlock()
}

func (m *Memory) expired(e entry) bool {
	return !e.exp.IsZero() && m.now().After(e.exp)
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.kv[key]
	if !ok {
		return nil, false, nil
	}
	if m.expired(e) {
		delete(m.kv, key)
		return nil, false, nil
	}
	return e.value, true, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setLocked(key, value, ttl)
	return nil
}

func (m *Memory) setLocked(key string, value []byte, ttl time.Duration) {
	var exp time.Time
	if ttl > 0 {
		exp = m.now().Add(ttl)
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	m.kv[key] = entry{value: cp, exp: exp}
}

func (m *Memory) Del(_ context.Context, keys ...string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.delLocked(keys), nil
}

func (m *Memory) delLocked(keys []string) int64 {
	var n int64
	for _, k := range keys {
		if _, ok := m.kv[k]; ok {
			delete(m.kv, k)
			n++
			continue
		}
		if _, ok := m.lists[k]; ok {
			delete(m.lists, k)
			n++
			continue
		}
		if _, ok := m.hashes[k]; ok {
			delete(m.hashes, k)
			n++
			continue
		}
		if _, ok := m.sets[k]; ok {
			delete(m.sets, k)
			n++
		}
	}
	return n
}

func (m *Memory) MGet(ctx context.Context, keys ...string) ([][]byte, error) {
	out := make([][]byte, len(keys))
	for i, k := range keys {
		v, ok, err := m.Get(ctx, k)
		if err != nil {
			return nil, err
		}
		if ok {
			out[i] = v
		}
	}
	return out, nil
}

func (m *Memory) SetMulti(_ context.Context, items map[string][]byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range items {
		m.setLocked(k, v, ttl)
	}
	return nil
}

func (m *Memory) LPush(_ context.Context, key string, values ...string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l := m.lists[key]
	// values are prepended one at a time, so the last argument ends up first
	for _, v := range values {
		l = append([]string{v}, l...)
	}
	m.lists[key] = l
	return int64(len(l)), nil
}

func (m *Memory) RPush(_ context.Context, key string, values ...string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l := append(m.lists[key], values...)
	m.lists[key] = l
	return int64(len(l)), nil
}

func (m *Memory) LPop(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l := m.lists[key]
	if len(l) == 0 {
		return "", false, nil
	}
	v := l[0]
	if len(l) == 1 {
		delete(m.lists, key)
	} else {
		m.lists[key] = l[1:]
	}
	return v, true, nil
}

func (m *Memory) RPop(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l := m.lists[key]
	if len(l) == 0 {
		return "", false, nil
	}
	v := l[len(l)-1]
	if len(l) == 1 {
		delete(m.lists, key)
	} else {
		m.lists[key] = l[:len(l)-1]
	}
	return v, true, nil
}

func (m *Memory) LRange(_ context.Context, key string, start, stop int64) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l := m.lists[key]
	n := int64(len(l))
	start, stop = clampRange(start, stop, n)
	if start > stop {
		return []string{}, nil
	}
	out := make([]string, stop-start+1)
	copy(out, l[start:stop+1])
	return out, nil
}

func (m *Memory) LTrim(_ context.Context, key string, start, stop int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l := m.lists[key]
	n := int64(len(l))
	start, stop = clampRange(start, stop, n)
	if start > stop {
		delete(m.lists, key)
		return nil
	}
	trimmed := make([]string, stop-start+1)
	copy(trimmed, l[start:stop+1])
	m.lists[key] = trimmed
	return nil
}

func (m *Memory) LLen(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.lists[key])), nil
}

// clampRange resolves negative indices and bounds, remote-store style.
func clampRange(start, stop, n int64) (int64, int64) {
	if start < 0 {
		start += n
	}
	if stop < 0 {
		stop += n
	}
	if start < 0 {
		start = 0
	}
	if stop >= n {
		stop = n - 1
	}
	return start, stop
}

func (m *Memory) HSet(_ context.Context, key, field, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	h := m.hashes[key]
	if h == nil {
		h = make(map[string]string)
		m.hashes[key] = h
	}
	h[field] = value
	return nil
}

func (m *Memory) HSetMulti(_ context.Context, key string, fields map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	h := m.hashes[key]
	if h == nil {
		h = make(map[string]string, len(fields))
		m.hashes[key] = h
	}
	for f, v := range fields {
		h[f] = v
	}
	return nil
}

func (m *Memory) HGet(_ context.Context, key, field string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.hashes[key][field]
	return v, ok, nil
}

func (m *Memory) HGetMulti(_ context.Context, key string, fields ...string) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string, len(fields))
	h := m.hashes[key]
	for _, f := range fields {
		if v, ok := h[f]; ok {
			out[f] = v
		}
	}
	return out, nil
}

func (m *Memory) HDel(_ context.Context, key string, fields ...string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h := m.hashes[key]
	var n int64
	for _, f := range fields {
		if _, ok := h[f]; ok {
			delete(h, f)
			n++
		}
	}
	if len(h) == 0 {
		delete(m.hashes, key)
	}
	return n, nil
}

func (m *Memory) HLen(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.hashes[key])), nil
}

func (m *Memory) SAdd(_ context.Context, key string, members ...string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.sets[key]
	if s == nil {
		s = make(map[string]struct{}, len(members))
		m.sets[key] = s
	}
	var n int64
	for _, mem := range members {
		if _, ok := s[mem]; !ok {
			s[mem] = struct{}{}
			n++
		}
	}
	return n, nil
}

func (m *Memory) SRem(_ context.Context, key string, members ...string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.sets[key]
	var n int64
	for _, mem := range members {
		if _, ok := s[mem]; ok {
			delete(s, mem)
			n++
		}
	}
	if len(s) == 0 {
		delete(m.sets, key)
	}
	return n, nil
}

func (m *Memory) SIsMember(_ context.Context, key, member string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sets[key][member]
	return ok, nil
}

func (m *Memory) SMembers(_ context.Context, key string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.sets[key]
	out := make([]string, 0, len(s))
	for mem := range s {
		out = append(out, mem)
	}
	sort.Strings(out)
	return out, nil
}

func (m *Memory) SCard(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.sets[key])), nil
}

// Scan walks a sorted snapshot of all live keys; the cursor is an offset into
// that snapshot. Like the remote store's SCAN, keys mutated between rounds
// may be skipped or seen twice.
func (m *Memory) Scan(_ context.Context, cursor uint64, pattern string, count int64) ([]string, uint64, error) {
	if count <= 0 {
		count = 10
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	all := make([]string, 0, len(m.kv)+len(m.lists)+len(m.hashes)+len(m.sets))
	for k, e := range m.kv {
		if m.expired(e) {
			delete(m.kv, k)
			continue
		}
		all = append(all, k)
	}
	for k := range m.lists {
		all = append(all, k)
	}
	for k := range m.hashes {
		all = append(all, k)
	}
	for k := range m.sets {
		all = append(all, k)
	}
	sort.Strings(all)

	if cursor >= uint64(len(all)) {
		return nil, 0, nil
	}

	var out []string
	i := cursor
	for ; i < uint64(len(all)) && int64(len(out)) < count; i++ {
		if ok, _ := path.Match(pattern, all[i]); ok {
			out = append(out, all[i])
		}
	}
	if i >= uint64(len(all)) {
		return out, 0, nil
	}
	return out, i, nil
}

func (m *Memory) Unlink(_ context.Context, keys ...string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.delLocked(keys), nil
}

func (m *Memory) AcquireLock(_ context.Context, name string, ttl time.Duration) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if l, ok := m.leases[name]; ok && m.now().Before(l.exp) {
		return "", false, nil
	}
	token := uuid.NewString()
	m.leases[name] = lease{token: token, exp: m.now().Add(ttl)}
	return token, true, nil
}

func (m *Memory) ReleaseLock(_ context.Context, name, token string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.leases[name]
	if !ok || l.token != token {
		return false, nil
	}
	if m.now().After(l.exp) {
		// expired lease: gone as far as the holder is concerned
		delete(m.leases, name)
		return false, nil
	}
	delete(m.leases, name)
	return true, nil
}

func (m *Memory) Ping(context.Context) error { return nil }

func (m *Memory) Close(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.kv = make(map[string]entry)
	m.lists = make(map[string][]string)
	m.hashes = make(map[string]map[string]string)
	m.sets = make(map[string]map[string]struct{})
	m.leases = make(map[string]lease)
	return nil
}
