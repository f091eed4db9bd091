package lock_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/unkn0wn-root/redikit/lock"
	"github.com/unkn0wn-root/redikit/store/memory"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Unix(1700000000, 0)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newManager(t *testing.T, opts lock.Options) (*lock.Manager, *fakeClock) {
	t.Helper()
	mem := memory.New()
	clk := newFakeClock()
	mem.SetClock(clk.Now)
	m, err := lock.New(mem, opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m, clk
}

func TestNewRequiresLocker(t *testing.T) {
	if _, err := lock.New(nil, lock.Options{}); err == nil {
		t.Fatalf("New without a locker should fail")
	}
}

func TestAcquireContention(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t, lock.Options{})

	lease, err := m.Acquire(ctx, "job", time.Minute)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if lease.Name() != "job" {
		t.Fatalf("unexpected lease name %q", lease.Name())
	}

	if _, err := m.Acquire(ctx, "job", time.Minute); !errors.Is(err, lock.ErrNotObtained) {
		t.Fatalf("second acquire should report ErrNotObtained, got %v", err)
	}
	// a different name is independent
	if _, err := m.Acquire(ctx, "other", time.Minute); err != nil {
		t.Fatalf("Acquire other: %v", err)
	}

	if err := m.Release(ctx, lease); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if _, err := m.Acquire(ctx, "job", time.Minute); err != nil {
		t.Fatalf("reacquire after release: %v", err)
	}
}

// TestLeaseExpiry: a 50ms lease lapses once 60ms pass; a second holder can
// then acquire, and the first holder's release reports the loss.
func TestLeaseExpiry(t *testing.T) {
	ctx := context.Background()
	m, clk := newManager(t, lock.Options{})

	first, err := m.Acquire(ctx, "job", 50*time.Millisecond)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}

	clk.Advance(60 * time.Millisecond)

	second, err := m.Acquire(ctx, "job", time.Minute)
	if err != nil {
		t.Fatalf("acquire after expiry should succeed: %v", err)
	}

	if err := m.Release(ctx, first); !errors.Is(err, lock.ErrNotHeld) {
		t.Fatalf("stale release should report ErrNotHeld, got %v", err)
	}
	// the second holder's lease must survive the stale release attempt
	if err := m.Release(ctx, second); err != nil {
		t.Fatalf("current holder release: %v", err)
	}
}

func TestReleaseAfterExpiryWithoutReacquire(t *testing.T) {
	ctx := context.Background()
	m, clk := newManager(t, lock.Options{})

	lease, err := m.Acquire(ctx, "job", 50*time.Millisecond)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	clk.Advance(60 * time.Millisecond)

	if err := m.Release(ctx, lease); !errors.Is(err, lock.ErrNotHeld) {
		t.Fatalf("release of an expired lease should report ErrNotHeld, got %v", err)
	}
}

func TestDefaultLease(t *testing.T) {
	ctx := context.Background()
	m, clk := newManager(t, lock.Options{})

	// ttl=0 falls back to the 1000ms default
	if _, err := m.Acquire(ctx, "job", 0); err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	clk.Advance(900 * time.Millisecond)
	if _, err := m.Acquire(ctx, "job", 0); !errors.Is(err, lock.ErrNotObtained) {
		t.Fatalf("lease should still be held before the default TTL, got %v", err)
	}
	clk.Advance(200 * time.Millisecond)
	if _, err := m.Acquire(ctx, "job", 0); err != nil {
		t.Fatalf("lease should have lapsed after the default TTL: %v", err)
	}
}

func TestDo(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t, lock.Options{})

	ran := false
	err := m.Do(ctx, "job", time.Minute, func(context.Context) error {
		ran = true
		// the name is held while fn runs
		if _, err := m.Acquire(ctx, "job", time.Minute); !errors.Is(err, lock.ErrNotObtained) {
			t.Fatalf("lease should be held during fn, got %v", err)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if !ran {
		t.Fatalf("fn did not run")
	}
	// released on the way out
	if _, err := m.Acquire(ctx, "job", time.Minute); err != nil {
		t.Fatalf("acquire after Do: %v", err)
	}
}

func TestDoPropagatesError(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t, lock.Options{})

	sentinel := errors.New("boom")
	if err := m.Do(ctx, "job", time.Minute, func(context.Context) error {
		return sentinel
	}); !errors.Is(err, sentinel) {
		t.Fatalf("fn error should propagate unchanged, got %v", err)
	}
	// still released despite the error
	if _, err := m.Acquire(ctx, "job", time.Minute); err != nil {
		t.Fatalf("acquire after failed Do: %v", err)
	}
}

func TestDoReportsLostLease(t *testing.T) {
	ctx := context.Background()
	m, clk := newManager(t, lock.Options{})

	err := m.Do(ctx, "job", 50*time.Millisecond, func(context.Context) error {
		clk.Advance(60 * time.Millisecond) // fn outlives the lease
		return nil
	})
	if !errors.Is(err, lock.ErrNotHeld) {
		t.Fatalf("Do should surface the lost lease, got %v", err)
	}
}
