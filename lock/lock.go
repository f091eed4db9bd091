// Package lock provides named, TTL-bounded mutual exclusion across
// cooperating processes, built on the store's lease primitive.
//
// A lease is enforced by expiry, not consensus: if the guarded work outlives
// the lease TTL, the lease expires and a second acquirer may proceed
// concurrently. There is no renewal or heartbeat; pick the TTL to cover the
// critical section. Single-store leases carry the usual single point of
// failure and clock-drift caveats of expiry-based locking.
package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/unkn0wn-root/redikit"
	st "github.com/unkn0wn-root/redikit/store"
)

// DefaultLease bounds leases that do not override it.
const DefaultLease = 1000 * time.Millisecond

var (
	// ErrNotObtained reports the name is already leased by another holder.
	// Callers decide whether to retry or fail; the manager never retries.
	ErrNotObtained = errors.New("lock: not obtained")

	// ErrNotHeld reports a release without a matching ownership token: the
	// lease expired (and was possibly re-acquired by someone else), so the
	// critical section may no longer have been exclusive.
	ErrNotHeld = errors.New("lock: not held")
)

// Lease is an ephemeral ownership claim on a name. It is returned by value
// from Acquire and passed explicitly to Release; the manager keeps no
// current-lock state.
type Lease struct {
	name      string
	token     string
	expiresAt time.Time
}

func (l *Lease) Name() string { return l.name }

// ExpiresAt is the local estimate of when the lease lapses. The store's
// clock is authoritative.
func (l *Lease) ExpiresAt() time.Time { return l.expiresAt }

type Options struct {
	LeaseTTL time.Duration  // default lease duration; 0 => 1000ms
	Logger   redikit.Logger // if nil, logging is disabled
}

// Manager wraps a store's lease primitive.
type Manager struct {
	locker   st.Locker
	leaseTTL time.Duration
	log      redikit.Logger
}

func New(locker st.Locker, opts Options) (*Manager, error) {
	if locker == nil {
		return nil, fmt.Errorf("lock: locker is required")
	}
	m := &Manager{locker: locker, leaseTTL: opts.LeaseTTL, log: opts.Logger}
	if m.leaseTTL <= 0 {
		m.leaseTTL = DefaultLease
	}
	if m.log == nil {
		m.log = redikit.NopLogger{}
	}
	return m, nil
}

// Acquire obtains a lease on name valid for ttl (0 selects the manager
// default). The underlying primitive is atomic set-if-absent with expiry;
// contention returns ErrNotObtained without retrying.
func (m *Manager) Acquire(ctx context.Context, name string, ttl time.Duration) (*Lease, error) {
	if ttl <= 0 {
		ttl = m.leaseTTL
	}
	token, ok, err := m.locker.AcquireLock(ctx, name, ttl)
	if err != nil {
		return nil, fmt.Errorf("lock %q: acquire: %w", name, err)
	}
	if !ok {
		return nil, fmt.Errorf("lock %q: %w", name, ErrNotObtained)
	}
	m.log.Debug("lease acquired", redikit.Fields{"name": name, "ttl": ttl})
	return &Lease{name: name, token: token, expiresAt: time.Now().Add(ttl)}, nil
}

// Release frees the lease. The delete only happens when the stored token
// matches lease's token; a lease that expired and was re-acquired by another
// holder is left alone and ErrNotHeld is returned instead.
func (m *Manager) Release(ctx context.Context, lease *Lease) error {
	if lease == nil {
		return fmt.Errorf("lock: nil lease")
	}
	ok, err := m.locker.ReleaseLock(ctx, lease.name, lease.token)
	if err != nil {
		return fmt.Errorf("lock %q: release: %w", lease.name, err)
	}
	if !ok {
		return fmt.Errorf("lock %q: %w", lease.name, ErrNotHeld)
	}
	m.log.Debug("lease released", redikit.Fields{"name": lease.name})
	return nil
}

// Do runs fn while holding a lease on name. fn's error wins over a release
// failure; if fn succeeds but the lease was lost before release, Do returns
// ErrNotHeld so the caller knows exclusivity may have lapsed.
func (m *Manager) Do(ctx context.Context, name string, ttl time.Duration, fn func(context.Context) error) error {
	lease, err := m.Acquire(ctx, name, ttl)
	if err != nil {
		return err
	}
	fnErr := fn(ctx)
	relErr := m.Release(ctx, lease)
	if fnErr != nil {
		if relErr != nil {
			m.log.Warn("release failed after guarded call error", redikit.Fields{"name": name, "err": relErr})
		}
		return fnErr
	}
	return relErr
}
