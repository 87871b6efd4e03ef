// Package locker serializes work on a single order. A synchronization pass must hold the
// order lock for its whole read-compute-write cycle.
package locker

import (
	"context"
	"sync"
	"time"

	ierr "github.com/harvestlane/backoffice/internal/errors"
)

// Locker runs fn while holding an exclusive lock on the order.
// Implementations are re-entrant: a nested call for an order already held by ctx runs fn directly.
type Locker interface {
	WithOrderLock(ctx context.Context, orderID string, fn func(ctx context.Context) error) error
}

type heldKey struct{}

// held is the set of order ids locked by the calling chain
type held map[string]struct{}

// Holds reports whether ctx already carries the lock for the order
func Holds(ctx context.Context, orderID string) bool {
	h, ok := ctx.Value(heldKey{}).(held)
	if !ok {
		return false
	}
	_, ok = h[orderID]
	return ok
}

// WithHeld returns a context marking the order as locked by the caller
func WithHeld(ctx context.Context, orderID string) context.Context {
	prev, _ := ctx.Value(heldKey{}).(held)
	next := make(held, len(prev)+1)
	for id := range prev {
		next[id] = struct{}{}
	}
	next[orderID] = struct{}{}
	return context.WithValue(ctx, heldKey{}, next)
}

// InProcess is a keyed mutex for single-instance deployments and tests
type InProcess struct {
	mu      sync.Mutex
	slots   map[string]*slot
	timeout time.Duration
}

type slot struct {
	ch   chan struct{}
	refs int
}

// NewInProcess returns a locker that gives up after timeout. A zero timeout waits for ctx only.
func NewInProcess(timeout time.Duration) *InProcess {
	return &InProcess{
		slots:   make(map[string]*slot),
		timeout: timeout,
	}
}

func (l *InProcess) WithOrderLock(ctx context.Context, orderID string, fn func(ctx context.Context) error) error {
	if Holds(ctx, orderID) {
		return fn(ctx)
	}

	s := l.acquire(orderID)
	defer l.release(orderID, s)

	waitCtx := ctx
	if l.timeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	select {
	case s.ch <- struct{}{}:
	case <-waitCtx.Done():
		return ierr.WithError(waitCtx.Err()).
			WithHintf("Order %s is being updated, try again shortly", orderID).
			WithReportableDetails(map[string]any{"order_id": orderID}).
			Mark(ierr.ErrLocked)
	}
	defer func() { <-s.ch }()

	return fn(WithHeld(ctx, orderID))
}

func (l *InProcess) acquire(orderID string) *slot {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.slots[orderID]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		l.slots[orderID] = s
	}
	s.refs++
	return s
}

func (l *InProcess) release(orderID string, s *slot) {
	l.mu.Lock()
	defer l.mu.Unlock()

	s.refs--
	if s.refs == 0 {
		delete(l.slots, orderID)
	}
}
