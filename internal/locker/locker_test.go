package locker

import (
	"context"
	"sync"
	"testing"
	"time"

	ierr "github.com/harvestlane/backoffice/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithHeld(t *testing.T) {
	ctx := context.Background()
	assert.False(t, Holds(ctx, "ord_1"))

	first := WithHeld(ctx, "ord_1")
	second := WithHeld(first, "ord_2")

	assert.True(t, Holds(first, "ord_1"))
	assert.False(t, Holds(first, "ord_2"))
	assert.True(t, Holds(second, "ord_1"))
	assert.True(t, Holds(second, "ord_2"))
}

func TestInProcessIsReentrant(t *testing.T) {
	l := NewInProcess(50 * time.Millisecond)
	ctx := context.Background()

	calls := 0
	err := l.WithOrderLock(ctx, "ord_1", func(ctx context.Context) error {
		calls++
		assert.True(t, Holds(ctx, "ord_1"))
		return l.WithOrderLock(ctx, "ord_1", func(ctx context.Context) error {
			calls++
			return nil
		})
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestInProcessTimesOut(t *testing.T) {
	l := NewInProcess(20 * time.Millisecond)
	ctx := context.Background()

	entered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- l.WithOrderLock(ctx, "ord_1", func(ctx context.Context) error {
			close(entered)
			<-release
			return nil
		})
	}()
	<-entered

	err := l.WithOrderLock(ctx, "ord_1", func(ctx context.Context) error {
		t.Fatal("ran without the lock")
		return nil
	})
	assert.True(t, ierr.IsLocked(err), "unexpected error %v", err)

	// other orders are not blocked
	require.NoError(t, l.WithOrderLock(ctx, "ord_2", func(ctx context.Context) error { return nil }))

	close(release)
	require.NoError(t, <-done)
	require.NoError(t, l.WithOrderLock(ctx, "ord_1", func(ctx context.Context) error { return nil }))
}

func TestInProcessSerializes(t *testing.T) {
	l := NewInProcess(0)
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		active  int
		maxSeen int
		mu      sync.Mutex
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = l.WithOrderLock(ctx, "ord_1", func(ctx context.Context) error {
				mu.Lock()
				active++
				if active > maxSeen {
					maxSeen = active
				}
				mu.Unlock()

				time.Sleep(time.Millisecond)

				mu.Lock()
				active--
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
	assert.Empty(t, l.slots)
}
