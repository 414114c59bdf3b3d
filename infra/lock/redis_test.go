package lock

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/amirasaad/ledger/pkg/lock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/sync/errgroup"
)

func setupRedisLocker(t *testing.T, ttl, wait time.Duration) *RedisLocker {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping redis container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	url, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	l, err := NewRedisLockerFromURL(url, "test:", ttl, wait, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func TestRedisLocker_MutualExclusion(t *testing.T) {
	l := setupRedisLocker(t, 5*time.Second, 10*time.Second)
	var inside, violations int32

	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < 10; i++ {
		g.Go(func() error {
			unlock, err := l.Lock(ctx, "user:1")
			if err != nil {
				return err
			}
			defer unlock()
			if atomic.AddInt32(&inside, 1) > 1 {
				atomic.AddInt32(&violations, 1)
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&inside, -1)
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Zero(t, violations)
}

func TestRedisLocker_TimeoutAndRelease(t *testing.T) {
	l := setupRedisLocker(t, 5*time.Second, 100*time.Millisecond)
	ctx := context.Background()

	unlock, err := l.Lock(ctx, "user:2")
	require.NoError(t, err)

	_, err = l.Lock(ctx, "user:2")
	assert.ErrorIs(t, err, lock.ErrLockTimeout)

	unlock()
	again, err := l.Lock(ctx, "user:2")
	require.NoError(t, err)
	again()
}

func TestRedisLocker_LeaseExpires(t *testing.T) {
	l := setupRedisLocker(t, 100*time.Millisecond, 2*time.Second)
	ctx := context.Background()

	stale, err := l.Lock(ctx, "user:3")
	require.NoError(t, err)

	fresh, err := l.Lock(ctx, "user:3")
	require.NoError(t, err, "expired lease is taken over")

	// Releasing the stale lease must not free the fresh holder's key.
	stale()
	exists, err := l.client.Exists(ctx, l.key("user:3")).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), exists)
	fresh()
}
