package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/amirasaad/ledger/pkg/lock"
)

type entry struct {
	sem  chan struct{}
	refs int
}

// MemoryLocker is an in-process keyed mutex. Idle keys are dropped.
type MemoryLocker struct {
	mu    sync.Mutex
	locks map[string]*entry
	wait  time.Duration
}

// NewMemoryLocker returns a MemoryLocker. A zero wait blocks until ctx is done.
func NewMemoryLocker(wait time.Duration) *MemoryLocker {
	return &MemoryLocker{
		locks: make(map[string]*entry),
		wait:  wait,
	}
}

func (l *MemoryLocker) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	e, ok := l.locks[key]
	if !ok {
		e = &entry{sem: make(chan struct{}, 1)}
		l.locks[key] = e
	}
	e.refs++
	l.mu.Unlock()

	waitCtx := ctx
	if l.wait > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, l.wait)
		defer cancel()
	}

	select {
	case e.sem <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-e.sem
				l.release(key, e)
			})
		}, nil
	case <-waitCtx.Done():
		l.release(key, e)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(waitCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s", lock.ErrLockTimeout, key)
		}
		return nil, waitCtx.Err()
	}
}

func (l *MemoryLocker) release(key string, e *entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(l.locks, key)
	}
}

// size reports the number of tracked keys.
func (l *MemoryLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

var _ lock.Locker = (*MemoryLocker)(nil)
