// Package lock serializes operations that read a balance and then debit it.
package lock

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrLockTimeout is returned when a lock could not be acquired within the
// configured wait.
var ErrLockTimeout = errors.New("timed out waiting for lock")

// Locker grants exclusive access to a key.
//
// Lock blocks until the key is free, ctx is done, or the backend's wait
// elapses. The returned unlock func is safe to call more than once.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// UserKey is the lock key guarding a user's balance.
func UserKey(id uuid.UUID) string {
	return "user:" + id.String()
}

// Noop is a Locker that never blocks.
type Noop struct{}

func (Noop) Lock(context.Context, string) (func(), error) {
	return func() {}, nil
}
