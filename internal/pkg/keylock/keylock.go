// Package keylock serializes work per key. Each key gets its own weighted
// semaphore of size one, so waiters are served in arrival order while
// different keys never contend with each other.
package keylock

import (
	"context"
	"errors"
	"sync"
	"time"

	"fulfillment/internal/pkg/errs"

	"golang.org/x/sync/semaphore"
)

// Locker hands out per-key exclusive locks with a bounded wait.
// Idle keys are evicted, so the map only holds keys that are held or awaited.
type Locker struct {
	timeout time.Duration

	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	sem  *semaphore.Weighted
	refs int
}

// New returns a Locker that gives up waiting after timeout.
func New(timeout time.Duration) *Locker {
	return &Locker{
		timeout: timeout,
		entries: make(map[string]*entry),
	}
}

// Lock blocks until key is free, the timeout expires or ctx is done.
// On success the returned unlock func must be called exactly once; extra
// calls are ignored. A timeout yields errs.LockTimeoutError, a cancelled ctx
// yields ctx.Err().
func (l *Locker) Lock(ctx context.Context, key string) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e := l.acquire(key)

	waitCtx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	if err := e.sem.Acquire(waitCtx, 1); err != nil {
		l.release(key, e)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, errs.NewLockTimeoutError(key, l.timeout)
		}
		return nil, err
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			e.sem.Release(1)
			l.release(key, e)
		})
	}, nil
}

// Len reports how many keys are currently held or awaited.
func (l *Locker) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (l *Locker) acquire(key string) *entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok {
		e = &entry{sem: semaphore.NewWeighted(1)}
		l.entries[key] = e
	}
	e.refs++
	return e
}

func (l *Locker) release(key string, e *entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(l.entries, key)
	}
}
