// Package locker provides per-key mutual exclusion with bounded acquisition.
// The parcel lifecycle engine uses it to serialize read-check-apply-write
// cycles per parcel id, so that two concurrent transitions never both evaluate
// against the same pre-transition status.
package locker

import (
	"context"
	"errors"
	"sync"
	"time"

	"parceltrack/internal/pkg/errs"
)

// ErrAcquireTimeout indicates that the lock could not be acquired within the
// configured timeout. It is surfaced wrapped in a ConcurrencyConflictError,
// which callers treat as retryable.
var ErrAcquireTimeout = errors.New("lock acquisition timed out")

type lockEntry struct {
	ch       chan struct{}
	refs     int
	lastUsed time.Time
}

// KeyedLocker hands out short-lived mutual-exclusion scopes keyed by string.
// Entries are created lazily and reclaimed by Sweep once idle, so the registry
// does not grow with the total number of parcels ever touched.
type KeyedLocker struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
	timeout time.Duration
}

// NewKeyedLocker creates a locker whose Acquire calls give up after timeout.
func NewKeyedLocker(timeout time.Duration) *KeyedLocker {
	return &KeyedLocker{
		entries: make(map[string]*lockEntry),
		timeout: timeout,
	}
}

// Acquire obtains the lock for key, blocking until it is free, the timeout
// elapses, or ctx is cancelled. On success it returns a release function that
// must be called on every exit path. On timeout or cancellation it returns a
// retryable ConcurrencyConflictError.
func (l *KeyedLocker) Acquire(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	entry, ok := l.entries[key]
	if !ok {
		entry = &lockEntry{ch: make(chan struct{}, 1)}
		l.entries[key] = entry
	}
	entry.refs++
	l.mu.Unlock()

	timer := time.NewTimer(l.timeout)
	defer timer.Stop()

	select {
	case entry.ch <- struct{}{}:
		return func() {
			<-entry.ch
			l.mu.Lock()
			entry.refs--
			entry.lastUsed = time.Now()
			l.mu.Unlock()
		}, nil
	case <-timer.C:
		l.release(entry)
		return nil, errs.NewConcurrencyConflictErrorWithCause("lock", key, ErrAcquireTimeout)
	case <-ctx.Done():
		l.release(entry)
		return nil, errs.NewConcurrencyConflictErrorWithCause("lock", key, ctx.Err())
	}
}

func (l *KeyedLocker) release(entry *lockEntry) {
	l.mu.Lock()
	entry.refs--
	entry.lastUsed = time.Now()
	l.mu.Unlock()
}

// Sweep removes entries that are unreferenced and have been idle for at least
// idleFor. Returns the number of entries removed.
func (l *KeyedLocker) Sweep(idleFor time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	cutoff := time.Now().Add(-idleFor)
	for key, entry := range l.entries {
		if entry.refs == 0 && entry.lastUsed.Before(cutoff) {
			delete(l.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the current number of tracked lock entries.
func (l *KeyedLocker) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
