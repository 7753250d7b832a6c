package lockfile

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/flock"
)

// LockFile is an advisory lock on a sidecar file next to the data it guards.
// The sidecar is left on disk after Release; only the OS lock is dropped.
type LockFile struct {
	fl *flock.Flock
}

// For returns the lock guarding target, stored at target + ".lock".
func For(target string) *LockFile {
	return &LockFile{fl: flock.New(target + ".lock")}
}

// Acquire blocks until the lock is held, ctx is done, or an OS error occurs.
func (l *LockFile) Acquire(ctx context.Context) error {
	ok, err := l.fl.TryLockContext(ctx, 20*time.Millisecond)
	if err != nil {
		return fmt.Errorf("lock %s: %w", l.fl.Path(), err)
	}
	if !ok {
		return fmt.Errorf("lock %s: not acquired", l.fl.Path())
	}
	return nil
}

// TryAcquire takes the lock without waiting and reports whether it was free.
func (l *LockFile) TryAcquire() (bool, error) {
	ok, err := l.fl.TryLock()
	if err != nil {
		return false, fmt.Errorf("lock %s: %w", l.fl.Path(), err)
	}
	return ok, nil
}

// Release releases the lock
func (l *LockFile) Release() error {
	if err := l.fl.Unlock(); err != nil {
		return fmt.Errorf("unlock %s: %w", l.fl.Path(), err)
	}
	return nil
}

// Path returns the path to the lock file
func (l *LockFile) Path() string {
	return l.fl.Path()
}
