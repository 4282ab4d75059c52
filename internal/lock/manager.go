// Package lock provides per-path advisory file locks for the duration of a
// single read-modify-write cycle. The locks are best-effort: they serialize
// cooperating processes using this server, but they are not a consistency
// guarantee: an unrelated writer can still clobber the file.
package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/flock"
)

var (
	// ErrTimeout is returned when acquiring a lock times out.
	ErrTimeout = errors.New("timeout acquiring lock")
	// ErrPathRequired is returned when the path is empty.
	ErrPathRequired = errors.New("lock path is required")
)

// Poll interval while waiting for a contended lock.
const pollInterval = 10 * time.Millisecond

// Handle is a held lock, returned by Acquire and consumed by Release.
type Handle struct {
	Path  string
	flock *flock.Flock
}

// Manager acquires and releases OS-level advisory locks. Lock files live
// next to the target as <path>.lock.
type Manager interface {
	Acquire(path string, timeout time.Duration) (*Handle, error)
	Release(h *Handle) error
}

// FlockManager implements Manager with gofrs/flock.
type FlockManager struct{}

// NewFlockManager returns a new FlockManager.
func NewFlockManager() *FlockManager {
	return &FlockManager{}
}

var _ Manager = (*FlockManager)(nil)

// Acquire obtains an exclusive advisory lock for the given path, waiting up
// to timeout.
func (m *FlockManager) Acquire(path string, timeout time.Duration) (*Handle, error) {
	if path == "" {
		return nil, ErrPathRequired
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	fl := flock.New(path + ".lock")
	locked, err := fl.TryLockContext(ctx, pollInterval)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("acquire lock for %s: %w", path, err)
	}
	if !locked {
		return nil, ErrTimeout
	}
	return &Handle{Path: path, flock: fl}, nil
}

// Release unlocks the handle. Releasing a nil handle is a no-op.
func (m *FlockManager) Release(h *Handle) error {
	if h == nil || h.flock == nil {
		return nil
	}
	if err := h.flock.Unlock(); err != nil {
		return fmt.Errorf("release lock for %s: %w", h.Path, err)
	}
	return nil
}
