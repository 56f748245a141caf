// Package lock provides the single-instance marker that keeps two
// scheduler-driven invocations from rewriting the same destination
// spreadsheet at once.
package lock

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// ErrHeld means another invocation currently owns the lock file.
var ErrHeld = errors.New("lock already held")

// FileLock is a create-exclusive marker file holding the owner's PID.
// A crashed process leaves the marker behind; there is no staleness
// detection, the stale file must be removed out-of-band.
type FileLock struct {
	path string
}

// Acquire creates the marker exclusively. ErrHeld is returned when the
// file already exists.
func Acquire(path string) (*FileLock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, ErrHeld
		}
		return nil, fmt.Errorf("create lock file: %w", err)
	}
	fmt.Fprintf(f, "%d", os.Getpid())
	if err := f.Close(); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("write lock file: %w", err)
	}
	return &FileLock{path: path}, nil
}

// Release removes the marker. Releasing an already-removed lock is not
// an error.
func (l *FileLock) Release() error {
	err := os.Remove(l.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove lock file: %w", err)
	}
	return nil
}

// Path returns the marker location.
func (l *FileLock) Path() string { return l.path }
