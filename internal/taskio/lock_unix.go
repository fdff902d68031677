//go:build unix

package taskio

import (
	"os"

	"golang.org/x/sys/unix"
)

// ResultLock holds an advisory lock on a task's result.csv for the
// duration of a worker's write, preventing two pool workers from
// racing on the same file if a task directory is ever claimed twice.
type ResultLock struct {
	f *os.File
}

// LockResult opens (creating if needed) path and takes an exclusive
// advisory flock on it. Callers must call Unlock when done.
func LockResult(path string) (*ResultLock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, err
	}
	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX); err != nil {
		f.Close()
		return nil, err
	}
	return &ResultLock{f: f}, nil
}

// Unlock releases the lock and closes the underlying file.
func (l *ResultLock) Unlock() error {
	if l == nil || l.f == nil {
		return nil
	}
	unix.Flock(int(l.f.Fd()), unix.LOCK_UN)
	return l.f.Close()
}
