package main

import (
	"fmt"
	"os"
	"time"
)

const (
	lockRetries    = 50
	lockRetryDelay = 100 * time.Millisecond
	lockStaleAfter = 30 * time.Second
)

// fileLock guards the session file against concurrent writers from other
// processes. A sibling ".lock" file created with O_EXCL serves as the mutex;
// locks older than lockStaleAfter are treated as left behind by a crashed
// process and removed.
type fileLock struct {
	f    *os.File
	path string
}

// lockFile acquires the lock for path, waiting up to
// lockRetries*lockRetryDelay for a competing holder to release it.
func lockFile(path string) (*fileLock, error) {
	lockPath := path + ".lock"

	for i := 0; i < lockRetries; i++ {
		f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
		if err == nil {
			// Record the holder for debugging.
			fmt.Fprintf(f, "%d", os.Getpid())
			return &fileLock{f: f, path: lockPath}, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("failed to acquire file lock: %w", err)
		}

		if info, statErr := os.Stat(lockPath); statErr == nil &&
			time.Since(info.ModTime()) > lockStaleAfter {
			// Stale lock; remove and retry immediately. Tolerate a racing
			// remover.
			if remErr := os.Remove(lockPath); remErr != nil && !os.IsNotExist(remErr) {
				return nil, fmt.Errorf("failed to remove stale lock file %s: %w", lockPath, remErr)
			}
			continue
		}

		time.Sleep(lockRetryDelay)
	}

	return nil, fmt.Errorf(
		"timeout waiting for file lock after %v",
		lockRetries*lockRetryDelay,
	)
}

// unlock releases the lock.
func (l *fileLock) unlock() error {
	if l.f != nil {
		l.f.Close()
	}
	return os.Remove(l.path)
}
