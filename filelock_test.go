package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLockFile_AcquireAndRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	lock, err := lockFile(path)
	if err != nil {
		t.Fatalf("failed to acquire lock: %v", err)
	}
	if _, err := os.Stat(path + ".lock"); err != nil {
		t.Errorf("expected lock file to exist: %v", err)
	}

	if err := lock.unlock(); err != nil {
		t.Fatalf("failed to release lock: %v", err)
	}
	if _, err := os.Stat(path + ".lock"); !os.IsNotExist(err) {
		t.Errorf("expected lock file to be removed, stat err = %v", err)
	}
}

func TestLockFile_WaitsForHolder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	first, err := lockFile(path)
	if err != nil {
		t.Fatalf("failed to acquire first lock: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		second, err := lockFile(path)
		if err == nil {
			second.unlock()
		}
		done <- err
	}()

	// Release after the second acquirer has started waiting.
	time.Sleep(150 * time.Millisecond)
	if err := first.unlock(); err != nil {
		t.Fatalf("failed to release first lock: %v", err)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("second acquire failed: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("second acquire never completed")
	}
}

func TestLockFile_RemovesStaleLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	lockPath := path + ".lock"

	if err := os.WriteFile(lockPath, []byte("12345"), 0o600); err != nil {
		t.Fatal(err)
	}
	old := time.Now().Add(-lockStaleAfter - time.Minute)
	if err := os.Chtimes(lockPath, old, old); err != nil {
		t.Fatal(err)
	}

	lock, err := lockFile(path)
	if err != nil {
		t.Fatalf("expected the stale lock to be removed, got %v", err)
	}
	lock.unlock()
}
