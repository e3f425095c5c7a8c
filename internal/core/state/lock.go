package state

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockName is the advisory lock file guarding the state document.
const LockName = FileName + ".lock"

func newLock(storeRoot string) (*flock.Flock, error) {
	if err := os.MkdirAll(storeRoot, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store root %s: %w", storeRoot, err)
	}
	return flock.New(filepath.Join(storeRoot, LockName)), nil
}

// Mutate runs fn over a fresh load-modify-save cycle while holding an
// exclusive advisory lock, so the cycle is atomic with respect to other
// processes sharing the store. An error from fn skips the save.
func Mutate(storeRoot string, fn func(*Store) error) error {
	fl, err := newLock(storeRoot)
	if err != nil {
		return err
	}
	if err := fl.Lock(); err != nil {
		return fmt.Errorf("failed to lock state file: %w", err)
	}
	defer func() { _ = fl.Unlock() }()

	st, err := Load(storeRoot)
	if err != nil {
		return err
	}
	if err := fn(st); err != nil {
		return err
	}
	return Save(storeRoot, st)
}

// Snapshot returns a fresh read of the state document under a shared lock.
func Snapshot(storeRoot string) (*Store, error) {
	fl, err := newLock(storeRoot)
	if err != nil {
		return nil, err
	}
	if err := fl.RLock(); err != nil {
		return nil, fmt.Errorf("failed to lock state file: %w", err)
	}
	defer func() { _ = fl.Unlock() }()

	return Load(storeRoot)
}
