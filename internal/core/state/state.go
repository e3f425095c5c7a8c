package state

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the installed-state document filename under the store root.
const FileName = "installed.toml"

// ErrCorrupt indicates the state file exists but does not parse. This is a
// hard error: the document is the only record of what is installed, and
// silently resetting it would orphan every installed binary.
var ErrCorrupt = errors.New("installed state corrupt")

// Record is one installed package: which repo and version it came from and
// the absolute destination paths of the binaries it placed.
type Record struct {
	Repo     string   `toml:"repo"`
	Version  string   `toml:"version"`
	Binaries []string `toml:"binaries"`
}

// Store is the full installed-state document, package name -> Record.
// Only this package mutates the on-disk document; callers go through
// Mutate and Snapshot for cross-process safety.
type Store struct {
	Packages map[string]Record `toml:"packages"`
}

// New returns an empty Store.
func New() *Store {
	return &Store{Packages: make(map[string]Record)}
}

// Path returns the state document path under storeRoot.
func Path(storeRoot string) string {
	return filepath.Join(storeRoot, FileName)
}

// Load reads the state document under storeRoot fresh from disk. A missing
// file yields an empty store; an unparseable one is ErrCorrupt.
func Load(storeRoot string) (*Store, error) {
	data, err := os.ReadFile(Path(storeRoot))
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, fmt.Errorf("failed to read state file %s: %w", Path(storeRoot), err)
	}
	st := New()
	if err := toml.Unmarshal(data, st); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, Path(storeRoot), err)
	}
	if st.Packages == nil {
		st.Packages = make(map[string]Record)
	}
	return st, nil
}

// Save writes the full document wholesale, replacing the previous file via
// a temp file and rename so a crash mid-write cannot leave a truncated one.
func Save(storeRoot string, st *Store) error {
	if err := os.MkdirAll(storeRoot, 0o755); err != nil {
		return fmt.Errorf("failed to create store root %s: %w", storeRoot, err)
	}
	buf := new(bytes.Buffer)
	if err := toml.NewEncoder(buf).Encode(st); err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	tmp, err := os.CreateTemp(storeRoot, FileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write temp state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp state file: %w", err)
	}
	if err := os.Rename(tmpName, Path(storeRoot)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}

// Contains reports whether name has an installed record.
func (s *Store) Contains(name string) bool {
	_, ok := s.Packages[name]
	return ok
}

// Get returns the record for name.
func (s *Store) Get(name string) (Record, bool) {
	rec, ok := s.Packages[name]
	return rec, ok
}

// Insert adds or overwrites the record for name.
func (s *Store) Insert(name string, rec Record) {
	s.Packages[name] = rec
}

// Remove drops and returns the record for name.
func (s *Store) Remove(name string) (Record, bool) {
	rec, ok := s.Packages[name]
	if ok {
		delete(s.Packages, name)
	}
	return rec, ok
}

// Len returns the number of installed records.
func (s *Store) Len() int {
	return len(s.Packages)
}
