package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

// FileName is the catalog database filename under the store root.
const FileName = "packages.db"

var bucketName = []byte("binaries")

// Store archives installed binary contents, keyed by filename, in a
// single-file key/value database. The database is opened per call; the
// installer tolerates every failure from it.
type Store struct {
	Path string
}

// New returns the catalog rooted under storeRoot.
func New(storeRoot string) *Store {
	return &Store{Path: filepath.Join(storeRoot, FileName)}
}

// Record stores data under name, overwriting any previous content.
func (s *Store) Record(name string, data []byte) error {
	db, err := bbolt.Open(s.Path, 0o644, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return fmt.Errorf("failed to open catalog %s: %w", s.Path, err)
	}
	defer func() { _ = db.Close() }()

	err = db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketName)
		if err != nil {
			return err
		}
		return b.Put([]byte(name), data)
	})
	if err != nil {
		return fmt.Errorf("failed to catalog %s: %w", name, err)
	}
	return nil
}

// Get returns the cataloged bytes for name. ok is false when the database
// or the entry does not exist.
func (s *Store) Get(name string) (data []byte, ok bool, err error) {
	if _, err := os.Stat(s.Path); os.IsNotExist(err) {
		return nil, false, nil
	}
	db, err := bbolt.Open(s.Path, 0o644, &bbolt.Options{Timeout: time.Second, ReadOnly: true})
	if err != nil {
		return nil, false, fmt.Errorf("failed to open catalog %s: %w", s.Path, err)
	}
	defer func() { _ = db.Close() }()

	err = db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketName)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(name)); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return data, data != nil, nil
}
