package state

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// Store is the persistence contract for snapshot and check-state blobs:
// load/save/delete by key. Load of a missing key returns (nil, nil). The
// core pipeline only ever sees this interface; tests use MemStore.
type Store interface {
	Load(key string) ([]byte, error)
	Save(key string, b []byte) error
	Delete(key string) error
}

// FileStore keeps one file per key under a dedicated state directory,
// created on demand. An advisory flock guards writes; concurrent writers are
// not arbitrated beyond last-write-wins.
type FileStore struct {
	Dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

func (s *FileStore) Load(key string) ([]byte, error) {
	b, err := os.ReadFile(filepath.Join(s.Dir, key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return b, err
}

func (s *FileStore) Save(key string, b []byte) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return err
	}

	lock := flock.New(filepath.Join(s.Dir, ".lock"))
	if err := lock.Lock(); err != nil {
		return err
	}
	defer func() { _ = lock.Unlock() }()

	return os.WriteFile(filepath.Join(s.Dir, key), b, 0o644)
}

func (s *FileStore) Delete(key string) error {
	err := os.Remove(filepath.Join(s.Dir, key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// MemStore is the in-memory Store used by tests.
type MemStore map[string][]byte

func (m MemStore) Load(key string) ([]byte, error) {
	b, ok := m[key]
	if !ok {
		return nil, nil
	}
	return b, nil
}

func (m MemStore) Save(key string, b []byte) error {
	m[key] = append([]byte(nil), b...)
	return nil
}

func (m MemStore) Delete(key string) error {
	delete(m, key)
	return nil
}
