package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// Keys persisted between runs.
const (
	KeyAuthToken        = "auth_token"
	KeyPreferredOwnerID = "preferred_owner_id"
)

// Store is a small persisted key/value store.
type Store interface {
	Get(key string) (value string)
	Set(key, value string) (err error)
	Remove(key string) (err error)
}

// FileStore persists keys as a JSON object on disk.
type FileStore struct {
	path   string
	mu     sync.Mutex
	values map[string]string
}

// DefaultPath returns $HOME/.portfolio-admin/storage.json.
func DefaultPath() (path string, err error) {
	var homeDir string
	homeDir, err = os.UserHomeDir()
	if err != nil {
		err = errors.Wrap(err, "failed to get user home directory")
		return path, err
	}
	path = filepath.Join(homeDir, ".portfolio-admin", "storage.json")
	return path, err
}

// OpenFile loads the store at path. A missing file is an empty store.
func OpenFile(path string) (store *FileStore, err error) {
	store = &FileStore{
		path:   path,
		values: make(map[string]string),
	}

	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			err = nil
			return store, err
		}
		err = errors.Wrapf(err, "failed to read storage file: %s", path)
		return store, err
	}

	if len(data) == 0 {
		return store, err
	}

	err = json.Unmarshal(data, &store.values)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse storage file: %s", path)
		return store, err
	}

	return store, err
}

// Get returns the stored value or an empty string.
func (s *FileStore) Get(key string) (value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value = s.values[key]
	return value
}

// Set stores a value and writes the file.
func (s *FileStore) Set(key, value string) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	err = s.flush()
	return err
}

// Remove deletes a key and writes the file.
func (s *FileStore) Remove(key string) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	err = s.flush()
	return err
}

func (s *FileStore) flush() (err error) {
	dir := filepath.Dir(s.path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create storage directory: %s", dir)
		return err
	}

	var data []byte
	data, err = json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal storage")
		return err
	}

	err = os.WriteFile(s.path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write storage file: %s", s.path)
		return err
	}

	return err
}

// Memory is an in-process Store.
type Memory struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemory returns a Memory store seeded with values.
func NewMemory(values map[string]string) (store *Memory) {
	store = &Memory{values: make(map[string]string)}
	for k, v := range values {
		store.values[k] = v
	}
	return store
}

// Get returns the stored value or an empty string.
func (m *Memory) Get(key string) (value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value = m.values[key]
	return value
}

// Set stores a value.
func (m *Memory) Set(key, value string) (err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return err
}

// Remove deletes a key.
func (m *Memory) Remove(key string) (err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return err
}
