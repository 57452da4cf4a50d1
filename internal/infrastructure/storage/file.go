// internal/infrastructure/storage/file.go
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore implements KeyValue as a single JSON file on local disk,
// for deployments without a Redis instance. Writes go through a temp
// file and rename so a crash mid-write cannot corrupt the store.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a file-backed key-value store at path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Get retrieves a value by key
func (s *FileStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return "", err
	}

	value, ok := entries[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

// Set stores a value under key
func (s *FileStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return err
	}
	entries[key] = value

	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write store: %w", err)
	}
	return os.Rename(tmp, s.path)
}

// read loads the whole file, treating a missing or unreadable file as empty
func (s *FileStore) read() (map[string]string, error) {
	entries := map[string]string{}

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return entries, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store: %w", err)
	}

	if err := json.Unmarshal(data, &entries); err != nil {
		// A corrupt store file is equivalent to an empty one; the next
		// Set overwrites it with valid content.
		return map[string]string{}, nil
	}
	return entries, nil
}
