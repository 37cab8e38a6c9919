package localstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gymdash/internal/common"
)

// FileStore keeps each namespace value in its own JSON file under a base
// directory. Useful when the dashboard runs without SQLite available.
type FileStore struct {
	basePath string
}

// NewFileStore creates a FileStore and ensures the base directory exists.
func NewFileStore(basePath string) (*FileStore, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	return &FileStore{basePath: basePath}, nil
}

// keyPath makes the key safe for filenames.
func (s *FileStore) keyPath(key string) string {
	name := strings.NewReplacer("/", "_", "\\", "_", ":", "-").Replace(key)
	return filepath.Join(s.basePath, name+".json")
}

func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.keyPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return data, nil
}

func (s *FileStore) Set(_ context.Context, key string, value []byte) error {
	if err := os.WriteFile(s.keyPath(key), value, 0o644); err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

func (s *FileStore) Delete(_ context.Context, key string) error {
	if err := os.Remove(s.keyPath(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}
