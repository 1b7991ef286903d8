package catalog

import (
	"context"
	"fmt"
	"os"
)

// Store supplies the raw catalog document the Manager loads from.
type Store interface {
	// Fetch returns the full catalog document as JSON.
	Fetch(ctx context.Context) ([]byte, error)
}

// FileStore reads the catalog document from a file on disk.
type FileStore struct {
	path string
}

// NewFileStore creates a store over the given catalog file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Fetch reads the catalog document.
func (s *FileStore) Fetch(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", s.path, err)
	}
	return data, nil
}
