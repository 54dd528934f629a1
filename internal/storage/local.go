package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStore keeps deck files on the local filesystem under a fixed root.
type LocalStore struct {
	root string
}

// NewLocalStore creates the storage root if needed.
func NewLocalStore(root string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStore{root: root}, nil
}

// resolve maps a file name to a path inside the root. Only the base
// name is used, so a crafted name cannot escape the storage root.
func (s *LocalStore) resolve(name string) string {
	return filepath.Join(s.root, filepath.Base(name))
}

func (s *LocalStore) Save(ctx context.Context, name string, data []byte, contentType string) error {
	path := s.resolve(name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write deck file %s: %w", name, err)
	}
	return nil
}

func (s *LocalStore) Open(ctx context.Context, name string) (io.ReadCloser, int64, error) {
	path := s.resolve(name)
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, 0, ErrNotFound
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to stat deck file %s: %w", name, err)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open deck file %s: %w", name, err)
	}
	return file, info.Size(), nil
}

func (s *LocalStore) Exists(ctx context.Context, name string) (bool, error) {
	_, err := os.Stat(s.resolve(name))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat deck file %s: %w", name, err)
	}
	return true, nil
}
