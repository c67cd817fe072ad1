package oss

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// LocalStore writes blobs below Root (MEDIA_ROOT).
type LocalStore struct {
	Root string
}

func NewLocalStore(root string) *LocalStore {
	return &LocalStore{Root: root}
}

func (s *LocalStore) Save(_ context.Context, dir, filename string, data []byte, _ string) (string, error) {
	name := ObjectName(dir, filename)
	full := filepath.Join(s.Root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", filepath.Dir(full), err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return name, nil
}

func (s *LocalStore) Delete(_ context.Context, storedPath string) error {
	err := os.Remove(filepath.Join(s.Root, filepath.FromSlash(storedPath)))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
