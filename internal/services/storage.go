package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ObjectStore is the blob interface the pipeline depends on: keys in,
// opaque locators out. The disk implementation below keeps the locator
// equal to the key.
type ObjectStore interface {
	Put(key string, data []byte, contentType string) (string, error)
	Delete(key string) error
	EnsureRoot() error
}

type diskObjectStore struct {
	root string
}

func NewDiskObjectStore(root string) ObjectStore {
	return &diskObjectStore{root: root}
}

func (s *diskObjectStore) EnsureRoot() error {
	if err := os.MkdirAll(s.root, 0755); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}
	return nil
}

func (s *diskObjectStore) Put(key string, data []byte, contentType string) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}

	path := filepath.Join(s.root, key)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write object %s: %w", key, err)
	}

	return key, nil
}

// Delete is idempotent: a missing key is not an error.
func (s *diskObjectStore) Delete(key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	path := filepath.Join(s.root, key)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}
	return nil
}

func validateKey(key string) error {
	if key == "" {
		return fmt.Errorf("empty object key")
	}
	if strings.Contains(key, "..") || strings.ContainsAny(key, "/\\") {
		return fmt.Errorf("invalid object key: %s", key)
	}
	return nil
}
