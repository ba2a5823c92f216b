package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// Local stores blobs on the local filesystem under a base directory.
type Local struct {
	basePath string
}

// NewLocal creates a local blob store rooted at basePath.
func NewLocal(basePath string) *Local {
	return &Local{basePath: basePath}
}

// resolve joins a key onto the base path.
func (l *Local) resolve(key string) string {
	return filepath.Join(l.basePath, filepath.FromSlash(key))
}

// Put writes a blob, creating parent directories as needed.
func (l *Local) Put(ctx context.Context, key string, data []byte) error {
	path := l.resolve(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Get reads a blob.
func (l *Local) Get(ctx context.Context, key string) ([]byte, error) {
	return os.ReadFile(l.resolve(key))
}

// Delete removes a blob.
func (l *Local) Delete(ctx context.Context, key string) error {
	return os.Remove(l.resolve(key))
}

// Exists checks whether a blob exists.
func (l *Local) Exists(ctx context.Context, key string) (bool, error) {
	_, err := os.Stat(l.resolve(key))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// List returns the keys under a prefix, relative to the base path.
func (l *Local) List(ctx context.Context, prefix string) ([]string, error) {
	root := l.resolve(prefix)

	var keys []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(l.basePath, path)
		if err != nil {
			return err
		}
		keys = append(keys, strings.ReplaceAll(rel, string(filepath.Separator), "/"))
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	return keys, nil
}
