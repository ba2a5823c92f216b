// Package storage provides blob storage backends for table snapshot
// exports.
package storage

import (
	"context"
)

// BlobStore stores snapshot blobs under string keys.
type BlobStore interface {
	// Put writes a blob, overwriting any existing blob at the key.
	Put(ctx context.Context, key string, data []byte) error

	// Get reads a blob.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes a blob.
	Delete(ctx context.Context, key string) error

	// Exists checks whether a blob exists.
	Exists(ctx context.Context, key string) (bool, error)

	// List returns the keys under a prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}
