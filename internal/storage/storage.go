// Package storage provides durable blob storage for uploaded file contents,
// addressed by opaque keys distinct from user-facing filenames.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// BlobStore is the abstract byte-store behind the file registry.
type BlobStore interface {
	Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// GenerateKey returns a collision-resistant storage key for an upload,
// keeping only the extension of the client-supplied filename.
func GenerateKey(originalName string) string {
	return fmt.Sprintf("file-%d-%s%s", time.Now().UnixMilli(), uuid.New().String(), filepath.Ext(originalName))
}
