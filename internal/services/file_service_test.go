package services_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"testing"

	"filedrop/internal/apperrors"
	"filedrop/internal/repositories"
	"filedrop/internal/services"

	"github.com/stretchr/testify/assert"
)

// memBlobStore is an in-memory BlobStore for unit tests.
type memBlobStore struct {
	blobs map[string][]byte
	mu    sync.Mutex
}

func newMemBlobStore() *memBlobStore {
	return &memBlobStore{blobs: make(map[string][]byte)}
}

func (s *memBlobStore) Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = b
	return nil
}

func (s *memBlobStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.blobs[key]
	if !ok {
		return nil, fmt.Errorf("blob %s not found", key)
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

// failingBlobStore always fails to store, simulating a cancelled or broken write.
type failingBlobStore struct{}

func (failingBlobStore) Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	return fmt.Errorf("storage unavailable")
}

func (failingBlobStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	return nil, fmt.Errorf("storage unavailable")
}

const testMaxUploadBytes = 10 * 1024 * 1024

func TestFileService_Upload(t *testing.T) {
	fileRepo := repositories.NewMockFileRepository()
	blobs := newMemBlobStore()
	fileService := services.NewFileService(fileRepo, blobs, nil, testMaxUploadBytes)

	content := []byte("hello filedrop")
	file, err := fileService.Upload(context.Background(), "user-a", "notes.txt", "text/plain", bytes.NewReader(content), int64(len(content)))
	assert.NoError(t, err)
	assert.NotEmpty(t, file.ID)
	assert.Equal(t, "notes.txt", file.Name)
	assert.Equal(t, int64(len(content)), file.Size)
	assert.Equal(t, "text/plain", file.MimeType)
	assert.Equal(t, "user-a", file.OwnerID)
	assert.False(t, file.UploadedAt.IsZero())
	// The storage key is generated, never the user-supplied name.
	assert.NotEmpty(t, file.StorageKey)
	assert.NotEqual(t, "notes.txt", file.StorageKey)

	// Round-trip: the stored blob is byte-identical to the upload.
	rc, err := fileService.OpenBlob(context.Background(), file)
	assert.NoError(t, err)
	stored, err := io.ReadAll(rc)
	assert.NoError(t, err)
	rc.Close()
	assert.Equal(t, content, stored)
}

func TestFileService_Upload_NoIdentity(t *testing.T) {
	fileRepo := repositories.NewMockFileRepository()
	fileService := services.NewFileService(fileRepo, newMemBlobStore(), nil, testMaxUploadBytes)

	_, err := fileService.Upload(context.Background(), "", "notes.txt", "text/plain", bytes.NewReader([]byte("x")), 1)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)

	files, err := fileRepo.GetByOwner("")
	assert.NoError(t, err)
	assert.Empty(t, files)
}

func TestFileService_Upload_TooLarge(t *testing.T) {
	fileRepo := repositories.NewMockFileRepository()
	blobs := newMemBlobStore()
	fileService := services.NewFileService(fileRepo, blobs, nil, 16)

	content := []byte("this payload exceeds the sixteen byte ceiling")
	_, err := fileService.Upload(context.Background(), "user-a", "big.bin", "application/octet-stream", bytes.NewReader(content), int64(len(content)))
	assert.ErrorIs(t, err, apperrors.ErrFileTooLarge)

	// Nothing was stored or registered.
	assert.Empty(t, blobs.blobs)
	files, err := fileRepo.GetByOwner("user-a")
	assert.NoError(t, err)
	assert.Empty(t, files)
}

func TestFileService_Upload_BlobWriteFails(t *testing.T) {
	fileRepo := repositories.NewMockFileRepository()
	fileService := services.NewFileService(fileRepo, failingBlobStore{}, nil, testMaxUploadBytes)

	_, err := fileService.Upload(context.Background(), "user-a", "notes.txt", "text/plain", bytes.NewReader([]byte("x")), 1)
	assert.Error(t, err)

	// Blob write failed, so no metadata may reference a missing blob.
	files, err := fileRepo.GetByOwner("user-a")
	assert.NoError(t, err)
	assert.Empty(t, files)
}

func TestFileService_ListFiles_OwnerIsolation(t *testing.T) {
	fileRepo := repositories.NewMockFileRepository()
	blobs := newMemBlobStore()
	fileService := services.NewFileService(fileRepo, blobs, nil, testMaxUploadBytes)

	ctx := context.Background()
	// User A uploads two files, user B uploads one, interleaved.
	_, err := fileService.Upload(ctx, "user-a", "a1.txt", "text/plain", bytes.NewReader([]byte("a1")), 2)
	assert.NoError(t, err)
	_, err = fileService.Upload(ctx, "user-b", "b1.txt", "text/plain", bytes.NewReader([]byte("b1")), 2)
	assert.NoError(t, err)
	_, err = fileService.Upload(ctx, "user-a", "a2.txt", "text/plain", bytes.NewReader([]byte("a2")), 2)
	assert.NoError(t, err)

	filesA, err := fileService.ListFiles("user-a")
	assert.NoError(t, err)
	assert.Len(t, filesA, 2)
	assert.Equal(t, "a1.txt", filesA[0].Name)
	assert.Equal(t, "a2.txt", filesA[1].Name)
	for _, f := range filesA {
		assert.Equal(t, "user-a", f.OwnerID)
	}

	filesB, err := fileService.ListFiles("user-b")
	assert.NoError(t, err)
	assert.Len(t, filesB, 1)
	assert.Equal(t, "b1.txt", filesB[0].Name)

	_, err = fileService.ListFiles("")
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}
