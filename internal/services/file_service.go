package services

import (
	"context"
	"io"
	"log"
	"time"

	"filedrop/internal/apperrors"
	"filedrop/internal/models"
	"filedrop/internal/repositories"
	"filedrop/internal/storage"
	"filedrop/pkg/events"
)

// FileService handles business logic for uploads and owner-scoped listings.
type FileService struct {
	fileRepo repositories.FileRepository
	blobs    storage.BlobStore
	mqClient *events.Client // RabbitMQ client, may be nil
	maxBytes int64
}

// NewFileService creates a new FileService. mqClient may be nil; events are
// then skipped.
func NewFileService(fileRepo repositories.FileRepository, blobs storage.BlobStore, mqClient *events.Client, maxBytes int64) *FileService {
	return &FileService{
		fileRepo: fileRepo,
		blobs:    blobs,
		mqClient: mqClient,
		maxBytes: maxBytes,
	}
}

// Upload persists the payload to blob storage under a generated key and then
// registers its metadata. The blob is written first so the registry never
// references a blob that was not stored. The client-declared MIME type and
// size are recorded for display only.
func (s *FileService) Upload(ctx context.Context, ownerID, name, mimeType string, r io.Reader, size int64) (*models.File, error) {
	if ownerID == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	if size > s.maxBytes {
		return nil, apperrors.ErrFileTooLarge
	}

	key := storage.GenerateKey(name)
	if err := s.blobs.Save(ctx, key, r, size, mimeType); err != nil {
		return nil, err
	}

	file := &models.File{
		Name:       name,
		Size:       size,
		MimeType:   mimeType,
		StorageKey: key,
		UploadedAt: time.Now(),
		OwnerID:    ownerID,
	}
	if err := s.fileRepo.Create(file); err != nil {
		return nil, err
	}

	// Publish a file-uploaded event for downstream consumers. Best effort:
	// the upload already succeeded, so a publish failure is only logged.
	if s.mqClient != nil {
		event := map[string]interface{}{
			"fileID":  file.ID,
			"ownerID": file.OwnerID,
			"name":    file.Name,
			"size":    file.Size,
		}
		if err := s.mqClient.PublishFileUploaded(event); err != nil {
			log.Printf("Warning: Failed to publish file uploaded event for file %s: %v", file.ID, err)
		}
	}

	return file, nil
}

// ListFiles returns the files owned by the given user, in insertion order.
// It never returns another owner's metadata.
func (s *FileService) ListFiles(ownerID string) ([]models.File, error) {
	if ownerID == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	return s.fileRepo.GetByOwner(ownerID)
}

// OpenBlob returns the stored contents of a registered file. The storage key
// stays inside this boundary; callers receive only the byte stream.
func (s *FileService) OpenBlob(ctx context.Context, file *models.File) (io.ReadCloser, error) {
	return s.blobs.Open(ctx, file.StorageKey)
}
