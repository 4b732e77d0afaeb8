package repositories

import (
	"sync"
	"time"

	"filedrop/internal/models"

	"github.com/google/uuid"
)

// MockFileRepository is an in-memory implementation of FileRepository.
// Files are kept in a slice so listings preserve insertion order.
type MockFileRepository struct {
	files []models.File
	mu    sync.RWMutex
}

// NewMockFileRepository creates a new instance of MockFileRepository.
func NewMockFileRepository() *MockFileRepository {
	return &MockFileRepository{}
}

// Create registers file metadata.
func (r *MockFileRepository) Create(file *models.File) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if file.ID == "" {
		file.ID = uuid.New().String()
	}
	if file.UploadedAt.IsZero() {
		file.UploadedAt = time.Now()
	}
	r.files = append(r.files, *file)
	return nil
}

// GetByOwner returns the files whose OwnerID matches, in insertion order.
func (r *MockFileRepository) GetByOwner(ownerID string) ([]models.File, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owned := make([]models.File, 0)
	for _, f := range r.files {
		if f.OwnerID == ownerID {
			owned = append(owned, f)
		}
	}
	return owned, nil
}
