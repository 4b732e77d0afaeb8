package repositories

import "filedrop/internal/models"

// FileRepository defines the interface for file metadata access.
type FileRepository interface {
	Create(file *models.File) error
	GetByOwner(ownerID string) ([]models.File, error)
}
