package repositories

import (
	"fmt"

	"filedrop/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMFileRepository is a GORM implementation of FileRepository.
type GORMFileRepository struct {
	db *gorm.DB
}

// NewGORMFileRepository creates a new instance of GORMFileRepository.
func NewGORMFileRepository(db *gorm.DB) *GORMFileRepository {
	return &GORMFileRepository{
		db: db,
	}
}

// Create registers file metadata in the database.
func (r *GORMFileRepository) Create(file *models.File) error {
	if file.ID == "" {
		file.ID = uuid.New().String()
	}
	if err := r.db.Create(file).Error; err != nil {
		return fmt.Errorf("failed to create file record: %w", err)
	}
	return nil
}

// GetByOwner retrieves all files belonging to the given owner, in insertion order.
func (r *GORMFileRepository) GetByOwner(ownerID string) ([]models.File, error) {
	var files []models.File
	if err := r.db.Where("owner_id = ?", ownerID).Find(&files).Error; err != nil {
		return nil, fmt.Errorf("failed to get files for owner: %w", err)
	}
	return files, nil
}
