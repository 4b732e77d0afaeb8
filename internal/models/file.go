package models

import "time"

// File holds per-upload metadata. OwnerID is a lookup key only; StorageKey is
// the blob-store reference and must never cross the HTTP boundary.
type File struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name       string    `json:"name" gorm:"type:varchar(255)" validate:"required"`
	Size       int64     `json:"size" validate:"gte=0"`
	MimeType   string    `json:"type" gorm:"type:varchar(255)"`
	StorageKey string    `json:"-" gorm:"type:varchar(255)"`
	UploadedAt time.Time `json:"uploadedAt"`
	OwnerID    string    `json:"-" gorm:"index;type:varchar(36)"`
}
