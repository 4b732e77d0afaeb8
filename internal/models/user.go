package models

import "time"

// User represents a registered account. Records are immutable after signup;
// there are no update or delete operations. Email is the natural key.
type User struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username     string    `json:"username" gorm:"type:varchar(100)" validate:"required,min=3,max=100"`
	Email        string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255)"` // bcrypt digest, never serialized
	Salt         string    `json:"-" gorm:"type:varchar(64)"`  // bcrypt version+cost+salt prefix
	CreatedAt    time.Time `json:"-"`
}
