package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           string    `gorm:"type:varchar(36);primarykey" json:"id" bson:"_id"`
	Username     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"username" bson:"username"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-" bson:"password"`
	CreatedAt    time.Time `json:"created_at" bson:"createdAt"`
}

// NewID returns a fresh store-independent record ID.
func NewID() string {
	return uuid.NewString()
}

// BeforeCreate assigns an ID when the caller did not set one.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = NewID()
	}
	return nil
}
