package models

import (
	"time"

	"gorm.io/gorm"
)

type Task struct {
	ID          string    `gorm:"type:varchar(36);primarykey" json:"_id" bson:"_id"`
	OwnerID     string    `gorm:"type:varchar(36);not null;index" json:"userId" bson:"userId"`
	Title       string    `gorm:"not null" json:"title" bson:"title"`
	IsCompleted bool      `gorm:"not null;default:false" json:"isCompleted" bson:"isCompleted"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = NewID()
	}
	return nil
}
