package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VideoLookup records a metadata lookup made by a user ahead of clipping
type VideoLookup struct {
	ID        string         `json:"id" gorm:"primaryKey;size:36"`
	OwnerID   string         `json:"owner_id" gorm:"not null;index;size:128"`
	SourceRef string         `json:"source_ref" gorm:"not null;size:2048"`
	Metadata  SourceMetadata `json:"metadata" gorm:"type:json"`
	CreatedAt time.Time      `json:"created_at" gorm:"index"`
}

// BeforeCreate generates a UUID before creating a new lookup
func (v *VideoLookup) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return nil
}

// TableName returns the table name for the VideoLookup model
func (VideoLookup) TableName() string {
	return "video_lookups"
}

// All returns every persisted model, in migration order
func All() []any {
	return []any{&Clip{}, &VideoLookup{}}
}
