// internal/model/progress.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserProgress is unique per (user_id, content_id).
type UserProgress struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID             uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_content" json:"user_id"`
	ContentID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_content" json:"content_id"`
	ProgressPercentage int       `gorm:"not null;default:0" json:"progress_percentage"`
	Completed          bool      `gorm:"not null;default:false" json:"completed"`
	LastAccessed       time.Time `gorm:"not null" json:"last_accessed"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`

	Content *Content `gorm:"foreignKey:ContentID;references:ID" json:"content,omitempty"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}

type ProgressRequest struct {
	ContentID          uuid.UUID `json:"content_id" validate:"required"`
	ProgressPercentage *int      `json:"progress_percentage" validate:"required,min=0,max=100"`
	Completed          bool      `json:"completed"`
}
