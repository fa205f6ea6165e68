package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	DownloadWifiOnly = "wifi_only"
	DownloadAlways   = "always"
	DownloadNever    = "never"
)

// Profile holds per-user metadata. Its ID is the user ID.
type Profile struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Role               string    `gorm:"type:varchar(16);not null;default:user" json:"role"`
	Username           string    `gorm:"uniqueIndex;not null" json:"username"`
	LanguagePreference string    `gorm:"type:varchar(8);not null;default:en" json:"language_preference"`
	DownloadPreference string    `gorm:"type:varchar(16);not null;default:wifi_only" json:"download_preference"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

func (p *Profile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

type UpdateProfileRequest struct {
	Username           *string `json:"username,omitempty" validate:"omitempty,min=3,max=50"`
	LanguagePreference *string `json:"language_preference,omitempty" validate:"omitempty,min=2,max=8"`
	DownloadPreference *string `json:"download_preference,omitempty" validate:"omitempty,oneof=wifi_only always never"`
}

type SetRoleRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
	Role   string    `json:"role" validate:"required,oneof=user admin"`
}
