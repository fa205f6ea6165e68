package model

import (
	"time"

	"github.com/google/uuid"
)

type DownloadedContent struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	ContentID    uuid.UUID `gorm:"type:uuid;not null;index" json:"content_id"`
	DownloadedAt time.Time `gorm:"not null" json:"downloaded_at"`
	SizeBytes    int64     `gorm:"not null" json:"size_bytes"`

	Content *Content `gorm:"foreignKey:ContentID;references:ID" json:"content,omitempty"`
}

func (DownloadedContent) TableName() string {
	return "downloaded_content"
}

type DownloadResponse struct {
	Download *DownloadedContent `json:"download"`
	Redirect string             `json:"redirect"`
}

type ClearDownloadsResponse struct {
	Removed    int64 `json:"removed"`
	FreedBytes int64 `json:"freed_bytes"`
}

// OfflineManifestEntry tells the client which downloaded content changed
// since it was saved.
type OfflineManifestEntry struct {
	ContentID    uuid.UUID   `json:"content_id"`
	Title        string      `json:"title"`
	Type         ContentType `json:"type"`
	Language     string      `json:"language"`
	SizeBytes    int64       `json:"size_bytes"`
	DownloadedAt time.Time   `json:"downloaded_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
	Stale        bool        `json:"stale"`
}

type OfflineManifest struct {
	UserID     uuid.UUID               `json:"user_id"`
	TotalBytes int64                   `json:"total_bytes"`
	Entries    []*OfflineManifestEntry `json:"entries"`
}
