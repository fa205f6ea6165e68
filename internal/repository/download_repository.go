//go:generate mockery --name DownloadRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"fmt"
	"time"

	"eduafri/internal/middleware"
	"eduafri/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DownloadRepository interface {
	Create(ctx context.Context, tx *gorm.DB, download *model.DownloadedContent) error
	ListByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.DownloadedContent, error)
	Delete(ctx context.Context, tx *gorm.DB, userID, downloadID uuid.UUID) error
	DeleteAllByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (removed int64, freedBytes int64, err error)
	DeleteOlderThan(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error)
}

type gormDownloadRepository struct{}

func NewGormDownloadRepository() DownloadRepository {
	return &gormDownloadRepository{}
}

func (r *gormDownloadRepository) Create(ctx context.Context, tx *gorm.DB, download *model.DownloadedContent) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Omit("Content").Create(download)
	if result.Error != nil {
		logger.Error("Error recording download in DB",
			"error", result.Error,
			"user_id", download.UserID.String(),
			"content_id", download.ContentID.String(),
		)
		return translateWriteError("gormDownloadRepository.Create", result.Error)
	}
	return nil
}

func (r *gormDownloadRepository) ListByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.DownloadedContent, error) {
	logger := middleware.GetLogger(ctx)
	var downloads []*model.DownloadedContent
	result := db.WithContext(ctx).
		Preload("Content").
		Where("user_id = ?", userID).
		Order("downloaded_at DESC").
		Find(&downloads)
	if result.Error != nil {
		logger.Error("Error listing downloads by user in DB", "error", result.Error, "user_id", userID.String())
		return nil, fmt.Errorf("gormDownloadRepository.ListByUser: %w", result.Error)
	}
	return downloads, nil
}

func (r *gormDownloadRepository) Delete(ctx context.Context, tx *gorm.DB, userID, downloadID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Where("id = ? AND user_id = ?", downloadID, userID).Delete(&model.DownloadedContent{})
	if result.Error != nil {
		logger.Error("Error deleting download in DB", "error", result.Error, "download_id", downloadID.String())
		return fmt.Errorf("gormDownloadRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// DeleteAllByUser は削除件数と解放されたバイト数を返す
func (r *gormDownloadRepository) DeleteAllByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, int64, error) {
	logger := middleware.GetLogger(ctx)

	var freed int64
	err := tx.WithContext(ctx).Model(&model.DownloadedContent{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(size_bytes), 0)").
		Scan(&freed).Error
	if err != nil {
		logger.Error("Error summing download sizes in DB", "error", err, "user_id", userID.String())
		return 0, 0, fmt.Errorf("gormDownloadRepository.DeleteAllByUser: %w", err)
	}

	result := tx.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.DownloadedContent{})
	if result.Error != nil {
		logger.Error("Error clearing downloads in DB", "error", result.Error, "user_id", userID.String())
		return 0, 0, fmt.Errorf("gormDownloadRepository.DeleteAllByUser: %w", result.Error)
	}
	return result.RowsAffected, freed, nil
}

func (r *gormDownloadRepository) DeleteOlderThan(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error) {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Where("downloaded_at < ?", cutoff).Delete(&model.DownloadedContent{})
	if result.Error != nil {
		logger.Error("Error pruning downloads in DB", "error", result.Error, "cutoff", cutoff)
		return 0, fmt.Errorf("gormDownloadRepository.DeleteOlderThan: %w", result.Error)
	}
	return result.RowsAffected, nil
}
