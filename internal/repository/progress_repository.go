//go:generate mockery --name ProgressRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"eduafri/internal/middleware"
	"eduafri/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository interface {
	Upsert(ctx context.Context, tx *gorm.DB, progress *model.UserProgress) error
	FindByUserAndContent(ctx context.Context, db *gorm.DB, userID, contentID uuid.UUID) (*model.UserProgress, error)
	ListByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.UserProgress, error)
}

type gormProgressRepository struct{}

func NewGormProgressRepository() ProgressRepository {
	return &gormProgressRepository{}
}

// Upsert は (user_id, content_id) を競合キーとして挿入または更新する。
// 同時書き込みはストアのupsertに任せる。
func (r *gormProgressRepository) Upsert(ctx context.Context, tx *gorm.DB, progress *model.UserProgress) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "content_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"progress_percentage", "completed", "last_accessed", "updated_at"}),
	}).Create(progress)
	if result.Error != nil {
		logger.Error("Error upserting progress in DB",
			"error", result.Error,
			"user_id", progress.UserID.String(),
			"content_id", progress.ContentID.String(),
		)
		return translateWriteError("gormProgressRepository.Upsert", result.Error)
	}
	return nil
}

func (r *gormProgressRepository) FindByUserAndContent(ctx context.Context, db *gorm.DB, userID, contentID uuid.UUID) (*model.UserProgress, error) {
	logger := middleware.GetLogger(ctx)
	var progress model.UserProgress
	result := db.WithContext(ctx).Where("user_id = ? AND content_id = ?", userID, contentID).First(&progress)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding progress in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"content_id", contentID.String(),
		)
		return nil, fmt.Errorf("gormProgressRepository.FindByUserAndContent: %w", result.Error)
	}
	return &progress, nil
}

// ListByUser は関連するContentもPreloadして、最終アクセスの新しい順に返す
func (r *gormProgressRepository) ListByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.UserProgress, error) {
	logger := middleware.GetLogger(ctx)
	var progresses []*model.UserProgress
	result := db.WithContext(ctx).
		Preload("Content").
		Where("user_id = ?", userID).
		Order("last_accessed DESC").
		Find(&progresses)
	if result.Error != nil {
		logger.Error("Error listing progress by user in DB", "error", result.Error, "user_id", userID.String())
		return nil, fmt.Errorf("gormProgressRepository.ListByUser: %w", result.Error)
	}
	return progresses, nil
}
