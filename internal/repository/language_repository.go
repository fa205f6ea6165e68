//go:generate mockery --name LanguageRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"fmt"

	"eduafri/internal/middleware"
	"eduafri/internal/model"

	"gorm.io/gorm"
)

type LanguageRepository interface {
	List(ctx context.Context, db *gorm.DB) ([]*model.Language, error)
	Exists(ctx context.Context, db *gorm.DB, code string) (bool, error)
}

type gormLanguageRepository struct{}

func NewGormLanguageRepository() LanguageRepository {
	return &gormLanguageRepository{}
}

func (r *gormLanguageRepository) List(ctx context.Context, db *gorm.DB) ([]*model.Language, error) {
	logger := middleware.GetLogger(ctx)
	var languages []*model.Language
	if err := db.WithContext(ctx).Order("name ASC").Find(&languages).Error; err != nil {
		logger.Error("Error listing languages in DB", "error", err)
		return nil, fmt.Errorf("gormLanguageRepository.List: %w", err)
	}
	return languages, nil
}

func (r *gormLanguageRepository) Exists(ctx context.Context, db *gorm.DB, code string) (bool, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	if err := db.WithContext(ctx).Model(&model.Language{}).Where("code = ?", code).Count(&count).Error; err != nil {
		logger.Error("Error checking language existence in DB", "error", err, "code", code)
		return false, fmt.Errorf("gormLanguageRepository.Exists: %w", err)
	}
	return count > 0, nil
}
