//go:generate mockery --name ProfileRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"eduafri/internal/middleware"
	"eduafri/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileRepository interface {
	Create(ctx context.Context, tx *gorm.DB, profile *model.Profile) error
	FindByID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.Profile, error)
	List(ctx context.Context, db *gorm.DB, role string) ([]*model.Profile, error)
	Update(ctx context.Context, tx *gorm.DB, userID uuid.UUID, updates map[string]interface{}) error
}

type gormProfileRepository struct{}

func NewGormProfileRepository() ProfileRepository {
	return &gormProfileRepository{}
}

func (r *gormProfileRepository) Create(ctx context.Context, tx *gorm.DB, profile *model.Profile) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(profile)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			logger.Warn("Attempted to create a profile with a duplicate username", "username", profile.Username)
			return model.ErrConflict
		}
		logger.Error("Error creating profile in DB", "error", result.Error, "user_id", profile.ID.String())
		return fmt.Errorf("gormProfileRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormProfileRepository) FindByID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.Profile, error) {
	logger := middleware.GetLogger(ctx)
	var profile model.Profile
	result := db.WithContext(ctx).Where("id = ?", userID).First(&profile)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding profile by ID in DB", "error", result.Error, "user_id", userID.String())
		return nil, fmt.Errorf("gormProfileRepository.FindByID: %w", result.Error)
	}
	return &profile, nil
}

// List は role が空なら全件を返す
func (r *gormProfileRepository) List(ctx context.Context, db *gorm.DB, role string) ([]*model.Profile, error) {
	logger := middleware.GetLogger(ctx)
	query := db.WithContext(ctx)
	if role != "" {
		query = query.Where("role = ?", role)
	}
	var profiles []*model.Profile
	if err := query.Order("created_at ASC").Find(&profiles).Error; err != nil {
		logger.Error("Error listing profiles in DB", "error", err, "role", role)
		return nil, fmt.Errorf("gormProfileRepository.List: %w", err)
	}
	return profiles, nil
}

func (r *gormProfileRepository) Update(ctx context.Context, tx *gorm.DB, userID uuid.UUID, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Model(&model.Profile{}).Where("id = ?", userID).Updates(updates)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return model.ErrConflict
		}
		logger.Error("Error updating profile in DB", "error", result.Error, "user_id", userID.String())
		return fmt.Errorf("gormProfileRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
