//go:generate mockery --name IdentityRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"eduafri/internal/middleware"
	"eduafri/internal/model"

	"gorm.io/gorm"
)

type IdentityRepository interface {
	Create(ctx context.Context, tx *gorm.DB, identity *model.Identity) error
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*model.Identity, error)
}

type gormIdentityRepository struct{}

func NewGormIdentityRepository() IdentityRepository {
	return &gormIdentityRepository{}
}

func (r *gormIdentityRepository) Create(ctx context.Context, tx *gorm.DB, identity *model.Identity) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(identity)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			logger.Warn("Attempted to register an existing email")
			return model.ErrConflict
		}
		logger.Error("Error creating identity in DB", "error", result.Error, "user_id", identity.UserID.String())
		return fmt.Errorf("gormIdentityRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormIdentityRepository) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*model.Identity, error) {
	logger := middleware.GetLogger(ctx)
	var identity model.Identity
	result := db.WithContext(ctx).Where("email = ?", email).First(&identity)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding identity by email in DB", "error", result.Error)
		return nil, fmt.Errorf("gormIdentityRepository.FindByEmail: %w", result.Error)
	}
	return &identity, nil
}
