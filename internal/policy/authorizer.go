// Package policy holds the single authorization decision shared by the admin
// API middleware and the admin page gate.
package policy

import (
	"context"
	"errors"

	"eduafri/internal/model"
	"eduafri/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Authorizer interface {
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
}

type profileAuthorizer struct {
	db          *gorm.DB
	profileRepo repository.ProfileRepository
}

// NewProfileAuthorizer は profiles.role == "admin" を権限境界とする Authorizer を返す
func NewProfileAuthorizer(db *gorm.DB, profileRepo repository.ProfileRepository) Authorizer {
	return &profileAuthorizer{db: db, profileRepo: profileRepo}
}

// IsAdmin はプロフィールが存在しない場合 false を返す (エラーにはしない)
func (a *profileAuthorizer) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	profile, err := a.profileRepo.FindByID(ctx, a.db, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return profile.IsAdmin(), nil
}
