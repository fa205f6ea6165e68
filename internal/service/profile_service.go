//go:generate mockery --name ProfileService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"eduafri/internal/middleware"
	"eduafri/internal/model"
	"eduafri/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *model.UpdateProfileRequest) (*model.Profile, error)
	SetRole(ctx context.Context, req *model.SetRoleRequest) (*model.Profile, error)
	ListUsers(ctx context.Context, role string) ([]*model.Profile, error)
}

type profileService struct {
	db           *gorm.DB
	profileRepo  repository.ProfileRepository
	languageRepo repository.LanguageRepository
}

func NewProfileService(db *gorm.DB, profileRepo repository.ProfileRepository, languageRepo repository.LanguageRepository) ProfileService {
	return &profileService{
		db:           db,
		profileRepo:  profileRepo,
		languageRepo: languageRepo,
	}
}

func (s *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	profile, err := s.profileRepo.FindByID(ctx, s.db, userID)
	if err != nil {
		return nil, notFoundOrInternal(err, "PROFILE_NOT_FOUND", "Profile not found.")
	}
	return profile, nil
}

// UpdateProfile は role を変更しない。role は SetRole でのみ変わる。
func (s *profileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *model.UpdateProfileRequest) (*model.Profile, error) {
	logger := middleware.GetLogger(ctx)
	updates := map[string]interface{}{}
	if req.Username != nil {
		username, err := normalizeUsername(*req.Username)
		if err != nil {
			return nil, err
		}
		updates["username"] = username
	}
	if req.LanguagePreference != nil {
		updates["language_preference"] = *req.LanguagePreference
	}
	if req.DownloadPreference != nil {
		updates["download_preference"] = *req.DownloadPreference
	}

	var profile *model.Profile
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.LanguagePreference != nil {
			exists, err := s.languageRepo.Exists(ctx, tx, *req.LanguagePreference)
			if err != nil {
				return model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
			}
			if !exists {
				return model.NewAppError("UNKNOWN_LANGUAGE", "Unsupported language.", "language_preference", model.ErrInvalidInput)
			}
		}
		if len(updates) > 0 {
			if err := s.profileRepo.Update(ctx, tx, userID, updates); err != nil {
				if errors.Is(err, model.ErrConflict) {
					return model.NewAppError("DUPLICATE_USERNAME", "This username is already taken.", "username", model.ErrConflict)
				}
				return notFoundOrInternal(err, "PROFILE_NOT_FOUND", "Profile not found.")
			}
		}
		var err error
		profile, err = s.profileRepo.FindByID(ctx, tx, userID)
		if err != nil {
			return notFoundOrInternal(err, "PROFILE_NOT_FOUND", "Profile not found.")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Profile updated", "fields", len(updates))
	return profile, nil
}

func (s *profileService) SetRole(ctx context.Context, req *model.SetRoleRequest) (*model.Profile, error) {
	logger := middleware.GetLogger(ctx)
	var profile *model.Profile
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.profileRepo.Update(ctx, tx, req.UserID, map[string]interface{}{"role": req.Role}); err != nil {
			return notFoundOrInternal(err, "PROFILE_NOT_FOUND", "Profile not found.")
		}
		var err error
		profile, err = s.profileRepo.FindByID(ctx, tx, req.UserID)
		if err != nil {
			return notFoundOrInternal(err, "PROFILE_NOT_FOUND", "Profile not found.")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Role changed", "target_user_id", req.UserID.String(), "role", req.Role)
	return profile, nil
}

func (s *profileService) ListUsers(ctx context.Context, role string) ([]*model.Profile, error) {
	if role != "" && role != model.RoleUser && role != model.RoleAdmin {
		return nil, model.NewAppError("INVALID_ROLE", "role must be user or admin.", "role", model.ErrInvalidInput)
	}
	profiles, err := s.profileRepo.List(ctx, s.db, role)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load users.", "", err)
	}
	if profiles == nil {
		profiles = []*model.Profile{}
	}
	return profiles, nil
}

// normalizeUsername は前後の空白を落としてから長さを確認し直す
func normalizeUsername(raw string) (string, error) {
	username := strings.TrimSpace(raw)
	if n := utf8.RuneCountInString(username); n < 3 || n > 50 {
		return "", model.NewAppError("VALIDATION_ERROR", "username must be between 3 and 50 characters.", "username", model.ErrInvalidInput)
	}
	return username, nil
}
