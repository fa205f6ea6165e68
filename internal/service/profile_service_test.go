package service

import (
	"context"
	"testing"

	"eduafri/internal/model"
	"eduafri/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func Test_profileService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	db := setupTxDB(t)
	userID := uuid.New()
	profile := &model.Profile{ID: userID, Username: "amina", Role: model.RoleUser}

	tests := []struct {
		name     string
		req      model.UpdateProfileRequest
		setup    func(profileRepo *mocks.ProfileRepository, languageRepo *mocks.LanguageRepository)
		wantCode string
	}{
		{
			name: "username and preferences",
			req:  model.UpdateProfileRequest{Username: strPtr(" amina2 "), LanguagePreference: strPtr("sw"), DownloadPreference: strPtr(model.DownloadAlways)},
			setup: func(profileRepo *mocks.ProfileRepository, languageRepo *mocks.LanguageRepository) {
				languageRepo.On("Exists", mock.Anything, mock.Anything, "sw").Return(true, nil).Once()
				profileRepo.On("Update", mock.Anything, mock.Anything, userID, map[string]interface{}{
					"username":            "amina2",
					"language_preference": "sw",
					"download_preference": model.DownloadAlways,
				}).Return(nil).Once()
				profileRepo.On("FindByID", mock.Anything, mock.Anything, userID).Return(profile, nil).Once()
			},
		},
		{
			name: "empty request only reads",
			req:  model.UpdateProfileRequest{},
			setup: func(profileRepo *mocks.ProfileRepository, languageRepo *mocks.LanguageRepository) {
				profileRepo.On("FindByID", mock.Anything, mock.Anything, userID).Return(profile, nil).Once()
			},
		},
		{
			name: "unknown language",
			req:  model.UpdateProfileRequest{LanguagePreference: strPtr("xx")},
			setup: func(profileRepo *mocks.ProfileRepository, languageRepo *mocks.LanguageRepository) {
				languageRepo.On("Exists", mock.Anything, mock.Anything, "xx").Return(false, nil).Once()
			},
			wantCode: "UNKNOWN_LANGUAGE",
		},
		{
			name:     "blank username",
			req:      model.UpdateProfileRequest{Username: strPtr("     ")},
			setup:    func(profileRepo *mocks.ProfileRepository, languageRepo *mocks.LanguageRepository) {},
			wantCode: "VALIDATION_ERROR",
		},
		{
			name:     "username too short after trimming",
			req:      model.UpdateProfileRequest{Username: strPtr("  ab  ")},
			setup:    func(profileRepo *mocks.ProfileRepository, languageRepo *mocks.LanguageRepository) {},
			wantCode: "VALIDATION_ERROR",
		},
		{
			name: "taken username",
			req:  model.UpdateProfileRequest{Username: strPtr("taken")},
			setup: func(profileRepo *mocks.ProfileRepository, languageRepo *mocks.LanguageRepository) {
				profileRepo.On("Update", mock.Anything, mock.Anything, userID, mock.Anything).Return(model.ErrConflict).Once()
			},
			wantCode: "DUPLICATE_USERNAME",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profileRepo := mocks.NewProfileRepository(t)
			languageRepo := mocks.NewLanguageRepository(t)
			tt.setup(profileRepo, languageRepo)
			svc := NewProfileService(db, profileRepo, languageRepo)

			got, err := svc.UpdateProfile(ctx, userID, &tt.req)
			if tt.wantCode != "" {
				var appErr *model.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, tt.wantCode, appErr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, profile, got)
		})
	}
}

func Test_profileService_SetRole(t *testing.T) {
	ctx := context.Background()
	db := setupTxDB(t)
	userID := uuid.New()

	profileRepo := mocks.NewProfileRepository(t)
	profileRepo.On("Update", mock.Anything, mock.Anything, userID, map[string]interface{}{"role": model.RoleAdmin}).Return(nil).Once()
	profileRepo.On("FindByID", mock.Anything, mock.Anything, userID).Return(&model.Profile{ID: userID, Role: model.RoleAdmin}, nil).Once()

	svc := NewProfileService(db, profileRepo, mocks.NewLanguageRepository(t))
	got, err := svc.SetRole(ctx, &model.SetRoleRequest{UserID: userID, Role: model.RoleAdmin})
	require.NoError(t, err)
	assert.True(t, got.IsAdmin())

	missing := uuid.New()
	profileRepo.On("Update", mock.Anything, mock.Anything, missing, mock.Anything).Return(model.ErrNotFound).Once()
	_, err = svc.SetRole(ctx, &model.SetRoleRequest{UserID: missing, Role: model.RoleUser})
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func Test_profileService_ListUsers(t *testing.T) {
	ctx := context.Background()
	db := setupTxDB(t)
	profileRepo := mocks.NewProfileRepository(t)
	profileRepo.On("List", mock.Anything, mock.Anything, model.RoleAdmin).Return(nil, nil).Once()
	svc := NewProfileService(db, profileRepo, mocks.NewLanguageRepository(t))

	got, err := svc.ListUsers(ctx, model.RoleAdmin)
	require.NoError(t, err)
	assert.NotNil(t, got)

	_, err = svc.ListUsers(ctx, "owner")
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}
