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
	"gorm.io/gorm"
)

func Test_progressService_SaveProgress(t *testing.T) {
	ctx := context.Background()
	db := setupTxDB(t)
	userID := uuid.New()
	contentID := uuid.New()
	content := &model.Content{ID: contentID, Type: model.ContentTypeLesson}

	tests := []struct {
		name          string
		percentage    int
		completed     bool
		wantCompleted bool
	}{
		{name: "途中", percentage: 40, wantCompleted: false},
		{name: "100%で完了", percentage: 100, wantCompleted: true},
		{name: "明示的に完了", percentage: 80, completed: true, wantCompleted: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contentRepo := mocks.NewContentRepository(t)
			progressRepo := mocks.NewProgressRepository(t)
			contentRepo.On("FindByID", mock.Anything, mock.AnythingOfType("*gorm.DB"), contentID).Return(content, nil).Once()

			var upserted *model.UserProgress
			progressRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.UserProgress")).
				Run(func(args mock.Arguments) {
					upserted = args.Get(2).(*model.UserProgress)
				}).Return(nil).Once()
			progressRepo.On("FindByUserAndContent", mock.Anything, mock.AnythingOfType("*gorm.DB"), userID, contentID).
				Return(func(context.Context, *gorm.DB, uuid.UUID, uuid.UUID) *model.UserProgress { return upserted }, nil).Once()

			svc := NewProgressService(db, contentRepo, progressRepo)
			pct := tt.percentage
			got, err := svc.SaveProgress(ctx, userID, &model.ProgressRequest{ContentID: contentID, ProgressPercentage: &pct, Completed: tt.completed})
			require.NoError(t, err)
			require.NotNil(t, upserted)
			assert.Equal(t, tt.percentage, upserted.ProgressPercentage)
			assert.Equal(t, tt.wantCompleted, upserted.Completed)
			assert.Equal(t, upserted, got)
		})
	}
}

func Test_progressService_SaveProgress_UnknownContent(t *testing.T) {
	db := setupTxDB(t)
	contentRepo := mocks.NewContentRepository(t)
	progressRepo := mocks.NewProgressRepository(t)
	contentID := uuid.New()
	contentRepo.On("FindByID", mock.Anything, mock.AnythingOfType("*gorm.DB"), contentID).Return(nil, model.ErrNotFound).Once()

	svc := NewProgressService(db, contentRepo, progressRepo)
	pct := 10
	_, err := svc.SaveProgress(context.Background(), uuid.New(), &model.ProgressRequest{ContentID: contentID, ProgressPercentage: &pct})
	assert.ErrorIs(t, err, model.ErrNotFound)
}
