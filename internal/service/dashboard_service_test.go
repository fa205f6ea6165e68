package service

import (
	"context"
	"errors"
	"testing"

	"eduafri/internal/model"
	"eduafri/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type dashboardMocks struct {
	profile  *mocks.ProfileRepository
	progress *mocks.ProgressRepository
	download *mocks.DownloadRepository
	results  *mocks.QuizResultRepository
}

func newDashboardMocks(t *testing.T) dashboardMocks {
	return dashboardMocks{
		profile:  mocks.NewProfileRepository(t),
		progress: mocks.NewProgressRepository(t),
		download: mocks.NewDownloadRepository(t),
		results:  mocks.NewQuizResultRepository(t),
	}
}

func Test_dashboardService_GetDashboard(t *testing.T) {
	ctx := context.Background()
	db := setupTxDB(t)
	userID := uuid.New()

	m := newDashboardMocks(t)
	m.profile.On("FindByID", mock.Anything, mock.Anything, userID).Return(&model.Profile{ID: userID}, nil).Once()
	m.progress.On("ListByUser", mock.Anything, mock.Anything, userID).Return([]*model.UserProgress{
		{Completed: true}, {Completed: false}, {Completed: true},
	}, nil).Once()
	m.download.On("ListByUser", mock.Anything, mock.Anything, userID).Return([]*model.DownloadedContent{
		{SizeBytes: 100}, {SizeBytes: 250},
	}, nil).Once()
	m.results.On("ListByUser", mock.Anything, mock.Anything, userID, mock.Anything, dashboardRecentResults).Return([]*model.UserQuizResult{
		{Percentage: 50}, {Percentage: 100}, {Percentage: 75},
	}, nil).Once()

	svc := NewDashboardService(db, m.profile, m.progress, m.download, m.results)
	got, err := svc.GetDashboard(ctx, userID)
	require.NoError(t, err)

	assert.Equal(t, model.DashboardTotals{
		Started:        3,
		Completed:      2,
		Downloads:      2,
		DownloadBytes:  350,
		QuizzesTaken:   3,
		AveragePercent: 75,
	}, got.Totals)
}

func Test_dashboardService_GetDashboard_Errors(t *testing.T) {
	ctx := context.Background()
	db := setupTxDB(t)
	userID := uuid.New()

	tests := []struct {
		name       string
		profileErr error
		listErr    error
		wantErr    error
	}{
		{name: "missing profile", profileErr: model.ErrNotFound, wantErr: model.ErrNotFound},
		{name: "a failing read fails the whole dashboard", listErr: errors.New("db down"), wantErr: errors.New("db down")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newDashboardMocks(t)
			var profile *model.Profile
			if tt.profileErr == nil {
				profile = &model.Profile{ID: userID}
			}
			m.profile.On("FindByID", mock.Anything, mock.Anything, userID).Return(profile, tt.profileErr).Maybe()
			m.progress.On("ListByUser", mock.Anything, mock.Anything, userID).Return(nil, tt.listErr).Maybe()
			m.download.On("ListByUser", mock.Anything, mock.Anything, userID).Return(nil, nil).Maybe()
			m.results.On("ListByUser", mock.Anything, mock.Anything, userID, mock.Anything, mock.Anything).Return(nil, nil).Maybe()

			svc := NewDashboardService(db, m.profile, m.progress, m.download, m.results)
			got, err := svc.GetDashboard(ctx, userID)
			assert.Nil(t, got)
			require.Error(t, err)
			if errors.Is(tt.wantErr, model.ErrNotFound) {
				assert.ErrorIs(t, err, model.ErrNotFound)
			} else {
				assert.Equal(t, "INTERNAL_SERVER_ERROR", err.(*model.AppError).Code)
			}
		})
	}
}

func TestComputeTotals_NoQuizzes(t *testing.T) {
	totals := computeTotals(&model.Dashboard{})
	assert.Zero(t, totals.AveragePercent)
	assert.Zero(t, totals.Started)
}
