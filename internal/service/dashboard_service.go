//go:generate mockery --name DashboardService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"

	"eduafri/internal/model"
	"eduafri/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const dashboardRecentResults = 10

type DashboardService interface {
	GetDashboard(ctx context.Context, userID uuid.UUID) (*model.Dashboard, error)
}

type dashboardService struct {
	db             *gorm.DB
	profileRepo    repository.ProfileRepository
	progressRepo   repository.ProgressRepository
	downloadRepo   repository.DownloadRepository
	quizResultRepo repository.QuizResultRepository
}

func NewDashboardService(
	db *gorm.DB,
	profileRepo repository.ProfileRepository,
	progressRepo repository.ProgressRepository,
	downloadRepo repository.DownloadRepository,
	quizResultRepo repository.QuizResultRepository,
) DashboardService {
	return &dashboardService{
		db:             db,
		profileRepo:    profileRepo,
		progressRepo:   progressRepo,
		downloadRepo:   downloadRepo,
		quizResultRepo: quizResultRepo,
	}
}

// GetDashboard は4つの読み込みを並行に行い、どれか1つでも失敗したら全体を失敗にする
func (s *dashboardService) GetDashboard(ctx context.Context, userID uuid.UUID) (*model.Dashboard, error) {
	dashboard := &model.Dashboard{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		dashboard.Profile, err = s.profileRepo.FindByID(gctx, s.db, userID)
		return err
	})
	g.Go(func() error {
		var err error
		dashboard.Progress, err = s.progressRepo.ListByUser(gctx, s.db, userID)
		return err
	})
	g.Go(func() error {
		var err error
		dashboard.Downloads, err = s.downloadRepo.ListByUser(gctx, s.db, userID)
		return err
	})
	g.Go(func() error {
		var err error
		dashboard.QuizResults, err = s.quizResultRepo.ListByUser(gctx, s.db, userID, nil, dashboardRecentResults)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, notFoundOrInternal(err, "PROFILE_NOT_FOUND", "Profile not found.")
	}

	if dashboard.Progress == nil {
		dashboard.Progress = []*model.UserProgress{}
	}
	if dashboard.Downloads == nil {
		dashboard.Downloads = []*model.DownloadedContent{}
	}
	if dashboard.QuizResults == nil {
		dashboard.QuizResults = []*model.UserQuizResult{}
	}
	dashboard.Totals = computeTotals(dashboard)
	return dashboard, nil
}

func computeTotals(d *model.Dashboard) model.DashboardTotals {
	var totals model.DashboardTotals
	for _, p := range d.Progress {
		totals.Started++
		if p.Completed {
			totals.Completed++
		}
	}
	for _, dl := range d.Downloads {
		totals.Downloads++
		totals.DownloadBytes += dl.SizeBytes
	}
	sum := 0
	for _, r := range d.QuizResults {
		totals.QuizzesTaken++
		sum += r.Percentage
	}
	if totals.QuizzesTaken > 0 {
		totals.AveragePercent = sum / totals.QuizzesTaken
	}
	return totals
}
