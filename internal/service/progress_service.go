//go:generate mockery --name ProgressService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"time"

	"eduafri/internal/middleware"
	"eduafri/internal/model"
	"eduafri/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProgressService interface {
	ListProgress(ctx context.Context, userID uuid.UUID) ([]*model.UserProgress, error)
	SaveProgress(ctx context.Context, userID uuid.UUID, req *model.ProgressRequest) (*model.UserProgress, error)
}

type progressService struct {
	db           *gorm.DB
	contentRepo  repository.ContentRepository
	progressRepo repository.ProgressRepository
}

func NewProgressService(db *gorm.DB, contentRepo repository.ContentRepository, progressRepo repository.ProgressRepository) ProgressService {
	return &progressService{
		db:           db,
		contentRepo:  contentRepo,
		progressRepo: progressRepo,
	}
}

func (s *progressService) ListProgress(ctx context.Context, userID uuid.UUID) ([]*model.UserProgress, error) {
	progresses, err := s.progressRepo.ListByUser(ctx, s.db, userID)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load progress.", "", err)
	}
	if progresses == nil {
		progresses = []*model.UserProgress{}
	}
	return progresses, nil
}

// SaveProgress は (user_id, content_id) ごとに1行を保つ。100% に達したら完了扱い。
func (s *progressService) SaveProgress(ctx context.Context, userID uuid.UUID, req *model.ProgressRequest) (*model.UserProgress, error) {
	logger := middleware.GetLogger(ctx)
	percentage := *req.ProgressPercentage

	var saved *model.UserProgress
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.contentRepo.FindByID(ctx, tx, req.ContentID); err != nil {
			return notFoundOrInternal(err, "CONTENT_NOT_FOUND", "Content not found.")
		}

		now := time.Now().UTC()
		progress := &model.UserProgress{
			ID:                 uuid.New(),
			UserID:             userID,
			ContentID:          req.ContentID,
			ProgressPercentage: percentage,
			Completed:          req.Completed || percentage >= 100,
			LastAccessed:       now,
		}
		if err := s.progressRepo.Upsert(ctx, tx, progress); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to save progress.", "", err)
		}

		var err error
		saved, err = s.progressRepo.FindByUserAndContent(ctx, tx, userID, req.ContentID)
		if err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load saved progress.", "", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Progress saved",
		"content_id", req.ContentID.String(),
		"progress_percentage", saved.ProgressPercentage,
		"completed", saved.Completed,
	)
	return saved, nil
}
