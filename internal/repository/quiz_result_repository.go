//go:generate mockery --name QuizResultRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"fmt"

	"eduafri/internal/middleware"
	"eduafri/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuizResultRepository interface {
	Create(ctx context.Context, tx *gorm.DB, result *model.UserQuizResult) error
	// ListByUser は quizID が nil なら全クイズの結果を返す。limit <= 0 は無制限。
	ListByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, quizID *uuid.UUID, limit int) ([]*model.UserQuizResult, error)
}

type gormQuizResultRepository struct{}

func NewGormQuizResultRepository() QuizResultRepository {
	return &gormQuizResultRepository{}
}

func (r *gormQuizResultRepository) Create(ctx context.Context, tx *gorm.DB, quizResult *model.UserQuizResult) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(quizResult)
	if result.Error != nil {
		logger.Error("Error saving quiz result in DB",
			"error", result.Error,
			"user_id", quizResult.UserID.String(),
			"quiz_id", quizResult.QuizID.String(),
		)
		return translateWriteError("gormQuizResultRepository.Create", result.Error)
	}
	return nil
}

func (r *gormQuizResultRepository) ListByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, quizID *uuid.UUID, limit int) ([]*model.UserQuizResult, error) {
	logger := middleware.GetLogger(ctx)
	query := db.WithContext(ctx).Where("user_id = ?", userID)
	if quizID != nil {
		query = query.Where("quiz_id = ?", *quizID)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	var results []*model.UserQuizResult
	if err := query.Order("completed_at DESC").Find(&results).Error; err != nil {
		logger.Error("Error listing quiz results in DB", "error", err, "user_id", userID.String())
		return nil, fmt.Errorf("gormQuizResultRepository.ListByUser: %w", err)
	}
	return results, nil
}
