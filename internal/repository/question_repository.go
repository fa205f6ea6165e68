//go:generate mockery --name QuestionRepository --output ./mocks --outpkg mocks --case=underscore
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

type QuestionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, question *model.Question) error
	FindByID(ctx context.Context, db *gorm.DB, questionID uuid.UUID) (*model.Question, error)
	ListByQuiz(ctx context.Context, db *gorm.DB, quizID uuid.UUID) ([]*model.Question, error)
	Update(ctx context.Context, tx *gorm.DB, question *model.Question) error
	Delete(ctx context.Context, tx *gorm.DB, questionID uuid.UUID) error
}

type gormQuestionRepository struct{}

func NewGormQuestionRepository() QuestionRepository {
	return &gormQuestionRepository{}
}

func (r *gormQuestionRepository) Create(ctx context.Context, tx *gorm.DB, question *model.Question) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(question)
	if result.Error != nil {
		logger.Error("Error creating question in DB", "error", result.Error, "quiz_id", question.QuizID.String())
		return translateWriteError("gormQuestionRepository.Create", result.Error)
	}
	return nil
}

func (r *gormQuestionRepository) FindByID(ctx context.Context, db *gorm.DB, questionID uuid.UUID) (*model.Question, error) {
	logger := middleware.GetLogger(ctx)
	var question model.Question
	result := db.WithContext(ctx).Where("id = ?", questionID).First(&question)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding question by ID in DB", "error", result.Error, "question_id", questionID.String())
		return nil, fmt.Errorf("gormQuestionRepository.FindByID: %w", result.Error)
	}
	return &question, nil
}

// ListByQuiz は採点順 (position, created_at) で設問を返す
func (r *gormQuestionRepository) ListByQuiz(ctx context.Context, db *gorm.DB, quizID uuid.UUID) ([]*model.Question, error) {
	logger := middleware.GetLogger(ctx)
	var questions []*model.Question
	result := db.WithContext(ctx).Where("quiz_id = ?", quizID).Order("position ASC, created_at ASC").Find(&questions)
	if result.Error != nil {
		logger.Error("Error listing questions by quiz in DB", "error", result.Error, "quiz_id", quizID.String())
		return nil, fmt.Errorf("gormQuestionRepository.ListByQuiz: %w", result.Error)
	}
	return questions, nil
}

func (r *gormQuestionRepository) Update(ctx context.Context, tx *gorm.DB, question *model.Question) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Model(question).
		Select("question_text", "options", "correct_answer", "explanation", "position", "updated_at").
		Updates(question)
	if result.Error != nil {
		logger.Error("Error updating question in DB", "error", result.Error, "question_id", question.ID.String())
		return fmt.Errorf("gormQuestionRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormQuestionRepository) Delete(ctx context.Context, tx *gorm.DB, questionID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Where("id = ?", questionID).Delete(&model.Question{})
	if result.Error != nil {
		logger.Error("Error deleting question in DB", "error", result.Error, "question_id", questionID.String())
		return fmt.Errorf("gormQuestionRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
