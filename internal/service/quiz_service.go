//go:generate mockery --name QuizService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"math"
	"time"

	"eduafri/internal/middleware"
	"eduafri/internal/model"
	"eduafri/internal/repository"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuizService interface {
	ListQuestions(ctx context.Context, quizID uuid.UUID) ([]*model.Question, error)
	GetQuestion(ctx context.Context, questionID uuid.UUID) (*model.Question, error)
	CreateQuestion(ctx context.Context, quizID uuid.UUID, req *model.QuestionRequest) (*model.Question, error)
	UpdateQuestion(ctx context.Context, questionID uuid.UUID, req *model.QuestionRequest) (*model.Question, error)
	DeleteQuestion(ctx context.Context, questionID uuid.UUID) error
	Submit(ctx context.Context, userID uuid.UUID, req *model.SubmitQuizRequest) (*model.QuizSubmission, error)
	ListResults(ctx context.Context, userID uuid.UUID, quizID *uuid.UUID) ([]*model.UserQuizResult, error)
}

type quizService struct {
	db             *gorm.DB
	contentRepo    repository.ContentRepository
	questionRepo   repository.QuestionRepository
	quizResultRepo repository.QuizResultRepository
}

func NewQuizService(
	db *gorm.DB,
	contentRepo repository.ContentRepository,
	questionRepo repository.QuestionRepository,
	quizResultRepo repository.QuizResultRepository,
) QuizService {
	return &quizService{
		db:             db,
		contentRepo:    contentRepo,
		questionRepo:   questionRepo,
		quizResultRepo: quizResultRepo,
	}
}

func (s *quizService) ListQuestions(ctx context.Context, quizID uuid.UUID) ([]*model.Question, error) {
	if _, err := s.contentRepo.FindByIDAndType(ctx, s.db, quizID, model.ContentTypeQuiz); err != nil {
		return nil, notFoundOrInternal(err, "QUIZ_NOT_FOUND", "Quiz not found.")
	}
	questions, err := s.questionRepo.ListByQuiz(ctx, s.db, quizID)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load questions.", "", err)
	}
	if questions == nil {
		questions = []*model.Question{}
	}
	return questions, nil
}

func (s *quizService) GetQuestion(ctx context.Context, questionID uuid.UUID) (*model.Question, error) {
	question, err := s.questionRepo.FindByID(ctx, s.db, questionID)
	if err != nil {
		return nil, notFoundOrInternal(err, "QUESTION_NOT_FOUND", "Question not found.")
	}
	return question, nil
}

// validateAnswerIndex は correct_answer が選択肢の範囲内かを確認する
func validateAnswerIndex(req *model.QuestionRequest) error {
	if req.CorrectAnswer == nil || *req.CorrectAnswer < 0 || *req.CorrectAnswer >= len(req.Options) {
		return model.NewAppError("INVALID_CORRECT_ANSWER", "correct_answer must index into options.", "correct_answer", model.ErrInvalidInput)
	}
	return nil
}

func (s *quizService) CreateQuestion(ctx context.Context, quizID uuid.UUID, req *model.QuestionRequest) (*model.Question, error) {
	logger := middleware.GetLogger(ctx)
	if err := validateAnswerIndex(req); err != nil {
		return nil, err
	}

	question := &model.Question{
		ID:            uuid.New(),
		QuizID:        quizID,
		QuestionText:  req.QuestionText,
		Options:       datatypes.JSONSlice[string](req.Options),
		CorrectAnswer: *req.CorrectAnswer,
		Explanation:   req.Explanation,
		Position:      req.Position,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.contentRepo.FindByIDAndType(ctx, tx, quizID, model.ContentTypeQuiz); err != nil {
			return notFoundOrInternal(err, "QUIZ_NOT_FOUND", "Quiz not found.")
		}
		if err := s.questionRepo.Create(ctx, tx, question); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to create the question.", "", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Question created", "question_id", question.ID.String(), "quiz_id", quizID.String())
	return question, nil
}

func (s *quizService) UpdateQuestion(ctx context.Context, questionID uuid.UUID, req *model.QuestionRequest) (*model.Question, error) {
	logger := middleware.GetLogger(ctx)
	if err := validateAnswerIndex(req); err != nil {
		return nil, err
	}

	var question *model.Question
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		question, err = s.questionRepo.FindByID(ctx, tx, questionID)
		if err != nil {
			return notFoundOrInternal(err, "QUESTION_NOT_FOUND", "Question not found.")
		}
		question.QuestionText = req.QuestionText
		question.Options = datatypes.JSONSlice[string](req.Options)
		question.CorrectAnswer = *req.CorrectAnswer
		question.Explanation = req.Explanation
		question.Position = req.Position
		if err := s.questionRepo.Update(ctx, tx, question); err != nil {
			return notFoundOrInternal(err, "QUESTION_NOT_FOUND", "Question not found.")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Question updated", "question_id", questionID.String())
	return question, nil
}

func (s *quizService) DeleteQuestion(ctx context.Context, questionID uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.questionRepo.Delete(ctx, tx, questionID)
	})
	if err != nil {
		return notFoundOrInternal(err, "QUESTION_NOT_FOUND", "Question not found.")
	}
	middleware.GetLogger(ctx).Info("Question deleted", "question_id", questionID.String())
	return nil
}

// ScoreAnswers は設問順に回答を照合する。回答の不足・超過、範囲外の値は不正解として扱う。
func ScoreAnswers(questions []*model.Question, answers []int) (int, []*model.QuestionOutcome) {
	score := 0
	outcomes := make([]*model.QuestionOutcome, 0, len(questions))
	for i, q := range questions {
		selected := -1
		if i < len(answers) {
			selected = answers[i]
		}
		correct := selected >= 0 && selected == q.CorrectAnswer
		if correct {
			score++
		}
		outcomes = append(outcomes, &model.QuestionOutcome{
			QuestionID:    q.ID,
			Selected:      selected,
			CorrectAnswer: q.CorrectAnswer,
			Correct:       correct,
			Explanation:   q.Explanation,
		})
	}
	return score, outcomes
}

// Percentage は 0..100 に丸めた正答率を返す。設問がなければ 0。
func Percentage(score, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(score) * 100 / float64(total)))
}

// Submit は採点して user_quiz_results に1行保存する
func (s *quizService) Submit(ctx context.Context, userID uuid.UUID, req *model.SubmitQuizRequest) (*model.QuizSubmission, error) {
	logger := middleware.GetLogger(ctx)
	var submission *model.QuizSubmission

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.contentRepo.FindByIDAndType(ctx, tx, req.QuizID, model.ContentTypeQuiz); err != nil {
			return notFoundOrInternal(err, "QUIZ_NOT_FOUND", "Quiz not found.")
		}
		questions, err := s.questionRepo.ListByQuiz(ctx, tx, req.QuizID)
		if err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load questions.", "", err)
		}
		if len(questions) == 0 {
			return model.NewAppError("QUIZ_EMPTY", "This quiz has no questions.", "quiz_id", model.ErrInvalidInput)
		}

		score, outcomes := ScoreAnswers(questions, req.Answers)
		answers := make([]int, len(req.Answers))
		copy(answers, req.Answers)

		result := &model.UserQuizResult{
			ID:             uuid.New(),
			UserID:         userID,
			QuizID:         req.QuizID,
			Score:          score,
			TotalQuestions: len(questions),
			Percentage:     Percentage(score, len(questions)),
			CompletedAt:    time.Now().UTC(),
			Answers:        datatypes.JSONSlice[int](answers),
		}
		if err := s.quizResultRepo.Create(ctx, tx, result); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to save the quiz result.", "", err)
		}
		submission = &model.QuizSubmission{Result: result, Outcomes: outcomes}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Quiz submitted",
		"quiz_id", req.QuizID.String(),
		"score", submission.Result.Score,
		"total", submission.Result.TotalQuestions,
	)
	return submission, nil
}

func (s *quizService) ListResults(ctx context.Context, userID uuid.UUID, quizID *uuid.UUID) ([]*model.UserQuizResult, error) {
	results, err := s.quizResultRepo.ListByUser(ctx, s.db, userID, quizID, 0)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load quiz results.", "", err)
	}
	if results == nil {
		results = []*model.UserQuizResult{}
	}
	return results, nil
}
