package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type UserQuizResult struct {
	ID             uuid.UUID                `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID                `gorm:"type:uuid;not null;index" json:"user_id"`
	QuizID         uuid.UUID                `gorm:"type:uuid;not null;index" json:"quiz_id"`
	Score          int                      `gorm:"not null" json:"score"`
	TotalQuestions int                      `gorm:"not null" json:"total_questions"`
	Percentage     int                      `gorm:"not null" json:"percentage"`
	CompletedAt    time.Time                `gorm:"not null" json:"completed_at"`
	Answers        datatypes.JSONSlice[int] `gorm:"not null" json:"answers"`
}

func (UserQuizResult) TableName() string {
	return "user_quiz_results"
}

// SubmitQuizRequest carries one selected option index per question, in
// question order. -1 marks an unanswered question.
type SubmitQuizRequest struct {
	QuizID  uuid.UUID `json:"quiz_id" validate:"required"`
	Answers []int     `json:"answers" validate:"required,dive,min=-1"`
}

type QuestionOutcome struct {
	QuestionID    uuid.UUID `json:"question_id"`
	Selected      int       `json:"selected"`
	CorrectAnswer int       `json:"correct_answer"`
	Correct       bool      `json:"correct"`
	Explanation   string    `json:"explanation,omitempty"`
}

type QuizSubmission struct {
	Result   *UserQuizResult    `json:"result"`
	Outcomes []*QuestionOutcome `json:"outcomes"`
}
