package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Question struct {
	ID            uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	QuizID        uuid.UUID                   `gorm:"type:uuid;not null;index" json:"quiz_id"`
	QuestionText  string                      `gorm:"not null" json:"question_text"`
	Options       datatypes.JSONSlice[string] `gorm:"not null" json:"options"`
	CorrectAnswer int                         `gorm:"not null" json:"correct_answer"`
	Explanation   string                      `json:"explanation,omitempty"`
	Position      int                         `gorm:"not null;default:0" json:"position"`
	CreatedAt     time.Time                   `json:"created_at"`
	UpdatedAt     time.Time                   `json:"updated_at"`
}

func (Question) TableName() string {
	return "questions"
}

// QuestionView is a question as a learner sees it before answering.
type QuestionView struct {
	ID           uuid.UUID `json:"id"`
	QuizID       uuid.UUID `json:"quiz_id"`
	QuestionText string    `json:"question_text"`
	Options      []string  `json:"options"`
	Position     int       `json:"position"`
}

func (q *Question) View() *QuestionView {
	return &QuestionView{
		ID:           q.ID,
		QuizID:       q.QuizID,
		QuestionText: q.QuestionText,
		Options:      []string(q.Options),
		Position:     q.Position,
	}
}

type QuestionRequest struct {
	QuestionText  string   `json:"question_text" validate:"required,min=1"`
	Options       []string `json:"options" validate:"required,min=2,dive,required"`
	CorrectAnswer *int     `json:"correct_answer" validate:"required,min=0"`
	Explanation   string   `json:"explanation"`
	Position      int      `json:"position" validate:"min=0"`
}
