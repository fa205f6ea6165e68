// internal/model/content.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type ContentType string

const (
	ContentTypeCourse ContentType = "course"
	ContentTypeLesson ContentType = "lesson"
	ContentTypeQuiz   ContentType = "quiz"
)

func (t ContentType) Valid() bool {
	switch t {
	case ContentTypeCourse, ContentTypeLesson, ContentTypeQuiz:
		return true
	}
	return false
}

// Content is a course, lesson or quiz. Lessons point at their course,
// quizzes may point at a course and/or a lesson.
type Content struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string      `gorm:"not null" json:"title"`
	Description string      `json:"description"`
	Body        string      `json:"body,omitempty"`
	Type        ContentType `gorm:"type:varchar(16);not null;index" json:"type"`
	Language    string      `gorm:"type:varchar(8);not null;index" json:"language"`
	Subject     string      `gorm:"index" json:"subject"`
	GradeLevel  string      `json:"grade_level"`
	CourseID    *uuid.UUID  `gorm:"type:uuid;index" json:"course_id,omitempty"`
	LessonID    *uuid.UUID  `gorm:"type:uuid;index" json:"lesson_id,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func (Content) TableName() string {
	return "content"
}

// ContentFilter mirrors the query string of GET /api/content.
type ContentFilter struct {
	Type     ContentType
	Language string
	Subject  string
	Query    string
	CourseID *uuid.UUID
	LessonID *uuid.UUID
}

// ContentDetail is a content row plus its children: lessons and quizzes of
// a course, quizzes of a lesson, questions of a quiz.
type ContentDetail struct {
	*Content
	Lessons   []*Content      `json:"lessons,omitempty"`
	Quizzes   []*Content      `json:"quizzes,omitempty"`
	Questions []*QuestionView `json:"questions,omitempty"`
}

type ContentRequest struct {
	Title       string     `json:"title" validate:"required,min=1,max=200"`
	Description string     `json:"description" validate:"max=2000"`
	Body        string     `json:"body"`
	Language    string     `json:"language" validate:"required,min=2,max=8"`
	Subject     string     `json:"subject" validate:"max=100"`
	GradeLevel  string     `json:"grade_level" validate:"max=50"`
	CourseID    *uuid.UUID `json:"course_id"`
	LessonID    *uuid.UUID `json:"lesson_id"`
}
