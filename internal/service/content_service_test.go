package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"eduafri/internal/model"
	"eduafri/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

// memCache は JSON で値を保持するテスト用キャッシュ
type memCache struct {
	items       map[string][]byte
	invalidated int
	failReads   bool
}

func newMemCache() *memCache {
	return &memCache{items: map[string][]byte{}}
}

func (c *memCache) Get(_ context.Context, key string, dst interface{}) (bool, error) {
	if c.failReads {
		return false, errors.New("cache unavailable")
	}
	raw, ok := c.items[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (c *memCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.items[key] = raw
	return nil
}

func (c *memCache) DeletePrefix(_ context.Context, prefix string) error {
	c.invalidated++
	for k := range c.items {
		if strings.HasPrefix(k, prefix) {
			delete(c.items, k)
		}
	}
	return nil
}

func TestListCacheKey(t *testing.T) {
	courseID := uuid.New()
	a := listCacheKey(model.ContentFilter{Type: model.ContentTypeLesson, Query: " Fractions ", CourseID: &courseID})
	b := listCacheKey(model.ContentFilter{Type: model.ContentTypeLesson, Query: "fractions", CourseID: &courseID})
	c := listCacheKey(model.ContentFilter{Type: model.ContentTypeLesson, Query: "fractions"})

	assert.Equal(t, a, b)
	assert.NotEqual(t, b, c)
	assert.True(t, strings.HasPrefix(a, contentCachePrefix))

	// 区切り文字を含む値でもキーが衝突しない
	pipeInLanguage := listCacheKey(model.ContentFilter{Language: "en|math", Subject: "x"})
	pipeInSubject := listCacheKey(model.ContentFilter{Language: "en", Subject: "math|x"})
	assert.NotEqual(t, pipeInLanguage, pipeInSubject)
}

func Test_contentService_ListContent(t *testing.T) {
	ctx := context.Background()
	db := setupTxDB(t)
	courses := []*model.Content{{ID: uuid.New(), Title: "Algebra", Type: model.ContentTypeCourse, Language: "en"}}
	filter := model.ContentFilter{Type: model.ContentTypeCourse}

	t.Run("invalid type", func(t *testing.T) {
		svc := NewContentService(db, mocks.NewContentRepository(t), mocks.NewQuestionRepository(t), mocks.NewLanguageRepository(t), newMemCache(), time.Minute)
		_, err := svc.ListContent(ctx, model.ContentFilter{Type: "video"})
		var appErr *model.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "INVALID_TYPE", appErr.Code)
	})

	t.Run("second read is served from cache", func(t *testing.T) {
		contentRepo := mocks.NewContentRepository(t)
		contentRepo.On("List", mock.Anything, mock.AnythingOfType("*gorm.DB"), filter).Return(courses, nil).Once()
		svc := NewContentService(db, contentRepo, mocks.NewQuestionRepository(t), mocks.NewLanguageRepository(t), newMemCache(), time.Minute)

		first, err := svc.ListContent(ctx, filter)
		require.NoError(t, err)
		second, err := svc.ListContent(ctx, filter)
		require.NoError(t, err)

		require.Len(t, second, 1)
		assert.Equal(t, first[0].ID, second[0].ID)
	})

	t.Run("filters with pipes in values are cached separately", func(t *testing.T) {
		mathFilter := model.ContentFilter{Language: "en", Subject: "math|x"}
		otherFilter := model.ContentFilter{Language: "en|math", Subject: "x"}
		contentRepo := mocks.NewContentRepository(t)
		contentRepo.On("List", mock.Anything, mock.AnythingOfType("*gorm.DB"), mathFilter).Return(courses, nil).Once()
		contentRepo.On("List", mock.Anything, mock.AnythingOfType("*gorm.DB"), otherFilter).Return([]*model.Content{}, nil).Once()
		svc := NewContentService(db, contentRepo, mocks.NewQuestionRepository(t), mocks.NewLanguageRepository(t), newMemCache(), time.Minute)

		got, err := svc.ListContent(ctx, mathFilter)
		require.NoError(t, err)
		require.Len(t, got, 1)

		got, err = svc.ListContent(ctx, otherFilter)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("cache failure falls back to the store", func(t *testing.T) {
		contentRepo := mocks.NewContentRepository(t)
		contentRepo.On("List", mock.Anything, mock.AnythingOfType("*gorm.DB"), filter).Return(nil, nil).Once()
		c := newMemCache()
		c.failReads = true
		svc := NewContentService(db, contentRepo, mocks.NewQuestionRepository(t), mocks.NewLanguageRepository(t), c, time.Minute)

		got, err := svc.ListContent(ctx, filter)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func Test_contentService_GetContentDetail_HidesAnswers(t *testing.T) {
	ctx := context.Background()
	db := setupTxDB(t)
	quiz := &model.Content{ID: uuid.New(), Type: model.ContentTypeQuiz, Title: "Quiz"}
	questions := []*model.Question{
		{ID: uuid.New(), QuizID: quiz.ID, QuestionText: "1+1?", Options: datatypes.JSONSlice[string]{"1", "2"}, CorrectAnswer: 1, Explanation: "basic"},
	}

	contentRepo := mocks.NewContentRepository(t)
	questionRepo := mocks.NewQuestionRepository(t)
	contentRepo.On("FindByID", mock.Anything, mock.AnythingOfType("*gorm.DB"), quiz.ID).Return(quiz, nil).Once()
	questionRepo.On("ListByQuiz", mock.Anything, mock.AnythingOfType("*gorm.DB"), quiz.ID).Return(questions, nil).Once()

	svc := NewContentService(db, contentRepo, questionRepo, mocks.NewLanguageRepository(t), nil, time.Minute)
	detail, err := svc.GetContentDetail(ctx, quiz.ID)
	require.NoError(t, err)
	require.Len(t, detail.Questions, 1)

	raw, err := json.Marshal(detail)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "correct_answer")
	assert.NotContains(t, string(raw), "basic")
}

func Test_contentService_GetContentDetail_Course(t *testing.T) {
	ctx := context.Background()
	db := setupTxDB(t)
	course := &model.Content{ID: uuid.New(), Type: model.ContentTypeCourse}
	lesson := &model.Content{ID: uuid.New(), Type: model.ContentTypeLesson, CourseID: &course.ID}
	quiz := &model.Content{ID: uuid.New(), Type: model.ContentTypeQuiz, CourseID: &course.ID}

	contentRepo := mocks.NewContentRepository(t)
	contentRepo.On("FindByID", mock.Anything, mock.AnythingOfType("*gorm.DB"), course.ID).Return(course, nil).Once()
	contentRepo.On("List", mock.Anything, mock.AnythingOfType("*gorm.DB"), model.ContentFilter{Type: model.ContentTypeLesson, CourseID: &course.ID}).
		Return([]*model.Content{lesson}, nil).Once()
	contentRepo.On("List", mock.Anything, mock.AnythingOfType("*gorm.DB"), model.ContentFilter{Type: model.ContentTypeQuiz, CourseID: &course.ID}).
		Return([]*model.Content{quiz}, nil).Once()

	svc := NewContentService(db, contentRepo, mocks.NewQuestionRepository(t), mocks.NewLanguageRepository(t), nil, time.Minute)
	detail, err := svc.GetContentDetail(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, []*model.Content{lesson}, detail.Lessons)
	assert.Equal(t, []*model.Content{quiz}, detail.Quizzes)
}

func Test_contentService_CreateContent(t *testing.T) {
	ctx := context.Background()
	db := setupTxDB(t)
	courseID := uuid.New()
	lessonID := uuid.New()

	tests := []struct {
		name        string
		contentType model.ContentType
		req         model.ContentRequest
		setup       func(contentRepo *mocks.ContentRepository, languageRepo *mocks.LanguageRepository)
		wantCode    string
	}{
		{
			name:        "course",
			contentType: model.ContentTypeCourse,
			req:         model.ContentRequest{Title: "  Algebra ", Language: "en", CourseID: &courseID},
			setup: func(contentRepo *mocks.ContentRepository, languageRepo *mocks.LanguageRepository) {
				languageRepo.On("Exists", mock.Anything, mock.Anything, "en").Return(true, nil).Once()
				contentRepo.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(c *model.Content) bool {
					return c.Title == "Algebra" && c.CourseID == nil && c.LessonID == nil
				})).Return(nil).Once()
			},
		},
		{
			name:        "lesson without course",
			contentType: model.ContentTypeLesson,
			req:         model.ContentRequest{Title: "Fractions", Language: "en"},
			setup: func(contentRepo *mocks.ContentRepository, languageRepo *mocks.LanguageRepository) {
				languageRepo.On("Exists", mock.Anything, mock.Anything, "en").Return(true, nil).Once()
			},
			wantCode: "COURSE_REQUIRED",
		},
		{
			name:        "lesson with missing course",
			contentType: model.ContentTypeLesson,
			req:         model.ContentRequest{Title: "Fractions", Language: "en", CourseID: &courseID},
			setup: func(contentRepo *mocks.ContentRepository, languageRepo *mocks.LanguageRepository) {
				languageRepo.On("Exists", mock.Anything, mock.Anything, "en").Return(true, nil).Once()
				contentRepo.On("FindByIDAndType", mock.Anything, mock.Anything, courseID, model.ContentTypeCourse).Return(nil, model.ErrNotFound).Once()
			},
			wantCode: "INVALID_REFERENCE",
		},
		{
			name:        "quiz under an existing lesson",
			contentType: model.ContentTypeQuiz,
			req:         model.ContentRequest{Title: "Check", Language: "sw", LessonID: &lessonID},
			setup: func(contentRepo *mocks.ContentRepository, languageRepo *mocks.LanguageRepository) {
				languageRepo.On("Exists", mock.Anything, mock.Anything, "sw").Return(true, nil).Once()
				contentRepo.On("FindByIDAndType", mock.Anything, mock.Anything, lessonID, model.ContentTypeLesson).
					Return(&model.Content{ID: lessonID, Type: model.ContentTypeLesson}, nil).Once()
				contentRepo.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*model.Content")).Return(nil).Once()
			},
		},
		{
			name:        "blank title",
			contentType: model.ContentTypeCourse,
			req:         model.ContentRequest{Title: "   ", Language: "en"},
			setup:       func(contentRepo *mocks.ContentRepository, languageRepo *mocks.LanguageRepository) {},
			wantCode:    "VALIDATION_ERROR",
		},
		{
			name:        "unknown language",
			contentType: model.ContentTypeCourse,
			req:         model.ContentRequest{Title: "Algebra", Language: "xx"},
			setup: func(contentRepo *mocks.ContentRepository, languageRepo *mocks.LanguageRepository) {
				languageRepo.On("Exists", mock.Anything, mock.Anything, "xx").Return(false, nil).Once()
			},
			wantCode: "UNKNOWN_LANGUAGE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contentRepo := mocks.NewContentRepository(t)
			languageRepo := mocks.NewLanguageRepository(t)
			tt.setup(contentRepo, languageRepo)
			c := newMemCache()
			svc := NewContentService(db, contentRepo, mocks.NewQuestionRepository(t), languageRepo, c, time.Minute)

			got, err := svc.CreateContent(ctx, tt.contentType, &tt.req)
			if tt.wantCode != "" {
				var appErr *model.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, tt.wantCode, appErr.Code)
				assert.ErrorIs(t, err, model.ErrInvalidInput)
				assert.Zero(t, c.invalidated)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.contentType, got.Type)
			assert.NotEqual(t, uuid.Nil, got.ID)
			assert.Equal(t, 1, c.invalidated)
		})
	}
}

func Test_contentService_DeleteContent(t *testing.T) {
	ctx := context.Background()
	db := setupTxDB(t)
	id := uuid.New()

	contentRepo := mocks.NewContentRepository(t)
	contentRepo.On("Delete", mock.Anything, mock.Anything, id, model.ContentTypeLesson).Return(model.ErrNotFound).Once()
	contentRepo.On("Delete", mock.Anything, mock.Anything, id, model.ContentTypeCourse).Return(nil).Once()
	c := newMemCache()
	svc := NewContentService(db, contentRepo, mocks.NewQuestionRepository(t), mocks.NewLanguageRepository(t), c, time.Minute)

	err := svc.DeleteContent(ctx, model.ContentTypeLesson, id)
	var appErr *model.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONTENT_NOT_FOUND", appErr.Code)

	require.NoError(t, svc.DeleteContent(ctx, model.ContentTypeCourse, id))
	assert.Equal(t, 1, c.invalidated)
}

func Test_contentService_WarmCatalog(t *testing.T) {
	ctx := context.Background()
	db := setupTxDB(t)
	contentRepo := mocks.NewContentRepository(t)
	contentRepo.On("List", mock.Anything, mock.Anything, mock.AnythingOfType("model.ContentFilter")).Return([]*model.Content{}, nil).Times(4)
	c := newMemCache()
	svc := NewContentService(db, contentRepo, mocks.NewQuestionRepository(t), mocks.NewLanguageRepository(t), c, time.Minute)

	require.NoError(t, svc.WarmCatalog(ctx))
	assert.Len(t, c.items, 4)
}
