//go:generate mockery --name ContentService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"eduafri/internal/cache"
	"eduafri/internal/middleware"
	"eduafri/internal/model"
	"eduafri/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const contentCachePrefix = "content:"

type ContentService interface {
	ListContent(ctx context.Context, filter model.ContentFilter) ([]*model.Content, error)
	GetContentDetail(ctx context.Context, contentID uuid.UUID) (*model.ContentDetail, error)
	GetContent(ctx context.Context, contentID uuid.UUID, contentType model.ContentType) (*model.Content, error)
	CreateContent(ctx context.Context, contentType model.ContentType, req *model.ContentRequest) (*model.Content, error)
	UpdateContent(ctx context.Context, contentType model.ContentType, contentID uuid.UUID, req *model.ContentRequest) (*model.Content, error)
	DeleteContent(ctx context.Context, contentType model.ContentType, contentID uuid.UUID) error
	ListLanguages(ctx context.Context) ([]*model.Language, error)
	WarmCatalog(ctx context.Context) error
}

type contentService struct {
	db           *gorm.DB
	contentRepo  repository.ContentRepository
	questionRepo repository.QuestionRepository
	languageRepo repository.LanguageRepository
	cache        cache.Cache
	cacheTTL     time.Duration
}

func NewContentService(
	db *gorm.DB,
	contentRepo repository.ContentRepository,
	questionRepo repository.QuestionRepository,
	languageRepo repository.LanguageRepository,
	c cache.Cache,
	cacheTTL time.Duration,
) ContentService {
	if c == nil {
		c = cache.NewNopCache()
	}
	return &contentService{
		db:           db,
		contentRepo:  contentRepo,
		questionRepo: questionRepo,
		languageRepo: languageRepo,
		cache:        c,
		cacheTTL:     cacheTTL,
	}
}

// listCacheKey はフィルタをクエリ文字列としてエンコードしてキーにする。
// 値はエスケープされるので、区切り文字を含む値同士でも衝突しない。
func listCacheKey(filter model.ContentFilter) string {
	v := url.Values{}
	v.Set("type", string(filter.Type))
	v.Set("language", filter.Language)
	v.Set("subject", filter.Subject)
	v.Set("query", strings.ToLower(strings.TrimSpace(filter.Query)))
	if filter.CourseID != nil {
		v.Set("course_id", filter.CourseID.String())
	}
	if filter.LessonID != nil {
		v.Set("lesson_id", filter.LessonID.String())
	}
	return contentCachePrefix + "list:" + v.Encode()
}

// ListContent はキャッシュを優先し、キャッシュの障害時はDBにフォールバックする
func (s *contentService) ListContent(ctx context.Context, filter model.ContentFilter) ([]*model.Content, error) {
	logger := middleware.GetLogger(ctx)
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, model.NewAppError("INVALID_TYPE", "type must be one of course, lesson, quiz.", "type", model.ErrInvalidInput)
	}

	key := listCacheKey(filter)
	var cached []*model.Content
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		logger.Warn("Content cache read failed", "error", err)
	}
	if hit {
		return cached, nil
	}

	contents, err := s.contentRepo.List(ctx, s.db, filter)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load content.", "", err)
	}
	if contents == nil {
		contents = []*model.Content{}
	}
	if err := s.cache.Set(ctx, key, contents, s.cacheTTL); err != nil {
		logger.Warn("Content cache write failed", "error", err)
	}
	return contents, nil
}

// GetContentDetail はコースならレッスンとクイズ、レッスンならクイズ、
// クイズなら (正解を除いた) 設問を添えて返す
func (s *contentService) GetContentDetail(ctx context.Context, contentID uuid.UUID) (*model.ContentDetail, error) {
	content, err := s.contentRepo.FindByID(ctx, s.db, contentID)
	if err != nil {
		return nil, notFoundOrInternal(err, "CONTENT_NOT_FOUND", "Content not found.")
	}

	detail := &model.ContentDetail{Content: content}
	switch content.Type {
	case model.ContentTypeCourse:
		if detail.Lessons, err = s.contentRepo.List(ctx, s.db, model.ContentFilter{Type: model.ContentTypeLesson, CourseID: &content.ID}); err != nil {
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load lessons.", "", err)
		}
		if detail.Quizzes, err = s.contentRepo.List(ctx, s.db, model.ContentFilter{Type: model.ContentTypeQuiz, CourseID: &content.ID}); err != nil {
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load quizzes.", "", err)
		}
	case model.ContentTypeLesson:
		if detail.Quizzes, err = s.contentRepo.List(ctx, s.db, model.ContentFilter{Type: model.ContentTypeQuiz, LessonID: &content.ID}); err != nil {
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load quizzes.", "", err)
		}
	case model.ContentTypeQuiz:
		questions, err := s.questionRepo.ListByQuiz(ctx, s.db, content.ID)
		if err != nil {
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load questions.", "", err)
		}
		detail.Questions = make([]*model.QuestionView, 0, len(questions))
		for _, q := range questions {
			detail.Questions = append(detail.Questions, q.View())
		}
	}
	return detail, nil
}

func (s *contentService) GetContent(ctx context.Context, contentID uuid.UUID, contentType model.ContentType) (*model.Content, error) {
	content, err := s.contentRepo.FindByIDAndType(ctx, s.db, contentID, contentType)
	if err != nil {
		return nil, notFoundOrInternal(err, "CONTENT_NOT_FOUND", "Content not found.")
	}
	return content, nil
}

func (s *contentService) CreateContent(ctx context.Context, contentType model.ContentType, req *model.ContentRequest) (*model.Content, error) {
	logger := middleware.GetLogger(ctx)
	if !contentType.Valid() {
		return nil, model.NewAppError("INVALID_TYPE", "Unknown content type.", "type", model.ErrInvalidInput)
	}

	content := &model.Content{
		ID:   uuid.New(),
		Type: contentType,
	}
	if err := applyContentRequest(content, req); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.checkReferences(ctx, tx, content); err != nil {
			return err
		}
		if err := s.contentRepo.Create(ctx, tx, content); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to create content.", "", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	logger.Info("Content created", "content_id", content.ID.String(), "type", string(contentType))
	return content, nil
}

func (s *contentService) UpdateContent(ctx context.Context, contentType model.ContentType, contentID uuid.UUID, req *model.ContentRequest) (*model.Content, error) {
	logger := middleware.GetLogger(ctx)
	var updated *model.Content

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		content, err := s.contentRepo.FindByIDAndType(ctx, tx, contentID, contentType)
		if err != nil {
			return notFoundOrInternal(err, "CONTENT_NOT_FOUND", "Content not found.")
		}
		if err := applyContentRequest(content, req); err != nil {
			return err
		}
		if err := s.checkReferences(ctx, tx, content); err != nil {
			return err
		}

		updates := map[string]interface{}{
			"title":       content.Title,
			"description": content.Description,
			"body":        content.Body,
			"language":    content.Language,
			"subject":     content.Subject,
			"grade_level": content.GradeLevel,
			"course_id":   content.CourseID,
			"lesson_id":   content.LessonID,
		}
		if err := s.contentRepo.Update(ctx, tx, contentID, contentType, updates); err != nil {
			return notFoundOrInternal(err, "CONTENT_NOT_FOUND", "Content not found.")
		}
		updated, err = s.contentRepo.FindByIDAndType(ctx, tx, contentID, contentType)
		if err != nil {
			return notFoundOrInternal(err, "CONTENT_NOT_FOUND", "Content not found.")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	logger.Info("Content updated", "content_id", contentID.String(), "type", string(contentType))
	return updated, nil
}

func (s *contentService) DeleteContent(ctx context.Context, contentType model.ContentType, contentID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.contentRepo.Delete(ctx, tx, contentID, contentType)
	})
	if err != nil {
		return notFoundOrInternal(err, "CONTENT_NOT_FOUND", "Content not found.")
	}
	s.invalidate(ctx)
	logger.Info("Content deleted", "content_id", contentID.String(), "type", string(contentType))
	return nil
}

func (s *contentService) ListLanguages(ctx context.Context) ([]*model.Language, error) {
	languages, err := s.languageRepo.List(ctx, s.db)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load languages.", "", err)
	}
	if languages == nil {
		languages = []*model.Language{}
	}
	return languages, nil
}

// WarmCatalog は種類ごとの一覧をキャッシュに載せ直す
func (s *contentService) WarmCatalog(ctx context.Context) error {
	for _, t := range []model.ContentType{model.ContentTypeCourse, model.ContentTypeLesson, model.ContentTypeQuiz, ""} {
		filter := model.ContentFilter{Type: t}
		contents, err := s.contentRepo.List(ctx, s.db, filter)
		if err != nil {
			return err
		}
		if err := s.cache.Set(ctx, listCacheKey(filter), contents, s.cacheTTL); err != nil {
			return err
		}
	}
	return nil
}

// checkReferences はレッスンが既存のコースを、クイズが (任意で) コース・レッスンを参照していることを確認する
func (s *contentService) checkReferences(ctx context.Context, tx *gorm.DB, content *model.Content) error {
	exists, err := s.languageRepo.Exists(ctx, tx, content.Language)
	if err != nil {
		return model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
	}
	if !exists {
		return model.NewAppError("UNKNOWN_LANGUAGE", "Unsupported language.", "language", model.ErrInvalidInput)
	}

	switch content.Type {
	case model.ContentTypeCourse:
		content.CourseID = nil
		content.LessonID = nil
	case model.ContentTypeLesson:
		content.LessonID = nil
		if content.CourseID == nil {
			return model.NewAppError("COURSE_REQUIRED", "A lesson must belong to a course.", "course_id", model.ErrInvalidInput)
		}
		if err := s.requireParent(ctx, tx, *content.CourseID, model.ContentTypeCourse, "course_id"); err != nil {
			return err
		}
	case model.ContentTypeQuiz:
		if content.CourseID != nil {
			if err := s.requireParent(ctx, tx, *content.CourseID, model.ContentTypeCourse, "course_id"); err != nil {
				return err
			}
		}
		if content.LessonID != nil {
			if err := s.requireParent(ctx, tx, *content.LessonID, model.ContentTypeLesson, "lesson_id"); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *contentService) requireParent(ctx context.Context, tx *gorm.DB, id uuid.UUID, contentType model.ContentType, field string) error {
	if _, err := s.contentRepo.FindByIDAndType(ctx, tx, id, contentType); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("INVALID_REFERENCE", field+" does not reference an existing "+string(contentType)+".", field, model.ErrInvalidInput)
		}
		return model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
	}
	return nil
}

func (s *contentService) invalidate(ctx context.Context) {
	if err := s.cache.DeletePrefix(ctx, contentCachePrefix); err != nil {
		middleware.GetLogger(ctx).Warn("Content cache invalidation failed", "error", err)
	}
}

// applyContentRequest は空白だけのタイトルを拒否する
func applyContentRequest(content *model.Content, req *model.ContentRequest) error {
	content.Title = strings.TrimSpace(req.Title)
	if content.Title == "" {
		return model.NewAppError("VALIDATION_ERROR", "title is required.", "title", model.ErrInvalidInput)
	}
	content.Description = req.Description
	content.Body = req.Body
	content.Language = req.Language
	content.Subject = req.Subject
	content.GradeLevel = req.GradeLevel
	content.CourseID = req.CourseID
	content.LessonID = req.LessonID
	return nil
}

// notFoundOrInternal はリポジトリのエラーを 404 か 500 の AppError に変換する
func notFoundOrInternal(err error, code, message string) error {
	var appErr *model.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, model.ErrNotFound) {
		return model.NewAppError(code, message, "", model.ErrNotFound)
	}
	return model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
}
