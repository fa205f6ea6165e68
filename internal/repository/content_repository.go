//go:generate mockery --name ContentRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"eduafri/internal/middleware"
	"eduafri/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, content *model.Content) error
	FindByID(ctx context.Context, db *gorm.DB, contentID uuid.UUID) (*model.Content, error)
	FindByIDAndType(ctx context.Context, db *gorm.DB, contentID uuid.UUID, contentType model.ContentType) (*model.Content, error)
	List(ctx context.Context, db *gorm.DB, filter model.ContentFilter) ([]*model.Content, error)
	Update(ctx context.Context, tx *gorm.DB, contentID uuid.UUID, contentType model.ContentType, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, contentID uuid.UUID, contentType model.ContentType) error
}

type gormContentRepository struct{}

func NewGormContentRepository() ContentRepository {
	return &gormContentRepository{}
}

func (r *gormContentRepository) Create(ctx context.Context, tx *gorm.DB, content *model.Content) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(content)
	if result.Error != nil {
		logger.Error("Error creating content in DB",
			"error", result.Error,
			"type", string(content.Type),
			"title", content.Title,
		)
		return translateWriteError("gormContentRepository.Create", result.Error)
	}
	return nil
}

func (r *gormContentRepository) FindByID(ctx context.Context, db *gorm.DB, contentID uuid.UUID) (*model.Content, error) {
	logger := middleware.GetLogger(ctx)
	var content model.Content
	result := db.WithContext(ctx).Where("id = ?", contentID).First(&content)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding content by ID in DB", "error", result.Error, "content_id", contentID.String())
		return nil, fmt.Errorf("gormContentRepository.FindByID: %w", result.Error)
	}
	return &content, nil
}

func (r *gormContentRepository) FindByIDAndType(ctx context.Context, db *gorm.DB, contentID uuid.UUID, contentType model.ContentType) (*model.Content, error) {
	logger := middleware.GetLogger(ctx)
	var content model.Content
	result := db.WithContext(ctx).Where("id = ? AND type = ?", contentID, contentType).First(&content)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding content by ID and type in DB",
			"error", result.Error,
			"content_id", contentID.String(),
			"type", string(contentType),
		)
		return nil, fmt.Errorf("gormContentRepository.FindByIDAndType: %w", result.Error)
	}
	return &content, nil
}

// List はフィルタに一致するコンテンツを新しい順に返す。空のフィールドは条件にしない。
func (r *gormContentRepository) List(ctx context.Context, db *gorm.DB, filter model.ContentFilter) ([]*model.Content, error) {
	logger := middleware.GetLogger(ctx)
	query := db.WithContext(ctx).Model(&model.Content{})

	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Language != "" {
		query = query.Where("language = ?", filter.Language)
	}
	if filter.Subject != "" {
		query = query.Where("subject = ?", filter.Subject)
	}
	if filter.CourseID != nil {
		query = query.Where("course_id = ?", *filter.CourseID)
	}
	if filter.LessonID != nil {
		query = query.Where("lesson_id = ?", *filter.LessonID)
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(q)) + "%"
		query = query.Where(`LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\'`, pattern, pattern)
	}

	var contents []*model.Content
	if err := query.Order("created_at DESC").Find(&contents).Error; err != nil {
		logger.Error("Error listing content in DB", "error", err, "type", string(filter.Type))
		return nil, fmt.Errorf("gormContentRepository.List: %w", err)
	}
	return contents, nil
}

// likeEscaper は LIKE のワイルドカードをリテラルとして扱わせる
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *gormContentRepository) Update(ctx context.Context, tx *gorm.DB, contentID uuid.UUID, contentType model.ContentType, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Model(&model.Content{}).
		Where("id = ? AND type = ?", contentID, contentType).
		Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating content in DB", "error", result.Error, "content_id", contentID.String())
		return translateWriteError("gormContentRepository.Update", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// Delete は依存する行 (questions, user_progress, downloaded_content) をFKのカスケードに任せる
func (r *gormContentRepository) Delete(ctx context.Context, tx *gorm.DB, contentID uuid.UUID, contentType model.ContentType) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Where("id = ? AND type = ?", contentID, contentType).Delete(&model.Content{})
	if result.Error != nil {
		logger.Error("Error deleting content in DB", "error", result.Error, "content_id", contentID.String())
		return fmt.Errorf("gormContentRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
