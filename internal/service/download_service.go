//go:generate mockery --name DownloadService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"regexp"
	"time"

	"eduafri/internal/config"
	"eduafri/internal/middleware"
	"eduafri/internal/model"
	"eduafri/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DownloadService interface {
	Download(ctx context.Context, userID, contentID uuid.UUID, lang string) (*model.DownloadResponse, error)
	ListDownloads(ctx context.Context, userID uuid.UUID) ([]*model.DownloadedContent, error)
	RemoveDownload(ctx context.Context, userID, downloadID uuid.UUID) error
	ClearDownloads(ctx context.Context, userID uuid.UUID) (*model.ClearDownloadsResponse, error)
	OfflineManifest(ctx context.Context, userID uuid.UUID) (*model.OfflineManifest, error)
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// SizeTable はコンテンツ種別ごとの (模擬) パッケージサイズ
type SizeTable struct {
	Course int64
	Lesson int64
	Quiz   int64
}

func NewSizeTable(cfg config.DownloadConfig) SizeTable {
	return SizeTable{
		Course: cfg.CourseSizeBytes,
		Lesson: cfg.LessonSizeBytes,
		Quiz:   cfg.QuizSizeBytes,
	}
}

func (t SizeTable) For(contentType model.ContentType) int64 {
	switch contentType {
	case model.ContentTypeCourse:
		return t.Course
	case model.ContentTypeLesson:
		return t.Lesson
	case model.ContentTypeQuiz:
		return t.Quiz
	}
	return 0
}

var langPattern = regexp.MustCompile(`^[A-Za-z]{2,3}(-[A-Za-z0-9]{2,4})?$`)

// DownloadsRedirect は lang 付きのダウンロード一覧ページのパスを返す。不正な lang は無視する。
func DownloadsRedirect(lang string) string {
	if lang == "" || !langPattern.MatchString(lang) {
		return "/downloads"
	}
	return "/" + lang + "/downloads"
}

type downloadService struct {
	db           *gorm.DB
	contentRepo  repository.ContentRepository
	downloadRepo repository.DownloadRepository
	sizes        SizeTable
}

func NewDownloadService(db *gorm.DB, contentRepo repository.ContentRepository, downloadRepo repository.DownloadRepository, sizes SizeTable) DownloadService {
	return &downloadService{
		db:           db,
		contentRepo:  contentRepo,
		downloadRepo: downloadRepo,
		sizes:        sizes,
	}
}

// Download は呼び出しごとに downloaded_content を1行記録する。転送やクォータは扱わない。
func (s *downloadService) Download(ctx context.Context, userID, contentID uuid.UUID, lang string) (*model.DownloadResponse, error) {
	logger := middleware.GetLogger(ctx)
	var download *model.DownloadedContent

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		content, err := s.contentRepo.FindByID(ctx, tx, contentID)
		if err != nil {
			return notFoundOrInternal(err, "CONTENT_NOT_FOUND", "Content not found.")
		}
		download = &model.DownloadedContent{
			ID:           uuid.New(),
			UserID:       userID,
			ContentID:    content.ID,
			DownloadedAt: time.Now().UTC(),
			SizeBytes:    s.sizes.For(content.Type),
		}
		if err := s.downloadRepo.Create(ctx, tx, download); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to record the download.", "", err)
		}
		download.Content = content
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Content downloaded",
		"content_id", contentID.String(),
		"type", string(download.Content.Type),
		"size_bytes", download.SizeBytes,
	)
	return &model.DownloadResponse{Download: download, Redirect: DownloadsRedirect(lang)}, nil
}

func (s *downloadService) ListDownloads(ctx context.Context, userID uuid.UUID) ([]*model.DownloadedContent, error) {
	downloads, err := s.downloadRepo.ListByUser(ctx, s.db, userID)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load downloads.", "", err)
	}
	if downloads == nil {
		downloads = []*model.DownloadedContent{}
	}
	return downloads, nil
}

func (s *downloadService) RemoveDownload(ctx context.Context, userID, downloadID uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.downloadRepo.Delete(ctx, tx, userID, downloadID)
	})
	if err != nil {
		return notFoundOrInternal(err, "DOWNLOAD_NOT_FOUND", "Download not found.")
	}
	middleware.GetLogger(ctx).Info("Download removed", "download_id", downloadID.String())
	return nil
}

func (s *downloadService) ClearDownloads(ctx context.Context, userID uuid.UUID) (*model.ClearDownloadsResponse, error) {
	var resp model.ClearDownloadsResponse
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		resp.Removed, resp.FreedBytes, err = s.downloadRepo.DeleteAllByUser(ctx, tx, userID)
		return err
	})
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to clear downloads.", "", err)
	}
	middleware.GetLogger(ctx).Info("Downloads cleared", "removed", resp.Removed, "freed_bytes", resp.FreedBytes)
	return &resp, nil
}

// OfflineManifest は同じコンテンツの重複ダウンロードを最新の1件にまとめ、
// ダウンロード後に更新されたものを stale とする
func (s *downloadService) OfflineManifest(ctx context.Context, userID uuid.UUID) (*model.OfflineManifest, error) {
	downloads, err := s.downloadRepo.ListByUser(ctx, s.db, userID)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load downloads.", "", err)
	}

	manifest := &model.OfflineManifest{UserID: userID, Entries: []*model.OfflineManifestEntry{}}
	seen := make(map[uuid.UUID]bool, len(downloads))
	// ListByUser は downloaded_at の降順
	for _, d := range downloads {
		if d.Content == nil || seen[d.ContentID] {
			continue
		}
		seen[d.ContentID] = true
		manifest.TotalBytes += d.SizeBytes
		manifest.Entries = append(manifest.Entries, &model.OfflineManifestEntry{
			ContentID:    d.ContentID,
			Title:        d.Content.Title,
			Type:         d.Content.Type,
			Language:     d.Content.Language,
			SizeBytes:    d.SizeBytes,
			DownloadedAt: d.DownloadedAt,
			UpdatedAt:    d.Content.UpdatedAt,
			Stale:        d.Content.UpdatedAt.After(d.DownloadedAt),
		})
	}
	return manifest, nil
}

func (s *downloadService) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var removed int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		removed, err = s.downloadRepo.DeleteOlderThan(ctx, tx, cutoff)
		return err
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}
