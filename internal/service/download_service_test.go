package service

import (
	"context"
	"testing"
	"time"

	"eduafri/internal/config"
	"eduafri/internal/model"
	"eduafri/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testSizes = NewSizeTable(config.DownloadConfig{
	CourseSizeBytes: config.DefaultCourseSizeBytes,
	LessonSizeBytes: config.DefaultLessonSizeBytes,
	QuizSizeBytes:   config.DefaultQuizSizeBytes,
})

func TestSizeTable_For(t *testing.T) {
	assert.Equal(t, int64(5<<20), testSizes.For(model.ContentTypeCourse))
	assert.Equal(t, int64(2<<20), testSizes.For(model.ContentTypeLesson))
	assert.Equal(t, int64(1<<20), testSizes.For(model.ContentTypeQuiz))
	assert.Equal(t, int64(0), testSizes.For(model.ContentType("video")))
}

func TestDownloadsRedirect(t *testing.T) {
	tests := []struct {
		lang string
		want string
	}{
		{lang: "", want: "/downloads"},
		{lang: "sw", want: "/sw/downloads"},
		{lang: "en-KE", want: "/en-KE/downloads"},
		{lang: "../admin", want: "/downloads"},
		{lang: "//evil.example", want: "/downloads"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DownloadsRedirect(tt.lang), "lang=%q", tt.lang)
	}
}

func Test_downloadService_Download(t *testing.T) {
	ctx := context.Background()
	db := setupTxDB(t)
	userID := uuid.New()

	tests := []struct {
		name        string
		contentType model.ContentType
		wantSize    int64
	}{
		{name: "course", contentType: model.ContentTypeCourse, wantSize: 5 << 20},
		{name: "lesson", contentType: model.ContentTypeLesson, wantSize: 2 << 20},
		{name: "quiz", contentType: model.ContentTypeQuiz, wantSize: 1 << 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := &model.Content{ID: uuid.New(), Type: tt.contentType, Title: "c"}
			contentRepo := mocks.NewContentRepository(t)
			downloadRepo := mocks.NewDownloadRepository(t)
			contentRepo.On("FindByID", mock.Anything, mock.AnythingOfType("*gorm.DB"), content.ID).Return(content, nil).Once()
			downloadRepo.On("Create", mock.Anything, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.DownloadedContent")).
				Run(func(args mock.Arguments) {
					d := args.Get(2).(*model.DownloadedContent)
					assert.Equal(t, userID, d.UserID)
					assert.Equal(t, content.ID, d.ContentID)
					assert.Equal(t, tt.wantSize, d.SizeBytes)
				}).Return(nil).Once()

			svc := NewDownloadService(db, contentRepo, downloadRepo, testSizes)
			got, err := svc.Download(ctx, userID, content.ID, "sw")
			require.NoError(t, err)
			assert.Equal(t, tt.wantSize, got.Download.SizeBytes)
			assert.Equal(t, "/sw/downloads", got.Redirect)
		})
	}
}

func Test_downloadService_Download_ContentNotFound(t *testing.T) {
	db := setupTxDB(t)
	contentRepo := mocks.NewContentRepository(t)
	downloadRepo := mocks.NewDownloadRepository(t)
	contentID := uuid.New()
	contentRepo.On("FindByID", mock.Anything, mock.AnythingOfType("*gorm.DB"), contentID).Return(nil, model.ErrNotFound).Once()

	svc := NewDownloadService(db, contentRepo, downloadRepo, testSizes)
	_, err := svc.Download(context.Background(), uuid.New(), contentID, "")
	assert.ErrorIs(t, err, model.ErrNotFound)
	downloadRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func Test_downloadService_ClearDownloads(t *testing.T) {
	db := setupTxDB(t)
	contentRepo := mocks.NewContentRepository(t)
	downloadRepo := mocks.NewDownloadRepository(t)
	userID := uuid.New()
	downloadRepo.On("DeleteAllByUser", mock.Anything, mock.AnythingOfType("*gorm.DB"), userID).Return(int64(3), int64(8<<20), nil).Once()

	svc := NewDownloadService(db, contentRepo, downloadRepo, testSizes)
	got, err := svc.ClearDownloads(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.Removed)
	assert.Equal(t, int64(8<<20), got.FreedBytes)
}

func Test_downloadService_OfflineManifest(t *testing.T) {
	db := setupTxDB(t)
	contentRepo := mocks.NewContentRepository(t)
	downloadRepo := mocks.NewDownloadRepository(t)
	userID := uuid.New()
	now := time.Now().UTC()

	fresh := &model.Content{ID: uuid.New(), Title: "Fresh", Type: model.ContentTypeLesson, UpdatedAt: now.Add(-2 * time.Hour)}
	edited := &model.Content{ID: uuid.New(), Title: "Edited", Type: model.ContentTypeCourse, UpdatedAt: now}

	// downloaded_at の降順
	downloadRepo.On("ListByUser", mock.Anything, mock.AnythingOfType("*gorm.DB"), userID).Return([]*model.DownloadedContent{
		{ID: uuid.New(), ContentID: fresh.ID, Content: fresh, SizeBytes: 2 << 20, DownloadedAt: now.Add(-time.Hour)},
		{ID: uuid.New(), ContentID: edited.ID, Content: edited, SizeBytes: 5 << 20, DownloadedAt: now.Add(-time.Hour)},
		{ID: uuid.New(), ContentID: fresh.ID, Content: fresh, SizeBytes: 2 << 20, DownloadedAt: now.Add(-3 * time.Hour)},
	}, nil).Once()

	svc := NewDownloadService(db, contentRepo, downloadRepo, testSizes)
	manifest, err := svc.OfflineManifest(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, manifest.Entries, 2)
	assert.Equal(t, int64(7<<20), manifest.TotalBytes)
	assert.False(t, manifest.Entries[0].Stale)
	assert.True(t, manifest.Entries[1].Stale)
}
