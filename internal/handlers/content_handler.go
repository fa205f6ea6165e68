package handlers

import (
	"log/slog"
	"net/http"

	"eduafri/internal/middleware"
	"eduafri/internal/model"
	"eduafri/internal/service"
	"eduafri/internal/webutil"

	"github.com/go-chi/chi/v5"
)

type ContentHandler struct {
	service service.ContentService
	logger  *slog.Logger
}

func NewContentHandler(s service.ContentService, logger *slog.Logger) *ContentHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ContentHandler{
		service: s,
		logger:  logger,
	}
}

// contentFilterFromQuery は ?type&language&subject&query&course_id&lesson_id を読む
func contentFilterFromQuery(r *http.Request) (model.ContentFilter, error) {
	q := r.URL.Query()
	filter := model.ContentFilter{
		Type:     model.ContentType(q.Get("type")),
		Language: q.Get("language"),
		Subject:  q.Get("subject"),
		Query:    q.Get("query"),
	}
	var err error
	if filter.CourseID, err = optionalUUIDQuery(r, "course_id"); err != nil {
		return filter, err
	}
	if filter.LessonID, err = optionalUUIDQuery(r, "lesson_id"); err != nil {
		return filter, err
	}
	return filter, nil
}

// ListContent は GET /api/content
func (h *ContentHandler) ListContent(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListContent"))

	filter, err := contentFilterFromQuery(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	contents, err := h.service.ListContent(r.Context(), filter)
	if err != nil {
		logger.Error("Error listing content in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Content listed", slog.Int("count", len(contents)), slog.String("type", string(filter.Type)))
	webutil.RespondSuccess(w, http.StatusOK, contents, logger)
}

// GetContent は GET /api/content/{id}。クイズの設問は正解を伏せて返す。
func (h *ContentHandler) GetContent(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetContent"))

	contentID, err := webutil.ParseUUIDParam(chi.URLParam(r, "id"), "id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	detail, err := h.service.GetContentDetail(r.Context(), contentID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondSuccess(w, http.StatusOK, detail, logger)
}

func (h *ContentHandler) ListLanguages(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	languages, err := h.service.ListLanguages(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondSuccess(w, http.StatusOK, languages, logger)
}
