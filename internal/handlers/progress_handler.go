package handlers

import (
	"log/slog"
	"net/http"

	"eduafri/internal/middleware"
	"eduafri/internal/model"
	"eduafri/internal/service"
	"eduafri/internal/webutil"
)

type ProgressHandler struct {
	service service.ProgressService
}

func NewProgressHandler(s service.ProgressService) *ProgressHandler {
	return &ProgressHandler{service: s}
}

func (h *ProgressHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "GetProgress"))
	userID, ok := requireUser(w, r, logger)
	if !ok {
		return
	}

	progresses, err := h.service.ListProgress(r.Context(), userID)
	if err != nil {
		logger.Error("Error listing progress in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondSuccess(w, http.StatusOK, progresses, logger)
}

// PostProgress は (user_id, content_id) 単位で進捗を upsert する
func (h *ProgressHandler) PostProgress(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "PostProgress"))
	userID, ok := requireUser(w, r, logger)
	if !ok {
		return
	}

	var req model.ProgressRequest
	if !bindJSON(w, r, logger, &req) {
		return
	}

	progress, err := h.service.SaveProgress(r.Context(), userID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Progress saved",
		slog.String("content_id", req.ContentID.String()),
		slog.Int("progress_percentage", progress.ProgressPercentage),
	)
	webutil.RespondSuccess(w, http.StatusOK, progress, logger)
}
