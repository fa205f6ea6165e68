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

type DownloadHandler struct {
	service service.DownloadService
}

func NewDownloadHandler(s service.DownloadService) *DownloadHandler {
	return &DownloadHandler{service: s}
}

// PostDownload は POST /api/download?id=<X>&lang=<l>。呼び出しごとに1行記録する。
func (h *DownloadHandler) PostDownload(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "PostDownload"))
	userID, ok := requireUser(w, r, logger)
	if !ok {
		return
	}

	rawID := r.URL.Query().Get("id")
	if rawID == "" {
		webutil.HandleError(w, logger, model.NewAppError("MISSING_PARAM", "id is required.", "id", model.ErrInvalidInput))
		return
	}
	contentID, err := webutil.ParseUUIDParam(rawID, "id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	resp, err := h.service.Download(r.Context(), userID, contentID, r.URL.Query().Get("lang"))
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondSuccess(w, http.StatusCreated, resp, logger)
}

func (h *DownloadHandler) GetDownloads(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "GetDownloads"))
	userID, ok := requireUser(w, r, logger)
	if !ok {
		return
	}

	downloads, err := h.service.ListDownloads(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondSuccess(w, http.StatusOK, downloads, logger)
}

func (h *DownloadHandler) DeleteDownload(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "DeleteDownload"))
	userID, ok := requireUser(w, r, logger)
	if !ok {
		return
	}

	downloadID, err := webutil.ParseUUIDParam(chi.URLParam(r, "id"), "id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	if err := h.service.RemoveDownload(r.Context(), userID, downloadID); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondSuccess(w, http.StatusOK, map[string]string{"id": downloadID.String()}, logger)
}

// ClearDownloads は呼び出したユーザーのダウンロードを全て消し、件数と解放バイト数を返す
func (h *DownloadHandler) ClearDownloads(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "ClearDownloads"))
	userID, ok := requireUser(w, r, logger)
	if !ok {
		return
	}

	resp, err := h.service.ClearDownloads(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondSuccess(w, http.StatusOK, resp, logger)
}

func (h *DownloadHandler) GetOfflineManifest(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "GetOfflineManifest"))
	userID, ok := requireUser(w, r, logger)
	if !ok {
		return
	}

	manifest, err := h.service.OfflineManifest(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	webutil.RespondSuccess(w, http.StatusOK, manifest, logger)
}
