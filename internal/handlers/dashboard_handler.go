package handlers

import (
	"log/slog"
	"net/http"

	"eduafri/internal/middleware"
	"eduafri/internal/service"
	"eduafri/internal/webutil"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "GetDashboard"))
	userID, ok := requireUser(w, r, logger)
	if !ok {
		return
	}

	dashboard, err := h.service.GetDashboard(r.Context(), userID)
	if err != nil {
		logger.Error("Error building dashboard in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondSuccess(w, http.StatusOK, dashboard, logger)
}
