package handlers

import (
	"log/slog"
	"net/http"

	"eduafri/internal/middleware"
	"eduafri/internal/model"
	"eduafri/internal/webutil"

	"github.com/google/uuid"
)

// bindJSON はボディをデコードしてバリデーションする。失敗時はエラーレスポンスを書いて false を返す。
func bindJSON(w http.ResponseWriter, r *http.Request, logger *slog.Logger, dst interface{}) bool {
	if err := webutil.DecodeJSONBody(r, dst); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, model.NewAppError("INVALID_REQUEST_BODY", "The request body is not valid JSON.", "", model.ErrInvalidInput))
		return false
	}
	if err := webutil.ValidateStruct(dst); err != nil {
		logger.Warn("Validation failed", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return false
	}
	return true
}

// requireUser はセッションのユーザーIDを返す。RequireSession の後ろでしか使わないが念のため確認する。
func requireUser(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (uuid.UUID, bool) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return uuid.Nil, false
	}
	return userID, true
}

// optionalUUIDQuery は空なら nil を返す
func optionalUUIDQuery(r *http.Request, key string) (*uuid.UUID, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	id, err := webutil.ParseUUIDParam(raw, key)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
