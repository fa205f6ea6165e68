// internal/webutil/response.go
package webutil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"eduafri/internal/model"
)

// HandleError はエラーを解釈し、失敗のエンベロープを返します。
// 想定外のエラーは詳細をログに残し、クライアントには汎用メッセージだけを返す。
func HandleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	statusCode := MapErrorToStatusCode(err)

	env := model.Envelope{Success: false}
	var appErr *model.AppError
	switch {
	case errors.As(err, &appErr):
		env.Error = appErr.Message
		env.Code = appErr.Code
		env.Field = appErr.Field
	case statusCode == http.StatusInternalServerError:
		logger.Error("Unhandled error", slog.Any("error", err))
		env.Error = "An internal server error occurred."
		env.Code = "INTERNAL_SERVER_ERROR"
	default:
		env.Error, env.Code = defaultMessage(statusCode)
	}

	RespondWithJSON(w, statusCode, env, logger)
}

// MapErrorToStatusCode はアプリケーションエラーをHTTPステータスコードにマッピングします
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, model.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, model.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func defaultMessage(status int) (string, string) {
	switch status {
	case http.StatusUnauthorized:
		return "Authentication required.", "UNAUTHORIZED"
	case http.StatusForbidden:
		return "You do not have permission to perform this action.", "FORBIDDEN"
	case http.StatusNotFound:
		return "Resource not found.", "NOT_FOUND"
	case http.StatusBadRequest:
		return "Invalid input.", "INVALID_INPUT"
	case http.StatusConflict:
		return "Resource already exists.", "CONFLICT"
	}
	return "An internal server error occurred.", "INTERNAL_SERVER_ERROR"
}

// RespondSuccess は {success:true, data} を返します
func RespondSuccess(w http.ResponseWriter, code int, data interface{}, logger *slog.Logger) {
	RespondWithJSON(w, code, model.Envelope{Success: true, Data: data}, logger)
}

// RespondPage はページローダーの props を返します
func RespondPage(w http.ResponseWriter, page string, props interface{}, logger *slog.Logger) {
	RespondSuccess(w, http.StatusOK, model.PageProps{Page: page, Props: props}, logger)
}

// Redirect はページローダー用の 302 を返します
func Redirect(w http.ResponseWriter, r *http.Request, location string) {
	http.Redirect(w, r, location, http.StatusFound)
}

// RespondWithJSON はJSONレスポンスを返します
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Error marshaling JSON response", slog.Any("error", err))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":false,"error":"Failed to build the response.","code":"INTERNAL_SERVER_ERROR"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
