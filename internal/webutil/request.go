package webutil

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"eduafri/internal/model"

	"github.com/google/uuid"
)

// maxBodyBytes はJSONボディの上限
const maxBodyBytes = 1 << 20

// DecodeJSONBody はリクエストボディをデコードします
func DecodeJSONBody(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return model.ErrInvalidInput
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			slog.Debug("Empty JSON body")
		} else {
			slog.Debug("Error decoding JSON body", "error", err)
		}
		return model.ErrInvalidInput
	}
	return nil
}

// ParseUUIDParam は文字列をUUIDとして解釈し、失敗時は field 付きの AppError を返す
func ParseUUIDParam(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, model.NewAppError("INVALID_PARAM", field+" must be a valid UUID", field, model.ErrInvalidInput)
	}
	return id, nil
}

// QueryInt はクエリパラメータを整数として読み取る。未指定や不正値は def を返す。
func QueryInt(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
