package webutil

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"eduafri/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{model.ErrUnauthorized, http.StatusUnauthorized},
		{model.ErrForbidden, http.StatusForbidden},
		{fmt.Errorf("wrapped: %w", model.ErrNotFound), http.StatusNotFound},
		{model.NewAppError("X", "x", "", model.ErrInvalidInput), http.StatusBadRequest},
		{model.ErrConflict, http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err), tt.err.Error())
	}
}

func TestHandleError(t *testing.T) {
	t.Run("app error keeps code and field", func(t *testing.T) {
		rec := httptest.NewRecorder()
		HandleError(rec, discard, model.NewAppError("DUPLICATE_EMAIL", "Email already registered.", "email", model.ErrConflict))
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.JSONEq(t, `{"success":false,"error":"Email already registered.","code":"DUPLICATE_EMAIL","field":"email"}`, rec.Body.String())
	})

	t.Run("unexpected error is hidden", func(t *testing.T) {
		rec := httptest.NewRecorder()
		HandleError(rec, discard, errors.New("pq: connection refused"))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "connection refused")
		assert.Contains(t, rec.Body.String(), "INTERNAL_SERVER_ERROR")
	})

	t.Run("bare sentinel gets a default message", func(t *testing.T) {
		rec := httptest.NewRecorder()
		HandleError(rec, discard, model.ErrNotFound)
		assert.JSONEq(t, `{"success":false,"error":"Resource not found.","code":"NOT_FOUND"}`, rec.Body.String())
	})
}

func TestRespondPageAndRedirect(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondPage(rec, "courses", map[string]int{"count": 2}, discard)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true,"data":{"page":"courses","props":{"count":2}}}`, rec.Body.String())

	rec = httptest.NewRecorder()
	Redirect(rec, httptest.NewRequest(http.MethodGet, "/admin", nil), "/auth")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/auth", rec.Header().Get("Location"))
}

func TestDecodeJSONBody(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: `{"name":"Ada"}`},
		{name: "empty", body: ``, wantErr: true},
		{name: "unknown field", body: `{"name":"Ada","admin":true}`, wantErr: true},
		{name: "malformed", body: `{"name":`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dst payload
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			err := DecodeJSONBody(r, &dst)
			if tt.wantErr {
				assert.ErrorIs(t, err, model.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Ada", dst.Name)
		})
	}
}

func TestValidateStruct(t *testing.T) {
	pct := 150
	err := ValidateStruct(&model.ProgressRequest{ProgressPercentage: &pct})
	var appErr *model.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.Equal(t, "content_id", appErr.Field)
	assert.Equal(t, "content_id is required.", appErr.Message)

	err = ValidateStruct(&model.LoginRequest{Email: "not-an-email", Password: "x"})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "email", appErr.Field)
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestParseUUIDParamAndQueryInt(t *testing.T) {
	_, err := ParseUUIDParam("nope", "id")
	var appErr *model.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "id", appErr.Field)

	r := httptest.NewRequest(http.MethodGet, "/?limit=5&bad=x", nil)
	assert.Equal(t, 5, QueryInt(r, "limit", 10))
	assert.Equal(t, 10, QueryInt(r, "bad", 10))
	assert.Equal(t, 10, QueryInt(r, "missing", 10))
}
