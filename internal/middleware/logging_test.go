package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLogLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var lines []map[string]any
	for _, raw := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if raw == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(raw), &m))
		lines = append(lines, m)
	}
	return lines
}

func TestLoggingMiddleware_LevelByStatus(t *testing.T) {
	tests := []struct {
		status    int
		wantLevel string
	}{
		{http.StatusOK, "INFO"},
		{http.StatusFound, "INFO"},
		{http.StatusNotFound, "WARN"},
		{http.StatusInternalServerError, "ERROR"},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

			h := LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.NotSame(t, slog.Default(), GetLogger(r.Context()))
				w.WriteHeader(tt.status)
			}))
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/downloads", nil))

			lines := decodeLogLines(t, &buf)
			require.Len(t, lines, 2)
			assert.Equal(t, "Request completed", lines[1]["msg"])
			assert.Equal(t, tt.wantLevel, lines[1]["level"])
			assert.EqualValues(t, tt.status, lines[1]["status"])
		})
	}
}

func TestLoggingMiddleware_DebugCapturesBodies(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	h := LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, `{"content_id":"x"}`, string(body))
		w.Write([]byte(`{"success":true}`))
	}))
	req := httptest.NewRequest(http.MethodPost, "/api/progress", strings.NewReader(`{"content_id":"x"}`))
	req.Header.Set("Authorization", "Bearer secret")
	h.ServeHTTP(httptest.NewRecorder(), req)

	lines := decodeLogLines(t, &buf)
	require.Len(t, lines, 4)
	assert.Equal(t, "Request detail", lines[2]["msg"])
	assert.Equal(t, `{"content_id":"x"}`, lines[2]["body"])
	headers := lines[2]["headers"].(map[string]any)
	assert.Equal(t, "***", headers["Authorization"])
	assert.Equal(t, "Response detail", lines[3]["msg"])
	assert.Equal(t, `{"success":true}`, lines[3]["body"])
}

func TestGetLogger_Default(t *testing.T) {
	assert.Same(t, slog.Default(), GetLogger(context.Background()))
}

func TestLoggingMiddleware_DebugMasksCredentials(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	h := LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"access_token":"jwt-value","profile":{"username":"amina"}}}`))
	}))
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"amina@example.com","password":"hunter22"}`))
	h.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	assert.NotContains(t, out, "hunter22")
	assert.NotContains(t, out, "jwt-value")
	assert.Contains(t, out, "amina@example.com")
	assert.Contains(t, out, "amina")
}

func TestLoggingMiddleware_LargeBodyReachesHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	payload := `{"note":"` + strings.Repeat("x", maxLoggedBody*3) + `"}`

	h := LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, payload, string(body))
		w.WriteHeader(http.StatusNoContent)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/progress", strings.NewReader(payload)))

	lines := decodeLogLines(t, &buf)
	require.Len(t, lines, 4)
	assert.Equal(t, "[omitted: body exceeds log limit]", lines[2]["body"])
}

func TestLoggableBody(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "empty", raw: "", want: ""},
		{name: "plain text", raw: "pong", want: "pong"},
		{name: "nested token", raw: `{"data":[{"token":"t"}],"ok":true}`, want: `{"data":[{"token":"***"}],"ok":true}`},
		{name: "case insensitive key", raw: `{"Password":"p"}`, want: `{"Password":"***"}`},
		{name: "too large", raw: strings.Repeat("a", maxLoggedBody+1), want: "[omitted: body exceeds log limit]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, loggableBody([]byte(tt.raw)))
		})
	}
}

func TestCappedBuffer(t *testing.T) {
	var c cappedBuffer
	n, err := c.Write(make([]byte, maxLoggedBody*2))
	require.NoError(t, err)
	assert.Equal(t, maxLoggedBody*2, n)
	assert.Equal(t, maxLoggedBody+1, c.buf.Len())
}
