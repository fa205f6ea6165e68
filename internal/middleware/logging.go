package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type logCtxKey struct{}

// デバッグ時に記録するボディの上限
const maxLoggedBody = 4 << 10

// 小文字で比較する
var maskedHeaders = map[string]struct{}{
	"authorization":     {},
	"cookie":            {},
	"set-cookie":        {},
	"x-service-key":     {},
	"x-refreshed-token": {},
}

// LoggingMiddleware はリクエストごとに req_id 付きのロガーをコンテキストへ入れ、
// 完了時にステータスに応じたレベルで 1 行出力する。
// ロガーが Debug を有効にしている場合はヘッダーとボディも出す。
func LoggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			began := time.Now()
			reqLog := logger.With("req_id", middleware.GetReqID(r.Context()))
			r = r.WithContext(WithLogger(r.Context(), reqLog))
			reqLog.Info("Request started", "method", r.Method, "path", r.URL.Path, "remote_addr", r.RemoteAddr)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			var capture *bodyCapture
			if reqLog.Enabled(r.Context(), slog.LevelDebug) {
				capture = captureBodies(r, ww)
			}

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			reqLog.Log(r.Context(), levelForStatus(status), "Request completed", completionAttrs(r, ww, status, began)...)

			if capture != nil {
				reqLog.Debug("Request detail", "headers", formatHeaders(r.Header), "body", capture.request)
				reqLog.Debug("Response detail", "status", status, "headers", formatHeaders(ww.Header()), "body", loggableBody(capture.response.buf.Bytes()))
			}
		})
	}
}

type bodyCapture struct {
	request  string
	response cappedBuffer
}

// captureBodies はリクエストボディの先頭だけを読み、読んだ分を戻してハンドラに渡す。
// レスポンスは上限までを複製する。
func captureBodies(r *http.Request, ww middleware.WrapResponseWriter) *bodyCapture {
	c := &bodyCapture{}
	if r.Body != nil && r.Body != http.NoBody {
		head, _ := io.ReadAll(io.LimitReader(r.Body, maxLoggedBody+1))
		r.Body = struct {
			io.Reader
			io.Closer
		}{io.MultiReader(bytes.NewReader(head), r.Body), r.Body}
		c.request = loggableBody(head)
	}
	ww.Tee(&c.response)
	return c
}

// cappedBuffer は maxLoggedBody+1 バイトまでだけ保持し、残りは捨てる
type cappedBuffer struct {
	buf bytes.Buffer
}

func (c *cappedBuffer) Write(p []byte) (int, error) {
	if room := maxLoggedBody + 1 - c.buf.Len(); room > 0 {
		if len(p) > room {
			c.buf.Write(p[:room])
		} else {
			c.buf.Write(p)
		}
	}
	return len(p), nil
}

// 値を伏せる JSON キー (小文字で比較する)
var maskedBodyKeys = map[string]struct{}{
	"password":      {},
	"access_token":  {},
	"refresh_token": {},
	"token":         {},
	"anon_key":      {},
	"service_key":   {},
}

// loggableBody は JSON なら認証情報のキーを伏せて返す。
// 上限を超えたボディは途中で切れた JSON を解釈できないので中身を出さない。
func loggableBody(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	if len(raw) > maxLoggedBody {
		return "[omitted: body exceeds log limit]"
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	out, err := json.Marshal(maskJSON(v))
	if err != nil {
		return "[omitted]"
	}
	return string(out)
}

func maskJSON(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			if _, masked := maskedBodyKeys[strings.ToLower(k)]; masked {
				t[k] = "***"
				continue
			}
			t[k] = maskJSON(child)
		}
	case []any:
		for i, child := range t {
			t[i] = maskJSON(child)
		}
	}
	return v
}

func levelForStatus(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

func completionAttrs(r *http.Request, ww middleware.WrapResponseWriter, status int, began time.Time) []any {
	attrs := []any{
		"status", status,
		"latency_ms", float64(time.Since(began).Microseconds()) / 1000,
		"bytes_out", ww.BytesWritten(),
	}
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			attrs = append(attrs, "route", pattern)
		}
	}
	// リダイレクト先 (ページルート)
	if loc := ww.Header().Get("Location"); loc != "" {
		attrs = append(attrs, "location", loc)
	}
	return attrs
}

// WithLogger はロガーを格納したコンテキストを返す。ジョブなどHTTP外の処理でも使う。
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, logCtxKey{}, logger)
}

// GetLogger はコンテキストのロガーを返す。無ければ slog.Default。
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(logCtxKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// formatHeaders は認証系ヘッダーの値を伏せて 1 値に潰す
func formatHeaders(headers http.Header) map[string]string {
	out := make(map[string]string, len(headers))
	for key, values := range headers {
		if _, masked := maskedHeaders[strings.ToLower(key)]; masked {
			out[key] = "***"
			continue
		}
		out[key] = strings.Join(values, ", ")
	}
	return out
}
