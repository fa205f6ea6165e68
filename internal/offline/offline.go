// Package offline はクライアントのオフライン対応を支えるエンドポイント (接続確認と service worker)
package offline

import (
	_ "embed"
	"log/slog"
	"net/http"
	"strconv"

	"eduafri/internal/middleware"
)

//go:embed sw.js
var serviceWorker []byte

// ClientKeyHeader は公開クライアントキーが設定済みかどうかを知らせるヘッダー。キー自体は返さない。
const ClientKeyHeader = "X-Client-Key-Configured"

type Handler struct {
	clientKeyConfigured bool
}

func NewHandler(anonKey string) *Handler {
	return &Handler{clientKeyConfigured: anonKey != ""}
}

// Ping は GET/HEAD /api/ping。キャッシュされない 204 を返す。
func (h *Handler) Ping(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set(ClientKeyHeader, strconv.FormatBool(h.clientKeyConfigured))
	w.WriteHeader(http.StatusNoContent)
}

// ServiceWorker は GET /sw.js
func (h *Handler) ServiceWorker(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Service-Worker-Allowed", "/")
	if _, err := w.Write(serviceWorker); err != nil {
		middleware.GetLogger(r.Context()).Warn("Failed to write service worker", slog.Any("error", err))
	}
}
