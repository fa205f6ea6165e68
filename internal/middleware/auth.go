package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"eduafri/internal/model"
	"eduafri/internal/webutil"

	"github.com/google/uuid"
)

// SessionManager はトークンの検証と再発行を行う (AuthService が実装する)
type SessionManager interface {
	ParseSession(ctx context.Context, token string) (*model.Session, error)
	RefreshSession(ctx context.Context, session *model.Session) (refreshed *model.Session, token string, err error)
}

// CookieSettings はセッションCookieの名前と属性
type CookieSettings struct {
	Name   string
	Secure bool
	// RefreshWindow 以内に期限切れになるトークンは再発行する
	RefreshWindow time.Duration
}

// tokenFromRequest は Authorization: Bearer ヘッダー、なければ Cookie からトークンを取り出す
func tokenFromRequest(r *http.Request, cookieName string) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if cookieName != "" {
		if c, err := r.Cookie(cookieName); err == nil {
			return c.Value
		}
	}
	return ""
}

// WithSession はセッションを格納したコンテキストを返す
func WithSession(ctx context.Context, session *model.Session) context.Context {
	return context.WithValue(ctx, model.SessionKey, session)
}

// SessionFromContext はセッションがなければ nil を返す
func SessionFromContext(ctx context.Context) *model.Session {
	session, _ := ctx.Value(model.SessionKey).(*model.Session)
	return session
}

// GetUserIDFromContext は認証済みユーザーIDを返す。未認証なら ErrUnauthorized。
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, error) {
	session := SessionFromContext(ctx)
	if session == nil || session.UserID == uuid.Nil {
		return uuid.Nil, model.NewAppError("UNAUTHORIZED", "Authentication required.", "", model.ErrUnauthorized)
	}
	return session.UserID, nil
}

// SessionMiddleware はトークンがあれば検証してセッションをコンテキストに載せる。
// トークンがない・無効な場合もリクエストは通し、判断は後段 (RequireSession など) に任せる。
func SessionMiddleware(sessions SessionManager, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r, cookieName)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			logger := GetLogger(r.Context())
			session, err := sessions.ParseSession(r.Context(), token)
			if err != nil {
				logger.Warn("Session token rejected", slog.Any("error", err))
				next.ServeHTTP(w, r)
				return
			}
			ctx := WithSession(r.Context(), session)
			ctx = WithLogger(ctx, logger.With(slog.String("user_id", session.UserID.String())))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSession はセッションのないAPIリクエストを 401 で拒否する
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if SessionFromContext(r.Context()) == nil {
			logger := GetLogger(r.Context())
			logger.Warn("Auth failed: no valid session", slog.String("path", r.URL.Path))
			webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "Authentication required.", "", model.ErrUnauthorized))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequirePageSession はセッションのないページリクエストを /auth にリダイレクトする
func RequirePageSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if SessionFromContext(r.Context()) == nil {
			GetLogger(r.Context()).Info("Redirecting unauthenticated page request", slog.String("path", r.URL.Path))
			webutil.Redirect(w, r, "/auth")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SessionRefreshMiddleware は期限の近いトークンを再発行し、Cookie を更新する。
// Bearer で来たクライアント向けに X-Refreshed-Token ヘッダーにも載せる。
func SessionRefreshMiddleware(sessions SessionManager, cookie CookieSettings) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := SessionFromContext(r.Context())
			if session == nil || session.ExpiresAt == 0 || cookie.RefreshWindow <= 0 {
				next.ServeHTTP(w, r)
				return
			}
			if time.Until(time.Unix(session.ExpiresAt, 0)) > cookie.RefreshWindow {
				next.ServeHTTP(w, r)
				return
			}

			logger := GetLogger(r.Context())
			refreshed, token, err := sessions.RefreshSession(r.Context(), session)
			if err != nil {
				// 再発行に失敗しても現在のトークンはまだ有効
				logger.Warn("Session refresh failed", slog.Any("error", err))
				next.ServeHTTP(w, r)
				return
			}
			expiresAt := time.Unix(refreshed.ExpiresAt, 0)
			SetSessionCookie(w, cookie, token, expiresAt)
			w.Header().Set("X-Refreshed-Token", token)
			logger.Info("Session refreshed", slog.Time("expires_at", expiresAt))

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), refreshed)))
		})
	}
}

// SetSessionCookie はアクセストークンをHttpOnly Cookieに書き込む
func SetSessionCookie(w http.ResponseWriter, cookie CookieSettings, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookie.Name,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie はセッションCookieを削除する
func ClearSessionCookie(w http.ResponseWriter, cookie CookieSettings) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
