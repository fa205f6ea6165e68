package middleware

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"

	"eduafri/internal/model"
	"eduafri/internal/webutil"

	"github.com/google/uuid"
)

// AdminChecker は管理者判定を行う唯一のポリシー (policy.Authorizer が実装する)
type AdminChecker interface {
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
}

// ServiceKeyHeader はサービスロールキーを載せるヘッダー名
const ServiceKeyHeader = "X-Service-Key"

type serviceKeyCtxKey struct{}

// IsServiceRequest はサービスロールキーで認可されたリクエストかどうか
func IsServiceRequest(ctx context.Context) bool {
	ok, _ := ctx.Value(serviceKeyCtxKey{}).(bool)
	return ok
}

// RequireAdmin は管理者以外のAPIリクエストを拒否する (未認証 401, 権限なし 403)
func RequireAdmin(checker AdminChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())
			userID, err := GetUserIDFromContext(r.Context())
			if err != nil {
				webutil.HandleError(w, logger, err)
				return
			}
			isAdmin, err := checker.IsAdmin(r.Context(), userID)
			if err != nil {
				logger.Error("Admin check failed", slog.Any("error", err))
				webutil.HandleError(w, logger, err)
				return
			}
			if !isAdmin {
				logger.Warn("Admin access denied", slog.String("path", r.URL.Path))
				webutil.HandleError(w, logger, model.NewAppError("FORBIDDEN", "Admin role required.", "", model.ErrForbidden))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdminOrServiceKey はサービスロールキー、または管理者セッションを要求する
func RequireAdminOrServiceKey(checker AdminChecker, serviceRoleKey string) func(http.Handler) http.Handler {
	adminOnly := RequireAdmin(checker)
	return func(next http.Handler) http.Handler {
		admin := adminOnly(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(ServiceKeyHeader)
			if serviceRoleKey != "" && key != "" &&
				subtle.ConstantTimeCompare([]byte(key), []byte(serviceRoleKey)) == 1 {
				GetLogger(r.Context()).Info("Request authorized with service role key")
				ctx := context.WithValue(r.Context(), serviceKeyCtxKey{}, true)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
			admin.ServeHTTP(w, r)
		})
	}
}

// RequireAdminPage は管理者以外のページリクエストを / にリダイレクトする。
// 未認証は RequirePageSession と同じく /auth へ。
func RequireAdminPage(checker AdminChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())
			userID, err := GetUserIDFromContext(r.Context())
			if err != nil {
				webutil.Redirect(w, r, "/auth")
				return
			}
			isAdmin, err := checker.IsAdmin(r.Context(), userID)
			if err != nil {
				logger.Warn("Admin check failed on page request", slog.Any("error", err))
			}
			if err != nil || !isAdmin {
				webutil.Redirect(w, r, "/")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
