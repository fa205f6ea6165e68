package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"eduafri/internal/config"
	"eduafri/internal/middleware"
	"eduafri/internal/model"
	"eduafri/internal/offline"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// Handlers はルーターに載せるハンドラ一式
type Handlers struct {
	Auth      *AuthHandler
	Content   *ContentHandler
	Progress  *ProgressHandler
	Quiz      *QuizHandler
	Download  *DownloadHandler
	Dashboard *DashboardHandler
	Admin     *AdminHandler
	Page      *PageHandler
	Offline   *offline.Handler
	Health    http.HandlerFunc
}

// RouterConfig はルーターの組み立てに必要な設定と依存
type RouterConfig struct {
	Config   *config.Config
	Logger   *slog.Logger
	Sessions middleware.SessionManager
	Admins   middleware.AdminChecker
}

var adminContentTypes = []model.ContentType{
	model.ContentTypeCourse,
	model.ContentTypeLesson,
	model.ContentTypeQuiz,
}

// CookieSettingsFromConfig はセッションCookieの設定を組み立てる
func CookieSettingsFromConfig(cfg *config.Config) middleware.CookieSettings {
	return middleware.CookieSettings{
		Name:          cfg.Auth.CookieName,
		Secure:        cfg.Auth.CookieSecure,
		RefreshWindow: cfg.JWT.RefreshWindow,
	}
}

func NewRouter(rc RouterConfig, h Handlers) http.Handler {
	cfg := rc.Config
	cookie := CookieSettingsFromConfig(cfg)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(rc.Logger))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
		Debug:            false,
	})
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(cfg.Server.HandlerTimeout()))

	if strings.EqualFold(cfg.App.Env, "dev") && cfg.Auth.DevHeader {
		rc.Logger.Warn("Using development X-User-ID authentication. Tokens are not verified.")
		r.Use(middleware.DevSessionMiddleware)
	} else {
		r.Use(middleware.SessionMiddleware(rc.Sessions, cookie.Name))
	}

	r.Get("/health", h.Health)
	r.Get("/sw.js", h.Offline.ServiceWorker)

	r.Route("/api", func(r chi.Router) {
		// --- Public ---
		r.Get("/ping", h.Offline.Ping)
		r.Head("/ping", h.Offline.Ping)
		r.Get("/content", h.Content.ListContent)
		r.Get("/content/{id}", h.Content.GetContent)
		r.Get("/languages", h.Content.ListLanguages)
		r.Post("/auth/register", h.Auth.Register)
		r.Post("/auth/login", h.Auth.Login)

		// --- Protected ---
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession)

			r.Post("/auth/logout", h.Auth.Logout)
			r.Get("/auth/profile", h.Auth.GetProfile)
			r.Put("/auth/profile", h.Auth.UpdateProfile)

			r.Get("/progress", h.Progress.GetProgress)
			r.Post("/progress", h.Progress.PostProgress)

			r.Post("/quiz", h.Quiz.SubmitQuiz)
			r.Get("/quiz/results", h.Quiz.GetResults)

			r.Post("/download", h.Download.PostDownload)
			r.Get("/downloads", h.Download.GetDownloads)
			r.Post("/downloads/clear", h.Download.ClearDownloads)
			r.Delete("/downloads/{id}", h.Download.DeleteDownload)
			r.Get("/offline/manifest", h.Download.GetOfflineManifest)

			r.Get("/dashboard", h.Dashboard.GetDashboard)
		})

		// --- Admin ---
		r.Route("/admin", func(r chi.Router) {
			// set-role はサービスロールキーでも呼べる (最初の管理者の作成用)
			r.With(middleware.RequireAdminOrServiceKey(rc.Admins, cfg.Auth.ServiceRoleKey)).
				Post("/set-role", h.Admin.SetRole)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin(rc.Admins))

				r.Get("/users", h.Admin.ListUsers)
				for _, t := range adminContentTypes {
					r.Route(strings.TrimPrefix(AdminListPath(t), "/admin"), func(r chi.Router) {
						r.Get("/", h.Admin.ListContent(t))
						r.Post("/", h.Admin.CreateContent(t))
						r.Put("/{id}", h.Admin.UpdateContent(t))
						r.Delete("/{id}", h.Admin.DeleteContent(t))
						if t == model.ContentTypeQuiz {
							r.Get("/{id}/questions", h.Admin.ListQuestions)
							r.Post("/{id}/questions", h.Admin.CreateQuestion)
						}
					})
				}
				r.Put("/questions/{id}", h.Admin.UpdateQuestion)
				r.Delete("/questions/{id}", h.Admin.DeleteQuestion)
			})
		})
	})

	// --- Pages ---
	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionRefreshMiddleware(rc.Sessions, cookie))

		r.Get("/courses", h.Page.Courses)
		r.Get("/courses/{id}", h.Page.Course)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequirePageSession)
			r.Get("/dashboard", h.Page.Dashboard)
			r.Get("/lessons/{id}", h.Page.Lesson)
			r.Get("/quizzes/{id}", h.Page.Quiz)
			r.Get("/downloads", h.Page.Downloads)
			r.Get("/profile", h.Page.Profile)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdminPage(rc.Admins))
			r.Get("/", h.Page.Admin)
			for _, t := range adminContentTypes {
				r.Route(strings.TrimPrefix(AdminListPath(t), "/admin"), func(r chi.Router) {
					r.Get("/", h.Page.AdminList(t))
					r.Get("/new", h.Page.AdminNew(t))
					r.Get("/{id}/edit", h.Page.AdminEdit(t))
					if t == model.ContentTypeQuiz {
						r.Get("/{id}/questions/new", h.Page.AdminQuestionNew)
						r.Get("/{id}/questions/{qid}/edit", h.Page.AdminQuestionEdit)
					}
				})
			}
		})
	})

	return r
}
