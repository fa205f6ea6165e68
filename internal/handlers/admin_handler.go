package handlers

import (
	"log/slog"
	"net/http"

	"eduafri/internal/middleware"
	"eduafri/internal/model"
	"eduafri/internal/service"
	"eduafri/internal/webutil"

	"github.com/go-chi/chi/v5"
)

// AdminHandler は /api/admin 配下の CRUD。認可は RequireAdmin 系のミドルウェアが済ませている。
type AdminHandler struct {
	contentService service.ContentService
	quizService    service.QuizService
	profileService service.ProfileService
}

func NewAdminHandler(contentService service.ContentService, quizService service.QuizService, profileService service.ProfileService) *AdminHandler {
	return &AdminHandler{
		contentService: contentService,
		quizService:    quizService,
		profileService: profileService,
	}
}

func adminLogger(r *http.Request, handler string) *slog.Logger {
	return middleware.GetLogger(r.Context()).With(
		slog.String("handler", handler),
		slog.Bool("service_key", middleware.IsServiceRequest(r.Context())),
	)
}

// SetRole は POST /api/admin/set-role
func (h *AdminHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	logger := adminLogger(r, "SetRole")

	var req model.SetRoleRequest
	if !bindJSON(w, r, logger, &req) {
		return
	}

	profile, err := h.profileService.SetRole(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Role updated", slog.String("user_id", req.UserID.String()), slog.String("role", req.Role))
	webutil.RespondSuccess(w, http.StatusOK, profile, logger)
}

// ListUsers は GET /api/admin/users?role=
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	logger := adminLogger(r, "ListUsers")

	profiles, err := h.profileService.ListUsers(r.Context(), r.URL.Query().Get("role"))
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondSuccess(w, http.StatusOK, profiles, logger)
}

func (h *AdminHandler) ListContent(contentType model.ContentType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := adminLogger(r, "ListContent").With(slog.String("type", string(contentType)))

		filter, err := contentFilterFromQuery(r)
		if err != nil {
			webutil.HandleError(w, logger, err)
			return
		}
		filter.Type = contentType

		contents, err := h.contentService.ListContent(r.Context(), filter)
		if err != nil {
			webutil.HandleError(w, logger, err)
			return
		}
		webutil.RespondSuccess(w, http.StatusOK, contents, logger)
	}
}

func (h *AdminHandler) CreateContent(contentType model.ContentType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := adminLogger(r, "CreateContent").With(slog.String("type", string(contentType)))

		var req model.ContentRequest
		if !bindJSON(w, r, logger, &req) {
			return
		}

		content, err := h.contentService.CreateContent(r.Context(), contentType, &req)
		if err != nil {
			webutil.HandleError(w, logger, err)
			return
		}
		webutil.RespondSuccess(w, http.StatusCreated, content, logger)
	}
}

func (h *AdminHandler) UpdateContent(contentType model.ContentType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := adminLogger(r, "UpdateContent").With(slog.String("type", string(contentType)))

		contentID, err := webutil.ParseUUIDParam(chi.URLParam(r, "id"), "id")
		if err != nil {
			webutil.HandleError(w, logger, err)
			return
		}

		var req model.ContentRequest
		if !bindJSON(w, r, logger, &req) {
			return
		}

		content, err := h.contentService.UpdateContent(r.Context(), contentType, contentID, &req)
		if err != nil {
			webutil.HandleError(w, logger, err)
			return
		}
		webutil.RespondSuccess(w, http.StatusOK, content, logger)
	}
}

func (h *AdminHandler) DeleteContent(contentType model.ContentType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := adminLogger(r, "DeleteContent").With(slog.String("type", string(contentType)))

		contentID, err := webutil.ParseUUIDParam(chi.URLParam(r, "id"), "id")
		if err != nil {
			webutil.HandleError(w, logger, err)
			return
		}

		if err := h.contentService.DeleteContent(r.Context(), contentType, contentID); err != nil {
			webutil.HandleError(w, logger, err)
			return
		}
		webutil.RespondSuccess(w, http.StatusOK, map[string]string{"id": contentID.String()}, logger)
	}
}

// ListQuestions は正解を含む設問を返す (管理者のみ)
func (h *AdminHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	logger := adminLogger(r, "ListQuestions")

	quizID, err := webutil.ParseUUIDParam(chi.URLParam(r, "id"), "id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	questions, err := h.quizService.ListQuestions(r.Context(), quizID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondSuccess(w, http.StatusOK, questions, logger)
}

func (h *AdminHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	logger := adminLogger(r, "CreateQuestion")

	quizID, err := webutil.ParseUUIDParam(chi.URLParam(r, "id"), "id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.QuestionRequest
	if !bindJSON(w, r, logger, &req) {
		return
	}

	question, err := h.quizService.CreateQuestion(r.Context(), quizID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondSuccess(w, http.StatusCreated, question, logger)
}

func (h *AdminHandler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	logger := adminLogger(r, "UpdateQuestion")

	questionID, err := webutil.ParseUUIDParam(chi.URLParam(r, "id"), "id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.QuestionRequest
	if !bindJSON(w, r, logger, &req) {
		return
	}

	question, err := h.quizService.UpdateQuestion(r.Context(), questionID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondSuccess(w, http.StatusOK, question, logger)
}

func (h *AdminHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	logger := adminLogger(r, "DeleteQuestion")

	questionID, err := webutil.ParseUUIDParam(chi.URLParam(r, "id"), "id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	if err := h.quizService.DeleteQuestion(r.Context(), questionID); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondSuccess(w, http.StatusOK, map[string]string{"id": questionID.String()}, logger)
}
