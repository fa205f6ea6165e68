package handlers

import (
	"log/slog"
	"net/http"

	"eduafri/internal/middleware"
	"eduafri/internal/model"
	"eduafri/internal/service"
	"eduafri/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// PageHandler はページローダー群。
// 対象が見つからない (ストアのエラーを含む) 場合は一覧ページへ 302 で戻す。リトライはしない。
type PageHandler struct {
	contentService   service.ContentService
	quizService      service.QuizService
	downloadService  service.DownloadService
	profileService   service.ProfileService
	dashboardService service.DashboardService
}

func NewPageHandler(
	contentService service.ContentService,
	quizService service.QuizService,
	downloadService service.DownloadService,
	profileService service.ProfileService,
	dashboardService service.DashboardService,
) *PageHandler {
	return &PageHandler{
		contentService:   contentService,
		quizService:      quizService,
		downloadService:  downloadService,
		profileService:   profileService,
		dashboardService: dashboardService,
	}
}

// AdminListPath は種類ごとの管理一覧ページのパス
func AdminListPath(contentType model.ContentType) string {
	switch contentType {
	case model.ContentTypeCourse:
		return "/admin/courses"
	case model.ContentTypeLesson:
		return "/admin/lessons"
	case model.ContentTypeQuiz:
		return "/admin/quizzes"
	}
	return "/admin"
}

func pageLogger(r *http.Request, page string) *slog.Logger {
	return middleware.GetLogger(r.Context()).With(slog.String("page", page))
}

// languagesForForm は取得に失敗しても空リストでフォームを出す
func (h *PageHandler) languagesForForm(r *http.Request, logger *slog.Logger) []*model.Language {
	languages, err := h.contentService.ListLanguages(r.Context())
	if err != nil {
		logger.Warn("Failed to load languages for form", slog.Any("error", err))
		return []*model.Language{}
	}
	return languages
}

// loadDetail は id と種類で詳細を取り、見つからなければ fallback へリダイレクトして nil を返す
func (h *PageHandler) loadDetail(w http.ResponseWriter, r *http.Request, logger *slog.Logger, contentType model.ContentType, fallback string) *model.ContentDetail {
	contentID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		webutil.Redirect(w, r, fallback)
		return nil
	}
	detail, err := h.contentService.GetContentDetail(r.Context(), contentID)
	if err != nil || detail.Type != contentType {
		logger.Info("Page record not found, redirecting", slog.String("id", contentID.String()), slog.String("fallback", fallback))
		webutil.Redirect(w, r, fallback)
		return nil
	}
	return detail
}

func (h *PageHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	logger := pageLogger(r, "dashboard")
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.Redirect(w, r, "/auth")
		return
	}

	dashboard, err := h.dashboardService.GetDashboard(r.Context(), userID)
	if err != nil {
		logger.Warn("Dashboard load failed, redirecting", slog.Any("error", err))
		webutil.Redirect(w, r, "/courses")
		return
	}
	webutil.RespondPage(w, "dashboard", dashboard, logger)
}

// Courses は公開のコース一覧。?language で絞り込める。
func (h *PageHandler) Courses(w http.ResponseWriter, r *http.Request) {
	logger := pageLogger(r, "courses")

	courses, err := h.contentService.ListContent(r.Context(), model.ContentFilter{
		Type:     model.ContentTypeCourse,
		Language: r.URL.Query().Get("language"),
		Subject:  r.URL.Query().Get("subject"),
		Query:    r.URL.Query().Get("query"),
	})
	if err != nil {
		logger.Warn("Course list load failed, redirecting", slog.Any("error", err))
		webutil.Redirect(w, r, "/")
		return
	}
	webutil.RespondPage(w, "courses", map[string]interface{}{
		"courses":   courses,
		"languages": h.languagesForForm(r, logger),
	}, logger)
}

func (h *PageHandler) Course(w http.ResponseWriter, r *http.Request) {
	logger := pageLogger(r, "course")
	detail := h.loadDetail(w, r, logger, model.ContentTypeCourse, "/courses")
	if detail == nil {
		return
	}
	webutil.RespondPage(w, "course", detail, logger)
}

func (h *PageHandler) Lesson(w http.ResponseWriter, r *http.Request) {
	logger := pageLogger(r, "lesson")
	detail := h.loadDetail(w, r, logger, model.ContentTypeLesson, "/courses")
	if detail == nil {
		return
	}
	webutil.RespondPage(w, "lesson", detail, logger)
}

// Quiz は設問 (正解なし) と自分の過去の結果を返す
func (h *PageHandler) Quiz(w http.ResponseWriter, r *http.Request) {
	logger := pageLogger(r, "quiz")
	detail := h.loadDetail(w, r, logger, model.ContentTypeQuiz, "/courses")
	if detail == nil {
		return
	}

	results := []*model.UserQuizResult{}
	if userID, err := middleware.GetUserIDFromContext(r.Context()); err == nil {
		if loaded, err := h.quizService.ListResults(r.Context(), userID, &detail.ID); err == nil {
			results = loaded
		} else {
			logger.Warn("Failed to load previous quiz results", slog.Any("error", err))
		}
	}
	webutil.RespondPage(w, "quiz", map[string]interface{}{
		"quiz":    detail,
		"results": results,
	}, logger)
}

func (h *PageHandler) Downloads(w http.ResponseWriter, r *http.Request) {
	logger := pageLogger(r, "downloads")
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.Redirect(w, r, "/auth")
		return
	}

	manifest, err := h.downloadService.OfflineManifest(r.Context(), userID)
	if err != nil {
		logger.Warn("Downloads load failed, redirecting", slog.Any("error", err))
		webutil.Redirect(w, r, "/dashboard")
		return
	}
	webutil.RespondPage(w, "downloads", manifest, logger)
}

func (h *PageHandler) Profile(w http.ResponseWriter, r *http.Request) {
	logger := pageLogger(r, "profile")
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.Redirect(w, r, "/auth")
		return
	}

	profile, err := h.profileService.GetProfile(r.Context(), userID)
	if err != nil {
		logger.Warn("Profile load failed, redirecting", slog.Any("error", err))
		webutil.Redirect(w, r, "/")
		return
	}
	webutil.RespondPage(w, "profile", map[string]interface{}{
		"profile":   profile,
		"languages": h.languagesForForm(r, logger),
	}, logger)
}

// Admin はコンテンツ種類ごとの件数を返す
func (h *PageHandler) Admin(w http.ResponseWriter, r *http.Request) {
	logger := pageLogger(r, "admin")

	counts := make(map[model.ContentType]int, 3)
	for _, t := range []model.ContentType{model.ContentTypeCourse, model.ContentTypeLesson, model.ContentTypeQuiz} {
		contents, err := h.contentService.ListContent(r.Context(), model.ContentFilter{Type: t})
		if err != nil {
			logger.Warn("Admin counts load failed, redirecting", slog.String("type", string(t)), slog.Any("error", err))
			webutil.Redirect(w, r, "/")
			return
		}
		counts[t] = len(contents)
	}
	webutil.RespondPage(w, "admin", map[string]interface{}{"counts": counts}, logger)
}

func (h *PageHandler) AdminList(contentType model.ContentType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := pageLogger(r, "admin_list").With(slog.String("type", string(contentType)))

		contents, err := h.contentService.ListContent(r.Context(), model.ContentFilter{Type: contentType})
		if err != nil {
			logger.Warn("Admin list load failed, redirecting", slog.Any("error", err))
			webutil.Redirect(w, r, "/admin")
			return
		}
		webutil.RespondPage(w, "admin_"+string(contentType)+"_list", map[string]interface{}{
			"type":  contentType,
			"items": contents,
		}, logger)
	}
}

// formOptions はフォームのセレクトに出す親候補 (レッスン → コース、クイズ → コースとレッスン)
func (h *PageHandler) formOptions(r *http.Request, logger *slog.Logger, contentType model.ContentType) map[string]interface{} {
	props := map[string]interface{}{
		"type":      contentType,
		"languages": h.languagesForForm(r, logger),
	}
	parents := func(t model.ContentType) []*model.Content {
		contents, err := h.contentService.ListContent(r.Context(), model.ContentFilter{Type: t})
		if err != nil {
			logger.Warn("Failed to load parent options", slog.String("parent_type", string(t)), slog.Any("error", err))
			return []*model.Content{}
		}
		return contents
	}
	switch contentType {
	case model.ContentTypeLesson:
		props["courses"] = parents(model.ContentTypeCourse)
	case model.ContentTypeQuiz:
		props["courses"] = parents(model.ContentTypeCourse)
		props["lessons"] = parents(model.ContentTypeLesson)
	}
	return props
}

func (h *PageHandler) AdminNew(contentType model.ContentType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := pageLogger(r, "admin_new").With(slog.String("type", string(contentType)))
		webutil.RespondPage(w, "admin_"+string(contentType)+"_new", h.formOptions(r, logger, contentType), logger)
	}
}

func (h *PageHandler) AdminEdit(contentType model.ContentType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := pageLogger(r, "admin_edit").With(slog.String("type", string(contentType)))
		fallback := AdminListPath(contentType)

		contentID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			webutil.Redirect(w, r, fallback)
			return
		}
		content, err := h.contentService.GetContent(r.Context(), contentID, contentType)
		if err != nil {
			logger.Info("Page record not found, redirecting", slog.String("id", contentID.String()), slog.String("fallback", fallback))
			webutil.Redirect(w, r, fallback)
			return
		}

		props := h.formOptions(r, logger, contentType)
		props["item"] = content
		if contentType == model.ContentTypeQuiz {
			questions, err := h.quizService.ListQuestions(r.Context(), contentID)
			if err != nil {
				logger.Warn("Failed to load questions for quiz edit", slog.Any("error", err))
				questions = []*model.Question{}
			}
			props["questions"] = questions
		}
		webutil.RespondPage(w, "admin_"+string(contentType)+"_edit", props, logger)
	}
}

func (h *PageHandler) AdminQuestionNew(w http.ResponseWriter, r *http.Request) {
	logger := pageLogger(r, "admin_question_new")
	fallback := AdminListPath(model.ContentTypeQuiz)

	quizID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		webutil.Redirect(w, r, fallback)
		return
	}
	quiz, err := h.contentService.GetContent(r.Context(), quizID, model.ContentTypeQuiz)
	if err != nil {
		webutil.Redirect(w, r, fallback)
		return
	}
	webutil.RespondPage(w, "admin_question_new", map[string]interface{}{"quiz": quiz}, logger)
}

func (h *PageHandler) AdminQuestionEdit(w http.ResponseWriter, r *http.Request) {
	logger := pageLogger(r, "admin_question_edit")
	fallback := AdminListPath(model.ContentTypeQuiz)

	quizID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		webutil.Redirect(w, r, fallback)
		return
	}
	questionID, err := uuid.Parse(chi.URLParam(r, "qid"))
	if err != nil {
		webutil.Redirect(w, r, fallback)
		return
	}

	quiz, err := h.contentService.GetContent(r.Context(), quizID, model.ContentTypeQuiz)
	if err != nil {
		webutil.Redirect(w, r, fallback)
		return
	}
	question, err := h.quizService.GetQuestion(r.Context(), questionID)
	if err != nil || question.QuizID != quizID {
		logger.Info("Question not found for quiz, redirecting", slog.String("question_id", questionID.String()))
		webutil.Redirect(w, r, fallback)
		return
	}
	webutil.RespondPage(w, "admin_question_edit", map[string]interface{}{
		"quiz":     quiz,
		"question": question,
	}, logger)
}
