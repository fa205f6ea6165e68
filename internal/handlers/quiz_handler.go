package handlers

import (
	"log/slog"
	"net/http"

	"eduafri/internal/middleware"
	"eduafri/internal/model"
	"eduafri/internal/service"
	"eduafri/internal/webutil"
)

type QuizHandler struct {
	service service.QuizService
}

func NewQuizHandler(s service.QuizService) *QuizHandler {
	return &QuizHandler{service: s}
}

// SubmitQuiz は POST /api/quiz
func (h *QuizHandler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "SubmitQuiz"))
	userID, ok := requireUser(w, r, logger)
	if !ok {
		return
	}

	var req model.SubmitQuizRequest
	if !bindJSON(w, r, logger, &req) {
		return
	}

	submission, err := h.service.Submit(r.Context(), userID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondSuccess(w, http.StatusCreated, submission, logger)
}

// GetResults は GET /api/quiz/results?quiz_id
func (h *QuizHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "GetResults"))
	userID, ok := requireUser(w, r, logger)
	if !ok {
		return
	}

	quizID, err := optionalUUIDQuery(r, "quiz_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	results, err := h.service.ListResults(r.Context(), userID, quizID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondSuccess(w, http.StatusOK, results, logger)
}
