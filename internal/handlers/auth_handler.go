package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"eduafri/internal/middleware"
	"eduafri/internal/model"
	"eduafri/internal/service"
	"eduafri/internal/webutil"
)

type AuthHandler struct {
	authService    service.AuthService
	profileService service.ProfileService
	cookie         middleware.CookieSettings
}

func NewAuthHandler(authService service.AuthService, profileService service.ProfileService, cookie middleware.CookieSettings) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		profileService: profileService,
		cookie:         cookie,
	}
}

// Register はアカウントを作成し、そのままログイン状態にする
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "Register"))

	var req model.RegisterRequest
	if !bindJSON(w, r, logger, &req) {
		return
	}

	resp, err := h.authService.Register(r.Context(), &req)
	if err != nil {
		logger.Warn("Registration failed in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	middleware.SetSessionCookie(w, h.cookie, resp.AccessToken, time.Unix(resp.ExpiresAt, 0))
	logger.Info("Registration successful", slog.String("user_id", resp.Profile.ID.String()))
	webutil.RespondSuccess(w, http.StatusCreated, resp, logger)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "Login"))

	var req model.LoginRequest
	if !bindJSON(w, r, logger, &req) {
		return
	}

	resp, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	middleware.SetSessionCookie(w, h.cookie, resp.AccessToken, time.Unix(resp.ExpiresAt, 0))
	logger.Info("Login successful", slog.String("user_id", resp.Profile.ID.String()))
	webutil.RespondSuccess(w, http.StatusOK, resp, logger)
}

// Logout はトークンを失効させ、Cookie を消す
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "Logout"))

	if err := h.authService.Logout(r.Context(), middleware.SessionFromContext(r.Context())); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	middleware.ClearSessionCookie(w, h.cookie)
	webutil.RespondSuccess(w, http.StatusOK, map[string]bool{"signed_out": true}, logger)
}

func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "GetProfile"))
	userID, ok := requireUser(w, r, logger)
	if !ok {
		return
	}

	profile, err := h.profileService.GetProfile(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondSuccess(w, http.StatusOK, profile, logger)
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "UpdateProfile"))
	userID, ok := requireUser(w, r, logger)
	if !ok {
		return
	}

	var req model.UpdateProfileRequest
	if !bindJSON(w, r, logger, &req) {
		return
	}

	profile, err := h.profileService.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		logger.Warn("Profile update failed in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Profile updated")
	webutil.RespondSuccess(w, http.StatusOK, profile, logger)
}
