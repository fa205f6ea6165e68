//go:generate mockery --name AuthService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eduafri/internal/cache"
	"eduafri/internal/config"
	"eduafri/internal/middleware"
	"eduafri/internal/model"
	"eduafri/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.LoginResponse, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	Logout(ctx context.Context, session *model.Session) error
	ParseSession(ctx context.Context, token string) (*model.Session, error)
	RefreshSession(ctx context.Context, session *model.Session) (*model.Session, string, error)
}

type authService struct {
	db           *gorm.DB
	identityRepo repository.IdentityRepository
	profileRepo  repository.ProfileRepository
	languageRepo repository.LanguageRepository
	revocations  cache.RevocationStore
	mailer       Mailer
	cfg          *config.Config
}

func NewAuthService(
	db *gorm.DB,
	identityRepo repository.IdentityRepository,
	profileRepo repository.ProfileRepository,
	languageRepo repository.LanguageRepository,
	revocations cache.RevocationStore,
	mailer Mailer,
	cfg *config.Config,
) AuthService {
	return &authService{
		db:           db,
		identityRepo: identityRepo,
		profileRepo:  profileRepo,
		languageRepo: languageRepo,
		revocations:  revocations,
		mailer:       mailer,
		cfg:          cfg,
	}
}

var errBadCredentials = model.NewAppError("AUTHENTICATION_FAILED", "Invalid email or password.", "", model.ErrUnauthorized)

// Register は identity と profile を同一トランザクションで作成し、ウェルカムメールを送る。
// メール送信の失敗は登録を失敗させない。
func (s *authService) Register(ctx context.Context, req *model.RegisterRequest) (*model.LoginResponse, error) {
	logger := middleware.GetLogger(ctx)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	username, err := normalizeUsername(req.Username)
	if err != nil {
		return nil, err
	}

	language := req.Language
	if language == "" {
		language = "en"
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Failed to hash password", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to process the password.", "", err)
	}

	profile := &model.Profile{
		ID:                 uuid.New(),
		Role:               model.RoleUser,
		Username:           username,
		LanguagePreference: language,
		DownloadPreference: model.DownloadWifiOnly,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := s.languageRepo.Exists(ctx, tx, language)
		if err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
		}
		if !exists {
			return model.NewAppError("UNKNOWN_LANGUAGE", "Unsupported language.", "language", model.ErrInvalidInput)
		}

		if _, err := s.identityRepo.FindByEmail(ctx, tx, email); err == nil {
			logger.Warn("Email already registered")
			return model.NewAppError("DUPLICATE_EMAIL", "This email address is already registered.", "email", model.ErrConflict)
		} else if !errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
		}

		identity := &model.Identity{
			UserID:       profile.ID,
			Email:        email,
			PasswordHash: string(hashedPassword),
		}
		if err := s.identityRepo.Create(ctx, tx, identity); err != nil {
			if errors.Is(err, model.ErrConflict) {
				return model.NewAppError("DUPLICATE_EMAIL", "This email address is already registered.", "email", model.ErrConflict)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to create the account.", "", err)
		}
		if err := s.profileRepo.Create(ctx, tx, profile); err != nil {
			if errors.Is(err, model.ErrConflict) {
				return model.NewAppError("DUPLICATE_USERNAME", "This username is already taken.", "username", model.ErrConflict)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to create the profile.", "", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("User registered", "user_id", profile.ID.String())
	if err := s.sendWelcomeEmail(ctx, email, profile.Username); err != nil {
		logger.Error("Failed to send welcome email", "error", err, "user_id", profile.ID.String())
	}

	return s.issueLoginResponse(ctx, profile)
}

func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	logger := middleware.GetLogger(ctx)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	identity, err := s.identityRepo.FindByEmail(ctx, s.db, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("Login failed: user not found")
			return nil, errBadCredentials
		}
		logger.Error("Login failed: db error on FindByEmail", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(req.Password)); err != nil {
		logger.Warn("Login failed: password mismatch", "user_id", identity.UserID.String())
		return nil, errBadCredentials
	}

	profile, err := s.profileRepo.FindByID(ctx, s.db, identity.UserID)
	if err != nil {
		logger.Error("Login failed: profile missing for identity", "error", err, "user_id", identity.UserID.String())
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
	}

	logger.Info("Login successful", "user_id", identity.UserID.String())
	return s.issueLoginResponse(ctx, profile)
}

// Logout はトークンの jti を有効期限まで失効させる
func (s *authService) Logout(ctx context.Context, session *model.Session) error {
	logger := middleware.GetLogger(ctx)
	if session == nil || session.TokenID == "" {
		return nil
	}
	if err := s.revocations.Revoke(ctx, session.TokenID, time.Unix(session.ExpiresAt, 0)); err != nil {
		logger.Error("Failed to revoke token", "error", err)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to sign out.", "", err)
	}
	logger.Info("Token revoked", "user_id", session.UserID.String())
	return nil
}

// ParseSession は署名 (HS256)、有効期限、失効をチェックする
func (s *authService) ParseSession(ctx context.Context, tokenString string) (*model.Session, error) {
	claims := &model.SessionClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, model.NewAppError("INVALID_TOKEN", "The session token is invalid.", "", fmt.Errorf("%w: %v", model.ErrUnauthorized, err))
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, model.NewAppError("INVALID_TOKEN", "The session token is invalid.", "", model.ErrUnauthorized)
	}
	if claims.ID == "" {
		return nil, model.NewAppError("INVALID_TOKEN", "The session token is invalid.", "", model.ErrUnauthorized)
	}

	revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
	}
	if revoked {
		return nil, model.NewAppError("TOKEN_REVOKED", "The session has been signed out.", "", model.ErrUnauthorized)
	}

	return &model.Session{
		UserID:    userID,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Unix(),
	}, nil
}

// RefreshSession は新しいトークンを発行し、古い jti を失効させる
func (s *authService) RefreshSession(ctx context.Context, session *model.Session) (*model.Session, string, error) {
	token, refreshed, err := s.issueToken(session.UserID)
	if err != nil {
		return nil, "", err
	}
	if err := s.Logout(ctx, session); err != nil {
		return nil, "", err
	}
	return refreshed, token, nil
}

func (s *authService) issueLoginResponse(ctx context.Context, profile *model.Profile) (*model.LoginResponse, error) {
	token, session, err := s.issueToken(profile.ID)
	if err != nil {
		middleware.GetLogger(ctx).Error("Failed to sign JWT", "error", err, "user_id", profile.ID.String())
		return nil, err
	}
	return &model.LoginResponse{
		AccessToken: token,
		ExpiresAt:   session.ExpiresAt,
		Profile:     profile,
	}, nil
}

func (s *authService) issueToken(userID uuid.UUID) (string, *model.Session, error) {
	now := time.Now()
	expiresAt := now.Add(s.cfg.JWT.AccessTokenTTL)
	claims := &model.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.cfg.App.Name,
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to issue the session token.", "", err)
	}
	return signed, &model.Session{UserID: userID, TokenID: claims.ID, ExpiresAt: expiresAt.Unix()}, nil
}

func (s *authService) sendWelcomeEmail(ctx context.Context, email, username string) error {
	subject := "Welcome to " + s.cfg.App.Name
	body := fmt.Sprintf("Hello %s,\n\nYour account is ready. Start learning at %s/courses\n\nDownload lessons while you are online to keep learning offline.",
		username, strings.TrimRight(s.cfg.App.SiteURL, "/"))
	return s.mailer.Send(ctx, email, subject, body)
}
