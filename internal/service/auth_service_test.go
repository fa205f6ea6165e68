package service_test // 公開APIだけを使ってテストする

import (
	"context"
	"errors"
	"testing"
	"time"

	"eduafri/internal/cache"
	"eduafri/internal/config"
	"eduafri/internal/model"
	"eduafri/internal/repository/mocks"
	"eduafri/internal/service"
	servicemocks "eduafri/internal/service/mocks"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type AuthServiceTestSuite struct {
	suite.Suite

	mockIdentityRepo *mocks.IdentityRepository
	mockProfileRepo  *mocks.ProfileRepository
	mockLanguageRepo *mocks.LanguageRepository
	mockMailer       *servicemocks.Mailer
	revocations      cache.RevocationStore
	cfg              *config.Config
	authService      service.AuthService
}

func (s *AuthServiceTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)

	s.mockIdentityRepo = mocks.NewIdentityRepository(s.T())
	s.mockProfileRepo = mocks.NewProfileRepository(s.T())
	s.mockLanguageRepo = mocks.NewLanguageRepository(s.T())
	s.mockMailer = servicemocks.NewMailer(s.T())
	s.revocations = cache.NewMemoryRevocationStore()

	s.cfg = &config.Config{
		App: config.AppConfig{Name: "EduAfri", SiteURL: "http://localhost:8080"},
		JWT: config.JWTConfig{
			SecretKey:      "test-secret",
			AccessTokenTTL: 15 * time.Minute,
		},
	}

	s.authService = service.NewAuthService(db, s.mockIdentityRepo, s.mockProfileRepo, s.mockLanguageRepo, s.revocations, s.mockMailer, s.cfg)
}

func TestAuthService(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func (s *AuthServiceTestSuite) appErrorCode(err error) string {
	var appErr *model.AppError
	s.Require().True(errors.As(err, &appErr), "expected *model.AppError, got %v", err)
	return appErr.Code
}

func (s *AuthServiceTestSuite) TestRegister() {
	req := &model.RegisterRequest{Email: " Amina@Example.com ", Password: "password123", Username: "amina", Language: "sw"}

	testCases := []struct {
		name        string
		setupMocks  func()
		checkResult func(resp *model.LoginResponse, err error)
	}{
		{
			name: "Success - 登録してトークンを返す",
			setupMocks: func() {
				s.mockLanguageRepo.On("Exists", mock.Anything, mock.Anything, "sw").Return(true, nil).Once()
				s.mockIdentityRepo.On("FindByEmail", mock.Anything, mock.Anything, "amina@example.com").Return(nil, model.ErrNotFound).Once()
				s.mockIdentityRepo.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*model.Identity")).
					Run(func(args mock.Arguments) {
						identity := args.Get(2).(*model.Identity)
						s.Equal("amina@example.com", identity.Email)
						s.NoError(bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte("password123")))
					}).Return(nil).Once()
				s.mockProfileRepo.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*model.Profile")).Return(nil).Once()
				s.mockMailer.On("Send", mock.Anything, "amina@example.com", mock.Anything, mock.Anything).Return(nil).Once()
			},
			checkResult: func(resp *model.LoginResponse, err error) {
				s.Require().NoError(err)
				s.NotEmpty(resp.AccessToken)
				s.Equal(model.RoleUser, resp.Profile.Role)
				s.Equal("sw", resp.Profile.LanguagePreference)
				s.Equal(model.DownloadWifiOnly, resp.Profile.DownloadPreference)

				session, err := s.authService.ParseSession(context.Background(), resp.AccessToken)
				s.Require().NoError(err)
				s.Equal(resp.Profile.ID, session.UserID)
			},
		},
		{
			name: "Success - メール送信に失敗しても登録は成功する",
			setupMocks: func() {
				s.mockLanguageRepo.On("Exists", mock.Anything, mock.Anything, "sw").Return(true, nil).Once()
				s.mockIdentityRepo.On("FindByEmail", mock.Anything, mock.Anything, "amina@example.com").Return(nil, model.ErrNotFound).Once()
				s.mockIdentityRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
				s.mockProfileRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
				s.mockMailer.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down")).Once()
			},
			checkResult: func(resp *model.LoginResponse, err error) {
				s.Require().NoError(err)
				s.NotEmpty(resp.AccessToken)
			},
		},
		{
			name: "Failure - 未対応の言語",
			setupMocks: func() {
				s.mockLanguageRepo.On("Exists", mock.Anything, mock.Anything, "sw").Return(false, nil).Once()
			},
			checkResult: func(resp *model.LoginResponse, err error) {
				s.ErrorIs(err, model.ErrInvalidInput)
				s.Equal("UNKNOWN_LANGUAGE", s.appErrorCode(err))
				s.Nil(resp)
			},
		},
		{
			name: "Failure - メールアドレスが登録済み",
			setupMocks: func() {
				s.mockLanguageRepo.On("Exists", mock.Anything, mock.Anything, "sw").Return(true, nil).Once()
				s.mockIdentityRepo.On("FindByEmail", mock.Anything, mock.Anything, "amina@example.com").Return(&model.Identity{}, nil).Once()
			},
			checkResult: func(resp *model.LoginResponse, err error) {
				s.ErrorIs(err, model.ErrConflict)
				s.Equal("DUPLICATE_EMAIL", s.appErrorCode(err))
			},
		},
		{
			name: "Failure - ユーザー名が使用済み",
			setupMocks: func() {
				s.mockLanguageRepo.On("Exists", mock.Anything, mock.Anything, "sw").Return(true, nil).Once()
				s.mockIdentityRepo.On("FindByEmail", mock.Anything, mock.Anything, "amina@example.com").Return(nil, model.ErrNotFound).Once()
				s.mockIdentityRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
				s.mockProfileRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(model.ErrConflict).Once()
			},
			checkResult: func(resp *model.LoginResponse, err error) {
				s.ErrorIs(err, model.ErrConflict)
				s.Equal("DUPLICATE_USERNAME", s.appErrorCode(err))
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()
			tc.setupMocks()
			resp, err := s.authService.Register(context.Background(), req)
			tc.checkResult(resp, err)
		})
	}
}

func (s *AuthServiceTestSuite) TestRegister_BlankUsername() {
	req := &model.RegisterRequest{Email: "amina@example.com", Password: "password123", Username: "    ", Language: "sw"}

	resp, err := s.authService.Register(context.Background(), req)
	s.ErrorIs(err, model.ErrInvalidInput)
	s.Equal("VALIDATION_ERROR", s.appErrorCode(err))
	s.Equal("username", err.(*model.AppError).Field)
	s.Nil(resp)
}

func (s *AuthServiceTestSuite) TestLogin() {
	userID := uuid.New()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	s.Require().NoError(err)
	identity := &model.Identity{UserID: userID, Email: "amina@example.com", PasswordHash: string(hash)}

	s.Run("Success", func() {
		s.SetupTest()
		s.mockIdentityRepo.On("FindByEmail", mock.Anything, mock.Anything, "amina@example.com").Return(identity, nil).Once()
		s.mockProfileRepo.On("FindByID", mock.Anything, mock.Anything, userID).Return(&model.Profile{ID: userID, Role: model.RoleUser}, nil).Once()

		resp, err := s.authService.Login(context.Background(), &model.LoginRequest{Email: "AMINA@example.com", Password: "password123"})
		s.Require().NoError(err)
		s.Equal(userID, resp.Profile.ID)
		s.Greater(resp.ExpiresAt, time.Now().Unix())
	})

	s.Run("Failure - パスワード不一致", func() {
		s.SetupTest()
		s.mockIdentityRepo.On("FindByEmail", mock.Anything, mock.Anything, "amina@example.com").Return(identity, nil).Once()

		_, err := s.authService.Login(context.Background(), &model.LoginRequest{Email: "amina@example.com", Password: "wrong-password"})
		s.ErrorIs(err, model.ErrUnauthorized)
	})

	s.Run("Failure - 未登録のメールアドレス", func() {
		s.SetupTest()
		s.mockIdentityRepo.On("FindByEmail", mock.Anything, mock.Anything, "nobody@example.com").Return(nil, model.ErrNotFound).Once()

		_, err := s.authService.Login(context.Background(), &model.LoginRequest{Email: "nobody@example.com", Password: "password123"})
		s.ErrorIs(err, model.ErrUnauthorized)
	})
}

func (s *AuthServiceTestSuite) signToken(method jwt.SigningMethod, key interface{}, claims jwt.Claims) string {
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	s.Require().NoError(err)
	return token
}

func (s *AuthServiceTestSuite) TestParseSession_Rejects() {
	now := time.Now()
	valid := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}
	expired := valid
	expired.ExpiresAt = jwt.NewNumericDate(now.Add(-time.Hour))
	noExpiry := valid
	noExpiry.ExpiresAt = nil
	badSubject := valid
	badSubject.Subject = "not-a-uuid"
	noID := valid
	noID.ID = ""

	testCases := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-jwt"},
		{name: "wrong secret", token: s.signToken(jwt.SigningMethodHS256, []byte("other-secret"), valid)},
		{name: "expired", token: s.signToken(jwt.SigningMethodHS256, []byte("test-secret"), expired)},
		{name: "missing exp", token: s.signToken(jwt.SigningMethodHS256, []byte("test-secret"), noExpiry)},
		{name: "HS512 not accepted", token: s.signToken(jwt.SigningMethodHS512, []byte("test-secret"), valid)},
		{name: "alg none", token: s.signToken(jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, valid)},
		{name: "subject not a uuid", token: s.signToken(jwt.SigningMethodHS256, []byte("test-secret"), badSubject)},
		{name: "missing jti", token: s.signToken(jwt.SigningMethodHS256, []byte("test-secret"), noID)},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			session, err := s.authService.ParseSession(context.Background(), tc.token)
			s.ErrorIs(err, model.ErrUnauthorized)
			s.Nil(session)
		})
	}
}

func (s *AuthServiceTestSuite) TestLogoutRevokesToken() {
	ctx := context.Background()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token := s.signToken(jwt.SigningMethodHS256, []byte("test-secret"), claims)

	session, err := s.authService.ParseSession(ctx, token)
	s.Require().NoError(err)

	s.Require().NoError(s.authService.Logout(ctx, session))

	_, err = s.authService.ParseSession(ctx, token)
	s.ErrorIs(err, model.ErrUnauthorized)
	s.Equal("TOKEN_REVOKED", s.appErrorCode(err))
}

func (s *AuthServiceTestSuite) TestRefreshSession() {
	ctx := context.Background()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(2 * time.Minute)),
	}
	oldToken := s.signToken(jwt.SigningMethodHS256, []byte("test-secret"), claims)
	oldSession, err := s.authService.ParseSession(ctx, oldToken)
	s.Require().NoError(err)

	refreshed, newToken, err := s.authService.RefreshSession(ctx, oldSession)
	s.Require().NoError(err)
	s.Equal(oldSession.UserID, refreshed.UserID)
	s.NotEqual(oldSession.TokenID, refreshed.TokenID)
	s.Greater(refreshed.ExpiresAt, oldSession.ExpiresAt)

	parsed, err := s.authService.ParseSession(ctx, newToken)
	s.Require().NoError(err)
	s.Equal(refreshed.TokenID, parsed.TokenID)

	_, err = s.authService.ParseSession(ctx, oldToken)
	s.ErrorIs(err, model.ErrUnauthorized, "the replaced token is revoked")
}
