package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"portail-rh/internal/config"
	"portail-rh/internal/domain"
	"portail-rh/internal/mocks"
	"portail-rh/internal/repository"
	"portail-rh/internal/service/auth"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 7 * 24 * time.Hour,
	}
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return string(hash)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	activeUser := func(t *testing.T) *domain.User {
		return &domain.User{
			ID:              uuid.New(),
			Email:           "fatima@example.com",
			PasswordHash:    hashPassword(t, "correct-horse"),
			Role:            string(domain.RoleUser),
			IsActive:        true,
			IsEmailVerified: true,
		}
	}

	t.Run("valid credentials return token pair", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		sessionRepo := new(mocks.SessionRepository)
		svc := auth.NewService(userRepo, sessionRepo, nil, testConfig())

		user := activeUser(t)
		userRepo.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()
		sessionRepo.On("Create", ctx, mock.MatchedBy(func(s *repository.Session) bool {
			return s.UserID == user.ID && s.TokenHash != ""
		})).Return(nil).Once()

		loggedIn, tokens, err := svc.Login(ctx, domain.LoginInput{
			Email:    user.Email,
			Password: "correct-horse",
		})

		assert.NoError(t, err)
		assert.Equal(t, user.ID, loggedIn.ID)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)
		sessionRepo.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := auth.NewService(userRepo, new(mocks.SessionRepository), nil, testConfig())

		user := activeUser(t)
		userRepo.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Email: user.Email, Password: "wrong"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown email gets the same error as wrong password", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := auth.NewService(userRepo, new(mocks.SessionRepository), nil, testConfig())

		userRepo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Email: "nobody@example.com", Password: "whatever"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("disabled account", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := auth.NewService(userRepo, new(mocks.SessionRepository), nil, testConfig())

		user := activeUser(t)
		user.IsActive = false
		userRepo.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Email: user.Email, Password: "correct-horse"})
		assert.ErrorIs(t, err, auth.ErrAccountDisabled)
	})

	t.Run("unverified email", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := auth.NewService(userRepo, new(mocks.SessionRepository), nil, testConfig())

		user := activeUser(t)
		user.IsEmailVerified = false
		userRepo.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Email: user.Email, Password: "correct-horse"})
		assert.ErrorIs(t, err, auth.ErrEmailNotVerified)
	})
}

func TestAuthService_ValidateAccessToken(t *testing.T) {
	ctx := context.Background()
	userRepo := new(mocks.UserRepository)
	sessionRepo := new(mocks.SessionRepository)
	svc := auth.NewService(userRepo, sessionRepo, nil, testConfig())

	user := &domain.User{
		ID:              uuid.New(),
		Email:           "karim@example.com",
		PasswordHash:    hashPassword(t, "pass-123-word"),
		Role:            string(domain.RoleChef),
		IsActive:        true,
		IsEmailVerified: true,
	}

	userRepo.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()
	sessionRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

	_, tokens, err := svc.Login(ctx, domain.LoginInput{Email: user.Email, Password: "pass-123-word"})
	assert.NoError(t, err)

	t.Run("valid token carries identity and role", func(t *testing.T) {
		claims, err := svc.ValidateAccessToken(tokens.AccessToken)
		assert.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, string(domain.RoleChef), claims.Role)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		_, err := svc.ValidateAccessToken("not.a.token")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("refresh token is not an access token", func(t *testing.T) {
		_, err := svc.ValidateAccessToken(tokens.RefreshToken)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown refresh token", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		sessionRepo := new(mocks.SessionRepository)
		svc := auth.NewService(userRepo, sessionRepo, nil, testConfig())

		sessionRepo.On("GetByTokenHash", ctx, mock.AnythingOfType("string")).Return(nil, nil).Once()

		_, err := svc.RefreshToken(ctx, "stale-token")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("rotation revokes the old session", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		sessionRepo := new(mocks.SessionRepository)
		svc := auth.NewService(userRepo, sessionRepo, nil, testConfig())

		user := &domain.User{ID: uuid.New(), Role: string(domain.RoleUser), IsActive: true, IsEmailVerified: true}
		session := &repository.Session{ID: uuid.New(), UserID: user.ID, TokenHash: "h"}

		sessionRepo.On("GetByTokenHash", ctx, mock.AnythingOfType("string")).Return(session, nil).Once()
		userRepo.On("GetByID", ctx, user.ID).Return(user, nil).Once()
		sessionRepo.On("Revoke", ctx, session.ID).Return(nil).Once()
		sessionRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		tokens, err := svc.RefreshToken(ctx, "current-token")
		assert.NoError(t, err)
		assert.NotEmpty(t, tokens.AccessToken)
		sessionRepo.AssertExpectations(t)
	})
}

func TestAuthService_ResetPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown token", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := auth.NewService(userRepo, new(mocks.SessionRepository), nil, testConfig())

		userRepo.On("GetUserByResetToken", ctx, "bad").Return(nil, nil).Once()

		assert.ErrorIs(t, svc.ResetPassword(ctx, "bad", "new-password-1"), auth.ErrInvalidToken)
	})

	t.Run("reset revokes every session", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		sessionRepo := new(mocks.SessionRepository)
		svc := auth.NewService(userRepo, sessionRepo, nil, testConfig())

		expires := time.Now().Add(30 * time.Minute)
		user := &domain.User{ID: uuid.New(), PasswordResetExpiresAt: &expires}

		userRepo.On("GetUserByResetToken", ctx, "good").Return(user, nil).Once()
		userRepo.On("Update", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("new-password-1")) == nil
		})).Return(nil).Once()
		userRepo.On("ClearPasswordResetToken", ctx, user.ID).Return(nil).Once()
		sessionRepo.On("RevokeAllForUser", ctx, user.ID).Return(nil).Once()

		assert.NoError(t, svc.ResetPassword(ctx, "good", "new-password-1"))
		sessionRepo.AssertExpectations(t)
	})
}
