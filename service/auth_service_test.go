package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"skysage.app/models"
	"skysage.app/pkg/errors"
	"skysage.app/providers"
	"skysage.app/repository"
)

func setupAuthService(t *testing.T) *AuthService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.UserProfile{}, &models.Credential{}))

	identity := providers.NewLocalIdentityProvider(repository.NewCredentialRepository(db), time.Hour)
	profiles := repository.NewUserProfileRepository(db)
	return NewAuthService(identity, profiles, 5, 30*time.Second)
}

func signUpReq() *models.SignUpRequest {
	return &models.SignUpRequest{
		Name:     "Test User",
		Email:    "user@example.com",
		Password: "secret1",
	}
}

func TestAuthService_SignUp(t *testing.T) {
	service := setupAuthService(t)

	profile, err := service.SignUp(context.Background(), signUpReq())
	require.NoError(t, err)
	assert.NotEmpty(t, profile.UID)
	assert.Equal(t, "Test User", profile.Name)
	assert.Equal(t, "user@example.com", profile.Email)
	assert.False(t, profile.CreatedAt.IsZero())
}

func TestAuthService_SignUpValidation(t *testing.T) {
	service := setupAuthService(t)

	tests := []struct {
		name    string
		mutate  func(*models.SignUpRequest)
		field   string
		message string
	}{
		{
			name:    "missing name",
			mutate:  func(r *models.SignUpRequest) { r.Name = "  " },
			field:   "name",
			message: "Name is required",
		},
		{
			name:    "invalid email",
			mutate:  func(r *models.SignUpRequest) { r.Email = "not-an-email" },
			field:   "email",
			message: "Invalid email address format.",
		},
		{
			name:    "short password",
			mutate:  func(r *models.SignUpRequest) { r.Password = "12345" },
			field:   "password",
			message: "Password must be at least 6 characters long",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := signUpReq()
			tt.mutate(req)

			_, err := service.SignUp(context.Background(), req)
			var appErr *errors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.field, appErr.Field)
			assert.Equal(t, tt.message, appErr.Message)
		})
	}
}

func TestAuthService_SignUpDuplicateEmail(t *testing.T) {
	service := setupAuthService(t)

	_, err := service.SignUp(context.Background(), signUpReq())
	require.NoError(t, err)

	_, err = service.SignUp(context.Background(), signUpReq())
	require.Error(t, err)
	assert.True(t, errors.IsAlreadyExistsError(err))
	assert.Contains(t, err.Error(), "An account with this email already exists.")
}

func TestAuthService_SignIn(t *testing.T) {
	service := setupAuthService(t)
	_, err := service.SignUp(context.Background(), signUpReq())
	require.NoError(t, err)

	session, err := service.SignIn(context.Background(), &models.SignInRequest{
		Email:    "user@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.NotEmpty(t, session.UserID)
	assert.True(t, session.ExpiresAt.After(time.Now()))
}

func TestAuthService_SignInErrorMessages(t *testing.T) {
	service := setupAuthService(t)
	_, err := service.SignUp(context.Background(), signUpReq())
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		message  string
	}{
		{
			name:     "malformed email",
			email:    "nope",
			password: "secret1",
			message:  "Invalid email address format.",
		},
		{
			name:     "unknown account",
			email:    "ghost@example.com",
			password: "secret1",
			message:  "No account found with this email.",
		},
		{
			name:     "wrong password",
			email:    "user@example.com",
			password: "wrong1",
			message:  "Incorrect password.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.SignIn(context.Background(), &models.SignInRequest{
				Email:    tt.email,
				Password: tt.password,
			})
			require.Error(t, err)
			assert.True(t, errors.IsAuthError(err))
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestAuthService_SignInLockout(t *testing.T) {
	service := setupAuthService(t)
	_, err := service.SignUp(context.Background(), signUpReq())
	require.NoError(t, err)

	current := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return current }

	badReq := &models.SignInRequest{Email: "user@example.com", Password: "wrong1"}
	for i := 0; i < 5; i++ {
		_, err := service.SignIn(context.Background(), badReq)
		require.Error(t, err)
		assert.False(t, errors.IsRateLimitedError(err), "attempt %d should not be locked yet", i+1)
	}

	// The fifth failure arms the lockout; even the correct password is
	// rejected until it expires.
	goodReq := &models.SignInRequest{Email: "user@example.com", Password: "secret1"}
	_, err = service.SignIn(context.Background(), goodReq)
	require.Error(t, err)
	assert.True(t, errors.IsRateLimitedError(err))
	assert.Contains(t, err.Error(), "Too many failed login attempts. Please try again later.")

	current = current.Add(31 * time.Second)
	_, err = service.SignIn(context.Background(), goodReq)
	assert.NoError(t, err)
}

func TestAuthService_SignInSuccessClearsFailures(t *testing.T) {
	service := setupAuthService(t)
	_, err := service.SignUp(context.Background(), signUpReq())
	require.NoError(t, err)

	badReq := &models.SignInRequest{Email: "user@example.com", Password: "wrong1"}
	goodReq := &models.SignInRequest{Email: "user@example.com", Password: "secret1"}

	for i := 0; i < 4; i++ {
		_, err := service.SignIn(context.Background(), badReq)
		require.Error(t, err)
	}
	_, err = service.SignIn(context.Background(), goodReq)
	require.NoError(t, err)

	// The counter restarted; four more failures still do not lock.
	for i := 0; i < 4; i++ {
		_, err := service.SignIn(context.Background(), badReq)
		require.Error(t, err)
		assert.False(t, errors.IsRateLimitedError(err))
	}
}

func TestAuthService_SignOut(t *testing.T) {
	service := setupAuthService(t)
	_, err := service.SignUp(context.Background(), signUpReq())
	require.NoError(t, err)

	session, err := service.SignIn(context.Background(), &models.SignInRequest{
		Email:    "user@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)

	assert.NoError(t, service.SignOut(context.Background(), session.Token))
}

func TestAuthService_SendPasswordReset(t *testing.T) {
	service := setupAuthService(t)
	_, err := service.SignUp(context.Background(), signUpReq())
	require.NoError(t, err)

	assert.NoError(t, service.SendPasswordReset(context.Background(), "user@example.com"))

	err = service.SendPasswordReset(context.Background(), "ghost@example.com")
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))

	err = service.SendPasswordReset(context.Background(), "nope")
	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "email", appErr.Field)
}
