package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"skysage.app/models"
	"skysage.app/pkg/errors"
	"skysage.app/pkg/validation"
	"skysage.app/providers"
	"skysage.app/repository"
)

// signInMessages maps provider error codes to the fixed user-facing strings
// shown on the login form. Unrecognized codes fall through to a generic
// message.
var signInMessages = map[providers.AuthCode]string{
	providers.CodeInvalidEmail:    "Invalid email address format.",
	providers.CodeUserNotFound:    "No account found with this email.",
	providers.CodeWrongPassword:   "Incorrect password.",
	providers.CodeUserDisabled:    "This account has been disabled.",
	providers.CodeTooManyRequests: "Too many failed login attempts. Please try again later.",
}

const genericSignInMessage = "Failed to login. Please check your credentials."

type loginAttempts struct {
	failures    int
	lockedUntil time.Time
}

// AuthService implements sign-up, sign-in with in-memory lockout, sign-out
// and password reset over the identity provider and the user-profile store.
type AuthService struct {
	identity          providers.IdentityProvider
	profiles          *repository.UserProfileRepository
	maxFailedAttempts int
	lockout           time.Duration
	now               func() time.Time

	mu       sync.Mutex
	attempts map[string]*loginAttempts
}

// NewAuthService creates the auth service. Lockout state lives purely in
// memory and resets on restart.
func NewAuthService(
	identity providers.IdentityProvider,
	profiles *repository.UserProfileRepository,
	maxFailedAttempts int,
	lockout time.Duration,
) *AuthService {
	return &AuthService{
		identity:          identity,
		profiles:          profiles,
		maxFailedAttempts: maxFailedAttempts,
		lockout:           lockout,
		now:               time.Now,
		attempts:          make(map[string]*loginAttempts),
	}
}

// SignUp validates the form, rejects duplicate emails before touching the
// identity provider, creates the credential and writes the profile document.
func (s *AuthService) SignUp(ctx context.Context, req *models.SignUpRequest) (*models.UserProfile, error) {
	if err := s.validateSignUp(req); err != nil {
		return nil, err
	}

	existing, err := s.profiles.FindByEmail(req.Email)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to check existing account", err)
	}
	if existing != nil {
		return nil, errors.NewAlreadyExistsError("An account with this email already exists.")
	}

	uid, err := s.identity.SignUp(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.mapSignUpError(err)
	}

	profile := &models.UserProfile{
		UID:       uid,
		Name:      strings.TrimSpace(req.Name),
		Email:     req.Email,
		CreatedAt: s.now(),
	}
	if err := s.profiles.Put(profile); err != nil {
		return nil, errors.NewDatabaseError("failed to store user profile", err)
	}

	slog.Info("Account created", "uid", uid)
	return profile, nil
}

func (s *AuthService) validateSignUp(req *models.SignUpRequest) error {
	if !validation.IsNotEmpty(req.Name) {
		return errors.NewFieldError("name", "Name is required")
	}
	if !validation.IsValidEmail(req.Email) {
		return errors.NewFieldError("email", "Invalid email address format.")
	}
	if !validation.IsValidPassword(req.Password) {
		return errors.NewFieldError("password", "Password must be at least 6 characters long")
	}
	return nil
}

func (s *AuthService) mapSignUpError(err error) error {
	switch providers.CodeOf(err) {
	case providers.CodeEmailInUse:
		return errors.NewAlreadyExistsError("An account with this email already exists.")
	case providers.CodeInvalidEmail:
		return errors.NewFieldError("email", "Invalid email address format.")
	case providers.CodeWeakPassword:
		return errors.NewFieldError("password", "Password must be at least 6 characters long")
	default:
		return errors.Wrap(errors.ErrorTypeExternalAPI, "Failed to create account", err)
	}
}

// SignIn authenticates against the identity provider. After five consecutive
// failures for an email the account is locked for the cool-down window;
// the counter is tracked in memory only.
func (s *AuthService) SignIn(ctx context.Context, req *models.SignInRequest) (*models.Session, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if remaining, locked := s.lockedFor(email); locked {
		slog.Warn("Sign-in attempt while locked", "remaining", remaining)
		return nil, errors.NewRateLimitedError(signInMessages[providers.CodeTooManyRequests])
	}

	session, err := s.identity.SignIn(ctx, email, req.Password)
	if err != nil {
		s.recordFailure(email)
		message, ok := signInMessages[providers.CodeOf(err)]
		if !ok {
			message = genericSignInMessage
		}
		return nil, errors.NewAuthError(message)
	}

	s.clearFailures(email)
	return session, nil
}

// SignOut invalidates the session token.
func (s *AuthService) SignOut(ctx context.Context, token string) error {
	return s.identity.SignOut(ctx, token)
}

// SendPasswordReset requests a reset email for the account.
func (s *AuthService) SendPasswordReset(ctx context.Context, email string) error {
	if !validation.IsValidEmail(email) {
		return errors.NewFieldError("email", "Invalid email address format.")
	}

	if err := s.identity.SendPasswordReset(ctx, email); err != nil {
		if providers.CodeOf(err) == providers.CodeUserNotFound {
			return errors.NewNotFoundError("No account found with this email.")
		}
		return errors.Wrap(errors.ErrorTypeExternalAPI, "Failed to send password reset", err)
	}
	return nil
}

func (s *AuthService) lockedFor(email string) (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	attempts, ok := s.attempts[email]
	if !ok {
		return 0, false
	}
	remaining := attempts.lockedUntil.Sub(s.now())
	if remaining > 0 {
		return remaining, true
	}
	return 0, false
}

func (s *AuthService) recordFailure(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	attempts, ok := s.attempts[email]
	if !ok {
		attempts = &loginAttempts{}
		s.attempts[email] = attempts
	}
	attempts.failures++
	if attempts.failures >= s.maxFailedAttempts {
		attempts.lockedUntil = s.now().Add(s.lockout)
		attempts.failures = 0
		slog.Warn("Account locked after repeated sign-in failures", "lockout", s.lockout)
	}
}

func (s *AuthService) clearFailures(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.attempts, email)
}
