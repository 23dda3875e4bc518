package providers

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"skysage.app/models"
	"skysage.app/pkg/validation"
	"skysage.app/repository"
)

// LocalIdentityProvider implements the identity backend on the local user
// database: salted password digests in the credentials table and in-memory
// session tokens. It speaks the same error codes a hosted identity provider
// would, so the auth service's mapping table works unchanged against either.
type LocalIdentityProvider struct {
	credentials *repository.CredentialRepository
	sessionTTL  time.Duration
	now         func() time.Time

	mu       sync.Mutex
	sessions map[string]models.Session
}

// NewLocalIdentityProvider creates the provider over the credential repository.
func NewLocalIdentityProvider(credentials *repository.CredentialRepository, sessionTTL time.Duration) *LocalIdentityProvider {
	return &LocalIdentityProvider{
		credentials: credentials,
		sessionTTL:  sessionTTL,
		now:         time.Now,
		sessions:    make(map[string]models.Session),
	}
}

// SignUp creates a credential and returns the generated user id.
func (p *LocalIdentityProvider) SignUp(ctx context.Context, email, password string) (string, error) {
	if !validation.IsValidEmail(email) {
		return "", NewAuthCodeError(CodeInvalidEmail, nil)
	}
	if !validation.IsValidPassword(password) {
		return "", NewAuthCodeError(CodeWeakPassword, nil)
	}

	existing, err := p.credentials.FindByEmail(email)
	if err != nil {
		return "", NewAuthCodeError(CodeOperationFailed, err)
	}
	if existing != nil {
		return "", NewAuthCodeError(CodeEmailInUse, nil)
	}

	uid := uuid.New().String()
	salt := uuid.New().String()
	credential := &models.Credential{
		UID:          uid,
		Email:        email,
		Salt:         salt,
		PasswordHash: hashPassword(salt, password),
	}

	if err := p.credentials.Create(credential); err != nil {
		return "", NewAuthCodeError(CodeOperationFailed, err)
	}

	slog.Info("Created auth credential", "uid", uid)
	return uid, nil
}

// SignIn verifies the credentials and issues a session token.
func (p *LocalIdentityProvider) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	if !validation.IsValidEmail(email) {
		return nil, NewAuthCodeError(CodeInvalidEmail, nil)
	}

	credential, err := p.credentials.FindByEmail(email)
	if err != nil {
		return nil, NewAuthCodeError(CodeOperationFailed, err)
	}
	if credential == nil {
		return nil, NewAuthCodeError(CodeUserNotFound, nil)
	}
	if credential.Disabled {
		return nil, NewAuthCodeError(CodeUserDisabled, nil)
	}

	computed := hashPassword(credential.Salt, password)
	if subtle.ConstantTimeCompare([]byte(computed), []byte(credential.PasswordHash)) != 1 {
		return nil, NewAuthCodeError(CodeWrongPassword, nil)
	}

	session := models.Session{
		UserID:    credential.UID,
		Token:     uuid.New().String(),
		ExpiresAt: p.now().Add(p.sessionTTL),
	}

	p.mu.Lock()
	p.sessions[session.Token] = session
	p.mu.Unlock()

	return &session, nil
}

// SignOut invalidates a session token; unknown tokens are ignored.
func (p *LocalIdentityProvider) SignOut(ctx context.Context, token string) error {
	p.mu.Lock()
	delete(p.sessions, token)
	p.mu.Unlock()
	return nil
}

// SendPasswordReset acknowledges a reset request for an existing account.
// There is no mail transport here; the request is only logged.
func (p *LocalIdentityProvider) SendPasswordReset(ctx context.Context, email string) error {
	credential, err := p.credentials.FindByEmail(email)
	if err != nil {
		return NewAuthCodeError(CodeOperationFailed, err)
	}
	if credential == nil {
		return NewAuthCodeError(CodeUserNotFound, nil)
	}

	slog.Info("Password reset requested", "uid", credential.UID)
	return nil
}

// SessionByToken resolves a live session, if the token is known and unexpired.
func (p *LocalIdentityProvider) SessionByToken(token string) (*models.Session, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	session, ok := p.sessions[token]
	if !ok || p.now().After(session.ExpiresAt) {
		return nil, false
	}
	return &session, true
}

func hashPassword(salt, password string) string {
	sum := sha256.Sum256([]byte(salt + ":" + password))
	return hex.EncodeToString(sum[:])
}
