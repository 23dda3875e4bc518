package providers

import (
	"context"

	"skysage.app/models"
)

// WeatherProvider defines the interface for the weather data provider.
type WeatherProvider interface {
	GetCurrentConditions(ctx context.Context, city string) (*models.CurrentConditions, error)
	GetForecast(ctx context.Context, city string) ([]models.ForecastSample, error)
}

// TextGenerator defines the interface for the generative-text provider.
type TextGenerator interface {
	GenerateReply(ctx context.Context, prompt string) (string, error)
}

// IdentityProvider defines the interface for the authentication backend.
// Error values carry provider-style codes (see AuthCode) that the auth
// service maps to user-facing messages.
type IdentityProvider interface {
	SignUp(ctx context.Context, email, password string) (string, error)
	SignIn(ctx context.Context, email, password string) (*models.Session, error)
	SignOut(ctx context.Context, token string) error
	SendPasswordReset(ctx context.Context, email string) error
}

// AuthCode is a provider-style error code, kept close to the codes the hosted
// identity backends emit so the lookup table in the auth service stays flat.
type AuthCode string

const (
	CodeInvalidEmail      AuthCode = "auth/invalid-email"
	CodeUserNotFound      AuthCode = "auth/user-not-found"
	CodeWrongPassword     AuthCode = "auth/wrong-password"
	CodeEmailInUse        AuthCode = "auth/email-already-in-use"
	CodeWeakPassword      AuthCode = "auth/weak-password"
	CodeUserDisabled      AuthCode = "auth/user-disabled"
	CodeTooManyRequests   AuthCode = "auth/too-many-requests"
	CodeOperationFailed   AuthCode = "auth/operation-failed"
	CodeNetworkRequestErr AuthCode = "auth/network-request-failed"
)

// AuthCodeError pairs an AuthCode with an underlying cause.
type AuthCodeError struct {
	Code  AuthCode
	Cause error
}

func (e *AuthCodeError) Error() string {
	if e.Cause != nil {
		return string(e.Code) + ": " + e.Cause.Error()
	}
	return string(e.Code)
}

func (e *AuthCodeError) Unwrap() error {
	return e.Cause
}

// NewAuthCodeError builds a coded identity-provider error.
func NewAuthCodeError(code AuthCode, cause error) *AuthCodeError {
	return &AuthCodeError{Code: code, Cause: cause}
}

// CodeOf extracts the AuthCode from err, or CodeOperationFailed when err
// carries no recognizable code.
func CodeOf(err error) AuthCode {
	if codeErr, ok := err.(*AuthCodeError); ok {
		return codeErr.Code
	}
	return CodeOperationFailed
}
