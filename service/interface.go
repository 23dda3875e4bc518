package service

import (
	"context"

	"skysage.app/models"
)

// WeatherServiceInterface defines the weather operations the views call.
type WeatherServiceInterface interface {
	CurrentConditions(ctx context.Context, city string) (*models.CurrentConditions, error)
	Forecast(ctx context.Context, city string) ([]models.ForecastDay, error)
}

// AssistantServiceInterface defines the chat operations the views call.
type AssistantServiceInterface interface {
	Submit(ctx context.Context, text string) (*models.ChatMessage, error)
	ToneChanged()
	Transcript() []models.ChatMessage
	SuggestedQuestions() []string
}

// AuthServiceInterface defines the account operations the views call.
type AuthServiceInterface interface {
	SignUp(ctx context.Context, req *models.SignUpRequest) (*models.UserProfile, error)
	SignIn(ctx context.Context, req *models.SignInRequest) (*models.Session, error)
	SignOut(ctx context.Context, token string) error
	SendPasswordReset(ctx context.Context, email string) error
}
