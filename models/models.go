// Package models defines data structures used throughout the application
package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// TemperatureUnit is the display unit for temperatures.
type TemperatureUnit string

const (
	UnitCelsius    TemperatureUnit = "celsius"
	UnitFahrenheit TemperatureUnit = "fahrenheit"
)

// ParseTemperatureUnit maps a raw string to a unit, falling back to celsius.
func ParseTemperatureUnit(s string) TemperatureUnit {
	switch TemperatureUnit(strings.ToLower(strings.TrimSpace(s))) {
	case UnitFahrenheit:
		return UnitFahrenheit
	default:
		return UnitCelsius
	}
}

// Page identifies one of the dashboard views.
type Page string

const (
	PageDashboard Page = "dashboard"
	PageChat      Page = "chat"
	PageFavorites Page = "favorites"
	PageSettings  Page = "settings"
)

// ParsePage maps a raw string to a page, falling back to the dashboard.
func ParsePage(s string) Page {
	switch Page(strings.ToLower(strings.TrimSpace(s))) {
	case PageChat:
		return PageChat
	case PageFavorites:
		return PageFavorites
	case PageSettings:
		return PageSettings
	default:
		return PageDashboard
	}
}

// Tone is a named assistant personality affecting prompt framing,
// welcome text and suggested questions.
type Tone string

const (
	ToneCasual       Tone = "Casual"
	ToneProfessional Tone = "Professional"
	ToneFriendly     Tone = "Friendly"
	ToneConcise      Tone = "Concise"
)

// ParseTone maps a raw string to a tone, falling back to Casual.
func ParseTone(s string) Tone {
	switch Tone(strings.TrimSpace(s)) {
	case ToneProfessional:
		return ToneProfessional
	case ToneFriendly:
		return ToneFriendly
	case ToneConcise:
		return ToneConcise
	default:
		return ToneCasual
	}
}

// Icon is a weather icon category shown on cards and favorites.
type Icon string

const (
	IconSun       Icon = "sun"
	IconCloud     Icon = "cloud"
	IconRain      Icon = "cloud-rain"
	IconSnow      Icon = "cloud-snow"
	IconLightning Icon = "cloud-lightning"
	IconFog       Icon = "cloud-fog"
)

// IconForConditionCode maps an OpenWeatherMap condition code to an icon category.
func IconForConditionCode(code int) Icon {
	switch {
	case code >= 200 && code < 300:
		return IconLightning
	case code >= 300 && code < 600:
		return IconRain
	case code >= 600 && code < 700:
		return IconSnow
	case code >= 700 && code < 800:
		return IconFog
	case code == 800:
		return IconSun
	default:
		return IconCloud
	}
}

// Location represents a saved favorite city with its last-known display weather.
// Identity is by City compared case-insensitively.
type Location struct {
	City        string `json:"city"`
	Country     string `json:"country"`
	Condition   string `json:"condition"`
	Temperature string `json:"temperature"`
	Icon        Icon   `json:"icon"`
	IsDefault   bool   `json:"isDefault"`
}

// Preferences holds the per-session display and assistant settings.
type Preferences struct {
	TemperatureUnit TemperatureUnit `json:"temperatureUnit"`
	DarkMode        bool            `json:"darkMode"`
	Notifications   bool            `json:"notifications"`
	AITone          Tone            `json:"aiTone"`
}

// DefaultPreferences returns the settings applied before hydration.
func DefaultPreferences() Preferences {
	return Preferences{
		TemperatureUnit: UnitCelsius,
		DarkMode:        false,
		Notifications:   true,
		AITone:          ToneCasual,
	}
}

// CurrentConditions is the current-weather view of a city.
type CurrentConditions struct {
	City        string  `json:"city"`
	Country     string  `json:"country"`
	Condition   string  `json:"condition"`
	Description string  `json:"description"`
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feelsLike"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"windSpeed"`
	Icon        Icon    `json:"icon"`
	Advice      string  `json:"advice"`
}

// ForecastSample is one 3-hour sample from the forecast provider.
type ForecastSample struct {
	Time        time.Time
	Temperature float64
	Humidity    float64
	Pressure    float64
	WindSpeed   float64
	Condition   string
	Description string
}

// ForecastDay is the aggregate of one calendar day of forecast samples.
type ForecastDay struct {
	Day         string  `json:"day"`
	Date        string  `json:"date"`
	Condition   string  `json:"condition"`
	High        float64 `json:"high"`
	Low         float64 `json:"low"`
	Humidity    int     `json:"humidity"`
	WindSpeed   int     `json:"windSpeed"`
	Pressure    int     `json:"pressure"`
	Description string  `json:"description"`
	Icon        Icon    `json:"icon"`
}

// ChatSender identifies who authored a chat message.
type ChatSender string

const (
	SenderUser      ChatSender = "user"
	SenderAssistant ChatSender = "assistant"
)

// ChatMessage is one entry of the assistant transcript.
type ChatMessage struct {
	ID        int        `json:"id"`
	Sender    ChatSender `json:"sender"`
	Text      string     `json:"text"`
	Timestamp string     `json:"timestamp"`
}

// UserProfile is the document-store record written at sign-up.
type UserProfile struct {
	UID       string         `json:"uid" gorm:"primaryKey"`
	Name      string         `json:"name"`
	Email     string         `json:"email" gorm:"index;not null"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// Credential stores the authentication secret for a user.
type Credential struct {
	ID           uint           `json:"-" gorm:"primaryKey"`
	UID          string         `json:"uid" gorm:"uniqueIndex;not null"`
	Email        string         `json:"email" gorm:"uniqueIndex;not null"`
	Salt         string         `json:"-" gorm:"not null"`
	PasswordHash string         `json:"-" gorm:"not null"`
	Disabled     bool           `json:"-" gorm:"default:false"`
	CreatedAt    time.Time      `json:"created_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// Session is the result of a successful sign-in.
type Session struct {
	UserID    string    `json:"userId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SearchRequest sets the current search target city.
type SearchRequest struct {
	City string `json:"city" binding:"required"`
}

// NavigateRequest changes the current page.
type NavigateRequest struct {
	Page string `json:"page" binding:"required"`
}

// SettingsUpdate carries a partial settings change; nil fields are left untouched.
type SettingsUpdate struct {
	TemperatureUnit *string `json:"temperatureUnit,omitempty"`
	DarkMode        *bool   `json:"darkMode,omitempty"`
	DefaultLocation *string `json:"defaultLocation,omitempty"`
	Notifications   *bool   `json:"notifications,omitempty"`
	AITone          *string `json:"aiTone,omitempty"`
}

// ChatRequest submits one user message to the assistant.
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// SignUpRequest carries the sign-up form fields.
type SignUpRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SignInRequest carries the login form fields.
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// FieldError attaches a validation message to a specific form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Error string `json:"error"`
}
