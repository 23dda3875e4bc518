package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"skysage.app/pkg/errors"
)

// Config represents the application configuration structure
type Config struct {
	Server   ServerConfig   `split_words:"true"`
	Database DatabaseConfig `split_words:"true"`
	Weather  WeatherConfig  `split_words:"true"`
	Gemini   GeminiConfig   `split_words:"true"`
	Store    StoreConfig    `split_words:"true"`
	Auth     AuthConfig     `split_words:"true"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `envconfig:"SERVER_PORT" default:"8080"`
}

// DatabaseConfig contains database connection settings for the user backend
type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name     string `envconfig:"DB_NAME" default:"skysage"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

// GetDSN returns a formatted database connection string
func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// WeatherConfig contains settings for the weather data provider
type WeatherConfig struct {
	APIKey  string `envconfig:"WEATHER_API_KEY" required:"true"`
	BaseURL string `envconfig:"WEATHER_API_BASE_URL" default:"https://api.openweathermap.org/data/2.5"`
}

// GeminiConfig contains settings for the generative-text provider
type GeminiConfig struct {
	APIKey  string `envconfig:"GEMINI_API_KEY" required:"true"`
	BaseURL string `envconfig:"GEMINI_API_BASE_URL" default:"https://generativelanguage.googleapis.com/v1beta"`
	Model   string `envconfig:"GEMINI_MODEL" default:"gemini-2.0-flash"`
}

// StoreConfig selects the preference store backing and its parameters
type StoreConfig struct {
	Backend       string `envconfig:"STORE_BACKEND" default:"file"`
	FilePath      string `envconfig:"STORE_FILE_PATH" default:"skysage-settings.json"`
	RedisAddr     string `envconfig:"STORE_REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"STORE_REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"STORE_REDIS_DB" default:"0"`
}

// AuthConfig contains sign-in throttling settings
type AuthConfig struct {
	MaxFailedAttempts int `envconfig:"AUTH_MAX_FAILED_ATTEMPTS" default:"5"`
	LockoutSeconds    int `envconfig:"AUTH_LOCKOUT_SECONDS" default:"30"`
	SessionTTLMinutes int `envconfig:"AUTH_SESSION_TTL_MINUTES" default:"1440"`
}

// LoadConfig loads and validates application configuration from environment variables
func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Weather.Validate(); err != nil {
		return err
	}
	if err := c.Gemini.Validate(); err != nil {
		return err
	}
	if err := c.Store.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	return nil
}

// Validate checks server configuration
func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > 65535 {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	return nil
}

// ValidateSSLMode validates the SSL mode configuration
func (d *DatabaseConfig) ValidateSSLMode() error {
	validSSLModes := []string{"disable", "require", "verify-ca", "verify-full"}
	for _, mode := range validSSLModes {
		if d.SSLMode == mode {
			return nil
		}
	}
	return errors.NewConfigurationError(
		fmt.Sprintf("DB_SSL_MODE must be one of: %s", strings.Join(validSSLModes, ", ")), nil)
}

// Validate checks database configuration
func (d *DatabaseConfig) Validate() error {
	if d.Host == "" {
		return errors.NewConfigurationError("DB_HOST cannot be empty", nil)
	}
	if d.Port < 1 || d.Port > 65535 {
		return errors.NewConfigurationError("DB_PORT must be between 1 and 65535", nil)
	}
	if d.User == "" {
		return errors.NewConfigurationError("DB_USER cannot be empty", nil)
	}
	if d.Name == "" {
		return errors.NewConfigurationError("DB_NAME cannot be empty", nil)
	}
	if err := d.ValidateSSLMode(); err != nil {
		return err
	}
	return nil
}

// Validate checks weather provider configuration
func (w *WeatherConfig) Validate() error {
	if w.APIKey == "" {
		return errors.NewConfigurationError("WEATHER_API_KEY is required", nil)
	}
	if !strings.HasPrefix(w.BaseURL, "http://") && !strings.HasPrefix(w.BaseURL, "https://") {
		return errors.NewConfigurationError("WEATHER_API_BASE_URL must start with http:// or https://", nil)
	}
	return nil
}

// Validate checks generative-text provider configuration
func (g *GeminiConfig) Validate() error {
	if g.APIKey == "" {
		return errors.NewConfigurationError("GEMINI_API_KEY is required", nil)
	}
	if !strings.HasPrefix(g.BaseURL, "http://") && !strings.HasPrefix(g.BaseURL, "https://") {
		return errors.NewConfigurationError("GEMINI_API_BASE_URL must start with http:// or https://", nil)
	}
	if g.Model == "" {
		return errors.NewConfigurationError("GEMINI_MODEL cannot be empty", nil)
	}
	return nil
}

// Validate checks preference store configuration
func (s *StoreConfig) Validate() error {
	switch s.Backend {
	case "file":
		if s.FilePath == "" {
			return errors.NewConfigurationError("STORE_FILE_PATH cannot be empty for the file backend", nil)
		}
	case "redis":
		if s.RedisAddr == "" {
			return errors.NewConfigurationError("STORE_REDIS_ADDR cannot be empty for the redis backend", nil)
		}
	case "memory":
	default:
		return errors.NewConfigurationError("STORE_BACKEND must be one of: file, redis, memory", nil)
	}
	return nil
}

// Validate checks auth throttling configuration
func (a *AuthConfig) Validate() error {
	if a.MaxFailedAttempts < 1 {
		return errors.NewConfigurationError("AUTH_MAX_FAILED_ATTEMPTS must be at least 1", nil)
	}
	if a.LockoutSeconds < 1 {
		return errors.NewConfigurationError("AUTH_LOCKOUT_SECONDS must be at least 1", nil)
	}
	if a.SessionTTLMinutes < 1 {
		return errors.NewConfigurationError("AUTH_SESSION_TTL_MINUTES must be at least 1", nil)
	}
	return nil
}
