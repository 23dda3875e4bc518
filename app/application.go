// Package app wires configuration, storage, providers, services and the HTTP
// server into a running application.
package app

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"skysage.app/api"
	"skysage.app/config"
	"skysage.app/database"
	"skysage.app/providers"
	"skysage.app/repository"
	"skysage.app/service"
	"skysage.app/state"
	"skysage.app/store"
)

// Application represents the main application with all its dependencies
type Application struct {
	config   *config.Config
	db       *gorm.DB
	appState *state.AppState
	server   *api.Server
}

// NewApplication creates and initializes a new application instance
func NewApplication() (*Application, error) {
	app := &Application{}

	if err := app.loadConfiguration(); err != nil {
		return nil, err
	}

	if err := app.initializeDatabase(); err != nil {
		return nil, err
	}

	if err := app.initializeServices(); err != nil {
		return nil, err
	}

	return app, nil
}

// Config returns the loaded configuration.
func (app *Application) Config() *config.Config {
	return app.config
}

// Start begins serving HTTP requests.
func (app *Application) Start() error {
	return app.server.Start()
}

// Shutdown releases the application's resources.
func (app *Application) Shutdown() error {
	slog.Info("Shutting down...")
	if app.db != nil {
		return database.CloseDB(app.db)
	}
	return nil
}

func (app *Application) loadConfiguration() error {
	slog.Info("Loading configuration...")

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return fmt.Errorf("load application configuration: %w", err)
	}

	app.config = cfg
	slog.Info("Configuration loaded successfully")
	return nil
}

func (app *Application) initializeDatabase() error {
	slog.Info("Initializing database...")

	db, err := database.InitDB(app.config.Database)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		return fmt.Errorf("initialize database connection: %w", err)
	}

	if err := database.RunMigrations(db); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		return fmt.Errorf("run database migrations: %w", err)
	}

	app.db = db
	slog.Info("Database initialized successfully")
	return nil
}

func (app *Application) initializeServices() error {
	slog.Info("Initializing services...")

	// Preference store and the state container hydrated from it
	prefStore, err := store.NewStore(app.config.Store)
	if err != nil {
		return fmt.Errorf("create preference store: %w", err)
	}
	app.appState = state.New(store.NewInstrumentedStore(prefStore))

	// External providers, instrumented with metrics and logging
	var weatherProvider providers.WeatherProvider = providers.NewOpenWeatherMapProvider(
		app.config.Weather.APIKey,
		app.config.Weather.BaseURL,
	)
	weatherProvider = providers.NewInstrumentedWeatherProvider(weatherProvider, "openweathermap")

	var textGenerator providers.TextGenerator = providers.NewGeminiProvider(
		app.config.Gemini.APIKey,
		app.config.Gemini.BaseURL,
		app.config.Gemini.Model,
	)
	textGenerator = providers.NewInstrumentedTextGenerator(textGenerator, "gemini")

	// Repositories and the identity backend
	profileRepo := repository.NewUserProfileRepository(app.db)
	credentialRepo := repository.NewCredentialRepository(app.db)
	identity := providers.NewLocalIdentityProvider(
		credentialRepo,
		time.Duration(app.config.Auth.SessionTTLMinutes)*time.Minute,
	)

	// Services
	weatherService := service.NewWeatherService(weatherProvider)
	assistant := service.NewAssistantSession(textGenerator, app.appState.AITone)
	authService := service.NewAuthService(
		identity,
		profileRepo,
		app.config.Auth.MaxFailedAttempts,
		time.Duration(app.config.Auth.LockoutSeconds)*time.Second,
	)

	app.server = api.NewServer(app.config, app.appState, weatherService, assistant, authService)

	slog.Info("Services initialized successfully")
	return nil
}
