// Package api exposes the dashboard views as an HTTP API.
package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"skysage.app/config"
	"skysage.app/models"
	apperrors "skysage.app/pkg/errors"
	"skysage.app/service"
	"skysage.app/state"
)

// predefinedLocations backs the search dropdown.
var predefinedLocations = []models.Location{
	{City: "New York", Country: "United States"},
	{City: "London", Country: "United Kingdom"},
	{City: "Tokyo", Country: "Japan"},
	{City: "Paris", Country: "France"},
	{City: "Sydney", Country: "Australia"},
	{City: "Berlin", Country: "Germany"},
	{City: "Toronto", Country: "Canada"},
	{City: "Singapore", Country: "Singapore"},
}

// Server represents the HTTP server and API handler
type Server struct {
	router         *gin.Engine
	config         *config.Config
	appState       *state.AppState
	weatherService service.WeatherServiceInterface
	assistant      service.AssistantServiceInterface
	authService    service.AuthServiceInterface
}

// NewServer creates and configures a new HTTP server
func NewServer(
	cfg *config.Config,
	appState *state.AppState,
	weatherService service.WeatherServiceInterface,
	assistant service.AssistantServiceInterface,
	authService service.AuthServiceInterface,
) *Server {
	router := gin.Default()

	server := &Server{
		router:         router,
		config:         cfg,
		appState:       appState,
		weatherService: weatherService,
		assistant:      assistant,
		authService:    authService,
	}

	server.setupRoutes()
	return server
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/state", s.getState)
		api.POST("/search", s.search)
		api.POST("/navigate", s.navigate)

		api.GET("/weather", s.getWeather)
		api.GET("/forecast", s.getForecast)
		api.GET("/locations", s.getLocations)

		api.GET("/favorites", s.listFavorites)
		api.POST("/favorites", s.addFavorite)
		api.POST("/favorites/toggle", s.toggleFavorite)
		api.DELETE("/favorites/:index", s.removeFavorite)
		api.PUT("/favorites/:index/default", s.setDefaultFavorite)

		api.GET("/settings", s.getSettings)
		api.PATCH("/settings", s.updateSettings)

		api.GET("/chat", s.getTranscript)
		api.POST("/chat", s.postChat)
		api.GET("/chat/suggestions", s.getSuggestions)

		auth := api.Group("/auth")
		{
			auth.POST("/signup", s.signUp)
			auth.POST("/login", s.signIn)
			auth.POST("/logout", s.signOut)
			auth.POST("/reset", s.passwordReset)
		}
	}

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// Start begins the HTTP server
func (s *Server) Start() error {
	return s.router.Run(fmt.Sprintf(":%d", s.config.Server.Port))
}

// GetRouter returns the router for testing purposes
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

func (s *Server) getState(c *gin.Context) {
	c.JSON(http.StatusOK, s.appState.Snapshot())
}

func (s *Server) search(c *gin.Context) {
	var req models.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, apperrors.NewValidationError("city is required"))
		return
	}

	s.appState.Search(req.City)
	c.JSON(http.StatusOK, gin.H{"searchCity": req.City})
}

func (s *Server) navigate(c *gin.Context) {
	var req models.NavigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, apperrors.NewValidationError("page is required"))
		return
	}

	page := models.ParsePage(req.Page)
	s.appState.Navigate(page)
	c.JSON(http.StatusOK, gin.H{"currentPage": page})
}

func (s *Server) getWeather(c *gin.Context) {
	city := c.Query("city")
	if city == "" {
		city = s.appState.SearchCity()
	}

	slog.Debug("Getting weather for city", "city", city)
	conditions, err := s.weatherService.CurrentConditions(c.Request.Context(), city)
	if err != nil {
		slog.Error("Weather service error", "error", err, "city", city)
		s.handleError(c, err)
		return
	}

	unit := s.appState.TemperatureUnit()
	conditions.Temperature = unit.Convert(conditions.Temperature)
	conditions.FeelsLike = unit.Convert(conditions.FeelsLike)

	c.JSON(http.StatusOK, gin.H{
		"weather": conditions,
		"unit":    unit.Symbol(),
	})
}

func (s *Server) getForecast(c *gin.Context) {
	city := c.Query("city")
	if city == "" {
		city = s.appState.SearchCity()
	}

	days, err := s.weatherService.Forecast(c.Request.Context(), city)
	if err != nil {
		slog.Error("Forecast service error", "error", err, "city", city)
		s.handleError(c, err)
		return
	}

	unit := s.appState.TemperatureUnit()
	for i := range days {
		days[i].High = unit.Convert(days[i].High)
		days[i].Low = unit.Convert(days[i].Low)
	}

	c.JSON(http.StatusOK, gin.H{
		"forecast": days,
		"unit":     unit.Symbol(),
	})
}

func (s *Server) getLocations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"locations": predefinedLocations})
}

func (s *Server) listFavorites(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"favorites": s.appState.Favorites().List()})
}

func (s *Server) addFavorite(c *gin.Context) {
	var loc models.Location
	if err := c.ShouldBindJSON(&loc); err != nil || loc.City == "" {
		s.handleError(c, apperrors.NewValidationError("city is required"))
		return
	}

	added := s.appState.Favorites().AddNew(loc)
	c.JSON(http.StatusOK, gin.H{
		"added":     added,
		"favorites": s.appState.Favorites().List(),
	})
}

func (s *Server) toggleFavorite(c *gin.Context) {
	var req models.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, apperrors.NewValidationError("city is required"))
		return
	}

	removed := s.appState.Favorites().ToggleOff(req.City)
	c.JSON(http.StatusOK, gin.H{
		"removed":   removed,
		"favorites": s.appState.Favorites().List(),
	})
}

func (s *Server) removeFavorite(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		s.handleError(c, apperrors.NewValidationError("index must be an integer"))
		return
	}

	s.appState.Favorites().Remove(index)
	c.JSON(http.StatusOK, gin.H{"favorites": s.appState.Favorites().List()})
}

func (s *Server) setDefaultFavorite(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		s.handleError(c, apperrors.NewValidationError("index must be an integer"))
		return
	}

	s.appState.Favorites().SetDefault(index)
	c.JSON(http.StatusOK, gin.H{"favorites": s.appState.Favorites().List()})
}

func (s *Server) getSettings(c *gin.Context) {
	c.JSON(http.StatusOK, s.appState.Preferences())
}

func (s *Server) updateSettings(c *gin.Context) {
	var update models.SettingsUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		s.handleError(c, apperrors.NewValidationError("invalid settings payload"))
		return
	}

	s.appState.UpdateSettings(update)
	if update.AITone != nil {
		s.assistant.ToneChanged()
	}

	c.JSON(http.StatusOK, s.appState.Preferences())
}

func (s *Server) getTranscript(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"messages": s.assistant.Transcript()})
}

func (s *Server) postChat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, apperrors.NewValidationError("message is required"))
		return
	}

	// Provider failures never reach this handler as errors; the session
	// degrades them to a fallback reply.
	reply, err := s.assistant.Submit(c.Request.Context(), req.Message)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

func (s *Server) getSuggestions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"suggestions": s.assistant.SuggestedQuestions()})
}

func (s *Server) signUp(c *gin.Context) {
	var req models.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, apperrors.NewValidationError("name, email and password are required"))
		return
	}

	profile, err := s.authService.SignUp(c.Request.Context(), &req)
	if err != nil {
		slog.Error("Sign-up error", "error", err)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Account created successfully!",
		"user":    profile,
	})
}

func (s *Server) signIn(c *gin.Context) {
	var req models.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, apperrors.NewValidationError("email and password are required"))
		return
	}

	session, err := s.authService.SignIn(c.Request.Context(), &req)
	if err != nil {
		slog.Warn("Sign-in failed", "error", err)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": session})
}

func (s *Server) signOut(c *gin.Context) {
	token := c.GetHeader("Authorization")
	if err := s.authService.SignOut(c.Request.Context(), token); err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

func (s *Server) passwordReset(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, apperrors.NewValidationError("email is required"))
		return
	}

	if err := s.authService.SendPasswordReset(c.Request.Context(), req.Email); err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset email sent"})
}

// handleError maps application errors onto HTTP responses.
func (s *Server) handleError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	var statusCode int
	var message string

	if errors.As(err, &appErr) {
		switch appErr.Type {
		case apperrors.ErrorTypeValidation:
			statusCode = http.StatusBadRequest
			message = appErr.Message
		case apperrors.ErrorTypeNotFound:
			statusCode = http.StatusNotFound
			message = appErr.Message
		case apperrors.ErrorTypeAlreadyExists:
			statusCode = http.StatusConflict
			message = appErr.Message
		case apperrors.ErrorTypeAuth:
			statusCode = http.StatusUnauthorized
			message = appErr.Message
		case apperrors.ErrorTypeRateLimited:
			statusCode = http.StatusTooManyRequests
			message = appErr.Message
		case apperrors.ErrorTypeExternalAPI:
			statusCode = http.StatusServiceUnavailable
			message = "Failed to fetch weather data. Please try again."
		case apperrors.ErrorTypeDatabase:
			statusCode = http.StatusInternalServerError
			message = "Internal server error"
		default:
			statusCode = http.StatusInternalServerError
			message = "Internal server error"
		}

		if appErr.Field != "" {
			c.JSON(statusCode, models.FieldError{Field: appErr.Field, Message: appErr.Message})
			return
		}
	} else {
		statusCode = http.StatusInternalServerError
		message = "Internal server error"
	}

	c.JSON(statusCode, models.ErrorResponse{Error: message})
}
