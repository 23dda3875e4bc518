package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"skysage.app/models"
)

// OpenWeatherMapProvider fetches current conditions and the 5-day/3-hour
// forecast from OpenWeatherMap. Requests are always made in imperial units;
// display conversion happens downstream.
type OpenWeatherMapProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

type openWeatherCurrentResponse struct {
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
	} `json:"sys"`
	Weather []struct {
		ID          int    `json:"id"`
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  float64 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Message string `json:"message,omitempty"`
}

type openWeatherForecastResponse struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity float64 `json:"humidity"`
			Pressure float64 `json:"pressure"`
		} `json:"main"`
		Weather []struct {
			ID          int    `json:"id"`
			Main        string `json:"main"`
			Description string `json:"description"`
		} `json:"weather"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
	} `json:"list"`
}

// NewOpenWeatherMapProvider creates a provider against the given base URL,
// e.g. https://api.openweathermap.org/data/2.5.
func NewOpenWeatherMapProvider(apiKey, baseURL string) *OpenWeatherMapProvider {
	return &OpenWeatherMapProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// GetCurrentConditions retrieves the current weather for a city.
func (p *OpenWeatherMapProvider) GetCurrentConditions(ctx context.Context, city string) (*models.CurrentConditions, error) {
	var apiResponse openWeatherCurrentResponse
	if err := p.getJSON(ctx, "/weather", city, &apiResponse); err != nil {
		return nil, err
	}

	conditions := &models.CurrentConditions{
		City:        apiResponse.Name,
		Country:     apiResponse.Sys.Country,
		Temperature: apiResponse.Main.Temp,
		FeelsLike:   apiResponse.Main.FeelsLike,
		Humidity:    int(apiResponse.Main.Humidity),
		WindSpeed:   apiResponse.Wind.Speed,
		Icon:        models.IconCloud,
	}
	if len(apiResponse.Weather) > 0 {
		conditions.Condition = apiResponse.Weather[0].Main
		conditions.Description = apiResponse.Weather[0].Description
		conditions.Icon = models.IconForConditionCode(apiResponse.Weather[0].ID)
	}
	return conditions, nil
}

// GetForecast retrieves the raw 3-hour forecast samples for a city.
func (p *OpenWeatherMapProvider) GetForecast(ctx context.Context, city string) ([]models.ForecastSample, error) {
	var apiResponse openWeatherForecastResponse
	if err := p.getJSON(ctx, "/forecast", city, &apiResponse); err != nil {
		return nil, err
	}

	samples := make([]models.ForecastSample, 0, len(apiResponse.List))
	for _, item := range apiResponse.List {
		sample := models.ForecastSample{
			Time:        time.Unix(item.Dt, 0),
			Temperature: item.Main.Temp,
			Humidity:    item.Main.Humidity,
			Pressure:    item.Main.Pressure,
			WindSpeed:   item.Wind.Speed,
		}
		if len(item.Weather) > 0 {
			sample.Condition = item.Weather[0].Main
			sample.Description = item.Weather[0].Description
		}
		samples = append(samples, sample)
	}
	return samples, nil
}

func (p *OpenWeatherMapProvider) getJSON(ctx context.Context, path, city string, out interface{}) error {
	endpoint := fmt.Sprintf("%s%s?q=%s&units=imperial&appid=%s",
		p.baseURL, path, url.QueryEscape(city), p.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build openweathermap request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("openweathermap API request failed: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Warn("close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return p.handleHTTPError(resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode openweathermap response: %w", err)
	}
	return nil
}

func (p *OpenWeatherMapProvider) handleHTTPError(statusCode int) error {
	switch statusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("openweathermap: invalid API key")
	case http.StatusNotFound:
		return fmt.Errorf("openweathermap: city not found")
	case http.StatusTooManyRequests:
		return fmt.Errorf("openweathermap: rate limit exceeded")
	case http.StatusServiceUnavailable:
		return fmt.Errorf("openweathermap: service unavailable")
	default:
		return fmt.Errorf("openweathermap: HTTP %d error", statusCode)
	}
}
