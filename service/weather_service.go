package service

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"skysage.app/models"
	"skysage.app/pkg/errors"
	"skysage.app/providers"
)

// forecastDays is how many calendar days the dashboard shows.
const forecastDays = 3

// WeatherService handles weather-related operations
type WeatherService struct {
	provider providers.WeatherProvider
}

// NewWeatherService creates a new weather service with the specified provider
func NewWeatherService(provider providers.WeatherProvider) *WeatherService {
	return &WeatherService{
		provider: provider,
	}
}

// CurrentConditions retrieves current weather for a city, with the icon
// category and the advice line filled in.
func (s *WeatherService) CurrentConditions(ctx context.Context, city string) (*models.CurrentConditions, error) {
	if city == "" {
		return nil, errors.NewValidationError("city cannot be empty")
	}

	conditions, err := s.provider.GetCurrentConditions(ctx, city)
	if err != nil {
		slog.Error("Weather provider error", "city", city, "error", err)
		return nil, errors.NewExternalAPIError("failed to fetch weather data", err)
	}

	conditions.Advice = adviceFor(conditions)
	return conditions, nil
}

// Forecast retrieves the 3-hour samples for a city and aggregates them into
// the first three calendar days.
func (s *WeatherService) Forecast(ctx context.Context, city string) ([]models.ForecastDay, error) {
	if city == "" {
		return nil, errors.NewValidationError("city cannot be empty")
	}

	samples, err := s.provider.GetForecast(ctx, city)
	if err != nil {
		slog.Error("Forecast provider error", "city", city, "error", err)
		return nil, errors.NewExternalAPIError("failed to fetch forecast data", err)
	}

	return BuildDailyForecast(samples), nil
}

// BuildDailyForecast groups 3-hour samples by calendar day and keeps the
// first three distinct days. Per day: high is the max sample temperature, low
// the min, the condition is the most frequent sample condition (first seen
// wins a tie), humidity/wind/pressure are rounded means and the description
// comes from the day's first sample.
func BuildDailyForecast(samples []models.ForecastSample) []models.ForecastDay {
	type bucket struct {
		key     string
		samples []models.ForecastSample
	}

	var buckets []*bucket
	index := make(map[string]*bucket)
	for _, sample := range samples {
		key := sample.Time.Format("2006-01-02")
		b, ok := index[key]
		if !ok {
			b = &bucket{key: key}
			index[key] = b
			buckets = append(buckets, b)
		}
		b.samples = append(b.samples, sample)
	}

	if len(buckets) > forecastDays {
		buckets = buckets[:forecastDays]
	}

	days := make([]models.ForecastDay, 0, len(buckets))
	for i, b := range buckets {
		day := aggregateDay(b.samples)
		switch i {
		case 0:
			day.Day = "Today"
		case 1:
			day.Day = "Tomorrow"
		default:
			day.Day = b.samples[0].Time.Weekday().String()
		}
		days = append(days, day)
	}
	return days
}

func aggregateDay(samples []models.ForecastSample) models.ForecastDay {
	high := samples[0].Temperature
	low := samples[0].Temperature
	var humiditySum, windSum, pressureSum float64
	for _, sample := range samples {
		if sample.Temperature > high {
			high = sample.Temperature
		}
		if sample.Temperature < low {
			low = sample.Temperature
		}
		humiditySum += sample.Humidity
		windSum += sample.WindSpeed
		pressureSum += sample.Pressure
	}

	condition := mostCommonCondition(samples)
	n := float64(len(samples))

	return models.ForecastDay{
		Date:        samples[0].Time.Format("Jan 2"),
		Condition:   condition,
		High:        math.Round(high),
		Low:         math.Round(low),
		Humidity:    int(math.Round(humiditySum / n)),
		WindSpeed:   int(math.Round(windSum / n)),
		Pressure:    int(math.Round(pressureSum / n)),
		Description: samples[0].Description,
		Icon:        iconForCondition(condition),
	}
}

// mostCommonCondition scans left to right; a later condition only takes over
// when its count strictly exceeds the current leader's.
func mostCommonCondition(samples []models.ForecastSample) string {
	counts := make(map[string]int)
	maxCount := 0
	var mostCommon string
	for _, sample := range samples {
		counts[sample.Condition]++
		if counts[sample.Condition] > maxCount {
			maxCount = counts[sample.Condition]
			mostCommon = sample.Condition
		}
	}
	return mostCommon
}

func iconForCondition(condition string) models.Icon {
	switch condition {
	case "Clear":
		return models.IconSun
	case "Rain", "Drizzle":
		return models.IconRain
	case "Snow":
		return models.IconSnow
	case "Thunderstorm":
		return models.IconLightning
	case "Mist", "Fog", "Haze":
		return models.IconFog
	default:
		return models.IconCloud
	}
}

// adviceFor produces the advice line shown under the current conditions.
// Thresholds are in provider units (Fahrenheit).
func adviceFor(conditions *models.CurrentConditions) string {
	weather := strings.ToLower(conditions.Condition)
	temp := conditions.Temperature

	isHot := temp > 85
	isCold := temp < 40
	isIdeal := temp >= 65 && temp <= 80

	switch {
	case strings.Contains(weather, "rain") || strings.Contains(weather, "drizzle"):
		return "Don't forget your umbrella today! ☔"
	case strings.Contains(weather, "snow"):
		return "Bundle up! It's snowing outside. ❄️"
	case strings.Contains(weather, "thunder") || strings.Contains(weather, "storm"):
		return "Stormy weather ahead. Best to stay indoors! ⚡"
	case isHot:
		return "It's hot out there! Stay hydrated and find some shade. 🥤"
	case isCold:
		return "Brrr, it's cold! Bundle up with extra layers. 🧣"
	case isIdeal && (strings.Contains(weather, "clear") || strings.Contains(weather, "cloud")):
		return "Perfect day for outdoor activities! Enjoy the weather! 🌳"
	default:
		return "Have a great day, whatever your plans! 😊"
	}
}
