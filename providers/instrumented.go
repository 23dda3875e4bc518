package providers

import (
	"context"
	"log/slog"
	"time"

	"skysage.app/metrics"
	"skysage.app/models"
)

// InstrumentedWeatherProvider decorates a WeatherProvider with request
// logging and Prometheus metrics.
type InstrumentedWeatherProvider struct {
	inner   WeatherProvider
	metrics *metrics.ProviderMetrics
}

// NewInstrumentedWeatherProvider wraps inner under the given provider name.
func NewInstrumentedWeatherProvider(inner WeatherProvider, name string) *InstrumentedWeatherProvider {
	return &InstrumentedWeatherProvider{
		inner:   inner,
		metrics: metrics.NewProviderMetrics(name),
	}
}

func (p *InstrumentedWeatherProvider) GetCurrentConditions(ctx context.Context, city string) (*models.CurrentConditions, error) {
	start := time.Now()
	conditions, err := p.inner.GetCurrentConditions(ctx, city)
	duration := time.Since(start)

	p.metrics.ObserveRequest("current", duration, err)
	if err != nil {
		slog.Error("Weather provider request failed", "operation", "current", "city", city, "duration", duration, "error", err)
	} else {
		slog.Debug("Weather provider request", "operation", "current", "city", city, "duration", duration)
	}
	return conditions, err
}

func (p *InstrumentedWeatherProvider) GetForecast(ctx context.Context, city string) ([]models.ForecastSample, error) {
	start := time.Now()
	samples, err := p.inner.GetForecast(ctx, city)
	duration := time.Since(start)

	p.metrics.ObserveRequest("forecast", duration, err)
	if err != nil {
		slog.Error("Weather provider request failed", "operation", "forecast", "city", city, "duration", duration, "error", err)
	} else {
		slog.Debug("Weather provider request", "operation", "forecast", "city", city, "samples", len(samples), "duration", duration)
	}
	return samples, err
}

// InstrumentedTextGenerator decorates a TextGenerator the same way.
type InstrumentedTextGenerator struct {
	inner   TextGenerator
	metrics *metrics.ProviderMetrics
}

// NewInstrumentedTextGenerator wraps inner under the given provider name.
func NewInstrumentedTextGenerator(inner TextGenerator, name string) *InstrumentedTextGenerator {
	return &InstrumentedTextGenerator{
		inner:   inner,
		metrics: metrics.NewProviderMetrics(name),
	}
}

func (p *InstrumentedTextGenerator) GenerateReply(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	reply, err := p.inner.GenerateReply(ctx, prompt)
	duration := time.Since(start)

	p.metrics.ObserveRequest("generate", duration, err)
	if err != nil {
		slog.Error("Text generator request failed", "duration", duration, "error", err)
	} else {
		slog.Debug("Text generator request", "duration", duration, "reply_len", len(reply))
	}
	return reply, err
}
