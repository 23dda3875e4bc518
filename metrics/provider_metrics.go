// Package metrics exposes Prometheus instrumentation for the external
// provider calls and the preference store.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ProviderMetricsCollector holds the provider-facing Prometheus series.
type ProviderMetricsCollector struct {
	Requests   *prometheus.CounterVec
	Errors     *prometheus.CounterVec
	Latency    *prometheus.HistogramVec
	StoreOps   *prometheus.CounterVec
	StoreFails prometheus.Counter
}

var (
	globalCollector *ProviderMetricsCollector
	collectorOnce   sync.Once
)

func getCollector() *ProviderMetricsCollector {
	collectorOnce.Do(func() {
		globalCollector = &ProviderMetricsCollector{
			Requests: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "skysage_provider_requests_total",
					Help: "The total number of external provider requests",
				},
				[]string{"provider", "operation"},
			),
			Errors: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "skysage_provider_errors_total",
					Help: "The total number of failed external provider requests",
				},
				[]string{"provider", "operation"},
			),
			Latency: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "skysage_provider_duration_seconds",
					Help:    "External provider request duration in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"provider", "operation"},
			),
			StoreOps: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "skysage_store_writes_total",
					Help: "The total number of preference store writes",
				},
				[]string{"key"},
			),
			StoreFails: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "skysage_store_write_failures_total",
					Help: "The total number of failed preference store writes",
				},
			),
		}
	})
	return globalCollector
}

// ProviderMetrics records calls against one named provider.
type ProviderMetrics struct {
	provider  string
	collector *ProviderMetricsCollector
}

// NewProviderMetrics creates a recorder for the named provider.
func NewProviderMetrics(provider string) *ProviderMetrics {
	return &ProviderMetrics{
		provider:  provider,
		collector: getCollector(),
	}
}

// ObserveRequest records one provider call with its outcome and duration.
func (m *ProviderMetrics) ObserveRequest(operation string, duration time.Duration, err error) {
	m.collector.Requests.WithLabelValues(m.provider, operation).Inc()
	m.collector.Latency.WithLabelValues(m.provider, operation).Observe(duration.Seconds())
	if err != nil {
		m.collector.Errors.WithLabelValues(m.provider, operation).Inc()
	}
}

// RecordStoreWrite counts one preference store write per key.
func RecordStoreWrite(key string, err error) {
	collector := getCollector()
	collector.StoreOps.WithLabelValues(key).Inc()
	if err != nil {
		collector.StoreFails.Inc()
	}
}
