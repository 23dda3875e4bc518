package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestProviderMetricsObserveRequest(t *testing.T) {
	metrics := NewProviderMetrics("test-provider")

	metrics.ObserveRequest("current", 50*time.Millisecond, nil)
	metrics.ObserveRequest("current", 30*time.Millisecond, fmt.Errorf("boom"))

	collector := getCollector()
	requests := testutil.ToFloat64(collector.Requests.WithLabelValues("test-provider", "current"))
	errors := testutil.ToFloat64(collector.Errors.WithLabelValues("test-provider", "current"))
	assert.Equal(t, float64(2), requests)
	assert.Equal(t, float64(1), errors)
}

func TestRecordStoreWrite(t *testing.T) {
	collector := getCollector()
	failuresBefore := testutil.ToFloat64(collector.StoreFails)

	RecordStoreWrite("testKey", nil)
	RecordStoreWrite("testKey", fmt.Errorf("disk full"))

	writes := testutil.ToFloat64(collector.StoreOps.WithLabelValues("testKey"))
	assert.Equal(t, float64(2), writes)
	assert.Equal(t, failuresBefore+1, testutil.ToFloat64(collector.StoreFails))
}
