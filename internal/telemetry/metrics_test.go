package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestMetrics(t *testing.T) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { provider.Shutdown(context.Background()) })

	m, err := NewMetrics(provider.Meter("socially-test"))
	require.NoError(t, err)
	return m, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Aggregation)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m.Data
		}
	}
	return out
}

func sumFor(t *testing.T, data metricdata.Aggregation, attr attribute.KeyValue) int64 {
	t.Helper()
	sum, ok := data.(metricdata.Sum[int64])
	require.True(t, ok, "want int64 sum, got %T", data)
	var total int64
	for _, dp := range sum.DataPoints {
		if v, ok := dp.Attributes.Value(attr.Key); ok && v.Emit() == attr.Value.Emit() {
			total += dp.Value
		}
	}
	return total
}

func TestMetricsAreCollected(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordRequest(ctx, "POST", "/api/chat", "server_error", 120*time.Millisecond)
	m.RecordRelayCall(ctx, "upstream_error", 3*time.Second)
	m.RecordRelayCall(ctx, "success", time.Second)
	m.RecordRelayCall(ctx, "success", 2*time.Second)
	m.RecordPostsGenerated(ctx, 10, "csv")
	m.RecordCircuitBreakerState(ctx, "langflow", "open")

	got := collect(t, reader)

	assert.Equal(t, int64(1), sumFor(t, got["http.requests.total"], attribute.String("http.status_class", "server_error")))
	assert.Equal(t, int64(1), sumFor(t, got["relay.calls.total"], attribute.String("relay.outcome", "upstream_error")))
	assert.Equal(t, int64(2), sumFor(t, got["relay.calls.total"], attribute.String("relay.outcome", "success")))
	assert.Equal(t, int64(10), sumFor(t, got["mockdata.posts.generated"], attribute.String("mockdata.format", "csv")))
	assert.Equal(t, int64(1), sumFor(t, got["circuit_breaker.state_changes"], attribute.String("state", "open")))

	hist, ok := got["relay.call.duration"].(metricdata.Histogram[float64])
	require.True(t, ok)
	var calls uint64
	for _, dp := range hist.DataPoints {
		calls += dp.Count
		assert.Equal(t, relayBuckets, dp.Bounds)
	}
	assert.Equal(t, uint64(3), calls)
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	ctx := context.Background()
	m.RecordRequest(ctx, "GET", "/health", "success", 0)
	m.RecordRelayCall(ctx, "success", 0)
	m.RecordPostsGenerated(ctx, 1, "xlsx")
	m.RecordCircuitBreakerState(ctx, "langflow", "closed")
}
