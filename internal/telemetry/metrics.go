package telemetry

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Flow runs routinely take several seconds, so relay latency gets wider
// buckets than inbound requests.
var relayBuckets = []float64{0.25, 0.5, 1, 2, 4, 8, 15, 30, 60}

// Metrics holds the service's instruments. A nil *Metrics records nothing.
type Metrics struct {
	RequestCounter      metric.Int64Counter
	RequestDuration     metric.Float64Histogram
	RelayCalls          metric.Int64Counter
	RelayDuration       metric.Float64Histogram
	PostsGenerated      metric.Int64Counter
	CircuitBreakerState metric.Int64Counter
}

// InitMetrics registers instruments on the global meter provider
func InitMetrics() (*Metrics, error) {
	return NewMetrics(otel.Meter("socially"))
}

// NewMetrics registers instruments on meter
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	var m Metrics
	var errs []error
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	var err error
	m.RequestCounter, err = meter.Int64Counter("http.requests.total",
		metric.WithDescription("Inbound HTTP requests by route and status class"))
	collect(err)

	m.RequestDuration, err = meter.Float64Histogram("http.request.duration",
		metric.WithDescription("Inbound HTTP request duration"),
		metric.WithUnit("s"))
	collect(err)

	m.RelayCalls, err = meter.Int64Counter("relay.calls.total",
		metric.WithDescription("Flow runs by outcome"))
	collect(err)

	m.RelayDuration, err = meter.Float64Histogram("relay.call.duration",
		metric.WithDescription("Flow run duration including response decoding"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(relayBuckets...))
	collect(err)

	m.PostsGenerated, err = meter.Int64Counter("mockdata.posts.generated",
		metric.WithDescription("Synthetic posts written to disk"))
	collect(err)

	m.CircuitBreakerState, err = meter.Int64Counter("circuit_breaker.state_changes",
		metric.WithDescription("Relay circuit breaker transitions"))
	collect(err)

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return &m, nil
}

// RecordRequest records one inbound request. status is a class such as
// "success", "client_error" or "server_error".
func (m *Metrics) RecordRequest(ctx context.Context, method, route, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("http.route", route),
		attribute.String("http.status_class", status),
	)
	m.RequestCounter.Add(ctx, 1, attrs)
	m.RequestDuration.Record(ctx, elapsed.Seconds(), attrs)
}

// RecordRelayCall records one flow run; outcome is "success" or an error kind
func (m *Metrics) RecordRelayCall(ctx context.Context, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("relay.outcome", outcome))
	m.RelayCalls.Add(ctx, 1, attrs)
	m.RelayDuration.Record(ctx, elapsed.Seconds(), attrs)
}

func (m *Metrics) RecordPostsGenerated(ctx context.Context, count int, format string) {
	if m == nil {
		return
	}
	m.PostsGenerated.Add(ctx, int64(count),
		metric.WithAttributes(attribute.String("mockdata.format", format)))
}

func (m *Metrics) RecordCircuitBreakerState(ctx context.Context, breaker, state string) {
	if m == nil {
		return
	}
	m.CircuitBreakerState.Add(ctx, 1, metric.WithAttributes(
		attribute.String("breaker", breaker),
		attribute.String("state", state),
	))
}
