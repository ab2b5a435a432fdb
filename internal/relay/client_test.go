package relay

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"socially/internal/telemetry"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

const replyBody = `{"session_id":"s1","outputs":[{"inputs":{"input_value":"hello"},"outputs":[{"results":{},"outputs":{"message":{"message":{"text":"hi there","sender":"Machine"},"type":"message"}}}]}]}`

func newTestClient(t *testing.T, srv *httptest.Server, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{WithHTTPClient(srv.Client())}, opts...)
	c, err := New(Config{
		BaseURL:    srv.URL,
		LangflowID: "lf-123",
		FlowID:     "flow-456",
		Token:      "AstraCS:secret",
	}, opts...)
	require.NoError(t, err)
	return c
}

func TestRelaySuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/lf/lf-123/api/v1/run/flow-456", r.URL.Path)
		assert.Equal(t, "false", r.URL.Query().Get("stream"))
		assert.Equal(t, "Bearer AstraCS:secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body RunRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, RunRequest{InputValue: "hello", InputType: "chat", OutputType: "chat"}, body)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(replyBody))
	}))
	defer srv.Close()

	reply, err := newTestClient(t, srv).Relay(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "hi there", reply)
}

func TestRelayUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv).Relay(context.Background(), "hello")

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusServiceUnavailable, upstream.StatusCode)
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "Service Unavailable")
	assert.Equal(t, "upstream_error", Kind(err))
}

func TestRelayRecordsOutcomeMetric(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer provider.Shutdown(context.Background())
	metrics, err := telemetry.NewMetrics(provider.Meter("relay-test"))
	require.NoError(t, err)

	_, err = newTestClient(t, srv, WithMetrics(metrics)).Relay(context.Background(), "hello")
	require.Error(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	outcomes := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "relay.calls.total" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				outcome, _ := dp.Attributes.Value(attribute.Key("relay.outcome"))
				outcomes[outcome.AsString()] += dp.Value
			}
		}
	}
	assert.Equal(t, map[string]int64{"upstream_error": 1}, outcomes)
}

func TestRelayProcessingErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `<html>oops</html>`},
		{"no output groups", `{"outputs":[]}`},
		{"no outputs", `{"outputs":[{"outputs":[]}]}`},
		{"no message", `{"outputs":[{"outputs":[{"outputs":{}}]}]}`},
		{"no inner message", `{"outputs":[{"outputs":[{"outputs":{"message":{}}}]}]}`},
		{"no text", `{"outputs":[{"outputs":[{"outputs":{"message":{"message":{}}}}]}]}`},
		{"wrong type", `{"outputs":{"outputs":"x"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestClient(t, srv).Relay(context.Background(), "hello")

			var processing *ProcessingError
			require.ErrorAs(t, err, &processing)
			assert.Equal(t, "processing_error", Kind(err))
		})
	}
}

func TestRelayNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c := newTestClient(t, srv)
	srv.Close()

	_, err := c.Relay(context.Background(), "hello")

	var network *NetworkError
	require.ErrorAs(t, err, &network)
	assert.Equal(t, "network_error", Kind(err))
}

func TestRelayCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(replyBody))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(t, srv).Relay(ctx, "hello")
	var network *NetworkError
	require.ErrorAs(t, err, &network)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRelayTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer srv.Close()
	defer close(release)

	c, err := New(Config{
		BaseURL:    srv.URL,
		LangflowID: "lf-123",
		FlowID:     "flow-456",
		Token:      "AstraCS:secret",
		Timeout:    50 * time.Millisecond,
	}, WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	_, err = c.Relay(context.Background(), "hello")
	var network *NetworkError
	require.ErrorAs(t, err, &network)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestBreakerOpensOnServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := newTestClient(t, srv, WithBreaker())
	for i := 0; i < 3; i++ {
		_, err := c.Relay(context.Background(), "hello")
		var upstream *UpstreamError
		require.ErrorAs(t, err, &upstream)
	}

	_, err := c.Relay(context.Background(), "hello")
	var network *NetworkError
	require.ErrorAs(t, err, &network)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, int32(3), calls.Load())
}

func TestBreakerIgnoresClientErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := newTestClient(t, srv, WithBreaker())
	for i := 0; i < 5; i++ {
		_, err := c.Relay(context.Background(), "hello")
		var upstream *UpstreamError
		require.ErrorAs(t, err, &upstream)
		assert.Equal(t, http.StatusUnauthorized, upstream.StatusCode)
	}
}

func TestNewValidatesConfig(t *testing.T) {
	valid := Config{BaseURL: "https://example.test", LangflowID: "a", FlowID: "b", Token: "t"}

	_, err := New(valid)
	require.NoError(t, err)

	for name, mutate := range map[string]func(*Config){
		"base url": func(c *Config) { c.BaseURL = "" },
		"langflow": func(c *Config) { c.LangflowID = "" },
		"flow":     func(c *Config) { c.FlowID = "" },
		"token":    func(c *Config) { c.Token = "" },
	} {
		t.Run(name, func(t *testing.T) {
			cfg := valid
			mutate(&cfg)
			_, err := New(cfg)
			assert.Error(t, err)
		})
	}
}

func TestEndpoint(t *testing.T) {
	cfg := Config{BaseURL: "https://api.langflow.astra.datastax.com/", LangflowID: "lf", FlowID: "fl"}
	assert.Equal(t, "https://api.langflow.astra.datastax.com/lf/lf/api/v1/run/fl?stream=false", cfg.Endpoint())
}

func TestKindUnknown(t *testing.T) {
	assert.Equal(t, "success", Kind(nil))
	assert.Equal(t, "unknown_error", Kind(errors.New("boom")))
	assert.True(t, strings.HasPrefix((&UpstreamError{StatusCode: 418}).Error(), "upstream returned 418"))
}
