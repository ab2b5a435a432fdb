package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"socially/internal/logger"
	"socially/internal/telemetry"
	"socially/utils"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
)

// maxResponseSize caps how much of a run response is read
const maxResponseSize = 10 << 20

// Config identifies the hosted flow and the credential used to run it
type Config struct {
	BaseURL    string
	LangflowID string
	FlowID     string
	Token      string
	// Timeout bounds one flow run. 0 means only the caller's context applies.
	Timeout time.Duration
}

// Endpoint returns the run URL for the configured flow
func (c Config) Endpoint() string {
	return fmt.Sprintf("%s/lf/%s/api/v1/run/%s?stream=false",
		strings.TrimRight(c.BaseURL, "/"),
		url.PathEscape(c.LangflowID),
		url.PathEscape(c.FlowID))
}

func (c Config) validate() error {
	switch {
	case c.BaseURL == "":
		return errors.New("relay: base URL is required")
	case c.LangflowID == "":
		return errors.New("relay: langflow id is required")
	case c.FlowID == "":
		return errors.New("relay: flow id is required")
	case c.Token == "":
		return errors.New("relay: application token is required")
	}
	if _, err := url.Parse(c.BaseURL); err != nil {
		return fmt.Errorf("relay: invalid base URL: %w", err)
	}
	return nil
}

// Client forwards one chat message per call to the flow-execution service.
// It keeps no state between calls.
type Client struct {
	cfg        Config
	endpoint   string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	metrics    *telemetry.Metrics
}

type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithMetrics records call outcomes and breaker transitions
func WithMetrics(m *telemetry.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithBreaker wraps upstream calls in a circuit breaker
func WithBreaker() Option {
	return func(c *Client) { c.breaker = newBreaker(c) }
}

func New(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	c := &Client{
		cfg:        cfg,
		endpoint:   cfg.Endpoint(),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Relay sends message to the flow and returns the assistant reply.
// Errors are *UpstreamError, *ProcessingError or *NetworkError.
func (c *Client) Relay(ctx context.Context, message string) (string, error) {
	tracer := otel.Tracer("relay")
	ctx, span := tracer.Start(ctx, "relay.run")
	defer span.End()

	span.SetAttributes(
		attribute.String("langflow.flow_id", c.cfg.FlowID),
		attribute.Int("relay.message_length", len(message)),
	)

	start := time.Now()
	reply, err := c.execute(ctx, message)
	c.metrics.RecordRelayCall(ctx, Kind(err), time.Since(start))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, Kind(err))
		return "", err
	}
	span.SetStatus(codes.Ok, "")
	return reply, nil
}

func (c *Client) execute(ctx context.Context, message string) (string, error) {
	if c.breaker == nil {
		return c.run(ctx, message)
	}
	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.run(ctx, message)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", &NetworkError{Err: err}
	}
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

func (c *Client) run(ctx context.Context, message string) (string, error) {
	ctx, cancel := utils.WithUpstreamTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	body, err := json.Marshal(newRunRequest(message))
	if err != nil {
		return "", &ProcessingError{Err: fmt.Errorf("marshal run request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &NetworkError{Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	req.Header.Set("Content-Type", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	logger.FromContext(ctx).Debug("Running flow", "flow_id", c.cfg.FlowID, "message_length", len(message))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))
		return "", &UpstreamError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	return decodeReply(io.LimitReader(resp.Body, maxResponseSize))
}
