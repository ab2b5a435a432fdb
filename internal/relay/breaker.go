package relay

import (
	"context"
	"errors"
	"time"

	"socially/internal/logger"

	"github.com/sony/gobreaker"
)

func newBreaker(c *Client) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "LangflowAPI",
		MaxRequests: 5,
		Interval:    10 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		// A malformed body or a 4xx means the service is up
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var upstream *UpstreamError
			if errors.As(err, &upstream) {
				return upstream.StatusCode < 500
			}
			var processing *ProcessingError
			return errors.As(err, &processing)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state change", "breaker", name, "from", from.String(), "to", to.String())
			c.metrics.RecordCircuitBreakerState(context.Background(), name, to.String())
		},
	})
}
