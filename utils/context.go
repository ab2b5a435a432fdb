package utils

import (
	"context"
	"time"
)

const (
	// ShutdownTimeout bounds draining in-flight chat requests on SIGTERM
	ShutdownTimeout = 30 * time.Second

	// LimiterTimeout bounds a rate-limit lookup before the request is let through
	LimiterTimeout = 500 * time.Millisecond
)

// WithUpstreamTimeout applies the configured flow-run deadline.
// A zero or negative d leaves the parent deadline untouched.
func WithUpstreamTimeout(parent context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, d)
}

func WithLimiterTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, LimiterTimeout)
}

func WithShutdownTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, ShutdownTimeout)
}
