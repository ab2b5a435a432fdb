package relay

import (
	"errors"
	"fmt"
	"net/http"
)

// UpstreamError is a non-2xx answer from the flow-execution service
type UpstreamError struct {
	StatusCode int
	Status     string
}

func (e *UpstreamError) Error() string {
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return "upstream returned " + status
}

// ProcessingError is a success response whose body does not match the run schema
type ProcessingError struct {
	Err error
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("failed to process upstream response: %v", e.Err)
}

func (e *ProcessingError) Unwrap() error { return e.Err }

// NetworkError is a transport failure before any response was received
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("upstream request failed: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Kind names the error class for logs and metrics
func Kind(err error) string {
	var upstream *UpstreamError
	var processing *ProcessingError
	var network *NetworkError

	switch {
	case err == nil:
		return "success"
	case errors.As(err, &upstream):
		return "upstream_error"
	case errors.As(err, &processing):
		return "processing_error"
	case errors.As(err, &network):
		return "network_error"
	default:
		return "unknown_error"
	}
}
