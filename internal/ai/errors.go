package ai

import "fmt"

// FailureKind classifies why a single gateway attempt failed.
type FailureKind string

const (
	FailureHTTP      FailureKind = "http_error"
	FailureMalformed FailureKind = "malformed_response"
	FailureEmpty     FailureKind = "empty_response"
)

// ConfigError reports a request that could not be attempted at all, such as
// a missing API key or an empty candidate chain. No network I/O happened.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "configuration error: " + e.Reason
}

// GatewayError describes one failed attempt against one model. Status is only
// set for FailureHTTP.
type GatewayError struct {
	Kind   FailureKind
	Model  string
	Status int
	Detail string
	Cause  error
}

func (e *GatewayError) Error() string {
	if e.Kind == FailureHTTP && e.Status > 0 {
		return fmt.Sprintf("%s: status %d from %s: %s", e.Kind, e.Status, e.Model, e.Detail)
	}
	return fmt.Sprintf("%s from %s: %s", e.Kind, e.Model, e.Detail)
}

func (e *GatewayError) Unwrap() error {
	return e.Cause
}

// ExhaustedError means every candidate in the chain failed. It wraps the
// last candidate's error, so callers can still inspect e.g. an HTTP status
// through errors.As.
type ExhaustedError struct {
	Attempts int
	Last     error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("all %d model candidates failed: %v", e.Attempts, e.Last)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Last
}
