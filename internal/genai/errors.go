package genai

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for backend interactions.
var (
	// ErrEmptyResponse indicates a 2xx response that carried no usable content.
	ErrEmptyResponse = errors.New("backend returned no usable content")

	// ErrCapabilityUnavailable indicates the requested model or capability is
	// not available to the caller's credentials or tier.
	ErrCapabilityUnavailable = errors.New("capability unavailable for these credentials")
)

// APIError is a non-2xx response from the generative backend.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend error: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("backend error: HTTP %d %s: %s", e.StatusCode, e.Status, e.Message)
}

// Unwrap maps credential/tier rejections onto ErrCapabilityUnavailable so
// callers can distinguish them from generic transport failures.
func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusForbidden || e.StatusCode == http.StatusNotFound {
		return ErrCapabilityUnavailable
	}
	return nil
}
