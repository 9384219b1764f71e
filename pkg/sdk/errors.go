package scenttwin

import (
	"fmt"
	"net/http"

	"github.com/kailas-cloud/scenttwin/internal/domain"
)

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidRequest = domain.ErrInvalidRequest
	ErrNotConfigured  = domain.ErrNotConfigured
)

// APIError is a non-2xx answer from the server.
// Message is the server's "error" field (or the status text when absent).
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("scenttwin: %d %s", e.StatusCode, e.Message)
}

// Unwrap maps the answers the server can attribute to a cause.
// A 400 is always a rejected request; a 500 carries the configuration
// message only when the server has no provider credential.
func (e *APIError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusBadRequest:
		return ErrInvalidRequest
	case e.StatusCode == http.StatusInternalServerError && e.Message == domain.MsgConfiguration:
		return ErrNotConfigured
	}
	return nil
}
