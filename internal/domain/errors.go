package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest signals a caller-supplied body that fails shape or content checks.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrNotConfigured signals a missing provider credential.
	ErrNotConfigured = errors.New("provider not configured")
	// ErrProviderFailure signals a network, quota or provider-side error during generation.
	ErrProviderFailure = errors.New("provider failure")
	// ErrContractViolation signals provider output that violates the agreed schema.
	ErrContractViolation = errors.New("provider output violates schema")
)

// RejectionError wraps ErrInvalidRequest with a message that is safe to show to the caller.
type RejectionError struct {
	Reason string
}

func (e *RejectionError) Error() string { return e.Reason }

func (e *RejectionError) Unwrap() error { return ErrInvalidRequest }

// Reject creates a request rejection.
func Reject(format string, args ...any) error {
	return &RejectionError{Reason: fmt.Sprintf(format, args...)}
}

// ValidationKind classifies why provider output was refused.
type ValidationKind string

// Validation kinds.
const (
	EmptyResponse  ValidationKind = "EMPTY_RESPONSE"
	MalformedJSON  ValidationKind = "MALFORMED_JSON"
	SchemaMismatch ValidationKind = "SCHEMA_MISMATCH"
)

// ValidationError wraps ErrContractViolation with the failure kind and,
// for schema mismatches, the first failing field path.
type ValidationError struct {
	Kind   ValidationKind
	Path   string
	Detail string
}

func (e *ValidationError) Error() string {
	msg := string(e.Kind)
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *ValidationError) Unwrap() error { return ErrContractViolation }

// Caller-facing messages for server-side failures. Details stay in the logs.
const (
	MsgConfiguration    = "Server configuration error"
	MsgProcessingFailed = "Failed to process request"
	MsgInternal         = "internal error"
)

// PublicMessage returns the text a caller may see for err. Rejections keep
// their reason; everything else collapses to a generic message.
func PublicMessage(err error) string {
	var rej *RejectionError
	switch {
	case errors.As(err, &rej):
		return rej.Reason
	case errors.Is(err, ErrNotConfigured):
		return MsgConfiguration
	case errors.Is(err, ErrProviderFailure), errors.Is(err, ErrContractViolation):
		return MsgProcessingFailed
	}
	return MsgInternal
}
