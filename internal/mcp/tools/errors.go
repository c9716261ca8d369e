package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"github.com/usestring/salesdash-mcp/pkg/client"
	"github.com/usestring/salesdash-mcp/pkg/payload"
)

// Error codes for MCP tool responses.
const (
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeInvalidInput     = "INVALID_INPUT"
	ErrCodeBackendError     = "BACKEND_ERROR"
	ErrCodeTimeout          = "TIMEOUT"
	ErrCodeMalformedPayload = "MALFORMED_PAYLOAD"
)

// CodedError is an error with an associated error code.
type CodedError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CodedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CodedError) Unwrap() error {
	return e.Cause
}

// WrapBackendError converts a client.APIError or other chat backend error to
// a coded error. Malformed payloads keep their own code.
func WrapBackendError(err error) error {
	if err == nil {
		return nil
	}

	var coded *CodedError
	if errors.As(err, &coded) {
		return coded
	}

	var apiErr *client.APIError
	var netErr net.Error
	switch {
	case errors.As(err, &apiErr):
		code := ErrCodeBackendError
		if apiErr.StatusCode == 404 {
			code = ErrCodeNotFound
		}
		coded = &CodedError{Code: code, Message: apiErr.Message, Cause: err}
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		coded = &CodedError{Code: ErrCodeTimeout, Message: "request timed out", Cause: err}
	case errors.Is(err, payload.ErrMalformed):
		return ErrMalformedPayload(err)
	default:
		coded = &CodedError{Code: ErrCodeBackendError, Message: err.Error(), Cause: err}
	}

	slog.Warn("chat backend error",
		slog.String("code", coded.Code),
		slog.String("message", coded.Message),
	)

	return coded
}

// ErrNotFound creates a not found error.
func ErrNotFound(resource, id string) error {
	return &CodedError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, id),
	}
}

// ErrInvalidInput creates an invalid input error.
func ErrInvalidInput(message string) error {
	return &CodedError{
		Code:    ErrCodeInvalidInput,
		Message: message,
	}
}

// ErrMalformedPayload reports a payload the parser refused. It is distinct
// from a payload that parsed to no rows.
func ErrMalformedPayload(cause error) error {
	return &CodedError{
		Code:    ErrCodeMalformedPayload,
		Message: "payload could not be parsed",
		Cause:   cause,
	}
}
