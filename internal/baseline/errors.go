package baseline

import (
	"fmt"

	"github.com/Laisky/errors/v2"
)

// ValidationError reports input that violates the tool contract. It is
// raised before any upstream request is made.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// FetchError reports a failed upstream request: transport failure,
// non-2xx status, or a body that is not valid JSON.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e == nil {
		return ""
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// InternalError wraps any failure that is neither a validation nor an upstream error.
type InternalError struct {
	Cause error
}

func (e *InternalError) Error() string {
	if e == nil || e.Cause == nil {
		return "internal error"
	}
	return e.Cause.Error()
}

func (e *InternalError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsUpstream reports whether err carries a FetchError.
func IsUpstream(err error) bool {
	var target *FetchError
	return errors.As(err, &target)
}

// JSON-RPC error codes used by the protocol adapters.
const (
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// ErrorCode maps err to the JSON-RPC code reported for a failed tool call.
// Upstream failures are reported as internal errors.
func ErrorCode(err error) int {
	if IsValidation(err) {
		return CodeInvalidParams
	}
	return CodeInternalError
}
