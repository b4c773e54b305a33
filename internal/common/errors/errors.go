// Package errors provides standardized error handling for the submission
// intake pipelines. Message is always safe to show a client; Details never is.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidationFailed      ErrorCode = "VALIDATION_FAILED"
	ErrCodeMissingContactChannel ErrorCode = "MISSING_CONTACT_CHANNEL"
	ErrCodeDuplicateSubmission   ErrorCode = "DUPLICATE_SUBMISSION"
	ErrCodeStoreUnavailable      ErrorCode = "STORE_UNAVAILABLE"
	ErrCodeStoreWriteFailed      ErrorCode = "STORE_WRITE_FAILED"
	ErrCodeInternal              ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error. Message is the
// user-visible, actionable text; Details carries the internal cause and is
// only ever logged.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Field     string                 `json:"field,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. HTTP Integration
// ==========================

// HTTPStatus maps an error code onto the stable response contract. The
// outermost HTTP responder is the only caller; no other layer touches
// status codes.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeValidationFailed, ErrCodeMissingContactChannel:
		return http.StatusBadRequest
	case ErrCodeDuplicateSubmission:
		return http.StatusTooManyRequests
	case ErrCodeStoreUnavailable:
		return http.StatusServiceUnavailable
	case ErrCodeStoreWriteFailed:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// AsStandard extracts a *StandardError from an error chain, or nil.
func AsStandard(err error) *StandardError {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr
	}
	return nil
}

// ==========================
// 3. Error Constructors
// ==========================

// NewValidationError reports the first violated field with its
// human-readable reason.
func NewValidationError(field, message string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   message,
		Field:     field,
		Timestamp: time.Now().UTC(),
	}
}

// NewMissingContactChannelError reports the cross-field rule requiring at
// least one of phone or email, distinguishable from per-field errors.
func NewMissingContactChannelError() *StandardError {
	return &StandardError{
		Code:      ErrCodeMissingContactChannel,
		Message:   "Phone or email is required",
		Timestamp: time.Now().UTC(),
	}
}

// NewDuplicateSubmissionError rejects a resubmission inside the trailing
// window. The message names the channel that matched and the window.
func NewDuplicateSubmissionError(message, channel string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDuplicateSubmission,
		Message:   message,
		Details:   fmt.Sprintf("matched channel: %s", channel),
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreUnavailableError signals that no document store has been
// provisioned, distinct from a write that was attempted and failed.
func NewStoreUnavailableError(message string) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreUnavailable,
		Message:   message,
		Details:   "document store not configured",
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreWriteError wraps a failed store call. The underlying error is
// only logged, never echoed to the client.
func NewStoreWriteError(message string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreWriteFailed,
		Message:   message,
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps anything uncaught with a generic client body.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Failed to process your request. Please try again.",
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
	}
}
