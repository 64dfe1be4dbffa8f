// Package errors provides structured error handling for the mcloud OAuth2
// server core. Every failure surfaced by the service layer is a *ServerError
// carrying a category and a code, so that callers can distinguish NotFound
// from Conflict without string matching.
package errors

import (
	"errors"
	"fmt"

	"github.com/Chenxicheng/mcloud-oauth2-server/pkg/types"
)

// ErrorCode represents specific error codes
type ErrorCode string

const (
	// Validation errors
	ErrCodeValidation   ErrorCode = "VALIDATION_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"

	// Resource errors
	ErrCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS"
	ErrCodeConflict      ErrorCode = "CONFLICT"

	// System errors
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"

	// Database errors
	ErrCodeDatabaseError     ErrorCode = "DATABASE_ERROR"
	ErrCodeConnectionFailed  ErrorCode = "CONNECTION_FAILED"
	ErrCodeTransactionFailed ErrorCode = "TRANSACTION_FAILED"

	// Configuration errors
	ErrCodeConfigError   ErrorCode = "CONFIG_ERROR"
	ErrCodeConfigInvalid ErrorCode = "CONFIG_INVALID"
)

// ServerError represents a structured error in the server core
type ServerError struct {
	Type    types.ErrorType        `json:"type"`
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *ServerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s (caused by: %v)", e.Code, e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *ServerError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *ServerError) WithDetail(key string, value interface{}) *ServerError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// NewServerError creates a new server error
func NewServerError(errType types.ErrorType, code ErrorCode, message string) *ServerError {
	return &ServerError{
		Type:    errType,
		Code:    code,
		Message: message,
	}
}

// NewServerErrorWithCause creates a new server error with a cause
func NewServerErrorWithCause(errType types.ErrorType, code ErrorCode, message string, cause error) *ServerError {
	return &ServerError{
		Type:    errType,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Validation error constructors

func NewValidationError(message string) *ServerError {
	return NewServerError(types.ErrorTypeValidation, ErrCodeValidation, message)
}

func NewInvalidInputError(message string) *ServerError {
	return NewServerError(types.ErrorTypeValidation, ErrCodeInvalidInput, message)
}

func NewMissingFieldError(field string) *ServerError {
	return NewServerError(types.ErrorTypeValidation, ErrCodeMissingField,
		fmt.Sprintf("missing required field: %s", field)).WithDetail("field", field)
}

// Resource error constructors

func NewNotFoundError(resource string) *ServerError {
	return NewServerError(types.ErrorTypeNotFound, ErrCodeNotFound,
		fmt.Sprintf("%s not found", resource)).WithDetail("resource", resource)
}

func NewAlreadyExistsError(resource string) *ServerError {
	return NewServerError(types.ErrorTypeConflict, ErrCodeAlreadyExists,
		fmt.Sprintf("%s already exists", resource)).WithDetail("resource", resource)
}

func NewConflictError(message string) *ServerError {
	return NewServerError(types.ErrorTypeConflict, ErrCodeConflict, message)
}

// System error constructors

func NewInternalError(message string) *ServerError {
	return NewServerError(types.ErrorTypeInternal, ErrCodeInternal, message)
}

func NewInternalErrorWithCause(message string, cause error) *ServerError {
	return NewServerErrorWithCause(types.ErrorTypeInternal, ErrCodeInternal, message, cause)
}

// Database error constructors

func NewDatabaseError(message string) *ServerError {
	return NewServerError(types.ErrorTypeInternal, ErrCodeDatabaseError, message)
}

func NewDatabaseErrorWithCause(message string, cause error) *ServerError {
	return NewServerErrorWithCause(types.ErrorTypeInternal, ErrCodeDatabaseError, message, cause)
}

func NewConnectionFailedError(target string, cause error) *ServerError {
	return NewServerErrorWithCause(types.ErrorTypeInternal, ErrCodeConnectionFailed,
		fmt.Sprintf("failed to connect to %s", target), cause).WithDetail("target", target)
}

func NewTransactionFailedError(cause error) *ServerError {
	return NewServerErrorWithCause(types.ErrorTypeInternal, ErrCodeTransactionFailed,
		"transaction failed", cause)
}

// Configuration error constructors

func NewConfigError(message string) *ServerError {
	return NewServerError(types.ErrorTypeValidation, ErrCodeConfigError, message)
}

func NewConfigInvalidError(message string) *ServerError {
	return NewServerError(types.ErrorTypeValidation, ErrCodeConfigInvalid, message)
}

// Predicates

// IsServerError checks if an error is a ServerError
func IsServerError(err error) bool {
	var serverErr *ServerError
	return errors.As(err, &serverErr)
}

// GetServerError extracts a ServerError from an error chain
func GetServerError(err error) *ServerError {
	var serverErr *ServerError
	if errors.As(err, &serverErr) {
		return serverErr
	}
	return nil
}

// IsNotFound reports whether err carries the NotFound category
func IsNotFound(err error) bool {
	serverErr := GetServerError(err)
	return serverErr != nil && serverErr.Type == types.ErrorTypeNotFound
}

// IsConflict reports whether err carries the Conflict category
func IsConflict(err error) bool {
	serverErr := GetServerError(err)
	return serverErr != nil && serverErr.Type == types.ErrorTypeConflict
}

// IsValidation reports whether err carries the Validation category
func IsValidation(err error) bool {
	serverErr := GetServerError(err)
	return serverErr != nil && serverErr.Type == types.ErrorTypeValidation
}

// WrapError wraps an error as a ServerError
func WrapError(err error, errType types.ErrorType, code ErrorCode, message string) *ServerError {
	return NewServerErrorWithCause(errType, code, message, err)
}
