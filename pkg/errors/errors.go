package errors

import (
	stderrors "errors"
	"fmt"
)

// Application error types organized by category for better error handling

type ErrorType int

// Domain errors - errors related to client-side rules and validation
const (
	ErrorTypeUnknown ErrorType = iota
	ErrorTypeValidation
	ErrorTypeNotFound

	// Upstream errors - failures talking to the weather and auth services
	ErrorTypeNetworkFailure
	ErrorTypeRejectedResponse
	ErrorTypeValidationRejected
	ErrorTypeLoginRejected

	// Infrastructure errors - local persistence and configuration
	ErrorTypeStorage
	ErrorTypeConfiguration
)

// String returns the string representation of error type
func (e ErrorType) String() string {
	switch e {
	case ErrorTypeValidation:
		return "VALIDATION_ERROR"
	case ErrorTypeNotFound:
		return "NOT_FOUND_ERROR"
	case ErrorTypeNetworkFailure:
		return "NETWORK_FAILURE"
	case ErrorTypeRejectedResponse:
		return "REJECTED_RESPONSE"
	case ErrorTypeValidationRejected:
		return "VALIDATION_REJECTED"
	case ErrorTypeLoginRejected:
		return "LOGIN_REJECTED"
	case ErrorTypeStorage:
		return "STORAGE_ERROR"
	case ErrorTypeConfiguration:
		return "CONFIGURATION_ERROR"
	default:
		return "UNKNOWN_ERROR"
	}
}

// Short aliases used across the codebase
const (
	ValidationError         = ErrorTypeValidation
	NotFoundError           = ErrorTypeNotFound
	NetworkFailureError     = ErrorTypeNetworkFailure
	RejectedResponseError   = ErrorTypeRejectedResponse
	ValidationRejectedError = ErrorTypeValidationRejected
	LoginRejectedError      = ErrorTypeLoginRejected
	StorageError            = ErrorTypeStorage
	ConfigurationError      = ErrorTypeConfiguration
)

type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type.String(), e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type.String(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
	}
}

func Wrap(errorType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// Domain error constructors
func NewValidationError(message string) *AppError {
	return New(ValidationError, message)
}

func NewNotFoundError(message string) *AppError {
	return New(NotFoundError, message)
}

// Upstream error constructors
func NewNetworkFailureError(message string, cause error) *AppError {
	return Wrap(NetworkFailureError, message, cause)
}

func NewRejectedResponseError(message string, cause error) *AppError {
	return Wrap(RejectedResponseError, message, cause)
}

func NewValidationRejectedError(message string) *AppError {
	return New(ValidationRejectedError, message)
}

func NewLoginRejectedError(message string, cause error) *AppError {
	return Wrap(LoginRejectedError, message, cause)
}

// Infrastructure error constructors
func NewStorageError(message string, cause error) *AppError {
	return Wrap(StorageError, message, cause)
}

func NewConfigurationError(message string, cause error) *AppError {
	return Wrap(ConfigurationError, message, cause)
}

// TypeOf returns the type of the first AppError in the chain.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeUnknown
}

// Message returns the user-facing text of err: the AppError message when
// there is one in the chain, the plain error text otherwise.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return err.Error()
}

// Helper functions for error type checking
func IsNotFoundError(err error) bool {
	return TypeOf(err) == NotFoundError
}

func IsValidationError(err error) bool {
	return TypeOf(err) == ValidationError
}

func IsNetworkFailure(err error) bool {
	return TypeOf(err) == NetworkFailureError
}

func IsRejectedResponse(err error) bool {
	return TypeOf(err) == RejectedResponseError
}

func IsValidationRejected(err error) bool {
	return TypeOf(err) == ValidationRejectedError
}

func IsLoginRejected(err error) bool {
	return TypeOf(err) == LoginRejectedError
}

func IsStorageError(err error) bool {
	return TypeOf(err) == StorageError
}

func IsConfigurationError(err error) bool {
	return TypeOf(err) == ConfigurationError
}
