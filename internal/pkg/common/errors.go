package common

import (
	"errors"
	"net/http"
)

// ErrorResponse is the JSON body returned for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// CustomError carries an error code and the HTTP status it maps to.
type CustomError struct {
	Code    string
	Message string
	Err     error
	Status  int
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewError creates a new CustomError.
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// Error codes.
const (
	ErrCodeInvalidRequest   = "INVALID_REQUEST"    // 400
	ErrCodeForbidden        = "FORBIDDEN"          // 403
	ErrCodeNotFound         = "NOT_FOUND"          // 404
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED" // 405
	ErrCodeUpstreamFormat   = "UPSTREAM_FORMAT"    // 500
	ErrCodeStoreRead        = "STORE_READ"         // 500
	ErrCodeStoreWrite       = "STORE_WRITE"        // 500
	ErrCodeNoRecipes        = "NO_RECIPES"         // 500
	ErrCodeConfiguration    = "CONFIGURATION"      // 500
	ErrCodeInternalError    = "INTERNAL_ERROR"     // 500
)

// ValidationError marks bad or missing caller input.
type ValidationError struct {
	message string
}

func (e *ValidationError) Error() string { return e.message }

// NewValidationError creates a new validation error.
func NewValidationError(message string) error {
	return &ValidationError{message: message}
}

// IsValidationError reports whether err is a validation error.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// UpstreamFormatError marks a generation response that could not be parsed.
type UpstreamFormatError struct {
	message string
	err     error
}

func (e *UpstreamFormatError) Error() string { return e.message }
func (e *UpstreamFormatError) Unwrap() error { return e.err }

// NewUpstreamFormatError creates a new upstream-format error.
func NewUpstreamFormatError(message string, err error) error {
	return &UpstreamFormatError{message: message, err: err}
}

// IsUpstreamFormatError reports whether err is an upstream-format error.
func IsUpstreamFormatError(err error) bool {
	var ue *UpstreamFormatError
	return errors.As(err, &ue)
}

// StoreReadError marks a failed read from the document store.
type StoreReadError struct {
	err error
}

func (e *StoreReadError) Error() string { return "store read failed: " + e.err.Error() }
func (e *StoreReadError) Unwrap() error { return e.err }

// NewStoreReadError wraps err as a store-read failure.
func NewStoreReadError(err error) error {
	return &StoreReadError{err: err}
}

// IsStoreReadError reports whether err is a store-read failure.
func IsStoreReadError(err error) bool {
	var se *StoreReadError
	return errors.As(err, &se)
}

// StoreWriteError marks a failed write to the document store.
type StoreWriteError struct {
	err error
}

func (e *StoreWriteError) Error() string { return "store write failed: " + e.err.Error() }
func (e *StoreWriteError) Unwrap() error { return e.err }

// NewStoreWriteError wraps err as a store-write failure.
func NewStoreWriteError(err error) error {
	return &StoreWriteError{err: err}
}

// IsStoreWriteError reports whether err is a store-write failure.
func IsStoreWriteError(err error) bool {
	var se *StoreWriteError
	return errors.As(err, &se)
}

// ErrNoRecipes is returned when the store holds no recipes to schedule.
var ErrNoRecipes = errors.New("no recipes available")

// ConfigurationError marks a missing or invalid required setting.
type ConfigurationError struct {
	message string
}

func (e *ConfigurationError) Error() string { return e.message }

// NewConfigurationError creates a new configuration error.
func NewConfigurationError(message string) error {
	return &ConfigurationError{message: message}
}

// HTTPStatus maps an error to the status the handler boundary responds with.
// ValidationError is the caller's fault; everything else is a 500.
func HTTPStatus(err error) int {
	if IsValidationError(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
