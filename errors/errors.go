// Package errors defines the structured application error type and the
// error taxonomy shared by every component: request validation, geocoding
// misses, weather provider failures, missing data, cache outages and
// authorization outcomes.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ValidationError      ErrorType = "VALIDATION_ERROR"
	LocationNotFoundErr  ErrorType = "LOCATION_NOT_FOUND"
	ProviderErr          ErrorType = "PROVIDER_ERROR"
	NoDataErr            ErrorType = "NO_DATA"
	CacheUnavailableErr  ErrorType = "CACHE_UNAVAILABLE"
	AuthDeniedErr        ErrorType = "AUTH_DENIED"
	AuthServiceErr       ErrorType = "AUTH_SERVICE_ERROR"
	RateLimitErr         ErrorType = "RATE_LIMIT_EXCEEDED"
	ServerError          ErrorType = "SERVER_ERROR"
)

// AppError represents a structured application error.
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	Raw        error     `json:"-"`

	// UpstreamStatus and UpstreamBody carry the weather provider's HTTP
	// status and response body when Type is ProviderErr.
	UpstreamStatus int    `json:"-"`
	UpstreamBody   string `json:"-"`
}

func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Raw
}

// GetHTTPStatus returns the HTTP status a transport layer should map this
// error to.
func (e *AppError) GetHTTPStatus() int {
	if e.HTTPStatus != 0 {
		return e.HTTPStatus
	}
	return getHTTPStatus(e.Type)
}

// New creates a new AppError.
func New(errType ErrorType, message string, detail string) *AppError {
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     detail,
		HTTPStatus: getHTTPStatus(errType),
	}
}

// Wrap wraps a raw error with AppError context.
func Wrap(err error, errType ErrorType, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     err.Error(),
		HTTPStatus: getHTTPStatus(errType),
		Raw:        err,
	}
}

// IsType reports whether err is an AppError of the given type.
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}

// Helper constructors for the error taxonomy.

func ValidationFailed(message string, details string) *AppError {
	return &AppError{
		Type:       ValidationError,
		Message:    message,
		Detail:     details,
		HTTPStatus: http.StatusBadRequest,
	}
}

// LocationNotFound is returned when the geocoder has no match for a city.
func LocationNotFound(city string) *AppError {
	return &AppError{
		Type:       LocationNotFoundErr,
		Message:    "location not found",
		Detail:     fmt.Sprintf("city: %s", city),
		HTTPStatus: http.StatusInternalServerError,
	}
}

// ProviderFailure is returned when the weather provider answers with a
// non-success HTTP status. This is a hard failure and is always propagated;
// it must never be collapsed into NoData.
func ProviderFailure(status int, body string) *AppError {
	return &AppError{
		Type:           ProviderErr,
		Message:        "weather provider request failed",
		Detail:         fmt.Sprintf("status %d: %s", status, body),
		HTTPStatus:     http.StatusInternalServerError,
		UpstreamStatus: status,
		UpstreamBody:   body,
	}
}

// NoData is returned when the provider responded successfully but the
// expected field or index is absent from the payload.
func NoData(detail string) *AppError {
	return &AppError{
		Type:       NoDataErr,
		Message:    "temperature unavailable",
		Detail:     detail,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// CacheUnavailable wraps a cache connectivity failure. It is logged at the
// store boundary and never surfaced to callers.
func CacheUnavailable(err error) *AppError {
	return Wrap(err, CacheUnavailableErr, "cache unavailable")
}

func AuthDenied() *AppError {
	return &AppError{
		Type:       AuthDeniedErr,
		Message:    "Forbidden",
		HTTPStatus: http.StatusForbidden,
	}
}

// AuthServiceUnavailable is returned when the authorization RPC itself
// fails. Callers treat it identically to a denial (fail-closed): the message
// matches AuthDenied so a client cannot distinguish the two cases.
func AuthServiceUnavailable(err error) *AppError {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	return &AppError{
		Type:       AuthServiceErr,
		Message:    "Forbidden",
		Detail:     detail,
		HTTPStatus: http.StatusForbidden,
		Raw:        err,
	}
}

// RateLimitExceeded is returned when a client exceeds its request budget.
func RateLimitExceeded(message string) *AppError {
	return &AppError{
		Type:       RateLimitErr,
		Message:    message,
		HTTPStatus: http.StatusTooManyRequests,
	}
}

func InternalServerError(message string) *AppError {
	return &AppError{
		Type:       ServerError,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

func getHTTPStatus(errType ErrorType) int {
	switch errType {
	case ValidationError:
		return http.StatusBadRequest
	case AuthDeniedErr, AuthServiceErr:
		return http.StatusForbidden
	case RateLimitErr:
		return http.StatusTooManyRequests
	case LocationNotFoundErr, ProviderErr, NoDataErr:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
