package authsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrNoRefreshToken is returned when a session has nothing left to refresh with.
var ErrNoRefreshToken = errors.New("authsdk: no refresh token available")

// APIError is a non-2xx response from the service.
type APIError struct {
	// StatusCode is the HTTP status code of the response
	StatusCode int

	// Message is the server supplied message, e.g. "Invalid token."
	Message string

	// Code is set for validation failures ("validation_error")
	Code string

	// Details holds per-field validation messages
	Details map[string]string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("authsdk: %d %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("authsdk: %d: %s", e.StatusCode, e.Message)
}

// IsUnauthorized reports whether err is a 401 from the service.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsForbidden reports whether err is a 403 from the service.
func IsForbidden(err error) bool {
	return hasStatus(err, http.StatusForbidden)
}

// IsNotFound reports whether err is a 404 from the service.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

func hasStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

// parseErrorResponse builds an APIError from a non-2xx response body.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var payload ValidationErrorResponse
	if err := json.Unmarshal(body, &payload); err != nil || payload.Message == "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    payload.Message,
		Code:       payload.Code,
		Details:    payload.Details,
	}
}
