package adminsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-success response from the API.
type APIError struct {
	StatusCode int

	// Message is the envelope message, e.g. "Invalid email or password".
	Message string

	// Errors holds per-field validation messages for 400 responses.
	Errors map[string][]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("adminsdk: %d %s", e.StatusCode, e.Message)
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

func IsUnauthorized(err error) bool { return StatusOf(err) == http.StatusUnauthorized }
func IsForbidden(err error) bool    { return StatusOf(err) == http.StatusForbidden }
func IsNotFound(err error) bool     { return StatusOf(err) == http.StatusNotFound }
func IsConflict(err error) bool     { return StatusOf(err) == http.StatusConflict }

// parseErrorResponse turns an error response into an *APIError. Bodies that
// are not the usual envelope fall back to the status text.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var env Response[json.RawMessage]
	if err := json.Unmarshal(body, &env); err == nil && env.Message != "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    env.Message,
			Errors:     env.Errors,
		}
	}

	var health HealthResponse
	if err := json.Unmarshal(body, &health); err == nil && health.Status != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: health.Status}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    http.StatusText(resp.StatusCode),
	}
}
