package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError represents a non-2xx response from the table service.
type APIError struct {
	StatusCode int
	Code       int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("table API error: %s (status: %d, code: %d)", e.Message, e.StatusCode, e.Code)
	}
	return fmt.Sprintf("table API error: status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is an APIError for a missing resource.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}
