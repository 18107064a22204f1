package services

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusError is returned when the task API answers with a 4xx or 5xx status.
// The response is kept as-is so callers can decide how to present it.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	// Message is the "message" field of the API's error body, if it had one
	Message string
	Body    []byte
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: request failed with status %d: %s", e.Method, e.URL, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s: request failed with status %d: %s", e.Method, e.URL, e.StatusCode, string(e.Body))
}

// apiErrorBody mirrors the error payload written by the task API
type apiErrorBody struct {
	Timestamp string `json:"timestamp"`
	Message   string `json:"message"`
	Details   string `json:"details"`
	Status    int    `json:"status"`
}

// AsStatusError unwraps err to a *StatusError
func AsStatusError(err error) (*StatusError, bool) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr, true
	}
	return nil, false
}

// IsNotFound reports whether err is a 404 from the task API
func IsNotFound(err error) bool {
	statusErr, ok := AsStatusError(err)
	return ok && statusErr.StatusCode == http.StatusNotFound
}
