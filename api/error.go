package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/jrsteele09/appeals-client/internal/errors"
)

const (
	// DefaultErrorMessage is used when an error response carries neither message nor error
	DefaultErrorMessage = "An error occurred while processing your request"
	// AnalyticsErrorMessage is the fallback used by the analytics endpoints
	AnalyticsErrorMessage = "An error occurred while fetching analytics data"
)

// Error is a response with a non 2xx status. Status and the raw body are kept for callers.
type Error struct {
	Status  int
	Message string
	Body    []byte
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// Is lets errors.Is match the package sentinels for the statuses they describe
func (e *Error) Is(target error) bool {
	switch target {
	case errors.ErrNotFound:
		return e.Status == http.StatusNotFound
	case errors.ErrInvalidRequest:
		return e.Status == http.StatusBadRequest
	case errors.ErrLoginRequired:
		return e.Status == http.StatusUnauthorized
	}
	return false
}

// Decode unmarshals the preserved error body into v
func (e *Error) Decode(v any) error {
	return json.Unmarshal(e.Body, v)
}

// StatusCode returns the HTTP status carried by err, or 0 when no response was received
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func newError(status int, body []byte, fallback string) *Error {
	var parsed errorBody
	_ = json.Unmarshal(body, &parsed)

	message := strings.TrimSpace(parsed.Message)
	if message == "" {
		message = strings.TrimSpace(parsed.Error)
	}
	if message == "" {
		message = fallback
	}
	return &Error{Status: status, Message: message, Body: body}
}
