package tripapi

import (
	"errors"
	"fmt"
)

const (
	msgFetchFailed = "error fetching data from API"
	msgSendFailed  = "error sending data to API"
)

// Error is returned for every failed call: transport failures (Status 0),
// non-2xx responses and undecodable bodies. Message is safe to show to a user.
type Error struct {
	Method   string
	Endpoint string
	Status   int
	Message  string
	err      error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s %s: %s (HTTP %d)", e.Method, e.Endpoint, e.Message, e.Status)
	}
	if e.err != nil {
		return fmt.Sprintf("%s %s: %s: %v", e.Method, e.Endpoint, e.Message, e.err)
	}
	return fmt.Sprintf("%s %s: %s", e.Method, e.Endpoint, e.Message)
}

func (e *Error) Unwrap() error {
	return e.err
}

// UserMessage returns the human-readable part of err when it came from this
// package, or fallback otherwise.
func UserMessage(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
