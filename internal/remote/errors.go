package remote

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
)

// ErrMissingCredentials is returned by an auth-required collection when no
// bearer token is available. No request is issued in that case.
var ErrMissingCredentials = errors.New("remote: no bearer token for authenticated collection")

// Error is a non-2xx response from the upstream API.
type Error struct {
	Collection string
	StatusCode int
	// Message is the server-supplied "message" field, or a generic
	// status line when the body carries none.
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: upstream returned status %d: %s", e.Collection, e.StatusCode, e.Message)
}

// newStatusError builds an Error, preferring a "message" field in body.
func newStatusError(collection string, statusCode int, body []byte) *Error {
	var payload struct {
		Message string `json:"message"`
	}
	msg := ""
	if err := json.Unmarshal(body, &payload); err == nil {
		msg = payload.Message
	}
	if msg == "" {
		msg = fmt.Sprintf("Request failed with status code %d", statusCode)
	}
	return &Error{Collection: collection, StatusCode: statusCode, Message: msg}
}

// Message returns the human-readable text shown for a failed load.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Error()
	}
	return err.Error()
}
