package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrSessionExpired indicates that the refresh endpoint rejected the ambient
// refresh credential: the session cannot be restored without logging in
// again.
var ErrSessionExpired = errors.New("session could not be restored")

// StatusError is a non-2xx response from the backend. Kind and Message carry
// the backend's {error, message} body when it could be parsed.
type StatusError struct {
	StatusCode int
	Kind       string
	Message    string
}

func (e *StatusError) Error() string {
	if e.Kind != "" {
		return fmt.Sprintf("server returned %d (%s): %s", e.StatusCode, e.Kind, e.Message)
	}
	if e.Message != "" {
		return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("server returned %d", e.StatusCode)
}

// newStatusError builds a StatusError from a response body, tolerating
// non-JSON bodies.
func newStatusError(statusCode int, body []byte) *StatusError {
	var parsed struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error != "" {
		return &StatusError{StatusCode: statusCode, Kind: parsed.Error, Message: parsed.Message}
	}
	return &StatusError{StatusCode: statusCode, Message: strings.TrimSpace(string(body))}
}

// IsUnauthorized reports whether err is a 401 from the server (invalid
// credentials on login, or a rejected access token).
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsConflict reports whether err is a 409 from the server (duplicate email
// on registration).
func IsConflict(err error) bool {
	return hasStatus(err, http.StatusConflict)
}

func hasStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}
