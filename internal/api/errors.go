package api

import "errors"

var (
	// ErrUnauthorized indicates the session token was rejected (HTTP 401).
	// The client clears the local session before returning it.
	ErrUnauthorized = errors.New("session expired or invalid")

	// ErrForbidden indicates the authenticated user lacks permission (HTTP 403).
	ErrForbidden = errors.New("permission denied")

	// ErrNotFound indicates the requested record does not exist (HTTP 404).
	ErrNotFound = errors.New("record not found")

	// ErrUnavailable indicates the backend is unreachable or failing (5xx/transport).
	ErrUnavailable = errors.New("backend unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("request timed out")

	// ErrDecode indicates the response body did not match the expected schema.
	ErrDecode = errors.New("unexpected response shape")
)

// StatusError carries a human-readable message mapped from an HTTP status
// that has no dedicated sentinel (422 validation rejections and the like).
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "request failed"
}
