package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Sentinels for status classification at the command layer.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
)

// Error is a non-2xx response from the backend.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error (%d)", e.StatusCode)
}

// Is lets callers match on sentinels with errors.Is.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrForbidden:
		return e.StatusCode == http.StatusForbidden
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	default:
		return false
	}
}

// TransportError is a request that never produced a response. These are
// surfaced to users as retryable.
type TransportError struct {
	URL   string
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Cause)
}

func (e *TransportError) Unwrap() error { return e.Cause }

// RemoteError is a 2xx response whose body reports success=false. Kept
// distinct from TransportError so logs can tell the two apart even though
// users see both as plain failures.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return "backend reported failure"
	}
	return e.Message
}

type apiErrorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Status  int    `json:"status"`
}

func errorFromResponse(resp *http.Response) error {
	var body apiErrorBody
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	_ = json.Unmarshal(data, &body)

	msg := body.Message
	if msg == "" {
		msg = body.Error
	}
	return &Error{StatusCode: resp.StatusCode, Message: msg}
}
