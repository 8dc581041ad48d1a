package client

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNetworkFailure means the request never produced a response.
	ErrNetworkFailure = errors.New("network failure")
	// ErrBadResponse means the server answered with a non-2xx status or an
	// unreadable body.
	ErrBadResponse = errors.New("bad response")
	// ErrValidationFailure means a draft was rejected before any request.
	ErrValidationFailure = errors.New("validation failure")
)

// ResponseError is a non-2xx answer. Code and Message come from the JSON
// error body when there is one.
type ResponseError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *ResponseError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("status %d", e.StatusCode)
}

func (e *ResponseError) Unwrap() error {
	return ErrBadResponse
}

// Message returns the text to show a user for err: the server's message when
// it sent one, otherwise fallback.
func Message(err error, fallback string) string {
	var respErr *ResponseError
	if errors.As(err, &respErr) && strings.TrimSpace(respErr.Message) != "" {
		return respErr.Message
	}
	if fallback != "" {
		return fallback
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
