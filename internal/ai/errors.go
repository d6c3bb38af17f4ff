package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type Kind string

const (
	KindNoResponse   Kind = "no_response"
	KindUnauthorized Kind = "unauthorized"
	KindRateLimited  Kind = "rate_limited"
	KindUnavailable  Kind = "unavailable"
	KindAPI          Kind = "api"
	KindTimeout      Kind = "timeout"
	KindUnexpected   Kind = "unexpected"
)

const (
	msgNoResponse   = "No response from DeepSeek API"
	msgUnauthorized = "Invalid API key. Please check your DEEPSEEK_API_KEY configuration."
	msgRateLimited  = "Rate limit exceeded. Please wait a moment before trying again."
	msgUnavailable  = "DeepSeek service is temporarily unavailable. Please try again later."
	msgTimeout      = "DeepSeek request timed out. Please try again."
	msgUnexpected   = "An unexpected error occurred. Please try again."
)

// Error is a failed upstream call. Message is safe to show to end users.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of an *Error in err's chain, or KindUnexpected.
func KindOf(err error) Kind {
	var upstreamErr *Error
	if errors.As(err, &upstreamErr) {
		return upstreamErr.Kind
	}
	return KindUnexpected
}

func statusError(status int, body []byte) *Error {
	switch status {
	case http.StatusUnauthorized:
		return &Error{Kind: KindUnauthorized, Status: status, Message: msgUnauthorized}
	case http.StatusTooManyRequests:
		return &Error{Kind: KindRateLimited, Status: status, Message: msgRateLimited}
	case http.StatusServiceUnavailable:
		return &Error{Kind: KindUnavailable, Status: status, Message: msgUnavailable}
	}
	return &Error{
		Kind:    KindAPI,
		Status:  status,
		Message: fmt.Sprintf("API Error: %d %s", status, upstreamMessage(status, body)),
	}
}

func upstreamMessage(status int, body []byte) string {
	var parsed struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		return parsed.Error.Message
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	return http.StatusText(status)
}

// classify turns a transport or decode failure into an *Error.
func classify(err error) *Error {
	var upstreamErr *Error
	if errors.As(err, &upstreamErr) {
		return upstreamErr
	}
	if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
		return &Error{Kind: KindTimeout, Message: msgTimeout, Err: err}
	}
	msg := err.Error()
	if strings.TrimSpace(msg) == "" {
		msg = msgUnexpected
	}
	return &Error{Kind: KindUnexpected, Message: msg, Err: err}
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
