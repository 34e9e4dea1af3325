package generation

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// GenericErrorMessage is returned to clients when an upstream failure carries no usable message.
const GenericErrorMessage = "Failed to generate content"

// Kind classifies upstream failures.
type Kind string

const (
	KindAuth              Kind = "auth"
	KindQuota             Kind = "quota"
	KindNetwork           Kind = "network"
	KindMalformedResponse Kind = "malformed_response"
	KindUnknown           Kind = "unknown"
)

// UpstreamError is the only error type generators return for failed calls.
type UpstreamError struct {
	Kind Kind
	// Message is safe to show to clients.
	Message string
	Err     error
}

func NewUpstreamError(kind Kind, message string, err error) *UpstreamError {
	return &UpstreamError{Kind: kind, Message: message, Err: err}
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("upstream %s error: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("upstream %s error: %s", e.Kind, e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of err, KindUnknown for anything that is not an UpstreamError.
func KindOf(err error) Kind {
	var upstreamErr *UpstreamError
	if errors.As(err, &upstreamErr) {
		return upstreamErr.Kind
	}
	return KindUnknown
}

// ClientMessage returns the message a client may see for err.
func ClientMessage(err error) string {
	var upstreamErr *UpstreamError
	if errors.As(err, &upstreamErr) && upstreamErr.Message != "" {
		return upstreamErr.Message
	}
	return GenericErrorMessage
}

// KindForStatus maps an upstream HTTP status code to a Kind.
func KindForStatus(code int) Kind {
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return KindAuth
	case code == http.StatusTooManyRequests:
		return KindQuota
	case code == http.StatusRequestTimeout || code >= http.StatusInternalServerError:
		return KindNetwork
	default:
		return KindUnknown
	}
}

// FromTransportError wraps errors raised before any upstream response was received.
func FromTransportError(err error) *UpstreamError {
	if errors.Is(err, context.Canceled) {
		return NewUpstreamError(KindNetwork, "request cancelled", err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return NewUpstreamError(KindNetwork, "upstream request timed out", err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return NewUpstreamError(KindNetwork, "upstream service unreachable", err)
	}

	return NewUpstreamError(KindUnknown, "", err)
}
