package core

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of an API error code.
type ErrorType int

// Error type constants categorize server error codes for callers that want a
// coarser view than the numeric code.
const (
	// ErrorTypeUnknown indicates an unclassified error, including code -1000.
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeNetwork indicates a server-side connectivity or disconnect problem.
	ErrorTypeNetwork
	// ErrorTypeTimeout indicates the request timed out server side.
	ErrorTypeTimeout
	// ErrorTypeRateLimit indicates rate limit was exceeded.
	ErrorTypeRateLimit
	// ErrorTypeAuthentication indicates invalid credentials, signature or timestamp.
	ErrorTypeAuthentication
	// ErrorTypeBadRequest indicates invalid request parameters.
	ErrorTypeBadRequest
	// ErrorTypeInvalidOrder indicates the order violates exchange rules.
	ErrorTypeInvalidOrder
	// ErrorTypeInsufficientFunds indicates account lacks required balance.
	ErrorTypeInsufficientFunds
)

// String returns the string representation of the error type.
func (t ErrorType) String() string {
	return [...]string{
		"UNKNOWN",
		"NETWORK",
		"TIMEOUT",
		"RATE_LIMIT",
		"AUTHENTICATION",
		"BAD_REQUEST",
		"INVALID_ORDER",
		"INSUFFICIENT_FUNDS",
	}[t]
}

// Sentinel errors for common error conditions.
var (
	// ErrMissingCredentials is returned when a signed operation is attempted
	// without a secret key. No network I/O happens before it is returned.
	ErrMissingCredentials = errors.New("missing credentials: secret key required")
	// ErrClientClosed is returned when attempting to use a closed client.
	ErrClientClosed = errors.New("client is closed")
	// ErrNotConnected is returned when a websocket operation needs a live connection.
	ErrNotConnected = errors.New("websocket not connected")
	// ErrAlreadyConnected is returned by connect when the session is not idle.
	ErrAlreadyConnected = errors.New("websocket already connected")
	// ErrDisconnected is wrapped by every error that ends an event loop because
	// the peer closed the connection or a read failed.
	ErrDisconnected = errors.New("websocket disconnected")
	// ErrUnknownSymbol is returned when exchange info does not list a symbol.
	ErrUnknownSymbol = errors.New("unknown symbol")
	// ErrCircuitOpen is returned without sending when the host keeps failing.
	ErrCircuitOpen = errors.New("circuit breaker open")
)

// NetworkError is a transport-level failure (DNS, TCP, TLS, timeout).
type NetworkError struct {
	Method string
	Path   string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %s %s: %v", e.Method, e.Path, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// APIError is a request the server received and rejected. Code is the
// authoritative discriminant; it is zero when the response carried no
// structured {code,msg} body.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       int    `json:"code"`
	Msg        string `json:"msg"`
}

func (e *APIError) Error() string {
	if e.Code == 0 {
		return fmt.Sprintf("api error (http %d): %s", e.StatusCode, e.Msg)
	}
	return fmt.Sprintf("api error %d (http %d): %s", e.Code, e.StatusCode, e.Msg)
}

// IsUnknown reports whether the server returned the catch-all -1000 code.
func (e *APIError) IsUnknown() bool {
	return e.Code == int(CodeUnknown)
}

// Type classifies the error code.
func (e *APIError) Type() ErrorType {
	return ClassifyCode(APICode(e.Code))
}

// DecodeError is a payload that did not match the expected shape. The
// message carries the payload size and where parsing stopped, never payload
// bytes, so raw bodies do not reach logs. Err is kept for errors.As but is not
// printed: parser errors quote the input around the failure.
type DecodeError struct {
	Target string
	Size   int
	// Offset is the byte position of the failure, or -1 when unknown.
	Offset int64
	// Expected is the Go type a value could not be stored into.
	Expected string
	// Reason is a payload-free description; empty means "invalid payload".
	Reason string
	Err    error
}

// NewDecodeError classifies a parse failure of a size-byte payload.
func NewDecodeError(target string, size int, err error) *DecodeError {
	failure := describeParseError(err)
	return &DecodeError{
		Target:   target,
		Size:     size,
		Offset:   failure.offset,
		Expected: failure.expected,
		Reason:   failure.reason,
		Err:      err,
	}
}

func (e *DecodeError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "invalid payload"
	}
	msg := fmt.Sprintf("decode %s (%d bytes): %s", e.Target, e.Size, reason)
	if e.Expected != "" {
		msg += " into " + e.Expected
	}
	if e.Offset >= 0 && e.Reason != "" {
		msg += fmt.Sprintf(" at offset %d", e.Offset)
	}
	return msg
}

func (e *DecodeError) Unwrap() error { return e.Err }

// HandshakeError is a failed websocket dial or upgrade.
type HandshakeError struct {
	URL string
	Err error
}

func (e *HandshakeError) Error() string {
	return fmt.Sprintf("websocket handshake %s: %v", e.URL, e.Err)
}

func (e *HandshakeError) Unwrap() error { return e.Err }

// UnsupportedRouteError is a route that the market type does not define.
// It signals a programming error rather than a runtime condition.
type UnsupportedRouteError struct {
	MarketType MarketType
	Route      string
}

func (e *UnsupportedRouteError) Error() string {
	return fmt.Sprintf("route %s is not supported for %s market", e.Route, e.MarketType)
}

// IsAPIError returns the API error when err wraps one.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsNetworkError returns true if the error is a transport failure.
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// IsDecodeError returns true if a payload failed to decode.
func IsDecodeError(err error) bool {
	var decErr *DecodeError
	return errors.As(err, &decErr)
}

// IsHandshakeError returns true if a websocket connect failed.
func IsHandshakeError(err error) bool {
	var hsErr *HandshakeError
	return errors.As(err, &hsErr)
}

// IsRateLimitError returns true if the server rejected the request for rate limiting.
func IsRateLimitError(err error) bool {
	if apiErr, ok := IsAPIError(err); ok {
		return apiErr.Type() == ErrorTypeRateLimit || apiErr.StatusCode == 429 || apiErr.StatusCode == 418
	}
	return false
}

// IsAuthenticationError returns true for missing credentials or rejected signatures.
func IsAuthenticationError(err error) bool {
	if errors.Is(err, ErrMissingCredentials) {
		return true
	}
	if apiErr, ok := IsAPIError(err); ok {
		return apiErr.Type() == ErrorTypeAuthentication
	}
	return false
}
