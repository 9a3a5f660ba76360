package apierr

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Kind classifies an Error. The set is closed.
type Kind int

const (
	// KindAPI is the catch-all for failures that fit no other kind.
	KindAPI Kind = iota
	KindAuthentication
	KindAuthorization
	KindValidation
	KindNotFound
	KindMethodNotAllowed
	KindRateLimit
	KindServer
	// KindNetwork covers connection refused, DNS and other transport failures.
	KindNetwork
	// KindTimeout is a transport failure caused by a deadline.
	KindTimeout
)

var kindNames = map[Kind]string{
	KindAPI:              "api",
	KindAuthentication:   "authentication",
	KindAuthorization:    "authorization",
	KindValidation:       "validation",
	KindNotFound:         "not_found",
	KindMethodNotAllowed: "method_not_allowed",
	KindRateLimit:        "rate_limit",
	KindServer:           "server",
	KindNetwork:          "network",
	KindTimeout:          "timeout",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is the single error type returned by the client. Which optional
// fields are populated depends on Kind:
//
//   - ValidationErrors is set only for KindValidation.
//   - RetryAfter is set only for KindRateLimit, when the server sent Retry-After.
//   - StatusCode and Body are set whenever an HTTP response was received.
type Error struct {
	Kind             Kind
	Message          string
	StatusCode       int
	Code             string
	Body             []byte
	ValidationErrors *ValidationErrors
	RetryAfter       time.Duration
	RequestID        string

	cause error
}

// Option configures an Error.
type Option func(*Error)

// WithStatus sets the HTTP status code.
func WithStatus(status int) Option { return func(e *Error) { e.StatusCode = status } }

// WithCode sets the server-provided error code.
func WithCode(code string) Option { return func(e *Error) { e.Code = code } }

// WithBody attaches the raw response body.
func WithBody(body []byte) Option { return func(e *Error) { e.Body = body } }

// WithValidationErrors attaches structured validation details.
func WithValidationErrors(ve *ValidationErrors) Option {
	return func(e *Error) { e.ValidationErrors = ve }
}

// WithRetryAfter sets the server's requested back-off.
func WithRetryAfter(d time.Duration) Option { return func(e *Error) { e.RetryAfter = d } }

// WithRequestID records the X-Request-ID sent with the failed call.
func WithRequestID(id string) Option { return func(e *Error) { e.RequestID = id } }

// WithCause sets the underlying cause.
func WithCause(err error) Option { return func(e *Error) { e.cause = err } }

// New constructs an Error of the given kind.
func New(kind Kind, message string, opts ...Option) *Error {
	e := &Error{Kind: kind, Message: message}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Error renders "message [code] (HTTP n)", omitting absent parts.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.Code != "" {
		fmt.Fprintf(&b, " [%s]", e.Code)
	}
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (HTTP %d)", e.StatusCode)
	}
	if e.cause != nil {
		fmt.Fprintf(&b, ": %v", e.cause)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.cause }

// Is matches kind sentinels: errors.Is(err, apierr.ErrNotFound) holds for any
// *Error of KindNotFound.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || !t.sentinel() {
		return false
	}
	return e.Kind == t.Kind
}

func (e *Error) sentinel() bool {
	return e.Message == "" && e.StatusCode == 0 && e.Code == "" && e.Body == nil && e.cause == nil
}

// Kind sentinels for use with errors.Is.
var (
	ErrAPI              = &Error{Kind: KindAPI}
	ErrAuthentication   = &Error{Kind: KindAuthentication}
	ErrAuthorization    = &Error{Kind: KindAuthorization}
	ErrValidation       = &Error{Kind: KindValidation}
	ErrNotFound         = &Error{Kind: KindNotFound}
	ErrMethodNotAllowed = &Error{Kind: KindMethodNotAllowed}
	ErrRateLimit        = &Error{Kind: KindRateLimit}
	ErrServer           = &Error{Kind: KindServer}
	ErrNetwork          = &Error{Kind: KindNetwork}
	ErrTimeout          = &Error{Kind: KindTimeout}
)

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsKind reports whether err carries an *Error of kind k.
func IsKind(err error, k Kind) bool {
	e, ok := As(err)
	return ok && e.Kind == k
}

// IsTransport reports whether err is a network or timeout failure.
func IsTransport(err error) bool {
	e, ok := As(err)
	return ok && (e.Kind == KindNetwork || e.Kind == KindTimeout)
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	if e, ok := As(err); ok {
		return e.StatusCode
	}
	return 0
}
