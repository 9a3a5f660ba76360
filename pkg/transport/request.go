package transport

import (
	"net/http"
	"net/url"
	"time"
)

// AuthMode selects how a request is authenticated.
type AuthMode int

const (
	// AuthNone attaches nothing. The caller may set Authorization itself.
	AuthNone AuthMode = iota
	// AuthBearer attaches the managed access token.
	AuthBearer
	// AuthBasic attaches the configured username and password.
	AuthBasic
)

func (a AuthMode) String() string {
	switch a {
	case AuthBearer:
		return "bearer"
	case AuthBasic:
		return "basic"
	default:
		return "none"
	}
}

// Unwrap selects the part of a successful body decoded into the output.
type Unwrap int

const (
	// UnwrapNone decodes the whole body.
	UnwrapNone Unwrap = iota
	// UnwrapResult decodes the "result" member.
	UnwrapResult
	// UnwrapData decodes the "data" member.
	UnwrapData
	// UnwrapResultOrBody decodes "result" when the body is an object
	// carrying it, the whole body otherwise.
	UnwrapResultOrBody
)

// Query is implemented by parameter structs sent in the query string.
type Query interface {
	Values() url.Values
}

// Request describes one call. It is built per call and never retained.
type Request struct {
	// Operation names the call in logs, spans and metrics, e.g. "menu.get".
	Operation string
	Method    string
	Host      Host
	Path      string
	Auth      AuthMode
	Query     Query
	Body      any
	Header    http.Header
	// Timeout overrides the client timeout when positive.
	Timeout time.Duration
	Unwrap  Unwrap
	// AllowEmpty treats an absent or empty payload as a valid empty result.
	AllowEmpty bool
}

func (r *Request) name() string {
	if r.Operation != "" {
		return r.Operation
	}
	return r.Method + " " + r.Path
}
