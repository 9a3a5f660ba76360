package apierr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ESB body-level codes with a dedicated mapping.
const (
	CodeInvalidCredentials = "EC03100001"
	CodeSessionExpired     = "EC03100032"
	CodeCoreValidation     = "EC03100003"
	CodeUnauthorized       = "EC011401"
	CodeRequestInvalid     = "EC0110"
	CodeDataInvalid        = "EC0118"
	CodeBadRequest         = "EC011400"
)

const unknownMessage = "Unknown error"

// Envelope is the common ESB response wrapper. Fields are kept raw because
// the servers disagree on their types.
type Envelope struct {
	Status  json.RawMessage `json:"status"`
	Code    json.RawMessage `json:"code"`
	Message json.RawMessage `json:"message"`
	Error   json.RawMessage `json:"error"`
	Result  json.RawMessage `json:"result"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

// StatusText returns the body status ("ok", "fail", ...) lower-cased.
func (env *Envelope) StatusText() string {
	return strings.ToLower(scalar(env.Status))
}

// Failed reports a body-level failure marker.
func (env *Envelope) Failed() bool {
	switch env.StatusText() {
	case "fail", "failed", "01":
		return true
	}
	return false
}

// ServerCode returns the code as a string whether it was sent as a string or a number.
func (env *Envelope) ServerCode() string { return scalar(env.Code) }

// Text returns message, falling back to error, then to a generic message.
func (env *Envelope) Text() string {
	if msg := scalar(env.Message); msg != "" {
		return msg
	}
	if msg := scalar(env.Error); msg != "" {
		return msg
	}
	return unknownMessage
}

func (env *Envelope) validationDetails() *ValidationErrors {
	if ve := ParseValidationErrors(env.Data); ve != nil {
		return ve
	}
	return ParseValidationErrors(env.Errors)
}

// FromResponse classifies a received response. It returns nil when the
// response is a success whose payload should be decoded by the caller.
// opts are applied to any error produced.
func FromResponse(status int, header http.Header, body []byte, opts ...Option) *Error {
	trimmed := bytes.TrimSpace(body)
	base := with([]Option{WithStatus(status), WithBody(body)}, opts...)

	if len(trimmed) == 0 || !json.Valid(trimmed) {
		if status < http.StatusBadRequest {
			return nil
		}
		msg := http.StatusText(status)
		if msg == "" {
			msg = "invalid JSON response"
		}
		return byStatus(status, header, &Envelope{}, msg, base)
	}

	if trimmed[0] != '{' {
		if status < http.StatusBadRequest {
			return nil
		}
		return byStatus(status, header, &Envelope{}, unknownMessage, base)
	}

	var env Envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		if status < http.StatusBadRequest {
			return nil
		}
		return byStatus(status, header, &Envelope{}, unknownMessage, base)
	}
	if code := env.ServerCode(); code != "" {
		base = append(base, WithCode(code))
	}

	if e := byStatus(status, header, &env, env.Text(), base); e != nil && e.Kind != KindAPI {
		return e
	}
	if env.Failed() {
		return byServerCode(&env, base)
	}
	if status >= http.StatusBadRequest {
		return New(KindAPI, env.Text(), base...)
	}
	return nil
}

func byStatus(status int, header http.Header, env *Envelope, msg string, base []Option) *Error {
	switch {
	case status == http.StatusUnauthorized:
		return New(KindAuthentication, msg, base...)
	case status == http.StatusForbidden:
		return New(KindAuthorization, msg, base...)
	case status == http.StatusNotFound:
		return New(KindNotFound, msg, base...)
	case status == http.StatusMethodNotAllowed:
		return New(KindMethodNotAllowed, msg, base...)
	case status == http.StatusTooManyRequests:
		opts := with(base, WithRetryAfter(ParseRetryAfter(header.Get("Retry-After"), time.Now())))
		return New(KindRateLimit, msg, opts...)
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		opts := with(base, WithValidationErrors(env.validationDetails()))
		return New(KindValidation, msg, opts...)
	case status >= http.StatusInternalServerError:
		return New(KindServer, msg, base...)
	case status >= http.StatusBadRequest:
		return New(KindAPI, msg, base...)
	}
	return nil
}

func byServerCode(env *Envelope, base []Option) *Error {
	code := env.ServerCode()
	msg := env.Text()
	lower := strings.ToLower(msg)

	switch code {
	case CodeInvalidCredentials, CodeSessionExpired, CodeUnauthorized:
		return New(KindAuthentication, msg, base...)
	case CodeCoreValidation:
		return New(KindValidation, msg, with(base, WithValidationErrors(ParseValidationErrors(env.Errors)))...)
	case CodeRequestInvalid:
		if ve := messageObject(msg); ve != nil {
			return New(KindValidation, msg, with(base, WithValidationErrors(ve))...)
		}
		if strings.Contains(lower, "not found") {
			return New(KindNotFound, msg, base...)
		}
		return New(KindAPI, msg, base...)
	case CodeDataInvalid:
		return New(KindValidation, msg, with(base, WithValidationErrors(env.validationDetails()))...)
	case CodeBadRequest:
		return New(KindValidation, msg, with(base, WithValidationErrors(ParseValidationErrors(env.Data)))...)
	}
	if strings.Contains(lower, "undefined index") {
		return New(KindValidation, msg, base...)
	}
	return New(KindAPI, msg, base...)
}

func with(base []Option, extra ...Option) []Option {
	out := make([]Option, 0, len(base)+len(extra))
	return append(append(out, base...), extra...)
}

// messageObject handles servers that put a JSON object of field errors in
// the message string.
func messageObject(msg string) *ValidationErrors {
	trimmed := strings.TrimSpace(msg)
	if !strings.HasPrefix(trimmed, "{") {
		return nil
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &probe); err != nil {
		return nil
	}
	return ParseValidationErrors(json.RawMessage(trimmed))
}

// ParseRetryAfter accepts delay-seconds or an HTTP date. Unparseable or
// past values yield zero.
func ParseRetryAfter(v string, now time.Time) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil {
		if d := at.Sub(now); d > 0 {
			return d
		}
	}
	return 0
}

// FromTransport classifies a failure that happened before any response was received.
func FromTransport(err error, opts ...Option) *Error {
	if err == nil {
		return nil
	}
	opts = append(opts, WithCause(err))
	if errors.Is(err, context.DeadlineExceeded) {
		return New(KindTimeout, "request timed out", opts...)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return New(KindTimeout, "request timed out", opts...)
	}
	if errors.Is(err, context.Canceled) {
		return New(KindNetwork, "request cancelled", opts...)
	}
	return New(KindNetwork, "connection failed", opts...)
}

// ShapeMismatch reports a successful response whose payload did not match
// the expected model.
func ShapeMismatch(status int, body []byte, cause error, opts ...Option) *Error {
	msg := "unexpected response shape"
	if cause != nil {
		msg = fmt.Sprintf("unexpected response shape: %v", cause)
	}
	opts = append([]Option{WithStatus(status), WithBody(body)}, opts...)
	if ae, ok := As(cause); ok && ae.ValidationErrors != nil {
		opts = append(opts, WithValidationErrors(ae.ValidationErrors))
	}
	return New(KindValidation, msg, opts...)
}

// scalar renders a raw JSON string or number as text.
func scalar(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ""
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	}
	return string(trimmed)
}
