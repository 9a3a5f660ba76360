package transport

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel/trace"

	"github.com/milan604/esb-oms/pkg/apierr"
	"github.com/milan604/esb-oms/pkg/logger"
	"github.com/milan604/esb-oms/pkg/observability"
	"github.com/milan604/esb-oms/pkg/validator"
	"github.com/milan604/esb-oms/pkg/version"
)

const (
	// DefaultTimeout bounds one HTTP exchange unless overridden.
	DefaultTimeout = 30 * time.Second
	// MaxResponseBytes caps how much of a response body is read.
	MaxResponseBytes = 10 << 20

	HeaderRequestID = "X-Request-ID"
)

var (
	// ErrClosed is the cause of every error returned after Close.
	ErrClosed = errors.New("client is closed")
	// ErrBasicUnavailable is returned for Basic-auth endpoints when the
	// client holds no username and password.
	ErrBasicUnavailable = errors.New("basic auth requires username and password credentials")
	// ErrNoTokenSource is returned for Bearer endpoints when no token source is configured.
	ErrNoTokenSource = errors.New("no token source configured")

	errServerStatus = errors.New("server error status")
)

// TokenSource supplies access tokens for Bearer requests.
type TokenSource interface {
	// Token returns a currently valid access token.
	Token(ctx context.Context) (string, error)
	// Reauthenticate renews after the server rejected the given token.
	Reauthenticate(ctx context.Context, rejected string) (string, error)
	// AutoRefresh reports whether a rejected token may be renewed and retried.
	AutoRefresh() bool
}

// BasicCredentials supplies the username and password for Basic requests.
type BasicCredentials interface {
	BasicAuth() (username, password string, ok bool)
}

// Sender is implemented by Dispatcher.
type Sender interface {
	Send(ctx context.Context, req *Request, out any) error
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, req *Request, out any) error

func (f SenderFunc) Send(ctx context.Context, req *Request, out any) error { return f(ctx, req, out) }

// Dispatcher sends requests to the ESB hosts and turns responses into
// decoded models or *apierr.Error values.
type Dispatcher struct {
	hosts      Hosts
	httpClient *http.Client
	timeout    time.Duration
	tokens     TokenSource
	basic      BasicCredentials
	validator  validator.Engine
	log        logger.LogManager
	metrics    observability.Collector
	tracer     trace.Tracer
	tp         trace.TracerProvider
	breaker    *gobreaker.CircuitBreaker[*response]
	closed     atomic.Bool
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithHTTPClient sets the underlying http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(d *Dispatcher) {
		if c != nil {
			d.httpClient = c
		}
	}
}

// WithTimeout sets the default per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) {
		if timeout > 0 {
			d.timeout = timeout
		}
	}
}

func WithTokenSource(ts TokenSource) Option {
	return func(d *Dispatcher) { d.tokens = ts }
}

func WithBasicCredentials(bc BasicCredentials) Option {
	return func(d *Dispatcher) { d.basic = bc }
}

func WithValidator(v validator.Engine) Option {
	return func(d *Dispatcher) {
		if v != nil {
			d.validator = v
		}
	}
}

// WithLogger sets a logger for the dispatcher.
func WithLogger(l logger.LogManager) Option {
	return func(d *Dispatcher) { d.log = logger.OrNop(l) }
}

func WithCollector(c observability.Collector) Option {
	return func(d *Dispatcher) { d.metrics = observability.OrNop(c) }
}

// WithTracerProvider sets the provider spans are created from. Without it
// the global provider is used.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(d *Dispatcher) { d.tp = tp }
}

// WithCircuitBreaker guards all traffic with a breaker built from st. Only
// transport failures and 5xx responses count as failures.
func WithCircuitBreaker(st gobreaker.Settings) Option {
	return func(d *Dispatcher) {
		if st.Name == "" {
			st.Name = "esb"
		}
		if st.IsSuccessful == nil {
			st.IsSuccessful = func(err error) bool {
				return err == nil || errors.Is(err, context.Canceled)
			}
		}
		userHook := st.OnStateChange
		st.OnStateChange = func(name string, from, to gobreaker.State) {
			d.log.WarnF("circuit breaker %s: %s -> %s", name, from, to)
			d.metrics.SetBreakerState(name, int(to))
			if userHook != nil {
				userHook(name, from, to)
			}
		}
		d.breaker = gobreaker.NewCircuitBreaker[*response](st)
	}
}

// NewDispatcher creates a Dispatcher for hosts.
func NewDispatcher(hosts Hosts, opts ...Option) (*Dispatcher, error) {
	if err := hosts.Validate(); err != nil {
		return nil, err
	}
	d := &Dispatcher{
		hosts:      hosts,
		httpClient: &http.Client{Transport: http.DefaultTransport.(*http.Transport).Clone()},
		timeout:    DefaultTimeout,
		validator:  validator.Default(),
		log:        logger.NewNop(),
		metrics:    observability.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.tracer = observability.Tracer(d.tp)
	return d, nil
}

// Hosts returns the base URLs in use.
func (d *Dispatcher) Hosts() Hosts { return d.hosts }

// Close releases idle connections. Later calls fail with ErrClosed.
// It is safe to call more than once.
func (d *Dispatcher) Close() error {
	if d.closed.CompareAndSwap(false, true) {
		d.httpClient.CloseIdleConnections()
		d.log.DebugF("dispatcher closed")
	}
	return nil
}

// Closed reports whether Close has been called.
func (d *Dispatcher) Closed() bool { return d.closed.Load() }

type response struct {
	status int
	header http.Header
	body   []byte
}

// Send performs req and decodes the selected payload into out, which may be
// nil when the caller does not need the payload. On a first 401 for a
// Bearer request with auto refresh enabled, the token is renewed once and
// the request resent once.
func (d *Dispatcher) Send(ctx context.Context, req *Request, out any) error {
	if d.closed.Load() {
		return apierr.New(apierr.KindNetwork, "request rejected", apierr.WithCause(ErrClosed))
	}
	if err := d.validate(req); err != nil {
		return err
	}

	body, err := encodeBody(req.Body)
	if err != nil {
		return err
	}
	target := d.url(req)

	requestID := uuid.NewString()
	ctx = logger.WithOperation(logger.WithRequestID(ctx, requestID), req.name())

	ctx, span := d.tracer.Start(ctx, "esb "+req.name(),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			observability.AttrHTTPMethod.String(req.Method),
			observability.AttrURLPath.String(req.Path),
			observability.AttrHost.String(req.Host.String()),
			observability.AttrAuth.String(req.Auth.String()),
			observability.AttrRequestID.String(requestID),
		),
	)
	defer span.End()

	d.metrics.InFlight(1)
	defer d.metrics.InFlight(-1)
	start := time.Now()

	err = d.send(ctx, req, target, body, requestID, out)

	outcome := "success"
	if ae, ok := apierr.As(err); ok {
		outcome = ae.Kind.String()
		observability.AddSpanAttributes(ctx, observability.AttrErrorKind.String(outcome))
		if ae.Code != "" {
			observability.AddSpanAttributes(ctx, observability.AttrServerCode.String(ae.Code))
		}
		observability.RecordSpanError(ctx, err)
	}
	d.metrics.ObserveRequest(req.Host.String(), req.Method, req.Path, outcome, time.Since(start))
	return err
}

func (d *Dispatcher) send(ctx context.Context, req *Request, target string, body []byte, requestID string, out any) error {
	for attempt := 1; ; attempt++ {
		header, token, err := d.headers(ctx, req, body != nil, requestID)
		if err != nil {
			return err
		}
		observability.AddSpanAttributes(ctx, observability.AttrAttempt.Int(attempt))

		resp, err := d.exchange(ctx, req, target, body, header)
		if err != nil {
			d.log.WarnFCtx(ctx, "%s %s failed: %v", req.Method, req.Path, err)
			return err
		}
		observability.AddSpanAttributes(ctx, observability.AttrHTTPStatusCode.Int(resp.status))
		d.log.DebugFCtx(ctx, "%s %s -> %d (%d bytes)", req.Method, req.Path, resp.status, len(resp.body))

		if apiErr := apierr.FromResponse(resp.status, resp.header, resp.body, apierr.WithRequestID(requestID)); apiErr != nil {
			if d.shouldReauthenticate(req, resp, attempt) {
				d.log.InfoFCtx(ctx, "access token rejected, renewing and retrying once")
				observability.AddSpanEvent(ctx, "reauthenticate")
				if _, rerr := d.tokens.Reauthenticate(ctx, token); rerr != nil {
					return rerr
				}
				continue
			}
			return apiErr
		}
		return d.decode(req, resp, requestID, out)
	}
}

func (d *Dispatcher) shouldReauthenticate(req *Request, resp *response, attempt int) bool {
	return resp.status == http.StatusUnauthorized &&
		req.Auth == AuthBearer &&
		attempt == 1 &&
		d.tokens != nil &&
		d.tokens.AutoRefresh()
}

func (d *Dispatcher) validate(req *Request) *apierr.Error {
	if req.Query != nil {
		if err := d.validator.Validate(req.Query); err != nil {
			return err
		}
	}
	if req.Body != nil {
		if err := d.validator.Validate(req.Body); err != nil {
			return err
		}
	}
	return nil
}

func encodeBody(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	if raw, ok := v.(json.RawMessage); ok {
		return raw, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, apierr.New(apierr.KindValidation, "cannot encode request body", apierr.WithCause(err))
	}
	return b, nil
}

func (d *Dispatcher) url(req *Request) string {
	path := req.Path
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	target := d.hosts.Base(req.Host) + path
	if req.Query != nil {
		if q := req.Query.Values().Encode(); q != "" {
			target += "?" + q
		}
	}
	return target
}

// headers builds the header set for one attempt and returns the bearer token
// it carries, if any.
func (d *Dispatcher) headers(ctx context.Context, req *Request, hasBody bool, requestID string) (http.Header, string, error) {
	h := make(http.Header, len(req.Header)+5)
	for k, v := range req.Header {
		h[k] = append([]string(nil), v...)
	}
	h.Set("Accept", "application/json")
	h.Set("User-Agent", version.UserAgent())
	h.Set(HeaderRequestID, requestID)
	if hasBody {
		h.Set("Content-Type", "application/json")
	}

	switch req.Auth {
	case AuthBearer:
		if d.tokens == nil {
			return nil, "", apierr.New(apierr.KindAuthentication, "bearer authentication unavailable",
				apierr.WithCause(ErrNoTokenSource), apierr.WithRequestID(requestID))
		}
		token, err := d.tokens.Token(ctx)
		if err != nil {
			return nil, "", err
		}
		h.Set("Authorization", "Bearer "+token)
		return h, token, nil
	case AuthBasic:
		var (
			user, pass string
			ok         bool
		)
		if d.basic != nil {
			user, pass, ok = d.basic.BasicAuth()
		}
		if !ok {
			return nil, "", apierr.New(apierr.KindAuthentication, "basic authentication unavailable",
				apierr.WithCause(ErrBasicUnavailable), apierr.WithRequestID(requestID))
		}
		h.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(user+":"+pass)))
	}
	return h, "", nil
}

// exchange performs one HTTP round trip, through the breaker when configured.
func (d *Dispatcher) exchange(ctx context.Context, req *Request, target string, body []byte, header http.Header) (*response, error) {
	timeout := d.timeout
	if req.Timeout > 0 {
		timeout = req.Timeout
	}
	opts := []apierr.Option{apierr.WithRequestID(header.Get(HeaderRequestID))}

	roundTrip := func() (*response, error) {
		attemptCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		httpReq, err := http.NewRequestWithContext(attemptCtx, req.Method, target, reader)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		httpReq.Header = header

		httpResp, err := d.httpClient.Do(httpReq)
		if err != nil {
			return nil, err
		}
		defer httpResp.Body.Close()

		data, err := io.ReadAll(io.LimitReader(httpResp.Body, MaxResponseBytes+1))
		if err != nil {
			return nil, fmt.Errorf("read response: %w", err)
		}
		resp := &response{status: httpResp.StatusCode, header: httpResp.Header, body: data}
		if httpResp.StatusCode >= http.StatusInternalServerError {
			return resp, errServerStatus
		}
		return resp, nil
	}

	var (
		resp *response
		err  error
	)
	if d.breaker != nil {
		resp, err = d.breaker.Execute(roundTrip)
	} else {
		resp, err = roundTrip()
	}

	switch {
	case err == nil || errors.Is(err, errServerStatus):
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return nil, apierr.New(apierr.KindNetwork, "circuit breaker rejected request", append(opts, apierr.WithCause(err))...)
	default:
		return nil, apierr.FromTransport(err, opts...)
	}

	if len(resp.body) > MaxResponseBytes {
		return nil, apierr.New(apierr.KindAPI, "response body exceeds size limit",
			append(opts, apierr.WithStatus(resp.status))...)
	}
	return resp, nil
}

func (d *Dispatcher) decode(req *Request, resp *response, requestID string, out any) error {
	payload, err := unwrap(resp.body, req.Unwrap)
	if err != nil {
		return apierr.ShapeMismatch(resp.status, resp.body, err, apierr.WithRequestID(requestID))
	}
	if out == nil {
		return nil
	}
	if req.AllowEmpty && isEmpty(payload) {
		return nil
	}
	if isAbsent(payload) {
		return apierr.ShapeMismatch(resp.status, resp.body, errors.New("missing payload"), apierr.WithRequestID(requestID))
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return apierr.ShapeMismatch(resp.status, resp.body, d.validator.ParseError(err), apierr.WithRequestID(requestID))
	}
	if verr := d.validator.Validate(out); verr != nil {
		return apierr.ShapeMismatch(resp.status, resp.body, verr, apierr.WithRequestID(requestID))
	}
	return nil
}

func unwrap(body []byte, mode Unwrap) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if mode == UnwrapNone {
		return trimmed, nil
	}
	isObject := len(trimmed) > 0 && trimmed[0] == '{'
	if !isObject {
		if mode == UnwrapResultOrBody {
			return trimmed, nil
		}
		if len(trimmed) == 0 {
			return nil, nil
		}
		return nil, errors.New("expected a JSON object envelope")
	}

	var env apierr.Envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, err
	}
	switch mode {
	case UnwrapData:
		return env.Data, nil
	case UnwrapResultOrBody:
		if len(env.Result) == 0 {
			return trimmed, nil
		}
		return env.Result, nil
	default:
		return env.Result, nil
	}
}

func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// isEmpty reports an absent, null or empty JSON payload.
func isEmpty(raw json.RawMessage) bool {
	switch string(bytes.TrimSpace(raw)) {
	case "", "null", "{}", "[]", `""`:
		return true
	}
	return false
}
