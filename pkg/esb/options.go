package esb

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel/trace"

	"github.com/milan604/esb-oms/pkg/auth"
	"github.com/milan604/esb-oms/pkg/logger"
	"github.com/milan604/esb-oms/pkg/transport"
)

// Option configures New.
type Option func(*options)

type options struct {
	username    string
	password    string
	staticToken string

	environment transport.Environment
	hosts       *transport.Hosts
	autoRefresh bool
	timeout     time.Duration
	skew        time.Duration

	httpClient *http.Client
	logger     logger.LogManager
	registry   *prometheus.Registry
	tp         trace.TracerProvider
	breaker    *gobreaker.Settings
}

func defaultOptions() options {
	return options{
		environment: transport.Production,
		autoRefresh: true,
		timeout:     transport.DefaultTimeout,
		skew:        auth.DefaultExpirySkew,
	}
}

// WithCredentials authenticates with username and password. Basic-auth
// endpoints need them too.
func WithCredentials(username, password string) Option {
	return func(o *options) {
		o.username = username
		o.password = password
	}
}

// WithStaticToken uses a fixed access token and never calls the auth endpoints.
func WithStaticToken(token string) Option {
	return func(o *options) { o.staticToken = token }
}

// WithEnvironment selects the ESB hosts. The default is Production.
func WithEnvironment(env transport.Environment) Option {
	return func(o *options) { o.environment = env }
}

// WithHosts overrides the base URLs of the environment.
func WithHosts(h transport.Hosts) Option {
	return func(o *options) { o.hosts = &h }
}

// WithAutoRefresh toggles renewal on demand. It is on by default.
func WithAutoRefresh(enabled bool) Option {
	return func(o *options) { o.autoRefresh = enabled }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithExpirySkew sets how early tokens are renewed.
func WithExpirySkew(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.skew = d
		}
	}
}

func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

func WithLogger(l logger.LogManager) Option {
	return func(o *options) { o.logger = l }
}

// WithMetrics registers the client metrics on reg.
func WithMetrics(reg *prometheus.Registry) Option {
	return func(o *options) { o.registry = reg }
}

// WithTracerProvider sets the provider for request spans. Without it the
// global provider is used.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.tp = tp }
}

// WithCircuitBreaker guards all requests with a breaker built from st.
func WithCircuitBreaker(st gobreaker.Settings) Option {
	return func(o *options) { o.breaker = &st }
}
