package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector receives client-side measurements. The dispatcher and token
// manager call it on every request and renewal.
type Collector interface {
	InFlight(delta int)
	ObserveRequest(host, method, path, outcome string, d time.Duration)
	ObserveRenewal(kind, outcome string)
	SetBreakerState(name string, state int)
}

// Nop returns a Collector that records nothing.
func Nop() Collector { return nopCollector{} }

type nopCollector struct{}

func (nopCollector) InFlight(int)                                                 {}
func (nopCollector) ObserveRequest(string, string, string, string, time.Duration) {}
func (nopCollector) ObserveRenewal(string, string)                                {}
func (nopCollector) SetBreakerState(string, int)                                  {}

// PrometheusCollector exports client metrics to a prometheus registry.
type PrometheusCollector struct {
	reqCount     *prometheus.CounterVec
	reqDurHist   *prometheus.HistogramVec
	inFlight     prometheus.Gauge
	renewals     *prometheus.CounterVec
	breakerState *prometheus.GaugeVec
	registry     *prometheus.Registry
}

// NewPrometheusCollector registers the client metrics on reg. A nil reg gets
// a private registry, reachable through Handler.
func NewPrometheusCollector(reg *prometheus.Registry) (*PrometheusCollector, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	reqCount := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "esb",
			Name:      "client_requests_total",
			Help:      "Requests sent to the ESB services by outcome",
		},
		[]string{"host", "method", "path", "outcome"},
	)
	reqDurHist := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "esb",
			Name:      "client_request_duration_seconds",
			Help:      "Histogram of ESB request durations",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"host", "method", "path"},
	)
	inFlight := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "esb",
		Name:      "client_in_flight_requests",
		Help:      "Current number of in-flight ESB requests",
	})
	renewals := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "esb",
			Name:      "client_token_renewals_total",
			Help:      "Login and refresh calls by outcome",
		},
		[]string{"kind", "outcome"},
	)
	breakerState := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "esb",
			Name:      "client_breaker_state",
			Help:      "Circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
		[]string{"name"},
	)

	for _, c := range []prometheus.Collector{reqCount, reqDurHist, inFlight, renewals, breakerState} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return &PrometheusCollector{
		reqCount:     reqCount,
		reqDurHist:   reqDurHist,
		inFlight:     inFlight,
		renewals:     renewals,
		breakerState: breakerState,
		registry:     reg,
	}, nil
}

func (pc *PrometheusCollector) InFlight(delta int) {
	pc.inFlight.Add(float64(delta))
}

func (pc *PrometheusCollector) ObserveRequest(host, method, path, outcome string, d time.Duration) {
	pc.reqCount.WithLabelValues(host, method, path, outcome).Inc()
	pc.reqDurHist.WithLabelValues(host, method, path).Observe(d.Seconds())
}

func (pc *PrometheusCollector) ObserveRenewal(kind, outcome string) {
	pc.renewals.WithLabelValues(kind, outcome).Inc()
}

func (pc *PrometheusCollector) SetBreakerState(name string, state int) {
	pc.breakerState.WithLabelValues(name).Set(float64(state))
}

// Registry returns the registry the metrics live in.
func (pc *PrometheusCollector) Registry() *prometheus.Registry { return pc.registry }

// Handler serves the registry in the prometheus exposition format.
func (pc *PrometheusCollector) Handler() http.Handler {
	return promhttp.HandlerFor(pc.registry, promhttp.HandlerOpts{})
}

// OrNop returns c, or a no-op collector when c is nil.
func OrNop(c Collector) Collector {
	if c == nil {
		return Nop()
	}
	return c
}
