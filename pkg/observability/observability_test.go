package observability

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestPrometheusCollector(t *testing.T) {
	pc, err := NewPrometheusCollector(nil)
	require.NoError(t, err)

	pc.InFlight(1)
	pc.ObserveRequest("api", "GET", "/extv1/member", "success", 20*time.Millisecond)
	pc.ObserveRequest("api", "GET", "/extv1/member", "not_found", 10*time.Millisecond)
	pc.ObserveRenewal("login", "success")
	pc.SetBreakerState("esb", 2)
	pc.InFlight(-1)

	assert.Equal(t, 1.0, testutil.ToFloat64(pc.reqCount.WithLabelValues("api", "GET", "/extv1/member", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(pc.renewals.WithLabelValues("login", "success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(pc.breakerState.WithLabelValues("esb")))
	assert.Equal(t, 0.0, testutil.ToFloat64(pc.inFlight))

	rec := httptest.NewRecorder()
	pc.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.True(t, strings.Contains(rec.Body.String(), "esb_client_requests_total"))
}

func TestPrometheusCollectorDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPrometheusCollector(reg)
	require.NoError(t, err)

	_, err = NewPrometheusCollector(reg)
	assert.Error(t, err)
}

func TestNopCollector(t *testing.T) {
	c := OrNop(nil)
	c.InFlight(1)
	c.ObserveRequest("core", "POST", "/auth/login", "success", time.Second)
	c.ObserveRenewal("refresh", "failure")
	c.SetBreakerState("x", 0)
}

func TestSpanHelpers(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))

	ctx, span := Tracer(tp).Start(context.Background(), "esb.test")
	AddSpanAttributes(ctx, AttrHost.String("api"))
	AddSpanEvent(ctx, "retry", AttrAttempt.Int(2))
	RecordSpanError(ctx, errors.New("boom"))
	span.End()

	ended := rec.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "boom", ended[0].Status().Description)
	assert.Len(t, ended[0].Events(), 2)
	assert.Contains(t, ended[0].Attributes(), AttrHost.String("api"))
}

func TestSetupTracingShutdown(t *testing.T) {
	tp, shutdown, err := SetupTracing(context.Background(), nil, TracingOptions{
		Endpoint: "127.0.0.1:1",
		Insecure: true,
	})
	require.NoError(t, err)
	require.NotNil(t, tp)
	assert.NoError(t, shutdown(context.Background()))
}
