package observability

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/milan604/esb-oms/pkg/logger"
	"github.com/milan604/esb-oms/pkg/version"
)

// InstrumentationName names the tracer used by the client.
const InstrumentationName = "github.com/milan604/esb-oms"

// TracingOptions configures SetupTracing.
type TracingOptions struct {
	ServiceName    string
	ServiceVersion string
	// Endpoint is the OTLP/HTTP collector, host:port or a URL.
	Endpoint string
	Insecure bool
	// SampleRatio below 1 samples by trace id. Zero means always sample.
	SampleRatio float64
	// SetGlobal installs the provider and W3C propagators globally.
	SetGlobal bool
}

// SetupTracing builds an OTLP/HTTP tracer provider. The returned shutdown
// flushes pending spans.
func SetupTracing(ctx context.Context, log logger.LogManager, opts TracingOptions) (*sdktrace.TracerProvider, func(context.Context) error, error) {
	log = logger.OrNop(log)

	if opts.ServiceName == "" {
		opts.ServiceName = "esb-oms-client"
	}
	if opts.ServiceVersion == "" {
		opts.ServiceVersion = version.Version
	}
	if opts.Endpoint == "" {
		opts.Endpoint = "localhost:4318"
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(opts.ServiceName),
			semconv.ServiceVersionKey.String(opts.ServiceVersion),
		),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create resource: %w", err)
	}

	exporterOpts := []otlptracehttp.Option{}
	if strings.Contains(opts.Endpoint, "://") {
		exporterOpts = append(exporterOpts, otlptracehttp.WithEndpointURL(opts.Endpoint))
	} else {
		exporterOpts = append(exporterOpts, otlptracehttp.WithEndpoint(opts.Endpoint))
	}
	if opts.Insecure {
		exporterOpts = append(exporterOpts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, exporterOpts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	sampler := sdktrace.AlwaysSample()
	if opts.SampleRatio > 0 && opts.SampleRatio < 1 {
		sampler = sdktrace.ParentBased(sdktrace.TraceIDRatioBased(opts.SampleRatio))
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler),
	)
	if opts.SetGlobal {
		otel.SetTracerProvider(tp)
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		))
	}

	log.InfoF("tracing initialized: service=%s, version=%s, endpoint=%s",
		opts.ServiceName, opts.ServiceVersion, opts.Endpoint)

	shutdown := func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.ErrorF("failed to shutdown tracer provider: %v", err)
			return err
		}
		return nil
	}
	return tp, shutdown, nil
}

// Tracer returns the client tracer from tp, or from the global provider when
// tp is nil.
func Tracer(tp trace.TracerProvider) trace.Tracer {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return tp.Tracer(InstrumentationName, trace.WithInstrumentationVersion(version.Version))
}
