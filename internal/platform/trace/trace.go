// Package trace installs the OpenTelemetry tracer provider and HTTP instrumentation.
// With no OTLP endpoint configured everything here is a no-op
package trace

import (
	"context"
	"net/http"

	"socialfeed/internal/platform/config"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

// Options configures Setup
type Options struct {
	// Endpoint is the OTLP/HTTP collector URL, e.g. http://otel-collector:4318
	Endpoint string
	// ServiceName is reported as service.name
	ServiceName string
	// SampleRatio is the parent-based ratio sampler fraction; <= 0 or >= 1 samples everything
	SampleRatio float64
}

// FromConfig reads OTEL_EXPORTER_OTLP_ENDPOINT, OTEL_SERVICE_NAME and OTEL_SAMPLE_PERCENT
func FromConfig(cfg config.Conf, defName string) Options {
	return Options{
		Endpoint:    cfg.MayString("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		ServiceName: cfg.MayString("OTEL_SERVICE_NAME", defName),
		SampleRatio: float64(cfg.MayInt("OTEL_SAMPLE_PERCENT", 100)) / 100,
	}
}

// Enabled reports whether spans will be exported
func (o Options) Enabled() bool { return o.Endpoint != "" }

// Shutdown flushes and stops the exporter
type Shutdown func(context.Context) error

// exporter is a seam for tests
var exporter = func(ctx context.Context, endpoint string) (sdktrace.SpanExporter, error) {
	return otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(endpoint))
}

// Setup installs a global tracer provider and W3C propagators.
// When o is disabled the global no-op provider stays in place and Shutdown does nothing
func Setup(ctx context.Context, o Options) (Shutdown, error) {
	if !o.Enabled() {
		return func(context.Context) error { return nil }, nil
	}
	exp, err := exporter(ctx, o.Endpoint)
	if err != nil {
		return nil, err
	}
	res, err := resource.Merge(resource.Default(), resource.NewSchemaless(semconv.ServiceName(o.ServiceName)))
	if err != nil {
		return nil, err
	}

	sampler := sdktrace.AlwaysSample()
	if o.SampleRatio > 0 && o.SampleRatio < 1 {
		sampler = sdktrace.ParentBased(sdktrace.TraceIDRatioBased(o.SampleRatio))
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return tp.Shutdown, nil
}

// Middleware wraps the whole handler tree in a server span named after the route operation
func Middleware(operation string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(next, operation,
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				return r.Method + " " + r.URL.Path
			}),
		)
	}
}
