// Package telemetry configures OpenTelemetry tracing for API calls.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/reel/internal/build"
	"go.trai.ch/reel/internal/core/domain"
	"go.trai.ch/zerr"
)

// InstrumentationName identifies spans produced by this module.
const InstrumentationName = "go.trai.ch/reel"

// Provider owns the tracer provider for the lifetime of the process.
type Provider struct {
	tp         *sdktrace.TracerProvider
	propagator propagation.TextMapPropagator
}

// NewProvider builds a tracer provider. Spans are exported over OTLP/HTTP
// only when cfg.OTLPEndpoint is set; extra options such as span processors
// for tests are appended.
func NewProvider(ctx context.Context, cfg *domain.Config, opts ...sdktrace.TracerProviderOption) (*Provider, error) {
	res := resource.NewSchemaless(
		attribute.String("service.name", "reel"),
		attribute.String("service.version", build.Version),
	)

	all := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	}

	if cfg.OTLPEndpoint != "" {
		exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(cfg.OTLPEndpoint))
		if err != nil {
			return nil, zerr.With(domain.Wrap(err, domain.ErrTelemetrySetupFailed), "endpoint", cfg.OTLPEndpoint)
		}
		all = append(all, sdktrace.WithBatcher(exporter))
	}

	return &Provider{
		tp:         sdktrace.NewTracerProvider(append(all, opts...)...),
		propagator: propagation.TraceContext{},
	}, nil
}

// Tracer returns the tracer used for client spans.
func (p *Provider) Tracer() trace.Tracer {
	return p.tp.Tracer(InstrumentationName)
}

// Propagator returns the propagator that injects trace headers into requests.
func (p *Provider) Propagator() propagation.TextMapPropagator {
	return p.propagator
}

// Install registers the provider and propagator as the process globals.
func (p *Provider) Install() {
	otel.SetTracerProvider(p.tp)
	otel.SetTextMapPropagator(p.propagator)
}

// Shutdown flushes pending spans.
func (p *Provider) Shutdown(ctx context.Context) error {
	return p.tp.Shutdown(ctx)
}
