package main

import (
	"context"
	"errors"

	// Packages
	version "github.com/mutablelogic/go-scopey/pkg/version"
	otel "go.opentelemetry.io/otel"
	attribute "go.opentelemetry.io/otel/attribute"
	otlpmetrichttp "go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	otlptracehttp "go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	resource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	noop "go.opentelemetry.io/otel/trace/noop"
)

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// telemetry sets the tracer and meter. Spans and metrics are exported over
// OTLP/HTTP when an endpoint is configured, otherwise the tracer is a no-op
// and the meter comes from the global provider. The returned function
// flushes and stops the exporters.
func (g *Globals) telemetry(ctx context.Context) (func(context.Context) error, error) {
	name := g.config.ServerName()
	endpoint := g.config.Server.OTel
	if endpoint == "" {
		g.tracer = noop.NewTracerProvider().Tracer(name)
		g.meter = otel.GetMeterProvider().Meter(name)
		return func(context.Context) error { return nil }, nil
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", name),
		attribute.String("service.version", version.Version()),
	)

	// Traces
	traceExporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(endpoint))
	if err != nil {
		return nil, err
	}
	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)

	// Metrics
	metricExporter, err := otlpmetrichttp.New(ctx, otlpmetrichttp.WithEndpointURL(endpoint))
	if err != nil {
		return nil, errors.Join(err, tracerProvider.Shutdown(ctx))
	}
	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)),
		sdkmetric.WithResource(res),
	)

	g.tracer = tracerProvider.Tracer(name)
	g.meter = meterProvider.Meter(name)
	g.logger.Debug("telemetry enabled", "endpoint", endpoint)

	return func(ctx context.Context) error {
		return errors.Join(tracerProvider.Shutdown(ctx), meterProvider.Shutdown(ctx))
	}, nil
}
