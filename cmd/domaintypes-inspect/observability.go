package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/AntonStoeckl/domain-types-go/domaintypes"
	"github.com/AntonStoeckl/domain-types-go/domaintypes/oteladapters"
)

const (
	serviceName         = "domaintypes-inspect"
	metricExportPeriod  = 5 * time.Second
	telemetryFlushLimit = 5 * time.Second
)

// newLogHandler builds the slog.Handler selected by the configuration.
func newLogHandler(cfg Config, w io.Writer) slog.Handler {
	level, _ := cfg.level()
	options := &slog.HandlerOptions{Level: level}

	if cfg.LogFormat == logFormatJSON {
		return slog.NewJSONHandler(w, options)
	}

	return slog.NewTextHandler(w, options)
}

// telemetry holds the OpenTelemetry providers that export to an OTLP endpoint.
type telemetry struct {
	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
}

// newTelemetry sets up OTLP gRPC exporters for traces and metrics and installs the providers globally.
func newTelemetry(ctx context.Context, endpoint string) (*telemetry, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
		),
	)
	if err != nil {
		return nil, err
	}

	traceExporter, err := otlptracegrpc.New(
		ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	metricExporter, err := otlpmetricgrpc.New(
		ctx,
		otlpmetricgrpc.WithEndpoint(endpoint),
		otlpmetricgrpc.WithInsecure(),
	)
	if err != nil {
		return nil, errors.Join(err, traceExporter.Shutdown(ctx))
	}

	t := &telemetry{
		tracerProvider: sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(traceExporter),
			sdktrace.WithResource(res),
		),
		meterProvider: sdkmetric.NewMeterProvider(
			sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter,
				sdkmetric.WithInterval(metricExportPeriod))),
			sdkmetric.WithResource(res),
		),
	}

	otel.SetTracerProvider(t.tracerProvider)
	otel.SetMeterProvider(t.meterProvider)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return t, nil
}

// registryOptions wires the providers into a Registry.
func (t *telemetry) registryOptions() []domaintypes.Option {
	return []domaintypes.Option{
		domaintypes.WithMetrics(oteladapters.NewMetricsCollector(t.meterProvider.Meter(serviceName))),
		domaintypes.WithTracing(oteladapters.NewTracingCollector(t.tracerProvider.Tracer(serviceName))),
	}
}

// shutdown flushes and stops both providers.
func (t *telemetry) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), telemetryFlushLimit)
	defer cancel()

	return errors.Join(
		t.tracerProvider.Shutdown(ctx),
		t.meterProvider.Shutdown(ctx),
	)
}
