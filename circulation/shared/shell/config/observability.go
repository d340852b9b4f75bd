package config

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/eventstore/oteladapters"
	"github.com/AntonStoeckl/library-circulation-go/eventstore/promadapters"
)

const otlpMetricsInterval = 15 * time.Second

// ObservabilityProviders holds the OpenTelemetry providers and the Prometheus registry of the service.
type ObservabilityProviders struct {
	TracerProvider *trace.TracerProvider
	MeterProvider  *metric.MeterProvider
	Registry       *prometheus.Registry

	cfg ObservabilityConfig
}

// NewObservabilityProviders sets up tracing and metrics and registers the providers globally.
//
// Spans are exported via OTLP gRPC when an endpoint is configured. Metrics of the otel backend are
// read by the OpenTelemetry Prometheus exporter into the same registry the prometheus backend uses,
// so /metrics serves both. With an endpoint they are pushed via OTLP as well.
func NewObservabilityProviders(ctx context.Context, cfg ObservabilityConfig) (*ObservabilityProviders, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(cfg.ServiceName),
		),
	)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	traceOpts := []trace.TracerProviderOption{trace.WithResource(res)}
	meterOpts := []metric.Option{metric.WithResource(res)}

	promReader, err := promexporter.New(promexporter.WithRegisterer(registry))
	if err != nil {
		return nil, err
	}
	meterOpts = append(meterOpts, metric.WithReader(promReader))

	if cfg.OTLPEndpoint != "" {
		traceExporter, err := otlptracegrpc.New(
			ctx,
			otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint),
			otlptracegrpc.WithInsecure(),
		)
		if err != nil {
			return nil, err
		}
		traceOpts = append(traceOpts, trace.WithBatcher(traceExporter))

		metricExporter, err := otlpmetricgrpc.New(
			ctx,
			otlpmetricgrpc.WithEndpoint(cfg.OTLPEndpoint),
			otlpmetricgrpc.WithInsecure(),
		)
		if err != nil {
			return nil, err
		}
		meterOpts = append(meterOpts, metric.WithReader(
			metric.NewPeriodicReader(metricExporter, metric.WithInterval(otlpMetricsInterval)),
		))
	}

	providers := &ObservabilityProviders{
		TracerProvider: trace.NewTracerProvider(traceOpts...),
		MeterProvider:  metric.NewMeterProvider(meterOpts...),
		Registry:       registry,
		cfg:            cfg,
	}

	otel.SetTracerProvider(providers.TracerProvider)
	otel.SetMeterProvider(providers.MeterProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return providers, nil
}

// MetricsCollector returns the collector of the configured metrics backend.
func (p *ObservabilityProviders) MetricsCollector() eventstore.MetricsCollector {
	if p.cfg.MetricsBackend == MetricsBackendOTel {
		return oteladapters.NewMetricsCollector(p.MeterProvider.Meter(p.cfg.ServiceName))
	}

	return promadapters.NewMetricsCollector(p.Registry, p.cfg.ServiceName)
}

// TracingCollector returns a tracing collector on the service's tracer.
func (p *ObservabilityProviders) TracingCollector() eventstore.TracingCollector {
	return oteladapters.NewTracingCollector(p.TracerProvider.Tracer(p.cfg.ServiceName))
}

// MetricsHandler serves the registry in the Prometheus exposition format.
func (p *ObservabilityProviders) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(p.Registry, promhttp.HandlerOpts{Registry: p.Registry})
}

// Shutdown flushes and stops the providers.
func (p *ObservabilityProviders) Shutdown(ctx context.Context) error {
	return errors.Join(
		p.TracerProvider.Shutdown(ctx),
		p.MeterProvider.Shutdown(ctx),
	)
}
