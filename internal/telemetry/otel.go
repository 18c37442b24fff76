package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ahmetcoskunkizilkaya/storefront-backend/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const ServiceName = "storefront-backend"

// Shutdown flushes and stops whatever Setup started.
type Shutdown func(ctx context.Context) error

// Setup installs the W3C trace-context propagator and, when an OTLP endpoint
// or stdout export is configured, a batching tracer provider. Without either,
// spans stay no-ops.
func Setup(ctx context.Context, cfg *config.Config) (Shutdown, error) {
	return setup(ctx, cfg, os.Stdout)
}

func setup(ctx context.Context, cfg *config.Config, stdout io.Writer) (Shutdown, error) {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	var exporters []sdktrace.SpanExporter
	if cfg.OTLPEndpoint != "" {
		exporter, err := otlptracegrpc.New(ctx, grpcEndpoint(cfg.OTLPEndpoint)...)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
		}
		exporters = append(exporters, exporter)
	}
	if cfg.OTelStdout {
		exporter, err := stdouttrace.New(stdouttrace.WithWriter(stdout))
		if err != nil {
			return nil, fmt.Errorf("failed to create stdout exporter: %w", err)
		}
		exporters = append(exporters, exporter)
	}
	if len(exporters) == 0 {
		return func(context.Context) error { return nil }, nil
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			attribute.String("service.name", ServiceName),
			attribute.String("deployment.environment", cfg.AppEnv),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	opts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	for _, exporter := range exporters {
		opts = append(opts, sdktrace.WithBatcher(exporter))
	}
	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)

	slog.Info("tracing enabled", "otlp_endpoint", cfg.OTLPEndpoint, "stdout", cfg.OTelStdout)
	return func(ctx context.Context) error {
		return errors.Join(tp.ForceFlush(ctx), tp.Shutdown(ctx))
	}, nil
}

// grpcEndpoint accepts either host:port or a full URL.
func grpcEndpoint(endpoint string) []otlptracegrpc.Option {
	if strings.Contains(endpoint, "://") {
		return []otlptracegrpc.Option{otlptracegrpc.WithEndpointURL(endpoint)}
	}
	return []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(endpoint), otlptracegrpc.WithInsecure()}
}
