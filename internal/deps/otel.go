package deps

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bosserz/ged-assessment/internal/config"
	"github.com/bosserz/ged-assessment/internal/deps/logger"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutlog"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.uber.org/fx"
)

// NewTraceExporter creates the span exporter selected by OTEL_EXPORTER.
// It returns nil for "none".
func NewTraceExporter(ctx context.Context, cfg config.OTelConfig) (sdktrace.SpanExporter, error) {
	switch cfg.Exporter {
	case config.OTelExporterNone:
		return nil, nil
	case config.OTelExporterStdout:
		return stdouttrace.New()
	case config.OTelExporterOTLP:
		return otlptracehttp.New(ctx)
	case config.OTelExporterOTLPGRPC:
		return otlptracegrpc.New(ctx)
	default:
		return nil, fmt.Errorf("unknown otel exporter %q", cfg.Exporter)
	}
}

// TracerProvider installs the global tracer provider and shuts it down with the app.
func TracerProvider(lifecycle fx.Lifecycle, cfg config.OTelConfig) error {
	exporter, err := NewTraceExporter(context.Background(), cfg)
	if err != nil {
		slog.Error("error creating trace exporter", "error", err)
		return err
	}
	if exporter == nil {
		return nil
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(serviceResource(cfg)),
	)

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	slog.Info("tracing enabled", "exporter", cfg.Exporter)
	lifecycle.Append(fx.StopHook(provider.Shutdown))

	return nil
}

// NewLogExporter creates the log exporter selected by OTEL_EXPORTER.
// It returns nil for "none".
func NewLogExporter(ctx context.Context, cfg config.OTelConfig) (sdklog.Exporter, error) {
	switch cfg.Exporter {
	case config.OTelExporterNone:
		return nil, nil
	case config.OTelExporterStdout:
		return stdoutlog.New()
	case config.OTelExporterOTLP:
		return otlploghttp.New(ctx)
	case config.OTelExporterOTLPGRPC:
		return otlploggrpc.New(ctx)
	default:
		return nil, fmt.Errorf("unknown otel exporter %q", cfg.Exporter)
	}
}

// LoggerProvider forwards slog records to OpenTelemetry in addition to the
// JSON log.
func LoggerProvider(lifecycle fx.Lifecycle, cfg config.OTelConfig) error {
	exporter, err := NewLogExporter(context.Background(), cfg)
	if err != nil {
		slog.Error("error creating log exporter", "error", err)
		return err
	}
	if exporter == nil {
		return nil
	}

	provider := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)),
		sdklog.WithResource(serviceResource(cfg)),
	)

	global.SetLoggerProvider(provider)
	logger.Tee(otelslog.NewHandler(cfg.ServiceName, otelslog.WithLoggerProvider(provider)))

	lifecycle.Append(fx.StopHook(provider.Shutdown))

	return nil
}

func serviceResource(cfg config.OTelConfig) *resource.Resource {
	return resource.NewSchemaless(semconv.ServiceName(cfg.ServiceName))
}
