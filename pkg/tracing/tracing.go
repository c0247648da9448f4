package tracing

import (
	"context"
	"io"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"
	"go.uber.org/zap"

	"github.com/noah-isme/brgy-tracker-api/pkg/config"
)

// ShutdownFunc flushes and stops the tracer provider.
type ShutdownFunc func(context.Context) error

func noopShutdown(context.Context) error { return nil }

// Options tune Init beyond the loaded configuration.
type Options struct {
	Environment string
	Version     string
	// Writer receives spans when no OTLP endpoint is configured. Nil
	// means stdout.
	Writer io.Writer
}

// Init installs a global tracer provider when tracing is enabled. Exporter
// failures are logged and tracing continues without export.
func Init(ctx context.Context, cfg config.TracingConfig, opts Options, logger *zap.Logger) ShutdownFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.Enabled {
		return noopShutdown
	}

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "brgy-tracker-api"
	}
	res, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceNameKey.String(serviceName),
		semconv.ServiceVersionKey.String(opts.Version),
		attribute.String("deployment.environment", opts.Environment),
	))
	if err != nil {
		logger.Warn("otel resource init failed", zap.Error(err))
	}

	providerOpts := []sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
		sdktrace.WithResource(res),
	}
	exporter, err := buildExporter(ctx, cfg, opts.Writer)
	if err != nil {
		logger.Warn("otel exporter init failed", zap.Error(err))
	} else {
		providerOpts = append(providerOpts, sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)))
	}

	tp := sdktrace.NewTracerProvider(providerOpts...)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	logger.Info("otel tracing initialised",
		zap.String("service", serviceName),
		zap.String("endpoint", cfg.Endpoint),
		zap.Float64("sample_ratio", cfg.SampleRatio))
	return tp.Shutdown
}

func buildExporter(ctx context.Context, cfg config.TracingConfig, w io.Writer) (sdktrace.SpanExporter, error) {
	if cfg.Endpoint != "" {
		opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.Endpoint)}
		if cfg.Insecure {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		return otlptracehttp.New(ctx, opts...)
	}
	stdoutOpts := []stdouttrace.Option{stdouttrace.WithPrettyPrint()}
	if w != nil {
		stdoutOpts = append(stdoutOpts, stdouttrace.WithWriter(w))
	}
	return stdouttrace.New(stdoutOpts...)
}
