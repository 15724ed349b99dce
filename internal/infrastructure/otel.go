package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"

	"degradecli/internal/config"
	apperrors "degradecli/internal/errors"
	"degradecli/pkg/contracts"
)

const (
	ServiceName = "degradecli"
	MeterName   = "degradecli"
)

// traceOutput receives stdout-exported spans; stdout is reserved for results
var traceOutput io.Writer = os.Stderr

// Telemetry holds the OpenTelemetry providers of one process
type Telemetry struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter

	// Registry backs the Prometheus exporter; nil when metrics are off
	Registry *prometheus.Registry

	Logger *slog.Logger
}

// InitializeOTel sets up tracing and metrics as described by cfg and
// installs the providers globally.
func InitializeOTel(cfg config.TelemetryConfig, logger *slog.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = GetLogger()
	}
	ctx := context.Background()

	res, err := createResource(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	tel := &Telemetry{Logger: logger}
	if err := tel.initializeTracing(cfg, res); err != nil {
		return nil, err
	}
	if err := tel.initializeMetrics(cfg, res); err != nil {
		tel.TracerProvider.Shutdown(ctx)
		return nil, err
	}

	logger.DebugContext(ctx, "OpenTelemetry initialized",
		slog.String("service", ServiceName),
		slog.String("version", contracts.Version),
		slog.String("environment", cfg.Environment),
		slog.String("trace_exporter", cfg.TraceExporter),
		slog.String("metric_exporter", cfg.MetricExporter))

	return tel, nil
}

// createResource creates the OpenTelemetry resource
func createResource(cfg config.TelemetryConfig) (*resource.Resource, error) {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(ServiceName),
		semconv.ServiceVersion(contracts.Version),
		semconv.DeploymentEnvironmentName(cfg.Environment),
	), nil
}

func (t *Telemetry) initializeTracing(cfg config.TelemetryConfig, res *resource.Resource) error {
	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.SampleRatio)),
	}

	switch cfg.TraceExporter {
	case "stdout":
		exporter, err := stdouttrace.New(
			stdouttrace.WithWriter(traceOutput),
			stdouttrace.WithPrettyPrint(),
		)
		if err != nil {
			return fmt.Errorf("failed to create trace exporter: %w", err)
		}
		opts = append(opts, sdktrace.WithBatcher(exporter))
	case "none", "":
		// spans are still created so stage timing stays observable in tests
	default:
		return apperrors.NewConfigError(fmt.Sprintf("unsupported trace exporter: %s", cfg.TraceExporter), nil)
	}

	tp := sdktrace.NewTracerProvider(opts...)
	t.TracerProvider = tp
	t.Tracer = tp.Tracer(MeterName, trace.WithInstrumentationVersion(contracts.Version))
	otel.SetTracerProvider(tp)
	return nil
}

func (t *Telemetry) initializeMetrics(cfg config.TelemetryConfig, res *resource.Resource) error {
	switch cfg.MetricExporter {
	case "prometheus":
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector())

		exporter, err := otelprom.New(otelprom.WithRegisterer(reg))
		if err != nil {
			return fmt.Errorf("failed to create prometheus exporter: %w", err)
		}

		mp := sdkmetric.NewMeterProvider(
			sdkmetric.WithResource(res),
			sdkmetric.WithReader(exporter),
		)
		t.MeterProvider = mp
		t.Registry = reg
		t.Meter = mp.Meter(MeterName, metric.WithInstrumentationVersion(contracts.Version))
		otel.SetMeterProvider(mp)
	case "none", "":
		t.Meter = noop.NewMeterProvider().Meter(MeterName)
	default:
		return apperrors.NewConfigError(fmt.Sprintf("unsupported metric exporter: %s", cfg.MetricExporter), nil)
	}
	return nil
}

// WriteMetrics writes the metrics registry to path in the node-exporter
// textfile format. It is a no-op when metrics are disabled or path is empty.
func (t *Telemetry) WriteMetrics(path string) error {
	if t.Registry == nil || path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewStorageError("failed to create metrics directory", err)
	}
	if err := prometheus.WriteToTextfile(path, t.Registry); err != nil {
		return apperrors.NewStorageError("failed to write metrics textfile", err).
			WithContext("path", path)
	}
	t.Logger.Debug("Metrics textfile written", slog.String("path", path))
	return nil
}

// Shutdown flushes and stops both providers
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	if t.TracerProvider != nil {
		errs = append(errs, t.TracerProvider.Shutdown(ctx))
	}
	if t.MeterProvider != nil {
		errs = append(errs, t.MeterProvider.Shutdown(ctx))
	}
	return errors.Join(errs...)
}
