package infrastructure

import (
	"context"
	"runtime"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	apperrors "degradecli/internal/errors"
	"degradecli/pkg/contracts/domain"
)

// RunMetrics records the outcome of analysis runs
type RunMetrics struct {
	RunsTotal    metric.Int64Counter
	RunDuration  metric.Float64Histogram
	Conditions   metric.Int64Gauge
	RateConstant metric.Float64Gauge
	RSquared     metric.Float64Gauge
	HeapAlloc    metric.Int64Gauge
}

// NewRunMetrics creates the run instruments on meter
func NewRunMetrics(meter metric.Meter) (*RunMetrics, error) {
	runsTotal, err := meter.Int64Counter(
		"degradecli.runs",
		metric.WithDescription("Analysis runs by outcome"),
	)
	if err != nil {
		return nil, err
	}

	runDuration, err := meter.Float64Histogram(
		"degradecli.run.duration",
		metric.WithDescription("Wall time of an analysis run"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30),
	)
	if err != nil {
		return nil, err
	}

	conditions, err := meter.Int64Gauge(
		"degradecli.conditions",
		metric.WithDescription("Condition columns in the analyzed workbook"),
	)
	if err != nil {
		return nil, err
	}

	rateConstant, err := meter.Float64Gauge(
		"degradecli.rate_constant",
		metric.WithDescription("First-order rate constant k, per minute"),
	)
	if err != nil {
		return nil, err
	}

	rSquared, err := meter.Float64Gauge(
		"degradecli.r_squared",
		metric.WithDescription("Coefficient of determination of the kinetics fit"),
	)
	if err != nil {
		return nil, err
	}

	heapAlloc, err := meter.Int64Gauge(
		"degradecli.memory.heap_alloc",
		metric.WithDescription("Heap bytes allocated at the end of the run"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	return &RunMetrics{
		RunsTotal:    runsTotal,
		RunDuration:  runDuration,
		Conditions:   conditions,
		RateConstant: rateConstant,
		RSquared:     rSquared,
		HeapAlloc:    heapAlloc,
	}, nil
}

// RecordSuccess records a completed run and its kinetics results
func (m *RunMetrics) RecordSuccess(ctx context.Context, report *domain.Report, conditions int, elapsed time.Duration) {
	status := metric.WithAttributes(attribute.String("status", "success"))
	m.RunsTotal.Add(ctx, 1, status)
	m.RunDuration.Record(ctx, elapsed.Seconds(), status)
	m.Conditions.Record(ctx, int64(conditions))
	if report != nil && report.Kinetics != nil {
		m.RateConstant.Record(ctx, report.Kinetics.RateConstant)
		m.RSquared.Record(ctx, report.Kinetics.RSquared)
	}
	m.recordRuntime(ctx)
}

// RecordFailure records a failed run, labelled with the error type
func (m *RunMetrics) RecordFailure(ctx context.Context, err error, elapsed time.Duration) {
	kind := string(apperrors.TypeOf(err))
	if kind == "" {
		kind = "UNKNOWN"
	}
	attrs := metric.WithAttributes(
		attribute.String("status", "failure"),
		attribute.String("error_type", kind),
	)
	m.RunsTotal.Add(ctx, 1, attrs)
	m.RunDuration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(attribute.String("status", "failure")))
	m.recordRuntime(ctx)
}

func (m *RunMetrics) recordRuntime(ctx context.Context) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	m.HeapAlloc.Record(ctx, int64(ms.HeapAlloc))
}
