package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"degradecli/pkg/contracts/domain"
)

const tracerName = "degradecli/internal/analysis"

// Analyzer orchestrates the four computations over one dataset
type Analyzer struct {
	logger *slog.Logger
	tracer trace.Tracer
}

// NewAnalyzer creates an analyzer. A nil logger falls back to slog.Default
// and a nil tracer to the global OpenTelemetry tracer provider.
func NewAnalyzer(logger *slog.Logger, tracer trace.Tracer) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}
	return &Analyzer{
		logger: logger,
		tracer: tracer,
	}
}

// Analyze validates ds and computes peaks, degradation, kinetics and AUC.
// Any failure aborts the run and no partial report is returned. When both
// the peak chain and AUC fail, the peak-chain error is the one reported.
func (a *Analyzer) Analyze(ctx context.Context, ds *domain.Dataset, series []domain.TimePoint) (*domain.Report, error) {
	start := time.Now()
	ctx, span := a.tracer.Start(ctx, "analysis.Analyze")
	defer span.End()

	if err := ValidateDataset(ds); err != nil {
		return nil, a.fail(ctx, span, "validate dataset", err)
	}

	span.SetAttributes(
		attribute.Int("dataset.conditions", len(ds.Conditions)),
		attribute.Int("dataset.rows", ds.Len()),
		attribute.Int("dataset.time_points", len(series)),
	)
	a.logger.InfoContext(ctx, "starting degradation analysis",
		"conditions", len(ds.Conditions),
		"rows", ds.Len(),
		"time_points", len(series),
	)

	// Both branches always run to completion so that a peak-chain failure
	// is reported ahead of an AUC failure regardless of scheduling.
	report := &domain.Report{}
	var g errgroup.Group
	var chainErr, aucErr error

	g.Go(func() error {
		chainErr = a.peakChain(ctx, ds, series, report)
		return nil
	})

	g.Go(func() error {
		auc, err := stage(ctx, a, "auc", func() ([]domain.AUCRecord, error) {
			return CalculateAUC(ds)
		})
		if err != nil {
			aucErr = err
			return nil
		}
		report.AUC = auc
		return nil
	})

	_ = g.Wait()
	if chainErr != nil {
		return nil, a.fail(ctx, span, "analysis failed", chainErr)
	}
	if aucErr != nil {
		return nil, a.fail(ctx, span, "analysis failed", aucErr)
	}

	attrs := []any{
		"rate_constant", report.Kinetics.RateConstant,
		"r_squared", report.Kinetics.RSquared,
		"duration", time.Since(start),
	}
	if h, ok := report.Kinetics.HalfLife(); ok {
		attrs = append(attrs, "half_life_min", h)
	}
	a.logger.InfoContext(ctx, "degradation analysis completed", attrs...)

	span.SetAttributes(
		attribute.Float64("kinetics.rate_constant", report.Kinetics.RateConstant),
		attribute.Float64("kinetics.r_squared", report.Kinetics.RSquared),
	)
	return report, nil
}

// peakChain finds the peaks and derives degradation and kinetics from them.
func (a *Analyzer) peakChain(ctx context.Context, ds *domain.Dataset, series []domain.TimePoint, report *domain.Report) error {
	peaks, err := stage(ctx, a, "peaks", func() (*domain.PeakTable, error) {
		return FindMaxPeaks(ds)
	})
	if err != nil {
		return err
	}
	degradation, err := stage(ctx, a, "degradation", func() ([]domain.DegradationRecord, error) {
		return DegradationPercentages(peaks)
	})
	if err != nil {
		return err
	}
	kinetics, err := stage(ctx, a, "kinetics", func() (*domain.KineticsFit, error) {
		return FitKinetics(peaks, series)
	})
	if err != nil {
		return err
	}
	report.Peaks = peaks
	report.Degradation = degradation
	report.Kinetics = kinetics
	return nil
}

// stage runs one computation inside its own span.
func stage[T any](ctx context.Context, a *Analyzer, name string, fn func() (T, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	_, span := a.tracer.Start(ctx, "analysis."+name)
	defer span.End()

	out, err := fn()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return zero, fmt.Errorf("%s: %w", name, err)
	}
	a.logger.DebugContext(ctx, "analysis stage completed", "stage", name)
	return out, nil
}

func (a *Analyzer) fail(ctx context.Context, span trace.Span, msg string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
	a.logger.ErrorContext(ctx, msg, "error", err)
	return err
}
