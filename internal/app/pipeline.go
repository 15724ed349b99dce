package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"degradecli/internal/analysis"
	"degradecli/internal/config"
	"degradecli/internal/dataprocessing"
	"degradecli/internal/exporter"
	"degradecli/internal/infrastructure"
	"degradecli/internal/validation"
	"degradecli/pkg/contracts/domain"
)

// Result describes a completed run
type Result struct {
	Dataset      *domain.Dataset
	Series       []domain.TimePoint
	Report       *domain.Report
	WorkbookPath string
	PlotPath     string
	Duration     time.Duration
}

// Pipeline runs one analysis from input workbook to output files
type Pipeline struct {
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *infrastructure.RunMetrics
	stdout  io.Writer
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithLogger sets the pipeline logger
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = logger }
}

// WithTracer sets the tracer used for pipeline and analysis spans
func WithTracer(tracer trace.Tracer) Option {
	return func(p *Pipeline) { p.tracer = tracer }
}

// WithMetrics records run outcomes on m
func WithMetrics(m *infrastructure.RunMetrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// WithOutput sets where the completion line is printed
func WithOutput(w io.Writer) Option {
	return func(p *Pipeline) { p.stdout = w }
}

// NewPipeline creates a pipeline; unset options fall back to the default
// logger, the global tracer, no metrics and io.Discard.
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	if p.tracer == nil {
		p.tracer = otel.Tracer("degradecli/internal/app")
	}
	if p.stdout == nil {
		p.stdout = io.Discard
	}
	return p
}

// Run analyzes cfg.Paths.Input and writes the workbook and plot.
func (p *Pipeline) Run(ctx context.Context, cfg *config.Config) (*Result, error) {
	ctx = infrastructure.EnsureTraceID(ctx)
	start := time.Now()

	ctx, span := p.tracer.Start(ctx, "pipeline.Run", trace.WithAttributes(
		attribute.String("input", cfg.Paths.Input),
		attribute.String("run_id", infrastructure.GetTraceID(ctx)),
	))
	defer span.End()

	result, err := p.run(ctx, cfg)
	elapsed := time.Since(start)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if p.metrics != nil {
			p.metrics.RecordFailure(ctx, err, elapsed)
		}
		p.logger.ErrorContext(ctx, "Analysis run failed",
			append(infrastructure.ErrorAttrs(err), slog.String("input", cfg.Paths.Input))...)
		return nil, err
	}
	result.Duration = elapsed

	if p.metrics != nil {
		p.metrics.RecordSuccess(ctx, result.Report, len(result.Dataset.Conditions), elapsed)
	}

	p.logger.InfoContext(ctx, "Analysis run completed",
		slog.String("input", cfg.Paths.Input),
		slog.String("workbook", result.WorkbookPath),
		slog.String("plot", result.PlotPath),
		slog.Int("conditions", len(result.Dataset.Conditions)),
		slog.Int("time_points", len(result.Series)),
		slog.Duration("duration", elapsed))

	fmt.Fprintf(p.stdout, "Results saved to '%s'\n", result.WorkbookPath)
	return result, nil
}

func (p *Pipeline) run(ctx context.Context, cfg *config.Config) (*Result, error) {
	files := validation.NewFileValidator(p.logger)
	if err := files.ValidateSpreadsheet(cfg.Paths.Input); err != nil {
		return nil, err
	}
	if err := files.ValidateOutputFile(cfg.Paths.Workbook, ".xlsx"); err != nil {
		return nil, err
	}
	if err := files.ValidateOutputFile(cfg.Paths.Plot, ".png"); err != nil {
		return nil, err
	}

	ds, err := dataprocessing.ParseFile(cfg.Paths.Input, dataprocessing.ParseOptions{
		Sheet:            cfg.Analysis.Sheet,
		WavelengthColumn: cfg.Analysis.WavelengthColumn,
	})
	if err != nil {
		return nil, err
	}

	series, err := dataprocessing.TimeSeries(ds, cfg.Analysis.TimeMarker)
	if err != nil {
		return nil, err
	}
	p.logger.DebugContext(ctx, "Time series derived", slog.Any("time_points", series))

	report, err := analysis.NewAnalyzer(p.logger, p.tracer).Analyze(ctx, ds, series)
	if err != nil {
		return nil, err
	}

	if err := p.writeOutputs(ds, report, cfg); err != nil {
		return nil, err
	}

	return &Result{
		Dataset:      ds,
		Series:       series,
		Report:       report,
		WorkbookPath: cfg.Paths.Workbook,
		PlotPath:     cfg.Paths.Plot,
	}, nil
}

// writeOutputs stages the workbook and the plot, then commits both. A
// failure at any step leaves neither file behind.
func (p *Pipeline) writeOutputs(ds *domain.Dataset, report *domain.Report, cfg *config.Config) error {
	workbook, err := exporter.NewWorkbookWriter(p.logger).Stage(report, cfg.Paths.Workbook)
	if err != nil {
		return err
	}

	plot, err := exporter.NewPlotWriter(exporter.PlotOptions{
		Width:  cfg.Plot.Width,
		Height: cfg.Plot.Height,
		Title:  cfg.Plot.Title,
	}, p.logger).StageSpectra(ds, cfg.Paths.Plot)
	if err != nil {
		workbook.Discard()
		return err
	}

	if err := exporter.CommitAll(workbook, plot); err != nil {
		return err
	}
	p.logger.Info("Outputs written",
		slog.String("workbook", workbook.Path()),
		slog.String("plot", plot.Path()))
	return nil
}
