package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"degradecli/internal/config"
	"degradecli/internal/infrastructure"
	"degradecli/pkg/contracts"
)

// Application represents one configured degradecli process
type Application struct {
	Config    *config.Config
	Logger    *slog.Logger
	Telemetry *infrastructure.Telemetry
	Metrics   *infrastructure.RunMetrics
	Pipeline  *Pipeline
}

// NewApplication initializes logging and telemetry for cfg. Results are
// announced on stdout.
func NewApplication(cfg *config.Config, stdout io.Writer) (*Application, error) {
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	tel, err := infrastructure.InitializeOTel(cfg.Telemetry, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	metrics, err := infrastructure.NewRunMetrics(tel.Meter)
	if err != nil {
		tel.Shutdown(context.Background())
		return nil, fmt.Errorf("failed to create metrics: %w", err)
	}

	logger.Debug("Application starting",
		slog.String("name", config.AppName),
		slog.String("version", contracts.Version))

	return &Application{
		Config:    cfg,
		Logger:    logger,
		Telemetry: tel,
		Metrics:   metrics,
		Pipeline: NewPipeline(
			WithLogger(infrastructure.WithComponent(logger, "pipeline")),
			WithTracer(tel.Tracer),
			WithMetrics(metrics),
			WithOutput(stdout),
		),
	}, nil
}

// Run executes the pipeline and then writes the metrics textfile, which is
// written for failed runs too.
func (a *Application) Run(ctx context.Context) error {
	_, runErr := a.Pipeline.Run(ctx, a.Config)

	if err := a.Telemetry.WriteMetrics(a.Config.Paths.Metrics); err != nil {
		a.Logger.Warn("Failed to write metrics textfile", infrastructure.ErrorAttrs(err)...)
		if runErr == nil {
			return err
		}
	}
	return runErr
}

// Shutdown flushes telemetry and closes the log file
func (a *Application) Shutdown(ctx context.Context) error {
	return errors.Join(a.Telemetry.Shutdown(ctx), infrastructure.CloseLogFile())
}
