package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"degradecli/internal/app"
	"degradecli/internal/config"
	"degradecli/internal/infrastructure"
	"degradecli/pkg/contracts"
)

// rootOptions holds the flags of the root command
type rootOptions struct {
	cfgFile   string
	overrides config.Overrides
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "degradecli [input.xlsx]",
		Short: "Analyze UV-Vis spectra from a photocatalytic degradation run",
		Long: `degradecli reads a workbook of UV-Vis absorbance spectra (one wavelength
column plus one column per condition: "Initial Solution", "Dark" and timed
samples such as "30 min") and writes:

  - a results workbook with degradation percentages, first-order kinetics,
    peak wavelengths and areas under the curves
  - a PNG plot of every spectrum`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       contracts.Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 && opts.overrides.Input == "" {
				opts.overrides.Input = args[0]
			}
			return runAnalysis(cmd, opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (default is ./degradecli.yaml or ./configs/degradecli.yaml)")
	cmd.Flags().StringVarP(&opts.overrides.Input, "input", "i", "", "spectra workbook to analyze")
	cmd.Flags().StringVarP(&opts.overrides.Workbook, "workbook", "o", "", "results workbook (default is ./"+config.DefaultWorkbookFile+")")
	cmd.Flags().StringVar(&opts.overrides.Plot, "plot", "", "spectra plot (default is ./"+config.DefaultPlotFile+")")
	cmd.Flags().StringVar(&opts.overrides.Metrics, "metrics", "", "write run metrics to this node-exporter textfile")
	cmd.Flags().StringVar(&opts.overrides.LogLevel, "log-level", "", "debug, info, warn or error")

	cmd.AddCommand(newVersionCmd())
	return cmd
}

func runAnalysis(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: opts.cfgFile,
		Overrides:  opts.overrides,
	})
	if err != nil {
		slog.Error("Failed to load configuration", infrastructure.ErrorAttrs(err)...)
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		return err
	}

	application, err := app.NewApplication(cfg, cmd.OutOrStdout())
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := application.Shutdown(ctx); err != nil {
			application.Logger.Warn("Telemetry shutdown failed", infrastructure.ErrorAttrs(err)...)
		}
	}()

	if err := application.Run(cmd.Context()); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		return err
	}
	return nil
}
