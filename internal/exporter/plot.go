package exporter

import (
	"io"
	"log/slog"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/gonum/floats"

	apperrors "degradecli/internal/errors"
	"degradecli/pkg/contracts/domain"
)

// DefaultPlotTitle is the chart title used when none is configured
const DefaultPlotTitle = "UV-Vis Absorbance Spectra"

// PlotOptions sizes and titles the spectra chart
type PlotOptions struct {
	Width  int
	Height int
	Title  string
}

// DefaultPlotOptions returns a 1000x600 chart with the default title
func DefaultPlotOptions() PlotOptions {
	return PlotOptions{Width: 1000, Height: 600, Title: DefaultPlotTitle}
}

var palette = []drawing.Color{
	drawing.ColorFromHex("1f77b4"),
	drawing.ColorFromHex("ff7f0e"),
	drawing.ColorFromHex("2ca02c"),
	drawing.ColorFromHex("d62728"),
	drawing.ColorFromHex("9467bd"),
	drawing.ColorFromHex("8c564b"),
	drawing.ColorFromHex("e377c2"),
	drawing.ColorFromHex("7f7f7f"),
	drawing.ColorFromHex("bcbd22"),
	drawing.ColorFromHex("17becf"),
}

// PlotWriter renders absorbance spectra to PNG
type PlotWriter struct {
	opts   PlotOptions
	logger *slog.Logger
}

// NewPlotWriter creates a plot writer. Zero option fields take their
// defaults; a nil logger uses slog.Default().
func NewPlotWriter(opts PlotOptions, logger *slog.Logger) *PlotWriter {
	def := DefaultPlotOptions()
	if opts.Width <= 0 {
		opts.Width = def.Width
	}
	if opts.Height <= 0 {
		opts.Height = def.Height
	}
	if opts.Title == "" {
		opts.Title = def.Title
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PlotWriter{opts: opts, logger: logger}
}

// WriteSpectra plots every condition of ds against wavelength and saves the
// chart as a PNG at path.
func (p *PlotWriter) WriteSpectra(ds *domain.Dataset, path string) error {
	staged, err := p.StageSpectra(ds, path)
	if err != nil {
		return err
	}
	if err := staged.Commit(); err != nil {
		staged.Discard()
		return err
	}

	p.logger.Info("Spectra plot written",
		slog.String("path", path),
		slog.Int("series", len(ds.Conditions)))
	return nil
}

// StageSpectra renders the chart into a temporary file beside path.
func (p *PlotWriter) StageSpectra(ds *domain.Dataset, path string) (*StagedFile, error) {
	ch, err := p.chart(ds)
	if err != nil {
		return nil, err
	}

	staged, err := stageFile(path, func(w io.Writer) error {
		return ch.Render(chart.PNG, w)
	})
	if err != nil {
		return nil, err
	}
	p.logger.Debug("Spectra plot staged",
		slog.String("path", path),
		slog.Int("series", len(ch.Series)))
	return staged, nil
}

func (p *PlotWriter) chart(ds *domain.Dataset) (*chart.Chart, error) {
	if ds == nil || ds.Len() == 0 || len(ds.Conditions) == 0 {
		return nil, apperrors.NewInsufficientDataError("nothing to plot")
	}

	xs := ds.Wavelengths
	// go-chart needs a non-empty x range
	if len(xs) == 1 {
		xs = []float64{xs[0], xs[0] + 1}
	}

	series := make([]chart.Series, 0, len(ds.Conditions))
	yMin, yMax := 0.0, 0.0
	for i, c := range ds.Conditions {
		if len(c.Absorbance) != ds.Len() {
			return nil, apperrors.NewLengthMismatchError(
				"condition "+c.Name+" does not match the wavelength count", ds.Len(), len(c.Absorbance))
		}

		ys := c.Absorbance
		if len(ys) == 1 {
			ys = []float64{ys[0], ys[0]}
		}
		if i == 0 {
			yMin, yMax = floats.Min(ys), floats.Max(ys)
		} else {
			yMin, yMax = min(yMin, floats.Min(ys)), max(yMax, floats.Max(ys))
		}

		series = append(series, chart.ContinuousSeries{
			Name:    c.Name,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: palette[i%len(palette)],
				StrokeWidth: 2,
			},
		})
	}

	grid := chart.Style{StrokeColor: drawing.ColorFromHex("dddddd"), StrokeWidth: 1}
	yAxis := chart.YAxis{
		Name:           "Absorbance",
		GridMajorStyle: grid,
	}
	if yMin == yMax {
		yAxis.Range = &chart.ContinuousRange{Min: yMin - 0.5, Max: yMax + 0.5}
	}

	ch := &chart.Chart{
		Title:      p.opts.Title,
		Width:      p.opts.Width,
		Height:     p.opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:           "Wavelength (nm)",
			GridMajorStyle: grid,
		},
		YAxis:  yAxis,
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(ch)}
	return ch, nil
}
