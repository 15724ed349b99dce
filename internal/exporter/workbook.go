package exporter

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/xuri/excelize/v2"

	apperrors "degradecli/internal/errors"
	"degradecli/pkg/contracts/domain"
)

// WorkbookWriter writes a domain.Report as the results workbook
type WorkbookWriter struct {
	logger *slog.Logger
}

// NewWorkbookWriter creates a workbook writer; a nil logger uses slog.Default()
func NewWorkbookWriter(logger *slog.Logger) *WorkbookWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookWriter{logger: logger}
}

// Write saves report to path, replacing any existing file.
func (w *WorkbookWriter) Write(report *domain.Report, path string) error {
	staged, err := w.Stage(report, path)
	if err != nil {
		return err
	}
	if err := staged.Commit(); err != nil {
		staged.Discard()
		return err
	}

	w.logger.Info("Results workbook written",
		slog.String("path", path),
		slog.Int("sheets", len(layouts)),
		slog.Int("conditions", report.Peaks.Len()))
	return nil
}

// Stage renders report into a temporary file beside path. The workbook is
// not visible at path until the returned file is committed.
func (w *WorkbookWriter) Stage(report *domain.Report, path string) (*StagedFile, error) {
	if report == nil || report.Peaks == nil || report.Kinetics == nil {
		return nil, apperrors.NewInsufficientDataError("report is incomplete")
	}

	f, err := w.build(report)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	staged, err := stageFile(path, func(out io.Writer) error {
		_, err := f.WriteTo(out)
		return err
	})
	if err != nil {
		return nil, err
	}
	w.logger.Debug("Results workbook staged", slog.String("path", path))
	return staged, nil
}

func (w *WorkbookWriter) build(report *domain.Report) (*excelize.File, error) {
	f := excelize.NewFile()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, apperrors.NewStorageError("failed to create header style", err)
	}

	rows := sheetRows(report)
	for i, l := range layouts {
		if i == 0 {
			err = f.SetSheetName(f.GetSheetName(0), l.name)
		} else {
			_, err = f.NewSheet(l.name)
		}
		if err != nil {
			f.Close()
			return nil, apperrors.NewStorageError(fmt.Sprintf("failed to create sheet %q", l.name), err)
		}

		if err := writeSheet(f, l, rows[l.name], bold); err != nil {
			f.Close()
			return nil, err
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

func writeSheet(f *excelize.File, l sheetLayout, rows [][]any, headerStyle int) error {
	header := make([]any, len(l.headers))
	for i, h := range l.headers {
		header[i] = h
	}
	if err := f.SetSheetRow(l.name, "A1", &header); err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to write header of %q", l.name), err)
	}

	lastCol, _ := excelize.ColumnNumberToName(len(l.headers))
	if err := f.SetCellStyle(l.name, "A1", lastCol+"1", headerStyle); err != nil {
		return apperrors.NewStorageError("failed to style header", err)
	}
	if err := f.SetColWidth(l.name, "A", lastCol, l.width); err != nil {
		return apperrors.NewStorageError("failed to size columns", err)
	}

	for i := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(l.name, cell, &rows[i]); err != nil {
			return apperrors.NewStorageError(fmt.Sprintf("failed to write row %d of %q", i+2, l.name), err)
		}
	}
	return nil
}

// sheetRows lays the report out as data rows keyed by sheet name
func sheetRows(report *domain.Report) map[string][][]any {
	rows := make(map[string][][]any, len(layouts))

	for _, d := range report.Degradation {
		rows[SheetDegradation] = append(rows[SheetDegradation], []any{d.Condition, d.Percent})
	}
	for _, p := range report.Kinetics.Points {
		rows[SheetKinetics] = append(rows[SheetKinetics], []any{p.Minutes, p.Value})
	}
	for _, p := range report.Peaks.Peaks {
		rows[SheetPeaks] = append(rows[SheetPeaks], []any{p.Condition, p.Absorbance, p.Wavelength})
	}
	for _, a := range report.AUC {
		rows[SheetAUC] = append(rows[SheetAUC], []any{a.Condition, a.Area})
	}
	rows[SheetKineticsSummary] = [][]any{{report.Kinetics.RateConstant, report.Kinetics.RSquared}}

	return rows
}
