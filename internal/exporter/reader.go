package exporter

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "degradecli/internal/errors"
	"degradecli/pkg/contracts/domain"
)

// ReadWorkbook loads a results workbook written by WorkbookWriter.
//
// The workbook does not store the peak row index, the kinetics intercept or
// the condition behind each kinetics point; those fields read back as zero
// values.
func ReadWorkbook(path string) (*domain.Report, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to open results workbook", err).
			WithContext("path", path)
	}
	defer f.Close()

	if got := f.GetSheetList(); !slices.Equal(got, SheetNames()) {
		return nil, apperrors.NewParsingError(
			fmt.Sprintf("unexpected sheets %q", got), nil).
			WithContext("path", path)
	}

	data := make(map[string][][]string, len(layouts))
	for _, l := range layouts {
		rows, err := f.GetRows(l.name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, apperrors.NewParsingError(fmt.Sprintf("failed to read sheet %q", l.name), err)
		}
		if len(rows) == 0 || !slices.Equal(rows[0], l.headers) {
			return nil, apperrors.NewParsingError(fmt.Sprintf("sheet %q has an unexpected header", l.name), nil)
		}
		data[l.name] = rows[1:]
	}

	var r sheetReader
	report := &domain.Report{Kinetics: &domain.KineticsFit{}}

	var peaks []domain.Peak
	for i, row := range data[SheetPeaks] {
		peaks = append(peaks, domain.Peak{
			Condition:  r.text(SheetPeaks, row, i, 0),
			Absorbance: r.number(SheetPeaks, row, i, 1),
			Wavelength: r.number(SheetPeaks, row, i, 2),
		})
	}
	report.Peaks = domain.NewPeakTable(peaks)

	for i, row := range data[SheetDegradation] {
		report.Degradation = append(report.Degradation, domain.DegradationRecord{
			Condition: r.text(SheetDegradation, row, i, 0),
			Percent:   r.number(SheetDegradation, row, i, 1),
		})
	}

	for i, row := range data[SheetKinetics] {
		report.Kinetics.Points = append(report.Kinetics.Points, domain.KineticsPoint{
			Minutes: int(r.number(SheetKinetics, row, i, 0)),
			Value:   r.number(SheetKinetics, row, i, 1),
		})
	}

	for i, row := range data[SheetAUC] {
		report.AUC = append(report.AUC, domain.AUCRecord{
			Condition: r.text(SheetAUC, row, i, 0),
			Area:      r.number(SheetAUC, row, i, 1),
		})
	}

	if summary := data[SheetKineticsSummary]; len(summary) > 0 {
		report.Kinetics.RateConstant = r.number(SheetKineticsSummary, summary[0], 0, 0)
		report.Kinetics.RSquared = r.number(SheetKineticsSummary, summary[0], 0, 1)
	} else {
		return nil, apperrors.NewParsingError("kinetics summary is empty", nil)
	}

	if r.err != nil {
		return nil, r.err
	}
	return report, nil
}

// sheetReader keeps the first cell error so row loops stay flat
type sheetReader struct {
	err error
}

func (r *sheetReader) cell(sheet string, row []string, rowIdx, colIdx int) (string, bool) {
	if colIdx < len(row) && strings.TrimSpace(row[colIdx]) != "" {
		return strings.TrimSpace(row[colIdx]), true
	}
	if r.err == nil {
		name, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
		r.err = apperrors.NewParsingError(fmt.Sprintf("missing value at %s!%s", sheet, name), nil)
	}
	return "", false
}

func (r *sheetReader) text(sheet string, row []string, rowIdx, colIdx int) string {
	v, _ := r.cell(sheet, row, rowIdx, colIdx)
	return v
}

func (r *sheetReader) number(sheet string, row []string, rowIdx, colIdx int) float64 {
	raw, ok := r.cell(sheet, row, rowIdx, colIdx)
	if !ok {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil && r.err == nil {
		name, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
		r.err = apperrors.NewParsingError(fmt.Sprintf("invalid number %q at %s!%s", raw, sheet, name), err)
	}
	return v
}
