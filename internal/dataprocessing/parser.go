package dataprocessing

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "degradecli/internal/errors"
	"degradecli/pkg/contracts/domain"
)

// ParseOptions selects where the spectra live in the workbook.
type ParseOptions struct {
	// Sheet to read; empty means the first sheet
	Sheet string

	// WavelengthColumn is the header of the wavelength column
	WavelengthColumn string
}

// DefaultParseOptions returns the layout written by the spectrometer export
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		WavelengthColumn: domain.DefaultWavelengthColumn,
	}
}

// ParseFile reads a UV-Vis spectra workbook into a Dataset.
func ParseFile(filePath string, opts ParseOptions) (*domain.Dataset, error) {
	if opts.WavelengthColumn == "" {
		opts.WavelengthColumn = domain.DefaultWavelengthColumn
	}

	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to open workbook", err).
			WithContext("path", filePath)
	}
	defer f.Close()

	sheetName := opts.Sheet
	if sheetName == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, apperrors.NewParsingError("workbook has no sheets", nil).
				WithContext("path", filePath)
		}
		sheetName = sheets[0]
	}

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to read sheet %q", sheetName), err).
			WithContext("path", filePath)
	}

	slog.Debug("Found spectral data in sheet",
		slog.String("sheet_name", sheetName),
		slog.Int("total_rows", len(rows)))

	ds, err := parseRows(sheetName, rows, opts.WavelengthColumn)
	if err != nil {
		return nil, err
	}
	ds.Source = filePath

	slog.Info("Parsed spectra workbook",
		slog.String("path", filePath),
		slog.String("sheet_name", sheetName),
		slog.Int("wavelengths", ds.Len()),
		slog.Any("conditions", ds.ConditionNames()))

	return ds, nil
}

// parseRows maps the header row to columns and converts the data rows.
func parseRows(sheetName string, rows [][]string, wavelengthColumn string) (*domain.Dataset, error) {
	if len(rows) == 0 {
		return nil, apperrors.NewMissingColumnError(fmt.Sprintf("sheet %q is empty", sheetName))
	}

	header := rows[0]
	wavelengthIdx := -1
	type column struct {
		index int
		name  string
	}
	var columns []column

	for j, h := range header {
		name := strings.TrimSpace(h)
		switch {
		case name == "":
			continue
		case wavelengthIdx < 0 && strings.EqualFold(name, wavelengthColumn):
			wavelengthIdx = j
		default:
			columns = append(columns, column{index: j, name: name})
		}
	}

	if wavelengthIdx < 0 {
		return nil, apperrors.NewMissingColumnError(
			fmt.Sprintf("column %q not found in sheet %q", wavelengthColumn, sheetName)).
			WithContext("header", header)
	}
	if len(columns) == 0 {
		return nil, apperrors.NewMissingColumnError(
			fmt.Sprintf("sheet %q has no condition columns", sheetName))
	}

	ds := &domain.Dataset{
		Conditions: make([]domain.Condition, len(columns)),
	}
	for k, c := range columns {
		ds.Conditions[k].Name = c.name
	}

	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if isBlank(row) {
			continue
		}

		w, err := parseCell(sheetName, row, i, wavelengthIdx)
		if err != nil {
			return nil, err
		}
		ds.Wavelengths = append(ds.Wavelengths, w)

		for k, c := range columns {
			v, err := parseCell(sheetName, row, i, c.index)
			if err != nil {
				return nil, err
			}
			ds.Conditions[k].Absorbance = append(ds.Conditions[k].Absorbance, v)
		}
	}

	return ds, nil
}

func parseCell(sheetName string, row []string, rowIdx, colIdx int) (float64, error) {
	cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)

	var raw string
	if colIdx < len(row) {
		raw = strings.TrimSpace(row[colIdx])
	}
	if raw == "" {
		return 0, apperrors.NewParsingError(fmt.Sprintf("missing value at %s!%s", sheetName, cell), nil).
			WithContext("cell", cell)
	}

	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil {
		return 0, apperrors.NewParsingError(fmt.Sprintf("invalid number %q at %s!%s", raw, sheetName, cell), err).
			WithContext("cell", cell)
	}
	return v, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
