package testutil

import (
	"fmt"
	"math"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"degradecli/pkg/contracts/domain"
)

// Band centre and width of the synthetic absorption band, in nm.
const (
	BandCenter = 300.0
	BandWidth  = 25.0
)

// Grid returns n wavelengths starting at start with a fixed step.
func Grid(start, step float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}

// Band evaluates a Gaussian absorption band of unit height at BandCenter.
func Band(wavelengths []float64, height float64) []float64 {
	out := make([]float64, len(wavelengths))
	for i, w := range wavelengths {
		d := (w - BandCenter) / BandWidth
		out[i] = height * math.Exp(-d*d)
	}
	return out
}

// Constant returns n copies of v.
func Constant(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// SyntheticDecay builds a run whose peaks follow first-order kinetics:
// the "t min" column peaks at dark*exp(-k*t). The initial solution sits 25%
// above the dark level. Peaks all fall on BandCenter.
func SyntheticDecay(dark, k float64, minutes []int) *domain.Dataset {
	w := Grid(200, 2, 101)
	ds := &domain.Dataset{
		Source:      "synthetic",
		Wavelengths: w,
		Conditions: []domain.Condition{
			{Name: domain.ConditionInitial, Absorbance: Band(w, 1.25*dark)},
			{Name: domain.ConditionDark, Absorbance: Band(w, dark)},
		},
	}
	for _, t := range minutes {
		ds.Conditions = append(ds.Conditions, domain.Condition{
			Name:       fmt.Sprintf("%d min", t),
			Absorbance: Band(w, dark*math.Exp(-k*float64(t))),
		})
	}
	return ds
}

// TimePoints returns the "t min" time points SyntheticDecay produces.
func TimePoints(minutes []int) []domain.TimePoint {
	out := make([]domain.TimePoint, len(minutes))
	for i, t := range minutes {
		out[i] = domain.TimePoint{Condition: fmt.Sprintf("%d min", t), Minutes: t}
	}
	return out
}

// WriteWorkbook saves headers and rows to the named sheet of a new workbook
// at path.
func WriteWorkbook(t *testing.T, path, sheet string, headers []string, rows [][]any) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}
	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		t.Fatalf("write header: %v", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			t.Fatalf("write row %d: %v", i, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
}

// WriteDatasetWorkbook writes ds in the input layout (Wavelength column
// followed by one column per condition) and returns the file path.
func WriteDatasetWorkbook(t *testing.T, dir string, ds *domain.Dataset) string {
	t.Helper()

	headers := append([]string{domain.DefaultWavelengthColumn}, ds.ConditionNames()...)
	rows := make([][]any, ds.Len())
	for i, w := range ds.Wavelengths {
		row := make([]any, 0, len(headers))
		row = append(row, w)
		for _, c := range ds.Conditions {
			row = append(row, c.Absorbance[i])
		}
		rows[i] = row
	}

	path := filepath.Join(dir, "spectra.xlsx")
	WriteWorkbook(t, path, "Sheet1", headers, rows)
	return path
}
