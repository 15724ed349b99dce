package exporter

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "degradecli/internal/errors"
	"degradecli/internal/shared/testutil"
	"degradecli/pkg/contracts/domain"
)

func sampleReport() *domain.Report {
	return &domain.Report{
		Peaks: domain.NewPeakTable([]domain.Peak{
			{Condition: domain.ConditionInitial, Absorbance: 1.1, Wavelength: 254, Row: 27},
			{Condition: domain.ConditionDark, Absorbance: 0.8, Wavelength: 254, Row: 27},
			{Condition: "30 min", Absorbance: 0.4, Wavelength: 256, Row: 28},
		}),
		Degradation: []domain.DegradationRecord{
			{Condition: "30 min", Percent: 50},
		},
		Kinetics: &domain.KineticsFit{
			Points:       []domain.KineticsPoint{{Condition: "30 min", Minutes: 30, Value: 0.6931471805599453}},
			RateConstant: 0.023104906018664842,
			Intercept:    0,
			RSquared:     0,
		},
		AUC: []domain.AUCRecord{
			{Condition: domain.ConditionInitial, Area: 123.456},
			{Condition: domain.ConditionDark, Area: 98.7654321},
			{Condition: "30 min", Area: 45.5},
		},
	}
}

func TestWorkbookWriterLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "results.xlsx")
	logger, handler := testutil.NewTestLogger(t)

	require.NoError(t, NewWorkbookWriter(logger).Write(sampleReport(), path))
	testutil.AssertLogContains(t, handler, slog.LevelInfo, "Results workbook written")

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{
		"Degradation Percentages",
		"Kinetics Data",
		"Peak Wavelengths",
		"AUC Data",
		"Kinetics Summary",
	}, f.GetSheetList())

	for _, sheet := range SheetNames() {
		rows, err := f.GetRows(sheet)
		require.NoError(t, err)
		require.NotEmpty(t, rows, sheet)
		assert.Equal(t, Headers(sheet), rows[0], sheet)
	}

	summary, err := f.GetRows(SheetKineticsSummary)
	require.NoError(t, err)
	assert.Len(t, summary, 2)

	// numeric cells, not text
	typ, err := f.GetCellType(SheetPeaks, "B2")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeSharedString, typ)
	assert.NotEqual(t, excelize.CellTypeInlineString, typ)
}

func TestWorkbookRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.xlsx")
	want := sampleReport()
	require.NoError(t, NewWorkbookWriter(nil).Write(want, path))

	got, err := ReadWorkbook(path)
	require.NoError(t, err)

	require.Equal(t, want.Peaks.Len(), got.Peaks.Len())
	for i, p := range want.Peaks.Peaks {
		assert.Equal(t, p.Condition, got.Peaks.Peaks[i].Condition)
		assert.Equal(t, p.Absorbance, got.Peaks.Peaks[i].Absorbance)
		assert.Equal(t, p.Wavelength, got.Peaks.Peaks[i].Wavelength)
	}
	assert.Equal(t, want.Degradation, got.Degradation)
	assert.Equal(t, want.AUC, got.AUC)
	assert.Equal(t, want.Kinetics.RateConstant, got.Kinetics.RateConstant)
	assert.Equal(t, want.Kinetics.RSquared, got.Kinetics.RSquared)
	require.Len(t, got.Kinetics.Points, 1)
	assert.Equal(t, 30, got.Kinetics.Points[0].Minutes)
	assert.Equal(t, want.Kinetics.Points[0].Value, got.Kinetics.Points[0].Value)
}

func TestWorkbookWriterOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "results.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0644))

	require.NoError(t, NewWorkbookWriter(nil).Write(sampleReport(), path))

	_, err := ReadWorkbook(path)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestWorkbookWriterRejectsIncompleteReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.xlsx")

	err := NewWorkbookWriter(nil).Write(&domain.Report{}, path)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientData)
	assert.NoFileExists(t, path)
}

func TestReadWorkbookRejectsForeignWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "other.xlsx")
	testutil.WriteWorkbook(t, path, "Sheet1", []string{"a", "b"}, [][]any{{1, 2}})

	_, err := ReadWorkbook(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrParsing)
}

func TestSheetLayout(t *testing.T) {
	assert.Equal(t, []string{"Time (min)", "-ln(C/C0)"}, Headers(SheetKinetics))
	assert.Equal(t, []string{"Condition", "Max Absorbance (Peak)", "Peak Wavelength (nm)"}, Headers(SheetPeaks))
	assert.Nil(t, Headers("Sheet1"))

	h := Headers(SheetAUC)
	h[0] = "changed"
	assert.Equal(t, "Condition", Headers(SheetAUC)[0])
}
