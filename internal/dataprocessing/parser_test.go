package dataprocessing

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "degradecli/internal/errors"
	"degradecli/internal/shared/testutil"
	"degradecli/pkg/contracts/domain"
)

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spectra.xlsx")
	testutil.WriteWorkbook(t, path, "Data",
		[]string{"Wavelength", "Initial Solution", "Dark", "30 min", "60 min"},
		[][]any{
			{200, 0.9, 0.7, 0.5, 0.4},
			{202, 1.0, 0.8, 0.6, 0.45},
			{204, "0.95", 0.75, 0.55, 0.42},
		})

	ds, err := ParseFile(path, DefaultParseOptions())
	require.NoError(t, err)

	assert.Equal(t, path, ds.Source)
	assert.Equal(t, []float64{200, 202, 204}, ds.Wavelengths)
	assert.Equal(t, []string{"Initial Solution", "Dark", "30 min", "60 min"}, ds.ConditionNames())

	dark, ok := ds.Condition(domain.ConditionDark)
	require.True(t, ok)
	assert.Equal(t, []float64{0.7, 0.8, 0.75}, dark.Absorbance)

	initial, ok := ds.Condition(domain.ConditionInitial)
	require.True(t, ok)
	assert.Equal(t, []float64{0.9, 1.0, 0.95}, initial.Absorbance)
}

func TestParseFileRoundTripsSyntheticDataset(t *testing.T) {
	want := testutil.SyntheticDecay(0.8, 0.02, []int{15, 30, 60})
	path := testutil.WriteDatasetWorkbook(t, t.TempDir(), want)

	got, err := ParseFile(path, ParseOptions{})
	require.NoError(t, err)

	assert.Equal(t, want.Wavelengths, got.Wavelengths)
	require.Equal(t, want.ConditionNames(), got.ConditionNames())
	for i := range want.Conditions {
		testutil.RequireSliceNearlyEqual(t, got.Conditions[i].Absorbance, want.Conditions[i].Absorbance, 1e-12)
	}
}

func TestParseFileOptions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spectra.xlsx")
	testutil.WriteWorkbook(t, path, "Scan",
		[]string{"nm", "Dark", "10 min"},
		[][]any{{250, 0.5, 0.3}, {251, 0.6, 0.35}})

	t.Run("custom column and sheet", func(t *testing.T) {
		ds, err := ParseFile(path, ParseOptions{Sheet: "Scan", WavelengthColumn: "nm"})
		require.NoError(t, err)
		assert.Equal(t, []float64{250, 251}, ds.Wavelengths)
		assert.Equal(t, []string{"Dark", "10 min"}, ds.ConditionNames())
	})

	t.Run("missing wavelength column", func(t *testing.T) {
		_, err := ParseFile(path, DefaultParseOptions())
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrMissingColumn)
	})

	t.Run("unknown sheet", func(t *testing.T) {
		_, err := ParseFile(path, ParseOptions{Sheet: "Nope", WavelengthColumn: "nm"})
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrParsing)
	})
}

func TestParseFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		rows    [][]any
		wantErr error
	}{
		{
			name:    "only wavelength column",
			headers: []string{"Wavelength"},
			rows:    [][]any{{200}},
			wantErr: apperrors.ErrMissingColumn,
		},
		{
			name:    "non-numeric absorbance",
			headers: []string{"Wavelength", "Dark"},
			rows:    [][]any{{200, "n/a"}},
			wantErr: apperrors.ErrParsing,
		},
		{
			name:    "missing cell",
			headers: []string{"Wavelength", "Dark", "30 min"},
			rows:    [][]any{{200, 0.5}},
			wantErr: apperrors.ErrParsing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.xlsx")
			testutil.WriteWorkbook(t, path, "Sheet1", tt.headers, tt.rows)

			_, err := ParseFile(path, DefaultParseOptions())
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseFileMissingFile(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "absent.xlsx"), DefaultParseOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrParsing)
}

func TestParseRowsSkipsBlankRows(t *testing.T) {
	rows := [][]string{
		{"Wavelength", "Dark", "", "5 min"},
		{"200", "0.5", "", "0.4"},
		{},
		{" ", ""},
		{"201", "0.6", "", "1,0"},
	}

	ds, err := parseRows("Sheet1", rows, "wavelength")
	require.NoError(t, err)
	assert.Equal(t, []float64{200, 201}, ds.Wavelengths)
	assert.Equal(t, []string{"Dark", "5 min"}, ds.ConditionNames())
	assert.Equal(t, []float64{0.4, 10}, ds.Conditions[1].Absorbance)
}

func TestParseCellReportsLocation(t *testing.T) {
	_, err := parseCell("Sheet1", []string{"200", "abc"}, 4, 1)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "B5", appErr.Context["cell"])
	assert.Contains(t, appErr.Error(), "Sheet1!B5")
}
