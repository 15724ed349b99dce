package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "degradecli/internal/errors"
	"degradecli/internal/shared/testutil"
	"degradecli/pkg/contracts/domain"
)

func samplePeaks(dark float64, samples map[string]float64, order ...string) *domain.PeakTable {
	peaks := []domain.Peak{
		{Condition: domain.ConditionInitial, Absorbance: 1.2 * dark},
		{Condition: domain.ConditionDark, Absorbance: dark},
	}
	for _, name := range order {
		peaks = append(peaks, domain.Peak{Condition: name, Absorbance: samples[name]})
	}
	return domain.NewPeakTable(peaks)
}

func TestFitKinetics_ThreePoints(t *testing.T) {
	peaks := samplePeaks(1.0, map[string]float64{
		"10 min": 0.8, "20 min": 0.6, "30 min": 0.4,
	}, "10 min", "20 min", "30 min")
	series := testutil.TimePoints([]int{10, 20, 30})

	fit, err := FitKinetics(peaks, series)
	require.NoError(t, err)

	require.Len(t, fit.Points, 3)
	values := []float64{fit.Points[0].Value, fit.Points[1].Value, fit.Points[2].Value}
	testutil.RequireSliceNearlyEqual(t, values,
		[]float64{-math.Log(0.8), -math.Log(0.6), -math.Log(0.4)}, 1e-15)
	testutil.RequireSliceNearlyEqual(t, values, []float64{0.223, 0.511, 0.916}, 1e-3)

	assert.Greater(t, fit.RateConstant, 0.0)
	assert.InDelta(t, 0.0346573590, fit.RateConstant, 1e-9)
	assert.InDelta(t, -0.1430605449, fit.Intercept, 1e-9)
	assert.InDelta(t, 0.9904669190, fit.RSquared, 1e-9)

	assert.Equal(t, "20 min", fit.Points[1].Condition)
	assert.Equal(t, 20, fit.Points[1].Minutes)
}

func TestFitKinetics_RecoversFirstOrderRate(t *testing.T) {
	tests := []struct {
		name    string
		dark    float64
		k       float64
		minutes []int
	}{
		{name: "slow", dark: 0.8, k: 0.005, minutes: []int{15, 30, 45, 60, 90, 120}},
		{name: "fast", dark: 1.6, k: 0.08, minutes: []int{5, 10, 20, 40}},
		{name: "two points", dark: 0.5, k: 0.02, minutes: []int{30, 60}},
		{name: "unsorted times", dark: 1.0, k: 0.03, minutes: []int{60, 10, 30}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := testutil.SyntheticDecay(tt.dark, tt.k, tt.minutes)
			peaks, err := FindMaxPeaks(ds)
			require.NoError(t, err)

			fit, err := FitKinetics(peaks, testutil.TimePoints(tt.minutes))
			require.NoError(t, err)

			assert.InDelta(t, tt.k, fit.RateConstant, 1e-6)
			assert.InDelta(t, 0.0, fit.Intercept, 1e-6)
			assert.InDelta(t, 1.0, fit.RSquared, 1e-6)
		})
	}
}

func TestFitKinetics_BindsByConditionName(t *testing.T) {
	peaks := samplePeaks(1.0, map[string]float64{
		"10 min": 0.8, "20 min": 0.6,
	}, "10 min", "20 min")

	// Series listed in the opposite order of the peak columns.
	series := []domain.TimePoint{
		{Condition: "20 min", Minutes: 20},
		{Condition: "10 min", Minutes: 10},
	}

	fit, err := FitKinetics(peaks, series)
	require.NoError(t, err)
	assert.Equal(t, "20 min", fit.Points[0].Condition)
	assert.InDelta(t, -math.Log(0.6), fit.Points[0].Value, 1e-15)
	assert.InDelta(t, -math.Log(0.8), fit.Points[1].Value, 1e-15)
}

func TestFitKinetics_ConstantResponse(t *testing.T) {
	peaks := samplePeaks(1.0, map[string]float64{
		"10 min": 0.5, "20 min": 0.5,
	}, "10 min", "20 min")

	fit, err := FitKinetics(peaks, testutil.TimePoints([]int{10, 20}))
	require.NoError(t, err)
	assert.Equal(t, 0.0, fit.RateConstant)
	assert.Equal(t, 0.0, fit.RSquared)
	testutil.RequireFinite(t, fit.RateConstant, fit.Intercept, fit.RSquared)
}

func TestFitKinetics_Errors(t *testing.T) {
	threePeaks := samplePeaks(1.0, map[string]float64{
		"10 min": 0.8, "20 min": 0.6, "30 min": 0.4,
	}, "10 min", "20 min", "30 min")

	tests := []struct {
		name    string
		peaks   *domain.PeakTable
		series  []domain.TimePoint
		wantErr error
	}{
		{
			name: "no dark baseline",
			peaks: domain.NewPeakTable([]domain.Peak{
				{Condition: "10 min", Absorbance: 0.5},
			}),
			series:  testutil.TimePoints([]int{10}),
			wantErr: apperrors.ErrMissingBaseline,
		},
		{
			name:    "fewer time points than peaks",
			peaks:   threePeaks,
			series:  testutil.TimePoints([]int{10, 20}),
			wantErr: apperrors.ErrLengthMismatch,
		},
		{
			name:    "more time points than peaks",
			peaks:   threePeaks,
			series:  testutil.TimePoints([]int{10, 20, 30, 40}),
			wantErr: apperrors.ErrLengthMismatch,
		},
		{
			name:  "time point names an unknown condition",
			peaks: threePeaks,
			series: []domain.TimePoint{
				{Condition: "10 min", Minutes: 10},
				{Condition: "20 min", Minutes: 20},
				{Condition: "45 min", Minutes: 45},
			},
			wantErr: apperrors.ErrLengthMismatch,
		},
		{
			name:  "time point names the baseline",
			peaks: threePeaks,
			series: []domain.TimePoint{
				{Condition: "10 min", Minutes: 10},
				{Condition: "20 min", Minutes: 20},
				{Condition: domain.ConditionDark, Minutes: 0},
			},
			wantErr: apperrors.ErrLengthMismatch,
		},
		{
			name:  "duplicate condition",
			peaks: threePeaks,
			series: []domain.TimePoint{
				{Condition: "10 min", Minutes: 10},
				{Condition: "10 min", Minutes: 10},
				{Condition: "30 min", Minutes: 30},
			},
			wantErr: apperrors.ErrLengthMismatch,
		},
		{
			name: "zero dark peak",
			peaks: domain.NewPeakTable([]domain.Peak{
				{Condition: domain.ConditionDark, Absorbance: 0},
				{Condition: "10 min", Absorbance: 0.5},
				{Condition: "20 min", Absorbance: 0.4},
			}),
			series:  testutil.TimePoints([]int{10, 20}),
			wantErr: apperrors.ErrInvalidValue,
		},
		{
			name: "negative dark peak",
			peaks: domain.NewPeakTable([]domain.Peak{
				{Condition: domain.ConditionDark, Absorbance: -0.2},
				{Condition: "10 min", Absorbance: 0.5},
				{Condition: "20 min", Absorbance: 0.4},
			}),
			series:  testutil.TimePoints([]int{10, 20}),
			wantErr: apperrors.ErrInvalidValue,
		},
		{
			name: "zero sample peak",
			peaks: samplePeaks(1.0, map[string]float64{
				"10 min": 0.5, "20 min": 0,
			}, "10 min", "20 min"),
			series:  testutil.TimePoints([]int{10, 20}),
			wantErr: apperrors.ErrInvalidValue,
		},
		{
			name: "negative time",
			peaks: samplePeaks(1.0, map[string]float64{
				"10 min": 0.5, "20 min": 0.4,
			}, "10 min", "20 min"),
			series: []domain.TimePoint{
				{Condition: "10 min", Minutes: -10},
				{Condition: "20 min", Minutes: 20},
			},
			wantErr: apperrors.ErrInvalidValue,
		},
		{
			name:    "no time points",
			peaks:   samplePeaks(1.0, nil),
			series:  nil,
			wantErr: apperrors.ErrInsufficientData,
		},
		{
			name: "single time point",
			peaks: samplePeaks(1.0, map[string]float64{
				"10 min": 0.5,
			}, "10 min"),
			series:  testutil.TimePoints([]int{10}),
			wantErr: apperrors.ErrInsufficientData,
		},
		{
			name: "identical times",
			peaks: samplePeaks(1.0, map[string]float64{
				"30 min": 0.5, "30 min (repeat)": 0.45,
			}, "30 min", "30 min (repeat)"),
			series: []domain.TimePoint{
				{Condition: "30 min", Minutes: 30},
				{Condition: "30 min (repeat)", Minutes: 30},
			},
			wantErr: apperrors.ErrInsufficientData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fit, err := FitKinetics(tt.peaks, tt.series)
			require.Error(t, err)
			assert.Nil(t, fit)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}
