package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	apperrors "degradecli/internal/errors"
	"degradecli/pkg/contracts/domain"
)

// FitKinetics fits the first-order model -ln(C/C0) = k*t + b, with C0 the
// dark peak and C the peak of each time point's condition.
//
// Every non-reference peak must be covered by exactly one time point. Time
// points are matched to peaks by condition name, never by position, so a
// series that names an unknown or reference condition is a LengthMismatch.
func FitKinetics(peaks *domain.PeakTable, series []domain.TimePoint) (*domain.KineticsFit, error) {
	dark, err := darkPeak(peaks)
	if err != nil {
		return nil, err
	}

	samples := peaks.Samples()
	if len(series) != len(samples) {
		return nil, apperrors.NewLengthMismatchError("time points vs sample peaks", len(samples), len(series))
	}
	if err := ValidateTimeSeries(series); err != nil {
		return nil, err
	}
	if dark.Absorbance <= 0 || !isFinite(dark.Absorbance) {
		return nil, apperrors.NewInvalidValueError(
			fmt.Sprintf("dark peak must be positive for ln(C/C0), got %g", dark.Absorbance)).
			WithContext("condition", dark.Condition)
	}

	points := make([]domain.KineticsPoint, 0, len(series))
	times := make([]float64, 0, len(series))
	values := make([]float64, 0, len(series))
	for _, tp := range series {
		p, ok := peaks.Get(tp.Condition)
		if !ok || domain.IsReference(tp.Condition) {
			return nil, apperrors.NewAppError(apperrors.ErrTypeLengthMismatch,
				fmt.Sprintf("time point %q has no matching sample peak", tp.Condition), nil).
				WithContext("condition", tp.Condition)
		}
		if p.Absorbance <= 0 {
			return nil, apperrors.NewInvalidValueError(
				fmt.Sprintf("peak of %q must be positive for ln(C/C0), got %g", p.Condition, p.Absorbance)).
				WithContext("condition", p.Condition)
		}

		y := -math.Log(p.Absorbance / dark.Absorbance)
		if !isFinite(y) {
			return nil, apperrors.NewInvalidValueError(
				fmt.Sprintf("-ln(C/C0) of %q is not finite", p.Condition)).
				WithContext("condition", p.Condition)
		}

		points = append(points, domain.KineticsPoint{
			Condition: tp.Condition,
			Minutes:   tp.Minutes,
			Value:     y,
		})
		times = append(times, float64(tp.Minutes))
		values = append(values, y)
	}

	intercept, slope, r2, err := linearFit(times, values)
	if err != nil {
		return nil, err
	}

	return &domain.KineticsFit{
		Points:       points,
		RateConstant: slope,
		Intercept:    intercept,
		RSquared:     r2,
	}, nil
}

// linearFit is an unweighted least-squares fit of y = alpha + beta*x.
// R² is 0 when y has no variance, as the fit explains nothing then.
func linearFit(x, y []float64) (alpha, beta, r2 float64, err error) {
	if len(x) < 2 {
		return 0, 0, 0, apperrors.NewInsufficientDataError(
			fmt.Sprintf("linear fit needs at least 2 points, got %d", len(x)))
	}
	if floats.Max(x) == floats.Min(x) {
		return 0, 0, 0, apperrors.NewInsufficientDataError(
			"linear fit needs at least 2 distinct time points")
	}

	alpha, beta = stat.LinearRegression(x, y, nil, false)
	if stat.Variance(y, nil) == 0 {
		r2 = 0
	} else {
		r2 = stat.RSquared(x, y, nil, alpha, beta)
	}

	if !isFinite(alpha) || !isFinite(beta) || !isFinite(r2) {
		return 0, 0, 0, apperrors.NewInvalidValueError("linear fit produced a non-finite result")
	}
	return alpha, beta, r2, nil
}
