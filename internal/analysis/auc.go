package analysis

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/integrate"

	apperrors "degradecli/internal/errors"
	"degradecli/pkg/contracts/domain"
)

// CalculateAUC integrates every condition's absorbance over wavelength.
func CalculateAUC(ds *domain.Dataset) ([]domain.AUCRecord, error) {
	if ds == nil || len(ds.Conditions) == 0 {
		return nil, apperrors.NewMissingColumnError("dataset has no condition columns")
	}
	if err := validateWavelengths(ds.Wavelengths); err != nil {
		return nil, err
	}

	records := make([]domain.AUCRecord, 0, len(ds.Conditions))
	for _, c := range ds.Conditions {
		if len(c.Absorbance) != len(ds.Wavelengths) {
			return nil, apperrors.NewLengthMismatchError(
				fmt.Sprintf("condition %q absorbance rows", c.Name), len(ds.Wavelengths), len(c.Absorbance))
		}
		area, err := Simpson(ds.Wavelengths, c.Absorbance)
		if err != nil {
			var appErr *apperrors.AppError
			if errors.As(err, &appErr) {
				appErr.WithContext("condition", c.Name)
			}
			return nil, err
		}
		records = append(records, domain.AUCRecord{
			Condition: c.Name,
			Area:      area,
		})
	}
	return records, nil
}

// Simpson integrates samples f taken at strictly increasing, possibly
// unevenly spaced, abscissae x.
//
// With an even number of intervals this is composite Simpson's 1/3 rule for
// irregular spacing. With an odd number, Simpson covers the first n-2
// intervals and the last interval gets the Cartwright correction: the
// parabola through the final three samples integrated over the last interval.
// Two samples degenerate to the trapezoidal rule. Constants integrate
// exactly under every case.
func Simpson(x, f []float64) (float64, error) {
	if len(x) != len(f) {
		return 0, apperrors.NewLengthMismatchError("quadrature samples", len(x), len(f))
	}
	if len(x) < 2 {
		return 0, apperrors.NewInsufficientDataError(
			fmt.Sprintf("integration needs at least 2 samples, got %d", len(x)))
	}
	if err := validateWavelengths(x); err != nil {
		return 0, err
	}

	var area float64
	if len(x) == 2 {
		area = integrate.Trapezoidal(x, f)
	} else {
		area = integrate.Simpsons(x, f)
	}
	if !isFinite(area) {
		return 0, apperrors.NewInvalidValueError("integral is not finite")
	}
	return area, nil
}
