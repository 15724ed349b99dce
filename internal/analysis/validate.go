package analysis

import (
	"fmt"
	"math"
	"sync"

	"github.com/go-playground/validator/v10"

	apperrors "degradecli/internal/errors"
	"degradecli/pkg/contracts/domain"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateDataset checks the invariants every computation relies on: at
// least one condition, at least one row, strictly ascending finite
// wavelengths, and one absorbance per wavelength in every condition.
func ValidateDataset(ds *domain.Dataset) error {
	if ds == nil {
		return apperrors.NewInsufficientDataError("dataset is nil")
	}
	if len(ds.Conditions) == 0 {
		return apperrors.NewMissingColumnError("dataset has no condition columns")
	}
	if len(ds.Wavelengths) == 0 {
		return apperrors.NewInsufficientDataError("dataset has no wavelength rows")
	}

	if err := structValidator().Struct(ds); err != nil {
		return apperrors.NewAppError(apperrors.ErrTypeValidation, "dataset failed validation", err)
	}

	if err := validateWavelengths(ds.Wavelengths); err != nil {
		return err
	}

	seen := make(map[string]bool, len(ds.Conditions))
	for _, c := range ds.Conditions {
		if seen[c.Name] {
			return apperrors.NewAppValidationError(fmt.Sprintf("duplicate condition column %q", c.Name)).
				WithContext("condition", c.Name)
		}
		seen[c.Name] = true

		if len(c.Absorbance) != len(ds.Wavelengths) {
			return apperrors.NewLengthMismatchError(
				fmt.Sprintf("condition %q absorbance rows", c.Name), len(ds.Wavelengths), len(c.Absorbance)).
				WithContext("condition", c.Name)
		}
		for i, v := range c.Absorbance {
			if !isFinite(v) {
				return apperrors.NewInvalidValueError(
					fmt.Sprintf("condition %q has non-finite absorbance at row %d", c.Name, i)).
					WithContext("condition", c.Name).
					WithContext("row", i)
			}
		}
	}
	return nil
}

// validateWavelengths requires strictly increasing finite values.
func validateWavelengths(w []float64) error {
	for i, v := range w {
		if !isFinite(v) {
			return apperrors.NewInvalidValueError(fmt.Sprintf("non-finite wavelength at row %d", i)).
				WithContext("row", i)
		}
		if i > 0 && v <= w[i-1] {
			return apperrors.NewInvalidValueError(
				fmt.Sprintf("wavelengths must be strictly increasing: row %d (%g) follows %g", i, v, w[i-1])).
				WithContext("row", i)
		}
	}
	return nil
}

// ValidateTimeSeries checks that time points are non-negative and name
// distinct conditions.
func ValidateTimeSeries(series []domain.TimePoint) error {
	seen := make(map[string]bool, len(series))
	for i := range series {
		if err := structValidator().Struct(series[i]); err != nil {
			return apperrors.NewAppError(apperrors.ErrTypeInvalidValue,
				fmt.Sprintf("time point %d is invalid", i), err)
		}
		if seen[series[i].Condition] {
			return apperrors.NewAppError(apperrors.ErrTypeLengthMismatch,
				fmt.Sprintf("condition %q appears twice in the time series", series[i].Condition), nil).
				WithContext("condition", series[i].Condition)
		}
		seen[series[i].Condition] = true
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
