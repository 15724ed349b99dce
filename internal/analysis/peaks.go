package analysis

import (
	"fmt"

	apperrors "degradecli/internal/errors"
	"degradecli/pkg/contracts/domain"
)

// FindMaxPeaks returns the peak of every condition column, references
// included, in column order. On ties the first row attaining the maximum
// wins.
func FindMaxPeaks(ds *domain.Dataset) (*domain.PeakTable, error) {
	if ds == nil || len(ds.Conditions) == 0 {
		return nil, apperrors.NewMissingColumnError("dataset has no condition columns")
	}

	peaks := make([]domain.Peak, 0, len(ds.Conditions))
	for _, c := range ds.Conditions {
		if len(c.Absorbance) == 0 {
			return nil, apperrors.NewInsufficientDataError(
				fmt.Sprintf("condition %q has no samples", c.Name)).
				WithContext("condition", c.Name)
		}
		if len(c.Absorbance) != len(ds.Wavelengths) {
			return nil, apperrors.NewLengthMismatchError(
				fmt.Sprintf("condition %q absorbance rows", c.Name), len(ds.Wavelengths), len(c.Absorbance))
		}

		pos := argmax(c.Absorbance)
		peaks = append(peaks, domain.Peak{
			Condition:  c.Name,
			Absorbance: c.Absorbance[pos],
			Wavelength: ds.Wavelengths[pos],
			Row:        pos,
		})
	}
	return domain.NewPeakTable(peaks), nil
}

// argmax returns the index of the first maximum of a non-empty slice.
func argmax(values []float64) int {
	pos := 0
	for i := 1; i < len(values); i++ {
		if values[i] > values[pos] {
			pos = i
		}
	}
	return pos
}
