package analysis

import (
	"fmt"

	apperrors "degradecli/internal/errors"
	"degradecli/pkg/contracts/domain"
)

// DegradationPercentages returns (dark - peak) / dark * 100 for every
// non-reference condition, in peak table order.
func DegradationPercentages(peaks *domain.PeakTable) ([]domain.DegradationRecord, error) {
	dark, err := darkPeak(peaks)
	if err != nil {
		return nil, err
	}
	if dark.Absorbance == 0 {
		return nil, apperrors.NewDivisionByZeroError("dark peak absorbance is zero").
			WithContext("condition", dark.Condition)
	}

	samples := peaks.Samples()
	records := make([]domain.DegradationRecord, 0, len(samples))
	for _, p := range samples {
		pct := (dark.Absorbance - p.Absorbance) / dark.Absorbance * 100
		if !isFinite(pct) {
			return nil, apperrors.NewInvalidValueError(
				fmt.Sprintf("degradation of %q is not finite", p.Condition)).
				WithContext("condition", p.Condition)
		}
		records = append(records, domain.DegradationRecord{
			Condition: p.Condition,
			Percent:   pct,
		})
	}
	return records, nil
}

func darkPeak(peaks *domain.PeakTable) (domain.Peak, error) {
	if peaks == nil {
		return domain.Peak{}, apperrors.NewMissingBaselineError(domain.ConditionDark)
	}
	dark, ok := peaks.Get(domain.ConditionDark)
	if !ok {
		return domain.Peak{}, apperrors.NewMissingBaselineError(domain.ConditionDark)
	}
	return dark, nil
}
