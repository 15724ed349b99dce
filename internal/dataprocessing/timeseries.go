package dataprocessing

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "degradecli/internal/errors"
	"degradecli/pkg/contracts/domain"
)

// ParseTimeInterval extracts whole minutes from a time-point column header.
// The first token must be an unsigned integer optionally followed by a unit
// suffix ("30", "30min", "30Y"); anything else is InvalidValue.
func ParseTimeInterval(name string) (int, error) {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return 0, apperrors.NewInvalidValueError("empty time-point header")
	}

	isDigit := func(r rune) bool { return r >= '0' && r <= '9' }
	digits := strings.TrimRightFunc(fields[0], func(r rune) bool { return !isDigit(r) })
	if digits == "" || strings.IndexFunc(digits, func(r rune) bool { return !isDigit(r) }) >= 0 {
		return 0, apperrors.NewInvalidValueError(
			fmt.Sprintf("time-point header %q does not start with whole minutes", name)).
			WithContext("condition", name)
	}

	minutes, err := strconv.Atoi(digits)
	if err != nil {
		return 0, apperrors.NewAppError(apperrors.ErrTypeInvalidValue,
			fmt.Sprintf("time-point header %q is out of range", name), err)
	}
	return minutes, nil
}

// TimeSeries returns a TimePoint for every non-reference condition whose
// name contains marker, in column order. An empty marker means "min".
func TimeSeries(ds *domain.Dataset, marker string) ([]domain.TimePoint, error) {
	if marker == "" {
		marker = domain.DefaultTimeMarker
	}

	var series []domain.TimePoint
	for _, c := range ds.Conditions {
		if domain.IsReference(c.Name) || !strings.Contains(c.Name, marker) {
			continue
		}
		minutes, err := ParseTimeInterval(c.Name)
		if err != nil {
			return nil, err
		}
		series = append(series, domain.TimePoint{
			Condition: c.Name,
			Minutes:   minutes,
		})
	}
	return series, nil
}
