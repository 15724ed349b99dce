package domain

import "math"

// DegradationRecord is the percentage of the dark-adsorbed amount removed
// at one condition.
type DegradationRecord struct {
	Condition string  `json:"condition"`
	Percent   float64 `json:"percent"`
}

// KineticsPoint is one (time, -ln(C/C0)) pair of the first-order fit.
type KineticsPoint struct {
	Condition string  `json:"condition"`
	Minutes   int     `json:"minutes"`
	Value     float64 `json:"value"`
}

// KineticsFit is an ordinary least-squares fit of -ln(C/C0) against time.
type KineticsFit struct {
	Points       []KineticsPoint `json:"points"`
	RateConstant float64         `json:"rate_constant"`
	Intercept    float64         `json:"intercept"`
	RSquared     float64         `json:"r_squared"`
}

// HalfLife returns ln(2)/k in minutes, and false when the rate constant is
// not positive.
func (k *KineticsFit) HalfLife() (float64, bool) {
	if k.RateConstant <= 0 {
		return 0, false
	}
	return math.Ln2 / k.RateConstant, true
}

// AUCRecord is the integrated absorbance of one condition over wavelength.
type AUCRecord struct {
	Condition string  `json:"condition"`
	Area      float64 `json:"area"`
}

// Report collects every result table of one analysis run.
type Report struct {
	Peaks       *PeakTable          `json:"peaks"`
	Degradation []DegradationRecord `json:"degradation"`
	Kinetics    *KineticsFit        `json:"kinetics"`
	AUC         []AUCRecord         `json:"auc"`
}
