package domain

// Well-known condition labels in a degradation run.
const (
	// ConditionInitial is the untreated solution measured before adsorption
	ConditionInitial = "Initial Solution"
	// ConditionDark is the solution after dark adsorption, the 100% reference
	ConditionDark = "Dark"
	// DefaultWavelengthColumn is the header of the wavelength column
	DefaultWavelengthColumn = "Wavelength"
	// DefaultTimeMarker marks condition headers that carry an elapsed time
	DefaultTimeMarker = "min"
)

// Dataset is a UV-Vis spectral dataset: one absorbance series per condition,
// all sampled at the same ascending wavelengths.
type Dataset struct {
	Source      string      `json:"source,omitempty"`
	Wavelengths []float64   `json:"wavelengths" validate:"required,min=1"`
	Conditions  []Condition `json:"conditions" validate:"required,min=1,dive"`
}

// Condition is a named absorbance series measured under one experimental
// condition or at one time point.
type Condition struct {
	Name       string    `json:"name" validate:"required"`
	Absorbance []float64 `json:"absorbance"`
}

// Condition returns the condition with the given name.
func (d *Dataset) Condition(name string) (Condition, bool) {
	for _, c := range d.Conditions {
		if c.Name == name {
			return c, true
		}
	}
	return Condition{}, false
}

// ConditionNames returns condition names in column order.
func (d *Dataset) ConditionNames() []string {
	names := make([]string, len(d.Conditions))
	for i, c := range d.Conditions {
		names[i] = c.Name
	}
	return names
}

// Len returns the number of wavelength rows.
func (d *Dataset) Len() int {
	return len(d.Wavelengths)
}

// IsReference reports whether name is the initial or the dark condition.
// Reference conditions take part in peak and AUC tables but have no
// degradation percentage or kinetics point of their own.
func IsReference(name string) bool {
	return name == ConditionInitial || name == ConditionDark
}

// Peak is the maximum absorbance of a condition and where it occurs.
type Peak struct {
	Condition  string  `json:"condition"`
	Absorbance float64 `json:"absorbance"`
	Wavelength float64 `json:"wavelength"`
	Row        int     `json:"row"`
}

// PeakTable holds one peak per condition in dataset column order.
type PeakTable struct {
	Peaks []Peak `json:"peaks"`
	index map[string]int
}

// NewPeakTable builds a table from peaks, preserving their order.
func NewPeakTable(peaks []Peak) *PeakTable {
	t := &PeakTable{
		Peaks: peaks,
		index: make(map[string]int, len(peaks)),
	}
	for i, p := range peaks {
		if _, dup := t.index[p.Condition]; !dup {
			t.index[p.Condition] = i
		}
	}
	return t
}

// Get returns the peak for condition.
func (t *PeakTable) Get(condition string) (Peak, bool) {
	i, ok := t.index[condition]
	if !ok {
		return Peak{}, false
	}
	return t.Peaks[i], true
}

// Samples returns the peaks of the non-reference conditions in order.
func (t *PeakTable) Samples() []Peak {
	var out []Peak
	for _, p := range t.Peaks {
		if !IsReference(p.Condition) {
			out = append(out, p)
		}
	}
	return out
}

// Len returns the number of peaks.
func (t *PeakTable) Len() int {
	return len(t.Peaks)
}

// TimePoint binds an elapsed time to the condition column it was parsed from.
type TimePoint struct {
	Condition string `json:"condition" validate:"required"`
	Minutes   int    `json:"minutes" validate:"min=0"`
}
