package exporter

// Sheet names of the results workbook, in write order.
const (
	SheetDegradation     = "Degradation Percentages"
	SheetKinetics        = "Kinetics Data"
	SheetPeaks           = "Peak Wavelengths"
	SheetAUC             = "AUC Data"
	SheetKineticsSummary = "Kinetics Summary"
)

// sheetLayout describes one sheet of the results workbook
type sheetLayout struct {
	name    string
	headers []string
	width   float64
}

var layouts = []sheetLayout{
	{name: SheetDegradation, headers: []string{"Condition", "Degradation (%)"}, width: 22},
	{name: SheetKinetics, headers: []string{"Time (min)", "-ln(C/C0)"}, width: 14},
	{name: SheetPeaks, headers: []string{"Condition", "Max Absorbance (Peak)", "Peak Wavelength (nm)"}, width: 24},
	{name: SheetAUC, headers: []string{"Condition", "Area Under Curve (AUC)"}, width: 24},
	{name: SheetKineticsSummary, headers: []string{"Rate Constant (k)", "R-squared"}, width: 18},
}

// SheetNames returns the results workbook sheets in write order
func SheetNames() []string {
	names := make([]string, len(layouts))
	for i, l := range layouts {
		names[i] = l.name
	}
	return names
}

// Headers returns the header row of the named sheet, or nil when the sheet
// is not part of the results workbook.
func Headers(sheet string) []string {
	for _, l := range layouts {
		if l.name == sheet {
			return append([]string(nil), l.headers...)
		}
	}
	return nil
}
