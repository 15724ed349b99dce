package config

// Application constants
const (
	AppName = "degradecli"

	// EnvPrefix namespaces every environment variable, e.g. DEGRADE_PATHS_INPUT
	EnvPrefix = "DEGRADE"

	// Config file discovery
	DefaultConfigFile = "degradecli.yaml"

	// Outputs, relative to the working directory
	DefaultWorkbookFile = "degradation_results.xlsx"
	DefaultPlotFile     = "spectra_comparison.png"
	DefaultLogFile      = "logs/degradecli.log"

	// Spectra workbook layout
	DefaultWavelengthColumn = "Wavelength"
	DefaultTimeMarker       = "min"

	// Plot
	DefaultPlotWidth  = 1000
	DefaultPlotHeight = 600
	DefaultPlotTitle  = "UV-Vis Absorbance Spectra"

	// Telemetry
	DefaultEnvironment = "development"
)
