// Package config loads degradecli configuration.
//
// # Configuration Sources
//
// Later sources override earlier ones:
//
//	1. Default values
//	2. YAML file (--config, or degradecli.yaml / configs/degradecli.yaml)
//	3. Environment variables
//	4. Command-line flags (Overrides)
//
// # Environment Variables
//
// Variables follow the DEGRADE_<SECTION>_<FIELD> pattern:
//
//	DEGRADE_PATHS_INPUT=Book2.xlsx
//	DEGRADE_PATHS_WORKBOOK=out/degradation_results.xlsx
//	DEGRADE_ANALYSIS_WAVELENGTH_COLUMN=nm
//	DEGRADE_LOGGING_LEVEL=debug
//	DEGRADE_TELEMETRY_TRACE_EXPORTER=stdout
//
// # Validation
//
// Load validates the merged result with go-playground/validator struct tags
// and returns a CONFIG AppError naming every failing field. Relative paths
// are resolved against the working directory (or LoadOptions.BaseDir).
package config
