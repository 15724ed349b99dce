package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "degradecli/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
	Analysis  AnalysisConfig  `yaml:"analysis" envconfig:"ANALYSIS"`
	Plot      PlotConfig      `yaml:"plot" envconfig:"PLOT"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// PathsConfig contains input and output file locations
type PathsConfig struct {
	Input    string `yaml:"input" envconfig:"INPUT" validate:"required"`
	Workbook string `yaml:"workbook" envconfig:"WORKBOOK" validate:"required,nefield=Input"`
	Plot     string `yaml:"plot" envconfig:"PLOT" validate:"required,nefield=Input,nefield=Workbook"`
	// Metrics is an optional node-exporter textfile
	Metrics string `yaml:"metrics" envconfig:"METRICS"`
}

// AnalysisConfig describes the spectra workbook layout
type AnalysisConfig struct {
	Sheet            string `yaml:"sheet" envconfig:"SHEET"`
	WavelengthColumn string `yaml:"wavelength_column" envconfig:"WAVELENGTH_COLUMN" validate:"required"`
	TimeMarker       string `yaml:"time_marker" envconfig:"TIME_MARKER" validate:"required"`
}

// PlotConfig contains spectra chart settings
type PlotConfig struct {
	Width  int    `yaml:"width" envconfig:"WIDTH" validate:"min=200,max=10000"`
	Height int    `yaml:"height" envconfig:"HEIGHT" validate:"min=200,max=10000"`
	Title  string `yaml:"title" envconfig:"TITLE"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output console"`
}

// TelemetryConfig contains OpenTelemetry configuration
type TelemetryConfig struct {
	Environment    string  `yaml:"environment" envconfig:"ENVIRONMENT"`
	TraceExporter  string  `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" validate:"oneof=none stdout"`
	MetricExporter string  `yaml:"metric_exporter" envconfig:"METRIC_EXPORTER" validate:"oneof=none prometheus"`
	SampleRatio    float64 `yaml:"sample_ratio" envconfig:"SAMPLE_RATIO" validate:"gte=0,lte=1"`
}

// Overrides carries command-line values; empty fields leave the loaded
// configuration untouched.
type Overrides struct {
	Input    string
	Workbook string
	Plot     string
	Metrics  string
	LogLevel string
}

// LoadOptions controls where Load looks for configuration
type LoadOptions struct {
	// ConfigFile is an explicit YAML file; it must exist when set
	ConfigFile string

	// BaseDir resolves relative paths; empty means the working directory
	BaseDir string

	Overrides Overrides
}

// Load builds the configuration from defaults, the YAML file, the
// environment and opts.Overrides, in that order of precedence.
func Load(opts LoadOptions) (*Config, error) {
	baseDir := opts.BaseDir
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, apperrors.NewConfigError("failed to get working directory", err)
		}
		baseDir = wd
	}

	cfg := Default()

	configFile := opts.ConfigFile
	if configFile == "" {
		configFile = findConfigFile(baseDir)
	} else {
		configFile = resolvePath(baseDir, configFile)
	}
	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, err
		}
	}

	// Fields carry no default tags, so unset variables leave file values alone
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	cfg.apply(opts.Overrides)
	cfg.resolvePaths(baseDir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFromFile overlays a YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return apperrors.NewConfigError("failed to read config file", err).
			WithContext("path", filePath)
	}

	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return apperrors.NewConfigError(
			fmt.Sprintf("failed to parse config file %s", filepath.Base(filePath)), err).
			WithContext("path", filePath)
	}
	return nil
}

func (c *Config) apply(o Overrides) {
	if o.Input != "" {
		c.Paths.Input = o.Input
	}
	if o.Workbook != "" {
		c.Paths.Workbook = o.Workbook
	}
	if o.Plot != "" {
		c.Paths.Plot = o.Plot
	}
	if o.Metrics != "" {
		c.Paths.Metrics = o.Metrics
	}
	if o.LogLevel != "" {
		c.Logging.Level = o.LogLevel
	}
}

// Validate checks c against its struct tags
func (c *Config) Validate() error {
	c.Logging.Level = strings.ToLower(c.Logging.Level)
	c.Logging.Output = strings.ToLower(c.Logging.Output)

	err := validator.New(validator.WithRequiredStructEnabled()).Struct(c)
	if err == nil {
		return nil
	}

	var fields []string
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
		}
	}
	return apperrors.NewConfigError("config validation failed: "+strings.Join(fields, ", "), err).
		WithContext("fields", fields)
}

// Default returns default configuration. Paths.Input has no default and
// must be supplied.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Workbook: DefaultWorkbookFile,
			Plot:     DefaultPlotFile,
		},
		Analysis: AnalysisConfig{
			WavelengthColumn: DefaultWavelengthColumn,
			TimeMarker:       DefaultTimeMarker,
		},
		Plot: PlotConfig{
			Width:  DefaultPlotWidth,
			Height: DefaultPlotHeight,
			Title:  DefaultPlotTitle,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "console",
			FilePath: DefaultLogFile,
		},
		Telemetry: TelemetryConfig{
			Environment:    DefaultEnvironment,
			TraceExporter:  "none",
			MetricExporter: "prometheus",
			SampleRatio:    1.0,
		},
	}
}
