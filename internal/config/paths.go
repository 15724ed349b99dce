package config

import (
	"os"
	"path/filepath"
)

// configLocations are searched in order when no config file is given
var configLocations = []string{
	DefaultConfigFile,
	filepath.Join("configs", DefaultConfigFile),
}

// findConfigFile returns the first existing default config file, or ""
func findConfigFile(baseDir string) string {
	for _, location := range configLocations {
		path := filepath.Join(baseDir, location)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// resolvePath makes p absolute against baseDir; empty stays empty
func resolvePath(baseDir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Clean(filepath.Join(baseDir, p))
}

// resolvePaths rewrites every relative path of c against baseDir
func (c *Config) resolvePaths(baseDir string) {
	c.Paths.Input = resolvePath(baseDir, c.Paths.Input)
	c.Paths.Workbook = resolvePath(baseDir, c.Paths.Workbook)
	c.Paths.Plot = resolvePath(baseDir, c.Paths.Plot)
	c.Paths.Metrics = resolvePath(baseDir, c.Paths.Metrics)
	c.Logging.FilePath = resolvePath(baseDir, c.Logging.FilePath)
}
