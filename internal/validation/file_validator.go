package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	apperrors "degradecli/internal/errors"
)

// SpreadsheetExtensions are the workbook formats excelize can open
var SpreadsheetExtensions = []string{".xlsx", ".xlsm", ".xltx", ".xltm"}

// FileValidator checks input and output paths before a run touches them
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger,
	}
}

// ValidateFile checks that path exists, is a regular file and is readable
func (v *FileValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("File does not exist", slog.String("file", path))
		return apperrors.NewStorageError(fmt.Sprintf("file %s does not exist", path), err).
			WithContext("path", path)
	}
	if err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to stat file %s", path), err).
			WithContext("path", path)
	}
	if info.IsDir() {
		v.logger.Error("Path is a directory, not a file", slog.String("path", path))
		return apperrors.NewAppValidationError(fmt.Sprintf("%s is a directory, not a file", path)).
			WithContext("path", path)
	}

	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("File is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError(fmt.Sprintf("file %s is not readable", path), err).
			WithContext("path", path)
	}
	file.Close()

	v.logger.Debug("File validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateSpreadsheet checks that path is a readable workbook rather than
// an Office lock file.
func (v *FileValidator) ValidateSpreadsheet(path string) error {
	if err := v.ValidateFile(path); err != nil {
		return err
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !slices.Contains(SpreadsheetExtensions, ext) {
		v.logger.Error("File is not a spreadsheet",
			slog.String("file", path),
			slog.String("extension", ext))
		return apperrors.NewAppValidationError(
			fmt.Sprintf("file %s is not a spreadsheet (extension: %s)", path, ext)).
			WithContext("path", path)
	}

	if strings.HasPrefix(filepath.Base(path), "~$") {
		v.logger.Warn("Rejecting temporary Excel file", slog.String("file", path))
		return apperrors.NewAppValidationError(fmt.Sprintf("file %s is a temporary Excel file", path)).
			WithContext("path", path)
	}
	return nil
}

// ValidateOutputFile checks that path carries the expected extension, does
// not name an existing directory, and that its nearest existing ancestor is a
// directory. Nothing is created.
func (v *FileValidator) ValidateOutputFile(path, ext string) error {
	if got := strings.ToLower(filepath.Ext(path)); got != ext {
		return apperrors.NewAppValidationError(
			fmt.Sprintf("output %s must have extension %s", path, ext)).
			WithContext("path", path)
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return apperrors.NewAppValidationError(fmt.Sprintf("output %s is a directory", path)).
			WithContext("path", path)
	}

	for dir := filepath.Dir(path); ; dir = filepath.Dir(dir) {
		info, err := os.Stat(dir)
		if err == nil {
			if !info.IsDir() {
				v.logger.Warn("Output parent is not a directory",
					slog.String("path", path), slog.String("parent", dir))
				return apperrors.NewAppValidationError(
					fmt.Sprintf("output %s: %s is not a directory", path, dir)).
					WithContext("path", path)
			}
			return nil
		}
		if parent := filepath.Dir(dir); parent == dir {
			return nil
		}
	}
}
