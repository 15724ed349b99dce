package exporter

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	apperrors "degradecli/internal/errors"
)

// StagedFile is an output fully written to a temporary file beside its
// final path. It becomes visible only on Commit.
type StagedFile struct {
	path string
	tmp  string
}

// Path returns the final location of the file
func (s *StagedFile) Path() string { return s.path }

// Commit renames the staged file into place.
func (s *StagedFile) Commit() error {
	if err := os.Rename(s.tmp, s.path); err != nil {
		return apperrors.NewStorageError("failed to move file into place", err).
			WithContext("path", s.path)
	}
	s.tmp = ""
	return nil
}

// Discard removes the staged file if it has not been committed.
func (s *StagedFile) Discard() {
	if s != nil && s.tmp != "" {
		os.Remove(s.tmp)
		s.tmp = ""
	}
}

// CommitAll moves every staged file into place. If one rename fails the
// files already committed are removed and the rest discarded, so either
// all outputs appear or none do.
func CommitAll(files ...*StagedFile) error {
	for i, f := range files {
		if err := f.Commit(); err != nil {
			var errs []error
			errs = append(errs, err)
			for _, done := range files[:i] {
				if rmErr := os.Remove(done.path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
					errs = append(errs, rmErr)
				}
			}
			for _, rest := range files[i:] {
				rest.Discard()
			}
			return errors.Join(errs...)
		}
	}
	return nil
}

// DiscardAll discards every staged file; nil entries are skipped.
func DiscardAll(files ...*StagedFile) {
	for _, f := range files {
		f.Discard()
	}
}

// stageFile streams write into a temporary file next to path.
func stageFile(path string, write func(io.Writer) error) (*StagedFile, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, apperrors.NewStorageError("failed to create directory", err).
			WithContext("dir", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*")
	if err != nil {
		return nil, apperrors.NewStorageError("failed to create temporary file", err).
			WithContext("path", path)
	}
	staged := &StagedFile{path: path, tmp: tmp.Name()}

	if err := write(tmp); err != nil {
		tmp.Close()
		staged.Discard()
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to write %s", filepath.Base(path)), err).
			WithContext("path", path)
	}
	if err := tmp.Close(); err != nil {
		staged.Discard()
		return nil, apperrors.NewStorageError("failed to close temporary file", err).
			WithContext("path", path)
	}
	return staged, nil
}

// writeFile stages path and commits it at once.
func writeFile(path string, write func(io.Writer) error) error {
	staged, err := stageFile(path, write)
	if err != nil {
		return err
	}
	if err := staged.Commit(); err != nil {
		staged.Discard()
		return err
	}
	return nil
}
