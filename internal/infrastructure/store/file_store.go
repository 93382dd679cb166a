// Package store persists the dataset document. The write is the run's sole
// commit point and must be atomic so no reader ever observes a partial file.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"

	"NewsPulse/internal/domain"
	"NewsPulse/internal/ports"
)

// FileStore reads and writes the dataset as a JSON document.
type FileStore struct {
	path   string
	logger *slog.Logger
}

var _ ports.DatasetStore = (*FileStore)(nil)

// NewFileStore points the store at the dataset path.
func NewFileStore(path string, logger *slog.Logger) *FileStore {
	return &FileStore{path: path, logger: logger}
}

// Load reads the previous dataset. A missing file is a normal first-run
// condition (ok=false, no error); a corrupt file is returned as an error for
// the pipeline to degrade on.
func (s *FileStore) Load(ctx context.Context) (*domain.Dataset, bool, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, goerr.Wrap(err, "failed to read previous dataset", goerr.V("path", s.path))
	}

	var dataset domain.Dataset
	if err := json.Unmarshal(raw, &dataset); err != nil {
		return nil, false, goerr.Wrap(err, "failed to parse previous dataset", goerr.V("path", s.path))
	}

	return &dataset, true, nil
}

// Persist writes the dataset to a temporary file in the target directory and
// renames it into place.
func (s *FileStore) Persist(ctx context.Context, dataset *domain.Dataset) error {
	data, err := json.MarshalIndent(dataset, "", "  ")
	if err != nil {
		return goerr.Wrap(err, "failed to marshal dataset")
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".dataset-*.json")
	if err != nil {
		return goerr.Wrap(err, "failed to create temp dataset file", goerr.V("dir", dir))
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return goerr.Wrap(err, "failed to write temp dataset file", goerr.V("path", tmpName))
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return goerr.Wrap(err, "failed to close temp dataset file", goerr.V("path", tmpName))
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return goerr.Wrap(err, "failed to move dataset into place", goerr.V("path", s.path))
	}

	s.logger.Debug("dataset persisted", "path", s.path, "articles", dataset.TotalArticles)
	return nil
}
