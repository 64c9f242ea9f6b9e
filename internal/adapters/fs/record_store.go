package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/samber/lo"
	"github.com/trebuchet-org/treb-relay/internal/domain/config"
	"github.com/trebuchet-org/treb-relay/internal/domain/models"
	"github.com/trebuchet-org/treb-relay/internal/usecase"
)

// RecordStoreAdapter reads deploy-<timestamp>.json files from the hardhat project directory.
// It never writes: records are produced by the deploy script.
type RecordStoreAdapter struct {
	dir string
}

// NewRecordStoreAdapter creates a record store over the configured project directory
func NewRecordStoreAdapter(cfg *config.RuntimeConfig) *RecordStoreAdapter {
	return &RecordStoreAdapter{dir: cfg.ProjectPath}
}

// ListRecordFiles returns record file names, oldest first
func (s *RecordStoreAdapter) ListRecordFiles(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.dir, err)
	}

	names := lo.FilterMap(entries, func(e os.DirEntry, _ int) (string, bool) {
		return e.Name(), !e.IsDir() && models.IsRecordFileName(e.Name())
	})
	slices.SortFunc(names, models.CompareRecordFileNames)

	return names, nil
}

// ReadRecord reads and parses a single record file
func (s *RecordStoreAdapter) ReadRecord(ctx context.Context, name string) (*models.DeploymentRecord, error) {
	if name != filepath.Base(name) {
		return nil, fmt.Errorf("invalid record name %q", name)
	}

	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return nil, err
	}

	var record models.DeploymentRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}

	return &record, nil
}

// Ensure the adapter implements the port
var _ usecase.RecordStore = (*RecordStoreAdapter)(nil)
