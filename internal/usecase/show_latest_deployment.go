package usecase

import (
	"context"
	"fmt"

	"github.com/trebuchet-org/treb-relay/internal/domain"
	"github.com/trebuchet-org/treb-relay/internal/domain/models"
)

// LatestDeploymentResult contains the most recent deployment record
type LatestDeploymentResult struct {
	FileName string
	Record   *models.DeploymentRecord
}

// ShowLatestDeployment is the use case for reading the most recent deployment record
type ShowLatestDeployment struct {
	store RecordStore
}

// NewShowLatestDeployment creates a new ShowLatestDeployment use case
func NewShowLatestDeployment(store RecordStore) *ShowLatestDeployment {
	return &ShowLatestDeployment{store: store}
}

// Run returns the newest record, or domain.ErrNoDeployments when there is none.
// A record that exists but cannot be read or parsed is an error; there is no fallback
// to an older record.
func (uc *ShowLatestDeployment) Run(ctx context.Context) (*LatestDeploymentResult, error) {
	files, err := uc.store.ListRecordFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list deployment records: %w", err)
	}
	if len(files) == 0 {
		return nil, domain.ErrNoDeployments
	}

	latest := files[len(files)-1]
	record, err := uc.store.ReadRecord(ctx, latest)
	if err != nil {
		return nil, fmt.Errorf("failed to read deployment record %s: %w", latest, err)
	}

	return &LatestDeploymentResult{
		FileName: latest,
		Record:   record,
	}, nil
}
