package usecase

import (
	"context"
	"fmt"
	"slices"

	"github.com/samber/lo"
	"github.com/trebuchet-org/treb-relay/internal/domain/models"
)

// ListDeploymentsParams contains parameters for listing deployments
type ListDeploymentsParams struct {
	// Contract keeps only records that deployed a contract with this name
	Contract string
	// Limit caps the number of records returned (0 = all)
	Limit int
}

// DeploymentEntry pairs a record with the file it was read from
type DeploymentEntry struct {
	FileName string
	Record   *models.DeploymentRecord
}

// DeploymentListResult contains the result of listing deployments
type DeploymentListResult struct {
	Deployments []DeploymentEntry
	Summary     DeploymentSummary
}

// DeploymentSummary provides summary statistics
type DeploymentSummary struct {
	Total      int
	ByContract map[string]int
	ByDeployer map[string]int
}

// ListDeployments is the use case for listing deployment records, newest first
type ListDeployments struct {
	store RecordStore
	sink  ProgressSink
}

// NewListDeployments creates a new ListDeployments use case
func NewListDeployments(store RecordStore, sink ProgressSink) *ListDeployments {
	return &ListDeployments{
		store: store,
		sink:  sink,
	}
}

// Run executes the list deployments use case
func (uc *ListDeployments) Run(ctx context.Context, params ListDeploymentsParams) (*DeploymentListResult, error) {
	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "loading",
		Message: "Loading deployment records",
		Spinner: true,
	})

	files, err := uc.store.ListRecordFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list deployment records: %w", err)
	}

	// Newest first
	files = slices.Clone(files)
	slices.Reverse(files)

	entries := make([]DeploymentEntry, 0, len(files))
	for _, name := range files {
		record, err := uc.store.ReadRecord(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read deployment record %s: %w", name, err)
		}
		entries = append(entries, DeploymentEntry{FileName: name, Record: record})
	}

	if params.Contract != "" {
		entries = lo.Filter(entries, func(e DeploymentEntry, _ int) bool {
			_, ok := e.Record.Contracts[params.Contract]
			return ok
		})
	}
	if params.Limit > 0 && len(entries) > params.Limit {
		entries = entries[:params.Limit]
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "complete",
		Current: len(entries),
		Total:   len(entries),
		Message: "Deployment records loaded",
	})

	return &DeploymentListResult{
		Deployments: entries,
		Summary:     calculateSummary(entries),
	}, nil
}

// calculateSummary calculates summary statistics for deployments
func calculateSummary(entries []DeploymentEntry) DeploymentSummary {
	summary := DeploymentSummary{
		Total:      len(entries),
		ByContract: make(map[string]int),
		ByDeployer: make(map[string]int),
	}

	for _, entry := range entries {
		for name := range entry.Record.Contracts {
			summary.ByContract[name]++
		}
		summary.ByDeployer[entry.Record.Deployer]++
	}

	return summary
}
