package usecase

import (
	"context"

	"github.com/trebuchet-org/treb-relay/internal/domain"
	"github.com/trebuchet-org/treb-relay/internal/domain/models"
)

// DeploymentExecutor runs the external deployment toolchain.
// A non-nil error means the process never ran; a non-zero exit is reported in the result.
type DeploymentExecutor interface {
	Execute(ctx context.Context, spec domain.ExecutionSpec) (*domain.ExecutionResult, error)
}

// RecordStore reads the deployment records the toolchain leaves in the project directory
type RecordStore interface {
	// ListRecordFiles returns record file names ordered oldest first
	ListRecordFiles(ctx context.Context) ([]string, error)
	ReadRecord(ctx context.Context, name string) (*models.DeploymentRecord, error)
}

// ChainChecker inspects the target chain
type ChainChecker interface {
	Connect(ctx context.Context, rpcURL string, chainID uint64) error
	CodeExists(ctx context.Context, address string) (bool, error)
	Close()
}

// RelayClient talks to a remote relay over its signed HTTP surface
type RelayClient interface {
	Deploy(ctx context.Context, req domain.DeployRequest) (*domain.DeployResponse, error)
	Status(ctx context.Context) (*domain.StatusResponse, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    string
	Current  int
	Total    int
	Message  string
	Spinner  bool
	Metadata interface{}
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}

var _ ProgressSink = NopProgress{}

// Progress stages reported by the deployment use cases
const (
	StageWaiting   = "waiting"
	StageDeploying = "deploying"
	StageCompleted = "completed"
	StageFailed    = "failed"
)
