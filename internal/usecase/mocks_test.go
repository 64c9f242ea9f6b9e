package usecase_test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"
	"github.com/trebuchet-org/treb-relay/internal/domain"
	"github.com/trebuchet-org/treb-relay/internal/domain/models"
	"github.com/trebuchet-org/treb-relay/internal/usecase"
)

// MockRecordStore is a mock implementation of RecordStore
type MockRecordStore struct {
	mock.Mock
}

func (m *MockRecordStore) ListRecordFiles(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockRecordStore) ReadRecord(ctx context.Context, name string) (*models.DeploymentRecord, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DeploymentRecord), args.Error(1)
}

// MockExecutor is a mock implementation of DeploymentExecutor
type MockExecutor struct {
	mock.Mock
}

func (m *MockExecutor) Execute(ctx context.Context, spec domain.ExecutionSpec) (*domain.ExecutionResult, error) {
	args := m.Called(ctx, spec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExecutionResult), args.Error(1)
}

// MockChainChecker is a mock implementation of ChainChecker
type MockChainChecker struct {
	mock.Mock
}

func (m *MockChainChecker) Connect(ctx context.Context, rpcURL string, chainID uint64) error {
	return m.Called(ctx, rpcURL, chainID).Error(0)
}

func (m *MockChainChecker) CodeExists(ctx context.Context, address string) (bool, error) {
	args := m.Called(ctx, address)
	return args.Bool(0), args.Error(1)
}

func (m *MockChainChecker) Close() {
	m.Called()
}

// MockRelayClient is a mock implementation of RelayClient
type MockRelayClient struct {
	mock.Mock
}

func (m *MockRelayClient) Deploy(ctx context.Context, req domain.DeployRequest) (*domain.DeployResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeployResponse), args.Error(1)
}

func (m *MockRelayClient) Status(ctx context.Context) (*domain.StatusResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StatusResponse), args.Error(1)
}

// MockProgressSink records progress events
type MockProgressSink struct {
	mu     sync.Mutex
	events []usecase.ProgressEvent
}

func (m *MockProgressSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

func (m *MockProgressSink) Info(string)  {}
func (m *MockProgressSink) Error(string) {}

func (m *MockProgressSink) stages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	stages := make([]string, 0, len(m.events))
	for _, e := range m.events {
		stages = append(stages, e.Stage)
	}
	return stages
}

func record(ts int64, contracts map[string]string) *models.DeploymentRecord {
	return &models.DeploymentRecord{
		Timestamp: ts,
		Deployer:  "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
		Contracts: contracts,
	}
}
