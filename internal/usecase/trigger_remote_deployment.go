package usecase

import (
	"context"
	"fmt"

	"github.com/trebuchet-org/treb-relay/internal/domain"
)

// TriggerRemoteDeploymentParams contains parameters for a remote deploy
type TriggerRemoteDeploymentParams struct {
	Tag *string
}

// TriggerRemoteDeployment asks a running relay to deploy and waits for its answer
type TriggerRemoteDeployment struct {
	client RelayClient
	sink   ProgressSink
}

// NewTriggerRemoteDeployment creates a new TriggerRemoteDeployment use case
func NewTriggerRemoteDeployment(client RelayClient, sink ProgressSink) *TriggerRemoteDeployment {
	return &TriggerRemoteDeployment{client: client, sink: sink}
}

// Run sends the signed deploy request. A toolchain failure is not an error here: it is
// reported through the response's Success flag.
func (uc *TriggerRemoteDeployment) Run(ctx context.Context, params TriggerRemoteDeploymentParams) (*domain.DeployResponse, error) {
	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   StageDeploying,
		Message: "Waiting for the relay to finish deploying",
		Spinner: true,
	})

	resp, err := uc.client.Deploy(ctx, domain.DeployRequest{Tag: params.Tag})
	if err != nil {
		uc.sink.OnProgress(ctx, ProgressEvent{Stage: StageFailed, Message: err.Error()})
		return nil, fmt.Errorf("remote deploy failed: %w", err)
	}

	stage := StageCompleted
	if !resp.Success {
		stage = StageFailed
	}
	uc.sink.OnProgress(ctx, ProgressEvent{Stage: stage, Message: "Relay responded", Metadata: resp})
	return resp, nil
}

// ShowRemoteStatus fetches the latest deployment record from a running relay
type ShowRemoteStatus struct {
	client RelayClient
}

// NewShowRemoteStatus creates a new ShowRemoteStatus use case
func NewShowRemoteStatus(client RelayClient) *ShowRemoteStatus {
	return &ShowRemoteStatus{client: client}
}

// Run returns the relay's /status answer; "no deployments yet" arrives as OK=false
func (uc *ShowRemoteStatus) Run(ctx context.Context) (*domain.StatusResponse, error) {
	resp, err := uc.client.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("remote status failed: %w", err)
	}
	return resp, nil
}
