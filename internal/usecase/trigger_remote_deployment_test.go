package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/treb-relay/internal/domain"
	"github.com/trebuchet-org/treb-relay/internal/usecase"
)

func TestTriggerRemoteDeployment(t *testing.T) {
	ctx := context.Background()
	tag := "nightly"

	t.Run("toolchain failure is not an error", func(t *testing.T) {
		exitCode := 1
		client := new(MockRelayClient)
		client.On("Deploy", ctx, domain.DeployRequest{Tag: &tag}).Return(&domain.DeployResponse{
			Success:  false,
			ExitCode: &exitCode,
			Stderr:   "HH100: Network skale doesn't exist",
			Tag:      tag,
		}, nil)
		progress := &MockProgressSink{}

		resp, err := usecase.NewTriggerRemoteDeployment(client, progress).Run(ctx, usecase.TriggerRemoteDeploymentParams{Tag: &tag})

		require.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Equal(t, []string{usecase.StageDeploying, usecase.StageFailed}, progress.stages())
	})

	t.Run("transport error", func(t *testing.T) {
		client := new(MockRelayClient)
		client.On("Deploy", ctx, domain.DeployRequest{}).Return(nil, domain.ErrInvalidSignature)

		_, err := usecase.NewTriggerRemoteDeployment(client, usecase.NopProgress{}).Run(ctx, usecase.TriggerRemoteDeploymentParams{})

		assert.ErrorIs(t, err, domain.ErrInvalidSignature)
	})
}

func TestShowRemoteStatus(t *testing.T) {
	ctx := context.Background()
	client := new(MockRelayClient)
	client.On("Status", ctx).Return(&domain.StatusResponse{OK: false, Error: domain.NoDeploymentsMessage}, nil)

	resp, err := usecase.NewShowRemoteStatus(client).Run(ctx)

	require.NoError(t, err)
	assert.False(t, resp.OK)
	assert.Equal(t, "No deployments yet", resp.Error)
}
