package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/trebuchet-org/treb-relay/internal/domain"
	"github.com/trebuchet-org/treb-relay/internal/domain/config"
)

// TriggerDeploymentParams contains parameters for triggering a deployment
type TriggerDeploymentParams struct {
	// Tag is echoed back untouched; an empty value is kept as-is
	Tag string
}

// TriggerDeployment is the use case for running the deployment toolchain once.
// It never retries, never times out and never kills the child: the call returns
// when the toolchain exits.
type TriggerDeployment struct {
	config   *config.RuntimeConfig
	executor DeploymentExecutor
	sink     ProgressSink
	log      *slog.Logger

	// slot serializes runs when SerializeDeploys is set
	slot sync.Mutex
}

// NewTriggerDeployment creates a new TriggerDeployment use case
func NewTriggerDeployment(cfg *config.RuntimeConfig, executor DeploymentExecutor, sink ProgressSink, log *slog.Logger) *TriggerDeployment {
	return &TriggerDeployment{
		config:   cfg,
		executor: executor,
		sink:     sink,
		log:      log.With("component", "TriggerDeployment"),
	}
}

// Run executes the deployment and waits for the toolchain to exit.
// The returned error wraps domain.ErrLaunchFailed when the process could not be started.
func (uc *TriggerDeployment) Run(ctx context.Context, params TriggerDeploymentParams) (*domain.DeploymentRun, error) {
	run := &domain.DeploymentRun{
		ID:      uuid.NewString(),
		Tag:     params.Tag,
		Network: uc.config.Network.Name,
	}
	log := uc.log.With("run", run.ID, "tag", run.Tag, "network", run.Network)

	if uc.config.SerializeDeploys {
		if !uc.slot.TryLock() {
			log.Info("waiting for the running deployment to finish")
			uc.sink.OnProgress(ctx, ProgressEvent{
				Stage:   StageWaiting,
				Message: "Waiting for the previous deployment to finish",
			})
			uc.slot.Lock()
		}
		defer uc.slot.Unlock()
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   StageDeploying,
		Message: fmt.Sprintf("Deploying to %s", run.Network),
		Spinner: true,
	})

	spec := domain.ExecutionSpec{
		Network: uc.config.Network.Name,
		WorkDir: uc.config.ProjectPath,
		Env:     uc.toolchainEnv(),
	}

	run.StartedAt = time.Now()
	log.Info("starting deployment")

	result, err := uc.executor.Execute(ctx, spec)
	run.Duration = time.Since(run.StartedAt)
	if err != nil {
		log.Error("deployment toolchain failed to launch", "error", err)
		uc.sink.OnProgress(ctx, ProgressEvent{Stage: StageFailed, Message: err.Error()})
		return nil, fmt.Errorf("%w: %w", domain.ErrLaunchFailed, err)
	}
	run.Result = *result

	stage := StageCompleted
	if !run.Success() {
		stage = StageFailed
	}
	log.Info("deployment finished", "exitCode", result.ExitCode, "success", run.Success(), "duration", run.Duration)
	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:    stage,
		Message:  fmt.Sprintf("Toolchain exited with code %d", result.ExitCode),
		Metadata: run,
	})

	return run, nil
}

// toolchainEnv passes the resolved network settings to the toolchain, whatever
// source (environment, .env, relay.toml) they were read from.
func (uc *TriggerDeployment) toolchainEnv() []string {
	return []string{
		"SKALE_RPC_URL=" + uc.config.Network.RPCURL,
		"SKALE_CHAIN_ID=" + uc.config.Network.RawChainID,
		"DEPLOYER_PRIVATE_KEY=" + uc.config.PrivateKey,
	}
}
