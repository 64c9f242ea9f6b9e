package usecase

import (
	"context"
	"fmt"

	"github.com/trebuchet-org/treb-relay/internal/domain"
	"github.com/trebuchet-org/treb-relay/internal/domain/config"
)

// ContractCheck is the on-chain state of one contract from the latest record
type ContractCheck struct {
	Name    string
	Address string
	HasCode bool
	Error   string
}

// CheckDeploymentResult contains the outcome of checking the latest record against the chain
type CheckDeploymentResult struct {
	Network   *config.Network
	FileName  string
	Contracts []ContractCheck
}

// Healthy reports whether every contract in the record has code on chain
func (r *CheckDeploymentResult) Healthy() bool {
	for _, c := range r.Contracts {
		if !c.HasCode {
			return false
		}
	}
	return true
}

// CheckDeployment is the use case for verifying the latest deployment exists on chain
type CheckDeployment struct {
	config  *config.RuntimeConfig
	latest  *ShowLatestDeployment
	checker ChainChecker
}

// NewCheckDeployment creates a new CheckDeployment use case
func NewCheckDeployment(cfg *config.RuntimeConfig, latest *ShowLatestDeployment, checker ChainChecker) *CheckDeployment {
	return &CheckDeployment{
		config:  cfg,
		latest:  latest,
		checker: checker,
	}
}

// Run connects to the configured RPC endpoint, confirms the chain ID and looks for code
// at every contract address of the latest record
func (uc *CheckDeployment) Run(ctx context.Context) (*CheckDeploymentResult, error) {
	network := uc.config.Network
	if err := uc.checker.Connect(ctx, network.RPCURL, network.ChainID); err != nil {
		return nil, err
	}
	defer uc.checker.Close()

	latest, err := uc.latest.Run(ctx)
	if err != nil {
		return nil, err
	}
	if err := latest.Record.Validate(); err != nil {
		return nil, fmt.Errorf("%w %s: %w", domain.ErrInvalidRecord, latest.FileName, err)
	}

	result := &CheckDeploymentResult{
		Network:  network,
		FileName: latest.FileName,
	}
	for _, name := range latest.Record.ContractNames() {
		check := ContractCheck{Name: name, Address: latest.Record.Contracts[name]}
		exists, err := uc.checker.CodeExists(ctx, check.Address)
		if err != nil {
			check.Error = err.Error()
		}
		check.HasCode = exists
		result.Contracts = append(result.Contracts, check)
	}

	return result, nil
}
