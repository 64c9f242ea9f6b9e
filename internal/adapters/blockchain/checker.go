package blockchain

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/trebuchet-org/treb-relay/internal/domain"
	"github.com/trebuchet-org/treb-relay/internal/usecase"
)

// callTimeout bounds every individual RPC call
const callTimeout = 5 * time.Second

// CheckerAdapter implements the ChainChecker interface using ethclient
type CheckerAdapter struct {
	client  *ethclient.Client
	chainID uint64
}

// NewCheckerAdapter creates a new blockchain checker adapter
func NewCheckerAdapter() *CheckerAdapter {
	return &CheckerAdapter{}
}

// Connect establishes connection to the blockchain
func (c *CheckerAdapter) Connect(ctx context.Context, rpcURL string, chainID uint64) error {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return fmt.Errorf("failed to connect to RPC: %w", err)
	}

	callCtx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	// Verify chain ID matches
	networkChainID, err := client.ChainID(callCtx)
	if err != nil {
		client.Close()
		return fmt.Errorf("failed to get chain ID: %w", err)
	}

	// If chainID was 0, use the network's chain ID
	if chainID != 0 && networkChainID.Uint64() != chainID {
		client.Close()
		return fmt.Errorf("%w: expected %d, got %d", domain.ErrChainMismatch, chainID, networkChainID.Uint64())
	}

	c.client = client
	c.chainID = networkChainID.Uint64()
	return nil
}

// CodeExists checks if a contract exists at the given address
func (c *CheckerAdapter) CodeExists(ctx context.Context, address string) (bool, error) {
	if c.client == nil {
		return false, fmt.Errorf("not connected to blockchain")
	}
	if !common.IsHexAddress(address) {
		return false, fmt.Errorf("%w: %s", domain.ErrInvalidAddress, address)
	}

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	code, err := c.client.CodeAt(ctx, common.HexToAddress(address), nil)
	if err != nil {
		return false, fmt.Errorf("failed to check code: %w", err)
	}

	return len(code) > 0, nil
}

// ChainID returns the chain ID reported by the connected node
func (c *CheckerAdapter) ChainID() uint64 {
	return c.chainID
}

// Close releases the RPC connection
func (c *CheckerAdapter) Close() {
	if c.client != nil {
		c.client.Close()
		c.client = nil
	}
}

// Ensure the adapter implements the interface
var _ usecase.ChainChecker = (*CheckerAdapter)(nil)
