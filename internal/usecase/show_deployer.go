package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/trebuchet-org/treb-relay/internal/domain/config"
)

// ErrPrivateKeyMissing is returned when no deployer key is configured
var ErrPrivateKeyMissing = errors.New("DEPLOYER_PRIVATE_KEY missing")

// ShowDeployer is the use case for deriving the deployer address from the configured key
type ShowDeployer struct {
	config *config.RuntimeConfig
}

// NewShowDeployer creates a new ShowDeployer use case
func NewShowDeployer(cfg *config.RuntimeConfig) *ShowDeployer {
	return &ShowDeployer{config: cfg}
}

// Run derives the address the toolchain will sign with
func (uc *ShowDeployer) Run(ctx context.Context) (common.Address, error) {
	if uc.config.PrivateKey == "" {
		return common.Address{}, ErrPrivateKeyMissing
	}
	return DeriveAddress(uc.config.PrivateKey)
}

// DeriveAddress returns the address for a hex encoded secp256k1 private key (0x prefix optional)
func DeriveAddress(privateKey string) (common.Address, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(privateKey), "0x"))
	if err != nil {
		return common.Address{}, fmt.Errorf("invalid private key: %w", err)
	}
	return crypto.PubkeyToAddress(key.PublicKey), nil
}
