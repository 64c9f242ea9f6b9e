package adapters

import (
	"github.com/google/wire"
	"github.com/trebuchet-org/treb-relay/internal/adapters/blockchain"
	"github.com/trebuchet-org/treb-relay/internal/adapters/fs"
	"github.com/trebuchet-org/treb-relay/internal/adapters/hardhat"
	"github.com/trebuchet-org/treb-relay/internal/adapters/relay"
	"github.com/trebuchet-org/treb-relay/internal/usecase"
)

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	fs.NewRecordStoreAdapter,
	wire.Bind(new(usecase.RecordStore), new(*fs.RecordStoreAdapter)),
)

// HardhatSet provides the toolchain executor
var HardhatSet = wire.NewSet(
	hardhat.NewExecutor,
	wire.Bind(new(usecase.DeploymentExecutor), new(*hardhat.Executor)),
)

// BlockchainSet provides blockchain-based implementations
var BlockchainSet = wire.NewSet(
	blockchain.NewCheckerAdapter,
	wire.Bind(new(usecase.ChainChecker), new(*blockchain.CheckerAdapter)),
)

// RelaySet provides the client for a remote relay
var RelaySet = wire.NewSet(
	relay.NewClientAdapter,
	wire.Bind(new(usecase.RelayClient), new(*relay.ClientAdapter)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	FSSet,
	HardhatSet,
	BlockchainSet,
	RelaySet,
)
