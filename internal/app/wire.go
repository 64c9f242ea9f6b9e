//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/treb-relay/internal/adapters"
	"github.com/trebuchet-org/treb-relay/internal/config"
	"github.com/trebuchet-org/treb-relay/internal/logging"
	"github.com/trebuchet-org/treb-relay/internal/server"
	"github.com/trebuchet-org/treb-relay/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper, sink usecase.ProgressSink) (*App, error) {
	wire.Build(
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewTriggerDeployment,
		usecase.NewShowLatestDeployment,
		usecase.NewListDeployments,
		usecase.NewShowDeployer,
		usecase.NewCheckDeployment,
		usecase.NewTriggerRemoteDeployment,
		usecase.NewShowRemoteStatus,

		server.NewServer,

		// App
		NewApp,
	)
	return nil, nil
}
