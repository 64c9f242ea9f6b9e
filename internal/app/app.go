package app

import (
	"log/slog"

	"github.com/trebuchet-org/treb-relay/internal/domain/config"
	"github.com/trebuchet-org/treb-relay/internal/server"
	"github.com/trebuchet-org/treb-relay/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Use cases
	TriggerDeployment       *usecase.TriggerDeployment
	ShowLatestDeployment    *usecase.ShowLatestDeployment
	ListDeployments         *usecase.ListDeployments
	ShowDeployer            *usecase.ShowDeployer
	CheckDeployment         *usecase.CheckDeployment
	TriggerRemoteDeployment *usecase.TriggerRemoteDeployment
	ShowRemoteStatus        *usecase.ShowRemoteStatus

	// HTTP relay
	Server *server.Server
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	triggerDeployment *usecase.TriggerDeployment,
	showLatestDeployment *usecase.ShowLatestDeployment,
	listDeployments *usecase.ListDeployments,
	showDeployer *usecase.ShowDeployer,
	checkDeployment *usecase.CheckDeployment,
	triggerRemoteDeployment *usecase.TriggerRemoteDeployment,
	showRemoteStatus *usecase.ShowRemoteStatus,
	srv *server.Server,
) (*App, error) {
	return &App{
		Config:                  cfg,
		Log:                     log,
		TriggerDeployment:       triggerDeployment,
		ShowLatestDeployment:    showLatestDeployment,
		ListDeployments:         listDeployments,
		ShowDeployer:            showDeployer,
		CheckDeployment:         checkDeployment,
		TriggerRemoteDeployment: triggerRemoteDeployment,
		ShowRemoteStatus:        showRemoteStatus,
		Server:                  srv,
	}, nil
}
