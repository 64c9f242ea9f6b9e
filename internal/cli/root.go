package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/treb-relay/internal/adapters/progress"
	"github.com/trebuchet-org/treb-relay/internal/app"
	"github.com/trebuchet-org/treb-relay/internal/config"
	"github.com/trebuchet-org/treb-relay/internal/usecase"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"

	// progressAnnotation marks commands that show a spinner while they wait
	progressAnnotation = "progress"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "treb-relay",
		Short: "Signed HTTP relay for Hardhat deployments",
		Long: `treb-relay exposes a Hardhat deployment script over HTTP.

Requests to /deploy and /status must carry an HMAC-SHA256 signature of the raw
request body. Configuration is read from the environment (HARDHAT_PROJECT_PATH,
SKALE_RPC_URL, SKALE_CHAIN_ID, DEPLOYER_PRIVATE_KEY, HMAC_SECRET, PORT), .env
files and an optional relay.toml.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			v, err := config.SetupViper(cmd)
			if err != nil {
				return err
			}

			var sink usecase.ProgressSink = usecase.NopProgress{}
			if cmd.Annotations[progressAnnotation] == "spinner" {
				sink = progress.NewSpinnerProgressReporter()
			}

			// Initialize app with DI
			appInstance, err := app.InitApp(v, sink)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			// Store app in context
			cmd.SetContext(context.WithValue(cmd.Context(), appKey, appInstance))
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", config.DefaultRelayFile, "Path to relay.toml")
	rootCmd.PersistentFlags().String("project-path", "", "Hardhat project directory (default $HARDHAT_PROJECT_PATH)")
	rootCmd.PersistentFlags().StringP("network", "n", "", "Hardhat network to deploy to (default skale)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")

	// Add command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "relay",
		Title: "Relay Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "local",
		Title: "Project Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "remote",
		Title: "Remote Relay Commands",
	})

	serveCmd := NewServeCmd()
	serveCmd.GroupID = "relay"
	rootCmd.AddCommand(serveCmd)

	for _, cmd := range []*cobra.Command{
		NewStatusCmd(),
		NewListCmd(),
		NewDeployerCmd(),
		NewDeployCmd(),
		NewCheckCmd(),
	} {
		cmd.GroupID = "local"
		rootCmd.AddCommand(cmd)
	}

	for _, cmd := range []*cobra.Command{
		NewSignCmd(),
		NewTriggerCmd(),
		NewRemoteStatusCmd(),
	} {
		cmd.GroupID = "remote"
		rootCmd.AddCommand(cmd)
	}

	// Version command
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}
