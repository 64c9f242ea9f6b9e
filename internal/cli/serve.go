package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/treb-relay/internal/config"
)

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP relay",
		Long: `Start the relay on $PORT (default 3000).

Routes:
  GET  /health   liveness probe, unauthenticated
  POST /deploy   run the deployment script, signed
  GET  /status   latest deploy-<ms>.json record, signed
  GET  /metrics  Prometheus metrics, unauthenticated

The relay refuses to start unless HARDHAT_PROJECT_PATH, SKALE_RPC_URL,
SKALE_CHAIN_ID, DEPLOYER_PRIVATE_KEY and HMAC_SECRET are all set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			if err := config.Require(app.Config, config.ServeKeys...); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return app.Server.Run(ctx)
		},
	}

	cmd.Flags().String("port", "", "Port to listen on (default $PORT or 3000)")

	return cmd
}
