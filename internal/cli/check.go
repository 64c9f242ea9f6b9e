package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/treb-relay/internal/cli/render"
	"github.com/trebuchet-org/treb-relay/internal/config"
)

// NewCheckCmd creates the check command
func NewCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the latest deployment against the chain",
		Long: `Dial SKALE_RPC_URL, confirm it serves SKALE_CHAIN_ID and look for contract
code at every address of the latest deployment record.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			if err := config.Require(app.Config, "project_path", "rpc_url", "chain_id"); err != nil {
				return err
			}

			result, err := app.CheckDeployment.Run(cmd.Context())
			if err != nil {
				return err
			}

			if err := render.NewCheckRenderer(cmd.OutOrStdout()).Render(result); err != nil {
				return err
			}
			if !result.Healthy() {
				return &ExitError{Code: 1}
			}
			return nil
		},
	}
}
