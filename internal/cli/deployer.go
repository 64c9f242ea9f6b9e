package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewDeployerCmd creates the deployer command
func NewDeployerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deployer",
		Short: "Print the address derived from DEPLOYER_PRIVATE_KEY",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			addr, err := app.ShowDeployer.Run(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deployer address: %s\n", addr.Hex())
			return nil
		},
	}
}
