package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/treb-relay/internal/cli/render"
	"github.com/trebuchet-org/treb-relay/internal/config"
	"github.com/trebuchet-org/treb-relay/internal/domain/models"
	"github.com/trebuchet-org/treb-relay/internal/usecase"
)

// NewRemoteStatusCmd creates the remote-status command
func NewRemoteStatusCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "remote-status",
		Short: "Show the latest deployment record of a running relay",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			format, err := render.ParseFormat(output)
			if err != nil {
				return err
			}
			if err := config.Require(app.Config, "hmac_secret", "relay_url"); err != nil {
				return err
			}

			resp, err := app.ShowRemoteStatus.Run(cmd.Context())
			if err != nil {
				return err
			}
			if !resp.OK || resp.Latest == nil {
				fmt.Fprintln(cmd.OutOrStdout(), resp.Error)
				return nil
			}

			return render.NewDeploymentsRenderer(cmd.OutOrStdout(), format).RenderLatest(&usecase.LatestDeploymentResult{
				FileName: models.RecordFileName(resp.Latest.Timestamp),
				Record:   resp.Latest,
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", render.FormatTable, "Output format (table, json, yaml)")
	cmd.Flags().String("relay-url", "", "Relay base URL (default $RELAY_URL or http://localhost:3000)")

	return cmd
}
