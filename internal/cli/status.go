package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/treb-relay/internal/cli/render"
	"github.com/trebuchet-org/treb-relay/internal/config"
	"github.com/trebuchet-org/treb-relay/internal/domain"
)

// NewStatusCmd creates the status command
func NewStatusCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the latest deployment record",
		Example: `  # Latest record as a summary
  treb-relay status

  # The record file as JSON
  treb-relay status --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			format, err := render.ParseFormat(output)
			if err != nil {
				return err
			}
			if err := config.Require(app.Config, "project_path"); err != nil {
				return err
			}

			result, err := app.ShowLatestDeployment.Run(cmd.Context())
			if errors.Is(err, domain.ErrNoDeployments) {
				fmt.Fprintln(cmd.OutOrStdout(), render.NoRecordsMessage)
				return nil
			}
			if err != nil {
				return err
			}

			return render.NewDeploymentsRenderer(cmd.OutOrStdout(), format).RenderLatest(result)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", render.FormatTable, "Output format (table, json, yaml)")

	return cmd
}
