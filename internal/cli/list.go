package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/treb-relay/internal/cli/render"
	"github.com/trebuchet-org/treb-relay/internal/config"
	"github.com/trebuchet-org/treb-relay/internal/usecase"
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	var (
		contractName string
		limit        int
		output       string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List deployment records, newest first",
		Example: `  # List all records
  treb-relay list

  # Records that deployed a vault
  treb-relay list --contract vault

  # The last three records
  treb-relay list --limit 3`,
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

			result, err := app.ListDeployments.Run(cmd.Context(), usecase.ListDeploymentsParams{
				Contract: contractName,
				Limit:    limit,
			})
			if err != nil {
				return err
			}

			return render.NewDeploymentsRenderer(cmd.OutOrStdout(), format).RenderDeploymentList(result)
		},
	}

	cmd.Flags().StringVar(&contractName, "contract", "", "Filter by contract field name (e.g. vault)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Show at most this many records")
	cmd.Flags().StringVarP(&output, "output", "o", render.FormatTable, "Output format (table, json, yaml)")

	return cmd
}
