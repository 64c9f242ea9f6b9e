package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/treb-relay/internal/cli/render"
	"github.com/trebuchet-org/treb-relay/internal/config"
	"github.com/trebuchet-org/treb-relay/internal/domain"
	"github.com/trebuchet-org/treb-relay/internal/usecase"
)

// NewDeployCmd creates the deploy command
func NewDeployCmd() *cobra.Command {
	var tag string

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Run the deployment script locally",
		Long: `Run the same toolchain command the relay runs for POST /deploy, in the
foreground, and print its output. The command exits with the toolchain's exit code.`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{progressAnnotation: "spinner"},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			if err := config.Require(app.Config, "project_path", "rpc_url", "chain_id", "private_key"); err != nil {
				return err
			}

			run, err := app.TriggerDeployment.Run(cmd.Context(), usecase.TriggerDeploymentParams{Tag: tag})
			if err != nil {
				return err
			}

			if err := render.NewRunRenderer(cmd.OutOrStdout()).RenderRun(run); err != nil {
				return err
			}
			if !run.Success() {
				return &ExitError{Code: run.Result.ExitCode}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&tag, "tag", domain.DefaultTag, "Tag recorded with the run")

	return cmd
}
