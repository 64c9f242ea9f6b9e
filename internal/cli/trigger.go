package cli

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/treb-relay/internal/cli/render"
	"github.com/trebuchet-org/treb-relay/internal/config"
	"github.com/trebuchet-org/treb-relay/internal/usecase"
)

// NewTriggerCmd creates the trigger command
func NewTriggerCmd() *cobra.Command {
	var (
		tag     string
		confirm bool
	)

	cmd := &cobra.Command{
		Use:   "trigger",
		Short: "Ask a running relay to deploy",
		Long: `Send a signed POST /deploy to the relay at $RELAY_URL and wait for the
toolchain to finish. Without --tag the relay uses its default tag.`,
		Example: `  treb-relay trigger --relay-url https://relay.internal:3000 --tag v1.2.0`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{progressAnnotation: "spinner"},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			if err := config.Require(app.Config, "hmac_secret", "relay_url"); err != nil {
				return err
			}

			if !confirm && !confirmPrompt(fmt.Sprintf("Deploy through %s", app.Config.RelayURL)) {
				fmt.Fprintln(cmd.OutOrStdout(), "Deployment cancelled.")
				return nil
			}

			params := usecase.TriggerRemoteDeploymentParams{}
			if cmd.Flags().Changed("tag") {
				params.Tag = &tag
			}

			resp, err := app.TriggerRemoteDeployment.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			if err := render.NewRunRenderer(cmd.OutOrStdout()).RenderDeployResponse(resp); err != nil {
				return err
			}
			if !resp.Success {
				code := 1
				if resp.ExitCode != nil && *resp.ExitCode > 0 {
					code = *resp.ExitCode
				}
				return &ExitError{Code: code}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&tag, "tag", "", "Tag to send with the request")
	cmd.Flags().BoolVarP(&confirm, "yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().String("relay-url", "", "Relay base URL (default $RELAY_URL or http://localhost:3000)")

	return cmd
}

// confirmPrompt asks the user a yes/no question and returns their choice.
func confirmPrompt(label string) bool {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}

	_, err := prompt.Run()
	return err == nil
}
