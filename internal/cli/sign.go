package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/treb-relay/internal/config"
	"github.com/trebuchet-org/treb-relay/internal/signing"
)

// NewSignCmd creates the sign command
func NewSignCmd() *cobra.Command {
	var (
		data       string
		withHeader bool
	)

	cmd := &cobra.Command{
		Use:   "sign [file]",
		Short: "Print the signature for a request body",
		Example: `  # Sign an inline body and call the relay with curl
  body='{"tag":"v1"}'
  curl -X POST http://localhost:3000/deploy \
    -H "Content-Type: application/json" \
    -H "X-Signature: $(treb-relay sign --data "$body")" \
    -d "$body"

  # Sign the empty body of GET /status
  treb-relay sign --data ''

  # Sign a file, or stdin with -
  treb-relay sign request.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			if err := config.Require(app.Config, "hmac_secret"); err != nil {
				return err
			}

			var body []byte
			switch {
			case cmd.Flags().Changed("data"):
				if len(args) > 0 {
					return fmt.Errorf("--data and a file argument are mutually exclusive")
				}
				body = []byte(data)
			case len(args) == 1 && args[0] != "-":
				body, err = os.ReadFile(args[0])
			default:
				body, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return fmt.Errorf("failed to read body: %w", err)
			}

			signature := signing.NewSigner(app.Config.HMACSecret).Sign(body)
			if withHeader {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", app.Config.SignatureHeader, signature)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), signature)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&data, "data", "d", "", "Body to sign")
	cmd.Flags().BoolVar(&withHeader, "header", false, "Print a full header line")

	return cmd
}
