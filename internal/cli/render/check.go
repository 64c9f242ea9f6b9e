package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/trebuchet-org/treb-relay/internal/usecase"
)

// CheckRenderer prints the on-chain state of the latest deployment
type CheckRenderer struct {
	out io.Writer
}

func NewCheckRenderer(out io.Writer) *CheckRenderer {
	return &CheckRenderer{out: out}
}

func (r *CheckRenderer) Render(result *usecase.CheckDeploymentResult) error {
	fmt.Fprintf(r.out, "%s %s (chain %d) from %s\n\n",
		sectionHeaderStyle.Sprint("Checking"), result.Network.Name, result.Network.ChainID, result.FileName)

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"CONTRACT", "ADDRESS", "CODE"})
	for _, c := range result.Contracts {
		status := color.GreenString("✓ deployed")
		switch {
		case c.Error != "":
			status = color.RedString("✗ %s", c.Error)
		case !c.HasCode:
			status = color.RedString("✗ no code")
		}
		t.AppendRow(table.Row{contractLabel(c.Name), c.Address, status})
	}
	t.Render()

	if result.Healthy() {
		fmt.Fprintln(r.out, FormatSuccess("All contracts have code on chain"))
	} else {
		fmt.Fprintln(r.out, FormatWarning("Some contracts are missing on chain"))
	}
	return nil
}

var _ Renderer[*usecase.CheckDeploymentResult] = (*CheckRenderer)(nil)
