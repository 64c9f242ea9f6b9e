package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/trebuchet-org/treb-relay/internal/domain/models"
	"github.com/trebuchet-org/treb-relay/internal/usecase"
	"gopkg.in/yaml.v3"
)

// NoRecordsMessage is printed when the project directory holds no records
const NoRecordsMessage = "No deployment records found."

var (
	addressStyle       = color.New(color.FgWhite)
	timestampStyle     = color.New(color.Faint)
	labelStyle         = color.New(color.FgCyan)
	sectionHeaderStyle = color.New(color.Bold, color.FgHiWhite)
)

// DeploymentsRenderer renders deployment records
type DeploymentsRenderer struct {
	out    io.Writer
	format string
}

// NewDeploymentsRenderer creates a new deployments renderer
func NewDeploymentsRenderer(out io.Writer, format string) *DeploymentsRenderer {
	return &DeploymentsRenderer{
		out:    out,
		format: format,
	}
}

// recordView is the yaml shape of a record
type recordView struct {
	File      string            `yaml:"file"`
	Timestamp int64             `yaml:"timestamp"`
	CreatedAt string            `yaml:"createdAt"`
	Deployer  string            `yaml:"deployer"`
	DMTOwner  string            `yaml:"dmtOwner,omitempty"`
	Contracts map[string]string `yaml:"contracts"`
	Extra     map[string]any    `yaml:"extra,omitempty"`
}

func newRecordView(file string, r *models.DeploymentRecord) recordView {
	view := recordView{
		File:      file,
		Timestamp: r.Timestamp,
		CreatedAt: r.CreatedAt().UTC().Format("2006-01-02 15:04:05 MST"),
		Deployer:  r.Deployer,
		DMTOwner:  r.DMTOwner,
		Contracts: r.Contracts,
	}
	for key, raw := range r.Extra {
		var value any
		if err := json.Unmarshal(raw, &value); err != nil {
			value = string(raw)
		}
		if view.Extra == nil {
			view.Extra = make(map[string]any)
		}
		view.Extra[key] = value
	}
	return view
}

// RenderLatest prints the newest record
func (r *DeploymentsRenderer) RenderLatest(result *usecase.LatestDeploymentResult) error {
	switch r.format {
	case FormatJSON:
		data, err := json.MarshalIndent(result.Record, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(r.out, string(data))
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(r.out)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(newRecordView(result.FileName, result.Record))
	}

	record := result.Record
	fmt.Fprintf(r.out, "%s %s\n", sectionHeaderStyle.Sprint("Last Deployment:"), timestampStyle.Sprint(result.FileName))
	if !record.IsObject() {
		data, err := json.Marshal(record)
		if err != nil {
			return err
		}
		fmt.Fprintf(r.out, "  %s %s\n", FormatWarning("not a JSON object:"), string(data))
		return nil
	}
	fmt.Fprintf(r.out, "  %-10s %s\n", labelStyle.Sprint("Created"), record.CreatedAt().UTC().Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(r.out, "  %-10s %s\n", labelStyle.Sprint("Deployer"), addressStyle.Sprint(record.Deployer))
	if record.DMTOwner != "" {
		fmt.Fprintf(r.out, "  %-10s %s\n", labelStyle.Sprint("DMT owner"), addressStyle.Sprint(record.DMTOwner))
	}
	for _, name := range record.ContractNames() {
		fmt.Fprintf(r.out, "  %-10s %s\n", labelStyle.Sprint(contractLabel(name)), addressStyle.Sprint(record.Contracts[name]))
	}
	return nil
}

// RenderDeploymentList renders all records as a table, newest first
func (r *DeploymentsRenderer) RenderDeploymentList(result *usecase.DeploymentListResult) error {
	if len(result.Deployments) == 0 {
		fmt.Fprintln(r.out, NoRecordsMessage)
		return nil
	}

	switch r.format {
	case FormatJSON:
		records := make([]*models.DeploymentRecord, 0, len(result.Deployments))
		for _, entry := range result.Deployments {
			records = append(records, entry.Record)
		}
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(r.out, string(data))
		return err
	case FormatYAML:
		views := make([]recordView, 0, len(result.Deployments))
		for _, entry := range result.Deployments {
			views = append(views, newRecordView(entry.FileName, entry.Record))
		}
		enc := yaml.NewEncoder(r.out)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(views)
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.AppendHeader(table.Row{"FILE", "CREATED", "DEPLOYER", "CONTRACTS"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft},
		{Number: 3, Align: text.AlignLeft},
		{Number: 4, Align: text.AlignLeft},
	})

	for _, entry := range result.Deployments {
		record := entry.Record
		contracts := make([]string, 0, len(record.Contracts))
		for _, name := range record.ContractNames() {
			contracts = append(contracts, fmt.Sprintf("%s %s", contractLabel(name), record.Contracts[name]))
		}
		t.AppendRow(table.Row{
			entry.FileName,
			timestampStyle.Sprint(record.CreatedAt().UTC().Format("2006-01-02 15:04:05")),
			addressStyle.Sprint(record.Deployer),
			strings.Join(contracts, "\n"),
		})
	}
	t.Render()

	fmt.Fprintf(r.out, "\n%d deployment(s)\n", result.Summary.Total)
	return nil
}
