package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/trebuchet-org/treb-relay/internal/domain"
)

// RunRenderer prints the outcome of a deployment, local or remote
type RunRenderer struct {
	out io.Writer
}

func NewRunRenderer(out io.Writer) *RunRenderer {
	return &RunRenderer{out: out}
}

// RenderRun prints a local run
func (r *RunRenderer) RenderRun(run *domain.DeploymentRun) error {
	r.printStreams(run.Result.Stdout, run.Result.Stderr)

	summary := fmt.Sprintf("Deployment %s (tag %q) on %s finished in %s", run.ID, run.Tag, run.Network, run.Duration.Round(time.Millisecond))
	if run.Success() {
		fmt.Fprintln(r.out, FormatSuccess(summary))
	} else {
		fmt.Fprintln(r.out, FormatError(fmt.Sprintf("%s with exit code %d", summary, run.Result.ExitCode)))
	}
	return nil
}

// RenderDeployResponse prints a relay's /deploy answer
func (r *RunRenderer) RenderDeployResponse(resp *domain.DeployResponse) error {
	if resp.Error != "" {
		fmt.Fprintln(r.out, FormatError(resp.Error))
		return nil
	}

	r.printStreams(resp.Stdout, resp.Stderr)

	exitCode := -1
	if resp.ExitCode != nil {
		exitCode = *resp.ExitCode
	}
	if resp.Success {
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Relay deployed tag %q", resp.Tag)))
	} else {
		fmt.Fprintln(r.out, FormatError(fmt.Sprintf("Relay deployment of tag %q failed with exit code %d", resp.Tag, exitCode)))
	}
	return nil
}

func (r *RunRenderer) printStreams(stdout, stderr string) {
	if s := strings.TrimRight(stdout, "\n"); s != "" {
		fmt.Fprintln(r.out, s)
	}
	if s := strings.TrimRight(stderr, "\n"); s != "" {
		fmt.Fprintln(r.out, color.New(color.FgYellow).Sprint(s))
	}
}
