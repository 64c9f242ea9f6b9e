package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/trebuchet-org/treb-relay/internal/usecase"
)

// SpinnerProgressReporter shows a spinner while a deployment runs and prints one line per finished stage
type SpinnerProgressReporter struct {
	mu             sync.Mutex
	spinner        *spinner.Spinner
	out            io.Writer
	currentStage   string
	stageStartTime time.Time
}

// NewSpinnerProgressReporter creates a new spinner-based progress reporter on stderr
func NewSpinnerProgressReporter() *SpinnerProgressReporter {
	return newSpinnerProgressReporter(os.Stderr)
}

func newSpinnerProgressReporter(out io.Writer) *SpinnerProgressReporter {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.HideCursor = false

	return &SpinnerProgressReporter{
		spinner: s,
		out:     out,
	}
}

// OnProgress handles progress events
func (r *SpinnerProgressReporter) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	previous, started := r.currentStage, r.stageStartTime
	r.currentStage = event.Stage
	r.stageStartTime = time.Now()

	if event.Spinner {
		r.spinner.Suffix = " " + event.Message
		if !r.spinner.Active() {
			r.spinner.Start()
		}
		return
	}

	if r.spinner.Active() {
		r.spinner.Stop()
	}

	switch event.Stage {
	case usecase.StageCompleted:
		fmt.Fprintf(r.out, "%s %s%s\n", color.GreenString("✓"), event.Message, elapsed(previous, started))
	case usecase.StageFailed:
		fmt.Fprintf(r.out, "%s %s%s\n", color.RedString("✗"), event.Message, elapsed(previous, started))
	case usecase.StageWaiting:
		fmt.Fprintf(r.out, "%s %s\n", color.YellowString("●"), event.Message)
	}
}

// Info prints an info message
func (r *SpinnerProgressReporter) Info(message string) {
	r.pause(func() { color.New(color.FgCyan).Fprintln(r.out, message) })
}

// Error prints an error message
func (r *SpinnerProgressReporter) Error(message string) {
	r.pause(func() { color.New(color.FgRed).Fprintln(r.out, message) })
}

// Stop halts the spinner if it is still running
func (r *SpinnerProgressReporter) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.spinner.Active() {
		r.spinner.Stop()
	}
}

func (r *SpinnerProgressReporter) pause(print func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}
	print()
	if wasActive {
		r.spinner.Start()
	}
}

// elapsed renders the time spent in the deploying stage
func elapsed(stage string, since time.Time) string {
	if stage != usecase.StageDeploying || since.IsZero() {
		return ""
	}
	return fmt.Sprintf(" (%s)", time.Since(since).Round(time.Millisecond))
}

// Ensure SpinnerProgressReporter implements ProgressSink
var _ usecase.ProgressSink = (*SpinnerProgressReporter)(nil)
