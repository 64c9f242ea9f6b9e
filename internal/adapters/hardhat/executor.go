package hardhat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/trebuchet-org/treb-relay/internal/domain"
	"github.com/trebuchet-org/treb-relay/internal/domain/config"
	"github.com/trebuchet-org/treb-relay/internal/usecase"
)

// networkPlaceholder is replaced by the execution's network in command arguments
const networkPlaceholder = "{network}"

// Executor runs the deployment toolchain as a child process and captures its output
type Executor struct {
	log  *slog.Logger
	name string
	args []string
}

// NewExecutor creates the executor for `<toolchain> hardhat run <script> --network <network>`
func NewExecutor(cfg *config.RuntimeConfig, log *slog.Logger) *Executor {
	return NewCommandExecutor(cfg.Toolchain, []string{"hardhat", "run", cfg.DeployScript, "--network", networkPlaceholder}, log)
}

// NewCommandExecutor creates an executor for an arbitrary command line.
// Any argument equal to "{network}" is replaced by the network of each execution.
func NewCommandExecutor(name string, args []string, log *slog.Logger) *Executor {
	return &Executor{
		log:  log.With("component", "HardhatExecutor"),
		name: name,
		args: args,
	}
}

// CommandLine returns the command that would run for network, for display
func (e *Executor) CommandLine(network string) string {
	return strings.Join(append([]string{e.name}, e.buildArgs(network)...), " ")
}

// Execute starts the toolchain and blocks until it exits.
// The child is not bound to ctx: a cancelled request never kills a running deployment.
func (e *Executor) Execute(ctx context.Context, spec domain.ExecutionSpec) (*domain.ExecutionResult, error) {
	start := time.Now()
	args := e.buildArgs(spec.Network)

	cmd := exec.Command(e.name, args...)
	cmd.Dir = spec.WorkDir
	cmd.Env = append(os.Environ(), spec.Env...)

	stdout := newCapture(e.log, "stdout")
	stderr := newCapture(e.log, "stderr")
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	e.log.DebugContext(ctx, "running toolchain", "cmd", e.CommandLine(spec.Network), "dir", spec.WorkDir)

	if err := cmd.Start(); err != nil {
		return nil, err
	}

	waitErr := cmd.Wait()
	result := &domain.ExecutionResult{
		ExitCode: cmd.ProcessState.ExitCode(),
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}

	if waitErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			return nil, fmt.Errorf("toolchain output could not be collected: %w", waitErr)
		}
	}

	e.log.DebugContext(ctx, "toolchain exited", "exitCode", result.ExitCode, "duration", time.Since(start))
	return result, nil
}

func (e *Executor) buildArgs(network string) []string {
	args := make([]string, len(e.args))
	for i, arg := range e.args {
		if arg == networkPlaceholder {
			arg = network
		}
		args[i] = arg
	}
	return args
}

// capture accumulates one output stream as the child writes it
type capture struct {
	mu     sync.Mutex
	buf    strings.Builder
	log    *slog.Logger
	stream string
}

func newCapture(log *slog.Logger, stream string) *capture {
	return &capture{log: log, stream: stream}
}

func (c *capture) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.log.Debug("toolchain output", "stream", c.stream, "chunk", strings.TrimRight(string(p), "\n"))
	return c.buf.Write(p)
}

func (c *capture) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.String()
}

// Ensure the executor implements the port
var _ usecase.DeploymentExecutor = (*Executor)(nil)
