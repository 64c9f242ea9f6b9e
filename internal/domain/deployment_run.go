package domain

import "time"

// DefaultTag is echoed back when a deploy request carries no tag
const DefaultTag = "default"

// ExecutionSpec describes one invocation of the deployment toolchain
type ExecutionSpec struct {
	// Network is the hardhat network selector (--network)
	Network string
	// WorkDir is the hardhat project directory the child runs in
	WorkDir string
	// Env is appended to the inherited process environment
	Env []string
}

// ExecutionResult is what the toolchain hands back: exit status and both output streams
type ExecutionResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success reports whether the toolchain exited cleanly
func (r *ExecutionResult) Success() bool {
	return r.ExitCode == 0
}

// DeploymentRun is the outcome of one triggered deployment
type DeploymentRun struct {
	ID        string
	Tag       string
	Network   string
	StartedAt time.Time
	Duration  time.Duration
	Result    ExecutionResult
}

// Success reports whether the run's toolchain exited cleanly
func (r *DeploymentRun) Success() bool {
	return r.Result.Success()
}
