package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrNoDeployments is returned when the project directory holds no deployment records yet
	ErrNoDeployments = errors.New("no deployments yet")

	// ErrInvalidSignature is returned when a request signature is missing, malformed or wrong
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrLaunchFailed is returned when the deployment toolchain process could not be started
	ErrLaunchFailed = errors.New("failed to launch deployment toolchain")

	// ErrInvalidAddress is returned when an Ethereum address is invalid
	ErrInvalidAddress = errors.New("invalid address")

	// ErrChainMismatch is returned when the RPC endpoint reports a different chain ID than configured
	ErrChainMismatch = errors.New("chain ID mismatch")

	// ErrInvalidRecord is returned when a deployment record is structurally invalid
	ErrInvalidRecord = errors.New("invalid deployment record")
)

// MissingConfigError lists every required configuration key that was not set.
type MissingConfigError struct {
	Keys []string
}

func (e *MissingConfigError) Error() string {
	if len(e.Keys) == 1 {
		return fmt.Sprintf("Missing env %s", e.Keys[0])
	}
	return fmt.Sprintf("Missing env %s", strings.Join(e.Keys, ", "))
}

// InvalidConfigError reports a configuration key that is set but unusable.
type InvalidConfigError struct {
	Key    string
	Reason string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid value for %s: %s", e.Key, e.Reason)
}
