package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// It is built once at process entry and injected into every use case
type RuntimeConfig struct {
	// Core settings
	ProjectPath string // Hardhat project directory, also where deploy-*.json records land
	Network     *Network

	// Secrets
	PrivateKey string
	HMACSecret string

	// Toolchain settings
	Toolchain        string // Executable used to reach hardhat (npx by default)
	DeployScript     string // Script path relative to ProjectPath
	SerializeDeploys bool

	// HTTP relay settings
	Port            string
	SignatureHeader string
	MaxBodyBytes    int64
	ShutdownTimeout time.Duration

	// Client settings (trigger / remote-status)
	RelayURL string

	// Execution settings
	Debug     bool
	LogLevel  string
	LogFormat string // text or json
}

// Network represents the target network the toolchain deploys to
type Network struct {
	Name    string `json:"name"`
	ChainID uint64 `json:"chainId"`
	RPCURL  string `json:"rpcUrl"`

	// RawChainID keeps the configured value so it is passed to the toolchain untouched
	RawChainID string `json:"-"`
}

// Addr returns the listen address for the HTTP relay
func (c *RuntimeConfig) Addr() string {
	return ":" + c.Port
}
