package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/treb-relay/internal/domain"
	"github.com/trebuchet-org/treb-relay/internal/domain/config"
)

// Setting maps a viper key to the environment variable it is read from
type Setting struct {
	Key     string
	Env     string
	Default any
}

// Settings lists every configuration key. Required keys have no default.
var Settings = []Setting{
	{Key: "project_path", Env: "HARDHAT_PROJECT_PATH"},
	{Key: "rpc_url", Env: "SKALE_RPC_URL"},
	{Key: "chain_id", Env: "SKALE_CHAIN_ID"},
	{Key: "private_key", Env: "DEPLOYER_PRIVATE_KEY"},
	{Key: "hmac_secret", Env: "HMAC_SECRET"},
	{Key: "port", Env: "PORT", Default: "3000"},
	{Key: "network", Env: "RELAY_NETWORK", Default: "skale"},
	{Key: "toolchain", Env: "RELAY_TOOLCHAIN", Default: "npx"},
	{Key: "deploy_script", Env: "RELAY_DEPLOY_SCRIPT", Default: "scripts/deploy.js"},
	{Key: "serialize_deploys", Env: "RELAY_SERIALIZE_DEPLOYS", Default: true},
	{Key: "signature_header", Env: "RELAY_SIGNATURE_HEADER", Default: "X-Signature"},
	{Key: "max_body_bytes", Env: "RELAY_MAX_BODY_BYTES", Default: int64(1 << 20)},
	{Key: "shutdown_timeout", Env: "RELAY_SHUTDOWN_TIMEOUT", Default: "30s"},
	{Key: "relay_url", Env: "RELAY_URL", Default: "http://localhost:3000"},
	{Key: "debug", Env: "RELAY_DEBUG", Default: false},
	{Key: "log_level", Env: "RELAY_LOG_LEVEL", Default: "info"},
	{Key: "log_format", Env: "RELAY_LOG_FORMAT", Default: "text"},
}

// Provider creates RuntimeConfig for Wire dependency injection.
// Missing required keys are not an error here; commands check what they need with Require.
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectPath := strings.TrimSpace(v.GetString("project_path"))
	if projectPath != "" {
		// Project .env never overrides values already in the environment
		LoadDotEnv(projectPath)
	}

	cfg := &config.RuntimeConfig{
		ProjectPath:      projectPath,
		PrivateKey:       v.GetString("private_key"),
		HMACSecret:       v.GetString("hmac_secret"),
		Toolchain:        v.GetString("toolchain"),
		DeployScript:     v.GetString("deploy_script"),
		SerializeDeploys: v.GetBool("serialize_deploys"),
		Port:             v.GetString("port"),
		SignatureHeader:  v.GetString("signature_header"),
		MaxBodyBytes:     v.GetInt64("max_body_bytes"),
		ShutdownTimeout:  v.GetDuration("shutdown_timeout"),
		RelayURL:         v.GetString("relay_url"),
		Debug:            v.GetBool("debug"),
		LogLevel:         v.GetString("log_level"),
		LogFormat:        strings.ToLower(strings.TrimSpace(v.GetString("log_format"))),
		Network: &config.Network{
			Name:       v.GetString("network"),
			RPCURL:     v.GetString("rpc_url"),
			RawChainID: strings.TrimSpace(v.GetString("chain_id")),
		},
	}

	if cfg.Network.RawChainID != "" {
		chainID, err := ParseChainID(cfg.Network.RawChainID)
		if err != nil {
			return nil, &domain.InvalidConfigError{Key: "SKALE_CHAIN_ID", Reason: err.Error()}
		}
		cfg.Network.ChainID = chainID
	}
	if cfg.Port == "" {
		cfg.Port = "3000"
	}
	if cfg.MaxBodyBytes <= 0 {
		return nil, &domain.InvalidConfigError{Key: "RELAY_MAX_BODY_BYTES", Reason: "must be positive"}
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, &domain.InvalidConfigError{Key: "RELAY_LOG_FORMAT", Reason: "must be text or json"}
	}
	if cfg.SignatureHeader == "" {
		return nil, &domain.InvalidConfigError{Key: "RELAY_SIGNATURE_HEADER", Reason: "must not be empty"}
	}

	return cfg, nil
}

// ParseChainID accepts a decimal or 0x-prefixed hex chain ID
func ParseChainID(raw string) (uint64, error) {
	s := strings.TrimSpace(raw)
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
		base = 16
	}
	id, err := strconv.ParseUint(s, base, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a chain ID", raw)
	}
	return id, nil
}

// SetupViper creates and configures a viper instance.
// Precedence: flags, then environment (including .env), then relay.toml, then defaults.
func SetupViper(cmd *cobra.Command) (*viper.Viper, error) {
	if wd, err := os.Getwd(); err == nil {
		LoadDotEnv(wd)
	}

	v := viper.New()
	for _, s := range Settings {
		if err := v.BindEnv(s.Key, s.Env); err != nil {
			return nil, err
		}
		if s.Default != nil {
			v.SetDefault(s.Key, s.Default)
		}
	}

	configPath := DefaultRelayFile
	explicit := false
	if f := cmd.Flags().Lookup("config"); f != nil && f.Changed {
		configPath = f.Value.String()
		explicit = true
	}
	file, err := LoadRelayFile(configPath)
	if err != nil {
		if explicit || !os.IsNotExist(err) {
			return nil, err
		}
	} else {
		file.ApplyDefaults(v)
	}

	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if err := v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f); err != nil && bindErr == nil {
			bindErr = err
		}
	})
	if bindErr != nil {
		return nil, bindErr
	}

	return v, nil
}

// Require reports every listed key that is not set, by its environment name
func Require(cfg *config.RuntimeConfig, keys ...string) error {
	var missing []string
	for _, key := range keys {
		if !isSet(cfg, key) {
			missing = append(missing, envName(key))
		}
	}
	if len(missing) > 0 {
		return &domain.MissingConfigError{Keys: missing}
	}
	return nil
}

// ServeKeys are the settings the relay refuses to start without
var ServeKeys = []string{"project_path", "rpc_url", "chain_id", "private_key", "hmac_secret"}

func isSet(cfg *config.RuntimeConfig, key string) bool {
	switch key {
	case "project_path":
		return cfg.ProjectPath != ""
	case "rpc_url":
		return cfg.Network != nil && cfg.Network.RPCURL != ""
	case "chain_id":
		return cfg.Network != nil && cfg.Network.RawChainID != ""
	case "private_key":
		return cfg.PrivateKey != ""
	case "hmac_secret":
		return cfg.HMACSecret != ""
	case "relay_url":
		return cfg.RelayURL != ""
	default:
		panic(fmt.Sprintf("config: unknown required key %q", key))
	}
}

func envName(key string) string {
	for _, s := range Settings {
		if s.Key == key {
			return s.Env
		}
	}
	return strings.ToUpper(key)
}
