package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"
)

// DefaultRelayFile is looked up in the working directory
const DefaultRelayFile = "relay.toml"

// RelayFile is the optional relay.toml. Secrets are not read from it;
// they come from the environment or a .env file.
//
//	[project]
//	path = "/srv/contracts"
//	toolchain = "npx"
//	deploy_script = "scripts/deploy.js"
//
//	[network]
//	name = "skale"
//	rpc_url = "${SKALE_RPC}"
//	chain_id = "1444673419"
//
//	[server]
//	port = "3000"
//	serialize_deploys = true
//
//	[client]
//	url = "https://relay.internal:3000"
//
//	[log]
//	level = "info"
//	format = "json"
type RelayFile struct {
	Project ProjectSection `toml:"project"`
	Network NetworkSection `toml:"network"`
	Server  ServerSection  `toml:"server"`
	Client  ClientSection  `toml:"client"`
	Log     LogSection     `toml:"log"`
}

type ProjectSection struct {
	Path         string `toml:"path"`
	Toolchain    string `toml:"toolchain"`
	DeployScript string `toml:"deploy_script"`
}

type NetworkSection struct {
	Name    string `toml:"name"`
	RPCURL  string `toml:"rpc_url"`
	ChainID string `toml:"chain_id"`
}

type ServerSection struct {
	Port             string `toml:"port"`
	SerializeDeploys *bool  `toml:"serialize_deploys"`
	SignatureHeader  string `toml:"signature_header"`
	MaxBodyBytes     int64  `toml:"max_body_bytes"`
	ShutdownTimeout  string `toml:"shutdown_timeout"`
}

type ClientSection struct {
	URL string `toml:"url"`
}

type LogSection struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// LoadRelayFile decodes a relay.toml. ${VAR} references in string values are expanded.
// A missing file is reported with an error satisfying os.IsNotExist.
func LoadRelayFile(path string) (*RelayFile, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	var file RelayFile
	meta, err := toml.DecodeFile(path, &file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("failed to parse %s: unknown key %s", path, undecoded[0])
	}

	return &file, nil
}

// ApplyDefaults feeds the file's values to v as defaults, so the environment and flags override them
func (f *RelayFile) ApplyDefaults(v *viper.Viper) {
	setString := func(key, value string) {
		if value = os.ExpandEnv(value); value != "" {
			v.SetDefault(key, value)
		}
	}

	setString("project_path", f.Project.Path)
	setString("toolchain", f.Project.Toolchain)
	setString("deploy_script", f.Project.DeployScript)

	setString("network", f.Network.Name)
	setString("rpc_url", f.Network.RPCURL)
	setString("chain_id", f.Network.ChainID)

	setString("port", f.Server.Port)
	setString("signature_header", f.Server.SignatureHeader)
	setString("shutdown_timeout", f.Server.ShutdownTimeout)
	if f.Server.SerializeDeploys != nil {
		v.SetDefault("serialize_deploys", *f.Server.SerializeDeploys)
	}
	if f.Server.MaxBodyBytes > 0 {
		v.SetDefault("max_body_bytes", f.Server.MaxBodyBytes)
	}

	setString("relay_url", f.Client.URL)

	setString("log_level", f.Log.Level)
	setString("log_format", f.Log.Format)
}
