package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRelayFile = `
[project]
path = "/srv/contracts"
deploy_script = "scripts/deploy-v2.js"

[network]
name = "skale-nebula"
rpc_url = "${TEST_RELAY_RPC}/v1"
chain_id = "1482601649"

[server]
port = "4000"
serialize_deploys = false
max_body_bytes = 4096

[client]
url = "https://relay.internal"

[log]
level = "debug"
format = "JSON"
`

func TestLoadRelayFile(t *testing.T) {
	dir := isolate(t)
	t.Setenv("TEST_RELAY_RPC", "https://mainnet.skalenodes.com")
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultRelayFile), []byte(sampleRelayFile), 0644))

	v, err := SetupViper(newCommand())
	require.NoError(t, err)
	cfg, err := Provider(v)
	require.NoError(t, err)

	assert.Equal(t, "/srv/contracts", cfg.ProjectPath)
	assert.Equal(t, "scripts/deploy-v2.js", cfg.DeployScript)
	assert.Equal(t, "npx", cfg.Toolchain)
	assert.Equal(t, "skale-nebula", cfg.Network.Name)
	assert.Equal(t, "https://mainnet.skalenodes.com/v1", cfg.Network.RPCURL)
	assert.Equal(t, uint64(1482601649), cfg.Network.ChainID)
	assert.Equal(t, "4000", cfg.Port)
	assert.False(t, cfg.SerializeDeploys)
	assert.Equal(t, int64(4096), cfg.MaxBodyBytes)
	assert.Equal(t, "https://relay.internal", cfg.RelayURL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadRelayFile_EnvWins(t *testing.T) {
	dir := isolate(t)
	t.Setenv("PORT", "5000")
	t.Setenv("HARDHAT_PROJECT_PATH", dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultRelayFile), []byte(sampleRelayFile), 0644))

	v, err := SetupViper(newCommand())
	require.NoError(t, err)
	cfg, err := Provider(v)
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, dir, cfg.ProjectPath)
}

func TestLoadRelayFile_Errors(t *testing.T) {
	dir := isolate(t)

	t.Run("missing default file is fine", func(t *testing.T) {
		_, err := SetupViper(newCommand())
		assert.NoError(t, err)
	})

	t.Run("missing explicit file", func(t *testing.T) {
		cmd := newCommand()
		require.NoError(t, cmd.Flags().Set("config", filepath.Join(dir, "nope.toml")))
		_, err := SetupViper(cmd)
		assert.Error(t, err)
	})

	t.Run("unknown key", func(t *testing.T) {
		path := filepath.Join(dir, "typo.toml")
		require.NoError(t, os.WriteFile(path, []byte("[server]\nprot = \"3000\"\n"), 0644))
		_, err := LoadRelayFile(path)
		assert.ErrorContains(t, err, "server.prot")
	})

	t.Run("invalid toml", func(t *testing.T) {
		path := filepath.Join(dir, "broken.toml")
		require.NoError(t, os.WriteFile(path, []byte("[server\n"), 0644))
		_, err := LoadRelayFile(path)
		assert.Error(t, err)
	})
}
