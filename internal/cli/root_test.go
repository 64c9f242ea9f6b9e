package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/treb-relay/internal/config"
	"github.com/trebuchet-org/treb-relay/internal/domain"
)

// isolate runs the test in an empty directory with every relay variable unset
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	for _, s := range config.Settings {
		t.Setenv(s.Env, "")
		require.NoError(t, os.Unsetenv(s.Env))
	}
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCmd_Groups(t *testing.T) {
	root := NewRootCmd()

	groups := map[string]string{}
	for _, c := range root.Commands() {
		groups[c.Name()] = c.GroupID
	}

	assert.Equal(t, "relay", groups["serve"])
	for _, name := range []string{"status", "list", "deployer", "deploy", "check"} {
		assert.Equal(t, "local", groups[name], name)
	}
	for _, name := range []string{"sign", "trigger", "remote-status"} {
		assert.Equal(t, "remote", groups[name], name)
	}
	assert.Contains(t, groups, "version")
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "treb-relay version dev"))
}

func TestServeCmd_RefusesToStartWithoutConfig(t *testing.T) {
	isolate(t)
	t.Setenv("HMAC_SECRET", "s3cret")

	_, err := execute(t, "serve")

	var missing *domain.MissingConfigError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"HARDHAT_PROJECT_PATH", "SKALE_RPC_URL", "SKALE_CHAIN_ID", "DEPLOYER_PRIVATE_KEY"}, missing.Keys)
}

func TestSignCmd(t *testing.T) {
	isolate(t)
	t.Setenv("HMAC_SECRET", "Jefe")

	out, err := execute(t, "sign", "--data", "what do ya want for nothing?")
	require.NoError(t, err)
	assert.Equal(t, "5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843\n", out)

	out, err = execute(t, "sign", "--header", "--data", "what do ya want for nothing?")
	require.NoError(t, err)
	assert.Equal(t, "X-Signature: 5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843\n", out)
}

func TestSignCmd_File(t *testing.T) {
	dir := isolate(t)
	t.Setenv("HMAC_SECRET", "Jefe")
	path := filepath.Join(dir, "body.txt")
	require.NoError(t, os.WriteFile(path, []byte("what do ya want for nothing?"), 0644))

	out, err := execute(t, "sign", path)
	require.NoError(t, err)
	assert.Equal(t, "5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843\n", out)
}

func TestSignCmd_MissingSecret(t *testing.T) {
	isolate(t)

	_, err := execute(t, "sign", "--data", "{}")
	assert.EqualError(t, err, "Missing env HMAC_SECRET")
}

func TestDeployerCmd(t *testing.T) {
	isolate(t)
	t.Setenv("DEPLOYER_PRIVATE_KEY", "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80")

	out, err := execute(t, "deployer")
	require.NoError(t, err)
	assert.Equal(t, "Deployer address: 0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266\n", out)
}

func TestDeployerCmd_MissingKey(t *testing.T) {
	isolate(t)

	_, err := execute(t, "deployer")
	assert.EqualError(t, err, "DEPLOYER_PRIVATE_KEY missing")
}

func TestStatusCmd(t *testing.T) {
	dir := isolate(t)
	t.Setenv("HARDHAT_PROJECT_PATH", dir)

	out, err := execute(t, "status")
	require.NoError(t, err)
	assert.Equal(t, "No deployment records found.\n", out)

	record := `{"timestamp":200,"deployer":"0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266","vault":"0x5FbDB2315678afecb367f032d93F642f64180aa3"}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "deploy-100.json"), []byte(`{"timestamp":100,"deployer":"0x0000000000000000000000000000000000000001"}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "deploy-200.json"), []byte(record), 0644))

	out, err = execute(t, "status", "--output", "json")
	require.NoError(t, err)
	assert.JSONEq(t, record, out)

	out, err = execute(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "deploy-200.json")
	assert.Contains(t, out, "Vault")
	assert.Contains(t, out, "0x5FbDB2315678afecb367f032d93F642f64180aa3")

	out, err = execute(t, "status", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "file: deploy-200.json")
	assert.Contains(t, out, "timestamp: 200")

	_, err = execute(t, "status", "-o", "xml")
	assert.ErrorContains(t, err, "invalid output format")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "deploy-300.json"), []byte(`[1,2]`), 0644))
	out, err = execute(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "deploy-300.json")
	assert.Contains(t, out, "not a JSON object")
	assert.Contains(t, out, "[1,2]")
}

func TestListCmd(t *testing.T) {
	dir := isolate(t)
	t.Setenv("HARDHAT_PROJECT_PATH", dir)
	for _, name := range []string{"deploy-100.json", "deploy-300.json", "deploy-200.json"} {
		ts := strings.TrimSuffix(strings.TrimPrefix(name, "deploy-"), ".json")
		body := `{"timestamp":` + ts + `,"deployer":"0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"}`
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0644))
	}

	out, err := execute(t, "list")
	require.NoError(t, err)

	i300 := strings.Index(out, "deploy-300.json")
	i200 := strings.Index(out, "deploy-200.json")
	i100 := strings.Index(out, "deploy-100.json")
	require.True(t, i300 >= 0 && i200 >= 0 && i100 >= 0, out)
	assert.Less(t, i300, i200)
	assert.Less(t, i200, i100)
	assert.Contains(t, out, "3 deployment(s)")
	// Commands without a spinner report no progress
	assert.NotContains(t, out, "Deployment records loaded")
}

func TestExitError(t *testing.T) {
	err := error(&ExitError{Code: 3})
	assert.EqualError(t, err, "exit status 3")

	wrapped := &ExitError{Code: 1, Err: domain.ErrChainMismatch}
	assert.True(t, errors.Is(wrapped, domain.ErrChainMismatch))
}
