package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"network_registry/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--no-color"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestList(t *testing.T) {
	out, err := run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "testnet-liquid")
	assert.Contains(t, out, "liquid-testnet")
	assert.Contains(t, out, "greenlight")
}

func TestShow(t *testing.T) {
	out, err := run(t, "show", "liquid")
	require.NoError(t, err)
	assert.Contains(t, out, `"blech32_prefix": "lq"`)
	assert.Contains(t, out, `"liquid": true`)

	_, err = run(t, "show", "dogecoin")
	assert.ErrorIs(t, err, entity.ErrNetworkNotFound)
}

func TestEndpoints(t *testing.T) {
	out, err := run(t, "endpoints", "mainnet", "--tor")
	require.NoError(t, err)
	assert.Contains(t, out, ".onion")

	out, err = run(t, "endpoints", "greenlight-mainnet")
	require.NoError(t, err)
	assert.Contains(t, out, "(not configured)")
}

func TestParams(t *testing.T) {
	out, err := run(t, "params", "liquid")
	require.NoError(t, err)
	assert.Contains(t, out, "blech32 hrp:   lq")
	assert.Contains(t, out, "confidential:  12")
}

func TestOverrideDirFlag(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "signet.json"),
		[]byte(`{"name":"Signet","bech32_prefix":"tb","p2pkh_version":111,"p2sh_version":196}`), 0o600))

	out, err := run(t, "--override-dir", dir, "show", "signet")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "Signet"`)
	assert.Contains(t, out, `"network": "signet"`)
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	require.NoError(t, os.WriteFile(good, []byte(`{
		"mainnet": {"mainnet": true, "server_type": "green"},
		"odd": {"server_type": "rpc", "p2sh_version": 4096}
	}`), 0o600))

	out, err := run(t, "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "[OK] mainnet (mainnet)")
	assert.Contains(t, out, `[WARN] odd: unknown server type "rpc"`)
	assert.Contains(t, out, "[WARN] odd: network \"odd\": p2sh_version 4096")
	assert.Contains(t, out, "2 networks, 1 with warnings")

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"liquid": {"liquid": true, "lightning": true}}`), 0o600))
	out, err = run(t, "validate", bad)
	require.ErrorIs(t, err, entity.ErrMalformedInput)
	assert.Contains(t, out, "[FAIL]")
}
