package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListJSONFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"testnet.json", "liquid.JSON", "notes.txt", "mainnet.json"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.json"), 0o700))

	files, err := ListJSONFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "liquid.JSON"),
		filepath.Join(dir, "mainnet.json"),
		filepath.Join(dir, "testnet.json"),
	}, files)

	_, err = ListJSONFiles(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestFileKey(t *testing.T) {
	assert.Equal(t, "liquid", FileKey("overrides/liquid.json"))
	assert.Equal(t, "testnet-liquid", FileKey("testnet-liquid.json"))
	assert.Equal(t, "plain", FileKey("plain"))
}

func TestGetEnv(t *testing.T) {
	t.Setenv("NETWORK_REGISTRY_TEST_ENV", "set")
	assert.Equal(t, "set", GetEnv("NETWORK_REGISTRY_TEST_ENV", "fallback"))

	t.Setenv("NETWORK_REGISTRY_TEST_ENV", "")
	assert.Equal(t, "fallback", GetEnv("NETWORK_REGISTRY_TEST_ENV", "fallback"))
	assert.Equal(t, "fallback", GetEnv("NETWORK_REGISTRY_TEST_UNSET", "fallback"))
}
