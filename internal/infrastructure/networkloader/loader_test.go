package networkloader

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"network_registry/internal/domain/entity"
	networkdefinition "network_registry/internal/infrastructure/network/definition"
	"network_registry/internal/infrastructure/networkcodec"
	"network_registry/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"
	"go.uber.org/zap"
)

// serveDocument serves body with status on an in-memory listener and returns
// a client dialing it.
func serveDocument(t *testing.T, status int, body []byte) *fasthttp.Client {
	t.Helper()
	ln := fasthttputil.NewInmemoryListener()
	srv := &fasthttp.Server{Handler: func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(status)
		ctx.SetContentType("application/json")
		ctx.SetBody(body)
	}}
	go func() { _ = srv.Serve(ln) }()
	t.Cleanup(func() { _ = ln.Close() })

	return &fasthttp.Client{Dial: func(string) (net.Conn, error) { return ln.Dial() }}
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, data, 0o600))
}

func encodeTable(t *testing.T, table map[string]entity.NetworkConfig) []byte {
	t.Helper()
	data, err := networkcodec.EncodeTable(table)
	require.NoError(t, err)
	return data
}

func TestLoader_BundledOnly(t *testing.T) {
	loader := NewLoader(Options{Bundled: networkdefinition.BundledDocument}, zap.NewNop(), nil)

	table, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, table, 10)
	assert.Equal(t, entity.NetworkTypeLiquid, table["liquid"].Type)
}

func TestLoader_Precedence(t *testing.T) {
	remote := encodeTable(t, map[string]entity.NetworkConfig{
		"mainnet": {Network: "mainnet", Name: "Remote Bitcoin", Type: entity.NetworkTypeMainnet},
		"liquid":  {Network: "liquid", Name: "Remote Liquid", Type: entity.NetworkTypeLiquid},
	})

	dir := t.TempDir()
	overrideFile := filepath.Join(dir, "overrides.json")
	writeFile(t, overrideFile, encodeTable(t, map[string]entity.NetworkConfig{
		"liquid": {Network: "liquid", Name: "File Liquid", Type: entity.NetworkTypeLiquid},
		"signet": {Network: "signet", Name: "Signet", Bech32Prefix: "tb"},
	}))

	overrideDir := filepath.Join(dir, "networks.d")
	require.NoError(t, os.Mkdir(overrideDir, 0o700))
	writeFile(t, filepath.Join(overrideDir, "liquid.json"), []byte(`{"name":"Dir Liquid","mainnet":true,"liquid":true}`))
	writeFile(t, filepath.Join(overrideDir, "regtest.json"), []byte(`{"network":"regtest","development":true}`))
	writeFile(t, filepath.Join(overrideDir, "README.md"), []byte("not a network"))

	loader := NewLoader(Options{
		Bundled:      networkdefinition.BundledDocument,
		RemoteURL:    "http://networks.test/networks.json",
		OverrideFile: overrideFile,
		OverrideDir:  overrideDir,
		HTTPClient:   serveDocument(t, fasthttp.StatusOK, remote),
	}, zap.NewNop(), nil)

	table, err := loader.Load(context.Background())
	require.NoError(t, err)

	assert.Len(t, table, 12)
	assert.Equal(t, "Remote Bitcoin", table["mainnet"].Name)
	assert.Empty(t, table["mainnet"].WampURL, "records are replaced whole")
	assert.Equal(t, "Dir Liquid", table["liquid"].Name)
	assert.Equal(t, "liquid", table["liquid"].Network)
	assert.Equal(t, "Signet", table["signet"].Name)
	assert.True(t, table["regtest"].Development)
	assert.NotEmpty(t, table["testnet"].WampURL, "untouched networks keep the bundled record")
}

func TestLoader_ContextDeadline(t *testing.T) {
	remote := encodeTable(t, map[string]entity.NetworkConfig{
		"testnet": {Network: "testnet", Name: "Remote Testnet"},
	})
	loader := NewLoader(Options{
		Bundled:    networkdefinition.BundledDocument,
		RemoteURL:  "http://networks.test/networks.json",
		HTTPClient: serveDocument(t, fasthttp.StatusOK, remote),
	}, zap.NewNop(), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	table, err := loader.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Remote Testnet", table["testnet"].Name)
}

func TestLoader_RemoteStatus(t *testing.T) {
	loader := NewLoader(Options{
		Bundled:    networkdefinition.BundledDocument,
		RemoteURL:  "http://networks.test/networks.json",
		HTTPClient: serveDocument(t, fasthttp.StatusServiceUnavailable, nil),
	}, zap.NewNop(), nil)

	_, err := loader.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}

func TestLoader_MalformedSources(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	_, err := NewLoader(Options{
		Bundled:    networkdefinition.BundledDocument,
		RemoteURL:  "http://networks.test/networks.json",
		HTTPClient: serveDocument(t, fasthttp.StatusOK, []byte(`[1, 2]`)),
	}, zap.NewNop(), m).Load(context.Background())
	require.ErrorIs(t, err, entity.ErrMalformedInput)
	assert.Contains(t, err.Error(), SourceRemote)

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "liquid.json"), []byte(`{"p2sh_version": "thirty-nine"}`))
	_, err = NewLoader(Options{Bundled: networkdefinition.BundledDocument, OverrideDir: dir}, zap.NewNop(), m).
		Load(context.Background())
	require.ErrorIs(t, err, entity.ErrMalformedInput)
	assert.Contains(t, err.Error(), "liquid.json")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.DecodeFailures.WithLabelValues(SourceRemote)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DecodeFailures.WithLabelValues(SourceOverrideDir)))
}

func TestLoader_OverrideDirKeyMismatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "liquid.json"), []byte(`{"network":"mainnet"}`))

	_, err := NewLoader(Options{Bundled: networkdefinition.BundledDocument, OverrideDir: dir}, zap.NewNop(), nil).
		Load(context.Background())
	require.ErrorIs(t, err, entity.ErrMalformedInput)
	assert.Contains(t, err.Error(), "does not match")
}

func TestLoader_Errors(t *testing.T) {
	_, err := NewLoader(Options{}, nil, nil).Load(context.Background())
	assert.EqualError(t, err, "bundled networks document is empty")

	_, err = NewLoader(Options{
		Bundled:      networkdefinition.BundledDocument,
		OverrideFile: filepath.Join(t.TempDir(), "missing.json"),
	}, nil, nil).Load(context.Background())
	assert.ErrorContains(t, err, "failed to read override file")

	_, err = NewLoader(Options{
		Bundled:     networkdefinition.BundledDocument,
		OverrideDir: filepath.Join(t.TempDir(), "missing"),
	}, nil, nil).Load(context.Background())
	assert.ErrorContains(t, err, "failed to read directory")
}

func TestLoader_EmptyOverrideDir(t *testing.T) {
	table, err := NewLoader(Options{
		Bundled:     networkdefinition.BundledDocument,
		OverrideDir: t.TempDir(),
	}, zap.NewNop(), nil).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, table, 10)
}
