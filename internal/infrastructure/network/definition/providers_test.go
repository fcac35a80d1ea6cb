package networkdefinition

import (
	"sync"
	"testing"

	"network_registry/internal/domain/entity"
	"network_registry/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBundled_LoadsEveryNetwork(t *testing.T) {
	provider, err := Bundled()
	require.NoError(t, err)

	assert.Equal(t, []string{
		"electrum-mainnet",
		"electrum-testnet",
		"greenlight-mainnet",
		"greenlight-testnet",
		"liquid",
		"localtest",
		"localtest-liquid",
		"mainnet",
		"testnet",
		"testnet-liquid",
	}, provider.Names())

	again, err := Bundled()
	require.NoError(t, err)
	assert.Same(t, provider, again)
}

func TestBundled_Classification(t *testing.T) {
	provider, err := Bundled()
	require.NoError(t, err)

	cases := map[string]entity.NetworkType{
		"mainnet":            entity.NetworkTypeMainnet,
		"testnet":            entity.NetworkTypeTestnet,
		"liquid":             entity.NetworkTypeLiquid,
		"testnet-liquid":     entity.NetworkTypeLiquidTestnet,
		"greenlight-mainnet": entity.NetworkTypeLightning,
		"greenlight-testnet": entity.NetworkTypeLightningTestnet,
	}
	for key, expected := range cases {
		def, ok := provider.GetNetworkDefinitionByName(key)
		require.True(t, ok, key)
		assert.Equal(t, expected, def.Type, key)
		assert.Equal(t, key, def.Network)
	}

	liquid, _ := provider.GetNetworkDefinitionByName("liquid")
	assert.Equal(t, "lq", liquid.Blech32Prefix)
	assert.Equal(t, uint32(12), liquid.BlindedPrefix)
	assert.Equal(t, entity.ServerTypeGreen, liquid.ServerType)
}

func TestBundled_DocumentInvariants(t *testing.T) {
	provider, err := Bundled()
	require.NoError(t, err)

	for _, def := range provider.GetAllNetworkDefinitions() {
		assert.True(t, def.ServerType.Valid(), "%s server type %q", def.Network, def.ServerType)
		for _, kind := range entity.EndpointKinds {
			endpoint := def.Endpoint(kind)
			if endpoint.OnionURL != "" {
				assert.NotEmpty(t, endpoint.URL, "%s %s has an onion URL without a clear-net sibling", def.Network, kind)
			}
		}
		for i := 1; i < len(def.CSVBuckets); i++ {
			assert.LessOrEqual(t, def.CSVBuckets[i-1], def.CSVBuckets[i], "%s csv buckets", def.Network)
		}
		if def.IsLiquid() {
			assert.NotEmpty(t, def.PolicyAsset, def.Network)
		}
	}
}

func TestProvider_ReturnsCopies(t *testing.T) {
	table := map[string]entity.NetworkConfig{
		"testnet": {Network: "testnet", CSVBuckets: []uint32{144, 4320}, SPVServers: []string{"a"}},
	}
	provider := NewNetworkDefinitionProvider(logger.Nop{}, table)

	table["testnet"].CSVBuckets[0] = 7
	delete(table, "testnet")

	def, ok := provider.GetNetworkDefinitionByName("testnet")
	require.True(t, ok)
	assert.Equal(t, []uint32{144, 4320}, def.CSVBuckets)

	def.CSVBuckets[1] = 9
	all := provider.GetAllNetworkDefinitions()
	require.Len(t, all, 1)
	assert.Equal(t, []uint32{144, 4320}, all[0].CSVBuckets)

	names := provider.Names()
	names[0] = "changed"
	assert.Equal(t, []string{"testnet"}, provider.Names())
}

func TestProvider_Misses(t *testing.T) {
	provider := NewNetworkDefinitionProvider(logger.Nop{}, nil)
	_, ok := provider.GetNetworkDefinitionByName("mainnet")
	assert.False(t, ok)
	assert.Empty(t, provider.GetAllNetworkDefinitions())

	var nilProvider *NetworkDefinitionProvider
	_, ok = nilProvider.GetNetworkDefinitionByName("mainnet")
	assert.False(t, ok)
	assert.Empty(t, nilProvider.GetAllNetworkDefinitions())
	assert.Empty(t, nilProvider.Names())
}

func TestProvider_ConcurrentReaders(t *testing.T) {
	provider, err := Bundled()
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, name := range provider.Names() {
				def, ok := provider.GetNetworkDefinitionByName(name)
				if assert.True(t, ok) {
					def.CSVBuckets = append(def.CSVBuckets, 1)
				}
			}
		}()
	}
	wg.Wait()

	mainnet, _ := provider.GetNetworkDefinitionByName("mainnet")
	assert.Equal(t, []uint32{25920, 51840, 65535}, mainnet.CSVBuckets)
}
