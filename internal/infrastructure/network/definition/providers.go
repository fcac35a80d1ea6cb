package networkdefinition

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"network_registry/internal/app/port"
	"network_registry/internal/domain/entity"
	"network_registry/internal/infrastructure/networkcodec"
	"network_registry/internal/pkg/logger"
)

// BundledDocument is the networks document shipped with the binary.
//
//go:embed networks.json
var BundledDocument []byte

// NetworkDefinitionProvider provides network definitions. It is immutable
// after construction and safe for concurrent readers.
type NetworkDefinitionProvider struct {
	logger  port.Logger
	defs    map[string]entity.NetworkConfig
	ordered []string
}

var bundled = sync.OnceValues(func() (*NetworkDefinitionProvider, error) {
	table, err := networkcodec.DecodeTable(BundledDocument)
	if err != nil {
		return nil, fmt.Errorf("failed to decode bundled networks document: %w", err)
	}
	return NewNetworkDefinitionProvider(logger.NewSlogAdapter(), table), nil
})

// Bundled returns the process-wide provider built from BundledDocument. It is
// constructed on first use and never torn down.
func Bundled() (*NetworkDefinitionProvider, error) {
	return bundled()
}

// NewNetworkDefinitionProvider creates a provider over a copy of table.
func NewNetworkDefinitionProvider(log port.Logger, table map[string]entity.NetworkConfig) *NetworkDefinitionProvider {
	p := &NetworkDefinitionProvider{
		logger:  log,
		defs:    make(map[string]entity.NetworkConfig, len(table)),
		ordered: make([]string, 0, len(table)),
	}

	for key, def := range table {
		if def.Network != key {
			p.logger.Warn("Network definition key differs from its network id, indexing by key",
				"key", key, "network", def.Network)
		}
		if def.ServerType != "" && !def.ServerType.Valid() {
			p.logger.Warn("Network definition has an unknown server type",
				"network", key, "server_type", string(def.ServerType))
		}
		p.defs[key] = def.Clone()
		p.ordered = append(p.ordered, key)
	}
	sort.Strings(p.ordered)

	if len(p.ordered) == 0 {
		p.logger.Warn("NetworkDefinitionProvider initialized without any networks")
	} else {
		p.logger.Info(fmt.Sprintf("NetworkDefinitionProvider initialized. Networks: %d", len(p.ordered)))
		for _, key := range p.ordered {
			def := p.defs[key]
			p.logger.Debug(fmt.Sprintf("  - Network: %s (ID: %s, type: %s, server: %s)", def.Name, key, def.Type, def.ServerType))
		}
	}

	return p
}

// GetAllNetworkDefinitions returns every definition, sorted by network key.
func (p *NetworkDefinitionProvider) GetAllNetworkDefinitions() []entity.NetworkConfig {
	if p == nil {
		return []entity.NetworkConfig{}
	}
	defs := make([]entity.NetworkConfig, 0, len(p.ordered))
	for _, key := range p.ordered {
		defs = append(defs, p.defs[key].Clone())
	}
	return defs
}

// GetNetworkDefinitionByName returns the definition registered under network.
func (p *NetworkDefinitionProvider) GetNetworkDefinitionByName(network string) (entity.NetworkConfig, bool) {
	if p == nil {
		return entity.NetworkConfig{}, false
	}
	def, ok := p.defs[network]
	if !ok {
		return entity.NetworkConfig{}, false
	}
	return def.Clone(), true
}

// Names returns the registered network keys in sorted order.
func (p *NetworkDefinitionProvider) Names() []string {
	if p == nil {
		return []string{}
	}
	names := make([]string, len(p.ordered))
	copy(names, p.ordered)
	return names
}
