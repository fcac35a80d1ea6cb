package port

import (
	"context"

	"network_registry/internal/domain/entity"
)

// NetworkDefinitionProvider defines the interface for providing network definitions.
type NetworkDefinitionProvider interface {
	// GetAllNetworkDefinitions returns all registered network definitions as a slice.
	GetAllNetworkDefinitions() []entity.NetworkConfig

	// GetNetworkDefinitionByName returns the definition registered under a network key.
	GetNetworkDefinitionByName(network string) (entity.NetworkConfig, bool)
}

// NetworkService answers read-only questions about registered networks.
type NetworkService interface {
	ListNetworks() []entity.NetworkSummary
	GetNetwork(network string) (entity.NetworkConfig, error)
	ResolveEndpoints(network string, useTor bool) (map[entity.EndpointKind]string, error)
	AddressParams(network string) (entity.AddressSummary, error)
}

// NetworkTableSource produces a networks table, keyed by network id.
type NetworkTableSource interface {
	Load(ctx context.Context) (map[string]entity.NetworkConfig, error)
}
