package service

import (
	"fmt"

	"network_registry/internal/app/port"
	"network_registry/internal/domain/entity"
	"network_registry/internal/infrastructure/addressparams"
	"network_registry/internal/pkg/metrics"
)

// networkServiceImpl implements port.NetworkService
type networkServiceImpl struct {
	provider port.NetworkDefinitionProvider
	logger   port.Logger
	metrics  *metrics.Metrics
}

// NewNetworkService creates a new instance of networkServiceImpl. m may be nil.
func NewNetworkService(provider port.NetworkDefinitionProvider, l port.Logger, m *metrics.Metrics) port.NetworkService {
	s := &networkServiceImpl{
		provider: provider,
		logger:   l,
		metrics:  m,
	}
	l.Info("NetworkService initialized", "networks", len(provider.GetAllNetworkDefinitions()))
	return s
}

func (s *networkServiceImpl) ListNetworks() []entity.NetworkSummary {
	defs := s.provider.GetAllNetworkDefinitions()
	summaries := make([]entity.NetworkSummary, 0, len(defs))
	for _, def := range defs {
		summaries = append(summaries, def.Summary())
	}
	return summaries
}

func (s *networkServiceImpl) GetNetwork(network string) (entity.NetworkConfig, error) {
	def, ok := s.provider.GetNetworkDefinitionByName(network)
	s.metrics.ObserveLookup(network, ok)
	if !ok {
		s.logger.Debug("Network lookup missed", "network", network)
		return entity.NetworkConfig{}, fmt.Errorf("%w: %q", entity.ErrNetworkNotFound, network)
	}
	return def, nil
}

func (s *networkServiceImpl) ResolveEndpoints(network string, useTor bool) (map[entity.EndpointKind]string, error) {
	def, err := s.GetNetwork(network)
	if err != nil {
		return nil, err
	}
	return def.ResolveEndpoints(useTor), nil
}

func (s *networkServiceImpl) AddressParams(network string) (entity.AddressSummary, error) {
	def, err := s.GetNetwork(network)
	if err != nil {
		return entity.AddressSummary{}, err
	}
	summary, err := addressparams.Describe(def)
	if err != nil {
		s.logger.Warn("Network has unusable address parameters", "network", network, "error", err)
		return entity.AddressSummary{}, err
	}
	return summary, nil
}
