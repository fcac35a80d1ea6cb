package restapi

import (
	"errors"
	"net/http"
	"strconv"

	"network_registry/internal/app/port"
	"network_registry/internal/domain/entity"
	"network_registry/internal/infrastructure/configloader"
	"network_registry/internal/infrastructure/networkcodec"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

// APIErrorResponse is the body of every non-2xx response.
type APIErrorResponse struct {
	Error string `json:"error"`
}

// APINetworksResponse lists registered networks.
type APINetworksResponse struct {
	Networks []entity.NetworkSummary `json:"networks"`
}

// APIEndpointsResponse holds the resolved service endpoints of a network.
type APIEndpointsResponse struct {
	Network   string                         `json:"network"`
	Tor       bool                           `json:"tor"`
	Endpoints map[entity.EndpointKind]string `json:"endpoints"`
}

// NetworkHandler serves the network HTTP endpoints.
type NetworkHandler struct {
	networkService port.NetworkService
	cfg            *configloader.Config
	logger         port.Logger
	documents      *cache.Cache // network key -> encoded record ([]byte)
}

// NewNetworkHandler creates a new NetworkHandler.
func NewNetworkHandler(ns port.NetworkService, cfg *configloader.Config, l port.Logger) *NetworkHandler {
	return &NetworkHandler{
		networkService: ns,
		cfg:            cfg,
		logger:         l,
		documents:      cache.New(cfg.CacheExpiration(), cfg.CacheCleanupInterval()),
	}
}

// ListNetworksHandler returns a summary of every registered network.
func (h *NetworkHandler) ListNetworksHandler(c *gin.Context) {
	c.JSON(http.StatusOK, APINetworksResponse{Networks: h.networkService.ListNetworks()})
}

// GetNetworkHandler returns the full record of one network, encoded exactly as
// the networks document format. Every request goes through the service, so
// lookups are counted; only the encoding is cached.
func (h *NetworkHandler) GetNetworkHandler(c *gin.Context) {
	network := c.Param("network")
	def, err := h.networkService.GetNetwork(network)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if cached, ok := h.documents.Get(network); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", cached.([]byte))
		return
	}

	data, err := networkcodec.Encode(def)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.documents.Set(network, data, cache.DefaultExpiration)
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

// GetEndpointsHandler resolves the service endpoints of a network. The tor
// query parameter picks onion addresses where configured.
func (h *NetworkHandler) GetEndpointsHandler(c *gin.Context) {
	network := c.Param("network")
	useTor := h.cfg.Networks.UseTor
	if raw, ok := c.GetQuery("tor"); ok {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, APIErrorResponse{Error: "tor must be a boolean"})
			return
		}
		useTor = parsed
	}

	endpoints, err := h.networkService.ResolveEndpoints(network, useTor)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, APIEndpointsResponse{Network: network, Tor: useTor, Endpoints: endpoints})
}

// GetAddressParamsHandler returns the address encoding parameters of a network.
func (h *NetworkHandler) GetAddressParamsHandler(c *gin.Context) {
	summary, err := h.networkService.AddressParams(c.Param("network"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// HealthHandler reports liveness and the number of registered networks.
func (h *NetworkHandler) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "networks": len(h.networkService.ListNetworks())})
}

func (h *NetworkHandler) respondError(c *gin.Context, err error) {
	if errors.Is(err, entity.ErrNetworkNotFound) {
		c.JSON(http.StatusNotFound, APIErrorResponse{Error: err.Error()})
		return
	}
	h.logger.Error("Request failed", "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusInternalServerError, APIErrorResponse{Error: err.Error()})
}
