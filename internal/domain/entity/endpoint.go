package entity

// EndpointKind names a service that may be reached over clear-net or Tor.
type EndpointKind string

const (
	EndpointWamp          EndpointKind = "wamp"
	EndpointElectrum      EndpointKind = "electrum"
	EndpointPinServer     EndpointKind = "pin_server"
	EndpointPrice         EndpointKind = "price"
	EndpointAssetRegistry EndpointKind = "asset_registry"
)

// EndpointKinds lists every kind in a stable order.
var EndpointKinds = []EndpointKind{
	EndpointWamp,
	EndpointElectrum,
	EndpointPinServer,
	EndpointPrice,
	EndpointAssetRegistry,
}

// Endpoint pairs a clear-net URL with its optional onion counterpart.
type Endpoint struct {
	Kind     EndpointKind `json:"kind"`
	URL      string       `json:"url,omitempty"`
	OnionURL string       `json:"onionUrl,omitempty"`
}

// Resolve picks the URL to dial. The onion URL wins only when Tor is
// requested and one is configured. ok is false when nothing is configured
// for the chosen route.
func (e Endpoint) Resolve(useTor bool) (url string, ok bool) {
	if useTor && e.OnionURL != "" {
		return e.OnionURL, true
	}
	return e.URL, e.URL != ""
}

// Endpoint returns the clear-net/onion pair for kind. Unknown kinds yield an
// empty endpoint.
func (c NetworkConfig) Endpoint(kind EndpointKind) Endpoint {
	e := Endpoint{Kind: kind}
	switch kind {
	case EndpointWamp:
		e.URL, e.OnionURL = c.WampURL, c.WampOnionURL
	case EndpointElectrum:
		e.URL, e.OnionURL = c.ElectrumURL, c.ElectrumOnionURL
	case EndpointPinServer:
		e.URL, e.OnionURL = c.PinServerURL, c.PinServerOnionURL
	case EndpointPrice:
		e.URL, e.OnionURL = c.PriceURL, c.PriceOnionURL
	case EndpointAssetRegistry:
		e.URL, e.OnionURL = c.AssetRegistryURL, c.AssetRegistryOnionURL
	}
	return e
}

// ResolveEndpoints resolves every configured endpoint. Kinds with nothing
// configured for the chosen route are left out.
func (c NetworkConfig) ResolveEndpoints(useTor bool) map[EndpointKind]string {
	out := make(map[EndpointKind]string, len(EndpointKinds))
	for _, kind := range EndpointKinds {
		if url, ok := c.Endpoint(kind).Resolve(useTor); ok {
			out[kind] = url
		}
	}
	return out
}
