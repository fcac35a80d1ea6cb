package entity

import "slices"

// NetworkConfig holds the connection and policy parameters of one network.
// Instances are built once from a networks document and treated as read-only
// reference data afterwards.
type NetworkConfig struct {
	// Identity
	Name        string      // display name, e.g. "Liquid"
	Network     string      // canonical id, e.g. "liquid"
	Type        NetworkType // replaces the mainnet/liquid/lightning wire flags
	Development bool

	// Address and transaction formats
	Bech32Prefix  string
	Blech32Prefix string
	BIP21Prefix   string
	BlindedPrefix uint32
	P2PKHVersion  uint32
	P2SHVersion   uint32

	// Service endpoints
	WampURL               string
	WampOnionURL          string
	ElectrumURL           string
	ElectrumOnionURL      string
	ElectrumTLS           bool
	PinServerURL          string
	PinServerOnionURL     string
	PinServerPublicKey    string
	PriceURL              string
	PriceOnionURL         string
	AssetRegistryURL      string
	AssetRegistryOnionURL string
	AddressExplorerURL    string
	TxExplorerURL         string
	GreenlightURL         string
	ServiceChainCode      string
	ServicePubkey         string
	ServerType            ServerType

	// Policy and tunables
	PolicyAsset    string
	MaxReorgBlocks uint32
	CSVBuckets     []uint32
	SPVEnabled     bool
	SPVMulti       bool
	SPVServers     []string

	// Trust material
	WampCertPins  []string
	WampCertRoots []string
}

// IsMainnet reports whether the network carries real value.
func (c NetworkConfig) IsMainnet() bool { return c.Type.IsMainnet() }

// IsLiquid reports whether the network is an Elements/Liquid network.
func (c NetworkConfig) IsLiquid() bool { return c.Type.IsLiquid() }

// IsLightning reports whether the network is managed through a Lightning node.
func (c NetworkConfig) IsLightning() bool { return c.Type.IsLightning() }

// Clone returns a deep copy so callers can never alias the sequences of a
// registry entry.
func (c NetworkConfig) Clone() NetworkConfig {
	out := c
	out.CSVBuckets = slices.Clone(c.CSVBuckets)
	out.SPVServers = slices.Clone(c.SPVServers)
	out.WampCertPins = slices.Clone(c.WampCertPins)
	out.WampCertRoots = slices.Clone(c.WampCertRoots)
	return out
}

// NetworkSummary is the short form of a NetworkConfig used in listings.
type NetworkSummary struct {
	Network     string      `json:"network" yaml:"network"`
	Name        string      `json:"name" yaml:"name"`
	Type        NetworkType `json:"type" yaml:"type"`
	ServerType  ServerType  `json:"serverType" yaml:"serverType"`
	Mainnet     bool        `json:"mainnet" yaml:"mainnet"`
	Liquid      bool        `json:"liquid" yaml:"liquid"`
	Lightning   bool        `json:"lightning" yaml:"lightning"`
	Development bool        `json:"development" yaml:"development"`
}

// Summary builds the listing view of the record.
func (c NetworkConfig) Summary() NetworkSummary {
	return NetworkSummary{
		Network:     c.Network,
		Name:        c.Name,
		Type:        c.Type,
		ServerType:  c.ServerType,
		Mainnet:     c.IsMainnet(),
		Liquid:      c.IsLiquid(),
		Lightning:   c.IsLightning(),
		Development: c.Development,
	}
}
