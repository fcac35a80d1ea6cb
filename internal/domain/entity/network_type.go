package entity

import "fmt"

// NetworkType classifies a network. It is the single source of truth for the
// mainnet/liquid/lightning flags found in networks documents.
type NetworkType int

const (
	NetworkTypeTestnet NetworkType = iota
	NetworkTypeMainnet
	NetworkTypeLiquidTestnet
	NetworkTypeLiquid
	NetworkTypeLightningTestnet
	NetworkTypeLightning
)

var networkTypeNames = map[NetworkType]string{
	NetworkTypeTestnet:          "testnet",
	NetworkTypeMainnet:          "mainnet",
	NetworkTypeLiquidTestnet:    "liquid-testnet",
	NetworkTypeLiquid:           "liquid",
	NetworkTypeLightningTestnet: "lightning-testnet",
	NetworkTypeLightning:        "lightning",
}

// NetworkTypeFromFlags maps the three wire flags to a NetworkType.
// liquid and lightning together do not describe any network.
func NetworkTypeFromFlags(mainnet, liquid, lightning bool) (NetworkType, error) {
	switch {
	case liquid && lightning:
		return NetworkTypeTestnet, fmt.Errorf("liquid and lightning flags are mutually exclusive")
	case liquid && mainnet:
		return NetworkTypeLiquid, nil
	case liquid:
		return NetworkTypeLiquidTestnet, nil
	case lightning && mainnet:
		return NetworkTypeLightning, nil
	case lightning:
		return NetworkTypeLightningTestnet, nil
	case mainnet:
		return NetworkTypeMainnet, nil
	default:
		return NetworkTypeTestnet, nil
	}
}

// IsMainnet reports whether the type is a value-carrying network.
func (t NetworkType) IsMainnet() bool {
	return t == NetworkTypeMainnet || t == NetworkTypeLiquid || t == NetworkTypeLightning
}

// IsLiquid reports whether the type is a Liquid network.
func (t NetworkType) IsLiquid() bool {
	return t == NetworkTypeLiquid || t == NetworkTypeLiquidTestnet
}

// IsLightning reports whether the type is a Lightning network.
func (t NetworkType) IsLightning() bool {
	return t == NetworkTypeLightning || t == NetworkTypeLightningTestnet
}

// Flags returns the wire view of the type.
func (t NetworkType) Flags() (mainnet, liquid, lightning bool) {
	return t.IsMainnet(), t.IsLiquid(), t.IsLightning()
}

func (t NetworkType) String() string {
	if name, ok := networkTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("NetworkType(%d)", int(t))
}

// MarshalText renders the type by name in API responses.
func (t NetworkType) MarshalText() ([]byte, error) {
	if _, ok := networkTypeNames[t]; !ok {
		return nil, fmt.Errorf("unknown network type %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText parses a name produced by MarshalText.
func (t *NetworkType) UnmarshalText(text []byte) error {
	for nt, name := range networkTypeNames {
		if name == string(text) {
			*t = nt
			return nil
		}
	}
	return fmt.Errorf("unknown network type %q", string(text))
}

// ServerType tags the kind of backend a network is served by.
type ServerType string

const (
	ServerTypeGreen      ServerType = "green"
	ServerTypeElectrum   ServerType = "electrum"
	ServerTypeGreenlight ServerType = "greenlight"
)

// Valid reports whether the tag is one of the known backends.
func (s ServerType) Valid() bool {
	switch s {
	case ServerTypeGreen, ServerTypeElectrum, ServerTypeGreenlight:
		return true
	}
	return false
}
