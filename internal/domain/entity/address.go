package entity

// AddressFamily names the address scheme of a network.
type AddressFamily string

const (
	AddressFamilyBitcoin  AddressFamily = "bitcoin"
	AddressFamilyElements AddressFamily = "elements"
)

// AddressSummary is the flat view of a network's address encoding parameters.
type AddressSummary struct {
	Network            string        `json:"network"`
	Family             AddressFamily `json:"family"`
	Bech32HRP          string        `json:"bech32Hrp"`
	Blech32HRP         string        `json:"blech32Hrp,omitempty"`
	BIP21Prefix        string        `json:"bip21Prefix"`
	PubKeyHashAddrID   byte          `json:"pubKeyHashAddrId"`
	ScriptHashAddrID   byte          `json:"scriptHashAddrId"`
	PrivateKeyID       byte          `json:"privateKeyId"`
	ConfidentialPrefix byte          `json:"confidentialPrefix,omitempty"`
	PolicyAsset        string        `json:"policyAsset,omitempty"`
}
