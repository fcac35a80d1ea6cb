// Package networkcodec converts NetworkConfig records to and from the JSON
// networks document format.
//
// Decoding is defaulting, not validating: absent keys take zero values and
// unknown keys are ignored. A document that is not a JSON object, or a present
// key whose value has the wrong type, is rejected with
// entity.ErrMalformedInput.
package networkcodec

import (
	"errors"
	"fmt"
	"sort"
	"unicode/utf8"

	"network_registry/internal/domain/entity"

	jsoniter "github.com/json-iterator/go"
)

// json matches object keys exactly, so "Name" or "NETWORK" are unknown keys
// rather than aliases of "name" and "network".
var json = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	CaseSensitive:          true,
}.Froze()

// document is the wire shape of one network. Field order is the encode order.
type document struct {
	Name                  string   `json:"name"`
	Network               string   `json:"network"`
	Mainnet               bool     `json:"mainnet"`
	Liquid                bool     `json:"liquid"`
	Lightning             bool     `json:"lightning"`
	Development           bool     `json:"development"`
	Bech32Prefix          string   `json:"bech32_prefix"`
	Blech32Prefix         string   `json:"blech32_prefix"`
	BIP21Prefix           string   `json:"bip21_prefix"`
	BlindedPrefix         uint32   `json:"blinded_prefix"`
	P2PKHVersion          uint32   `json:"p2pkh_version"`
	P2SHVersion           uint32   `json:"p2sh_version"`
	WampURL               string   `json:"wamp_url"`
	WampOnionURL          string   `json:"wamp_onion_url"`
	ElectrumURL           string   `json:"electrum_url"`
	ElectrumOnionURL      string   `json:"electrum_onion_url"`
	ElectrumTLS           bool     `json:"electrum_tls"`
	PinServerURL          string   `json:"pin_server_url"`
	PinServerOnionURL     string   `json:"pin_server_onion_url"`
	PinServerPublicKey    string   `json:"pin_server_public_key"`
	PriceURL              string   `json:"price_url"`
	PriceOnionURL         string   `json:"price_onion_url"`
	AssetRegistryURL      string   `json:"asset_registry_url"`
	AssetRegistryOnionURL string   `json:"asset_registry_onion_url"`
	AddressExplorerURL    string   `json:"address_explorer_url"`
	TxExplorerURL         string   `json:"tx_explorer_url"`
	GreenlightURL         string   `json:"greenlight_url"`
	ServiceChainCode      string   `json:"service_chain_code"`
	ServicePubkey         string   `json:"service_pubkey"`
	ServerType            string   `json:"server_type"`
	PolicyAsset           string   `json:"policy_asset"`
	MaxReorgBlocks        uint32   `json:"max_reorg_blocks"`
	CSVBuckets            []uint32 `json:"csv_buckets"`
	SPVEnabled            bool     `json:"spv_enabled"`
	SPVMulti              bool     `json:"spv_multi"`
	SPVServers            []string `json:"spv_servers"`
	WampCertPins          []string `json:"wamp_cert_pins"`
	WampCertRoots         []string `json:"wamp_cert_roots"`
}

// Decode parses a single network document.
func Decode(data []byte) (entity.NetworkConfig, error) {
	if err := expectObject(data); err != nil {
		return entity.NetworkConfig{}, err
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return entity.NetworkConfig{}, &entity.MalformedInputError{Err: err}
	}
	return doc.toEntity()
}

// Encode renders every field of cfg under its document key.
func Encode(cfg entity.NetworkConfig) ([]byte, error) {
	data, err := json.Marshal(fromEntity(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to encode network %q: %w", cfg.Network, err)
	}
	return data, nil
}

// EncodeIndent is Encode with two-space indentation, for humans.
func EncodeIndent(cfg entity.NetworkConfig) ([]byte, error) {
	data, err := json.MarshalIndent(fromEntity(cfg), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode network %q: %w", cfg.Network, err)
	}
	return data, nil
}

// DecodeTable parses a networks document: an object keyed by network id.
// An entry without a "network" value takes its key; an entry whose "network"
// differs from its key is rejected.
func DecodeTable(data []byte) (map[string]entity.NetworkConfig, error) {
	if err := expectObject(data); err != nil {
		return nil, err
	}
	var raw map[string]jsoniter.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &entity.MalformedInputError{Err: err}
	}

	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	table := make(map[string]entity.NetworkConfig, len(raw))
	for _, key := range keys {
		cfg, err := DecodeEntry(key, raw[key])
		if err != nil {
			return nil, err
		}
		table[key] = cfg
	}
	return table, nil
}

// DecodeEntry decodes one record registered under key. A record without a
// "network" value takes key; a record whose "network" differs is rejected.
func DecodeEntry(key string, data []byte) (entity.NetworkConfig, error) {
	cfg, err := Decode(data)
	if err != nil {
		var malformed *entity.MalformedInputError
		if errors.As(err, &malformed) {
			err = malformed.Err
		}
		return entity.NetworkConfig{}, &entity.MalformedInputError{Key: key, Err: err}
	}
	if cfg.Network == "" {
		cfg.Network = key
	}
	if cfg.Network != key {
		return entity.NetworkConfig{}, &entity.MalformedInputError{
			Key: key,
			Err: fmt.Errorf("network %q does not match its table key", cfg.Network),
		}
	}
	return cfg, nil
}

// EncodeTable renders a networks document with keys in sorted order.
func EncodeTable(table map[string]entity.NetworkConfig) ([]byte, error) {
	docs := make(map[string]document, len(table))
	for key, cfg := range table {
		docs[key] = fromEntity(cfg)
	}
	data, err := json.Marshal(docs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode networks table: %w", err)
	}
	return data, nil
}

func expectObject(data []byte) error {
	if !utf8.Valid(data) {
		return &entity.MalformedInputError{Err: errors.New("document is not valid UTF-8")}
	}
	iter := json.BorrowIterator(data)
	defer json.ReturnIterator(iter)
	if next := iter.WhatIsNext(); next != jsoniter.ObjectValue {
		return &entity.MalformedInputError{Err: fmt.Errorf("expected a JSON object, got %s", valueTypeName(next))}
	}
	return nil
}

func valueTypeName(t jsoniter.ValueType) string {
	switch t {
	case jsoniter.StringValue:
		return "a string"
	case jsoniter.NumberValue:
		return "a number"
	case jsoniter.NilValue:
		return "null"
	case jsoniter.BoolValue:
		return "a boolean"
	case jsoniter.ArrayValue:
		return "an array"
	default:
		return "invalid JSON"
	}
}

func (d document) toEntity() (entity.NetworkConfig, error) {
	networkType, err := entity.NetworkTypeFromFlags(d.Mainnet, d.Liquid, d.Lightning)
	if err != nil {
		return entity.NetworkConfig{}, &entity.MalformedInputError{Key: d.Network, Err: err}
	}
	return entity.NetworkConfig{
		Name:                  d.Name,
		Network:               d.Network,
		Type:                  networkType,
		Development:           d.Development,
		Bech32Prefix:          d.Bech32Prefix,
		Blech32Prefix:         d.Blech32Prefix,
		BIP21Prefix:           d.BIP21Prefix,
		BlindedPrefix:         d.BlindedPrefix,
		P2PKHVersion:          d.P2PKHVersion,
		P2SHVersion:           d.P2SHVersion,
		WampURL:               d.WampURL,
		WampOnionURL:          d.WampOnionURL,
		ElectrumURL:           d.ElectrumURL,
		ElectrumOnionURL:      d.ElectrumOnionURL,
		ElectrumTLS:           d.ElectrumTLS,
		PinServerURL:          d.PinServerURL,
		PinServerOnionURL:     d.PinServerOnionURL,
		PinServerPublicKey:    d.PinServerPublicKey,
		PriceURL:              d.PriceURL,
		PriceOnionURL:         d.PriceOnionURL,
		AssetRegistryURL:      d.AssetRegistryURL,
		AssetRegistryOnionURL: d.AssetRegistryOnionURL,
		AddressExplorerURL:    d.AddressExplorerURL,
		TxExplorerURL:         d.TxExplorerURL,
		GreenlightURL:         d.GreenlightURL,
		ServiceChainCode:      d.ServiceChainCode,
		ServicePubkey:         d.ServicePubkey,
		ServerType:            entity.ServerType(d.ServerType),
		PolicyAsset:           d.PolicyAsset,
		MaxReorgBlocks:        d.MaxReorgBlocks,
		CSVBuckets:            orEmpty(d.CSVBuckets),
		SPVEnabled:            d.SPVEnabled,
		SPVMulti:              d.SPVMulti,
		SPVServers:            orEmpty(d.SPVServers),
		WampCertPins:          orEmpty(d.WampCertPins),
		WampCertRoots:         orEmpty(d.WampCertRoots),
	}, nil
}

func fromEntity(c entity.NetworkConfig) document {
	mainnet, liquid, lightning := c.Type.Flags()
	return document{
		Name:                  c.Name,
		Network:               c.Network,
		Mainnet:               mainnet,
		Liquid:                liquid,
		Lightning:             lightning,
		Development:           c.Development,
		Bech32Prefix:          c.Bech32Prefix,
		Blech32Prefix:         c.Blech32Prefix,
		BIP21Prefix:           c.BIP21Prefix,
		BlindedPrefix:         c.BlindedPrefix,
		P2PKHVersion:          c.P2PKHVersion,
		P2SHVersion:           c.P2SHVersion,
		WampURL:               c.WampURL,
		WampOnionURL:          c.WampOnionURL,
		ElectrumURL:           c.ElectrumURL,
		ElectrumOnionURL:      c.ElectrumOnionURL,
		ElectrumTLS:           c.ElectrumTLS,
		PinServerURL:          c.PinServerURL,
		PinServerOnionURL:     c.PinServerOnionURL,
		PinServerPublicKey:    c.PinServerPublicKey,
		PriceURL:              c.PriceURL,
		PriceOnionURL:         c.PriceOnionURL,
		AssetRegistryURL:      c.AssetRegistryURL,
		AssetRegistryOnionURL: c.AssetRegistryOnionURL,
		AddressExplorerURL:    c.AddressExplorerURL,
		TxExplorerURL:         c.TxExplorerURL,
		GreenlightURL:         c.GreenlightURL,
		ServiceChainCode:      c.ServiceChainCode,
		ServicePubkey:         c.ServicePubkey,
		ServerType:            string(c.ServerType),
		PolicyAsset:           c.PolicyAsset,
		MaxReorgBlocks:        c.MaxReorgBlocks,
		CSVBuckets:            orEmpty(c.CSVBuckets),
		SPVEnabled:            c.SPVEnabled,
		SPVMulti:              c.SPVMulti,
		SPVServers:            orEmpty(c.SPVServers),
		WampCertPins:          orEmpty(c.WampCertPins),
		WampCertRoots:         orEmpty(c.WampCertRoots),
	}
}

// orEmpty maps nil to an empty slice so sequences always encode as [].
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
