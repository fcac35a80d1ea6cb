// Package addressparams turns NetworkConfig records into the address encoding
// parameters used by the bitcoin and elements libraries.
package addressparams

import (
	"fmt"

	"network_registry/internal/domain/entity"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/vulpemventures/go-elements/network"
)

// ChainParams returns bitcoin chain parameters for a non-Liquid network. The
// base parameters follow the network class and are overridden with the
// prefixes and version bytes of cfg.
func ChainParams(cfg entity.NetworkConfig) (*chaincfg.Params, error) {
	if cfg.IsLiquid() {
		return nil, fmt.Errorf("network %q is a liquid network, use ElementsNetwork", cfg.Network)
	}
	p2pkh, err := versionByte("p2pkh_version", cfg.P2PKHVersion)
	if err != nil {
		return nil, fmt.Errorf("network %q: %w", cfg.Network, err)
	}
	p2sh, err := versionByte("p2sh_version", cfg.P2SHVersion)
	if err != nil {
		return nil, fmt.Errorf("network %q: %w", cfg.Network, err)
	}

	var params chaincfg.Params
	switch {
	case cfg.IsMainnet():
		params = chaincfg.MainNetParams
	case cfg.Development:
		params = chaincfg.RegressionNetParams
	default:
		params = chaincfg.TestNet3Params
	}
	params.Name = cfg.Network
	params.Bech32HRPSegwit = cfg.Bech32Prefix
	params.PubKeyHashAddrID = p2pkh
	params.ScriptHashAddrID = p2sh
	return &params, nil
}

// ElementsNetwork returns elements network parameters for a Liquid network.
func ElementsNetwork(cfg entity.NetworkConfig) (*network.Network, error) {
	if !cfg.IsLiquid() {
		return nil, fmt.Errorf("network %q is not a liquid network, use ChainParams", cfg.Network)
	}
	p2pkh, err := versionByte("p2pkh_version", cfg.P2PKHVersion)
	if err != nil {
		return nil, fmt.Errorf("network %q: %w", cfg.Network, err)
	}
	p2sh, err := versionByte("p2sh_version", cfg.P2SHVersion)
	if err != nil {
		return nil, fmt.Errorf("network %q: %w", cfg.Network, err)
	}
	confidential, err := versionByte("blinded_prefix", cfg.BlindedPrefix)
	if err != nil {
		return nil, fmt.Errorf("network %q: %w", cfg.Network, err)
	}

	net := network.Regtest
	if cfg.IsMainnet() {
		net = network.Liquid
	}
	net.Name = cfg.Network
	net.Bech32 = cfg.Bech32Prefix
	net.Blech32 = cfg.Blech32Prefix
	net.PubKeyHash = p2pkh
	net.ScriptHash = p2sh
	net.Confidential = confidential
	net.AssetID = cfg.PolicyAsset
	return &net, nil
}

// Describe renders the address parameters of cfg, whichever family it is.
func Describe(cfg entity.NetworkConfig) (entity.AddressSummary, error) {
	summary := entity.AddressSummary{Network: cfg.Network, BIP21Prefix: cfg.BIP21Prefix}
	if cfg.IsLiquid() {
		net, err := ElementsNetwork(cfg)
		if err != nil {
			return entity.AddressSummary{}, err
		}
		summary.Family = entity.AddressFamilyElements
		summary.Bech32HRP = net.Bech32
		summary.Blech32HRP = net.Blech32
		summary.PubKeyHashAddrID = net.PubKeyHash
		summary.ScriptHashAddrID = net.ScriptHash
		summary.PrivateKeyID = net.Wif
		summary.ConfidentialPrefix = net.Confidential
		summary.PolicyAsset = net.AssetID
		return summary, nil
	}

	params, err := ChainParams(cfg)
	if err != nil {
		return entity.AddressSummary{}, err
	}
	summary.Family = entity.AddressFamilyBitcoin
	summary.Bech32HRP = params.Bech32HRPSegwit
	summary.PubKeyHashAddrID = params.PubKeyHashAddrID
	summary.ScriptHashAddrID = params.ScriptHashAddrID
	summary.PrivateKeyID = params.PrivateKeyID
	return summary, nil
}

func versionByte(field string, v uint32) (byte, error) {
	if v > 0xff {
		return 0, fmt.Errorf("%s %d does not fit in a version byte", field, v)
	}
	return byte(v), nil
}
