// Package address classifies, constructs and parses standard Bitcoin output addresses.
package address

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/txscript"
	"github.com/goodnatureofminers/txguard/internal/consensus"
	"github.com/goodnatureofminers/txguard/internal/taproot"
)

// Type is a standard output type.
type Type string

const (
	P2PKH   Type = "P2PKH"
	P2SH    Type = "P2SH"
	P2WPKH  Type = "P2WPKH"
	P2WSH   Type = "P2WSH"
	P2TR    Type = "P2TR"
	Unknown Type = "Unknown"
)

func (t Type) String() string {
	return string(t)
}

// IsSegwit reports whether t is a witness program type.
func (t Type) IsSegwit() bool {
	return t == P2WPKH || t == P2WSH || t == P2TR
}

// IsTaproot reports whether t is a witness v1 Taproot output.
func (t Type) IsTaproot() bool {
	return t == P2TR
}

var (
	// ErrInvalidAddress is returned for strings that do not decode as an address on any known network.
	ErrInvalidAddress = errors.New("invalid address")
	// ErrNetworkMismatch is returned for valid addresses that belong to another network.
	ErrNetworkMismatch = errors.New("address network mismatch")
)

// Classify returns the output type of addr.
func Classify(addr btcutil.Address) Type {
	switch addr.(type) {
	case *btcutil.AddressPubKeyHash:
		return P2PKH
	case *btcutil.AddressScriptHash:
		return P2SH
	case *btcutil.AddressWitnessPubKeyHash:
		return P2WPKH
	case *btcutil.AddressWitnessScriptHash:
		return P2WSH
	case *btcutil.AddressTaproot:
		return P2TR
	default:
		return Unknown
	}
}

// ClassifyScript returns the output type of a scriptPubKey.
func ClassifyScript(pkScript []byte) Type {
	switch txscript.GetScriptClass(pkScript) {
	case txscript.PubKeyHashTy:
		return P2PKH
	case txscript.ScriptHashTy:
		return P2SH
	case txscript.WitnessV0PubKeyHashTy:
		return P2WPKH
	case txscript.WitnessV0ScriptHashTy:
		return P2WSH
	case txscript.WitnessV1TaprootTy:
		return P2TR
	default:
		return Unknown
	}
}

// IsSegwit reports whether addr pays to a witness program.
func IsSegwit(addr btcutil.Address) bool {
	return Classify(addr).IsSegwit()
}

// IsTaproot reports whether addr pays to a Taproot output.
func IsTaproot(addr btcutil.Address) bool {
	return Classify(addr).IsTaproot()
}

// ScriptPubKey returns the output script paying to addr.
func ScriptPubKey(addr btcutil.Address) ([]byte, error) {
	script, err := txscript.PayToAddrScript(addr)
	if err != nil {
		return nil, fmt.Errorf("build script for %s: %w", addr, err)
	}
	return script, nil
}

// NewP2PKH builds a pay-to-pubkey-hash address from a 20-byte HASH160.
func NewP2PKH(pubKeyHash []byte, network consensus.Network) (*btcutil.AddressPubKeyHash, error) {
	addr, err := btcutil.NewAddressPubKeyHash(pubKeyHash, network.ChainParams())
	if err != nil {
		return nil, fmt.Errorf("create P2PKH address: %w", err)
	}
	return addr, nil
}

// NewP2SH builds a pay-to-script-hash address committing to redeemScript.
func NewP2SH(redeemScript []byte, network consensus.Network) (*btcutil.AddressScriptHash, error) {
	addr, err := btcutil.NewAddressScriptHash(redeemScript, network.ChainParams())
	if err != nil {
		return nil, fmt.Errorf("create P2SH address: %w", err)
	}
	return addr, nil
}

// NewP2WPKH builds a witness v0 pubkey-hash address from a 20-byte HASH160.
func NewP2WPKH(pubKeyHash []byte, network consensus.Network) (*btcutil.AddressWitnessPubKeyHash, error) {
	addr, err := btcutil.NewAddressWitnessPubKeyHash(pubKeyHash, network.ChainParams())
	if err != nil {
		return nil, fmt.Errorf("create P2WPKH address: %w", err)
	}
	return addr, nil
}

// NewP2WSH builds a witness v0 script-hash address committing to witnessScript.
func NewP2WSH(witnessScript []byte, network consensus.Network) (*btcutil.AddressWitnessScriptHash, error) {
	program := sha256.Sum256(witnessScript)
	addr, err := btcutil.NewAddressWitnessScriptHash(program[:], network.ChainParams())
	if err != nil {
		return nil, fmt.Errorf("create P2WSH address: %w", err)
	}
	return addr, nil
}

// NewP2TR builds a key-path only Taproot address for internalKey.
func NewP2TR(internalKey *btcec.PublicKey, network consensus.Network) (*btcutil.AddressTaproot, error) {
	outputKey, _, err := taproot.OutputKey(internalKey, nil)
	if err != nil {
		return nil, fmt.Errorf("create P2TR address: %w", err)
	}
	addr, err := taproot.AddressForKey(outputKey, network.ChainParams())
	if err != nil {
		return nil, fmt.Errorf("create P2TR address: %w", err)
	}
	return addr, nil
}

// NewP2TRWithScripts builds a Taproot address committing to internalKey and a balanced tree of scripts.
func NewP2TRWithScripts(internalKey *btcec.PublicKey, scripts [][]byte, network consensus.Network) (*btcutil.AddressTaproot, error) {
	tree, err := taproot.BuildScriptTree(internalKey, scripts)
	if err != nil {
		return nil, fmt.Errorf("create P2TR address with scripts: %w", err)
	}
	addr, err := tree.Address(network.ChainParams())
	if err != nil {
		return nil, fmt.Errorf("create P2TR address with scripts: %w", err)
	}
	return addr, nil
}

// Parse decodes addr and requires it to belong to network.
func Parse(addr string, network consensus.Network) (btcutil.Address, error) {
	params := network.ChainParams()
	decoded, err := btcutil.DecodeAddress(addr, params)
	if err != nil {
		for _, other := range consensus.Networks {
			if other.ChainParams() == params {
				continue
			}
			if _, otherErr := btcutil.DecodeAddress(addr, other.ChainParams()); otherErr == nil {
				return nil, fmt.Errorf("%w: expected %s", ErrNetworkMismatch, network)
			}
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if !decoded.IsForNet(params) {
		return nil, fmt.Errorf("%w: expected %s", ErrNetworkMismatch, network)
	}
	return decoded, nil
}

// RecommendedType returns the output type new receive addresses should use on network.
func RecommendedType(network consensus.Network) Type {
	if network == consensus.Regtest {
		return P2WPKH
	}
	return P2TR
}

// Format renders addr prefixed with its type, e.g. "P2TR: bc1p...".
func Format(addr btcutil.Address) string {
	return fmt.Sprintf("%s: %s", Classify(addr), addr.EncodeAddress())
}
