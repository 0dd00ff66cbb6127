package address

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/txscript"
	"github.com/goodnatureofminers/txguard/internal/consensus"
)

// Decoder extracts human-readable addresses from output scripts on one network.
type Decoder struct {
	network consensus.Network
}

// NewDecoder returns a Decoder for network.
func NewDecoder(network consensus.Network) *Decoder {
	return &Decoder{network: network}
}

// Addresses returns the addresses a scriptPubKey pays to. Scripts without addresses, such
// as null data, yield an empty slice.
func (d *Decoder) Addresses(pkScript []byte) ([]string, error) {
	_, addrs, _, err := txscript.ExtractPkScriptAddrs(pkScript, d.network.ChainParams())
	if err != nil {
		return nil, fmt.Errorf("extract script addresses: %w", err)
	}

	result := make([]string, 0, len(addrs))
	for _, addr := range addrs {
		result = append(result, addr.EncodeAddress())
	}
	return result, nil
}

// AddressesHex is Addresses for a hex encoded script.
func (d *Decoder) AddressesHex(scriptHex string) ([]string, error) {
	if scriptHex == "" {
		return nil, nil
	}
	script, err := hex.DecodeString(scriptHex)
	if err != nil {
		return nil, fmt.Errorf("decode script hex: %w", err)
	}
	return d.Addresses(script)
}

// Describe returns the output type and addresses of a scriptPubKey.
func (d *Decoder) Describe(pkScript []byte) (Type, []string, error) {
	addrs, err := d.Addresses(pkScript)
	if err != nil {
		return Unknown, nil, err
	}
	return ClassifyScript(pkScript), addrs, nil
}

// ExtractAddresses returns the addresses pkScript pays to on network.
func ExtractAddresses(pkScript []byte, network consensus.Network) ([]string, error) {
	return NewDecoder(network).Addresses(pkScript)
}
