package consensus

import (
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
)

// Network identifies a Bitcoin network.
type Network string

const (
	Mainnet Network = "mainnet"
	Testnet Network = "testnet"
	Signet  Network = "signet"
	Regtest Network = "regtest"
	Unknown Network = "unknown"
)

// Networks lists every supported network.
var Networks = []Network{Mainnet, Testnet, Signet, Regtest}

// ParseNetwork maps a user supplied network name, including common aliases, to a Network.
// Unrecognised names yield Unknown.
func ParseNetwork(name string) Network {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "main", "mainnet", "bitcoin":
		return Mainnet
	case "test", "testnet", "testnet3":
		return Testnet
	case "signet":
		return Signet
	case "regtest":
		return Regtest
	default:
		return Unknown
	}
}

// ChainParams returns the btcd chain parameters used for address encoding on this network.
// Unknown networks resolve to mainnet.
func (n Network) ChainParams() *chaincfg.Params {
	switch n {
	case Testnet:
		return &chaincfg.TestNet3Params
	case Signet:
		return &chaincfg.SigNetParams
	case Regtest:
		return &chaincfg.RegressionNetParams
	default:
		return &chaincfg.MainNetParams
	}
}

func (n Network) String() string {
	return string(n)
}
