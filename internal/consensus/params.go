// Package consensus holds per-network consensus parameters and Taproot activation gating.
package consensus

import (
	"errors"
	"fmt"
	"sync"

	"github.com/btcsuite/btcd/blockchain"
	"github.com/goodnatureofminers/txguard/pkg/uint256"
)

const (
	// MaxBlockWeight is the BIP-141 block weight limit.
	MaxBlockWeight uint32 = 4_000_000
	// MaxBlockSize is the legacy serialized block size limit.
	MaxBlockSize uint32 = 1_000_000
)

// Taproot activation heights per network.
const (
	MainnetTaprootHeight uint32 = 709_632
	TestnetTaprootHeight uint32 = 2_010_000
	SignetTaprootHeight  uint32 = 43
	RegtestTaprootHeight uint32 = 0
)

// ErrTargetAboveLimit is returned when a proof-of-work target exceeds the network limit.
var ErrTargetAboveLimit = errors.New("target above proof-of-work limit")

// Params describes the consensus rules relevant to transaction admission on one network.
// Fixed fields are set at construction; the custom map may be extended concurrently.
type Params struct {
	Network                 Network
	MaxBlockWeight          uint32
	MaxBlockSize            uint32
	PowLimit                uint256.Uint256
	TaprootActive           bool
	TaprootActivationHeight uint32

	mu     sync.RWMutex
	custom map[string]string
}

// NewParams builds params for network. Unknown networks fall back to mainnet.
func NewParams(network Network) *Params {
	switch network {
	case Testnet:
		return TestNet()
	case Signet:
		return SigNet()
	case Regtest:
		return RegTest()
	default:
		return MainNet()
	}
}

// MainNet returns mainnet params.
func MainNet() *Params {
	return newParams(Mainnet, 32, MainnetTaprootHeight)
}

// TestNet returns testnet3 params.
func TestNet() *Params {
	return newParams(Testnet, 28, TestnetTaprootHeight)
}

// SigNet returns default signet params.
func SigNet() *Params {
	return newParams(Signet, 30, SignetTaprootHeight)
}

// RegTest returns regression test params.
func RegTest() *Params {
	return newParams(Regtest, 24, RegtestTaprootHeight)
}

func newParams(network Network, powShift uint, taprootHeight uint32) *Params {
	return &Params{
		Network:                 network,
		MaxBlockWeight:          MaxBlockWeight,
		MaxBlockSize:            MaxBlockSize,
		PowLimit:                uint256.Max().Rsh(powShift),
		TaprootActive:           true,
		TaprootActivationHeight: taprootHeight,
		custom:                  make(map[string]string),
	}
}

// IsTaprootActive reports whether Taproot rules apply to a block at height.
func (p *Params) IsTaprootActive(height uint32) bool {
	return p.TaprootActive && height >= p.TaprootActivationHeight
}

// AddCustomParam stores or replaces a custom parameter.
func (p *Params) AddCustomParam(key, value string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.custom == nil {
		p.custom = make(map[string]string)
	}
	p.custom[key] = value
}

// CustomParam returns a custom parameter and whether it was set.
func (p *Params) CustomParam(key string) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	v, ok := p.custom[key]
	return v, ok
}

// CustomParams returns a copy of all custom parameters.
func (p *Params) CustomParams() map[string]string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make(map[string]string, len(p.custom))
	for k, v := range p.custom {
		out[k] = v
	}
	return out
}

// CheckTarget verifies that target does not exceed the network proof-of-work limit.
func (p *Params) CheckTarget(target uint256.Uint256) error {
	if p.PowLimit.Less(target) {
		return fmt.Errorf("%w: target %s, limit %s", ErrTargetAboveLimit, target.Hex(), p.PowLimit.Hex())
	}
	return nil
}

// TargetFromBits expands a compact difficulty encoding into a target.
func TargetFromBits(bits uint32) (uint256.Uint256, error) {
	target, err := uint256.FromBig(blockchain.CompactToBig(bits))
	if err != nil {
		return uint256.Zero, fmt.Errorf("expand compact bits %08x: %w", bits, err)
	}
	return target, nil
}
