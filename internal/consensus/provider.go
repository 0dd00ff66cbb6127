package consensus

import (
	"context"
)

// Provider hands out a shared, read-mostly Params instance. Copies of a Provider share the same Params.
type Provider struct {
	params *Params
}

// NewProvider returns a provider for the given network.
func NewProvider(network Network) Provider {
	return Provider{params: NewParams(network)}
}

// NewProviderWithCustomParams builds params for network, lets customize adjust them, and only then publishes them.
func NewProviderWithCustomParams(network Network, customize func(*Params)) Provider {
	params := NewParams(network)
	if customize != nil {
		customize(params)
	}
	return Provider{params: params}
}

// Params returns the shared params, defaulting to mainnet for a zero Provider.
func (p Provider) Params() *Params {
	if p.params == nil {
		return MainNet()
	}
	return p.params
}

// TaprootActiveForNextBlock reports whether Taproot rules apply to a transaction mined in the block after the oracle's best height.
func (p Provider) TaprootActiveForNextBlock(ctx context.Context, oracle HeightOracle) (bool, uint32, error) {
	best, err := oracle.BestHeight(ctx)
	if err != nil {
		return false, 0, err
	}
	target := best + 1
	return p.Params().IsTaprootActive(target), target, nil
}
