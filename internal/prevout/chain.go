package prevout

import (
	"context"
	"fmt"

	"github.com/btcsuite/btcd/wire"
)

// Chain queries each source in turn, asking later sources only for outpoints earlier ones did not find.
type Chain []Source

// PrevOutputs implements Source.
func (c Chain) PrevOutputs(ctx context.Context, outpoints []wire.OutPoint) (map[wire.OutPoint]*wire.TxOut, error) {
	result := make(map[wire.OutPoint]*wire.TxOut, len(outpoints))
	missing := outpoints
	for i, source := range c {
		if len(missing) == 0 {
			break
		}
		found, err := source.PrevOutputs(ctx, missing)
		if err != nil {
			return nil, fmt.Errorf("source %d: %w", i, err)
		}

		next := missing[:0:0]
		for _, op := range missing {
			if out, ok := found[op]; ok && out != nil {
				result[op] = out
				continue
			}
			next = append(next, op)
		}
		missing = next
	}
	return result, nil
}
