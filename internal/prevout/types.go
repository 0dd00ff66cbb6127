package prevout

import (
	"context"

	"github.com/btcsuite/btcd/wire"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Source looks up the outputs spent by a set of outpoints. Outpoints it cannot find are
	// absent from the returned map.
	Source interface {
		PrevOutputs(ctx context.Context, outpoints []wire.OutPoint) (map[wire.OutPoint]*wire.TxOut, error)
	}
)
