package consensus

import (
	"context"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// HeightOracle reports the height of the best known block.
	HeightOracle interface {
		BestHeight(ctx context.Context) (uint32, error)
	}
)
