package admission

import (
	"context"
	"time"

	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"

	"github.com/goodnatureofminers/txguard/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// HeightOracle reports the best block height known to the node.
	HeightOracle interface {
		BestHeight(ctx context.Context) (uint32, error)
	}
	PrevOutResolver interface {
		Resolve(ctx context.Context, tx *wire.MsgTx) (*txscript.MultiPrevOutFetcher, error)
	}
	Recorder interface {
		RecordRejection(ctx context.Context, rejection model.Rejection) error
		RecordAccepted(ctx context.Context, tx *wire.MsgTx, height uint32) error
	}
	Metrics interface {
		ObserveCheck(outcome, reason string, started time.Time)
		ObserveTaprootInput(path, verdict string)
	}
	RejectionStore interface {
		InsertRejections(ctx context.Context, rejections []model.Rejection) error
	}
	OutputStore interface {
		InsertOutputs(ctx context.Context, outputs []model.SpentOutput) error
	}
	JournalMetrics interface {
		ObserveFlush(err error, size int, started time.Time)
	}
)
