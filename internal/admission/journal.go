package admission

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/wire"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/txguard/internal/model"
	"github.com/goodnatureofminers/txguard/pkg/batcher"
	"github.com/goodnatureofminers/txguard/pkg/safe"
)

// JournalConfig tunes the journal batchers.
type JournalConfig struct {
	Network       string
	FlushSize     int
	FlushInterval time.Duration
	RateLimit     int
}

// Journal buffers admission outcomes and writes them in batches. Rejections go to a
// RejectionStore; outputs of accepted transactions go to an optional OutputStore so later
// spends of them can be resolved.
type Journal struct {
	network    string
	rejections *batcher.Batcher[model.Rejection]
	outputs    *batcher.Batcher[model.SpentOutput]
}

// NewJournal wires the batchers. outputs may be nil.
func NewJournal(
	cfg JournalConfig,
	rejections RejectionStore,
	outputs OutputStore,
	m JournalMetrics,
	logger *zap.Logger,
) *Journal {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts := []batcher.Option{
		batcher.WithFlushSize(cfg.FlushSize),
		batcher.WithFlushInterval(cfg.FlushInterval),
		batcher.WithRateLimit(cfg.RateLimit),
		batcher.WithLogger(logger),
	}
	if m != nil {
		opts = append(opts, batcher.WithFlushObserver(func(size int, err error, started time.Time) {
			m.ObserveFlush(err, size, started)
		}))
	}

	j := &Journal{
		network:    cfg.Network,
		rejections: batcher.New(rejections.InsertRejections, opts...),
	}
	if outputs != nil {
		j.outputs = batcher.New(outputs.InsertOutputs, opts...)
	}
	return j
}

// Start launches the flush loops. Items still buffered when ctx is canceled are flushed on Stop.
func (j *Journal) Start(ctx context.Context) {
	j.rejections.Start(ctx)
	if j.outputs != nil {
		j.outputs.Start(ctx)
	}
}

// Stop flushes pending items and waits for the flush loops to exit.
func (j *Journal) Stop() {
	j.rejections.Stop()
	if j.outputs != nil {
		j.outputs.Stop()
	}
}

// RecordRejection queues a rejection.
func (j *Journal) RecordRejection(ctx context.Context, rejection model.Rejection) error {
	if rejection.Network == "" {
		rejection.Network = j.network
	}
	return j.rejections.Add(ctx, rejection)
}

// RecordAccepted queues the outputs of tx, tagged with the height it is expected to confirm at.
func (j *Journal) RecordAccepted(ctx context.Context, tx *wire.MsgTx, height uint32) error {
	if j.outputs == nil {
		return nil
	}
	outputs, err := spentOutputs(j.network, tx, height)
	if err != nil {
		return err
	}
	for _, out := range outputs {
		if err := j.outputs.Add(ctx, out); err != nil {
			return err
		}
	}
	return nil
}

func spentOutputs(network string, tx *wire.MsgTx, height uint32) ([]model.SpentOutput, error) {
	txid := tx.TxHash().String()
	outputs := make([]model.SpentOutput, 0, len(tx.TxOut))
	for i, out := range tx.TxOut {
		value, err := safe.Uint64(out.Value)
		if err != nil {
			return nil, fmt.Errorf("output %d value: %w", i, err)
		}
		index, err := safe.Uint32(i)
		if err != nil {
			return nil, fmt.Errorf("output %d index: %w", i, err)
		}
		outputs = append(outputs, model.SpentOutput{
			Network:     network,
			TxID:        txid,
			Index:       index,
			Value:       value,
			ScriptHex:   hex.EncodeToString(out.PkScript),
			BlockHeight: uint64(height),
		})
	}
	return outputs, nil
}
