package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/txguard/internal/model"
)

func insertOutputsQuery() string {
	return `
INSERT INTO utxo_transaction_outputs (
	network,
	txid,
	output_index,
	value,
	script_hex,
	block_height
) VALUES`
}

// InsertOutputs stores transaction outputs so later spends can be resolved.
func (r *Repository) InsertOutputs(ctx context.Context, outputs []model.SpentOutput) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("insert_outputs", r.network, err, start)
	}()

	if len(outputs) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertOutputsQuery())
	if err != nil {
		return fmt.Errorf("prepare outputs batch: %w", err)
	}

	for _, output := range outputs {
		if err = batch.Append(
			r.network,
			output.TxID,
			output.Index,
			output.Value,
			output.ScriptHex,
			output.BlockHeight,
		); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append output: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert outputs: %w", err)
	}
	return nil
}
