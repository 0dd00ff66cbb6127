package clickhouse

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/txguard/pkg/safe"
)

func prevOutputsQuery() string {
	return `
SELECT
	txid,
	output_index,
	anyLast(value) AS value,
	anyLast(script_hex) AS script_hex
FROM utxo_transaction_outputs
WHERE network = ? AND txid IN ?
GROUP BY
	txid,
	output_index
SETTINGS max_threads = 1`
}

// PrevOutputs returns the stored outputs referenced by outpoints. Outpoints without a stored
// output are absent from the result.
func (r *Repository) PrevOutputs(ctx context.Context, outpoints []wire.OutPoint) (result map[wire.OutPoint]*wire.TxOut, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("prev_outputs", r.network, err, start)
	}()

	result = make(map[wire.OutPoint]*wire.TxOut, len(outpoints))
	if len(outpoints) == 0 {
		return result, nil
	}

	wanted := make(map[wire.OutPoint]struct{}, len(outpoints))
	txids := make([]string, 0, len(outpoints))
	seen := make(map[chainhash.Hash]struct{}, len(outpoints))
	for _, op := range outpoints {
		wanted[op] = struct{}{}
		if _, ok := seen[op.Hash]; ok {
			continue
		}
		seen[op.Hash] = struct{}{}
		txids = append(txids, op.Hash.String())
	}

	rows, err := r.conn.Query(ctx, prevOutputsQuery(), r.network, txids)
	if err != nil {
		return nil, fmt.Errorf("query spent outputs: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	for rows.Next() {
		var (
			txid      string
			index     uint32
			value     uint64
			scriptHex string
		)
		if err = rows.Scan(&txid, &index, &value, &scriptHex); err != nil {
			return nil, fmt.Errorf("scan spent output: %w", err)
		}

		hash, perr := chainhash.NewHashFromStr(txid)
		if perr != nil {
			err = fmt.Errorf("parse txid %q: %w", txid, perr)
			return nil, err
		}
		op := wire.OutPoint{Hash: *hash, Index: index}
		if _, ok := wanted[op]; !ok {
			continue
		}
		amount, perr := safe.Int64(value)
		if perr != nil {
			err = fmt.Errorf("output %s value: %w", op, perr)
			return nil, err
		}
		script, perr := hex.DecodeString(scriptHex)
		if perr != nil {
			err = fmt.Errorf("decode script of %s: %w", op, perr)
			return nil, err
		}
		result[op] = wire.NewTxOut(amount, script)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate spent outputs: %w", err)
	}

	return result, nil
}
