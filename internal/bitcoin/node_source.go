// Package bitcoin adapts a Bitcoin Core compatible JSON-RPC node to the admission collaborators.
package bitcoin

import (
	"context"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/txguard/pkg/safe"
	"go.uber.org/zap"
)

// NodeSource answers best-height and spent-output queries from a node.
type NodeSource struct {
	rpc    NodeClient
	logger *zap.Logger
}

// NewNodeSource creates a NodeSource. A nil logger is replaced with a no-op logger.
func NewNodeSource(rpc NodeClient, logger *zap.Logger) *NodeSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NodeSource{rpc: rpc, logger: logger}
}

// BestHeight returns the height of the node's best block.
func (s *NodeSource) BestHeight(ctx context.Context) (uint32, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	count, err := s.rpc.GetBlockCount()
	if err != nil {
		return 0, fmt.Errorf("get block count: %w", err)
	}
	height, err := safe.Uint32(count)
	if err != nil {
		return 0, fmt.Errorf("block count overflow: %w", err)
	}
	return height, nil
}

// PrevOutputs fetches the funding transactions of outpoints. Transactions the node does not know
// and out of range output indexes are left out of the result.
func (s *NodeSource) PrevOutputs(ctx context.Context, outpoints []wire.OutPoint) (map[wire.OutPoint]*wire.TxOut, error) {
	byTx := make(map[chainhash.Hash][]uint32, len(outpoints))
	order := make([]chainhash.Hash, 0, len(outpoints))
	for _, op := range outpoints {
		if _, ok := byTx[op.Hash]; !ok {
			order = append(order, op.Hash)
		}
		byTx[op.Hash] = append(byTx[op.Hash], op.Index)
	}

	result := make(map[wire.OutPoint]*wire.TxOut, len(outpoints))
	for _, txid := range order {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		hash := txid
		tx, err := s.rpc.GetRawTransaction(&hash)
		if err != nil {
			if isNoTxInfo(err) {
				s.logger.Debug("funding transaction not found", zap.Stringer("txid", &hash))
				continue
			}
			return nil, fmt.Errorf("get raw transaction %s: %w", hash, err)
		}

		outs := tx.MsgTx().TxOut
		for _, index := range byTx[txid] {
			if int(index) >= len(outs) {
				continue
			}
			result[wire.OutPoint{Hash: txid, Index: index}] = outs[index]
		}
	}
	return result, nil
}

func isNoTxInfo(err error) bool {
	var rpcErr *btcjson.RPCError
	return errors.As(err, &rpcErr) && rpcErr.Code == btcjson.ErrRPCNoTxInfo
}
