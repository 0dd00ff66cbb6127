package main

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/wire"
)

const rawTxTopic = "rawtx"

var errMalformedMessage = errors.New("malformed zmq message")

// decodeRawTx parses a [topic, body, sequence] notification published by the node.
func decodeRawTx(parts [][]byte) (*wire.MsgTx, error) {
	if len(parts) < 2 {
		return nil, fmt.Errorf("%w: %d parts", errMalformedMessage, len(parts))
	}
	if string(parts[0]) != rawTxTopic {
		return nil, fmt.Errorf("%w: unexpected topic %q", errMalformedMessage, parts[0])
	}
	tx := wire.NewMsgTx(wire.TxVersion)
	if err := tx.Deserialize(bytes.NewReader(parts[1])); err != nil {
		return nil, fmt.Errorf("deserialize rawtx: %w", err)
	}
	return tx, nil
}
