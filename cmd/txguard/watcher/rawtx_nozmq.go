//go:build !zmq

package main

import (
	"context"
	"errors"

	"github.com/btcsuite/btcd/wire"
	"go.uber.org/zap"
)

func subscribeRawTx(context.Context, string, *zap.Logger) (<-chan *wire.MsgTx, error) {
	return nil, errors.New("watcher built without zmq support, rebuild with -tags zmq")
}
