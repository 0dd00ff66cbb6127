//go:build zmq

package main

import (
	"context"
	"errors"
	"fmt"
	"syscall"
	"time"

	"github.com/btcsuite/btcd/wire"
	"github.com/pebbe/zmq4"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/txguard/internal/clock"
)

const recvTimeout = time.Second

// subscribeRawTx streams transactions announced on the node's rawtx topic until ctx ends.
// Lost connections are re-established with exponential backoff.
func subscribeRawTx(ctx context.Context, addr string, logger *zap.Logger) (<-chan *wire.MsgTx, error) {
	if addr == "" {
		return nil, errors.New("zmq address is required")
	}

	sub, err := newSubscriber(addr, rawTxTopic)
	if err != nil {
		return nil, fmt.Errorf("connect zmq: %w", err)
	}

	txs := make(chan *wire.MsgTx, 256)
	go func() {
		defer close(txs)
		defer func() {
			_ = sub.Close()
		}()

		backoff := &clock.Backoff{Initial: time.Second, Max: 30 * time.Second}
		for ctx.Err() == nil {
			parts, err := sub.RecvMessageBytes(0)
			if err != nil {
				if errors.Is(err, syscall.EAGAIN) {
					continue
				}
				logger.Warn("zmq recv failed, reconnecting", zap.Error(err))
				_ = sub.Close()
				err = clock.Retry(ctx, backoff, nil, func(context.Context) error {
					var dialErr error
					sub, dialErr = newSubscriber(addr, rawTxTopic)
					if dialErr != nil {
						logger.Warn("zmq reconnect failed", zap.Error(dialErr))
					}
					return dialErr
				})
				if err != nil {
					return
				}
				continue
			}

			tx, err := decodeRawTx(parts)
			if err != nil {
				logger.Warn("skip zmq message", zap.Error(err))
				continue
			}

			select {
			case txs <- tx:
			case <-ctx.Done():
				return
			}
		}
	}()

	return txs, nil
}

func newSubscriber(addr string, topics ...string) (*zmq4.Socket, error) {
	sub, err := zmq4.NewSocket(zmq4.SUB)
	if err != nil {
		return nil, err
	}

	if err := sub.SetRcvtimeo(recvTimeout); err != nil {
		_ = sub.Close()
		return nil, err
	}
	for _, topic := range topics {
		if err := sub.SetSubscribe(topic); err != nil {
			_ = sub.Close()
			return nil, err
		}
	}

	if err := sub.Connect(addr); err != nil {
		_ = sub.Close()
		return nil, err
	}
	return sub, nil
}
