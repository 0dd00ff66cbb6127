package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/txguard/internal/model"
)

func insertRejectionsQuery() string {
	return `
INSERT INTO policy_rejections (
	network,
	txid,
	reason,
	message,
	vsize,
	fee,
	height,
	checked_at
) VALUES`
}

// InsertRejections stores policy rejections in ClickHouse.
func (r *Repository) InsertRejections(ctx context.Context, rejections []model.Rejection) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("insert_rejections", r.network, err, start)
	}()

	if len(rejections) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertRejectionsQuery())
	if err != nil {
		return fmt.Errorf("prepare rejections batch: %w", err)
	}

	for _, rejection := range rejections {
		network := rejection.Network
		if network == "" {
			network = r.network
		}
		if err = batch.Append(
			network,
			rejection.TxID,
			rejection.Reason,
			rejection.Message,
			rejection.VSize,
			rejection.Fee,
			rejection.Height,
			rejection.CheckedAt,
		); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append rejection: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert rejections: %w", err)
	}
	return nil
}
