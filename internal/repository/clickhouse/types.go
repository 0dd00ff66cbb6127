package clickhouse

import (
	"context"
	"time"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Metrics records repository operation outcomes.
	Metrics interface {
		Observe(operation string, network string, err error, started time.Time)
	}

	// Conn is the subset of a ClickHouse connection the repository uses.
	Conn interface {
		Query(ctx context.Context, query string, args ...any) (Rows, error)
		PrepareBatch(ctx context.Context, query string) (Batch, error)
		Close() error
	}

	// Rows iterates query results.
	Rows interface {
		Next() bool
		Scan(dest ...any) error
		Err() error
		Close() error
	}

	// Batch accumulates rows for a single insert.
	Batch interface {
		Append(v ...any) error
		Send() error
		Abort() error
	}
)
