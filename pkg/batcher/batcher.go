// Package batcher provides a generic buffered batch processor with rate limiting.
package batcher

import (
	"context"
	"sync"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

const (
	DefaultFlushSize     = 500
	DefaultFlushInterval = time.Second
	// finalFlushTimeout bounds the flush performed after the run context is canceled.
	finalFlushTimeout = 5 * time.Second
)

type config struct {
	flushSize     int
	flushInterval time.Duration
	rps           int
	logger        *zap.Logger
	observer      func(size int, err error, started time.Time)
}

// Option configures a Batcher.
type Option func(*config)

// WithFlushSize flushes once size items are buffered.
func WithFlushSize(size int) Option {
	return func(c *config) {
		if size > 0 {
			c.flushSize = size
		}
	}
}

// WithFlushInterval flushes buffered items at least this often.
func WithFlushInterval(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.flushInterval = d
		}
	}
}

// WithRateLimit caps flushes per second. Zero or negative leaves flushes unlimited.
func WithRateLimit(rps int) Option {
	return func(c *config) {
		c.rps = rps
	}
}

// WithLogger sets the logger used to report flush failures.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithFlushObserver registers a callback invoked after every flush attempt.
func WithFlushObserver(observe func(size int, err error, started time.Time)) Option {
	return func(c *config) {
		c.observer = observe
	}
}

// Batcher buffers items and flushes them either by size or interval.
type Batcher[T any] struct {
	flushCallback func(context.Context, []T) error
	itemsCh       chan T
	cfg           config
	rl            ratelimit.Limiter

	wg       sync.WaitGroup
	stop     chan struct{}
	stopOnce sync.Once
}

// New constructs a Batcher that hands buffered items to flushCallback.
func New[T any](flushCallback func(context.Context, []T) error, opts ...Option) *Batcher[T] {
	cfg := config{
		flushSize:     DefaultFlushSize,
		flushInterval: DefaultFlushInterval,
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	rl := ratelimit.NewUnlimited()
	if cfg.rps > 0 {
		rl = ratelimit.New(cfg.rps)
	}

	return &Batcher[T]{
		flushCallback: flushCallback,
		itemsCh:       make(chan T, cfg.flushSize*2),
		cfg:           cfg,
		rl:            rl,
		stop:          make(chan struct{}),
	}
}

// Start begins the background flushing loop.
func (b *Batcher[T]) Start(ctx context.Context) {
	b.wg.Add(1)
	go b.run(ctx)
}

// Stop flushes queued items and stops the background loop. It is safe to call more than once.
func (b *Batcher[T]) Stop() {
	b.stopOnce.Do(func() {
		close(b.stop)
	})
	b.wg.Wait()
}

// Add queues an item for batching, respecting context cancellation.
func (b *Batcher[T]) Add(ctx context.Context, item T) error {
	select {
	case <-b.stop:
		return context.Canceled
	default:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.stop:
		return context.Canceled
	case b.itemsCh <- item:
		return nil
	}
}

func (b *Batcher[T]) run(ctx context.Context) {
	defer b.wg.Done()

	ticker := time.NewTicker(b.cfg.flushInterval)
	defer ticker.Stop()

	buf := make([]T, 0, b.cfg.flushSize)

	flush := func(ctx context.Context) {
		if len(buf) == 0 {
			return
		}

		b.rl.Take()
		started := time.Now()
		err := b.flushCallback(ctx, buf)
		if err != nil {
			b.cfg.logger.Error("batch not flushed", zap.Int("size", len(buf)), zap.Error(err))
		} else {
			b.cfg.logger.Debug("batch flushed", zap.Int("size", len(buf)))
		}
		if b.cfg.observer != nil {
			b.cfg.observer(len(buf), err, started)
		}
		buf = buf[:0]
	}

	drain := func() {
		finalCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), finalFlushTimeout)
		defer cancel()
		for {
			select {
			case item := <-b.itemsCh:
				buf = append(buf, item)
				if len(buf) >= b.cfg.flushSize {
					flush(finalCtx)
				}
			default:
				flush(finalCtx)
				return
			}
		}
	}

	for {
		select {
		case <-ctx.Done():
			drain()
			return

		case <-b.stop:
			drain()
			return

		case item := <-b.itemsCh:
			buf = append(buf, item)
			if len(buf) >= b.cfg.flushSize {
				flush(ctx)
			}

		case <-ticker.C:
			flush(ctx)
		}
	}
}
