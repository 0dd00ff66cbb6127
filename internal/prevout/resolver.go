// Package prevout resolves the outputs spent by transaction inputs.
package prevout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/jellydator/ttlcache/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheTTL bounds how long a resolved output is reused.
const DefaultCacheTTL = 10 * time.Minute

// sharedFetchTimeout bounds a source call shared by concurrent callers.
const sharedFetchTimeout = time.Minute

// resolverBatchSize controls how many outpoints are fetched in one source call.
// It is a var to allow overriding in tests.
var resolverBatchSize = 1000

// Resolver fetches spent outputs from a Source, caching them and reusing results across inputs.
type Resolver struct {
	source Source
	cache  *ttlcache.Cache[wire.OutPoint, *wire.TxOut]
	group  singleflight.Group
	logger *zap.Logger
}

type resolverConfig struct {
	ttl      time.Duration
	capacity uint64
	logger   *zap.Logger
}

// Option configures a Resolver.
type Option func(*resolverConfig)

// WithCacheTTL sets the cache entry lifetime. Non-positive values keep the default.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *resolverConfig) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithCacheCapacity caps the number of cached outputs. Zero means unbounded.
func WithCacheCapacity(capacity uint64) Option {
	return func(c *resolverConfig) {
		c.capacity = capacity
	}
}

// WithLogger sets the resolver logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *resolverConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewResolver constructs a Resolver over source. Call Start to run cache eviction in the background.
func NewResolver(source Source, opts ...Option) *Resolver {
	cfg := resolverConfig{ttl: DefaultCacheTTL, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	cacheOpts := []ttlcache.Option[wire.OutPoint, *wire.TxOut]{
		ttlcache.WithTTL[wire.OutPoint, *wire.TxOut](cfg.ttl),
		ttlcache.WithDisableTouchOnHit[wire.OutPoint, *wire.TxOut](),
	}
	if cfg.capacity > 0 {
		cacheOpts = append(cacheOpts, ttlcache.WithCapacity[wire.OutPoint, *wire.TxOut](cfg.capacity))
	}

	return &Resolver{
		source: source,
		cache:  ttlcache.New[wire.OutPoint, *wire.TxOut](cacheOpts...),
		logger: cfg.logger,
	}
}

// Start runs expired entry eviction until Stop is called.
func (r *Resolver) Start() {
	go r.cache.Start()
}

// Stop halts eviction started by Start.
func (r *Resolver) Stop() {
	r.cache.Stop()
}

// Resolve returns a fetcher holding every known output spent by tx. Coinbase inputs are skipped and
// unknown outpoints are left out of the fetcher.
func (r *Resolver) Resolve(ctx context.Context, tx *wire.MsgTx) (*txscript.MultiPrevOutFetcher, error) {
	outpoints := make([]wire.OutPoint, 0, len(tx.TxIn))
	for _, in := range tx.TxIn {
		if isNullOutPoint(in.PreviousOutPoint) {
			continue
		}
		outpoints = append(outpoints, in.PreviousOutPoint)
	}

	outputs, err := r.ResolveOutPoints(ctx, outpoints)
	if err != nil {
		return nil, err
	}
	return txscript.NewMultiPrevOutFetcher(outputs), nil
}

// ResolveOutPoints returns the outputs for outpoints, consulting the cache first.
func (r *Resolver) ResolveOutPoints(ctx context.Context, outpoints []wire.OutPoint) (map[wire.OutPoint]*wire.TxOut, error) {
	result := make(map[wire.OutPoint]*wire.TxOut, len(outpoints))

	seen := make(map[wire.OutPoint]struct{}, len(outpoints))
	missing := make([]wire.OutPoint, 0, len(outpoints))

	for _, op := range outpoints {
		if _, dup := seen[op]; dup {
			continue
		}
		seen[op] = struct{}{}
		if item := r.cache.Get(op); item != nil {
			result[op] = item.Value()
			continue
		}
		missing = append(missing, op)
	}

	if len(missing) == 0 {
		return result, nil
	}

	size := resolverBatchSize
	if size <= 0 {
		size = 1000
	}
	for start := 0; start < len(missing); start += size {
		end := start + size
		if end > len(missing) {
			end = len(missing)
		}

		fetched, err := r.fetch(ctx, missing[start:end])
		if err != nil {
			return nil, fmt.Errorf("query spent outputs: %w", err)
		}
		for _, op := range missing[start:end] {
			out, ok := fetched[op]
			if !ok || out == nil {
				continue
			}
			r.cache.Set(op, out, ttlcache.DefaultTTL)
			result[op] = out
		}
	}

	r.logger.Debug("resolved spent outputs",
		zap.Int("requested", len(seen)),
		zap.Int("fetched", len(missing)),
		zap.Int("found", len(result)),
	)
	return result, nil
}

// fetch queries the source, sharing the call with concurrent requests for the same batch.
// The shared call runs detached from ctx so one cancelled caller does not fail the others.
// The returned map is shared and must not be modified.
func (r *Resolver) fetch(ctx context.Context, batch []wire.OutPoint) (map[wire.OutPoint]*wire.TxOut, error) {
	ch := r.group.DoChan(batchKey(batch), func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedFetchTimeout)
		defer cancel()
		return r.source.PrevOutputs(fetchCtx, batch)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		outputs, _ := res.Val.(map[wire.OutPoint]*wire.TxOut)
		return outputs, nil
	}
}

func batchKey(batch []wire.OutPoint) string {
	var b strings.Builder
	for i, op := range batch {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(op.String())
	}
	return b.String()
}

func isNullOutPoint(op wire.OutPoint) bool {
	return op.Index == wire.MaxPrevOutIndex && op.Hash == chainhash.Hash{}
}
