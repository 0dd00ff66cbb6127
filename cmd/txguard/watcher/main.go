// Command watcher checks every transaction the node announces over ZMQ and journals the outcome to ClickHouse.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/btcsuite/btcd/wire"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goodnatureofminers/txguard/internal/admission"
	"github.com/goodnatureofminers/txguard/internal/bitcoin"
	"github.com/goodnatureofminers/txguard/internal/consensus"
	"github.com/goodnatureofminers/txguard/internal/mempool"
	"github.com/goodnatureofminers/txguard/internal/metrics"
	"github.com/goodnatureofminers/txguard/internal/prevout"
	"github.com/goodnatureofminers/txguard/internal/repository/clickhouse"
	"github.com/goodnatureofminers/txguard/internal/taproot"
)

type config struct {
	ClickhouseDSN string        `long:"clickhouse-dsn" env:"TXGUARD_CLICKHOUSE_DSN" description:"ClickHouse DSN" required:"true"`
	Network       string        `long:"network" env:"TXGUARD_NETWORK" description:"network name" required:"true"`
	RPCURL        string        `long:"rpc-url" env:"TXGUARD_RPC_URL" description:"Bitcoin RPC URL" default:"http://127.0.0.1:8332"`
	RPCUser       string        `long:"rpc-user" env:"TXGUARD_RPC_USER" description:"Bitcoin RPC username"`
	RPCPassword   string        `long:"rpc-password" env:"TXGUARD_RPC_PASSWORD" description:"Bitcoin RPC password"`
	ZMQAddr       string        `long:"zmq-addr" env:"TXGUARD_ZMQ_ADDR" description:"node zmqpubrawtx endpoint" default:"tcp://127.0.0.1:28333"`
	Workers       int           `long:"workers" env:"TXGUARD_WORKERS" description:"concurrent admission checks" default:"4"`
	CacheTTL      time.Duration `long:"cache-ttl" env:"TXGUARD_CACHE_TTL" description:"spent output cache lifetime" default:"10m"`
	CacheCapacity uint64        `long:"cache-capacity" env:"TXGUARD_CACHE_CAPACITY" description:"spent output cache size, 0 for unbounded" default:"500000"`
	FlushSize     int           `long:"flush-size" env:"TXGUARD_FLUSH_SIZE" description:"journal batch size" default:"500"`
	FlushInterval time.Duration `long:"flush-interval" env:"TXGUARD_FLUSH_INTERVAL" description:"journal flush interval" default:"1s"`
	FlushRate     int           `long:"flush-rate" env:"TXGUARD_FLUSH_RATE" description:"journal flushes per second, 0 for unlimited" default:"0"`
	MetricsAddr   string        `long:"metrics-addr" env:"TXGUARD_METRICS_ADDR" description:"address for metrics server" default:":2112"`

	Policy struct {
		MinRelayFee       uint64 `long:"min-relay-fee" env:"MIN_RELAY_FEE" description:"minimum relay fee rate in sat/kvB" default:"1000"`
		DustLimit         uint64 `long:"dust-limit" env:"DUST_LIMIT" description:"minimum output value in satoshis" default:"546"`
		AcceptNonStandard bool   `long:"accept-non-standard" env:"ACCEPT_NON_STANDARD" description:"skip standardness checks"`
	} `group:"Policy" namespace:"policy" env-namespace:"TXGUARD_POLICY"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("txguard watcher failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	network := consensus.ParseNetwork(cfg.Network)
	if network == consensus.Unknown {
		return fmt.Errorf("unknown network %q", cfg.Network)
	}
	logger = logger.With(zap.Stringer("network", network))

	startMetricsServer(ctx, cfg.MetricsAddr, logger)

	repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, network.String(), metrics.NewClickhouseRepository())
	if err != nil {
		return fmt.Errorf("init repository: %w", err)
	}
	defer func() {
		_ = repo.Close()
	}()

	rpcClient, err := bitcoin.Dial(cfg.RPCURL, cfg.RPCUser, cfg.RPCPassword)
	if err != nil {
		return fmt.Errorf("init rpc client: %w", err)
	}
	defer func() {
		rpcClient.Shutdown()
		rpcClient.WaitForShutdown()
	}()
	node := bitcoin.NewNodeSource(bitcoin.NewObservedClient(rpcClient, metrics.NewRPCClient(network.String())), logger)

	resolver := prevout.NewResolver(
		prevout.Chain{repo, node},
		prevout.WithCacheTTL(cfg.CacheTTL),
		prevout.WithCacheCapacity(cfg.CacheCapacity),
		prevout.WithLogger(logger.Named("prevout")),
	)
	resolver.Start()
	defer resolver.Stop()

	journal := admission.NewJournal(admission.JournalConfig{
		Network:       network.String(),
		FlushSize:     cfg.FlushSize,
		FlushInterval: cfg.FlushInterval,
		RateLimit:     cfg.FlushRate,
	}, repo, repo, metrics.NewJournal(network.String()), logger.Named("journal"))
	journal.Start(ctx)
	defer journal.Stop()

	settings := mempool.DefaultSettings()
	settings.MinRelayFee = cfg.Policy.MinRelayFee
	settings.DustLimit = cfg.Policy.DustLimit
	settings.AcceptNonStandard = cfg.Policy.AcceptNonStandard

	svc, err := admission.NewService(admission.Deps{
		Provider: consensus.NewProvider(network),
		Oracle:   node,
		Resolver: resolver,
		Policy:   mempool.NewPolicy(mempool.WithSettings(settings), mempool.WithLogger(logger)),
		Verifier: taproot.NewVerifier(taproot.WithChainParams(network.ChainParams()), taproot.WithLogger(logger)),
		Recorder: journal,
		Metrics:  metrics.NewAdmission(network.String()),
	}, logger.Named("admission"))
	if err != nil {
		return err
	}

	txs, err := subscribeRawTx(ctx, cfg.ZMQAddr, logger)
	if err != nil {
		return err
	}

	logger.Info("watching transactions",
		zap.String("zmq", cfg.ZMQAddr),
		zap.Int("workers", cfg.Workers),
	)
	return consume(ctx, svc, txs, cfg.Workers, logger)
}

// consume checks transactions from txs with a fixed number of workers until txs is closed or ctx ends.
// Failed checks are logged and skipped.
func consume(ctx context.Context, svc *admission.Service, txs <-chan *wire.MsgTx, workers int, logger *zap.Logger) error {
	if workers <= 0 {
		workers = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return nil
				case tx, ok := <-txs:
					if !ok {
						return nil
					}
					res, err := svc.Check(ctx, tx)
					if err != nil {
						logger.Warn("admission check failed", zap.Stringer("txid", tx.TxHash()), zap.Error(err))
						continue
					}
					if !res.Accepted() {
						logger.Info("transaction rejected",
							zap.Stringer("txid", res.TxID),
							zap.String("reason", res.Reason()),
							zap.Error(res.Err),
						)
					}
				}
			}
		})
	}
	return g.Wait()
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	if addr == "" {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}
