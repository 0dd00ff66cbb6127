// Command check runs one transaction through relay policy and Taproot verification.
package main

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/txguard/internal/address"
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
	Network       string `long:"network" env:"TXGUARD_NETWORK" description:"network name" default:"mainnet"`
	RPCURL        string `long:"rpc-url" env:"TXGUARD_RPC_URL" description:"Bitcoin RPC URL" default:"http://127.0.0.1:8332"`
	RPCUser       string `long:"rpc-user" env:"TXGUARD_RPC_USER" description:"Bitcoin RPC username"`
	RPCPassword   string `long:"rpc-password" env:"TXGUARD_RPC_PASSWORD" description:"Bitcoin RPC password"`
	ClickhouseDSN string `long:"clickhouse-dsn" env:"TXGUARD_CLICKHOUSE_DSN" description:"ClickHouse DSN consulted for spent outputs before the node"`
	TxID          string `long:"txid" description:"fetch the transaction from the node instead of reading hex"`
	Verbose       bool   `short:"v" long:"verbose" description:"debug logging"`

	Policy policyConfig `group:"Policy" namespace:"policy" env-namespace:"TXGUARD_POLICY"`

	Args struct {
		Hex string `positional-arg-name:"rawtx" description:"hex encoded transaction, or - for stdin"`
	} `positional-args:"yes"`
}

type policyConfig struct {
	MinRelayFee       uint64 `long:"min-relay-fee" env:"MIN_RELAY_FEE" description:"minimum relay fee rate in sat/kvB" default:"1000"`
	MaxTxSize         uint64 `long:"max-tx-size" env:"MAX_TX_SIZE" description:"maximum virtual size in vbytes" default:"100000"`
	DustLimit         uint64 `long:"dust-limit" env:"DUST_LIMIT" description:"minimum output value in satoshis" default:"546"`
	AcceptNonStandard bool   `long:"accept-non-standard" env:"ACCEPT_NON_STANDARD" description:"skip standardness checks"`
}

func (p policyConfig) settings() mempool.Settings {
	s := mempool.DefaultSettings()
	s.MinRelayFee = p.MinRelayFee
	s.MaxTxSize = p.MaxTxSize
	s.DustLimit = p.DustLimit
	s.AcceptNonStandard = p.AcceptNonStandard
	return s
}

func main() {
	cfg := config{}
	if _, err := flags.Parse(&cfg); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		os.Exit(2)
	}

	logger, err := newLogger(cfg.Verbose)
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	accepted, err := run(ctx, cfg, os.Stdin, os.Stdout, logger)
	if err != nil {
		logger.Fatal("check failed", zap.Error(err))
	}
	if !accepted {
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	if !verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	zcfg.OutputPaths = []string{"stderr"}
	return zcfg.Build()
}

func run(ctx context.Context, cfg config, stdin io.Reader, out io.Writer, logger *zap.Logger) (bool, error) {
	network := consensus.ParseNetwork(cfg.Network)
	if network == consensus.Unknown {
		return false, fmt.Errorf("unknown network %q", cfg.Network)
	}

	rpcClient, err := bitcoin.Dial(cfg.RPCURL, cfg.RPCUser, cfg.RPCPassword)
	if err != nil {
		return false, fmt.Errorf("init rpc client: %w", err)
	}
	defer func() {
		rpcClient.Shutdown()
		rpcClient.WaitForShutdown()
	}()
	rpc := bitcoin.NewObservedClient(rpcClient, metrics.NewRPCClient(network.String()))
	node := bitcoin.NewNodeSource(rpc, logger)

	tx, err := loadTransaction(cfg, stdin, rpc)
	if err != nil {
		return false, err
	}

	sources := prevout.Chain{}
	if cfg.ClickhouseDSN != "" {
		repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, network.String(), metrics.NewClickhouseRepository())
		if err != nil {
			return false, fmt.Errorf("init repository: %w", err)
		}
		defer func() {
			_ = repo.Close()
		}()
		sources = append(sources, repo)
	}
	sources = append(sources, node)

	svc, err := admission.NewService(admission.Deps{
		Provider: consensus.NewProvider(network),
		Oracle:   node,
		Resolver: prevout.NewResolver(sources, prevout.WithLogger(logger)),
		Policy:   mempool.NewPolicy(mempool.WithSettings(cfg.Policy.settings()), mempool.WithLogger(logger)),
		Verifier: taproot.NewVerifier(taproot.WithChainParams(network.ChainParams()), taproot.WithLogger(logger)),
		Metrics:  metrics.NewAdmission(network.String()),
	}, logger)
	if err != nil {
		return false, err
	}

	res, err := svc.Check(ctx, tx)
	if err != nil {
		return false, err
	}
	if err := report(out, tx, res, address.NewDecoder(network)); err != nil {
		return false, fmt.Errorf("write report: %w", err)
	}
	return res.Accepted(), nil
}

func loadTransaction(cfg config, stdin io.Reader, rpc bitcoin.NodeClient) (*wire.MsgTx, error) {
	if cfg.TxID != "" {
		hash, err := chainhash.NewHashFromStr(cfg.TxID)
		if err != nil {
			return nil, fmt.Errorf("parse txid: %w", err)
		}
		tx, err := rpc.GetRawTransaction(hash)
		if err != nil {
			return nil, fmt.Errorf("get raw transaction %s: %w", hash, err)
		}
		return tx.MsgTx(), nil
	}

	raw := cfg.Args.Hex
	if raw == "" || raw == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		raw = string(data)
	}
	return decodeTransaction(raw)
}

func decodeTransaction(raw string) (*wire.MsgTx, error) {
	data, err := hex.DecodeString(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("decode transaction hex: %w", err)
	}
	if len(data) == 0 {
		return nil, errors.New("empty transaction")
	}
	tx := wire.NewMsgTx(wire.TxVersion)
	if err := tx.Deserialize(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("deserialize transaction: %w", err)
	}
	return tx, nil
}

func report(w io.Writer, tx *wire.MsgTx, res *admission.Result, decoder *address.Decoder) error {
	status := "accepted"
	if !res.Accepted() {
		status = "rejected (" + res.Reason() + ")"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "txid:    %s\n", res.TxID)
	fmt.Fprintf(&b, "status:  %s\n", status)
	if res.Err != nil {
		fmt.Fprintf(&b, "error:   %v\n", res.Err)
	}
	fmt.Fprintf(&b, "height:  %d (taproot active: %t)\n", res.Height, res.TaprootActive)
	fmt.Fprintf(&b, "vsize:   %d vB\n", res.VSize)
	if res.FeeKnown {
		fmt.Fprintf(&b, "fee:     %d sat (min %d)\n", res.Fee, res.MinFee)
	} else {
		fmt.Fprintf(&b, "fee:     unknown (min %d)\n", res.MinFee)
	}
	for _, in := range res.Inputs {
		fmt.Fprintf(&b, "input %d: %s %s\n", in.Index, in.Path, in.Verdict)
	}
	for i, txOut := range tx.TxOut {
		kind, addrs, err := decoder.Describe(txOut.PkScript)
		if err != nil || len(addrs) == 0 {
			fmt.Fprintf(&b, "output %d: %d sat %s\n", i, txOut.Value, kind)
			continue
		}
		fmt.Fprintf(&b, "output %d: %d sat %s %s\n", i, txOut.Value, kind, strings.Join(addrs, ","))
	}

	_, err := io.WriteString(w, b.String())
	return err
}
