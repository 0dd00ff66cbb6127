// Package admission runs incoming transactions through relay policy and Taproot verification.
package admission

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/txguard/internal/consensus"
	"github.com/goodnatureofminers/txguard/internal/mempool"
	"github.com/goodnatureofminers/txguard/internal/metrics"
	"github.com/goodnatureofminers/txguard/internal/model"
	"github.com/goodnatureofminers/txguard/internal/taproot"
	"github.com/goodnatureofminers/txguard/pkg/workerpool"
)

// ErrTaprootRejected marks a rejection caused by a Taproot input that failed verification.
var ErrTaprootRejected = errors.New("taproot input rejected")

const reasonTaproot = "taproot"

// Deps bundles the collaborators of a Service. Recorder is optional.
type Deps struct {
	Provider consensus.Provider
	Oracle   HeightOracle
	Resolver PrevOutResolver
	Policy   *mempool.Policy
	Verifier *taproot.Verifier
	Recorder Recorder
	Metrics  Metrics
}

// Result describes the outcome of a single admission check.
type Result struct {
	TxID          chainhash.Hash
	Height        uint32
	TaprootActive bool
	VSize         uint64
	Fee           uint64
	FeeKnown      bool
	MinFee        uint64
	Inputs        []taproot.InputResult
	Err           error
}

// Accepted reports whether the transaction passed every check.
func (r *Result) Accepted() bool {
	return r.Err == nil
}

// Reason returns a short label for the rejection, or "" when accepted.
func (r *Result) Reason() string {
	if r.Err == nil {
		return ""
	}
	if errors.Is(r.Err, ErrTaprootRejected) {
		return reasonTaproot
	}
	return mempool.RejectReason(r.Err)
}

// Service checks transactions for relay.
type Service struct {
	deps   Deps
	logger *zap.Logger
}

// NewService validates deps and constructs a Service.
func NewService(deps Deps, logger *zap.Logger) (*Service, error) {
	switch {
	case deps.Oracle == nil:
		return nil, errors.New("admission: height oracle is required")
	case deps.Resolver == nil:
		return nil, errors.New("admission: prevout resolver is required")
	case deps.Policy == nil:
		return nil, errors.New("admission: policy is required")
	case deps.Verifier == nil:
		return nil, errors.New("admission: taproot verifier is required")
	case deps.Metrics == nil:
		return nil, errors.New("admission: metrics are required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{deps: deps, logger: logger}, nil
}

// Check runs tx through policy and Taproot verification. Rejections are reported in Result.Err;
// the returned error is reserved for failures of the height oracle or prevout resolver.
func (s *Service) Check(ctx context.Context, tx *wire.MsgTx) (*Result, error) {
	started := time.Now()
	if tx == nil {
		s.deps.Metrics.ObserveCheck(metrics.OutcomeError, "", started)
		return nil, errors.New("admission: nil transaction")
	}

	active, height, err := s.deps.Provider.TaprootActiveForNextBlock(ctx, s.deps.Oracle)
	if err != nil {
		s.deps.Metrics.ObserveCheck(metrics.OutcomeError, "", started)
		return nil, fmt.Errorf("best height: %w", err)
	}

	prevOuts, err := s.deps.Resolver.Resolve(ctx, tx)
	if err != nil {
		s.deps.Metrics.ObserveCheck(metrics.OutcomeError, "", started)
		return nil, fmt.Errorf("resolve spent outputs: %w", err)
	}
	if prevOuts == nil {
		prevOuts = txscript.NewMultiPrevOutFetcher(nil)
	}

	result := &Result{
		TxID:          tx.TxHash(),
		Height:        height,
		TaprootActive: active,
		VSize:         mempool.VirtualSize(tx),
		MinFee:        s.deps.Policy.CalculateMinFee(tx),
	}
	if fee, feeErr := mempool.Fee(tx, prevOuts); feeErr == nil {
		result.Fee, result.FeeKnown = fee, true
	}

	result.Err = s.deps.Policy.CheckTransaction(tx, prevOuts)
	if result.Err == nil {
		result.Err = s.checkTaprootInputs(tx, prevOuts, active, result)
	}

	s.record(ctx, tx, result, started)
	return result, nil
}

func (s *Service) checkTaprootInputs(
	tx *wire.MsgTx,
	prevOuts *txscript.MultiPrevOutFetcher,
	active bool,
	result *Result,
) error {
	var sigHashes *txscript.TxSigHashes
	for i, in := range tx.TxIn {
		prev := prevOuts.FetchPrevOutput(in.PreviousOutPoint)
		if prev == nil || !txscript.IsPayToTaproot(prev.PkScript) {
			continue
		}
		if !active {
			return fmt.Errorf("%w: input %d spends a taproot output before activation at height %d",
				mempool.ErrNonStandard, i, s.deps.Provider.Params().TaprootActivationHeight)
		}
		if spend, err := taproot.ParseWitness(in.Witness); err == nil && spend.Annex != nil {
			return fmt.Errorf("%w: input %d carries a taproot annex", mempool.ErrNonStandard, i)
		}
		if sigHashes == nil {
			// CheckTransaction has already required every spent output to resolve.
			sigHashes = txscript.NewTxSigHashes(tx, prevOuts)
		}

		input, err := s.deps.Verifier.VerifyInput(tx, i, prevOuts, sigHashes)
		result.Inputs = append(result.Inputs, input)
		s.deps.Metrics.ObserveTaprootInput(input.Path.String(), input.Verdict.String())
		if err != nil {
			return fmt.Errorf("%w: %w", ErrTaprootRejected, err)
		}
	}
	return nil
}

func (s *Service) record(ctx context.Context, tx *wire.MsgTx, result *Result, started time.Time) {
	outcome := metrics.OutcomeAccepted
	if !result.Accepted() {
		outcome = metrics.OutcomeRejected
	}
	s.deps.Metrics.ObserveCheck(outcome, result.Reason(), started)

	if s.deps.Recorder == nil {
		return
	}

	var err error
	if result.Accepted() {
		err = s.deps.Recorder.RecordAccepted(ctx, tx, result.Height)
	} else {
		s.logger.Debug("transaction rejected",
			zap.Stringer("txid", result.TxID),
			zap.String("reason", result.Reason()),
			zap.Error(result.Err),
		)
		err = s.deps.Recorder.RecordRejection(ctx, model.Rejection{
			Network:   s.deps.Provider.Params().Network.String(),
			TxID:      result.TxID.String(),
			Reason:    result.Reason(),
			Message:   result.Err.Error(),
			VSize:     result.VSize,
			Fee:       result.Fee,
			Height:    result.Height,
			CheckedAt: time.Now().UTC(),
		})
	}
	if err != nil {
		s.logger.Warn("admission journal write failed", zap.Stringer("txid", result.TxID), zap.Error(err))
	}
}

// CheckBatch checks txs concurrently with at most workers in flight. Results keep the order of txs.
// The first infrastructure failure cancels the remaining checks.
func (s *Service) CheckBatch(ctx context.Context, txs []*wire.MsgTx, workers int) ([]*Result, error) {
	return workerpool.Map(ctx, workers, txs, func(ctx context.Context, tx *wire.MsgTx) (*Result, error) {
		return s.Check(ctx, tx)
	})
}
