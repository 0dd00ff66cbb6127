package mempool

import (
	"github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"go.uber.org/zap"
)

const (
	minStandardTxVersion     = 1
	maxStandardTxVersion     = 2
	maxStandardSigScriptSize = 1650
	maxStandardMultiSigKeys  = 3
	maxStandardP2SHSigOps    = 15
	maxNullDataScriptSize    = 83
	maxNullDataOutputs       = 1

	maxSatoshi int64 = btcutil.MaxSatoshi

	// MaxStandardTxSigOpsCost is a fifth of the block sigop cost budget.
	MaxStandardTxSigOpsCost = blockchain.MaxBlockSigOpsCost / 5
)

// VirtualSize returns the BIP-141 virtual size, weight divided by four and rounded down.
func VirtualSize(tx *wire.MsgTx) uint64 {
	weight := blockchain.GetTransactionWeight(btcutil.NewTx(tx))
	return uint64(weight) / blockchain.WitnessScaleFactor
}

// CheckTransaction runs the admission checks in order and returns the first failure.
// The order is size, dust, output value range, standardness, sigops, then, when prevOuts is non-nil,
// input standardness and fee. A nil prevOuts skips the checks that need spent outputs.
func (p *Policy) CheckTransaction(tx *wire.MsgTx, prevOuts txscript.PrevOutputFetcher) error {
	if tx == nil {
		return General("nil transaction")
	}

	checks := []func() error{
		func() error { return p.CheckTxSize(tx) },
		func() error { return p.CheckDustOutputs(tx) },
		func() error { return CheckOutputValues(tx) },
		func() error { return p.CheckStandardness(tx) },
		func() error { return p.CheckSigOps(tx, prevOuts) },
	}
	if prevOuts != nil {
		checks = append(checks,
			func() error { return p.CheckInputsStandard(tx, prevOuts) },
			func() error { return p.CheckFee(tx, prevOuts) },
		)
	}

	for _, check := range checks {
		if err := check(); err != nil {
			p.logger.Debug("transaction rejected by policy",
				zap.Stringer("txid", tx.TxHash()),
				zap.String("reason", RejectReason(err)),
				zap.Error(err),
			)
			return err
		}
	}
	return nil
}

// CheckTxSize rejects transactions whose virtual size exceeds the configured maximum.
func (p *Policy) CheckTxSize(tx *wire.MsgTx) error {
	vsize := VirtualSize(tx)
	if limit := p.MaxTxSize(); vsize > limit {
		return reject(ErrTxTooLarge, "virtual size %d exceeds %d", vsize, limit)
	}
	return nil
}

// CheckDustOutputs rejects outputs valued below the dust limit. Provably unspendable
// null data outputs carry no spendable value and are exempt.
func (p *Policy) CheckDustOutputs(tx *wire.MsgTx) error {
	limit := p.DustLimit()
	for i, out := range tx.TxOut {
		if txscript.GetScriptClass(out.PkScript) == txscript.NullDataTy {
			continue
		}
		if out.Value < 0 || uint64(out.Value) < limit {
			return reject(ErrDustOutput, "output %d value %d below dust limit %d", i, out.Value, limit)
		}
	}
	return nil
}

// CheckOutputValues rejects output values outside [0, btcutil.MaxSatoshi] and output
// totals above btcutil.MaxSatoshi.
func CheckOutputValues(tx *wire.MsgTx) error {
	var total int64
	for i, out := range tx.TxOut {
		if out.Value < 0 || out.Value > maxSatoshi {
			return reject(ErrGeneral, "output %d value %d out of range [0, %d]", i, out.Value, maxSatoshi)
		}
		total += out.Value
		if total > maxSatoshi {
			return reject(ErrGeneral, "total output value exceeds %d at output %d", maxSatoshi, i)
		}
	}
	return nil
}

// CheckStandardness applies the standard transaction form rules unless non-standard
// transactions are accepted.
func (p *Policy) CheckStandardness(tx *wire.MsgTx) error {
	if p.AcceptNonStandard() {
		return nil
	}

	if tx.Version < minStandardTxVersion || tx.Version > maxStandardTxVersion {
		return reject(ErrNonStandard, "version %d is not in the valid range of %d-%d",
			tx.Version, minStandardTxVersion, maxStandardTxVersion)
	}

	for i, in := range tx.TxIn {
		if n := len(in.SignatureScript); n > maxStandardSigScriptSize {
			return reject(ErrNonStandard, "input %d: signature script size %d exceeds %d", i, n, maxStandardSigScriptSize)
		}
		if !txscript.IsPushOnlyScript(in.SignatureScript) {
			return reject(ErrNonStandard, "input %d: signature script is not push only", i)
		}
	}

	nullData := 0
	for i, out := range tx.TxOut {
		switch txscript.GetScriptClass(out.PkScript) {
		case txscript.NonStandardTy:
			return reject(ErrNonStandard, "output %d: non-standard script form", i)
		case txscript.MultiSigTy:
			numPubKeys, _, err := txscript.CalcMultiSigStats(out.PkScript)
			if err != nil {
				return reject(ErrNonStandard, "output %d: malformed multisig: %v", i, err)
			}
			if numPubKeys > maxStandardMultiSigKeys {
				return reject(ErrNonStandard, "output %d: multisig with %d keys exceeds %d", i, numPubKeys, maxStandardMultiSigKeys)
			}
		case txscript.NullDataTy:
			if n := len(out.PkScript); n > maxNullDataScriptSize {
				return reject(ErrNonStandard, "output %d: null data script size %d exceeds %d", i, n, maxNullDataScriptSize)
			}
			nullData++
		}
	}
	if nullData > maxNullDataOutputs {
		return reject(ErrNonStandard, "%d null data outputs, at most %d allowed", nullData, maxNullDataOutputs)
	}

	return nil
}

// CheckInputsStandard rejects spends of non-standard outputs and P2SH redeem scripts
// with too many signature operations. Inputs whose spent output is unknown are skipped.
func (p *Policy) CheckInputsStandard(tx *wire.MsgTx, prevOuts txscript.PrevOutputFetcher) error {
	if p.AcceptNonStandard() || prevOuts == nil {
		return nil
	}

	for i, in := range tx.TxIn {
		prev := prevOuts.FetchPrevOutput(in.PreviousOutPoint)
		if prev == nil {
			continue
		}
		switch txscript.GetScriptClass(prev.PkScript) {
		case txscript.ScriptHashTy:
			numSigOps := txscript.GetPreciseSigOpCount(in.SignatureScript, prev.PkScript, true)
			if numSigOps > maxStandardP2SHSigOps {
				return reject(ErrNonStandard, "input %d: %d signature operations exceed %d", i, numSigOps, maxStandardP2SHSigOps)
			}
		case txscript.NonStandardTy:
			return reject(ErrNonStandard, "input %d: spends non-standard script form", i)
		}
	}
	return nil
}

// SigOpCost returns the weighted signature operation cost. Legacy sigops are always counted;
// P2SH and witness sigops are added for inputs whose spent output prevOuts can resolve.
func SigOpCost(tx *wire.MsgTx, prevOuts txscript.PrevOutputFetcher) int {
	cost := blockchain.CountSigOps(btcutil.NewTx(tx)) * blockchain.WitnessScaleFactor
	if prevOuts == nil {
		return cost
	}
	for _, in := range tx.TxIn {
		prev := prevOuts.FetchPrevOutput(in.PreviousOutPoint)
		if prev == nil {
			continue
		}
		if txscript.IsPayToScriptHash(prev.PkScript) {
			cost += txscript.GetPreciseSigOpCount(in.SignatureScript, prev.PkScript, true) * blockchain.WitnessScaleFactor
		}
		cost += txscript.GetWitnessSigOpCount(in.SignatureScript, prev.PkScript, in.Witness)
	}
	return cost
}

// CheckSigOps rejects transactions whose sigop cost exceeds MaxStandardTxSigOpsCost.
func (p *Policy) CheckSigOps(tx *wire.MsgTx, prevOuts txscript.PrevOutputFetcher) error {
	if cost := SigOpCost(tx, prevOuts); cost > MaxStandardTxSigOpsCost {
		return reject(ErrTooManySigops, "sigop cost %d exceeds %d", cost, MaxStandardTxSigOpsCost)
	}
	return nil
}

// CheckAncestry enforces the in-mempool package limits for a transaction with the given
// number of unconfirmed ancestors and descendants and the total ancestor virtual size.
func (p *Policy) CheckAncestry(ancestors, descendants uint32, ancestorSize uint64) error {
	if limit := p.MaxAncestors(); ancestors > limit {
		return reject(ErrTooManyAncestors, "%d ancestors exceed %d", ancestors, limit)
	}
	if limit := p.MaxAncestorSize(); ancestorSize > limit {
		return reject(ErrTooManyAncestors, "ancestor size %d exceeds %d", ancestorSize, limit)
	}
	if limit := p.MaxDescendants(); descendants > limit {
		return reject(ErrTooManyDescendants, "%d descendants exceed %d", descendants, limit)
	}
	return nil
}

// SignalsReplacement reports whether tx opts in to BIP-125 replacement.
func SignalsReplacement(tx *wire.MsgTx) bool {
	for _, in := range tx.TxIn {
		if in.Sequence < wire.MaxTxInSequenceNum-1 {
			return true
		}
	}
	return false
}

// CheckReplacement decides whether a transaction may replace the mempool transactions it conflicts with.
func (p *Policy) CheckReplacement(conflicts []*wire.MsgTx) error {
	if len(conflicts) == 0 {
		return nil
	}
	if !p.AllowReplacement() {
		return reject(ErrRecentReplacement, "replacement disabled, %d conflicts", len(conflicts))
	}
	for _, c := range conflicts {
		if !SignalsReplacement(c) {
			return reject(ErrRecentReplacement, "conflicting transaction %s does not signal replaceability", c.TxHash())
		}
	}
	return nil
}
