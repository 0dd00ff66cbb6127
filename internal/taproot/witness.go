package taproot

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"go.uber.org/zap"
)

const annexTag = 0x50

// SpendPath identifies how a Taproot output is being spent.
type SpendPath int

const (
	KeyPath SpendPath = iota
	ScriptPath
)

func (p SpendPath) String() string {
	if p == ScriptPath {
		return "script_path"
	}
	return "key_path"
}

// Spend is a decoded Taproot witness.
type Spend struct {
	Path         SpendPath
	Annex        []byte
	Signature    []byte
	Script       []byte
	ControlBlock *txscript.ControlBlock
	// Stack holds the script inputs below the leaf script.
	Stack [][]byte
}

// ParseWitness splits a Taproot witness into its annex, key-path signature or
// script-path leaf script and control block.
func ParseWitness(witness wire.TxWitness) (*Spend, error) {
	if len(witness) == 0 {
		return nil, fmt.Errorf("%w: empty witness", ErrMalformedInput)
	}

	spend := &Spend{}
	items := witness
	if last := items[len(items)-1]; len(items) >= 2 && len(last) > 0 && last[0] == annexTag {
		spend.Annex = last
		items = items[:len(items)-1]
	}

	if len(items) == 1 {
		spend.Path = KeyPath
		spend.Signature = items[0]
		return spend, nil
	}

	cb, err := txscript.ParseControlBlock(items[len(items)-1])
	if err != nil {
		return nil, fmt.Errorf("%w: parse control block: %v", ErrMalformedInput, err)
	}
	spend.Path = ScriptPath
	spend.ControlBlock = cb
	spend.Script = items[len(items)-2]
	spend.Stack = items[:len(items)-2]
	return spend, nil
}

func validSigHashType(t txscript.SigHashType) bool {
	switch t {
	case txscript.SigHashDefault, txscript.SigHashAll, txscript.SigHashNone, txscript.SigHashSingle,
		txscript.SigHashAll | txscript.SigHashAnyOneCanPay,
		txscript.SigHashNone | txscript.SigHashAnyOneCanPay,
		txscript.SigHashSingle | txscript.SigHashAnyOneCanPay:
		return true
	default:
		return false
	}
}

// VerifyKeyPathSignature checks a BIP-340 key-path signature for input idx against outputKey.
func VerifyKeyPathSignature(
	outputKey *btcec.PublicKey,
	sig []byte,
	tx *wire.MsgTx,
	idx int,
	prevOuts txscript.PrevOutputFetcher,
	sigHashes *txscript.TxSigHashes,
) error {
	hashType := txscript.SigHashDefault
	switch len(sig) {
	case schnorr.SignatureSize:
	case schnorr.SignatureSize + 1:
		hashType = txscript.SigHashType(sig[schnorr.SignatureSize])
		if hashType == txscript.SigHashDefault {
			return fmt.Errorf("%w: explicit default sighash byte", ErrInvalidSignature)
		}
		sig = sig[:schnorr.SignatureSize]
	default:
		return fmt.Errorf("%w: signature length %d", ErrInvalidSignature, len(sig))
	}
	if !validSigHashType(hashType) {
		return fmt.Errorf("%w: sighash type %#x", ErrInvalidSignature, byte(hashType))
	}

	if sigHashes == nil {
		for _, in := range tx.TxIn {
			if prevOuts.FetchPrevOutput(in.PreviousOutPoint) == nil {
				return fmt.Errorf("%w: unknown spent output %s", ErrMalformedInput, in.PreviousOutPoint)
			}
		}
		sigHashes = txscript.NewTxSigHashes(tx, prevOuts)
	}
	digest, err := txscript.CalcTaprootSignatureHash(sigHashes, hashType, tx, idx, prevOuts)
	if err != nil {
		return fmt.Errorf("%w: compute sighash: %v", ErrInvalidSignature, err)
	}

	parsed, err := schnorr.ParseSignature(sig)
	if err != nil {
		return fmt.Errorf("%w: parse signature: %v", ErrInvalidSignature, err)
	}
	if !parsed.Verify(digest, outputKey) {
		return fmt.Errorf("%w: signature does not verify", ErrInvalidSignature)
	}
	return nil
}

// InputResult is the verdict for one Taproot input.
type InputResult struct {
	Index   int
	Path    SpendPath
	Verdict Verdict
}

// VerifyInput checks the witness of input idx against the Taproot output it spends.
// Key-path spends are checked by signature; script-path spends by their merkle commitment.
// Leaf scripts are not executed.
func (v *Verifier) VerifyInput(
	tx *wire.MsgTx,
	idx int,
	prevOuts txscript.PrevOutputFetcher,
	sigHashes *txscript.TxSigHashes,
) (InputResult, error) {
	result := InputResult{Index: idx, Verdict: InsufficientData}
	if tx == nil || idx < 0 || idx >= len(tx.TxIn) {
		return result, fmt.Errorf("%w: input index %d out of range", ErrMalformedInput, idx)
	}
	if prevOuts == nil {
		return result, fmt.Errorf("%w: no spent output data", ErrMalformedInput)
	}

	in := tx.TxIn[idx]
	prev := prevOuts.FetchPrevOutput(in.PreviousOutPoint)
	if prev == nil {
		return result, fmt.Errorf("%w: unknown spent output %s", ErrMalformedInput, in.PreviousOutPoint)
	}
	if !txscript.IsPayToTaproot(prev.PkScript) {
		return result, fmt.Errorf("%w: %s", ErrNotTaproot, in.PreviousOutPoint)
	}
	outputKey, err := schnorr.ParsePubKey(prev.PkScript[2:])
	if err != nil {
		return result, fmt.Errorf("%w: parse output key: %v", ErrMalformedInput, err)
	}

	spend, err := ParseWitness(in.Witness)
	if err != nil {
		return result, fmt.Errorf("input %d: %w", idx, err)
	}
	result.Path = spend.Path

	switch spend.Path {
	case KeyPath:
		if err := VerifyKeyPathSignature(outputKey, spend.Signature, tx, idx, prevOuts, sigHashes); err != nil {
			if !errors.Is(err, ErrMalformedInput) {
				result.Verdict = Contradicted
			}
			return result, fmt.Errorf("input %d: %w", idx, err)
		}
		result.Verdict = Verified
	default:
		verdict, err := v.VerifyScriptPathSpend(outputKey, spend.Script, spend.ControlBlock, spend.ControlBlock.LeafVersion)
		result.Verdict = verdict
		if err != nil {
			return result, fmt.Errorf("input %d: %w", idx, err)
		}
	}

	v.logger.Debug("taproot input verified",
		zap.Stringer("txid", tx.TxHash()),
		zap.Int("input", idx),
		zap.Stringer("path", spend.Path),
	)
	return result, nil
}
