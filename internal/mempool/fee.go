package mempool

import (
	"fmt"

	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

// CalculateMinFee returns the minimum fee in satoshis for tx at the configured relay fee rate, rounded up.
func (p *Policy) CalculateMinFee(tx *wire.MsgTx) uint64 {
	return p.MinFeeForSize(VirtualSize(tx))
}

// MinFeeForSize returns ceil(minRelayFee * vsize / 1000).
func (p *Policy) MinFeeForSize(vsize uint64) uint64 {
	return (p.MinRelayFee()*vsize + 999) / 1000
}

// Fee returns the input value minus the output value of tx. Every spent output must resolve
// and every value and running total must stay within btcutil.MaxSatoshi.
func Fee(tx *wire.MsgTx, prevOuts txscript.PrevOutputFetcher) (uint64, error) {
	if prevOuts == nil {
		return 0, General("no spent output data")
	}

	var in int64
	for i, txIn := range tx.TxIn {
		prev := prevOuts.FetchPrevOutput(txIn.PreviousOutPoint)
		if prev == nil {
			return 0, General(fmt.Sprintf("input %d spends unknown output %s", i, txIn.PreviousOutPoint))
		}
		if prev.Value < 0 || prev.Value > maxSatoshi {
			return 0, General(fmt.Sprintf("input %d spends value %d out of range", i, prev.Value))
		}
		in += prev.Value
		if in > maxSatoshi {
			return 0, General(fmt.Sprintf("total input value exceeds %d at input %d", maxSatoshi, i))
		}
	}
	if err := CheckOutputValues(tx); err != nil {
		return 0, err
	}
	var out int64
	for _, txOut := range tx.TxOut {
		out += txOut.Value
	}
	if in < out {
		return 0, General(fmt.Sprintf("input value %d below output value %d", in, out))
	}
	return uint64(in - out), nil
}

// CheckFee rejects transactions paying less than CalculateMinFee.
func (p *Policy) CheckFee(tx *wire.MsgTx, prevOuts txscript.PrevOutputFetcher) error {
	fee, err := Fee(tx, prevOuts)
	if err != nil {
		return err
	}
	vsize := VirtualSize(tx)
	if minFee := p.MinFeeForSize(vsize); fee < minFee {
		return reject(ErrFeeTooLow, "fee %d below minimum %d for %d vbytes", fee, minFee, vsize)
	}
	return nil
}
