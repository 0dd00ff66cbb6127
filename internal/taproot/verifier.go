package taproot

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"go.uber.org/zap"
)

// Verifier checks Taproot commitments. It holds no mutable state and is safe for concurrent use.
type Verifier struct {
	params *chaincfg.Params
	logger *zap.Logger
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithChainParams sets the network used to encode derived addresses. Defaults to mainnet.
func WithChainParams(params *chaincfg.Params) Option {
	return func(v *Verifier) {
		if params != nil {
			v.params = params
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(v *Verifier) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// NewVerifier constructs a Verifier.
func NewVerifier(opts ...Option) *Verifier {
	v := &Verifier{
		params: &chaincfg.MainNetParams,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// VerifyKeyPathSpend checks whether outputKey is internalKey tweaked with an empty script tree.
// A mismatch is not proof of anything, since the output may commit to a script tree the
// caller does not know, so it yields InsufficientData with a nil error.
func (v *Verifier) VerifyKeyPathSpend(outputKey, internalKey *btcec.PublicKey) (Verdict, error) {
	if outputKey == nil || internalKey == nil {
		return InsufficientData, fmt.Errorf("%w: nil key", ErrMalformedInput)
	}

	expected, _, err := OutputKey(internalKey, nil)
	if err != nil {
		return InsufficientData, fmt.Errorf("derive key-path output key: %w", err)
	}
	if !sameXOnly(expected, outputKey) {
		return InsufficientData, nil
	}
	return Verified, nil
}

// VerifyScriptPathSpend recomputes the output key committed to by script and the control block.
// A key or parity mismatch is a contradiction and is returned as ErrOutputKeyMismatch.
func (v *Verifier) VerifyScriptPathSpend(
	outputKey *btcec.PublicKey,
	script []byte,
	cb *txscript.ControlBlock,
	leafVersion txscript.TapscriptLeafVersion,
) (Verdict, error) {
	if outputKey == nil {
		return InsufficientData, fmt.Errorf("%w: nil output key", ErrMalformedInput)
	}
	if cb == nil || cb.InternalKey == nil {
		return InsufficientData, fmt.Errorf("%w: control block without internal key", ErrMalformedInput)
	}
	if len(script) > MaxScriptSize {
		return InsufficientData, fmt.Errorf("%w: leaf script size %d exceeds %d", ErrMalformedInput, len(script), MaxScriptSize)
	}
	if cb.LeafVersion != leafVersion {
		return InsufficientData, fmt.Errorf("%w: control block leaf version %#x, expected %#x",
			ErrMalformedInput, byte(cb.LeafVersion), byte(leafVersion))
	}

	leafHash := txscript.NewTapLeaf(leafVersion, script).TapHash()
	root, err := ComputeMerkleRoot(leafHash, cb)
	if err != nil {
		return InsufficientData, err
	}
	if root == nil {
		root = &leafHash
	}

	expected, odd, err := OutputKey(cb.InternalKey, root[:])
	if err != nil {
		return InsufficientData, fmt.Errorf("derive script-path output key: %w", err)
	}
	if !sameXOnly(expected, outputKey) {
		return Contradicted, fmt.Errorf("%w: commitment yields %x, spent output has %x",
			ErrOutputKeyMismatch, XOnly(expected), XOnly(outputKey))
	}
	if odd != cb.OutputKeyYIsOdd {
		return Contradicted, fmt.Errorf("%w: control block parity bit %t, derived key odd %t",
			ErrOutputKeyMismatch, cb.OutputKeyYIsOdd, odd)
	}
	return Verified, nil
}

// VerifyAddressDerivation rebuilds the Taproot address for internalKey and scripts and
// compares it with expected. With no scripts the address commits to the key path only.
func (v *Verifier) VerifyAddressDerivation(internalKey *btcec.PublicKey, scripts [][]byte, expected string) (bool, error) {
	var (
		outputKey *btcec.PublicKey
		err       error
	)
	if len(scripts) == 0 {
		outputKey, _, err = OutputKey(internalKey, nil)
	} else {
		var tree *ScriptTree
		tree, err = BuildScriptTree(internalKey, scripts)
		if tree != nil {
			outputKey = tree.OutputKey
		}
	}
	if err != nil {
		return false, fmt.Errorf("derive output key: %w", err)
	}

	addr, err := AddressForKey(outputKey, v.params)
	if err != nil {
		return false, err
	}
	return addr.EncodeAddress() == expected, nil
}
