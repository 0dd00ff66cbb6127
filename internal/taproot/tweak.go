package taproot

import (
	"bytes"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
)

const (
	// MaxScriptSize bounds leaf scripts accepted for commitment checks.
	MaxScriptSize = txscript.MaxScriptSize
	// MaxMerkleDepth is the deepest inclusion proof a control block may carry.
	MaxMerkleDepth = 128
)

// XOnly returns the 32-byte BIP-340 encoding of key.
func XOnly(key *btcec.PublicKey) []byte {
	return schnorr.SerializePubKey(key)
}

// EvenKey lifts key to the point with the same x coordinate and even y.
func EvenKey(key *btcec.PublicKey) (*btcec.PublicKey, error) {
	even, err := schnorr.ParsePubKey(schnorr.SerializePubKey(key))
	if err != nil {
		return nil, fmt.Errorf("%w: lift x-only key: %v", ErrMalformedInput, err)
	}
	return even, nil
}

// TapTweakHash returns the TapTweak tagged hash of the x-only internal key and merkle root.
// An empty merkle root commits to a key-path only output.
func TapTweakHash(internalKey *btcec.PublicKey, merkleRoot []byte) *chainhash.Hash {
	return chainhash.TaggedHash(chainhash.TagTapTweak, XOnly(internalKey), merkleRoot)
}

// ComputeTaprootOutputKey adds tweak*G to the even-y lift of internalKey and returns the
// resulting key with a flag that is set when its y coordinate is odd.
func ComputeTaprootOutputKey(internalKey *btcec.PublicKey, tweak []byte) (*btcec.PublicKey, bool, error) {
	if internalKey == nil {
		return nil, false, fmt.Errorf("%w: nil internal key", ErrMalformedInput)
	}
	if len(tweak) != chainhash.HashSize {
		return nil, false, fmt.Errorf("%w: tweak length %d", ErrMalformedInput, len(tweak))
	}

	var scalar btcec.ModNScalar
	if overflow := scalar.SetByteSlice(tweak); overflow {
		return nil, false, fmt.Errorf("%w: tweak exceeds curve order", ErrMalformedInput)
	}

	base, err := EvenKey(internalKey)
	if err != nil {
		return nil, false, err
	}

	var p, tG, q btcec.JacobianPoint
	base.AsJacobian(&p)
	btcec.ScalarBaseMultNonConst(&scalar, &tG)
	btcec.AddNonConst(&p, &tG, &q)
	if q.Z.Normalize().IsZero() {
		return nil, false, fmt.Errorf("%w: tweaked key is the point at infinity", ErrMalformedInput)
	}
	q.ToAffine()

	return btcec.NewPublicKey(&q.X, &q.Y), q.Y.IsOdd(), nil
}

// OutputKey derives the Taproot output key committing to internalKey and merkleRoot.
func OutputKey(internalKey *btcec.PublicKey, merkleRoot []byte) (*btcec.PublicKey, bool, error) {
	if internalKey == nil {
		return nil, false, fmt.Errorf("%w: nil internal key", ErrMalformedInput)
	}
	return ComputeTaprootOutputKey(internalKey, TapTweakHash(internalKey, merkleRoot)[:])
}

// ComputeMerkleRoot folds the control block inclusion proof over leafHash. Each step orders
// the running hash and the proof node byte-wise, smaller first, and hashes them as a TapBranch.
// A control block without proof nodes yields nil: the leaf hash itself is the root.
func ComputeMerkleRoot(leafHash chainhash.Hash, cb *txscript.ControlBlock) (*chainhash.Hash, error) {
	if cb == nil {
		return nil, fmt.Errorf("%w: nil control block", ErrMalformedInput)
	}
	proof := cb.InclusionProof
	if len(proof)%chainhash.HashSize != 0 {
		return nil, fmt.Errorf("%w: inclusion proof length %d is not a multiple of %d",
			ErrMalformedInput, len(proof), chainhash.HashSize)
	}
	if depth := len(proof) / chainhash.HashSize; depth > MaxMerkleDepth {
		return nil, fmt.Errorf("%w: inclusion proof depth %d exceeds %d", ErrMalformedInput, depth, MaxMerkleDepth)
	}
	if len(proof) == 0 {
		return nil, nil
	}

	acc := leafHash
	for off := 0; off < len(proof); off += chainhash.HashSize {
		node := proof[off : off+chainhash.HashSize]
		if bytes.Compare(acc[:], node) < 0 {
			acc = *chainhash.TaggedHash(chainhash.TagTapBranch, acc[:], node)
		} else {
			acc = *chainhash.TaggedHash(chainhash.TagTapBranch, node, acc[:])
		}
	}
	return &acc, nil
}

func sameXOnly(a, b *btcec.PublicKey) bool {
	return bytes.Equal(XOnly(a), XOnly(b))
}
