package taproot

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
)

// ScriptTree is a Taproot output committing to a set of base-version leaf scripts.
type ScriptTree struct {
	InternalKey     *btcec.PublicKey
	OutputKey       *btcec.PublicKey
	OutputKeyYIsOdd bool
	MerkleRoot      chainhash.Hash
	Leaves          []txscript.TapLeaf
	// ControlBlocks[i] proves Leaves[i].
	ControlBlocks []txscript.ControlBlock
}

// BuildScriptTree assembles a balanced script tree over scripts and derives its output key.
func BuildScriptTree(internalKey *btcec.PublicKey, scripts [][]byte) (*ScriptTree, error) {
	if internalKey == nil {
		return nil, fmt.Errorf("%w: nil internal key", ErrMalformedInput)
	}
	if len(scripts) == 0 {
		return nil, errors.New("script tree needs at least one leaf")
	}

	leaves := make([]txscript.TapLeaf, 0, len(scripts))
	for i, script := range scripts {
		if len(script) > MaxScriptSize {
			return nil, fmt.Errorf("%w: leaf %d script size %d exceeds %d", ErrMalformedInput, i, len(script), MaxScriptSize)
		}
		leaves = append(leaves, txscript.NewBaseTapLeaf(script))
	}

	indexed := txscript.AssembleTaprootScriptTree(leaves...)
	root := indexed.RootNode.TapHash()

	internal, err := EvenKey(internalKey)
	if err != nil {
		return nil, err
	}
	outputKey, odd, err := OutputKey(internal, root[:])
	if err != nil {
		return nil, fmt.Errorf("derive output key: %w", err)
	}

	tree := &ScriptTree{
		InternalKey:     internal,
		OutputKey:       outputKey,
		OutputKeyYIsOdd: odd,
		MerkleRoot:      root,
		Leaves:          leaves,
		ControlBlocks:   make([]txscript.ControlBlock, len(leaves)),
	}
	for i, proof := range indexed.LeafMerkleProofs {
		tree.ControlBlocks[i] = txscript.ControlBlock{
			InternalKey:     internal,
			OutputKeyYIsOdd: odd,
			LeafVersion:     proof.TapLeaf.LeafVersion,
			InclusionProof:  proof.InclusionProof,
		}
	}
	return tree, nil
}

// Address returns the P2TR address of the tree output on params.
func (t *ScriptTree) Address(params *chaincfg.Params) (*btcutil.AddressTaproot, error) {
	return AddressForKey(t.OutputKey, params)
}

// ControlBlockBytes serializes the control block for leaf i.
func (t *ScriptTree) ControlBlockBytes(i int) ([]byte, error) {
	if i < 0 || i >= len(t.ControlBlocks) {
		return nil, fmt.Errorf("leaf index %d out of range [0,%d)", i, len(t.ControlBlocks))
	}
	raw, err := t.ControlBlocks[i].ToBytes()
	if err != nil {
		return nil, fmt.Errorf("serialize control block %d: %w", i, err)
	}
	return raw, nil
}

// AddressForKey encodes outputKey as a P2TR address on params.
func AddressForKey(outputKey *btcec.PublicKey, params *chaincfg.Params) (*btcutil.AddressTaproot, error) {
	if outputKey == nil {
		return nil, fmt.Errorf("%w: nil output key", ErrMalformedInput)
	}
	addr, err := btcutil.NewAddressTaproot(XOnly(outputKey), params)
	if err != nil {
		return nil, fmt.Errorf("encode taproot address: %w", err)
	}
	return addr, nil
}
