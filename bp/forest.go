// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package bp implements the balanced-parenthesis compressed forest
// encoding: a bp string with is_leaf/is_ref bit-vectors, packed leaves and
// references vectors, and the rank-driven node-id resolver.
package bp

import (
	"github.com/sfkit/gfkit"
	"github.com/sfkit/gfkit/internal/bitset"
)

// Forest is the BP-encoded compressed forest, per spec.md 3/4.6.
type Forest struct {
	bp         bitset.BitSet
	isLeaf     bitset.BitSet
	isRef      bitset.BitSet
	length     int
	leaves     []gfkit.NodeId
	references []gfkit.NodeId
	numNodes   gfkit.NodeId
	numSamples gfkit.SampleId
	numTrees   gfkit.TreeId
}

// NewForest reconstructs a Forest directly from its five serialized
// structures. Compress builds a Forest from its own builder; this
// constructor is package serialize's entry point for loading one back from
// disk.
func NewForest(bp, isLeaf, isRef bitset.BitSet, length int, leaves, references []gfkit.NodeId, numNodes gfkit.NodeId, numSamples gfkit.SampleId, numTrees gfkit.TreeId) *Forest {
	return &Forest{
		bp:         bp,
		isLeaf:     isLeaf,
		isRef:      isRef,
		length:     length,
		leaves:     leaves,
		references: references,
		numNodes:   numNodes,
		numSamples: numSamples,
		numTrees:   numTrees,
	}
}

// NumNodes returns the total distinct node count (samples + inner nodes).
func (f *Forest) NumNodes() gfkit.NodeId { return f.numNodes }

// NumSamples returns the number of samples.
func (f *Forest) NumSamples() gfkit.SampleId { return f.numSamples }

// NumTrees returns the number of top-level paren pairs, i.e. trees.
func (f *Forest) NumTrees() gfkit.TreeId { return f.numTrees }

// NumUniqueSubtrees mirrors dag.Forest's definition: every node id minted
// during compression (leaf, inner, or root) corresponds to a distinct
// subtree fingerprint; back-references reuse an id rather than minting one.
func (f *Forest) NumUniqueSubtrees() gfkit.NodeId { return f.numNodes }

// AllSamples returns the SampleSet containing every sample.
func (f *Forest) AllSamples() *gfkit.SampleSet {
	s := gfkit.NewSampleSet(uint(f.numSamples))
	for i := gfkit.SampleId(0); i < f.numSamples; i++ {
		s.Add(i)
	}
	return s
}

// IsSample reports whether node is one of the dataset's samples.
func (f *Forest) IsSample(node gfkit.NodeId) bool {
	return node < gfkit.NodeId(f.numSamples)
}

// Len returns the length L of the bp axis.
func (f *Forest) Len() int { return f.length }

// BitVectors returns the three raw bit vectors (bp, is_leaf, is_ref)
// backing this Forest, for package serialize to frame directly rather than
// re-deriving them bit by bit through BPAt/IsLeafAt/IsRefAt.
func (f *Forest) BitVectors() (bp, isLeaf, isRef bitset.BitSet) {
	return f.bp, f.isLeaf, f.isRef
}

// BPAt reports whether position i opens (true) or closes (false) a pair.
func (f *Forest) BPAt(i int) bool { return f.bp.Test(uint(i)) }

// IsLeafAt reports whether is_leaf is set at position i.
func (f *Forest) IsLeafAt(i int) bool { return f.isLeaf.Test(uint(i)) }

// IsRefAt reports whether is_ref is set at position i.
func (f *Forest) IsRefAt(i int) bool { return f.isRef.Test(uint(i)) }

// Leaves returns the packed leaves vector (sample id per leaf, by bp
// position order).
func (f *Forest) Leaves() []gfkit.NodeId { return f.leaves }

// References returns the packed references vector (sf-node id per
// back-reference, by bp position order).
func (f *Forest) References() []gfkit.NodeId { return f.references }

// NodeId resolves the bp position i to its sf-node id, per spec.md 4.6.
//
//   - At a leaf closing position: leaves[rank1(is_leaf,i)/2].
//   - At a reference position (either paren of the two-char token):
//     references[rank1(is_ref,i)/2].
//   - Otherwise (an inner-node closing position): rank0(bp,i) minus the
//     number of leaf- and reference-closings seen so far, offset past the
//     sample-id range.
//
// is_leaf and is_ref are each set on both positions of their token (not
// just the closing one), so that NodeId gives the same answer regardless of
// which of the two paren positions it is called on. Rank is inclusive of i
// (BitSet.Rank counts bits up to and including the index), one less than
// the exclusive convention the resolver's arithmetic is phrased in, so a
// query at a set bit subtracts 1 before halving to land on the 0-indexed
// leaf/reference ordinal.
func (f *Forest) NodeId(i int) gfkit.NodeId {
	if f.isLeaf.Test(uint(i)) {
		nth := (f.isLeaf.Rank(uint(i)) - 1) / 2
		return f.leaves[nth]
	}
	if f.isRef.Test(uint(i)) {
		nth := (f.isRef.Rank(uint(i)) - 1) / 2
		return f.references[nth]
	}
	// i is an inner node's closing position: bp[i]=0, is_leaf[i]=0,
	// is_ref[i]=0, so inclusive and exclusive rank coincide for the two
	// prefix-count terms below.
	rankInBP := f.bp.Rank0(uint(i)) - 1
	leafPrefix := f.isLeaf.Rank(uint(i)) / 2
	refPrefix := f.isRef.Rank(uint(i)) / 2
	inner := rankInBP - leafPrefix - refPrefix
	return gfkit.NodeId(f.numSamples) + gfkit.NodeId(inner)
}
