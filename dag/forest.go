// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package dag implements the DAG compressed forest encoding: an
// EdgeListGraph in post-order whose roots are one per input tree and whose
// leaves are exactly the samples 0..NumSamples-1.
package dag

import (
	"github.com/sfkit/gfkit"
	"github.com/sfkit/gfkit/graph"
)

// Forest is a DAG-encoded compressed forest: a postordered EdgeListGraph
// plus the sample count, implementing gfkit's Forest capability set.
type Forest struct {
	Graph      *graph.EdgeListGraph
	numSamples gfkit.SampleId
}

// New wraps g as a DAG compressed forest.
func New(g *graph.EdgeListGraph, numSamples gfkit.SampleId) *Forest {
	return &Forest{Graph: g, numSamples: numSamples}
}

// NumNodes returns the total node count.
func (f *Forest) NumNodes() gfkit.NodeId { return f.Graph.NumNodes() }

// NumSamples returns the number of samples (leaves 0..NumSamples-1).
func (f *Forest) NumSamples() gfkit.SampleId { return f.numSamples }

// NumTrees returns the number of trees (roots).
func (f *Forest) NumTrees() gfkit.TreeId { return f.Graph.NumTrees() }

// NumUniqueSubtrees returns the number of distinct nodes in the DAG,
// spec.md's num_unique_subtrees: every DAG node is, by construction, a
// distinct subtree fingerprint (or a root, which is always freshly minted).
func (f *Forest) NumUniqueSubtrees() gfkit.NodeId { return f.Graph.NumNodes() }

// AllSamples returns the SampleSet containing every sample.
func (f *Forest) AllSamples() *gfkit.SampleSet {
	s := gfkit.NewSampleSet(uint(f.numSamples))
	for i := gfkit.SampleId(0); i < f.numSamples; i++ {
		s.Add(i)
	}
	return s
}

// IsSample reports whether node is one of the dataset's samples. Samples
// are always assigned ids 0..NumSamples-1 by the compressor.
func (f *Forest) IsSample(node gfkit.NodeId) bool {
	return node < gfkit.NodeId(f.numSamples)
}

// Roots returns the per-tree root node ids.
func (f *Forest) Roots() []gfkit.NodeId { return f.Graph.Roots() }
