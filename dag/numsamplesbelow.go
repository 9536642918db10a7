// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package dag

import "github.com/sfkit/gfkit"

// NumSamplesBelow computes, for every node of a DAG forest, the count of
// samples below it in each of up to gfkit.MaxSampleSets independent sample
// sets, in a single streaming post-order pass over the edge list.
type NumSamplesBelow struct {
	counts [][gfkit.MaxSampleSets]uint32
	n      int
}

// Compute builds NumSamplesBelow for sets (1..4 of them) over forest.
// Sets must all share the same domain as forest.NumSamples(); asserting
// that is the caller's responsibility per spec.md's ownership note that
// two SampleSets over different domains must never be combined.
func Compute(forest *Forest, sets ...*gfkit.SampleSet) *NumSamplesBelow {
	n := len(sets)
	if n < 1 || n > gfkit.MaxSampleSets {
		panic("dag: NumSamplesBelow supports 1..4 sample sets")
	}

	counts := make([][gfkit.MaxSampleSets]uint32, forest.NumNodes())
	for k, set := range sets {
		for _, s := range set.All() {
			counts[s][k] = 1
		}
	}

	for _, e := range forest.Graph.Edges() {
		to := counts[e.To]
		from := &counts[e.From]
		for k := 0; k < n; k++ {
			from[k] += to[k]
		}
	}

	return &NumSamplesBelow{counts: counts, n: n}
}

// At returns the per-set counts for node.
func (nb *NumSamplesBelow) At(node gfkit.NodeId) [gfkit.MaxSampleSets]uint32 {
	return nb.counts[node]
}

// Accessor returns a lightweight view over one sample-set lane, suitable
// for feeding freq.Cursor.
func (nb *NumSamplesBelow) Accessor(lane int) Accessor {
	if lane < 0 || lane >= nb.n {
		panic("dag: sample-set lane out of range")
	}
	return Accessor{nb: nb, lane: lane}
}

// Accessor is a read-only view of one lane of a shared NumSamplesBelow.
type Accessor struct {
	nb   *NumSamplesBelow
	lane int
}

// At returns the sample count below node in this accessor's lane.
func (a Accessor) At(node gfkit.NodeId) uint32 {
	return a.nb.counts[node][a.lane]
}
