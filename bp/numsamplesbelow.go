// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package bp

import "github.com/sfkit/gfkit"

// NumSamplesBelow computes, for every node of a BP forest, the count of
// samples below it in each of up to gfkit.MaxSampleSets independent sample
// sets, in a single left-to-right pass over bp, per spec.md 4.7's BP
// variant: a stack of completed-child lane vectors plus a parallel stack of
// per-level child counts.
type NumSamplesBelow struct {
	counts map[gfkit.NodeId][gfkit.MaxSampleSets]uint32
	n      int
}

// Compute builds NumSamplesBelow for 1..4 sets over forest.
func Compute(forest *Forest, sets ...*gfkit.SampleSet) *NumSamplesBelow {
	n := len(sets)
	if n < 1 || n > gfkit.MaxSampleSets {
		panic("bp: NumSamplesBelow supports 1..4 sample sets")
	}

	lanes := make([][gfkit.MaxSampleSets]uint32, forest.NumSamples())
	for k, set := range sets {
		for _, s := range set.All() {
			lanes[s][k] = 1
		}
	}

	counts := make(map[gfkit.NodeId][gfkit.MaxSampleSets]uint32, forest.NumNodes())

	var partial [][gfkit.MaxSampleSets]uint32
	var childCount []int

	complete := func(v [gfkit.MaxSampleSets]uint32) {
		if len(childCount) == 0 {
			// top-level: this is one tree's root result, nothing consumes it.
			return
		}
		partial = append(partial, v)
		childCount[len(childCount)-1]++
	}

	i := 0
	for i < forest.Len() {
		switch {
		case forest.IsRefAt(i) && forest.BPAt(i):
			// reference open: the paired close at i+1 is a no-op.
			nodeId := forest.NodeId(i)
			v := counts[nodeId]
			complete(v)
			i += 2

		case forest.BPAt(i) && !forest.IsRefAt(i):
			childCount = append(childCount, 0)
			i++

		case !forest.BPAt(i) && !forest.IsRefAt(i):
			// subtree close: leaf if the preceding symbol opened and
			// immediately closed (no children were ever pushed for it).
			nc := childCount[len(childCount)-1]
			childCount = childCount[:len(childCount)-1]

			var v [gfkit.MaxSampleSets]uint32
			if i > 0 && forest.BPAt(i-1) {
				sample := forest.NodeId(i)
				v = lanes[sample]
			} else {
				start := len(partial) - nc
				for _, child := range partial[start:] {
					for k := 0; k < n; k++ {
						v[k] += child[k]
					}
				}
				partial = partial[:start]
			}
			nodeId := forest.NodeId(i)
			counts[nodeId] = v
			complete(v)
			i++

		default:
			i++
		}
	}

	return &NumSamplesBelow{counts: counts, n: n}
}

// At returns the per-set counts for node.
func (nb *NumSamplesBelow) At(node gfkit.NodeId) [gfkit.MaxSampleSets]uint32 {
	return nb.counts[node]
}

// Accessor returns a lightweight view over one sample-set lane.
func (nb *NumSamplesBelow) Accessor(lane int) Accessor {
	if lane < 0 || lane >= nb.n {
		panic("bp: sample-set lane out of range")
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
