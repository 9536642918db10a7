// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package stats implements the closed-form population-genetics accumulators
// (C12) that fold a freq.Cursor/freq.Pair walk into a single summary value:
// diversity, divergence, segregating sites, Tajima's D, F_ST and Patterson's
// F2/F3/F4. Every accumulator constructs its own fresh freq.Cursor(s) from
// the store/accessor/sample-count it is given, so a caller needing several
// statistics over the same sample set (e.g. Tajima's D needs both Diversity
// and NumSegregatingSites) never has to reason about cursor reuse or
// exhaustion.
package stats

import (
	"github.com/sfkit/gfkit"
	"github.com/sfkit/gfkit/freq"
	"github.com/sfkit/gfkit/sequence"
)

// Diversity (pi) is the expected number of differences, summed over all
// sites, between two distinct samples drawn uniformly at random (without
// replacement) from a set of numSamples, per spec 4.9:
// Sum_sites 2*n_a*n_d / (n*(n-1)).
func Diversity(store *sequence.Store, acc gfkit.SamplesBelowAccessor, numSamples gfkit.SampleId) float64 {
	return diversity(numSamples, freq.NewCursor(store, acc, numSamples))
}

func diversity(numSamples gfkit.SampleId, c *freq.Cursor) float64 {
	n := float64(numSamples)
	pi := 0.0

	for ; !c.Done(); c.Next() {
		state := c.State()
		switch state.Kind {
		case freq.Biallelic:
			nAnc := float64(state.NumAncestral)
			nDer := n - nAnc
			pi += 2 * nAnc * nDer
		case freq.Multiallelic:
			for _, count := range state.Counts {
				nState := float64(count)
				pi += nState * (n - nState)
			}
		}
	}

	return pi / (n * (n - 1))
}
