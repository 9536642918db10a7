// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package stats

import (
	"github.com/sfkit/gfkit"
	"github.com/sfkit/gfkit/freq"
	"github.com/sfkit/gfkit/sequence"
)

// NumSegregatingSites counts sites with 1 <= n_ancestral <= numSamples-1 in
// the biallelic case, or at least 2 non-zero state counts (minus 1) in the
// multiallelic case, matching tskit's definition (spec 4.9).
func NumSegregatingSites(store *sequence.Store, acc gfkit.SamplesBelowAccessor, numSamples gfkit.SampleId) gfkit.SiteId {
	return numSegregatingSites(numSamples, freq.NewCursor(store, acc, numSamples))
}

func numSegregatingSites(numSamples gfkit.SampleId, c *freq.Cursor) gfkit.SiteId {
	var n gfkit.SiteId

	for ; !c.Done(); c.Next() {
		state := c.State()
		switch state.Kind {
		case freq.Biallelic:
			if state.NumAncestral > 0 && state.NumAncestral < numSamples {
				n++
			}
		case freq.Multiallelic:
			numStates := 0
			for _, count := range state.Counts {
				if count > 0 {
					numStates++
				}
			}
			if numStates > 0 {
				n += gfkit.SiteId(numStates - 1)
			}
		}
	}

	return n
}
