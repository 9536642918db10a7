// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package stats

import (
	"github.com/sfkit/gfkit"
	"github.com/sfkit/gfkit/freq"
	"github.com/sfkit/gfkit/sequence"
)

// AlleleFrequencySpectrum is the histogram of derived-allele counts across
// sites: bin 0 is always 0, since sites where no sample of the set carries
// a derived state are not counted; bin k for 1 <= k <= numSamples holds the number of sites where exactly k
// samples carry a derived state. Indices run 0..numSamples inclusive.
func AlleleFrequencySpectrum(store *sequence.Store, acc gfkit.SamplesBelowAccessor, numSamples gfkit.SampleId) []gfkit.SiteId {
	afs := make([]gfkit.SiteId, numSamples+1)

	for c := freq.NewCursor(store, acc, numSamples); !c.Done(); c.Next() {
		state := c.State()
		switch state.Kind {
		case freq.Biallelic:
			nDerived := numSamples - state.NumAncestral
			if nDerived != 0 {
				afs[nDerived]++
			}
		case freq.Multiallelic:
			for s, count := range state.Counts {
				if count != 0 && s != state.AncestralState {
					afs[count]++
				}
			}
		}
	}

	return afs
}
