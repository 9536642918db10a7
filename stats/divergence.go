// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package stats

import (
	"github.com/sfkit/gfkit"
	"github.com/sfkit/gfkit/freq"
	"github.com/sfkit/gfkit/sequence"
)

// Divergence between sample sets A and B of the same sequence store, per
// spec 4.9: Sum_sites (n_a^A*n_d^B + n_d^A*n_a^B) / (n_A*n_B).
func Divergence(store *sequence.Store, a, b setArg) float64 {
	pair := freq.NewPair(freq.NewCursor(store, a.acc, a.num), freq.NewCursor(store, b.acc, b.num))
	return divergence(a.num, b.num, pair)
}

func divergence(numA, numB gfkit.SampleId, pair *freq.Pair) float64 {
	nA, nB := float64(numA), float64(numB)
	total := 0.0

	for ; !pair.A.Done(); pair.Next() {
		stA, stB := pair.A.State(), pair.B.State()

		if stA.Kind == freq.Biallelic && stB.Kind == freq.Biallelic {
			nAncA, nAncB := float64(stA.NumAncestral), float64(stB.NumAncestral)
			nDerA, nDerB := nA-nAncA, nB-nAncB
			total += nAncA*nDerB + nDerA*nAncB
		} else {
			pair.A.ForceMultiallelic()
			pair.B.ForceMultiallelic()
			fA, fB := pair.A.State(), pair.B.State()
			for state, nStateA := range fA.Counts {
				nNotStateB := nB - float64(fB.Counts[state])
				total += float64(nStateA) * nNotStateB
			}
		}
	}

	return total / (nA * nB)
}
