// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package stats

import (
	"github.com/sfkit/gfkit"
	"github.com/sfkit/gfkit/sequence"
)

// Fst returns the fixation index between sample sets A and B over a genome
// of length seqLen, per spec 4.9:
// 1 - 2*(pi_X + pi_Y) / (pi_X + 2*divergence(X,Y) + pi_Y), each diversity
// and divergence term first divided by seqLen.
func Fst(store *sequence.Store, seqLen gfkit.SiteId, a, b setArg) float64 {
	l := float64(seqLen)

	dX := Diversity(store, a.acc, a.num) / l
	dY := Diversity(store, b.acc, b.num) / l
	dXY := Divergence(store, a, b) / l

	return 1.0 - 2.0*(dX+dY)/(dX+2.0*dXY+dY)
}
