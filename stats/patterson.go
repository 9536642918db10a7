// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package stats

import (
	"github.com/sfkit/gfkit"
	"github.com/sfkit/gfkit/freq"
	"github.com/sfkit/gfkit/sequence"
)

// setArg bundles one sample set's NumSamplesBelow accessor and size, the
// per-set argument the multi-set statistics (Divergence, Fst, F2/F3/F4)
// take alongside a single sequence store shared by every set being
// compared.
type setArg struct {
	acc gfkit.SamplesBelowAccessor
	num gfkit.SampleId
}

// Set builds a setArg for one sample set's accessor and sample count.
func Set(acc gfkit.SamplesBelowAccessor, num gfkit.SampleId) setArg {
	return setArg{acc: acc, num: num}
}

// forceAll upgrades every cursor still biallelic to multiallelic, once any one
// of them needs it (the same contract freq.Pair implements for two
// cursors, generalised to N).
func forceAll(cs []*freq.Cursor) {
	anyMulti := false
	for _, c := range cs {
		if c.Kind() == freq.Multiallelic {
			anyMulti = true
			break
		}
	}
	if !anyMulti {
		return
	}
	for _, c := range cs {
		c.ForceMultiallelic()
	}
}

func advanceAll(cs []*freq.Cursor) bool {
	ok := true
	for _, c := range cs {
		if !c.Next() {
			ok = false
		}
	}
	return ok
}

// F2 is Patterson's F2 statistic between sample sets 0 and 1, per spec 4.9.
func F2(store *sequence.Store, a, b setArg) float64 {
	cs := []*freq.Cursor{freq.NewCursor(store, a.acc, a.num), freq.NewCursor(store, b.acc, b.num)}
	nA, nB := float64(a.num), float64(b.num)
	total := 0.0

	for ; !cs[0].Done(); advanceAll(cs) {
		forceAll(cs)
		stA, stB := cs[0].State(), cs[1].State()

		if stA.Kind == freq.Biallelic && stB.Kind == freq.Biallelic {
			nAncA, nAncB := float64(stA.NumAncestral), float64(stB.NumAncestral)
			nDerA, nDerB := nA-nAncA, nB-nAncB

			total += nAncA*(nAncA-1)*nDerB*(nDerB-1) - nAncA*nDerA*nAncB*nDerB
			total += nDerA*(nDerA-1)*nAncB*(nAncB-1) - nDerA*nAncA*nDerB*nAncB
		} else {
			stA, stB = cs[0].State(), cs[1].State()
			for state, nStateA0 := range stA.Counts {
				nStateA := float64(nStateA0)
				nStateB := float64(stB.Counts[state])
				nNotA := nA - nStateA
				nNotB := nB - nStateB

				total += nStateA*(nStateA-1)*nNotB*(nNotB-1) - nStateA*nNotA*nStateB*nNotB
			}
		}
	}

	return total / (nA * (nA - 1) * nB * (nB - 1))
}

// F3 is Patterson's F3 statistic with set 0 as the putatively admixed
// population, per spec 4.9.
func F3(store *sequence.Store, a, b, c setArg) float64 {
	cs := []*freq.Cursor{
		freq.NewCursor(store, a.acc, a.num),
		freq.NewCursor(store, b.acc, b.num),
		freq.NewCursor(store, c.acc, c.num),
	}
	nA, nB, nC := float64(a.num), float64(b.num), float64(c.num)
	total := 0.0

	for ; !cs[0].Done(); advanceAll(cs) {
		forceAll(cs)
		stA, stB, stC := cs[0].State(), cs[1].State(), cs[2].State()

		if stA.Kind == freq.Biallelic && stB.Kind == freq.Biallelic && stC.Kind == freq.Biallelic {
			nAncA, nAncB, nAncC := float64(stA.NumAncestral), float64(stB.NumAncestral), float64(stC.NumAncestral)
			nDerA, nDerB, nDerC := nA-nAncA, nB-nAncB, nC-nAncC

			total += nAncA*(nAncA-1)*nDerB*nDerC - nAncA*nDerA*nDerB*nAncC
			total += nDerA*(nDerA-1)*nAncB*nAncC - nDerA*nAncA*nAncB*nDerC
		} else {
			stA, stB, stC = cs[0].State(), cs[1].State(), cs[2].State()
			for state, nStateA0 := range stA.Counts {
				nStateA := float64(nStateA0)
				nStateB := float64(stB.Counts[state])
				nStateC := float64(stC.Counts[state])
				nNotA := nA - nStateA
				nNotB := nB - nStateB
				nNotC := nC - nStateC

				total += nStateA*(nStateA-1)*nNotB*nNotC - nStateA*nNotA*nNotB*nStateC
				total += nNotA*(nNotA-1)*nStateB*nStateC - nNotA*nStateA*nStateB*nNotC
			}
		}
	}

	return total / (nA * (nA - 1) * nB * nC)
}

// F4 is Patterson's F4 statistic between sets (0,1) and (2,3), per spec 4.9.
func F4(store *sequence.Store, a, b, c, d setArg) float64 {
	cs := []*freq.Cursor{
		freq.NewCursor(store, a.acc, a.num),
		freq.NewCursor(store, b.acc, b.num),
		freq.NewCursor(store, c.acc, c.num),
		freq.NewCursor(store, d.acc, d.num),
	}
	nA, nB, nC, nD := float64(a.num), float64(b.num), float64(c.num), float64(d.num)
	total := 0.0

	for ; !cs[0].Done(); advanceAll(cs) {
		forceAll(cs)
		stA, stB, stC, stD := cs[0].State(), cs[1].State(), cs[2].State(), cs[3].State()

		if stA.Kind == freq.Biallelic && stB.Kind == freq.Biallelic &&
			stC.Kind == freq.Biallelic && stD.Kind == freq.Biallelic {
			nAncA, nAncB := float64(stA.NumAncestral), float64(stB.NumAncestral)
			nAncC, nAncD := float64(stC.NumAncestral), float64(stD.NumAncestral)
			nDerA, nDerB := nA-nAncA, nB-nAncB
			nDerC, nDerD := nC-nAncC, nD-nAncD

			total += nAncA*nDerB*nAncC*nDerD - nDerA*nAncB*nAncC*nDerD
			total += nDerA*nAncB*nDerC*nAncD - nAncA*nDerB*nDerC*nAncD
		} else {
			stA, stB, stC, stD = cs[0].State(), cs[1].State(), cs[2].State(), cs[3].State()
			for state, nStateA0 := range stA.Counts {
				nStateA := float64(nStateA0)
				nStateB := float64(stB.Counts[state])
				nStateC := float64(stC.Counts[state])
				nStateD := float64(stD.Counts[state])
				nNotB := nB - nStateB
				nNotC := nC - nStateC
				nNotD := nD - nStateD

				total += nStateA*nNotB*nStateC*nNotD - nStateA*nNotB*nNotC*nStateD
			}
		}
	}

	return total / (nA * nB * nC * nD)
}
