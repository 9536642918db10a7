// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package stats

import (
	"math"
	"testing"

	"github.com/sfkit/gfkit"
	"github.com/sfkit/gfkit/sequence"
)

type fixedAccessor map[gfkit.NodeId]uint32

func (a fixedAccessor) At(node gfkit.NodeId) uint32 { return a[node] }

func approx(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %v, want %v (+/- %v)", name, got, want, tol)
	}
}

// singleSiteStore builds a one-site store where numDerived of numSamples
// total samples carry a single derived mutation at node 10.
func singleSiteStore(numDerived uint32) (*sequence.Store, fixedAccessor) {
	s := sequence.NewStore(1, 1)
	s.AddAncestralState('A')
	s.AddMutation(sequence.Mutation{Site: 0, Node: 10, DerivedState: 'T', ParentState: 'A'})
	s.Finalize()
	return s, fixedAccessor{10: numDerived}
}

func TestDiversitySingleSite(t *testing.T) {
	// n=4, 1 derived sample: pi = 2*3*1 / (4*3) = 0.5.
	s, acc := singleSiteStore(1)
	got := Diversity(s, acc, 4)
	approx(t, "Diversity", got, 0.5, 1e-12)
}

func TestDiversityNoMutationsIsZero(t *testing.T) {
	s := sequence.NewStore(1, 0)
	s.AddAncestralState('A')
	s.Finalize()

	got := Diversity(s, fixedAccessor{}, 5)
	approx(t, "Diversity", got, 0.0, 1e-12)
}

func TestNumSegregatingSitesCountsPolymorphicSites(t *testing.T) {
	s := sequence.NewStore(2, 2)
	s.AddAncestralState('A')
	s.AddAncestralState('A')
	// site 0 is derived in 1 of 3 samples (segregating).
	s.AddMutation(sequence.Mutation{Site: 0, Node: 11, DerivedState: 'T', ParentState: 'A'})
	// site 1 fixes for the derived state in every sample (not segregating).
	s.AddMutation(sequence.Mutation{Site: 1, Node: 10, DerivedState: 'T', ParentState: 'A'})
	s.Finalize()

	acc := fixedAccessor{10: 3, 11: 1}
	got := NumSegregatingSites(s, acc, 3)
	if got != 1 {
		t.Errorf("NumSegregatingSites = %d, want 1", got)
	}
}

func TestNumSegregatingSitesMultiallelic(t *testing.T) {
	s := sequence.NewStore(1, 2)
	s.AddAncestralState('A')
	s.AddMutation(sequence.Mutation{Site: 0, Node: 10, DerivedState: 'T', ParentState: 'A'})
	s.AddMutation(sequence.Mutation{Site: 0, Node: 11, DerivedState: 'G', ParentState: 'A'})
	s.Finalize()

	// 3 states present (A, T, G), all with non-zero counts: 3 - 1 = 2.
	acc := fixedAccessor{10: 2, 11: 1}
	got := NumSegregatingSites(s, acc, 5)
	if got != 2 {
		t.Errorf("NumSegregatingSites = %d, want 2", got)
	}
}

func TestDivergenceIdenticalSplitBothSets(t *testing.T) {
	s, acc := singleSiteStore(2)

	got := Divergence(s, Set(acc, 4), Set(acc, 4))
	// Same 2/4 derived split in both sets still contributes cross terms:
	// n_anc*n_der + n_der*n_anc = 2*2 + 2*2 = 8, divided by (4*4) = 0.5.
	approx(t, "Divergence", got, 0.5, 1e-12)
}

func TestAFSSingleSiteSingleton(t *testing.T) {
	s, acc := singleSiteStore(1)
	afs := AlleleFrequencySpectrum(s, acc, 4)

	want := []gfkit.SiteId{0, 1, 0, 0, 0}
	if len(afs) != len(want) {
		t.Fatalf("len(afs) = %d, want %d", len(afs), len(want))
	}
	for i := range want {
		if afs[i] != want[i] {
			t.Errorf("afs[%d] = %d, want %d", i, afs[i], want[i])
		}
	}
}

func TestF2SelfComparisonSameSplit(t *testing.T) {
	// n=4 in both sets, 2 derived samples each (so n_anc=n_der=2 on both
	// sides): each of the two symmetric terms is 2*1*2*1 - 2*2*2*2 = -12,
	// total -24, divided by (4*3*4*3)=144, giving -1/6.
	s, acc := singleSiteStore(2)
	got := F2(s, Set(acc, 4), Set(acc, 4))
	approx(t, "F2", got, -1.0/6.0, 1e-12)
}

func TestFstIdenticalSets(t *testing.T) {
	// dX = dY = 2*2*2/(4*3) = 2/3, dXY = 0.5 (from the divergence test
	// above); Fst = 1 - 2*(4/3)/(2/3 + 1 + 2/3) = 1 - (8/3)/(7/3) = -1/7.
	s, acc := singleSiteStore(2)
	got := Fst(s, 1, Set(acc, 4), Set(acc, 4))
	approx(t, "Fst", got, -1.0/7.0, 1e-9)
}
