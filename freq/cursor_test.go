// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package freq

import (
	"testing"

	"github.com/sfkit/gfkit"
	"github.com/sfkit/gfkit/sequence"
)

// fixedAccessor reports a fixed count of samples-in-set below any node,
// keyed by node id, for tests that don't need a real forest.
type fixedAccessor map[gfkit.NodeId]uint32

func (a fixedAccessor) At(node gfkit.NodeId) uint32 { return a[node] }

func TestCursorNoMutationsIsFullyAncestral(t *testing.T) {
	s := sequence.NewStore(1, 0)
	s.AddAncestralState('A')
	s.Finalize()

	c := NewCursor(s, fixedAccessor{}, 4)
	if c.Kind() != Biallelic {
		t.Fatalf("kind = %v, want Biallelic", c.Kind())
	}
	if c.State().NumAncestral != 4 {
		t.Errorf("NumAncestral = %d, want 4", c.State().NumAncestral)
	}
}

func TestCursorSingleDerivedMutation(t *testing.T) {
	s := sequence.NewStore(1, 1)
	s.AddAncestralState('A')
	s.AddMutation(sequence.Mutation{Site: 0, Node: 10, DerivedState: 'T', ParentState: 'A'})
	s.Finalize()

	acc := fixedAccessor{10: 3}
	c := NewCursor(s, acc, 5)

	if c.Kind() != Biallelic {
		t.Fatalf("kind = %v, want Biallelic", c.Kind())
	}
	if got := c.State().NumAncestral; got != 2 {
		t.Errorf("NumAncestral = %d, want 2 (5 total - 3 derived)", got)
	}
}

func TestCursorBackMutationRestoresAncestral(t *testing.T) {
	s := sequence.NewStore(1, 2)
	s.AddAncestralState('A')
	s.AddMutation(sequence.Mutation{Site: 0, Node: 10, DerivedState: 'T', ParentState: 'A'})
	s.AddMutation(sequence.Mutation{Site: 0, Node: 11, DerivedState: 'A', ParentState: 'T'})
	s.Finalize()

	// node 11 is below node 10, so 1 of the 3 "derived" samples reverts.
	acc := fixedAccessor{10: 3, 11: 1}
	c := NewCursor(s, acc, 5)

	if c.Kind() != Biallelic {
		t.Fatalf("kind = %v, want Biallelic", c.Kind())
	}
	if got := c.State().NumAncestral; got != 3 {
		t.Errorf("NumAncestral = %d, want 3 (2 never-derived + 1 reverted)", got)
	}
}

func TestCursorThirdStateForcesMultiallelic(t *testing.T) {
	s := sequence.NewStore(1, 2)
	s.AddAncestralState('A')
	s.AddMutation(sequence.Mutation{Site: 0, Node: 10, DerivedState: 'T', ParentState: 'A'})
	s.AddMutation(sequence.Mutation{Site: 0, Node: 11, DerivedState: 'G', ParentState: 'A'})
	s.Finalize()

	acc := fixedAccessor{10: 2, 11: 1}
	c := NewCursor(s, acc, 5)

	if c.Kind() != Multiallelic {
		t.Fatalf("kind = %v, want Multiallelic", c.Kind())
	}
	counts := c.State().Counts
	if counts['A'] != 2 || counts['T'] != 2 || counts['G'] != 1 {
		t.Errorf("counts = %v, want A:2 T:2 G:1", counts)
	}
}

func TestCursorForceMultiallelicIdempotent(t *testing.T) {
	s := sequence.NewStore(1, 1)
	s.AddAncestralState('A')
	s.AddMutation(sequence.Mutation{Site: 0, Node: 10, DerivedState: 'T', ParentState: 'A'})
	s.Finalize()

	acc := fixedAccessor{10: 2}
	c := NewCursor(s, acc, 5)
	c.ForceMultiallelic()
	first := c.State()
	c.ForceMultiallelic()
	second := c.State()

	if first.Kind != Multiallelic || second.Kind != Multiallelic {
		t.Fatalf("expected Multiallelic after forcing, got %v then %v", first.Kind, second.Kind)
	}
	if first.Counts['A'] != second.Counts['A'] || first.Counts['T'] != second.Counts['T'] {
		t.Errorf("repeated ForceMultiallelic changed counts: %v -> %v", first.Counts, second.Counts)
	}
}

func TestCursorNextAdvancesAndReportsExhaustion(t *testing.T) {
	s := sequence.NewStore(2, 0)
	s.AddAncestralState('A')
	s.AddAncestralState('C')
	s.Finalize()

	c := NewCursor(s, fixedAccessor{}, 1)
	if c.Site() != 0 {
		t.Fatalf("initial site = %d, want 0", c.Site())
	}
	if !c.Next() {
		t.Fatal("Next() should report true moving to site 1")
	}
	if c.Site() != 1 {
		t.Fatalf("site after Next = %d, want 1", c.Site())
	}
	if c.Next() {
		t.Fatal("Next() should report false past the last site")
	}
}

func TestPairSyncsMultiallelicAcrossCursors(t *testing.T) {
	sA := sequence.NewStore(1, 1)
	sA.AddAncestralState('A')
	sA.AddMutation(sequence.Mutation{Site: 0, Node: 1, DerivedState: 'T', ParentState: 'A'})
	sA.Finalize()

	sB := sequence.NewStore(1, 2)
	sB.AddAncestralState('A')
	sB.AddMutation(sequence.Mutation{Site: 0, Node: 1, DerivedState: 'T', ParentState: 'A'})
	sB.AddMutation(sequence.Mutation{Site: 0, Node: 2, DerivedState: 'G', ParentState: 'A'})
	sB.Finalize()

	accA := fixedAccessor{1: 1}
	accB := fixedAccessor{1: 2, 2: 1}

	cA := NewCursor(sA, accA, 3)
	cB := NewCursor(sB, accB, 4)

	p := NewPair(cA, cB)
	if p.A.Kind() != Multiallelic {
		t.Errorf("A should be upgraded to Multiallelic because B is, got %v", p.A.Kind())
	}
	if p.A.State().Counts['A'] != 2 || p.A.State().Counts['T'] != 1 {
		t.Errorf("A's forced counts = %v, want A:2 T:1", p.A.State().Counts)
	}
}
