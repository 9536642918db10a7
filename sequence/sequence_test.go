// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package sequence

import (
	"testing"

	"github.com/sfkit/gfkit"
)

func TestStoreMutationsAtGroupsBySite(t *testing.T) {
	s := NewStore(3, 4)
	s.AddAncestralState('A')
	s.AddAncestralState('C')
	s.AddAncestralState('G')

	s.AddMutation(Mutation{Site: 0, Tree: 0, Node: 5, DerivedState: 'T', ParentState: 'A'})
	s.AddMutation(Mutation{Site: 0, Tree: 0, Node: 6, DerivedState: 'T', ParentState: 'T'})
	s.AddMutation(Mutation{Site: 2, Tree: 1, Node: 7, DerivedState: 'A', ParentState: 'G'})
	s.Finalize()

	if got := s.MutationsAt(0); len(got) != 2 {
		t.Fatalf("site 0: got %d mutations, want 2", len(got))
	}
	if got := s.MutationsAt(1); len(got) != 0 {
		t.Fatalf("site 1: got %d mutations, want 0", len(got))
	}
	if got := s.MutationsAt(2); len(got) != 1 {
		t.Fatalf("site 2: got %d mutations, want 1", len(got))
	}

	if s.AncestralState(1) != gfkit.AllelicState('C') {
		t.Errorf("ancestral state at site 1 = %c, want C", s.AncestralState(1))
	}
	if len(s.All()) != 3 {
		t.Errorf("All() returned %d mutations, want 3", len(s.All()))
	}
}

func TestStoreFinalizeEmptySites(t *testing.T) {
	s := NewStore(2, 0)
	s.AddAncestralState('A')
	s.AddAncestralState('A')
	s.Finalize()

	if got := s.MutationsAt(0); len(got) != 0 {
		t.Errorf("empty store: got %d mutations at site 0, want 0", len(got))
	}
	if got := s.MutationsAt(1); len(got) != 0 {
		t.Errorf("empty store: got %d mutations at site 1, want 0", len(got))
	}
}

func TestStoreFinalizeTwice(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Finalize called twice should panic")
		}
	}()
	s := NewStore(1, 0)
	s.AddAncestralState('A')
	s.Finalize()
	s.Finalize()
}
