// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package sequence implements the genomic sequence store: per-site
// ancestral state, per-mutation records keyed to compressed forest nodes,
// and the prefix-sum index that groups mutations by site.
package sequence

import "github.com/sfkit/gfkit"

// Mutation is a single state change on one subtree at one site, from
// ParentState to DerivedState. Created once during compression and never
// mutated afterward.
type Mutation struct {
	Site         gfkit.SiteId
	Tree         gfkit.TreeId
	Node         gfkit.NodeId
	DerivedState gfkit.AllelicState
	ParentState  gfkit.AllelicState
}

// Store owns the three aligned arrays of the genomic sequence: ancestral
// states, mutations ordered by site, and the mutation_index prefix-sum
// array.
type Store struct {
	ancestral     []gfkit.AllelicState
	mutations     []Mutation
	mutationIndex []gfkit.MutationId
	finalized     bool
}

// NewStore returns an empty Store with capacity hints for the expected
// number of sites and mutations.
func NewStore(numSites, numMutations int) *Store {
	return &Store{
		ancestral: make([]gfkit.AllelicState, 0, numSites),
		mutations: make([]Mutation, 0, numMutations),
	}
}

// AddAncestralState appends one site's ancestral state. Sites must be added
// in SiteId order, one call per site.
func (s *Store) AddAncestralState(state gfkit.AllelicState) {
	s.ancestral = append(s.ancestral, state)
}

// AddMutation appends one mutation. Mutations must be added in an order
// consistent with increasing Site (the caller, the sequence factory,
// guarantees this by constraint on the input reader).
func (s *Store) AddMutation(m Mutation) {
	s.mutations = append(s.mutations, m)
}

// Finalize builds the mutation_index prefix-sum array. Must be called
// exactly once, after all sites and mutations have been added.
func (s *Store) Finalize() {
	if s.finalized {
		panic("sequence: store already finalized")
	}
	s.finalized = true
	s.mutationIndex = make([]gfkit.MutationId, len(s.ancestral)+1)
	var site gfkit.SiteId
	for i, m := range s.mutations {
		for site < m.Site {
			s.mutationIndex[site+1] = gfkit.MutationId(i)
			site++
		}
	}
	for site < gfkit.SiteId(len(s.ancestral)) {
		s.mutationIndex[site+1] = gfkit.MutationId(len(s.mutations))
		site++
	}
}

// NumSites returns the number of sites.
func (s *Store) NumSites() int { return len(s.ancestral) }

// NumMutations returns the number of mutations.
func (s *Store) NumMutations() int { return len(s.mutations) }

// AncestralState returns the ancestral state of a site.
func (s *Store) AncestralState(site gfkit.SiteId) gfkit.AllelicState {
	return s.ancestral[site]
}

// MutationsAt returns the mutations at a site, in the order they were
// recorded (tree order).
func (s *Store) MutationsAt(site gfkit.SiteId) []Mutation {
	if !s.finalized {
		panic("sequence: store not finalized")
	}
	lo := s.mutationIndex[site]
	hi := s.mutationIndex[site+1]
	return s.mutations[lo:hi]
}

// All returns every mutation, in site order.
func (s *Store) All() []Mutation { return s.mutations }
