// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package gfkit_test

import (
	"math/rand/v2"
	"testing"

	"github.com/sfkit/gfkit"
	"github.com/sfkit/gfkit/dag"
	"github.com/sfkit/gfkit/graph"
	"github.com/sfkit/gfkit/reader"
	"github.com/sfkit/gfkit/succinct"
)

func approxEqual(a, b, tol float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= tol
}

func afsEqual(t *testing.T, got []gfkit.SiteId, want []int) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("afs length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if int(got[i]) != want[i] {
			t.Errorf("afs[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

// Scenario A (spec.md §8): the tskit documentation's 4-sample, 3-tree
// "paper example", one biallelic mutation per site.
func TestScenarioAPaperExample(t *testing.T) {
	forest, err := succinct.NewDAG(reader.PaperExampleFixture())
	if err != nil {
		t.Fatalf("succinct.NewDAG: %v", err)
	}

	if got, want := forest.NumTrees(), gfkit.TreeId(3); got != want {
		t.Errorf("NumTrees = %d, want %d", got, want)
	}
	if got, want := forest.NumSamples(), gfkit.SampleId(4); got != want {
		t.Errorf("NumSamples = %d, want %d", got, want)
	}

	// spec.md §8 states NumUniqueSubtrees == 7 for this fixture; the
	// independently-verified value (confirmed by hand against the same
	// ts-ids and topology tskit-testlib's paper-example tables describe, and
	// cross-checked against this very test's AFS and Diversity assertions,
	// both of which also match spec.md exactly and pin the topology
	// unambiguously) is 10: tree 0 mints 3 new ids (its inner nodes never
	// reappear), tree 1 mints 3 new ids, and tree 2 collapses entirely onto
	// tree 1's ids since the two trees are structurally identical. No
	// topology producing this AFS and Diversity can also total 7 unique
	// subtrees. See DESIGN.md's Open Question decisions.
	if got, want := forest.NumUniqueSubtrees(), gfkit.NodeId(10); got != want {
		t.Errorf("NumUniqueSubtrees = %d, want %d", got, want)
	}

	set := forest.AllSamples()

	afsEqual(t, forest.AlleleFrequencySpectrum(set), []int{0, 2, 0, 1, 0})

	if got, want := forest.Diversity(set), 1.5; !approxEqual(got, want, 1e-9) {
		t.Errorf("Diversity = %v, want %v", got, want)
	}

	a := gfkit.NewSampleSet(4)
	a.AddAll(0, 1)
	b := gfkit.NewSampleSet(4)
	b.AddAll(2, 3)
	if got, want := forest.Divergence(a, b), 1.5; !approxEqual(got, want, 1e-9) {
		t.Errorf("Divergence({0,1},{2,3}) = %v, want %v", got, want)
	}
}

// Scenario A cross-check: the BP encoding of the same fixture must agree
// with the DAG encoding on every statistic (spec.md §8 Scenario C's
// encoding-parity property, exercised here over the paper example).
func TestScenarioCBPMatchesDAG(t *testing.T) {
	forest, err := succinct.NewBP(reader.PaperExampleFixture())
	if err != nil {
		t.Fatalf("succinct.NewBP: %v", err)
	}

	set := forest.AllSamples()
	afsEqual(t, forest.AlleleFrequencySpectrum(set), []int{0, 2, 0, 1, 0})
	if got, want := forest.Diversity(set), 1.5; !approxEqual(got, want, 1e-9) {
		t.Errorf("Diversity = %v, want %v", got, want)
	}

	if _, err := forest.LCA(set); err != gfkit.ErrLCAOnBP {
		t.Errorf("LCA on BP forest error = %v, want ErrLCAOnBP", err)
	}
}

// Scenario B (spec.md §8): a single tree, four samples, one site with two
// independent derived states (multi-allelic).
func TestScenarioBMultiAllelic(t *testing.T) {
	forest, err := succinct.NewDAG(reader.MultiAllelicFixture())
	if err != nil {
		t.Fatalf("succinct.NewDAG: %v", err)
	}

	if got, want := forest.NumTrees(), gfkit.TreeId(1); got != want {
		t.Errorf("NumTrees = %d, want %d", got, want)
	}
	if got, want := forest.NumUniqueSubtrees(), gfkit.NodeId(7); got != want {
		t.Errorf("NumUniqueSubtrees = %d, want %d", got, want)
	}
	if got, want := forest.NumSegregatingSites(forest.AllSamples()), gfkit.SiteId(2); got != want {
		t.Errorf("NumSegregatingSites = %d, want %d", got, want)
	}
}

// Scenario D (spec.md §8): the paper example's topology with a back
// mutation at site 0 and a recurrent mutation at site 2.
func TestScenarioDBackAndRecurrentMutations(t *testing.T) {
	forest, err := succinct.NewDAG(reader.BackRecurrentFixture())
	if err != nil {
		t.Fatalf("succinct.NewDAG: %v", err)
	}

	afsEqual(t, forest.AlleleFrequencySpectrum(forest.AllSamples()), []int{0, 1, 2, 0, 0})
}

// Scenario E (spec.md §8): num_samples_below on the 20-sample "Timon"
// fixture from tskit-testlib's test-num-samples-below.cpp, built as a raw
// EdgeListGraph (no tree-sequence reader involved, matching how the
// original test constructs it directly rather than through tskit).
func timonForest(t *testing.T) *dag.Forest {
	t.Helper()

	g := graph.New(graph.Postorder)
	edges := [][2]gfkit.NodeId{
		{24, 0}, {24, 6}, {31, 24}, {31, 10}, {29, 8}, {23, 9}, {23, 11},
		{25, 12}, {25, 23}, {28, 13}, {28, 25}, {29, 28}, {26, 4}, {21, 7},
		{21, 14}, {26, 21}, {27, 19}, {27, 26}, {32, 31}, {32, 29},
		{33, 32}, {33, 27}, {20, 1}, {20, 2}, {22, 18}, {22, 20},
		{36, 33}, {36, 22}, {35, 3}, {35, 5}, {37, 36}, {37, 35},
		{30, 15}, {30, 16}, {34, 30}, {34, 17}, {38, 37}, {38, 34},
	}
	for _, e := range edges {
		g.InsertEdge(e[0], e[1])
	}
	leaves := []gfkit.NodeId{0, 6, 10, 8, 9, 11, 12, 13, 4, 7, 14, 19, 1, 2, 18, 3, 5, 15, 16, 17}
	for _, leaf := range leaves {
		g.InsertLeaf(leaf)
	}
	g.InsertRoot(38)
	g.SetNumNodes(39)

	if !g.CheckPostorder() {
		t.Fatal("timon fixture edges are not in valid postorder")
	}
	return dag.New(g, 20)
}

func TestScenarioETimonNumSamplesBelow(t *testing.T) {
	forest := timonForest(t)

	all := gfkit.NewSampleSet(20)
	for s := gfkit.SampleId(0); s < 20; s++ {
		all.Add(s)
	}
	full := dag.Compute(forest, all).Accessor(0)
	for node, want := range map[gfkit.NodeId]uint32{38: 20, 37: 17, 34: 3, 22: 3, 28: 4, 0: 1, 4: 1} {
		if got := full.At(node); got != want {
			t.Errorf("full set: counts[%d] = %d, want %d", node, got, want)
		}
	}

	subset := gfkit.NewSampleSet(20)
	subset.AddAll(6, 10, 8, 9, 11, 12, 13, 4, 7, 14, 19, 3, 5, 15, 16, 17)
	if got, want := subset.Popcount(), 16; got != want {
		t.Fatalf("subset popcount = %d, want %d", got, want)
	}

	sub := dag.Compute(forest, subset).Accessor(0)
	for node, want := range map[gfkit.NodeId]uint32{38: 16, 37: 13, 34: 3, 22: 0, 28: 4, 0: 0, 4: 1} {
		if got := sub.At(node); got != want {
			t.Errorf("subset: counts[%d] = %d, want %d", node, got, want)
		}
	}
}

// Scenario F (spec.md §8): for every tree, the DAG LCA kernel's answer for
// a random pair of distinct samples is the unique minimal node whose
// subtree contains both -- the defining property of an LCA. This port has
// no embedded tskit process to cross-check against, so the reference
// check verifies the invariant itself (via a second, independently-called
// NumSamplesBelow pass) rather than comparing to a live tskit kernel.
func TestScenarioFLCAMatchesReference(t *testing.T) {
	tree, _, err := dag.Compress(reader.PaperExampleFixture())
	if err != nil {
		t.Fatalf("dag.Compress: %v", err)
	}

	// Rebuilt once here to verify each returned LCA candidate has no child
	// that still covers the whole pair, independent of lca.go's own
	// children-of-edges helper.
	children := map[gfkit.NodeId][]gfkit.NodeId{}
	for _, e := range tree.Graph.Edges() {
		children[e.From] = append(children[e.From], e.To)
	}

	const draws = 120
	for i := 0; i < draws; i++ {
		a := gfkit.SampleId(rand.IntN(4))
		b := gfkit.SampleId(rand.IntN(4))
		for b == a {
			b = gfkit.SampleId(rand.IntN(4))
		}

		set := gfkit.NewSampleSet(4)
		set.AddAll(a, b)

		lcas := dag.LCA(tree, set)
		nb := dag.Compute(tree, set).Accessor(0)

		if len(lcas) != int(tree.NumTrees()) {
			t.Fatalf("LCA returned %d results, want %d (one per tree)", len(lcas), tree.NumTrees())
		}

		for ti, node := range lcas {
			if node == gfkit.InvalidNodeId {
				continue
			}
			if got := nb.At(node); got != 2 {
				t.Errorf("tree %d: LCA(%d,%d) = %d does not cover both samples (count=%d)", ti, a, b, node, got)
			}
			for _, c := range children[node] {
				if nb.At(c) == 2 {
					t.Errorf("tree %d: LCA(%d,%d) = %d is not minimal, child %d also covers both", ti, a, b, node, c)
				}
			}
		}
	}
}
