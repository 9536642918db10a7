// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package dag

import (
	"testing"

	"github.com/sfkit/gfkit"
	"github.com/sfkit/gfkit/reader"
)

func twoTreeFixture() *reader.Fixture {
	fx := reader.NewFixture(3)
	fx.SetSites(nil)

	children := map[reader.TsNodeId][]reader.TsNodeId{3: {0, 1}, 4: {3, 2}}
	fx.AddTree(
		[]reader.TsNodeId{0, 1, 3, 2, 4},
		children,
		[]reader.TsNodeId{4},
		[]reader.TsNodeId{0, 1, 2},
	)
	fx.AddTree(
		[]reader.TsNodeId{0, 1, 3, 2, 4},
		children,
		[]reader.TsNodeId{4},
		[]reader.TsNodeId{0, 1, 2},
	)
	return fx
}

func TestCompressSharesRepeatedInnerSubtreeButNotRoots(t *testing.T) {
	fx := twoTreeFixture()

	forest, seq, err := Compress(fx)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if seq == nil {
		t.Fatal("Compress returned a nil sequence store")
	}

	// 3 samples + 1 shared inner node + 2 distinct tree roots.
	if got, want := forest.NumNodes(), gfkit.NodeId(6); got != want {
		t.Fatalf("NumNodes = %d, want %d", got, want)
	}
	if !forest.Graph.CheckPostorder() {
		t.Fatal("compressed graph is not a valid postorder")
	}
	if got := forest.Graph.NumRoots(); got != 2 {
		t.Fatalf("NumRoots = %d, want 2 (one per tree, no root sharing)", got)
	}

	roots := forest.Graph.Roots()
	if roots[0] == roots[1] {
		t.Errorf("identical trees must still get distinct root ids, both got %d", roots[0])
	}
}

func TestCompressNumSamplesBelow(t *testing.T) {
	fx := twoTreeFixture()
	forest, _, err := Compress(fx)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}

	all := forest.AllSamples()
	nb := Compute(forest, all)

	roots := forest.Graph.Roots()
	for _, r := range roots {
		if got := nb.At(r); got[0] != 3 {
			t.Errorf("root %d: NumSamplesBelow = %d, want 3", r, got[0])
		}
	}
}
