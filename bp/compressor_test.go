// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package bp

import (
	"testing"

	"github.com/sfkit/gfkit/reader"
)

// twoTreeFixture builds two structurally identical trees over 3 samples:
// an inner node (3) pairing samples 0 and 1, and a root (4) pairing that
// inner node with sample 2. The whole second tree is expected to collapse
// into a single back-reference to the first (spec.md 8, Scenario C).
func twoTreeFixture() *reader.Fixture {
	fx := reader.NewFixture(3)
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

func TestCompressSecondIdenticalTreeBackReferences(t *testing.T) {
	fx := twoTreeFixture()

	forest, seq, err := Compress(fx)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if seq == nil {
		t.Fatal("Compress returned a nil sequence store")
	}

	// 3 samples + 1 shared inner node + 1 shared root: the whole second
	// tree collapses into a single two-character back-reference, so no
	// node id is minted for it at all.
	if got, want := int(forest.NumNodes()), 5; got != want {
		t.Fatalf("NumNodes = %d, want %d", got, want)
	}
	if got, want := int(forest.NumTrees()), 2; got != want {
		t.Fatalf("NumTrees = %d, want %d", got, want)
	}

	refs := forest.References()
	if len(refs) != 1 {
		t.Fatalf("References = %v, want exactly 1 back-reference (the whole second tree)", refs)
	}
	if int(refs[0]) != 4 {
		t.Errorf("back-reference points to node %d, want 4 (the first tree's root)", refs[0])
	}
}

func TestCompressNodeIdAtLeafAndInnerPositions(t *testing.T) {
	fx := twoTreeFixture()
	forest, _, err := Compress(fx)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}

	// Walk every position and confirm NodeId never panics and every sample
	// id in [0, NumSamples) is reachable from some leaf position.
	seen := make(map[int]bool)
	for i := 0; i < forest.Len(); i++ {
		id := forest.NodeId(i)
		if forest.IsSample(id) {
			seen[int(id)] = true
		}
	}
	for s := 0; s < int(forest.NumSamples()); s++ {
		if !seen[s] {
			t.Errorf("sample %d never resolved from any bp position", s)
		}
	}
}

func TestNumSamplesBelowMatchesAcrossTrees(t *testing.T) {
	fx := twoTreeFixture()
	forest, _, err := Compress(fx)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}

	all := forest.AllSamples()
	nb := Compute(forest, all)

	// The single root node (shared by both trees via back-reference) must
	// carry all 3 samples below it.
	var rootID = forest.NodeId(forest.Len() - 1)
	if got := nb.At(rootID); got[0] != 3 {
		t.Errorf("root NumSamplesBelow = %d, want 3", got[0])
	}
}
