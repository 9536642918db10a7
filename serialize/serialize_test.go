// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package serialize

import (
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/sfkit/gfkit"
	"github.com/sfkit/gfkit/bp"
	"github.com/sfkit/gfkit/dag"
	"github.com/sfkit/gfkit/reader"
)

// treeFixture builds one tree over 3 samples: inner node 3 pairs samples 0
// and 1, root 4 pairs node 3 with sample 2, plus one mutation at the root.
func treeFixture() *reader.Fixture {
	fx := reader.NewFixture(3)
	children := map[reader.TsNodeId][]reader.TsNodeId{3: {0, 1}, 4: {3, 2}}
	fx.AddTree(
		[]reader.TsNodeId{0, 1, 3, 2, 4},
		children,
		[]reader.TsNodeId{4},
		[]reader.TsNodeId{0, 1, 2},
	)
	fx.SetSites([]reader.SiteRecord{{AncestralState: 'A'}})
	fx.AddMutation(reader.MutationRecord{Site: 0, Node: 4, DerivedState: 'T'})
	return fx
}

func TestDAGSaveLoadRoundTrip(t *testing.T) {
	forest, seq, err := dag.Compress(treeFixture())
	if err != nil {
		t.Fatalf("dag.Compress: %v", err)
	}

	path := filepath.Join(t.TempDir(), "forest.dag")
	if err := SaveDAG(path, forest, seq); err != nil {
		t.Fatalf("SaveDAG: %v", err)
	}

	loaded, loadedSeq, err := LoadDAG(path)
	if err != nil {
		t.Fatalf("LoadDAG: %v", err)
	}

	if loaded.NumNodes() != forest.NumNodes() {
		t.Errorf("NumNodes = %d, want %d", loaded.NumNodes(), forest.NumNodes())
	}
	if loaded.NumSamples() != forest.NumSamples() {
		t.Errorf("NumSamples = %d, want %d", loaded.NumSamples(), forest.NumSamples())
	}
	if loaded.NumTrees() != forest.NumTrees() {
		t.Errorf("NumTrees = %d, want %d", loaded.NumTrees(), forest.NumTrees())
	}
	if got, want := loadedSeq.NumMutations(), seq.NumMutations(); got != want {
		t.Errorf("NumMutations = %d, want %d", got, want)
	}
	if got, want := len(loadedSeq.MutationsAt(0)), len(seq.MutationsAt(0)); got != want {
		t.Errorf("MutationsAt(0) length = %d, want %d", got, want)
	}
}

func TestBPSaveLoadRoundTrip(t *testing.T) {
	forest, seq, err := bp.Compress(treeFixture())
	if err != nil {
		t.Fatalf("bp.Compress: %v", err)
	}

	path := filepath.Join(t.TempDir(), "forest.bp")
	if err := SaveBP(path, forest, seq); err != nil {
		t.Fatalf("SaveBP: %v", err)
	}

	loaded, loadedSeq, err := LoadBP(path)
	if err != nil {
		t.Fatalf("LoadBP: %v", err)
	}

	if loaded.Len() != forest.Len() {
		t.Fatalf("Len = %d, want %d", loaded.Len(), forest.Len())
	}
	for i := 0; i < forest.Len(); i++ {
		if loaded.NodeId(i) != forest.NodeId(i) {
			t.Errorf("NodeId(%d) = %d, want %d", i, loaded.NodeId(i), forest.NodeId(i))
		}
	}
	if got, want := loadedSeq.NumMutations(), seq.NumMutations(); got != want {
		t.Errorf("NumMutations = %d, want %d", got, want)
	}
}

func TestLoadDAGRejectsBadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.dag")
	if err := writeFramed(path, 0xdeadbeef, dagVersion, []byte("x")); err != nil {
		t.Fatalf("writeFramed: %v", err)
	}

	_, _, err := LoadDAG(path)
	if err == nil {
		t.Fatal("LoadDAG succeeded on a bad-magic file, want error")
	}
	if !errors.Is(err, gfkit.ErrBadMagic) {
		t.Errorf("LoadDAG error = %v, want ErrBadMagic", err)
	}
}
