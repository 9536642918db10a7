// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package sequence

import (
	"testing"

	"github.com/sfkit/gfkit"
	"github.com/sfkit/gfkit/reader"
)

// identity always maps a ts-node to itself, enough to exercise
// Factory without a real compressor.
func identity(ts reader.TsNodeId) (gfkit.NodeId, error) {
	return gfkit.NodeId(ts), nil
}

func missing(reader.TsNodeId) (gfkit.NodeId, error) {
	return 0, errFixture
}

var errFixture = errFixtureType{}

type errFixtureType struct{}

func (errFixtureType) Error() string { return "fixture: node not in this tree" }

func TestFactoryProcessMutationsSingleTree(t *testing.T) {
	fx := reader.NewFixture(2)
	fx.SetSites([]reader.SiteRecord{{AncestralState: 'A'}})
	fx.AddMutation(reader.MutationRecord{Site: 0, Node: 2, DerivedState: 'T', HasParent: false})
	fx.AddTree(
		[]reader.TsNodeId{0, 1, 2},
		map[reader.TsNodeId][]reader.TsNodeId{2: {0, 1}},
		[]reader.TsNodeId{2},
		[]reader.TsNodeId{0, 1},
	)

	store := NewStore(1, 1)
	factory := NewFactory(fx, store)

	if err := factory.ProcessMutations(0, identity); err != nil {
		t.Fatalf("ProcessMutations: %v", err)
	}
	factory.Finalize()

	muts := store.MutationsAt(0)
	if len(muts) != 1 {
		t.Fatalf("got %d mutations at site 0, want 1", len(muts))
	}
	m := muts[0]
	if m.Node != 2 || m.DerivedState != 'T' || m.ParentState != 'A' {
		t.Errorf("mutation = %+v, want Node=2 DerivedState=T ParentState=A", m)
	}
}

func TestFactoryProcessMutationsDefersUnresolvedNode(t *testing.T) {
	fx := reader.NewFixture(1)
	fx.SetSites([]reader.SiteRecord{{AncestralState: 'A'}})
	fx.AddMutation(reader.MutationRecord{Site: 0, Node: 5, DerivedState: 'T'})

	store := NewStore(1, 1)
	factory := NewFactory(fx, store)

	if err := factory.ProcessMutations(0, missing); err != nil {
		t.Fatalf("ProcessMutations should defer, not error: %v", err)
	}
	if len(store.All()) != 0 {
		t.Errorf("mutation should not have been consumed yet, got %d", len(store.All()))
	}

	if err := factory.ProcessMutations(1, identity); err != nil {
		t.Fatalf("ProcessMutations: %v", err)
	}
	if len(store.All()) != 1 {
		t.Errorf("mutation should have been consumed on the second call, got %d", len(store.All()))
	}
}
