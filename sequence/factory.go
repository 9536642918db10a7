// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package sequence

import (
	"github.com/pkg/errors"
	"github.com/sfkit/gfkit"
	"github.com/sfkit/gfkit/reader"
)

// Resolver maps a tree-sequence node id to the compressed forest node id it
// currently resolves to, for the tree the factory is advancing through. Both
// package dag and package bp's per-tree Mapper satisfy this signature.
type Resolver func(reader.TsNodeId) (gfkit.NodeId, error)

// Factory advances through mutations sorted by site, translating ts-node
// ids to sf-node ids via the live per-tree Resolver and emitting records
// into a Store (C9 of the spec). It interleaves with forest compression:
// the caller processes one tree of the reader, then calls ProcessMutations
// for that tree before moving to the next, so the per-tree ts->sf mapping
// never needs to be retained for more than one tree at a time.
type Factory struct {
	store *Store
	muts  []reader.MutationRecord
	pos   int
}

// NewFactory returns a Factory that will populate store from ts's sites and
// mutations. The ancestral states are copied immediately; mutations are
// consumed incrementally via ProcessMutations.
func NewFactory(ts reader.TreeSequence, store *Store) *Factory {
	for _, site := range ts.Sites() {
		store.AddAncestralState(site.AncestralState)
	}
	return &Factory{store: store, muts: ts.Mutations()}
}

// ProcessMutations consumes pending mutations in input order, translating
// each ts-node to an sf-node id via resolve and appending a record tagged
// with treeID to the store. It stops at the first mutation whose node
// resolve rejects, leaving it and every later one for the next call. The
// order of the mutations is not checked: a mutation out of tree order is
// not reported, but is recorded under the first tree whose resolver
// accepts its node. The only error returned is for a parent mutation id
// that does not refer to an already-stored mutation.
func (f *Factory) ProcessMutations(treeID gfkit.TreeId, resolve Resolver) error {
	for f.pos < len(f.muts) {
		m := f.muts[f.pos]
		// The reader does not attach a tree id to mutations directly; the
		// compressor calls ProcessMutations once per tree in increasing
		// order, so any remaining mutation either belongs to treeID or a
		// later tree indistinguishable from here without tracking site
		// boundaries externally. We resolve via the current tree's mapper
		// and stop only when resolution fails, signalling the mutation's
		// node has moved to the next tree already.
		node, err := resolve(m.Node)
		if err != nil {
			return nil //nolint:nilerr // node not in this tree yet, defer to the next ProcessMutations call
		}

		parentState := gfkit.AllelicState(0)
		if m.HasParent {
			if int(m.ParentMutation) >= len(f.store.mutations) {
				return errors.Wrap(gfkit.ErrMutationOutOfOrder, "parent mutation id out of range")
			}
			parentState = f.store.mutations[m.ParentMutation].DerivedState
		} else {
			parentState = f.store.AncestralState(m.Site)
		}

		f.store.AddMutation(Mutation{
			Site:         m.Site,
			Tree:         treeID,
			Node:         node,
			DerivedState: m.DerivedState,
			ParentState:  parentState,
		})
		f.pos++
	}
	return nil
}

// Finalize must be called after the last tree has been processed; it
// builds the mutation_index prefix-sum array.
func (f *Factory) Finalize() {
	f.store.Finalize()
}
