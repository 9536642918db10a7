// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package dag

import (
	"github.com/pkg/errors"
	"github.com/sfkit/gfkit"
	"github.com/sfkit/gfkit/graph"
	"github.com/sfkit/gfkit/internal/hash"
	"github.com/sfkit/gfkit/internal/idmap"
	"github.com/sfkit/gfkit/internal/xlog"
	"github.com/sfkit/gfkit/reader"
	"github.com/sfkit/gfkit/sequence"
)

// Mapper translates tree-sequence node ids to compressed sf-node ids for
// the current tree, as built by the Compressor while walking one tree. It
// is the "live mapper" package sequence's Factory uses to resolve mutation
// targets.
type Mapper struct {
	toSf map[reader.TsNodeId]gfkit.NodeId
}

// At returns the sf-node id a ts-node maps to in the current tree. For a
// ts-node that was not visited in this tree it returns an error, which
// package sequence's Factory takes to mean the mutation belongs to a later
// tree.
func (m *Mapper) At(ts reader.TsNodeId) (gfkit.NodeId, error) {
	id, ok := m.toSf[ts]
	if !ok {
		return 0, errors.Errorf("dag: ts node %d has no sf mapping in this tree", ts)
	}
	return id, nil
}

// Compress drives the full C8-DAG algorithm over ts and returns the
// resulting forest and sequence store. Mutations are handed to package
// sequence's Factory (C9) one tree at a time, as each tree's Mapper becomes
// available.
func Compress(ts reader.TreeSequence) (*Forest, *sequence.Store, error) {
	if !ts.SampleIDsConsecutive() {
		return nil, nil, gfkit.ErrNonConsecutiveSamples
	}

	numSamples := ts.NumSamples()
	ids := idmap.New()
	g := graph.New(graph.Postorder)
	seq := sequence.NewStore(int(ts.NumSites()), int(ts.NumMutations()))
	factory := sequence.NewFactory(ts, seq)

	// Step 1: pre-register every sample, in order, so samples share ids
	// across all trees.
	for s := uint32(0); s < numSamples; s++ {
		h := hash.HashSample(s)
		id, err := ids.InsertNode(h)
		if err != nil {
			return nil, nil, errors.Wrap(gfkit.ErrDuplicateLeaf, err.Error())
		}
		if id != s {
			return nil, nil, errors.Wrapf(gfkit.ErrNonConsecutiveSamples, "sample %d got sf id %d", s, id)
		}
		g.InsertLeaf(gfkit.NodeId(id))
	}

	for _, tree := range ts.Trees() {
		mapper := &Mapper{toSf: make(map[reader.TsNodeId]gfkit.NodeId, len(tree.Postorder()))}
		childHash := make(map[reader.TsNodeId]hash.SubtreeHash, len(tree.Postorder()))

		h := hash.NewHasher()
		for _, ts := range tree.Postorder() {
			if tree.IsSample(ts) {
				sf := gfkit.NodeId(ts)
				mapper.toSf[ts] = sf
				childHash[ts] = hash.HashSample(uint32(ts))
				continue
			}

			children := tree.Children(ts)
			h.Reset()
			childIds := make([]gfkit.NodeId, 0, len(children))
			for _, c := range children {
				ch, ok := childHash[c]
				if !ok {
					return nil, nil, errors.Wrapf(gfkit.ErrMalformedParent, "child %d of %d not yet hashed", c, ts)
				}
				h.AppendChild(ch)
				childIds = append(childIds, mapper.toSf[c])
			}
			fingerprint := h.Finish()
			childHash[ts] = fingerprint

			var sf gfkit.NodeId
			switch {
			case tree.IsRoot(ts):
				sf = gfkit.NodeId(ids.InsertOrUpdateNode(fingerprint))
				g.InsertRoot(sf)
				for _, c := range childIds {
					g.InsertEdge(sf, c)
				}
			default:
				if existing, ok := ids.Find(fingerprint); ok {
					sf = gfkit.NodeId(existing)
				} else {
					sf = gfkit.NodeId(ids.InsertOrUpdateNode(fingerprint))
					for _, c := range childIds {
						g.InsertEdge(sf, c)
					}
				}
			}
			mapper.toSf[ts] = sf
		}

		if err := factory.ProcessMutations(tree.TreeId(), mapper.At); err != nil {
			return nil, nil, err
		}
	}

	factory.Finalize()
	g.SetNumNodes(gfkit.NodeId(ids.NumNodes()))
	if !g.CheckPostorder() {
		return nil, nil, gfkit.ErrNotPostorder
	}

	xlog.Logger.Info().
		Uint32("trees", ts.NumTrees()).
		Uint32("nodes", ids.NumNodes()).
		Msg("dag compression complete")

	return New(g, gfkit.SampleId(numSamples)), seq, nil
}
