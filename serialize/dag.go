// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package serialize

import (
	"bytes"
	"io"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/sfkit/gfkit"
	"github.com/sfkit/gfkit/dag"
	"github.com/sfkit/gfkit/graph"
	"github.com/sfkit/gfkit/sequence"
)

// SaveDAG writes forest and seq to path as a magic/version-framed DAG file
// (spec.md §4.10/§6: magic 0x1227BF3DF7C52E1C, version 3).
func SaveDAG(path string, forest *dag.Forest, seq *sequence.Store) error {
	var buf bytes.Buffer
	if err := writeDAGPayload(&buf, forest, seq); err != nil {
		return errors.Wrap(err, "serialize: encoding DAG payload")
	}
	return writeFramed(path, dagMagic, dagVersion, buf.Bytes())
}

// LoadDAG reads a DAG file previously written by SaveDAG, validating its
// framing and the reconstructed graph's postorder/uniqueness invariants
// together via multierror before returning.
func LoadDAG(path string) (*dag.Forest, *sequence.Store, error) {
	r, err := readFramed(path, dagMagic, dagVersion)
	if err != nil {
		return nil, nil, err
	}
	return readDAGPayload(r)
}

func writeDAGPayload(w io.Writer, forest *dag.Forest, seq *sequence.Store) error {
	g := forest.Graph

	if err := writeUint32(w, uint32(g.NumNodes())); err != nil {
		return err
	}
	if err := writeUint32(w, uint32(g.TraversalOrder())); err != nil {
		return err
	}

	edges := g.Edges()
	if err := writeUint32(w, uint32(len(edges))); err != nil {
		return err
	}
	for _, e := range edges {
		if err := writeUint32(w, uint32(e.From)); err != nil {
			return err
		}
		if err := writeUint32(w, uint32(e.To)); err != nil {
			return err
		}
	}

	if err := writeNodeIds(w, g.Roots()); err != nil {
		return err
	}
	if err := writeNodeIds(w, g.Leaves()); err != nil {
		return err
	}
	if err := writeUint32(w, uint32(forest.NumSamples())); err != nil {
		return err
	}

	return writeSequenceStore(w, seq)
}

func readDAGPayload(r io.Reader) (*dag.Forest, *sequence.Store, error) {
	numNodes, err := readUint32(r)
	if err != nil {
		return nil, nil, errors.Wrap(err, "serialize: reading DAG node count")
	}
	order, err := readUint32(r)
	if err != nil {
		return nil, nil, errors.Wrap(err, "serialize: reading DAG traversal order")
	}

	numEdges, err := readUint32(r)
	if err != nil {
		return nil, nil, errors.Wrap(err, "serialize: reading DAG edge count")
	}

	g := graph.New(graph.TraversalOrder(order))
	for i := uint32(0); i < numEdges; i++ {
		from, err := readUint32(r)
		if err != nil {
			return nil, nil, errors.Wrap(err, "serialize: reading DAG edge from")
		}
		to, err := readUint32(r)
		if err != nil {
			return nil, nil, errors.Wrap(err, "serialize: reading DAG edge to")
		}
		g.InsertEdge(gfkit.NodeId(from), gfkit.NodeId(to))
	}

	roots, err := readNodeIds(r)
	if err != nil {
		return nil, nil, errors.Wrap(err, "serialize: reading DAG roots")
	}
	for _, root := range roots {
		g.InsertRoot(root)
	}

	leaves, err := readNodeIds(r)
	if err != nil {
		return nil, nil, errors.Wrap(err, "serialize: reading DAG leaves")
	}
	for _, leaf := range leaves {
		g.InsertLeaf(leaf)
	}

	numSamples, err := readUint32(r)
	if err != nil {
		return nil, nil, errors.Wrap(err, "serialize: reading DAG sample count")
	}

	g.SetNumNodes(gfkit.NodeId(numNodes))

	if err := validateDAGGraph(g); err != nil {
		return nil, nil, err
	}

	seq, err := readSequenceStore(r)
	if err != nil {
		return nil, nil, errors.Wrap(err, "serialize: reading DAG sequence store")
	}

	return dag.New(g, gfkit.SampleId(numSamples)), seq, nil
}

// validateDAGGraph runs every postorder/uniqueness invariant a loaded DAG
// graph must satisfy and collects every failure together, rather than
// stopping at the first, per SPEC_FULL.md 4.12's multierror policy for
// LoadDAG's batch of invariant checks.
func validateDAGGraph(g *graph.EdgeListGraph) error {
	var result *multierror.Error
	if !g.CheckPostorder() {
		result = multierror.Append(result, gfkit.ErrNotPostorder)
	}
	if !g.UniqueRoots() {
		result = multierror.Append(result, gfkit.ErrRootsNotUnique)
	}
	if !g.UniqueLeaves() {
		result = multierror.Append(result, gfkit.ErrLeavesNotUnique)
	}
	return result.ErrorOrNil()
}
