// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package dag

import "github.com/sfkit/gfkit"

// LCA computes, per tree, the lowest common ancestor of the samples in set,
// defined only on the DAG encoding (spec.md 4.9, 7: LCA on BP is a fatal
// algorithmic-precondition error). One post-order pass over the edges first
// accumulates every node's count of set members below it; then each tree is
// searched top-down from its root by lcaInTree. A tree whose root does not
// cover the full popcount of set yields gfkit.InvalidNodeId.
func LCA(forest *Forest, set *gfkit.SampleSet) []gfkit.NodeId {
	target := uint32(set.Popcount())
	counts := make([]uint32, forest.NumNodes())
	for _, s := range set.All() {
		counts[s] = 1
	}

	for _, e := range forest.Graph.Edges() {
		counts[e.From] += counts[e.To]
	}

	children := childrenOf(forest)
	out := make([]gfkit.NodeId, 0, forest.NumTrees())
	for _, root := range forest.Roots() {
		out = append(out, lcaInTree(children, counts, root, target))
	}
	return out
}

// lcaInTree finds, within one tree rooted at root, the unique minimal node
// whose subtree-below count equals target. Because counts are already
// fully accumulated, this is a single top-down descent following whichever
// child still carries the full count.
func lcaInTree(children map[gfkit.NodeId][]gfkit.NodeId, counts []uint32, root gfkit.NodeId, target uint32) gfkit.NodeId {
	node := root
	for {
		if counts[node] != target {
			return gfkit.InvalidNodeId
		}
		next := gfkit.InvalidNodeId
		for _, c := range children[node] {
			if counts[c] == target {
				next = c
				break
			}
		}
		if next == gfkit.InvalidNodeId {
			return node
		}
		node = next
	}
}

func childrenOf(forest *Forest) map[gfkit.NodeId][]gfkit.NodeId {
	m := make(map[gfkit.NodeId][]gfkit.NodeId)
	for _, e := range forest.Graph.Edges() {
		m[e.From] = append(m[e.From], e.To)
	}
	return m
}
