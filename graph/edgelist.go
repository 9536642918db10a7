// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package graph implements EdgeListGraph, a post-ordered list of directed
// parent->child edges with root/leaf sets, a traversal-order tag, and the
// property checks that verify those tags hold.
package graph

import (
	"slices"

	"github.com/sfkit/gfkit"
)

// TraversalOrder tags the order in which a graph's edges were produced.
type TraversalOrder uint8

const (
	Unordered TraversalOrder = iota
	Preorder
	Inorder
	Postorder
	Levelorder
)

// Edge is one directed edge of an EdgeListGraph, parent -> child.
type Edge struct {
	From, To gfkit.NodeId
}

// SortBy names the endpoint edges are sorted by in SortEdges.
type SortBy uint8

const (
	SortByFrom SortBy = iota
	SortByTo
)

// EdgeListGraph is a directed graph stored as a flat edge list, plus the
// sets of root and leaf node ids and the total node count. Nodes are dense
// integer indices; there are no interior pointers.
type EdgeListGraph struct {
	edges   []Edge
	roots   []gfkit.NodeId
	leaves  []gfkit.NodeId
	numNodes gfkit.NodeId
	numNodesSet bool
	order   TraversalOrder
}

// New returns an empty EdgeListGraph tagged with the given traversal order.
func New(order TraversalOrder) *EdgeListGraph {
	return &EdgeListGraph{order: order}
}

// InsertEdge appends one edge to the list.
func (g *EdgeListGraph) InsertEdge(from, to gfkit.NodeId) {
	g.edges = append(g.edges, Edge{From: from, To: to})
}

// InsertRoot records a tree root. Roots are not required to be unique
// across distinct trees at insertion time; uniqueness is checked lazily by
// callers that rely on it, per the original's assertion discipline.
func (g *EdgeListGraph) InsertRoot(root gfkit.NodeId) {
	g.roots = append(g.roots, root)
}

// InsertLeaf records a leaf (sample) node.
func (g *EdgeListGraph) InsertLeaf(leaf gfkit.NodeId) {
	g.leaves = append(g.leaves, leaf)
}

// Edges returns the edge list in its current order.
func (g *EdgeListGraph) Edges() []Edge { return g.edges }

// NumEdges returns the number of edges.
func (g *EdgeListGraph) NumEdges() gfkit.EdgeId { return gfkit.EdgeId(len(g.edges)) }

// Roots returns the root node ids, one per tree.
func (g *EdgeListGraph) Roots() []gfkit.NodeId { return g.roots }

// NumRoots returns the number of trees (one root per tree, duplicates
// allowed when two trees are identical).
func (g *EdgeListGraph) NumRoots() gfkit.NodeId { return gfkit.NodeId(len(g.roots)) }

// NumTrees is an alias for NumRoots.
func (g *EdgeListGraph) NumTrees() gfkit.TreeId { return gfkit.TreeId(len(g.roots)) }

// Leaves returns the leaf (sample) node ids.
func (g *EdgeListGraph) Leaves() []gfkit.NodeId { return g.leaves }

// NumLeaves returns the number of leaves, i.e. samples.
func (g *EdgeListGraph) NumLeaves() gfkit.SampleId { return gfkit.SampleId(len(g.leaves)) }

// Directed always returns true: edges flow parent -> child only.
func (g *EdgeListGraph) Directed() bool { return true }

// TraversalOrder returns the current traversal-order tag.
func (g *EdgeListGraph) TraversalOrder() TraversalOrder { return g.order }

// SetTraversalOrder overwrites the traversal-order tag.
func (g *EdgeListGraph) SetTraversalOrder(order TraversalOrder) { g.order = order }

// IsPostorder reports whether the graph is tagged Postorder.
func (g *EdgeListGraph) IsPostorder() bool { return g.order == Postorder }

// SetNumNodes fixes the total node count. It is a contract violation to set
// it twice.
func (g *EdgeListGraph) SetNumNodes(n gfkit.NodeId) {
	if g.numNodesSet {
		panic("graph: number of nodes is already set")
	}
	g.numNodes = n
	g.numNodesSet = true
}

// NumNodes returns the total node count. It is a contract violation to call
// this before SetNumNodes or ComputeNumNodes.
func (g *EdgeListGraph) NumNodes() gfkit.NodeId {
	if !g.numNodesSet {
		panic("graph: number of nodes is not set")
	}
	return g.numNodes
}

// ComputeNumNodes recomputes the node count as the size of the set of
// distinct endpoints across edges, roots and leaves. O(edges); intended for
// tests and small graphs only, per the property it verifies (testable
// property 8: ComputeNumNodes equals the number of distinct endpoints).
func (g *EdgeListGraph) ComputeNumNodes() {
	seen := make(map[gfkit.NodeId]struct{}, 2*len(g.leaves)+len(g.roots))
	for _, e := range g.edges {
		seen[e.From] = struct{}{}
		seen[e.To] = struct{}{}
	}
	for _, r := range g.roots {
		seen[r] = struct{}{}
	}
	for _, l := range g.leaves {
		seen[l] = struct{}{}
	}
	g.numNodes = gfkit.NodeId(len(seen))
	g.numNodesSet = true
}

// IsLeaf reports whether node is registered as a leaf. O(leaves); intended
// for small leaf sets or tests, callers on a hot path should precompute a
// set instead.
func (g *EdgeListGraph) IsLeaf(node gfkit.NodeId) bool {
	for _, l := range g.leaves {
		if l == node {
			return true
		}
	}
	return false
}

// UniqueRoots reports whether every root id occurs exactly once.
func (g *EdgeListGraph) UniqueRoots() bool { return unique(g.roots) }

// UniqueLeaves reports whether every leaf id occurs exactly once.
func (g *EdgeListGraph) UniqueLeaves() bool { return unique(g.leaves) }

func unique(ids []gfkit.NodeId) bool {
	seen := make(map[gfkit.NodeId]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return false
		}
		seen[id] = struct{}{}
	}
	return true
}

// CheckPostorder is the testable property from spec.md 4.3: mark every leaf
// visited, then for each edge in order require that To was already visited
// before marking From visited, and finally require every root and every
// node id below NumNodes visited. It returns false when the node count was
// never set. It is a property check, not a runtime requirement on queries.
func (g *EdgeListGraph) CheckPostorder() bool {
	if !g.numNodesSet {
		return false
	}
	visited := make([]bool, g.numNodes)
	for _, l := range g.leaves {
		visited[l] = true
	}
	for _, e := range g.edges {
		if !visited[e.To] {
			return false
		}
		visited[e.From] = true
	}
	for _, r := range g.roots {
		if !visited[r] {
			return false
		}
	}
	for _, v := range visited {
		if !v {
			return false
		}
	}
	return true
}

// SortEdges reorders the edges by the given comparator and retags the
// traversal order (sorting loses traversal-order status unless the caller
// passes back a meaningful order).
func (g *EdgeListGraph) SortEdges(less func(a, b Edge) bool, order TraversalOrder) {
	g.order = order
	slices.SortFunc(g.edges, func(a, b Edge) int {
		switch {
		case less(a, b):
			return -1
		case less(b, a):
			return 1
		default:
			return 0
		}
	})
}

// SortEdgesBy sorts edges by the named endpoint, tagging the result
// Unordered (per spec.md 4.3: sorting loses traversal-order status).
func (g *EdgeListGraph) SortEdgesBy(by SortBy) {
	switch by {
	case SortByFrom:
		g.SortEdges(func(a, b Edge) bool { return a.From < b.From }, Unordered)
	case SortByTo:
		g.SortEdges(func(a, b Edge) bool { return a.To < b.To }, Unordered)
	default:
		panic("graph: invalid SortBy value")
	}
}

// EdgesSortedBy reports whether edges are currently sorted by the named
// endpoint.
func (g *EdgeListGraph) EdgesSortedBy(by SortBy) bool {
	switch by {
	case SortByFrom:
		for i := 1; i < len(g.edges); i++ {
			if g.edges[i-1].From > g.edges[i].From {
				return false
			}
		}
	case SortByTo:
		for i := 1; i < len(g.edges); i++ {
			if g.edges[i-1].To > g.edges[i].To {
				return false
			}
		}
	default:
		panic("graph: invalid SortBy value")
	}
	return true
}
