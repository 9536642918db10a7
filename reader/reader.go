// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package reader defines the external tree-sequence reader interface the
// forest compressors consume, plus an in-memory Fixture implementation used
// by tests. Parsing a real tskit file is out of core scope; any adapter
// satisfying TreeSequence can be fed directly to dag.Compress or bp.Compress.
package reader

import "github.com/sfkit/gfkit"

// TsNodeId identifies a node in the caller's original tree-sequence
// numbering, distinct from the compressed forest's gfkit.NodeId space.
type TsNodeId uint32

// MutationRecord is one mutation as delivered by the reader, sorted by
// site across the whole sequence.
type MutationRecord struct {
	Site           gfkit.SiteId
	Node           TsNodeId
	DerivedState   gfkit.AllelicState
	ParentMutation gfkit.MutationId
	HasParent      bool
}

// SiteRecord is one site's ancestral state.
type SiteRecord struct {
	AncestralState gfkit.AllelicState
}

// TreeCursor walks one tree of the sequence in postorder.
type TreeCursor interface {
	TreeId() gfkit.TreeId
	First()
	Next() bool
	IsValid() bool
	Postorder() []TsNodeId
	Children(node TsNodeId) []TsNodeId
	IsRoot(node TsNodeId) bool
	IsSample(node TsNodeId) bool
}

// TreeSequence is the external tree-sequence reader the core consumes. The
// core assumes sample ids are 0..NumSamples-1; SampleIDsConsecutive reports
// whether that holds, and a reader violating it is a fatal input error.
type TreeSequence interface {
	NumSamples() uint32
	NumTrees() uint32
	NumSites() uint32
	NumMutations() uint32
	SampleIDsConsecutive() bool

	Trees() []TreeCursor
	Sites() []SiteRecord
	Mutations() []MutationRecord
}
