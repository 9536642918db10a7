// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package reader

import "github.com/sfkit/gfkit"

// Fixture is a small in-memory TreeSequence used by tests to encode literal
// tree/mutation data without a tskit dependency.
type Fixture struct {
	numSamples uint32
	trees      []*FixtureTree
	sites      []SiteRecord
	mutations  []MutationRecord
}

// FixtureTree is one tree of a Fixture, given as an explicit postorder node
// list plus a children/root/sample classification.
type FixtureTree struct {
	id        gfkit.TreeId
	postorder []TsNodeId
	children  map[TsNodeId][]TsNodeId
	roots     map[TsNodeId]bool
	samples   map[TsNodeId]bool
}

// NewFixture returns an empty fixture over numSamples samples (ids
// 0..numSamples-1).
func NewFixture(numSamples uint32) *Fixture {
	return &Fixture{numSamples: numSamples}
}

// AddTree appends one tree, given in postorder (children before parents).
// children maps a node to its ordered child list; roots/samples classify
// nodes.
func (f *Fixture) AddTree(postorder []TsNodeId, children map[TsNodeId][]TsNodeId, roots, samples []TsNodeId) *FixtureTree {
	t := &FixtureTree{
		id:        gfkit.TreeId(len(f.trees)),
		postorder: postorder,
		children:  children,
		roots:     toSet(roots),
		samples:   toSet(samples),
	}
	f.trees = append(f.trees, t)
	return t
}

func toSet(ids []TsNodeId) map[TsNodeId]bool {
	m := make(map[TsNodeId]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}

// SetSites installs the per-site ancestral states.
func (f *Fixture) SetSites(sites []SiteRecord) { f.sites = sites }

// AddMutation appends one mutation record. Mutations must be added sorted
// by site to match the reader contract.
func (f *Fixture) AddMutation(m MutationRecord) { f.mutations = append(f.mutations, m) }

func (f *Fixture) NumSamples() uint32         { return f.numSamples }
func (f *Fixture) NumTrees() uint32           { return uint32(len(f.trees)) }
func (f *Fixture) NumSites() uint32           { return uint32(len(f.sites)) }
func (f *Fixture) NumMutations() uint32       { return uint32(len(f.mutations)) }
func (f *Fixture) SampleIDsConsecutive() bool { return true }
func (f *Fixture) Sites() []SiteRecord        { return f.sites }
func (f *Fixture) Mutations() []MutationRecord { return f.mutations }

func (f *Fixture) Trees() []TreeCursor {
	cursors := make([]TreeCursor, len(f.trees))
	for i, t := range f.trees {
		cursors[i] = &fixtureCursor{tree: t}
	}
	return cursors
}

// fixtureCursor adapts a FixtureTree to TreeCursor.
type fixtureCursor struct {
	tree *FixtureTree
	pos  int
}

func (c *fixtureCursor) TreeId() gfkit.TreeId { return c.tree.id }
func (c *fixtureCursor) First()               { c.pos = 0 }
func (c *fixtureCursor) Next() bool {
	c.pos++
	return c.pos < len(c.tree.postorder)
}
func (c *fixtureCursor) IsValid() bool { return c.pos < len(c.tree.postorder) }

func (c *fixtureCursor) Postorder() []TsNodeId { return c.tree.postorder }

func (c *fixtureCursor) Children(node TsNodeId) []TsNodeId { return c.tree.children[node] }
func (c *fixtureCursor) IsRoot(node TsNodeId) bool         { return c.tree.roots[node] }
func (c *fixtureCursor) IsSample(node TsNodeId) bool       { return c.tree.samples[node] }
