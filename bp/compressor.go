// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package bp

import (
	"github.com/pkg/errors"
	"github.com/sfkit/gfkit"
	"github.com/sfkit/gfkit/internal/bitset"
	"github.com/sfkit/gfkit/internal/hash"
	"github.com/sfkit/gfkit/internal/idmap"
	"github.com/sfkit/gfkit/internal/xlog"
	"github.com/sfkit/gfkit/reader"
	"github.com/sfkit/gfkit/sequence"
)

// Mapper translates tree-sequence node ids to sf-node ids for the current
// tree, built while walking it.
type Mapper struct {
	toSf map[reader.TsNodeId]gfkit.NodeId
}

// At returns the sf-node id a ts-node maps to in the current tree.
func (m *Mapper) At(ts reader.TsNodeId) (gfkit.NodeId, error) {
	id, ok := m.toSf[ts]
	if !ok {
		return 0, errors.Errorf("bp: ts node %d has no sf mapping in this tree", ts)
	}
	return id, nil
}

// subtreeRef records where an already-committed subtree lives in the bp
// axis and which node id it resolves to, so a later repeat can roll back
// and emit a back-reference instead of re-encoding it.
type subtreeRef struct {
	start, length int
	nodeId        gfkit.NodeId
}

// subtreeStart is the saved cursor state at the moment a subtree was
// opened, so rollback can restore every structure to exactly that point.
type subtreeStart struct {
	bp, refs, leaves int
}

// builder accumulates the five BP structures for one Compress call.
type builder struct {
	bp     bitset.BitSet
	isLeaf bitset.BitSet
	isRef  bitset.BitSet
	length int

	leaves     []gfkit.NodeId
	references []gfkit.NodeId

	starts   []subtreeStart
	subtrees map[hash.SubtreeHash]subtreeRef
	ids      *idmap.Map
}

func (b *builder) openSubtree(sampleId *uint32) {
	b.starts = append(b.starts, subtreeStart{bp: b.length, refs: len(b.references), leaves: len(b.leaves)})
	b.bp.Set(uint(b.length))
	b.length++
	if sampleId != nil {
		b.isLeaf.Set(uint(b.length - 1))
		b.leaves = append(b.leaves, gfkit.NodeId(*sampleId))
	}
}

func (b *builder) closeAndCommit(h hash.SubtreeHash, isLeaf bool) (gfkit.NodeId, error) {
	// bp bit at this position stays 0 (close), nothing to Set.
	if isLeaf {
		b.isLeaf.Set(uint(b.length))
	}
	b.length++

	var nodeId gfkit.NodeId
	if isLeaf {
		id, ok := b.ids.Find(h)
		if !ok {
			return 0, errors.New("bp: leaf hash not pre-registered")
		}
		nodeId = gfkit.NodeId(id)
	} else {
		id, err := b.ids.InsertNode(h)
		if err != nil {
			return 0, errors.Wrap(err, "bp: committing inner subtree")
		}
		nodeId = gfkit.NodeId(id)
	}

	start := b.starts[len(b.starts)-1].bp
	b.starts = b.starts[:len(b.starts)-1]
	b.subtrees[h] = subtreeRef{start: start, length: b.length - start, nodeId: nodeId}
	return nodeId, nil
}

func (b *builder) rollback() {
	s := b.starts[len(b.starts)-1]
	b.starts = b.starts[:len(b.starts)-1]
	// Clear every bit written since the subtree was opened: a position that
	// was never explicitly Set (a closing paren, a non-leaf, a non-ref)
	// already reads 0, but any 1 bit written for this subtree must be
	// cleared explicitly or it would leak into whatever gets written at the
	// same index afterwards.
	for i := s.bp; i < b.length; i++ {
		b.bp.Clear(uint(i))
		b.isLeaf.Clear(uint(i))
		b.isRef.Clear(uint(i))
	}
	b.length = s.bp
	b.references = b.references[:s.refs]
	b.leaves = b.leaves[:s.leaves]
}

func (b *builder) referTo(nodeId gfkit.NodeId) {
	b.isRef.Set(uint(b.length))
	b.bp.Set(uint(b.length))
	b.length++
	b.isRef.Set(uint(b.length))
	b.length++
	b.references = append(b.references, nodeId)
}

// Compress drives the full C8-BP algorithm: an Eulerian walk of each input
// tree that either commits a freshly-seen subtree or rolls back and emits a
// two-character back-reference to a subtree seen before, per spec.md 4.5.
// Mutations are handed to package sequence's Factory (C9) one tree at a
// time, as each tree's Mapper becomes available, and the populated Store is
// returned alongside the Forest.
func Compress(ts reader.TreeSequence) (*Forest, *sequence.Store, error) {
	if !ts.SampleIDsConsecutive() {
		return nil, nil, gfkit.ErrNonConsecutiveSamples
	}

	numSamples := ts.NumSamples()
	b := &builder{
		ids:      idmap.New(),
		subtrees: make(map[hash.SubtreeHash]subtreeRef),
	}

	seq := sequence.NewStore(int(ts.NumSites()), int(ts.NumMutations()))
	factory := sequence.NewFactory(ts, seq)

	for s := uint32(0); s < numSamples; s++ {
		h := hash.HashSample(s)
		id, err := b.ids.InsertNode(h)
		if err != nil {
			return nil, nil, errors.Wrap(gfkit.ErrDuplicateLeaf, err.Error())
		}
		if id != s {
			return nil, nil, errors.Wrapf(gfkit.ErrNonConsecutiveSamples, "sample %d got sf id %d", s, id)
		}
	}

	hasher := hash.NewHasher()

	for _, tree := range ts.Trees() {
		mapper := &Mapper{toSf: make(map[reader.TsNodeId]gfkit.NodeId)}

		var roots []reader.TsNodeId
		for _, n := range tree.Postorder() {
			if tree.IsRoot(n) {
				roots = append(roots, n)
			}
		}

		// walk performs the true Euler tour: an inner node's opening paren is
		// written before its children are visited and its closing paren
		// after, so a rollback (on a repeat) discards the node's entire
		// span, children included, collapsing it to one two-character
		// back-reference. A sample either refers directly to its one and
		// only prior encoding (from tree 0's first occurrence) or, the very
		// first time any tree visits it, opens and commits on the spot.
		var walk func(node reader.TsNodeId) (hash.SubtreeHash, error)
		walk = func(node reader.TsNodeId) (hash.SubtreeHash, error) {
			if tree.IsSample(node) {
				id := uint32(node)
				h := hash.HashSample(id)

				if ref, found := b.subtrees[h]; found {
					b.referTo(ref.nodeId)
					mapper.toSf[node] = ref.nodeId
					return h, nil
				}

				b.openSubtree(&id)
				nodeId, err := b.closeAndCommit(h, true)
				if err != nil {
					return hash.SubtreeHash{}, err
				}
				mapper.toSf[node] = nodeId
				return h, nil
			}

			b.openSubtree(nil)

			children := tree.Children(node)
			childHashes := make([]hash.SubtreeHash, 0, len(children))
			for _, c := range children {
				ch, err := walk(c)
				if err != nil {
					return hash.SubtreeHash{}, err
				}
				childHashes = append(childHashes, ch)
			}
			hasher.Reset()
			for _, ch := range childHashes {
				hasher.AppendChild(ch)
			}
			h := hasher.Finish()

			if ref, found := b.subtrees[h]; found {
				b.rollback()
				b.referTo(ref.nodeId)
				mapper.toSf[node] = ref.nodeId
				return h, nil
			}

			nodeId, err := b.closeAndCommit(h, false)
			if err != nil {
				return hash.SubtreeHash{}, err
			}
			mapper.toSf[node] = nodeId
			return h, nil
		}

		for _, root := range roots {
			if _, err := walk(root); err != nil {
				return nil, nil, err
			}
		}

		if err := factory.ProcessMutations(tree.TreeId(), mapper.At); err != nil {
			return nil, nil, err
		}
	}

	factory.Finalize()

	f := &Forest{
		bp:         b.bp,
		isLeaf:     b.isLeaf,
		isRef:      b.isRef,
		length:     b.length,
		leaves:     b.leaves,
		references: b.references,
		numNodes:   gfkit.NodeId(b.ids.NumNodes()),
		numSamples: gfkit.SampleId(numSamples),
		numTrees:   gfkit.TreeId(len(ts.Trees())),
	}

	xlog.Logger.Info().
		Uint32("trees", ts.NumTrees()).
		Uint32("nodes", b.ids.NumNodes()).
		Int("bp_length", f.length).
		Msg("bp compression complete")

	return f, seq, nil
}
