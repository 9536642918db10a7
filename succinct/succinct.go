// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package succinct implements the produced/query API of spec.md §6: a
// Forest[F] wrapper that ties a compressed forest (dag.Forest or bp.Forest)
// to its sequence store and exposes AlleleFrequencies, the stats package's
// closed-form accumulators, and LCA through one type, instead of making
// callers hand-assemble a compressor, a NumSamplesBelow pass and a stats
// call themselves.
//
// Forest[F] cannot live in the root gfkit package: dag, bp, sequence, freq
// and stats all import gfkit for its shared id types, so gfkit importing
// any of them back would be a cycle. NewDAG/NewBP below pick the
// encoding-specific dag/bp code at compile time (the call site decides,
// never a runtime type switch on F); only the accessor/LCA plumbing they
// wire up is hidden behind closures, so Forest[F] itself stays free of any
// per-encoding branching.
package succinct

import (
	"github.com/sfkit/gfkit"
	"github.com/sfkit/gfkit/bp"
	"github.com/sfkit/gfkit/dag"
	"github.com/sfkit/gfkit/freq"
	"github.com/sfkit/gfkit/reader"
	"github.com/sfkit/gfkit/sequence"
	"github.com/sfkit/gfkit/serialize"
	"github.com/sfkit/gfkit/stats"
)

// Forest is the produced query API over a compressed forest of encoding F.
// Construct one with NewDAG, NewBP, LoadDAG or LoadBP.
type Forest[F gfkit.Forest] struct {
	forest F
	seq    *sequence.Store

	computeOne  func(set *gfkit.SampleSet) gfkit.SamplesBelowAccessor
	computeMany func(sets ...*gfkit.SampleSet) []gfkit.SamplesBelowAccessor
	lca         func(set *gfkit.SampleSet) []gfkit.NodeId
	save        func(path string) error
}

// Save writes the compressed forest and its sequence store to path in the
// magic/version-framed on-disk format of spec.md §4.10/§6.
func (f *Forest[F]) Save(path string) error {
	return f.save(path)
}

// NumNodes, NumSamples, NumTrees and NumUniqueSubtrees proxy straight to
// the wrapped forest.
func (f *Forest[F]) NumNodes() gfkit.NodeId          { return f.forest.NumNodes() }
func (f *Forest[F]) NumSamples() gfkit.SampleId      { return f.forest.NumSamples() }
func (f *Forest[F]) NumTrees() gfkit.TreeId          { return f.forest.NumTrees() }
func (f *Forest[F]) NumUniqueSubtrees() gfkit.NodeId { return f.forest.NumUniqueSubtrees() }
func (f *Forest[F]) AllSamples() *gfkit.SampleSet    { return f.forest.AllSamples() }
func (f *Forest[F]) IsSample(n gfkit.NodeId) bool    { return f.forest.IsSample(n) }

// NumSites returns the number of genomic sites in the backing sequence
// store.
func (f *Forest[F]) NumSites() int { return f.seq.NumSites() }

// NumMutations returns the number of mutations in the backing sequence
// store.
func (f *Forest[F]) NumMutations() int { return f.seq.NumMutations() }

// AlleleFrequencies returns a freq.Cursor walking every site's allele
// frequency within set.
func (f *Forest[F]) AlleleFrequencies(set *gfkit.SampleSet) *freq.Cursor {
	acc := f.computeOne(set)
	return freq.NewCursor(f.seq, acc, gfkit.SampleId(set.Popcount()))
}

// Diversity is pi over set (spec.md 4.9).
func (f *Forest[F]) Diversity(set *gfkit.SampleSet) float64 {
	acc := f.computeOne(set)
	return stats.Diversity(f.seq, acc, gfkit.SampleId(set.Popcount()))
}

// NumSegregatingSites counts set's polymorphic sites (spec.md 4.9).
func (f *Forest[F]) NumSegregatingSites(set *gfkit.SampleSet) gfkit.SiteId {
	acc := f.computeOne(set)
	return stats.NumSegregatingSites(f.seq, acc, gfkit.SampleId(set.Popcount()))
}

// TajimasD over set (spec.md 4.9).
func (f *Forest[F]) TajimasD(set *gfkit.SampleSet) float64 {
	acc := f.computeOne(set)
	return stats.TajimasD(f.seq, acc, gfkit.SampleId(set.Popcount()))
}

// AlleleFrequencySpectrum over set (spec.md 4.9).
func (f *Forest[F]) AlleleFrequencySpectrum(set *gfkit.SampleSet) []gfkit.SiteId {
	acc := f.computeOne(set)
	return stats.AlleleFrequencySpectrum(f.seq, acc, gfkit.SampleId(set.Popcount()))
}

// Divergence between a and b (spec.md 4.9). Both sets are tracked in one
// NumSamplesBelow pass.
func (f *Forest[F]) Divergence(a, b *gfkit.SampleSet) float64 {
	accs := f.computeMany(a, b)
	return stats.Divergence(f.seq, stats.Set(accs[0], gfkit.SampleId(a.Popcount())), stats.Set(accs[1], gfkit.SampleId(b.Popcount())))
}

// Fst between a and b over a genome of length seqLen (spec.md 4.9).
func (f *Forest[F]) Fst(seqLen gfkit.SiteId, a, b *gfkit.SampleSet) float64 {
	accs := f.computeMany(a, b)
	return stats.Fst(f.seq, seqLen, stats.Set(accs[0], gfkit.SampleId(a.Popcount())), stats.Set(accs[1], gfkit.SampleId(b.Popcount())))
}

// F2 is Patterson's F2 estimator over a, b (spec.md 4.9).
func (f *Forest[F]) F2(a, b *gfkit.SampleSet) float64 {
	accs := f.computeMany(a, b)
	return stats.F2(f.seq, stats.Set(accs[0], gfkit.SampleId(a.Popcount())), stats.Set(accs[1], gfkit.SampleId(b.Popcount())))
}

// F3 is Patterson's F3 estimator over a, b, c.
func (f *Forest[F]) F3(a, b, c *gfkit.SampleSet) float64 {
	accs := f.computeMany(a, b, c)
	return stats.F3(f.seq,
		stats.Set(accs[0], gfkit.SampleId(a.Popcount())),
		stats.Set(accs[1], gfkit.SampleId(b.Popcount())),
		stats.Set(accs[2], gfkit.SampleId(c.Popcount())))
}

// F4 is Patterson's F4 estimator over a, b, c, d.
func (f *Forest[F]) F4(a, b, c, d *gfkit.SampleSet) float64 {
	accs := f.computeMany(a, b, c, d)
	return stats.F4(f.seq,
		stats.Set(accs[0], gfkit.SampleId(a.Popcount())),
		stats.Set(accs[1], gfkit.SampleId(b.Popcount())),
		stats.Set(accs[2], gfkit.SampleId(c.Popcount())),
		stats.Set(accs[3], gfkit.SampleId(d.Popcount())))
}

// LCA returns, per tree, the lowest common ancestor of set's samples. Only
// defined over the DAG encoding; a BP-backed Forest returns
// gfkit.ErrLCAOnBP, per spec.md 4.9/7.
func (f *Forest[F]) LCA(set *gfkit.SampleSet) ([]gfkit.NodeId, error) {
	if f.lca == nil {
		return nil, gfkit.ErrLCAOnBP
	}
	return f.lca(set), nil
}

// NewDAG compresses ts into a DAG-encoded Forest.
func NewDAG(ts reader.TreeSequence) (*Forest[*dag.Forest], error) {
	forest, seq, err := dag.Compress(ts)
	if err != nil {
		return nil, err
	}
	return wrapDAG(forest, seq), nil
}

// NewBP compresses ts into a BP-encoded Forest.
func NewBP(ts reader.TreeSequence) (*Forest[*bp.Forest], error) {
	forest, seq, err := bp.Compress(ts)
	if err != nil {
		return nil, err
	}
	return wrapBP(forest, seq), nil
}

// LoadDAG loads a DAG-encoded Forest previously saved with (*Forest[*dag.Forest]).Save.
func LoadDAG(path string) (*Forest[*dag.Forest], error) {
	forest, seq, err := serialize.LoadDAG(path)
	if err != nil {
		return nil, err
	}
	return wrapDAG(forest, seq), nil
}

// LoadBP loads a BP-encoded Forest previously saved with (*Forest[*bp.Forest]).Save.
func LoadBP(path string) (*Forest[*bp.Forest], error) {
	forest, seq, err := serialize.LoadBP(path)
	if err != nil {
		return nil, err
	}
	return wrapBP(forest, seq), nil
}

func wrapDAG(forest *dag.Forest, seq *sequence.Store) *Forest[*dag.Forest] {
	return &Forest[*dag.Forest]{
		forest: forest,
		seq:    seq,
		computeOne: func(set *gfkit.SampleSet) gfkit.SamplesBelowAccessor {
			return dag.Compute(forest, set).Accessor(0)
		},
		computeMany: func(sets ...*gfkit.SampleSet) []gfkit.SamplesBelowAccessor {
			nb := dag.Compute(forest, sets...)
			accs := make([]gfkit.SamplesBelowAccessor, len(sets))
			for i := range sets {
				accs[i] = nb.Accessor(i)
			}
			return accs
		},
		lca: func(set *gfkit.SampleSet) []gfkit.NodeId {
			return dag.LCA(forest, set)
		},
		save: func(path string) error {
			return serialize.SaveDAG(path, forest, seq)
		},
	}
}

func wrapBP(forest *bp.Forest, seq *sequence.Store) *Forest[*bp.Forest] {
	return &Forest[*bp.Forest]{
		forest: forest,
		seq:    seq,
		computeOne: func(set *gfkit.SampleSet) gfkit.SamplesBelowAccessor {
			return bp.Compute(forest, set).Accessor(0)
		},
		computeMany: func(sets ...*gfkit.SampleSet) []gfkit.SamplesBelowAccessor {
			nb := bp.Compute(forest, sets...)
			accs := make([]gfkit.SamplesBelowAccessor, len(sets))
			for i := range sets {
				accs[i] = nb.Accessor(i)
			}
			return accs
		},
		// lca stays nil: LCA is undefined on the BP encoding.
		save: func(path string) error {
			return serialize.SaveBP(path, forest, seq)
		},
	}
}
