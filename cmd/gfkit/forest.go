// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package main

import (
	"math/rand/v2"

	"github.com/pkg/errors"
	"github.com/sfkit/gfkit"
	"github.com/sfkit/gfkit/internal/config"
	"github.com/sfkit/gfkit/succinct"
)

// compressedForest is the subset of succinct.Forest[F]'s method set every
// subcommand after compress/load needs. Both succinct.Forest[*dag.Forest]
// and succinct.Forest[*bp.Forest] satisfy it without either concrete
// instantiation needing to know about this package.
type compressedForest interface {
	NumNodes() gfkit.NodeId
	NumSamples() gfkit.SampleId
	NumTrees() gfkit.TreeId
	NumUniqueSubtrees() gfkit.NodeId
	AllSamples() *gfkit.SampleSet
	Diversity(set *gfkit.SampleSet) float64
	NumSegregatingSites(set *gfkit.SampleSet) gfkit.SiteId
	TajimasD(set *gfkit.SampleSet) float64
	AlleleFrequencySpectrum(set *gfkit.SampleSet) []gfkit.SiteId
	Save(path string) error
}

// loadOrCompress produces a compressedForest from cfg: compress a fresh
// tree sequence if --input-file is set, otherwise load a previously-saved
// DAG (--file) or BP (--bp) encoded forest.
func loadOrCompress(cfg *config.Config) (compressedForest, error) {
	switch {
	case cfg.InputFile != "":
		ts, err := loadTreeSequence(cfg.InputFile)
		if err != nil {
			return nil, err
		}
		if cfg.BPOutputFile != "" && cfg.DAGOutputFile == "" {
			return succinct.NewBP(ts)
		}
		return succinct.NewDAG(ts)
	case cfg.DAGOutputFile != "":
		return succinct.LoadDAG(cfg.DAGOutputFile)
	case cfg.BPOutputFile != "":
		return succinct.LoadBP(cfg.BPOutputFile)
	default:
		return nil, errors.New("cmd/gfkit: specify --input-file to compress, or --file/--bp to load a saved forest")
	}
}

// pickSampleSet returns all samples when size is 0 or exceeds the forest's
// sample count, otherwise a uniformly-drawn random subset of that size.
func pickSampleSet(f compressedForest, size uint32) *gfkit.SampleSet {
	all := f.AllSamples()
	if size == 0 || size >= uint32(f.NumSamples()) {
		return all
	}

	members := all.All()
	rand.Shuffle(len(members), func(i, j int) { members[i], members[j] = members[j], members[i] })

	set := gfkit.NewSampleSet(uint(f.NumSamples()))
	set.AddAll(members[:size]...)
	return set
}
