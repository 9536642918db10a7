// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package gfkit compresses tree sequences into a DAG or balanced-parenthesis
// encoding and answers population-genetics queries directly over the
// compressed representation, without ever decompressing it.
//
// The core pipeline is: an external tree-sequence reader feeds a forest
// compressor (package dag or package bp), which drives subtree hashing
// (internal/hash) and a hash-to-id map (internal/idmap) to build either a
// dag.Forest or a bp.Forest while interleaving a sequence.Store. Queries run
// a streaming NumSamplesBelow pass over the finished forest, fold the result
// into freq.Cursor allele frequencies, and summarize those with the stats
// package's closed-form accumulators. The succinct.Forest wrapper (package
// succinct) ties a built forest, its sequence store and its NumSamplesBelow
// results together behind one produced/query API, constructed from a
// reader.TreeSequence or a file read by serialize.LoadDAG/LoadBP.
package gfkit

// SampleId identifies a leaf of the tree sequence that corresponds to an
// observed, sequenced individual. Sample ids are 0..NumSamples-1.
type SampleId uint32

// NodeId identifies a node of a compressed forest (DAG or BP). Node ids are
// dense: assigned consecutively as distinct subtrees are discovered.
type NodeId uint32

// EdgeId identifies a directed edge of an EdgeListGraph.
type EdgeId uint32

// TreeId identifies one tree (one root) of a tree sequence.
type TreeId uint32

// SiteId identifies a genomic site.
type SiteId uint32

// MutationId identifies a single mutation record.
type MutationId uint32

// SampleSetId names one of the (at most 4) sample sets tracked together by a
// single NumSamplesBelow pass.
type SampleSetId uint8

// InvalidNodeId is the sentinel value for "no node", the maximum
// representable NodeId.
const InvalidNodeId NodeId = ^NodeId(0)

// AllelicState is a one-byte genotype state: either a nucleotide (A/C/G/T)
// or a small integer index into a site's observed-state alphabet.
type AllelicState byte

// MaxSampleSets is the largest N for which NumSamplesBelow can track N
// independent sample sets in one streaming pass (spec: N in {1,2,3,4}).
const MaxSampleSets = 4
