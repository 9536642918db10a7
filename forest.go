// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package gfkit

// Forest is the capability set every compressed forest encoding exposes,
// per spec.md §9: both dag.Forest and bp.Forest satisfy it without either
// package needing to know about the other. It is the type constraint the
// generic query-API wrapper (package succinct) dispatches over at compile
// time.
type Forest interface {
	NumNodes() NodeId
	NumSamples() SampleId
	NumTrees() TreeId
	NumUniqueSubtrees() NodeId
	AllSamples() *SampleSet
	IsSample(NodeId) bool
}
