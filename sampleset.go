// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package gfkit

import "github.com/sfkit/gfkit/internal/bitset"

// SampleSet is a compact bit-map over a fixed domain of SampleIds,
// 0..domain-1. Two SampleSets built over different domains must never be
// combined; the zero value is not usable, use NewSampleSet.
type SampleSet struct {
	bits   bitset.BitSet
	domain uint
}

// NewSampleSet returns an empty SampleSet over the given domain size (the
// dataset's number of samples).
func NewSampleSet(domain uint) *SampleSet {
	return &SampleSet{domain: domain}
}

// Domain returns the fixed domain size this set was constructed with.
func (s *SampleSet) Domain() uint {
	return s.domain
}

// Add inserts one sample into the set.
func (s *SampleSet) Add(id SampleId) {
	s.bits.Set(uint(id))
}

// AddAll inserts many samples into the set.
func (s *SampleSet) AddAll(ids ...SampleId) {
	for _, id := range ids {
		s.Add(id)
	}
}

// Remove deletes one sample from the set.
func (s *SampleSet) Remove(id SampleId) {
	s.bits.Clear(uint(id))
}

// Clear empties the set without changing its domain.
func (s *SampleSet) Clear() {
	s.bits = nil
}

// Contains reports whether id is a member of the set.
func (s *SampleSet) Contains(id SampleId) bool {
	return s.bits.Test(uint(id))
}

// Popcount returns the number of samples in the set.
func (s *SampleSet) Popcount() int {
	return s.bits.Count()
}

// All iterates the set's members in ascending SampleId order.
func (s *SampleSet) All() []SampleId {
	out := make([]SampleId, 0, s.Popcount())
	for v, ok := s.bits.NextSet(0); ok; v, ok = s.bits.NextSet(v + 1) {
		out = append(out, SampleId(v))
		if v == ^uint(0) {
			break
		}
	}
	return out
}

// Inverse returns the complement of s scoped to the sample domain
// [0, Domain()) only. Inverting over the full node-id domain would be a
// bug: inner nodes are not samples and must never appear in a SampleSet.
func (s *SampleSet) Inverse() *SampleSet {
	out := NewSampleSet(s.domain)
	for i := uint(0); i < s.domain; i++ {
		if !s.bits.Test(i) {
			out.bits.Set(i)
		}
	}
	return out
}

// Clone returns an independent copy of s.
func (s *SampleSet) Clone() *SampleSet {
	return &SampleSet{bits: s.bits.Clone(), domain: s.domain}
}
