// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package idmap assigns small dense integer node ids to distinct subtree
// fingerprints as they are discovered during forest compression.
package idmap

import (
	"github.com/pkg/errors"
	"github.com/sfkit/gfkit/internal/hash"
)

// entry pairs a full 128-bit fingerprint with the id assigned to it, so that
// a Low64 collision between two different subtrees is never mistaken for a
// repeated subtree.
type entry struct {
	h  hash.SubtreeHash
	id uint32
}

// Map assigns dense node ids to subtree fingerprints. The zero value is
// ready to use.
type Map struct {
	buckets map[uint64][]entry
	next    uint32
}

// New returns an empty Map.
func New() *Map {
	return &Map{buckets: make(map[uint64][]entry)}
}

// Find returns the id previously assigned to h, if any.
func (m *Map) Find(h hash.SubtreeHash) (uint32, bool) {
	for _, e := range m.buckets[h.Low64()] {
		if e.h == h {
			return e.id, true
		}
	}
	return 0, false
}

// Contains reports whether h has already been assigned an id.
func (m *Map) Contains(h hash.SubtreeHash) bool {
	_, ok := m.Find(h)
	return ok
}

// InsertNode assigns h a fresh id. It is a fatal contract violation to
// insert a fingerprint that is already present.
func (m *Map) InsertNode(h hash.SubtreeHash) (uint32, error) {
	if m.Contains(h) {
		return 0, errors.Errorf("idmap: subtree hash %x:%x already present", h.Hi, h.Lo)
	}
	return m.insert(h), nil
}

// InsertOrUpdateNode always mints a fresh id for h, overwriting any prior
// mapping. Used for tree roots, which may legitimately share a fingerprint
// with another tree's root while still requiring distinct node ids.
func (m *Map) InsertOrUpdateNode(h hash.SubtreeHash) uint32 {
	bucket := m.buckets[h.Low64()]
	for i := range bucket {
		if bucket[i].h == h {
			bucket[i].id = m.next
			m.next++
			return bucket[i].id
		}
	}
	return m.insert(h)
}

// InsertRoot mints a fresh id without recording any fingerprint mapping at
// all, for callers that only need an id and never intend to look the root
// back up by hash (roots are never referred to by later subtrees).
func (m *Map) InsertRoot() uint32 {
	id := m.next
	m.next++
	return id
}

func (m *Map) insert(h hash.SubtreeHash) uint32 {
	if m.buckets == nil {
		m.buckets = make(map[uint64][]entry)
	}
	id := m.next
	m.next++
	key := h.Low64()
	m.buckets[key] = append(m.buckets[key], entry{h: h, id: id})
	return id
}

// NumNodes returns the count of ids minted so far.
func (m *Map) NumNodes() uint32 {
	return m.next
}
