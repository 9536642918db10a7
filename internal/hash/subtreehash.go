// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package hash computes order-sensitive 128-bit subtree fingerprints.
//
// Two subtrees fingerprint identically iff they have identical topology and
// identical leaf labels in identical child order; this is the property the
// forest compressors rely on to recognize and share a repeated subtree in
// O(1) regardless of its size.
package hash

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// SubtreeHash is a 128-bit order-sensitive fingerprint of a subtree.
// Equality is exact; Low64 is used as the hash key for maps.
type SubtreeHash struct {
	Hi, Lo uint64
}

// Low64 returns the low 64 bits, used to bucket SubtreeHash in hash maps.
// Full 128-bit equality must still be checked on collision.
func (h SubtreeHash) Low64() uint64 { return h.Lo }

const (
	seedHi uint64 = 0x9E3779B97F4A7C15
	seedLo uint64 = 0xC2B2AE3D27D4EB4F
)

// HashSample returns the one-shot fingerprint of a sample leaf, derived
// solely from its SampleId so that every tree assigns the same leaf the same
// fingerprint.
func HashSample(id uint32) SubtreeHash {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], id)
	return SubtreeHash{
		Hi: xxhash.Sum64(append(buf[:], byte(seedHi), byte(seedHi>>8))),
		Lo: xxhash.Sum64(append(buf[:], byte(seedLo), byte(seedLo>>8))),
	}
}

// Hasher is a stateful builder for an inner node's fingerprint: Reset,
// zero or more AppendChild calls in child order, then Finish. Children must
// be appended in the exact order they occur in the tree; permuting them
// produces a different fingerprint with overwhelming probability.
type Hasher struct {
	hi, lo *xxhash.Digest
	n      int
}

// NewHasher returns a ready-to-use Hasher.
func NewHasher() *Hasher {
	h := &Hasher{hi: xxhash.New(), lo: xxhash.New()}
	h.Reset()
	return h
}

// Reset discards any appended children and reseeds the builder.
func (h *Hasher) Reset() {
	h.hi.Reset()
	h.lo.Reset()
	var seed [8]byte
	binary.LittleEndian.PutUint64(seed[:], seedHi)
	_, _ = h.hi.Write(seed[:])
	binary.LittleEndian.PutUint64(seed[:], seedLo)
	_, _ = h.lo.Write(seed[:])
	h.n = 0
}

// AppendChild feeds one child's fingerprint into the builder, in order.
func (h *Hasher) AppendChild(child SubtreeHash) {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], child.Hi)
	binary.LittleEndian.PutUint64(buf[8:16], child.Lo)
	_, _ = h.hi.Write(buf[:])
	_, _ = h.lo.Write(buf[:])
	h.n++
}

// Finish returns the fingerprint of the node whose children were appended
// since the last Reset. The builder must be Reset before reuse.
func (h *Hasher) Finish() SubtreeHash {
	return SubtreeHash{Hi: h.hi.Sum64(), Lo: h.lo.Sum64()}
}
