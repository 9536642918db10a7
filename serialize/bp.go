// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package serialize

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
	"github.com/sfkit/gfkit"
	"github.com/sfkit/gfkit/bp"
	"github.com/sfkit/gfkit/sequence"
)

// SaveBP writes forest and seq to path as a magic/version-framed BP file
// (spec.md §4.10/§6: magic 0x69B7F5CF81D01D43, version 1).
func SaveBP(path string, forest *bp.Forest, seq *sequence.Store) error {
	var buf bytes.Buffer
	if err := writeBPPayload(&buf, forest, seq); err != nil {
		return errors.Wrap(err, "serialize: encoding BP payload")
	}
	return writeFramed(path, bpMagic, bpVersion, buf.Bytes())
}

// LoadBP reads a BP file previously written by SaveBP.
func LoadBP(path string) (*bp.Forest, *sequence.Store, error) {
	r, err := readFramed(path, bpMagic, bpVersion)
	if err != nil {
		return nil, nil, err
	}
	return readBPPayload(r)
}

// writeBPPayload writes the five bit/int vectors in fixed order followed
// by the three counters and the sequence store, per spec.md 4.10(b).
func writeBPPayload(w io.Writer, forest *bp.Forest, seq *sequence.Store) error {
	length := forest.Len()

	bpBits, isLeafBits, isRefBits := forest.BitVectors()
	if err := writeUint32(w, uint32(length)); err != nil {
		return err
	}
	if err := writeBitSet(w, bpBits); err != nil {
		return err
	}
	if err := writeBitSet(w, isLeafBits); err != nil {
		return err
	}
	if err := writeBitSet(w, isRefBits); err != nil {
		return err
	}
	if err := writeNodeIds(w, forest.Leaves()); err != nil {
		return err
	}
	if err := writeNodeIds(w, forest.References()); err != nil {
		return err
	}

	if err := writeUint32(w, uint32(forest.NumNodes())); err != nil {
		return err
	}
	if err := writeUint32(w, uint32(forest.NumSamples())); err != nil {
		return err
	}
	if err := writeUint32(w, uint32(forest.NumTrees())); err != nil {
		return err
	}

	return writeSequenceStore(w, seq)
}

func readBPPayload(r io.Reader) (*bp.Forest, *sequence.Store, error) {
	length, err := readUint32(r)
	if err != nil {
		return nil, nil, errors.Wrap(err, "serialize: reading BP length")
	}
	bpBits, err := readBitSet(r)
	if err != nil {
		return nil, nil, errors.Wrap(err, "serialize: reading BP bits")
	}
	isLeafBits, err := readBitSet(r)
	if err != nil {
		return nil, nil, errors.Wrap(err, "serialize: reading BP is_leaf bits")
	}
	isRefBits, err := readBitSet(r)
	if err != nil {
		return nil, nil, errors.Wrap(err, "serialize: reading BP is_ref bits")
	}
	leaves, err := readNodeIds(r)
	if err != nil {
		return nil, nil, errors.Wrap(err, "serialize: reading BP leaves")
	}
	references, err := readNodeIds(r)
	if err != nil {
		return nil, nil, errors.Wrap(err, "serialize: reading BP references")
	}

	numNodes, err := readUint32(r)
	if err != nil {
		return nil, nil, errors.Wrap(err, "serialize: reading BP node count")
	}
	numSamples, err := readUint32(r)
	if err != nil {
		return nil, nil, errors.Wrap(err, "serialize: reading BP sample count")
	}
	numTrees, err := readUint32(r)
	if err != nil {
		return nil, nil, errors.Wrap(err, "serialize: reading BP tree count")
	}

	forest := bp.NewForest(bpBits, isLeafBits, isRefBits, int(length), leaves, references,
		gfkit.NodeId(numNodes), gfkit.SampleId(numSamples), gfkit.TreeId(numTrees))

	seq, err := readSequenceStore(r)
	if err != nil {
		return nil, nil, errors.Wrap(err, "serialize: reading BP sequence store")
	}

	return forest, seq, nil
}
