// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package serialize implements C13: magic+version framed save/load of a
// compressed forest (DAG or BP) and its sequence store, per spec.md §4.10
// and §6. Each file starts with an 8-byte magic, an 8-byte version and a
// one-byte compressed flag; the remaining payload is either written
// verbatim or, above compressionThreshold bytes, transparently zstd
// compressed (github.com/klauspost/compress/zstd), mirroring the broader
// corpus's "store compressed, decompress transparently on load" pattern.
package serialize

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
	"github.com/sfkit/gfkit"
	"github.com/sfkit/gfkit/internal/bitset"
	"github.com/sfkit/gfkit/internal/xlog"
)

// compressionThreshold is the payload size above which a saved file is
// transparently zstd-compressed.
const compressionThreshold = 4096

const (
	dagMagic   uint64 = 0x1227BF3DF7C52E1C
	dagVersion uint64 = 3
	bpMagic    uint64 = 0x69B7F5CF81D01D43
	bpVersion  uint64 = 1
)

func writeUint64(w io.Writer, v uint64) error {
	return binary.Write(w, binary.LittleEndian, v)
}

func writeUint32(w io.Writer, v uint32) error {
	return binary.Write(w, binary.LittleEndian, v)
}

func writeBool(w io.Writer, v bool) error {
	var b [1]byte
	if v {
		b[0] = 1
	}
	_, err := w.Write(b[:])
	return err
}

func readUint64(r io.Reader) (uint64, error) {
	var v uint64
	if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
		return 0, errors.Wrap(gfkit.ErrShortRead, err.Error())
	}
	return v, nil
}

func readUint32(r io.Reader) (uint32, error) {
	var v uint32
	if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
		return 0, errors.Wrap(gfkit.ErrShortRead, err.Error())
	}
	return v, nil
}

func readBool(r io.Reader) (bool, error) {
	var b [1]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return false, errors.Wrap(gfkit.ErrShortRead, err.Error())
	}
	return b[0] != 0, nil
}

// writeNodeIds writes a length-prefixed vector of NodeIds.
func writeNodeIds(w io.Writer, ids []gfkit.NodeId) error {
	if err := writeUint32(w, uint32(len(ids))); err != nil {
		return err
	}
	for _, id := range ids {
		if err := writeUint32(w, uint32(id)); err != nil {
			return err
		}
	}
	return nil
}

func readNodeIds(r io.Reader) ([]gfkit.NodeId, error) {
	n, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	ids := make([]gfkit.NodeId, n)
	for i := range ids {
		v, err := readUint32(r)
		if err != nil {
			return nil, err
		}
		ids[i] = gfkit.NodeId(v)
	}
	return ids, nil
}

// writeBitSet writes a bitset.BitSet as its word count followed by its raw
// 64-bit words.
func writeBitSet(w io.Writer, b bitset.BitSet) error {
	if err := writeUint32(w, uint32(len(b))); err != nil {
		return err
	}
	for _, word := range b {
		if err := writeUint64(w, word); err != nil {
			return err
		}
	}
	return nil
}

func readBitSet(r io.Reader) (bitset.BitSet, error) {
	n, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	b := make(bitset.BitSet, n)
	for i := range b {
		word, err := readUint64(r)
		if err != nil {
			return nil, err
		}
		b[i] = word
	}
	return b, nil
}

// writeFramed writes magic, version, a compressed flag and payload to
// path, zstd-compressing payload when it exceeds compressionThreshold.
func writeFramed(path string, magic, version uint64, payload []byte) (err error) {
	f, createErr := os.Create(path)
	if createErr != nil {
		return errors.Wrapf(createErr, "serialize: creating %s", path)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			result := multierror.Append(err, errors.Wrapf(closeErr, "serialize: closing %s", path))
			err = result.ErrorOrNil()
		}
	}()

	w := bufio.NewWriter(f)
	if err = writeUint64(w, magic); err != nil {
		return errors.Wrap(err, "serialize: writing magic")
	}
	if err = writeUint64(w, version); err != nil {
		return errors.Wrap(err, "serialize: writing version")
	}

	compressed := len(payload) > compressionThreshold
	if err = writeBool(w, compressed); err != nil {
		return errors.Wrap(err, "serialize: writing compressed flag")
	}

	if compressed {
		enc, encErr := zstd.NewWriter(w)
		if encErr != nil {
			return errors.Wrap(encErr, "serialize: creating zstd writer")
		}
		if _, err = enc.Write(payload); err != nil {
			_ = enc.Close()
			return errors.Wrap(err, "serialize: writing compressed payload")
		}
		if err = enc.Close(); err != nil {
			return errors.Wrap(err, "serialize: closing zstd writer")
		}
	} else if _, err = w.Write(payload); err != nil {
		return errors.Wrap(err, "serialize: writing payload")
	}

	if err = w.Flush(); err != nil {
		return errors.Wrap(err, "serialize: flushing")
	}

	xlog.Logger.Info().Str("path", path).Int("bytes", len(payload)).Bool("compressed", compressed).Msg("serialize: save complete")
	return nil
}

// readFramed opens path, validates its magic/version against wantMagic/
// wantVersion and returns a reader positioned at the start of its
// (transparently decompressed) payload.
func readFramed(path string, wantMagic, wantVersion uint64) (io.Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "serialize: opening %s", path)
	}

	r := bufio.NewReader(f)
	magic, err := readUint64(r)
	if err != nil {
		_ = f.Close()
		return nil, errors.Wrapf(err, "serialize: reading magic from %s", path)
	}
	if magic != wantMagic {
		_ = f.Close()
		return nil, errors.Wrapf(gfkit.ErrBadMagic, "%s: got %#x, want %#x", path, magic, wantMagic)
	}

	version, err := readUint64(r)
	if err != nil {
		_ = f.Close()
		return nil, errors.Wrapf(err, "serialize: reading version from %s", path)
	}
	if version != wantVersion {
		_ = f.Close()
		return nil, errors.Wrapf(gfkit.ErrBadVersion, "%s: got %d, want %d", path, version, wantVersion)
	}

	compressed, err := readBool(r)
	if err != nil {
		_ = f.Close()
		return nil, errors.Wrapf(err, "serialize: reading compressed flag from %s", path)
	}

	xlog.Logger.Info().Str("path", path).Bool("compressed", compressed).Msg("serialize: load start")

	if !compressed {
		buf, err := io.ReadAll(r)
		_ = f.Close()
		if err != nil {
			return nil, errors.Wrapf(err, "serialize: reading payload from %s", path)
		}
		return bytes.NewReader(buf), nil
	}

	dec, err := zstd.NewReader(r)
	if err != nil {
		_ = f.Close()
		return nil, errors.Wrapf(err, "serialize: creating zstd reader for %s", path)
	}
	buf, err := io.ReadAll(dec)
	dec.Close()
	_ = f.Close()
	if err != nil {
		return nil, errors.Wrapf(err, "serialize: decompressing %s", path)
	}
	return bytes.NewReader(buf), nil
}
