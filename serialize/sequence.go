// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package serialize

import (
	"io"

	"github.com/pkg/errors"
	"github.com/sfkit/gfkit"
	"github.com/sfkit/gfkit/sequence"
)

// writeSequenceStore frames a sequence.Store as: site count, one byte per
// ancestral state, mutation count, then one fixed-width record per
// mutation. The mutation_index prefix-sum array is not written; Finalize
// rebuilds it from the mutations on load.
func writeSequenceStore(w io.Writer, s *sequence.Store) error {
	numSites := s.NumSites()
	if err := writeUint32(w, uint32(numSites)); err != nil {
		return errors.Wrap(err, "serialize: writing site count")
	}
	for site := 0; site < numSites; site++ {
		state := s.AncestralState(gfkit.SiteId(site))
		if _, err := w.Write([]byte{byte(state)}); err != nil {
			return errors.Wrap(err, "serialize: writing ancestral state")
		}
	}

	mutations := s.All()
	if err := writeUint32(w, uint32(len(mutations))); err != nil {
		return errors.Wrap(err, "serialize: writing mutation count")
	}
	for _, m := range mutations {
		if err := writeUint32(w, uint32(m.Site)); err != nil {
			return err
		}
		if err := writeUint32(w, uint32(m.Tree)); err != nil {
			return err
		}
		if err := writeUint32(w, uint32(m.Node)); err != nil {
			return err
		}
		if _, err := w.Write([]byte{byte(m.DerivedState), byte(m.ParentState)}); err != nil {
			return errors.Wrap(err, "serialize: writing mutation states")
		}
	}
	return nil
}

func readSequenceStore(r io.Reader) (*sequence.Store, error) {
	numSites, err := readUint32(r)
	if err != nil {
		return nil, errors.Wrap(err, "serialize: reading site count")
	}
	ancestral := make([]byte, numSites)
	if _, err := io.ReadFull(r, ancestral); err != nil {
		return nil, errors.Wrap(gfkit.ErrShortRead, "serialize: reading ancestral states: "+err.Error())
	}

	numMutations, err := readUint32(r)
	if err != nil {
		return nil, errors.Wrap(err, "serialize: reading mutation count")
	}

	s := sequence.NewStore(int(numSites), int(numMutations))
	for _, state := range ancestral {
		s.AddAncestralState(gfkit.AllelicState(state))
	}

	for i := uint32(0); i < numMutations; i++ {
		site, err := readUint32(r)
		if err != nil {
			return nil, errors.Wrap(err, "serialize: reading mutation site")
		}
		tree, err := readUint32(r)
		if err != nil {
			return nil, errors.Wrap(err, "serialize: reading mutation tree")
		}
		node, err := readUint32(r)
		if err != nil {
			return nil, errors.Wrap(err, "serialize: reading mutation node")
		}
		var states [2]byte
		if _, err := io.ReadFull(r, states[:]); err != nil {
			return nil, errors.Wrap(gfkit.ErrShortRead, "serialize: reading mutation states: "+err.Error())
		}
		s.AddMutation(sequence.Mutation{
			Site:         gfkit.SiteId(site),
			Tree:         gfkit.TreeId(tree),
			Node:         gfkit.NodeId(node),
			DerivedState: gfkit.AllelicState(states[0]),
			ParentState:  gfkit.AllelicState(states[1]),
		})
	}
	s.Finalize()
	return s, nil
}
