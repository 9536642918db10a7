// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/sfkit/gfkit"
	"github.com/sfkit/gfkit/reader"
)

// tsDocument is the on-disk JSON shape cmd/gfkit reads tree sequences from.
// Package reader's doc comment scopes a real tskit file parser out of core;
// this is the CLI's own minimal adapter onto reader.Fixture, not a
// tskit-compatible format.
type tsDocument struct {
	NumSamples uint32          `json:"num_samples"`
	Trees      []tsTreeDoc     `json:"trees"`
	Sites      []tsSiteDoc     `json:"sites"`
	Mutations  []tsMutationDoc `json:"mutations"`
}

type tsTreeDoc struct {
	Postorder []uint32            `json:"postorder"`
	Children  map[string][]uint32 `json:"children"`
	Roots     []uint32            `json:"roots"`
	Samples   []uint32            `json:"samples"`
}

type tsSiteDoc struct {
	AncestralState string `json:"ancestral_state"`
}

type tsMutationDoc struct {
	Site           uint32 `json:"site"`
	Node           uint32 `json:"node"`
	DerivedState   string `json:"derived_state"`
	ParentMutation int64  `json:"parent_mutation"`
}

// loadTreeSequence reads path as a tsDocument and assembles a reader.Fixture
// from it.
func loadTreeSequence(path string) (reader.TreeSequence, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "cmd/gfkit: reading tree-sequence file")
	}

	var doc tsDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrap(err, "cmd/gfkit: parsing tree-sequence JSON")
	}

	fx := reader.NewFixture(doc.NumSamples)

	for _, t := range doc.Trees {
		children := make(map[reader.TsNodeId][]reader.TsNodeId, len(t.Children))
		for k, v := range t.Children {
			node, err := strconv.ParseUint(k, 10, 32)
			if err != nil {
				return nil, errors.Wrapf(err, "cmd/gfkit: parsing child-map key %q", k)
			}
			children[reader.TsNodeId(node)] = toTsNodeIds(v)
		}
		fx.AddTree(toTsNodeIds(t.Postorder), children, toTsNodeIds(t.Roots), toTsNodeIds(t.Samples))
	}

	sites := make([]reader.SiteRecord, len(doc.Sites))
	for i, s := range doc.Sites {
		state, err := allelicState(s.AncestralState)
		if err != nil {
			return nil, errors.Wrapf(err, "cmd/gfkit: site %d ancestral state", i)
		}
		sites[i] = reader.SiteRecord{AncestralState: state}
	}
	fx.SetSites(sites)

	for i, m := range doc.Mutations {
		state, err := allelicState(m.DerivedState)
		if err != nil {
			return nil, errors.Wrapf(err, "cmd/gfkit: mutation %d derived state", i)
		}
		rec := reader.MutationRecord{
			Site:         gfkit.SiteId(m.Site),
			Node:         reader.TsNodeId(m.Node),
			DerivedState: state,
		}
		if m.ParentMutation >= 0 {
			rec.HasParent = true
			rec.ParentMutation = gfkit.MutationId(m.ParentMutation)
		}
		fx.AddMutation(rec)
	}

	return fx, nil
}

func toTsNodeIds(ids []uint32) []reader.TsNodeId {
	out := make([]reader.TsNodeId, len(ids))
	for i, id := range ids {
		out[i] = reader.TsNodeId(id)
	}
	return out
}

func allelicState(s string) (gfkit.AllelicState, error) {
	if len(s) != 1 {
		return 0, errors.Errorf("allelic state %q must be exactly one byte", s)
	}
	return gfkit.AllelicState(s[0]), nil
}
