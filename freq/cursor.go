// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package freq

import (
	"github.com/sfkit/gfkit"
	"github.com/sfkit/gfkit/sequence"
)

// Cursor walks a sequence store site by site, tracking one sample set's
// allele frequency at the current site. A freshly-built Cursor already
// holds the state for site 0; call Next to advance.
type Cursor struct {
	store    *sequence.Store
	acc      gfkit.SamplesBelowAccessor
	numInSet gfkit.SampleId
	numSites gfkit.SiteId

	site  gfkit.SiteId
	state Frequency
}

// NewCursor returns a Cursor over store, resolving mutation node ids to
// per-set sample counts through acc (a NumSamplesBelow accessor from either
// package dag or package bp — package freq depends on neither directly).
// numInSet is the sample set's total size, i.e. acc's implicit denominator.
func NewCursor(store *sequence.Store, acc gfkit.SamplesBelowAccessor, numInSet gfkit.SampleId) *Cursor {
	c := &Cursor{
		store:    store,
		acc:      acc,
		numInSet: numInSet,
		numSites: gfkit.SiteId(store.NumSites()),
	}
	if c.numSites > 0 {
		c.updateState()
	}
	return c
}

// Site returns the site the cursor currently sits on.
func (c *Cursor) Site() gfkit.SiteId { return c.site }

// Done reports whether the cursor has advanced past the last site.
func (c *Cursor) Done() bool { return c.site >= c.numSites }

// State returns the current site's frequency.
func (c *Cursor) State() Frequency { return c.state }

// Kind is shorthand for State().Kind.
func (c *Cursor) Kind() Kind { return c.state.Kind }

// Next advances to the next site and recomputes its state, reporting false
// once the cursor runs past the last site.
func (c *Cursor) Next() bool {
	c.site++
	if c.site >= c.numSites {
		return false
	}
	c.updateState()
	return true
}

// ForceMultiallelic upgrades the current site's state to the multiallelic
// representation if it is still biallelic. Idempotent.
func (c *Cursor) ForceMultiallelic() {
	if c.state.Kind == Biallelic {
		ancestral := c.store.AncestralState(c.site)
		c.updateStateMultiallelic(ancestral, c.store.MutationsAt(c.site))
	}
}

// updateState recomputes c.state for c.site, staying on the biallelic fast
// path unless a mutation proves a third state is present below the set.
func (c *Cursor) updateState() {
	ancestral := c.store.AncestralState(c.site)
	muts := c.store.MutationsAt(c.site)
	numAncestral := c.numInSet

	if len(muts) == 0 {
		c.state = Frequency{Kind: Biallelic, NumAncestral: numAncestral}
		return
	}

	// The leading run of mutations whose derived state equals the
	// ancestral state (a mutation back to the ancestral allele) carries no
	// information for the fast path; skip to the first real divergence.
	idx := 0
	derived := muts[0].DerivedState
	for derived == ancestral {
		idx++
		if idx == len(muts) {
			break
		}
		derived = muts[idx].DerivedState
	}

	for ; idx < len(muts); idx++ {
		m := muts[idx]
		n := gfkit.SampleId(c.acc.At(m.Node))
		state := m.DerivedState

		if state != derived && state != ancestral && n > 0 {
			c.updateStateMultiallelic(ancestral, muts)
			return
		}

		if state != m.ParentState {
			if state == ancestral {
				numAncestral += n
			} else {
				numAncestral -= n
			}
		}
	}

	c.state = Frequency{Kind: Biallelic, NumAncestral: numAncestral}
}

// updateStateMultiallelic tallies every state present below the set at
// this site from scratch: every sample starts in the ancestral state, then
// each mutation moves num_samples_below(mutation.Node) samples from its
// parent's state to its own.
func (c *Cursor) updateStateMultiallelic(ancestral gfkit.AllelicState, muts []sequence.Mutation) {
	counts := map[gfkit.AllelicState]gfkit.SampleId{ancestral: c.numInSet}
	for _, m := range muts {
		n := gfkit.SampleId(c.acc.At(m.Node))
		counts[m.DerivedState] += n
		counts[m.ParentState] -= n
	}
	c.state = Frequency{Kind: Multiallelic, AncestralState: ancestral, Counts: counts}
}
