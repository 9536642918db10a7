// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package freq implements the per-site allele-frequency cursor (C11): a
// forward walk over a sequence store's sites that stays on a cheap
// biallelic fast path for as long as a site's mutations support it, and
// falls back to an explicit per-state tally only when they don't.
package freq

import "github.com/sfkit/gfkit"

// Kind distinguishes the two representations a Frequency can hold.
type Kind int

const (
	// Biallelic sites are summarized by one count: how many samples in the
	// set carry the ancestral state (the rest carry the single derived
	// state).
	Biallelic Kind = iota
	// Multiallelic sites carry a full per-state tally, either because more
	// than two distinct states are present below the sample set at this
	// site or because the Cursor was upgraded with ForceMultiallelic.
	Multiallelic
)

// Frequency is one site's allele-frequency summary for one sample set.
type Frequency struct {
	Kind Kind

	// Valid when Kind == Biallelic.
	NumAncestral gfkit.SampleId

	// Valid when Kind == Multiallelic.
	AncestralState gfkit.AllelicState
	Counts         map[gfkit.AllelicState]gfkit.SampleId
}

// NumDerived returns the count of samples carrying the single derived
// state, given the sample set's total size. Only meaningful when
// Kind == Biallelic.
func (f Frequency) NumDerived(numInSet gfkit.SampleId) gfkit.SampleId {
	return numInSet - f.NumAncestral
}
