// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package freq

// Pair walks two Cursors in lockstep, one per sample set, for statistics
// that compare two sets at the same site (divergence, and Fst through it;
// Patterson's F2/F3/F4 apply the same rule to their own cursor slices).
// Per the force_multiallelicity contract: whenever either
// cursor's site is multiallelic, both are upgraded, so a statistic never
// has to reconcile a biallelic view of one set against a multiallelic view
// of the other at the same site.
type Pair struct {
	A, B *Cursor
}

// NewPair returns a Pair over a and b, already synced at their starting
// site.
func NewPair(a, b *Cursor) *Pair {
	p := &Pair{A: a, B: b}
	p.sync()
	return p
}

// Next advances both cursors one site, reporting false once either runs
// out. The two cursors must be built over sequence stores with the same
// number of sites.
func (p *Pair) Next() bool {
	aOk := p.A.Next()
	bOk := p.B.Next()
	if !aOk || !bOk {
		return false
	}
	p.sync()
	return true
}

// Done reports whether both cursors are exhausted. The two cursors are kept
// in lockstep by Next, so checking A alone is sufficient.
func (p *Pair) Done() bool {
	return p.A.Done()
}

func (p *Pair) sync() {
	if p.A.Kind() == Multiallelic || p.B.Kind() == Multiallelic {
		p.A.ForceMultiallelic()
		p.B.ForceMultiallelic()
	}
}
