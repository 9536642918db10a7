// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package stats

import (
	"math"

	"github.com/sfkit/gfkit"
	"github.com/sfkit/gfkit/freq"
	"github.com/sfkit/gfkit/sequence"
)

// TajimasD computes Tajima's D over one sample set, per spec 4.9: builds T
// (diversity) and S (segregating sites) from two independent passes, then
// combines them with the standard Watterson correction constants a and b.
func TajimasD(store *sequence.Store, acc gfkit.SamplesBelowAccessor, numSamples gfkit.SampleId) float64 {
	n := float64(numSamples)

	t := diversity(numSamples, freq.NewCursor(store, acc, numSamples))
	s := float64(numSegregatingSites(numSamples, freq.NewCursor(store, acc, numSamples)))

	var h, g float64
	for i := gfkit.SampleId(1); i < numSamples; i++ {
		fi := float64(i)
		h += 1.0 / fi
		g += 1.0 / (fi * fi)
	}

	a := (n+1)/(3*(n-1)*h) - 1/(h*h)
	b := 2*(n*n+n+3)/(9*n*(n-1)) - (n+2)/(h*n) + g/(h*h)

	return (t - s/h) / math.Sqrt(a*s+(b/(h*h+g))*s*(s-1))
}
