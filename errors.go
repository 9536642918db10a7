// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package gfkit

import "github.com/pkg/errors"

// Error kinds from the fatal-error taxonomy. Every sentinel below is
// non-recoverable: construction is transactional, so the caller is expected
// to discard whatever partial forest or sequence store it was building.
var (
	// Input-violates-contract.
	ErrNonConsecutiveSamples = errors.New("gfkit: sample ids are not 0..S-1 consecutive")
	ErrMalformedParent       = errors.New("gfkit: malformed parent pointer in tree")
	ErrMutationOutOfOrder    = errors.New("gfkit: mutation arrived out of tree order")
	ErrBadStateLength        = errors.New("gfkit: ancestral or derived state length is not 1")
	ErrDuplicateLeaf         = errors.New("gfkit: duplicate leaf registered in first tree")

	// Invariant violation in finalized data.
	ErrNotPostorder   = errors.New("gfkit: edge list tagged postorder fails check_postorder")
	ErrDomainMismatch = errors.New("gfkit: sample set domain does not match forest")
	ErrRootsNotUnique = errors.New("gfkit: roots are not unique")
	ErrLeavesNotUnique = errors.New("gfkit: leaves are not unique")

	// IO error.
	ErrBadMagic   = errors.New("gfkit: bad file magic")
	ErrBadVersion = errors.New("gfkit: unsupported file version")
	ErrShortRead  = errors.New("gfkit: short read, file truncated")

	// Algorithmic precondition.
	ErrSampleSetTooSmall = errors.New("gfkit: sample set too small for this statistic")
	ErrLCAOnBP           = errors.New("gfkit: LCA is only defined on the DAG encoding")
)
