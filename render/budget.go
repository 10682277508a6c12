// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"math"
	"time"
)

// Slice sizing defaults.
const (
	DefaultFrameBudget  = 10 * time.Millisecond
	DefaultInitialSlice = 5000
	DefaultMinSlice     = 64
	DefaultMaxSlice     = 1 << 20
)

// smoothing is the weight of the latest measurement in the slice size.
const smoothing = 0.5

// nextSliceSize returns the slice size to use after drawing processed markers
// in elapsed time. The result moves half way from current toward the size
// that would have filled budget, and is clamped to [minSize, maxSize].
func nextSliceSize(current, processed int, elapsed, budget time.Duration, minSize, maxSize int) int {
	if processed <= 0 {
		return current
	}

	var target float64
	if elapsed <= 0 {
		// Below clock resolution.
		target = 2 * float64(current)
	} else {
		perMarker := float64(elapsed) / float64(processed)
		target = float64(budget) / perMarker
	}

	next := smoothing*target + (1-smoothing)*float64(current)
	next = math.Max(next, float64(minSize))
	next = math.Min(next, float64(maxSize))
	return int(next)
}
