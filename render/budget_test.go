// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"testing"
	"time"
)

func TestNextSliceSize(t *testing.T) {
	tests := []struct {
		name      string
		current   int
		processed int
		elapsed   time.Duration
		want      int
	}{
		{"nothing processed", 500, 0, time.Millisecond, 500},
		{"no measurable time", 500, 500, 0, 750},
		{"on budget", 1000, 1000, 10 * time.Millisecond, 1000},
		{"twice too slow", 1000, 1000, 20 * time.Millisecond, 750},
		{"twice too fast", 1000, 1000, 5 * time.Millisecond, 1500},
		{"floor", 100, 100, time.Second, 64},
		{"ceiling", 1 << 20, 1 << 20, time.Nanosecond, 1 << 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := nextSliceSize(tt.current, tt.processed, tt.elapsed, 10*time.Millisecond, DefaultMinSlice, DefaultMaxSlice)
			if got != tt.want {
				t.Errorf("nextSliceSize = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNextSliceSize_Converges(t *testing.T) {
	const perMarker = 2 * time.Microsecond
	budget := 10 * time.Millisecond
	want := int(budget / perMarker)

	for _, start := range []int{DefaultMinSlice, DefaultInitialSlice, 100000} {
		size := start
		for range 30 {
			size = nextSliceSize(size, size, time.Duration(size)*perMarker, budget, DefaultMinSlice, DefaultMaxSlice)
		}
		if diff := size - want; diff < -want/100 || diff > want/100 {
			t.Errorf("from %d: converged to %d, want about %d", start, size, want)
		}
	}
}
