// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render paints markers into off-screen frames a slice at a time.
//
// A Rasterizer owns two frames, one visible and one being built. An update
// request projects the view, clears the building frame and then draws the
// marker list in slices, one slice per Scheduler callback. The number of
// markers in a slice adapts to the measured cost per marker so that each
// callback stays within a time budget. When the last slice is drawn the
// building frame's spatial index is rebuilt and the two frames are swapped.
//
// # Scheduling
//
// The Rasterizer never blocks and never starts goroutines. Host applications
// inject a Scheduler, usually backed by their display loop, and a Clock:
//
//	sched := render.NewManualScheduler()
//	r := render.New(view, sched)
//	r.SetSprites(a)
//	r.SetMarkers(ms)
//	r.RequestUpdate()
//	for sched.Pending() > 0 {
//	    sched.Step()
//	}
//
// A second RequestUpdate while a pass is in flight is coalesced into one
// follow-up pass.
//
// # Thread Safety
//
// A Rasterizer must be used from a single goroutine.
package render
