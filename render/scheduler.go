// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"slices"
	"time"
)

// FrameID identifies a callback queued with a Scheduler.
type FrameID uint64

// Scheduler runs callbacks at the next animation opportunity of the host.
type Scheduler interface {
	// RequestFrame queues fn to run on the next frame.
	RequestFrame(fn func()) FrameID

	// CancelFrame removes a queued callback. Unknown ids are ignored.
	CancelFrame(id FrameID)
}

// Clock reports the current time. Only differences between two readings
// are used.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the monotonic wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

type queued struct {
	id FrameID
	fn func()
}

// ManualScheduler queues callbacks until the host calls Step.
//
// Each Step is one frame: callbacks requested while a frame runs are
// deferred to the next Step. The zero value is ready to use.
type ManualScheduler struct {
	next  FrameID
	queue []queued

	// running holds the ids of the batch being stepped that are still due.
	running map[FrameID]bool
}

// NewManualScheduler returns an empty scheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// RequestFrame queues fn for the next Step.
func (s *ManualScheduler) RequestFrame(fn func()) FrameID {
	s.next++
	s.queue = append(s.queue, queued{id: s.next, fn: fn})
	return s.next
}

// CancelFrame drops a queued callback.
func (s *ManualScheduler) CancelFrame(id FrameID) {
	delete(s.running, id)
	s.queue = slices.DeleteFunc(s.queue, func(q queued) bool { return q.id == id })
}

// Pending returns the number of queued callbacks.
func (s *ManualScheduler) Pending() int {
	return len(s.queue)
}

// Step runs the callbacks queued before the call and returns how many ran.
func (s *ManualScheduler) Step() int {
	batch := s.queue
	s.queue = nil
	s.running = make(map[FrameID]bool, len(batch))
	for _, q := range batch {
		s.running[q.id] = true
	}
	ran := 0
	for _, q := range batch {
		// A callback may cancel a later one of the same batch.
		if !s.running[q.id] {
			continue
		}
		delete(s.running, q.id)
		q.fn()
		ran++
	}
	s.running = nil
	return ran
}

// Flush steps until the queue is empty or limit frames have run, and
// returns the number of frames. A limit of zero or less means no limit.
func (s *ManualScheduler) Flush(limit int) int {
	frames := 0
	for len(s.queue) > 0 && (limit <= 0 || frames < limit) {
		s.Step()
		frames++
	}
	return frames
}
