// Copyright 2014-2017 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"sync/atomic"
	"time"
)

// Clock abstracts the monotonic time source a search measures itself
// against, supplied by the embedding application so tests can fake it.
type Clock interface {
	Now() time.Time
}

// realClock is the Clock backed by the standard library's monotonic
// clock reading.
type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Limits bounds one search: any zero/negative field is unlimited.
type Limits struct {
	Depth    int
	Nodes    uint64
	MoveTime time.Duration
	Infinite bool
}

// TimeControl tracks a search's deadline and cooperative stop flag. It
// owns no goroutines; Search polls Aborted() at node boundaries.
type TimeControl struct {
	clock    Clock
	deadline time.Time
	hasLimit bool
	stopped  atomic.Bool
	nodes    atomic.Uint64
	nodeCap  uint64
}

// NewTimeControl derives a deadline from limits, using clock as the
// monotonic time source.
func NewTimeControl(clock Clock, limits Limits) *TimeControl {
	if clock == nil {
		clock = realClock{}
	}
	tc := &TimeControl{clock: clock, nodeCap: limits.Nodes}
	if limits.MoveTime > 0 {
		tc.deadline = clock.Now().Add(limits.MoveTime)
		tc.hasLimit = true
	}
	return tc
}

// Stop requests cancellation; observed cooperatively by the search.
func (tc *TimeControl) Stop() { tc.stopped.Store(true) }

// Stopped reports whether Stop has been called.
func (tc *TimeControl) Stopped() bool { return tc.stopped.Load() }

// IncrementNodes records one more visited node and returns the new
// total, used by Search to decide when to next check for abort.
func (tc *TimeControl) IncrementNodes() uint64 { return tc.nodes.Add(1) }

// Nodes returns the number of nodes visited so far.
func (tc *TimeControl) Nodes() uint64 { return tc.nodes.Load() }

// Aborted reports whether the search should unwind now: either Stop was
// called, the deadline has passed, or the node cap was reached.
func (tc *TimeControl) Aborted() bool {
	if tc.stopped.Load() {
		return true
	}
	if tc.nodeCap > 0 && tc.nodes.Load() >= tc.nodeCap {
		return true
	}
	if tc.hasLimit && !tc.clock.Now().Before(tc.deadline) {
		return true
	}
	return false
}
