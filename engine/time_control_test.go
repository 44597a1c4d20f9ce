// Copyright 2014-2017 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"testing"
	"time"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func TestTimeControlMoveTimeDeadline(t *testing.T) {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: start}
	tc := NewTimeControl(clock, Limits{MoveTime: time.Second})

	if tc.Aborted() {
		t.Error("should not be aborted before the deadline")
	}
	clock.now = start.Add(2 * time.Second)
	if !tc.Aborted() {
		t.Error("should be aborted after the deadline has passed")
	}
}

func TestTimeControlStop(t *testing.T) {
	tc := NewTimeControl(nil, Limits{})
	if tc.Aborted() {
		t.Error("unlimited search should not be aborted before Stop")
	}
	tc.Stop()
	if !tc.Aborted() {
		t.Error("expected aborted after Stop")
	}
}

func TestTimeControlNodeCap(t *testing.T) {
	tc := NewTimeControl(nil, Limits{Nodes: 3})
	for i := 0; i < 2; i++ {
		tc.IncrementNodes()
	}
	if tc.Aborted() {
		t.Error("should not be aborted before reaching the node cap")
	}
	tc.IncrementNodes()
	if !tc.Aborted() {
		t.Error("should be aborted once the node cap is reached")
	}
}
