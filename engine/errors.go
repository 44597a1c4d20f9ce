// Copyright 2014-2017 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import "fmt"

// FenParseError reports a malformed FEN string. No state is mutated
// before this is returned.
type FenParseError struct {
	Field  string
	Value  string
	Reason string
}

func (e *FenParseError) Error() string {
	return fmt.Sprintf("fen: field %q value %q: %s", e.Field, e.Value, e.Reason)
}

// IllegalMoveError reports a move that is not in the legal move set of
// the position it was tried against.
type IllegalMoveError struct {
	Move Move
	FEN  string
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move %s in position %q", e.Move, e.FEN)
}

// OutOfRange reports a configuration value outside its permitted
// interval.
type OutOfRange struct {
	Option string
	Value  int
	Min    int
	Max    int
}

func (e *OutOfRange) Error() string {
	return fmt.Sprintf("option %s: value %d out of range [%d, %d]", e.Option, e.Value, e.Min, e.Max)
}
