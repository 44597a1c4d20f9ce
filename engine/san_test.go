// Copyright 2014-2017 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import "testing"

func TestSANToMoveBasic(t *testing.T) {
	pos := mustFEN(t, startFEN)
	move, err := pos.SANToMove("e4")
	if err != nil {
		t.Fatal(err)
	}
	if move.From() != SquareE2 || move.To() != SquareE4 {
		t.Errorf("SANToMove(e4) = %v, want e2e4", move)
	}
}

func TestSANToMoveCastling(t *testing.T) {
	pos := mustFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	move, err := pos.SANToMove("O-O")
	if err != nil {
		t.Fatal(err)
	}
	if move.MoveType() != Castling || move.To() != SquareG1 {
		t.Errorf("SANToMove(O-O) = %v, want e1g1 castling", move)
	}
}

func TestSANToMoveDisambiguation(t *testing.T) {
	pos := mustFEN(t, "4k3/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	move, err := pos.SANToMove("Rad1")
	if err != nil {
		t.Fatal(err)
	}
	if move.From() != SquareA1 || move.To() != SquareD1 {
		t.Errorf("SANToMove(Rad1) = %v, want a1d1", move)
	}
}

func TestSANToMoveUnknown(t *testing.T) {
	pos := mustFEN(t, startFEN)
	if _, err := pos.SANToMove("Qh5"); err == nil {
		t.Error("SANToMove(Qh5): expected error, queen cannot reach h5 from startpos")
	}
}

func TestMoveToSANRoundTrip(t *testing.T) {
	pos := mustFEN(t, startFEN)
	var moves []Move
	pos.GenerateLegalMoves(&moves)
	for _, m := range moves {
		san := pos.MoveToSAN(m)
		got, err := pos.SANToMove(san)
		if err != nil {
			t.Fatalf("SANToMove(%q): %v", san, err)
		}
		if got != m {
			t.Errorf("SAN round trip: %v -> %q -> %v", m, san, got)
		}
	}
}
