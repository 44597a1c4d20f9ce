// Copyright 2014-2017 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

// seeValue is a figure-value table used only by static exchange
// evaluation; it is deliberately separate from the evaluator's tuned
// material weights since SEE only needs a rough ordering of trade
// sizes, not a tuned positional score.
var seeValue = [FigureArraySize]int32{0, 100, 325, 325, 500, 975, 20000}

// seeSign reports whether the capture m has a non-negative static
// exchange value, used to skip losing captures in quiescence search and
// to keep losing captures out of the frontier history pruning.
func seeSign(pos *Position, m Move) bool {
	if m.Capture() == NoPiece && m.MoveType() != Enpassant {
		return true
	}
	return see(pos, m) >= 0
}

// see runs the static exchange evaluation swap algorithm on the
// capture square of m: repeatedly bring up the least valuable attacker
// of each side and track the running material gain, then resolve the
// best line for both sides by backward minimax over the gain array.
func see(pos *Position, m Move) int32 {
	to := m.CaptureSquare()
	from := m.From()

	var gain [32]int32
	depth := 0
	mover := m.Piece().Figure()
	gain[0] = seeValue[m.Capture().Figure()]

	occ := pos.Occupied() &^ from.Bitboard()
	attackers := (pos.attackers(to, White) | pos.attackers(to, Black)) & occ
	us := m.Piece().Color().Opposite()

	for {
		depth++
		gain[depth] = seeValue[mover] - gain[depth-1]
		if maxInt32(-gain[depth-1], gain[depth]) < 0 {
			break
		}

		sq, fig, ok := leastValuableAttacker(pos, attackers, us)
		if !ok {
			break
		}
		occ &^= sq.Bitboard()
		attackers = (attackers &^ sq.Bitboard()) | xrayAttackers(pos, to, occ)
		attackers &= occ
		mover = fig
		us = us.Opposite()
	}

	for depth--; depth > 0; depth-- {
		if -gain[depth] < gain[depth-1] {
			gain[depth-1] = -gain[depth]
		}
	}
	return gain[0]
}

func maxInt32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

// leastValuableAttacker finds the cheapest attacker of color us still
// present in attackers, in figure order pawn..king.
func leastValuableAttacker(pos *Position, attackers Bitboard, us Color) (Square, Figure, bool) {
	for fig := Pawn; fig <= King; fig++ {
		bb := attackers & pos.ByPiece(us, fig)
		if bb != 0 {
			return bb.AsSquare(), fig, true
		}
	}
	return NoSquare, NoFigure, false
}

// xrayAttackers re-derives the slider attackers of sq given an updated
// occupancy, revealing attackers behind the piece that just moved off
// the exchange square.
func xrayAttackers(pos *Position, sq Square, occ Bitboard) Bitboard {
	var bb Bitboard
	bb |= BishopMobility(sq, occ) & (pos.ByFigure(Bishop) | pos.ByFigure(Queen))
	bb |= RookMobility(sq, occ) & (pos.ByFigure(Rook) | pos.ByFigure(Queen))
	return bb
}
