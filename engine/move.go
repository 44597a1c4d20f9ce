// Copyright 2014-2017 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

// Move is packed into a single machine word: from/to squares, the move
// type, the captured piece (if any) and the target piece (the piece
// occupying To after the move completes -- for a promotion this is the
// promoted piece, otherwise it is the piece that moved).
type Move uint32

const (
	moveFromShift  = 0
	moveToShift    = 6
	moveTypeShift  = 12
	moveCaptShift  = 15
	moveTargShift  = 20
	moveSquareMask = 0x3f
	moveTypeMask   = 0x7
	movePieceMask  = 0x1f
)

// NullMove is the move that does nothing, used for null-move pruning.
const NullMove Move = 0

// MakeMove builds a Move from its components.
func MakeMove(mt MoveType, from, to Square, capture, target Piece) Move {
	return Move(from)<<moveFromShift |
		Move(to)<<moveToShift |
		Move(mt)<<moveTypeShift |
		Move(capture)<<moveCaptShift |
		Move(target)<<moveTargShift
}

// From returns the origin square.
func (m Move) From() Square { return Square(m >> moveFromShift & moveSquareMask) }

// To returns the destination square.
func (m Move) To() Square { return Square(m >> moveToShift & moveSquareMask) }

// MoveType returns the move's special-case kind.
func (m Move) MoveType() MoveType { return MoveType(m >> moveTypeShift & moveTypeMask) }

// Capture returns the captured piece, or NoPiece.
func (m Move) Capture() Piece { return Piece(m >> moveCaptShift & movePieceMask) }

// Target returns the piece occupying To once the move is made.
func (m Move) Target() Piece { return Piece(m >> moveTargShift & movePieceMask) }

// Piece returns the piece that moved, before any promotion is applied.
func (m Move) Piece() Piece {
	if m.MoveType() == Promotion {
		return ColorFigure(m.Target().Color(), Pawn)
	}
	return m.Target()
}

// CaptureSquare returns the square of the captured piece. For all move
// types other than en passant this is simply To.
func (m Move) CaptureSquare() Square {
	if m.MoveType() != Enpassant {
		return m.To()
	}
	return RankFile(m.From().Rank(), m.To().File())
}

// IsViolent reports whether the move is a capture or a queen promotion,
// the set considered by the quiescence generator.
func (m Move) IsViolent() bool {
	return m.Capture() != NoPiece || (m.MoveType() == Promotion && m.Target().Figure() == Queen)
}

// IsQuiet is the complement of IsViolent.
func (m Move) IsQuiet() bool { return !m.IsViolent() }

// UCI formats the move in long algebraic form, e.g. "e2e4" or "e7e8q".
func (m Move) UCI() string {
	s := m.From().String() + m.To().String()
	if m.MoveType() == Promotion {
		s += string(promotionSymbol[m.Target().Figure()])
	}
	return s
}

func (m Move) String() string { return m.UCI() }

var promotionSymbol = [FigureArraySize]byte{0, 0, 'n', 'b', 'r', 'q', 0}
