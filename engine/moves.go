// Copyright 2014-2017 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

// GenKind selects which subset of moves a generator emits.
type GenKind int

const (
	// All generates every pseudo-legal move.
	All GenKind = iota
	// Violent generates captures and queen promotions only, used by
	// quiescence search.
	Violent
)

// between[a][b] is the set of squares strictly between a and b on a
// shared rank, file or diagonal; zero if they don't share a line.
var between [64][64]Bitboard

func init() {
	dirs := [][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	for a := 0; a < 64; a++ {
		ar, af := Square(a).Rank(), Square(a).File()
		for _, d := range dirs {
			var bb Bitboard
			r, f := ar, af
			for {
				r, f = r+d[0], f+d[1]
				if r < 0 || r > 7 || f < 0 || f > 7 {
					break
				}
				b := int(RankFile(r, f))
				between[a][b] = bb
				bb |= RankFile(r, f).Bitboard()
			}
		}
	}
}

// GenerateMoves appends pseudo-legal moves of the given kind to moves.
func (pos *Position) GenerateMoves(kind GenKind, moves *[]Move) {
	us := pos.toMove
	them := us.Opposite()
	occ := pos.Occupied()
	enemy := pos.byColor[them]
	var targetMask Bitboard
	if kind == Violent {
		targetMask = enemy
	} else {
		targetMask = ^pos.byColor[us]
	}

	pos.genPawnMoves(us, kind, moves)
	pos.genFigureMoves(Knight, us, occ, targetMask, moves)
	pos.genFigureMoves(Bishop, us, occ, targetMask, moves)
	pos.genFigureMoves(Rook, us, occ, targetMask, moves)
	pos.genFigureMoves(Queen, us, occ, targetMask, moves)
	pos.genFigureMoves(King, us, occ, targetMask, moves)
	if kind == All {
		pos.genCastlingMoves(us, moves)
	}
}

// GenerateEvasions appends moves that answer the current check: king
// moves, captures of the checker, and blocks on the checking ray. The
// moves are pseudo-legal: a king step onto an attacked square or a move
// by a pinned piece is still emitted, and GenerateLegalMoves filters
// those out. Used
// in place of GenerateMoves whenever the side to move is in check,
// since it prunes the branching factor before generation rather than
// filtering afterwards.
func (pos *Position) GenerateEvasions(moves *[]Move) {
	us := pos.toMove
	them := us.Opposite()
	kingSq := pos.ByPiece(us, King).AsSquare()
	checkers := pos.attackers(kingSq, them)

	occ := pos.Occupied()
	pos.genFigureMoves(King, us, occ, ^pos.byColor[us], moves)

	if checkers.Popcnt() > 1 {
		// Double check: only king moves escape.
		return
	}
	checkerSq := checkers.AsSquare()
	checkerPiece := pos.Get(checkerSq)

	var blockMask Bitboard
	if checkerPiece.Figure() == Bishop || checkerPiece.Figure() == Rook || checkerPiece.Figure() == Queen {
		blockMask = between[kingSq][checkerSq]
	}
	targetMask := checkerSq.Bitboard() | blockMask

	start := len(*moves)
	pos.genPawnMoves(us, All, moves)
	pos.genFigureMoves(Knight, us, occ, ^pos.byColor[us], moves)
	pos.genFigureMoves(Bishop, us, occ, ^pos.byColor[us], moves)
	pos.genFigureMoves(Rook, us, occ, ^pos.byColor[us], moves)
	pos.genFigureMoves(Queen, us, occ, ^pos.byColor[us], moves)

	// Filter non-king moves down to those that capture the checker or
	// block the checking ray; en passant is special-cased since the
	// landing square isn't the captured square.
	out := (*moves)[:start]
	for _, m := range (*moves)[start:] {
		landsOnMask := m.To().Bitboard()&targetMask != 0
		epCapturesChecker := m.MoveType() == Enpassant && m.CaptureSquare() == checkerSq
		if landsOnMask || epCapturesChecker {
			out = append(out, m)
		}
	}
	*moves = out
}

func (pos *Position) genFigureMoves(fig Figure, us Color, occ, targetMask Bitboard, moves *[]Move) {
	bb := pos.ByPiece(us, fig)
	for bb != 0 {
		from := bb.Pop()
		var att Bitboard
		switch fig {
		case Knight:
			att = KnightMobility(from)
		case Bishop:
			att = BishopMobility(from, occ)
		case Rook:
			att = RookMobility(from, occ)
		case Queen:
			att = QueenMobility(from, occ)
		case King:
			att = KingMobility(from)
		}
		att &= targetMask
		for att != 0 {
			to := att.Pop()
			capture := pos.Get(to)
			*moves = append(*moves, MakeMove(Normal, from, to, capture, ColorFigure(us, fig)))
		}
	}
}

func (pos *Position) genPawnMoves(us Color, kind GenKind, moves *[]Move) {
	occ := pos.Occupied()
	pawns := pos.ByPiece(us, Pawn)
	them := us.Opposite()
	promoRank := 7
	if us == Black {
		promoRank = 0
	}

	for bb := pawns; bb != 0; {
		from := bb.Pop()

		// Captures, including en passant.
		caps := PawnAttack(from, us) & pos.byColor[them]
		for c := caps; c != 0; {
			to := c.Pop()
			capture := pos.Get(to)
			pos.appendPawnMove(us, Normal, from, to, capture, promoRank, moves)
		}
		if pos.enpassant != NoSquare && PawnAttack(from, us).Has(pos.enpassant) {
			*moves = append(*moves, MakeMove(Enpassant, from, pos.enpassant, ColorFigure(them, Pawn), ColorFigure(us, Pawn)))
		}

		// Single and double pushes (quiet moves), skipped entirely in
		// violent-only generation unless they reach the last rank.
		one := Forward(us, from.Bitboard()) &^ occ
		if one != 0 {
			to := one.AsSquare()
			if to.Rank() == promoRank && kind == Violent {
				*moves = append(*moves, MakeMove(Promotion, from, to, NoPiece, ColorFigure(us, Queen)))
			} else if to.Rank() == promoRank {
				pos.appendPawnMove(us, Normal, from, to, NoPiece, promoRank, moves)
			} else if kind == All {
				*moves = append(*moves, MakeMove(Normal, from, to, NoPiece, ColorFigure(us, Pawn)))
				startRank := 1
				if us == Black {
					startRank = 6
				}
				if from.Rank() == startRank {
					two := Forward(us, one) &^ occ
					if two != 0 {
						*moves = append(*moves, MakeMove(Normal, from, two.AsSquare(), NoPiece, ColorFigure(us, Pawn)))
					}
				}
			}
		}
	}
}

func (pos *Position) appendPawnMove(us Color, mt MoveType, from, to Square, capture Piece, promoRank int, moves *[]Move) {
	if to.Rank() == promoRank {
		for _, fig := range [...]Figure{Queen, Rook, Bishop, Knight} {
			*moves = append(*moves, MakeMove(Promotion, from, to, capture, ColorFigure(us, fig)))
		}
	} else {
		*moves = append(*moves, MakeMove(mt, from, to, capture, ColorFigure(us, Pawn)))
	}
}

func (pos *Position) genCastlingMoves(us Color, moves *[]Move) {
	occ := pos.Occupied()
	them := us.Opposite()
	if us == White {
		if pos.castle&WhiteOO != 0 && occ&(SquareF1.Bitboard()|SquareG1.Bitboard()) == 0 {
			if !pos.IsAttacked(SquareE1, them) && !pos.IsAttacked(SquareF1, them) && !pos.IsAttacked(SquareG1, them) {
				*moves = append(*moves, MakeMove(Castling, SquareE1, SquareG1, NoPiece, ColorFigure(White, King)))
			}
		}
		if pos.castle&WhiteOOO != 0 && occ&(SquareB1.Bitboard()|SquareC1.Bitboard()|SquareD1.Bitboard()) == 0 {
			if !pos.IsAttacked(SquareE1, them) && !pos.IsAttacked(SquareD1, them) && !pos.IsAttacked(SquareC1, them) {
				*moves = append(*moves, MakeMove(Castling, SquareE1, SquareC1, NoPiece, ColorFigure(White, King)))
			}
		}
	} else {
		if pos.castle&BlackOO != 0 && occ&(SquareF8.Bitboard()|SquareG8.Bitboard()) == 0 {
			if !pos.IsAttacked(SquareE8, them) && !pos.IsAttacked(SquareF8, them) && !pos.IsAttacked(SquareG8, them) {
				*moves = append(*moves, MakeMove(Castling, SquareE8, SquareG8, NoPiece, ColorFigure(Black, King)))
			}
		}
		if pos.castle&BlackOOO != 0 && occ&(SquareB8.Bitboard()|SquareC8.Bitboard()|SquareD8.Bitboard()) == 0 {
			if !pos.IsAttacked(SquareE8, them) && !pos.IsAttacked(SquareD8, them) && !pos.IsAttacked(SquareC8, them) {
				*moves = append(*moves, MakeMove(Castling, SquareE8, SquareC8, NoPiece, ColorFigure(Black, King)))
			}
		}
	}
}

// GenerateLegalMoves returns every legal move for the current position,
// using the evasion generator when in check.
func (pos *Position) GenerateLegalMoves(moves *[]Move) {
	start := len(*moves)
	if pos.InCheck() {
		pos.GenerateEvasions(moves)
	} else {
		pos.GenerateMoves(All, moves)
	}
	us := pos.toMove
	out := (*moves)[:start]
	for _, m := range (*moves)[start:] {
		pos.DoMove(m)
		ok := !pos.IsChecked(us)
		pos.UndoMove()
		if ok {
			out = append(out, m)
		}
	}
	*moves = out
}

// IsPseudoLegal reports whether m could currently be generated by
// GenerateMoves/GenerateEvasions; used to validate moves read back from
// the transposition table before trusting them.
func (pos *Position) IsPseudoLegal(m Move) bool {
	var moves []Move
	if pos.InCheck() {
		pos.GenerateEvasions(&moves)
	} else {
		pos.GenerateMoves(All, &moves)
	}
	for _, c := range moves {
		if c == m {
			return true
		}
	}
	return false
}

// IsLegal reports whether m is both pseudo-legal and leaves the mover's
// own king safe.
func (pos *Position) IsLegal(m Move) bool {
	if !pos.IsPseudoLegal(m) {
		return false
	}
	us := pos.toMove
	pos.DoMove(m)
	ok := !pos.IsChecked(us)
	pos.UndoMove()
	return ok
}
