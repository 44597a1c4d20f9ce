// Copyright 2014-2017 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"strconv"
	"strings"
)

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var pieceToSymbol = [PieceArraySize]byte{
	NoPiece: '.',
}

func init() {
	for co := White; co <= Black; co++ {
		for fig := FigureMinValue; fig <= FigureMaxValue; fig++ {
			pc := ColorFigure(co, fig)
			s := "PNBRQK"[fig-1]
			if co == Black {
				s += 'a' - 'A'
			}
			pieceToSymbol[pc] = s
		}
	}
}

var symbolToPiece = func() map[byte]Piece {
	m := map[byte]Piece{}
	for co := White; co <= Black; co++ {
		for fig := FigureMinValue; fig <= FigureMaxValue; fig++ {
			pc := ColorFigure(co, fig)
			m[pc.String()[0]] = pc
		}
	}
	return m
}()

var symbolToFigure = map[rune]Figure{
	'N': Knight, 'B': Bishop, 'R': Rook, 'Q': Queen, 'K': King,
}

// PositionFromFEN parses a FEN string into a new Position, splitting it
// into fields with strings.Fields. Missing halfmove and fullmove fields
// default to 0 and 1.
func PositionFromFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, &FenParseError{Field: "fen", Value: fen, Reason: "not enough fields"}
	}
	if len(fields) < 5 {
		fields = append(fields, "0")
	}
	if len(fields) < 6 {
		fields = append(fields, "1")
	}

	pos := emptyPosition()
	if err := parsePiecePlacement(fields[0], pos); err != nil {
		return nil, err
	}
	if err := parseSideToMove(fields[1], pos); err != nil {
		return nil, err
	}
	if err := parseCastlingAbility(fields[2], pos); err != nil {
		return nil, err
	}
	if err := parseEnpassantSquare(fields[3], pos); err != nil {
		return nil, err
	}
	hm, err := strconv.Atoi(fields[4])
	if err != nil || hm < 0 {
		return nil, &FenParseError{Field: "halfmove", Value: fields[4], Reason: "not a nonnegative integer"}
	}
	pos.halfmoveClock = hm
	fm, err := strconv.Atoi(fields[5])
	if err != nil || fm < 1 {
		return nil, &FenParseError{Field: "fullmove", Value: fields[5], Reason: "not a positive integer"}
	}
	pos.fullmoveNumber = fm
	return pos, nil
}

func parsePiecePlacement(s string, pos *Position) error {
	ranks := strings.Split(s, "/")
	if len(ranks) != 8 {
		return &FenParseError{Field: "piece placement", Value: s, Reason: "expected 8 ranks"}
	}
	for i, rank := range ranks {
		r := 7 - i
		f := 0
		for _, c := range rank {
			if c >= '1' && c <= '8' {
				f += int(c - '0')
				continue
			}
			pc, ok := symbolToPiece[byte(c)]
			if !ok {
				return &FenParseError{Field: "piece placement", Value: s, Reason: "unknown piece symbol"}
			}
			if f > 7 {
				return &FenParseError{Field: "piece placement", Value: s, Reason: "rank too long"}
			}
			pos.Put(RankFile(r, f), pc)
			f++
		}
		if f != 8 {
			return &FenParseError{Field: "piece placement", Value: s, Reason: "rank too short"}
		}
	}
	return nil
}

func formatPiecePlacement(pos *Position) string {
	var sb strings.Builder
	for r := 7; r >= 0; r-- {
		empty := 0
		for f := 0; f < 8; f++ {
			pc := pos.Get(RankFile(r, f))
			if pc == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(pieceToSymbol[pc])
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if r != 0 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

func parseSideToMove(s string, pos *Position) error {
	switch s {
	case "w":
		pos.toMove = White
	case "b":
		pos.toMove = Black
		pos.hash ^= zobristColor[Black]
	default:
		return &FenParseError{Field: "side to move", Value: s, Reason: "expected w or b"}
	}
	return nil
}

func formatSideToMove(pos *Position) string {
	if pos.toMove == White {
		return "w"
	}
	return "b"
}

func parseCastlingAbility(s string, pos *Position) error {
	if s == "-" {
		pos.hash ^= zobristCastle[NoCastle]
		return nil
	}
	var ca Castle
	for _, c := range s {
		switch c {
		case 'K':
			ca |= WhiteOO
		case 'Q':
			ca |= WhiteOOO
		case 'k':
			ca |= BlackOO
		case 'q':
			ca |= BlackOOO
		default:
			return &FenParseError{Field: "castling ability", Value: s, Reason: "unknown symbol"}
		}
	}
	pos.castle = ca
	pos.hash ^= zobristCastle[pos.castle]
	return nil
}

func formatCastlingAbility(pos *Position) string {
	return pos.castle.String()
}

func parseEnpassantSquare(s string, pos *Position) error {
	if s == "-" {
		pos.enpassant = NoSquare
		return nil
	}
	sq, err := SquareFromString(s)
	if err != nil {
		return err
	}
	pos.enpassant = sq
	if pos.hasEnpassantCapturer(sq) {
		pos.hash ^= zobristEnpassant[sq]
	}
	return nil
}

func formatEnpassantSquare(pos *Position) string {
	return pos.enpassant.String()
}

// UCIToMove parses a long algebraic move such as "e2e4" or "e7e8q"
// against the legal moves available in the current position.
func (pos *Position) UCIToMove(s string) (Move, error) {
	if len(s) < 4 || len(s) > 5 {
		return NullMove, &FenParseError{Field: "uci move", Value: s, Reason: "wrong length"}
	}
	from, err := SquareFromString(s[0:2])
	if err != nil {
		return NullMove, err
	}
	to, err := SquareFromString(s[2:4])
	if err != nil {
		return NullMove, err
	}
	var promo Figure
	if len(s) == 5 {
		fig, ok := symbolToFigure[rune(s[4]-'a'+'A')]
		if !ok {
			return NullMove, &FenParseError{Field: "uci move", Value: s, Reason: "unknown promotion figure"}
		}
		promo = fig
	}

	var moves []Move
	pos.GenerateLegalMoves(&moves)
	for _, m := range moves {
		if m.From() != from || m.To() != to {
			continue
		}
		if m.MoveType() == Promotion && m.Target().Figure() != promo {
			continue
		}
		if m.MoveType() != Promotion && promo != NoFigure {
			continue
		}
		return m, nil
	}
	return NullMove, &IllegalMoveError{Move: buildMove(pos, from, to, promo), FEN: pos.FEN()}
}

// buildMove assembles a best-effort Move for error reporting when no
// legal move in the position matches (from, to, promo); its fields are
// informational only and it must never be played.
func buildMove(pos *Position, from, to Square, promo Figure) Move {
	piece := pos.Get(from)
	capture := pos.Get(to)
	target := piece
	moveType := Normal
	if promo != NoFigure {
		moveType = Promotion
		target = ColorFigure(piece.Color(), promo)
	}
	return MakeMove(moveType, from, to, capture, target)
}

// FEN formats the position in Forsyth-Edwards notation.
func (pos *Position) FEN() string {
	return formatPiecePlacement(pos) + " " +
		formatSideToMove(pos) + " " +
		formatCastlingAbility(pos) + " " +
		formatEnpassantSquare(pos) + " " +
		strconv.Itoa(pos.halfmoveClock) + " " +
		strconv.Itoa(pos.fullmoveNumber)
}
