// Copyright 2014-2017 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFENRoundTrip(t *testing.T) {
	for _, fen := range []string{
		startFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbq1rk1/ppp1bppp/4pn2/3p4/2PP4/2N1PN2/PP3PPP/R1BQKB1R w KQ - 0 6",
	} {
		pos, err := PositionFromFEN(fen)
		require.NoError(t, err, "PositionFromFEN(%q)", fen)
		assert.Equal(t, fen, pos.FEN())
	}
}

func TestPositionFromFENInvalid(t *testing.T) {
	for _, fen := range []string{
		"",
		"not a fen",
		"8/8/8/8/8/8/8 w - - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
	} {
		_, err := PositionFromFEN(fen)
		assert.Error(t, err, "PositionFromFEN(%q)", fen)
	}
}

func TestUCIToMove(t *testing.T) {
	pos, err := PositionFromFEN(startFEN)
	require.NoError(t, err)

	move, err := pos.UCIToMove("e2e4")
	require.NoError(t, err)
	assert.Equal(t, SquareE2, move.From())
	assert.Equal(t, SquareE4, move.To())

	_, err = pos.UCIToMove("e2e5")
	assert.Error(t, err, "e2e5 is not legal from startpos")
}

func TestUCIToMovePromotion(t *testing.T) {
	pos, err := PositionFromFEN("8/P7/8/8/8/8/8/k1K5 w - - 0 1")
	require.NoError(t, err)

	move, err := pos.UCIToMove("a7a8q")
	require.NoError(t, err)
	assert.Equal(t, Promotion, move.MoveType())
	assert.Equal(t, Queen, move.Target().Figure())
}

func TestUCIToMoveIllegalReturnsIllegalMoveError(t *testing.T) {
	pos, err := PositionFromFEN(startFEN)
	require.NoError(t, err)

	_, err = pos.UCIToMove("e2e5")
	var illegal *IllegalMoveError
	require.True(t, errors.As(err, &illegal), "got %T, want *IllegalMoveError", err)
	assert.Equal(t, startFEN, illegal.FEN)
}

// TestFENRoundTripEveryPieceKind exercises pieceToSymbol/symbolToPiece
// for every (color, figure) pair, including the black king, whose
// encoded value is the largest Piece indexes into those tables.
func TestFENRoundTripEveryPieceKind(t *testing.T) {
	fen := "k6K/pppppppp/8/1n1b1r1q/1N1B1R1Q/8/PPPPPPPP/8 w - - 0 1"
	pos, err := PositionFromFEN(fen)
	require.NoError(t, err)
	assert.Equal(t, fen, pos.FEN())
}
