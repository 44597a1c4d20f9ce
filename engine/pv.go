// Copyright 2014-2017 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

const pvTableBits = 13
const pvTableSize = 1 << pvTableBits

type pvEntry struct {
	lock uint64
	move Move
}

// pvTable records the best move found for a position, keyed by Zobrist
// hash, so the principal variation can be walked after a search
// completes without threading it through every recursive call.
type pvTable [pvTableSize]pvEntry

func newPvTable() *pvTable { return &pvTable{} }

func (pv *pvTable) Put(pos *Position, move Move) {
	if move == NullMove {
		return
	}
	pv[pos.Zobrist()%pvTableSize] = pvEntry{lock: pos.Zobrist(), move: move}
}

func (pv *pvTable) get(pos *Position) (Move, bool) {
	e := pv[pos.Zobrist()%pvTableSize]
	if e.lock != pos.Zobrist() {
		return NullMove, false
	}
	return e.move, true
}

// Get walks the principal variation from pos by repeatedly applying the
// stored move and looking up the next one, undoing every move before
// returning so the position is left unchanged.
func (pv *pvTable) Get(pos *Position) []Move {
	var line []Move
	seen := map[uint64]bool{}
	for {
		move, ok := pv.get(pos)
		if !ok || seen[pos.Zobrist()] || !pos.IsLegal(move) {
			break
		}
		seen[pos.Zobrist()] = true
		line = append(line, move)
		pos.DoMove(move)
	}
	for range line {
		pos.UndoMove()
	}
	return line
}
