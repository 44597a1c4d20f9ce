// Copyright 2014-2017 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

// maxPly bounds the killers table; check extensions can keep a line
// alive well past the nominal iterative-deepening depth, so this is
// sized generously above any depth this engine is configured to reach
// rather than at the typical search depth itself.
const maxPly = 256
const historyTableSize = 1 << 14

// clampPly folds a ply beyond maxPly back onto the table's last slot,
// so a pathologically extended line degrades move ordering instead of
// panicking.
func clampPly(ply int) int {
	if ply >= maxPly {
		return maxPly - 1
	}
	if ply < 0 {
		return 0
	}
	return ply
}

// mvvlvaBonus ranks a capture by victim value scaled well above any
// attacker penalty, so captures always sort ahead of quiet moves.
var mvvlvaBonus = [FigureArraySize]int32{0, 100, 320, 330, 500, 975, 10000}

func mvvlva(m Move) int32 {
	var promo int32
	if m.MoveType() == Promotion {
		promo = mvvlvaBonus[m.Target().Figure()]
	}
	if m.Capture() == NoPiece && promo == 0 {
		return 0
	}
	return 1_000_000 + mvvlvaBonus[m.Capture().Figure()]*100 - mvvlvaBonus[m.Piece().Figure()] + promo
}

// historyTable scores quiet moves by how often they have produced a
// cutoff in the past, hashed by (from, to, figure) into a fixed table
// so no explicit decay pass is needed: the increment/decrement on every
// use keeps values self-limiting.
type historyTable [historyTableSize]int32

func historyIndex(m Move) uint32 {
	h := (uint32(m.From())<<6 | uint32(m.To())) ^ uint32(m.Piece())*2654435761
	return h & (historyTableSize - 1)
}

func (h *historyTable) bonus(m Move) int32 { return h[historyIndex(m)%historyTableSize] }

func (h *historyTable) update(m Move, good bool) {
	idx := historyIndex(m) % historyTableSize
	if good {
		h[idx] += 32
	} else {
		h[idx] -= 8
	}
	if h[idx] > 1<<20 {
		h[idx] >>= 1
	}
	if h[idx] < -(1 << 20) {
		h[idx] >>= 1
	}
}

// searchTables holds the per-search-thread move-ordering state: killer
// moves, counter moves and history, plus the PRNG used to break
// ordering ties deterministically within one search.
type searchTables struct {
	history historyTable
	killers [maxPly][2]Move
	counter [1 << 12]Move
	rng     *splitMix64
}

func newSearchTables(seed uint64) *searchTables {
	return &searchTables{rng: newSplitMix64(seed)}
}

func (st *searchTables) isKiller(ply int, m Move) bool {
	ply = clampPly(ply)
	return st.killers[ply][0] == m || st.killers[ply][1] == m
}

func (st *searchTables) saveKiller(ply int, m Move) {
	ply = clampPly(ply)
	if st.killers[ply][0] != m {
		st.killers[ply][1] = st.killers[ply][0]
		st.killers[ply][0] = m
	}
}

func counterIndex(last Move) int {
	return int(murmurMix(uint64(last), murmurSeed[1]) & (1<<12 - 1))
}

func (st *searchTables) saveCounter(last, m Move) {
	if last != NullMove {
		st.counter[counterIndex(last)] = m
	}
}

func (st *searchTables) counterMove(last Move) Move {
	if last == NullMove {
		return NullMove
	}
	return st.counter[counterIndex(last)]
}

// orderMoves scores and sorts moves in place: hash move first, then
// violent moves by MVV/LVA, then killers/counter, then quiet moves by
// history, with a low-order PRNG perturbation to break exact ties.
func (st *searchTables) orderMoves(moves []Move, ply int, hashMove, lastMove Move) {
	counter := st.counterMove(lastMove)
	keys := make([]int64, len(moves))
	for i, m := range moves {
		var key int64
		switch {
		case m == hashMove:
			key = 1 << 40
		case m.IsViolent():
			key = int64(mvvlva(m)) << 16
		case st.isKiller(ply, m):
			key = 900_000 << 8
		case m == counter:
			key = 850_000 << 8
		default:
			key = int64(st.history.bonus(m)) << 8
		}
		key = key<<8 | int64(st.rng.next()&0xff)
		keys[i] = key
	}
	shellSort(moves, keys)
}

var shellSortGaps = [...]int{132, 57, 23, 10, 4, 1}

func shellSort(moves []Move, keys []int64) {
	n := len(moves)
	for _, gap := range shellSortGaps {
		for i := gap; i < n; i++ {
			mv, key := moves[i], keys[i]
			j := i
			for ; j >= gap && keys[j-gap] < key; j -= gap {
				moves[j] = moves[j-gap]
				keys[j] = keys[j-gap]
			}
			moves[j] = mv
			keys[j] = key
		}
	}
}

// recordCutoff updates killers/counter/history after a quiet move m
// causes a beta cutoff at ply, and penalizes the quiet moves tried
// before it that did not.
func (st *searchTables) recordCutoff(ply int, lastMove, m Move, triedQuiet []Move) {
	if m.IsQuiet() {
		st.saveKiller(ply, m)
		st.saveCounter(lastMove, m)
		st.history.update(m, true)
	}
	for _, q := range triedQuiet {
		if q != m {
			st.history.update(q, false)
		}
	}
}
