// Copyright 2014-2017 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package engine implements board representation, move generation and
// position searching.
//
// Position (basic.go, position.go) uses bitboards and magic bitboards
// for sliding move generation. Search (engine.go) implements iterative
// deepening with aspiration windows, principal variation search,
// null-move pruning, late move reductions, quiescence search and a
// shared transposition table. Move ordering (move_ordering.go) scores
// the hash move, captures by MVV/LVA, killers, counter moves and
// history in one pass.
package engine

import (
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	checkDepthExtension = 1  // how much to extend search in case of checks
	nullMoveDepthLimit   = 1  // disable null-move below and including this limit
	lmrDepthLimit        = 3  // do not do LMR below and including this limit
	futilityDepthLimit   = 3  // maximum depth to do futility pruning

	initialAspirationWindow = 21  // ~a fifth of a pawn
	futilityMargin          = 150 // ~one and a half pawn
	checkpointStep          = 4096
)

// futilityFigureBonus bounds how much capturing a figure can raise the
// static evaluation, used by the quiescence and frontier futility
// pruning heuristics.
var futilityFigureBonus = [FigureArraySize]int32{0, 100, 325, 325, 500, 975, 20000}

// Options configures an Engine at construction time.
type Options struct {
	HashSizeMB int  // transposition table size; 0 uses DefaultHashTableSizeMB
	Threads    int  // Lazy SMP worker count; 0 or 1 runs single-threaded
	AnalyseMode bool // true to log an info line after each completed depth
}

// maxHashSizeMB and maxThreads bound the configuration values Validate
// accepts; chosen generously, well above any realistic desktop box.
const (
	maxHashSizeMB = 1 << 16
	maxThreads    = 256
)

// Validate rejects an Options value the engine cannot act on, returning
// an OutOfRange error naming the first offending field.
func (o Options) Validate() error {
	if o.HashSizeMB < 0 || o.HashSizeMB > maxHashSizeMB {
		return &OutOfRange{Option: "Hash", Value: o.HashSizeMB, Min: 0, Max: maxHashSizeMB}
	}
	if o.Threads < 0 || o.Threads > maxThreads {
		return &OutOfRange{Option: "Threads", Value: o.Threads, Min: 0, Max: maxThreads}
	}
	return nil
}

// Stats reports statistics for one completed or in-progress search.
type Stats struct {
	CacheHit  uint64
	CacheMiss uint64
	Nodes     uint64
	Depth     int
	SelDepth  int
}

// CacheHitRatio returns the ratio of transposition table hits to total probes.
func (s *Stats) CacheHitRatio() float32 {
	if s.CacheHit+s.CacheMiss == 0 {
		return 0
	}
	return float32(s.CacheHit) / float32(s.CacheHit+s.CacheMiss)
}

// Engine searches a Position for the best move, owning every piece of
// mutable search state: the transposition table, evaluator, move
// ordering tables, principal variation table and time control.
type Engine struct {
	Options  Options
	Log      Logger
	Stats    Stats
	Position *Position

	tt    *HashTable
	eval  *Eval
	pv    *pvTable
	table *searchTables

	rootPly    int
	tc         *TimeControl
	stopped    bool
	checkpoint uint64
	seed       uint64
}

// NewEngine constructs an Engine. If pos is nil, the starting position
// is used. It returns an OutOfRange error without constructing anything
// if options carries a value the engine cannot act on.
func NewEngine(pos *Position, log Logger, options Options) (*Engine, error) {
	if err := options.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = NulLogger{}
	}
	eng := &Engine{
		Options: options,
		Log:     log,
		tt:      NewHashTable(options.HashSizeMB),
		eval:    NewEval(),
		pv:      newPvTable(),
		table:   newSearchTables(1),
		seed:    1,
	}
	eng.SetPosition(pos)
	return eng, nil
}

// newHelper returns one Lazy SMP worker: it shares the coordinating
// Engine's transposition table and time control, but keeps its own
// position, evaluator cache and move-ordering tables so it explores
// the tree along a different path (seeded differently for move-order
// tie-breaking and search-instability diversification).
func (eng *Engine) newHelper(seed uint64) *Engine {
	helper := &Engine{
		Options: eng.Options,
		Log:     NulLogger{},
		tt:      eng.tt,
		eval:    NewEval(),
		pv:      newPvTable(),
		table:   newSearchTables(seed),
		seed:    seed,
		tc:      eng.tc,
	}
	helper.SetPosition(eng.Position.Clone())
	return helper
}

// runHelper runs iterative deepening as a Lazy SMP worker, feeding the
// shared transposition table until the shared time control aborts. A
// helper that completes maxDepth stops the shared time control.
func (eng *Engine) runHelper(maxDepth int) {
	eng.Stats = Stats{Depth: -1}
	eng.rootPly = eng.Position.Ply()
	eng.stopped = false
	eng.checkpoint = checkpointStep

	score := int32(0)
	for depth := 1; depth <= maxDepth && !eng.tc.Aborted(); depth++ {
		score = eng.search(int32(depth), score)
	}
	eng.tc.Stop()
}

// NewGame resets all state carried between searches: the transposition
// table, move ordering history and the principal variation table. It
// also resets the current position to the starting position, which
// empties the repetition history.
func (eng *Engine) NewGame() {
	eng.tt.Clear()
	eng.table = newSearchTables(eng.seed)
	eng.pv = newPvTable()
	eng.SetPosition(nil)
}

// SetPosition sets the current position, replaying moves (in UCI
// notation) on top of it when provided. If a move is rejected, the
// error is returned and the current position is left unchanged.
func (eng *Engine) SetPosition(pos *Position, moves ...string) error {
	p := pos
	if p == nil {
		p, _ = PositionFromFEN(startFEN)
	}
	for _, uci := range moves {
		move, err := p.UCIToMove(uci)
		if err != nil {
			return err
		}
		p.DoMove(move)
	}
	eng.Position = p
	return nil
}

// DoMove executes a move on the current position.
func (eng *Engine) DoMove(move Move) { eng.Position.DoMove(move) }

// UndoMove undoes the last move played.
func (eng *Engine) UndoMove() { eng.Position.UndoMove() }

// Stop requests the running search to unwind as soon as possible.
func (eng *Engine) Stop() {
	if eng.tc != nil {
		eng.tc.Stop()
	}
}

// Score evaluates the current position from the side-to-move's POV.
func (eng *Engine) Score() int32 { return eng.eval.Evaluate(eng.Position) }

func (eng *Engine) ply() int { return eng.Position.Ply() - eng.rootPly }

// endPosition reports a terminal score for positions that never reach
// search depth zero: no kings, insufficient material, the fifty move
// rule or a repeated position.
func (eng *Engine) endPosition() (int32, bool) {
	pos := eng.Position
	if pos.ByPiece(White, King) == 0 && pos.ByPiece(Black, King) == 0 {
		return 0, true
	}
	if pos.ByPiece(White, King) == 0 {
		return pos.Us().Multiplier() * (MatedScore + int32(eng.ply())), true
	}
	if pos.ByPiece(Black, King) == 0 {
		return pos.Us().Multiplier() * (MateScore - int32(eng.ply())), true
	}
	if pos.InsufficientMaterial() {
		return 0, true
	}
	if pos.FiftyMoveRule() {
		return 0, true
	}
	// At root keep searching through a repeated position so a move is
	// still returned; everywhere else two repetitions are pruned as a
	// draw, same as three would be.
	if eng.ply() > 0 && pos.IsRepetition() || pos.IsThreefoldRepetition() {
		return 0, true
	}
	return 0, false
}

// retrieveHash probes the transposition table, adjusting any stored
// mate score back to be relative to the search root.
func (eng *Engine) retrieveHash() (hashEntry, bool) {
	entry, ok := eng.tt.Get(eng.Position)
	if !ok {
		eng.Stats.CacheMiss++
		return hashEntry{}, false
	}
	if entry.move != NullMove && !eng.Position.IsPseudoLegal(entry.move) {
		eng.Stats.CacheMiss++
		return hashEntry{}, false
	}
	eng.Stats.CacheHit++
	entry.score = int16(adjustScoreForProbe(entry.score, eng.ply()))
	return entry, true
}

// updateHash stores the result of searching the current position at
// depth, classifying the bound relative to the α/β window searched.
func (eng *Engine) updateHash(α, β, depth, score int32, move Move) {
	bound := Exact
	switch {
	case score <= α:
		bound = Upper
	case score >= β:
		bound = Lower
	}
	eng.tt.Put(eng.Position, int8(depth), adjustScoreForStore(score, eng.ply()), bound, move)
}

// searchQuiescence resolves captures (and, when in check, evasions)
// until the position is quiet, returning a score from the side to
// move's POV. A stand-pat cutoff returns β; a move that fails high
// returns its own score.
func (eng *Engine) searchQuiescence(α, β int32) int32 {
	eng.Stats.Nodes++
	eng.tc.IncrementNodes()
	if score, done := eng.endPosition(); done {
		return score
	}

	static := eng.Score()
	if static >= β {
		return β
	}

	pos := eng.Position
	us := pos.Us()
	inCheck := pos.IsChecked(us)
	localα := max32(α, static)

	var moves []Move
	if inCheck {
		pos.GenerateEvasions(&moves)
	} else {
		pos.GenerateMoves(Violent, &moves)
	}
	eng.table.orderMoves(moves, eng.ply(), NullMove, pos.LastMove())

	var bestMove Move
	for _, move := range moves {
		if !inCheck && isFutile(pos, static, localα, futilityMargin, move) {
			continue
		}

		eng.DoMove(move)
		if eng.Position.IsChecked(us) || (!inCheck && move.MoveType() != Promotion && !seeSign(pos, move)) {
			eng.UndoMove()
			continue
		}
		score := -eng.searchQuiescence(-β, -localα)
		eng.UndoMove()

		if score >= β {
			return score
		}
		if score > localα {
			localα = score
			bestMove = move
		}
	}

	if α < localα && localα < β {
		eng.pv.Put(eng.Position, bestMove)
	}
	return localα
}

// tryMove makes move (which may be NullMove) and descends the tree,
// applying late move reduction and the principal variation search
// null-window scout as requested by the caller.
func (eng *Engine) tryMove(α, β, depth, lmr int32, nullWindow bool, move Move) int32 {
	depth--

	score := α + 1
	if lmr > 0 {
		score = -eng.searchTree(-α-1, -α, depth-lmr)
	}

	if score > α {
		if nullWindow {
			score = -eng.searchTree(-α-1, -α, depth)
			if α < score && score < β {
				score = -eng.searchTree(-β, -α, depth)
			}
		} else {
			score = -eng.searchTree(-β, -α, depth)
		}
	}

	eng.UndoMove()
	return score
}

// passed reports whether move creates or removes a passed pawn, used
// to keep history/futility pruning from discarding promoting pushes.
func passed(pos *Position, m Move) bool {
	if m.Piece().Figure() == Pawn {
		bb := m.To().Bitboard()
		bb = west(bb) | bb | east(bb)
		pawns := pos.ByFigure(Pawn) &^ m.To().Bitboard() &^ m.From().Bitboard()
		if m.Piece().Color().forwardSpan(bb)&pawns == 0 {
			return true
		}
	}
	if m.Capture().Figure() == Pawn {
		bb := m.To().Bitboard()
		bb = west(bb) | bb | east(bb)
		pawns := pos.ByFigure(Pawn) &^ m.To().Bitboard() &^ m.From().Bitboard()
		if m.Piece().Color().backwardSpan(bb)&pawns == 0 {
			return true
		}
	}
	return false
}

// isFutile reports whether m cannot plausibly raise static above α
// even after adding margin and the best possible capture gain.
func isFutile(pos *Position, static, α, margin int32, m Move) bool {
	if m.MoveType() == Promotion {
		return false
	}
	δ := futilityFigureBonus[m.Capture().Figure()]
	return static+δ+margin < α && !passed(pos, m)
}

// searchTree implements the negamax/PVS framework. It fails soft: the
// returned score may lie outside [α, β].
func (eng *Engine) searchTree(α, β, depth int32) int32 {
	ply := eng.ply()
	pvNode := α+1 < β
	pos := eng.Position
	us, them := pos.Us(), pos.Them()

	eng.Stats.Nodes++
	eng.tc.IncrementNodes()
	if !eng.stopped && eng.Stats.Nodes >= eng.checkpoint {
		eng.checkpoint = eng.Stats.Nodes + checkpointStep
		if eng.tc.Aborted() {
			eng.stopped = true
		}
	}
	if eng.stopped {
		return α
	}
	if pvNode && ply > eng.Stats.SelDepth {
		eng.Stats.SelDepth = ply
	}

	if score, done := eng.endPosition(); done {
		if ply != 0 || score != 0 {
			return score
		}
	}

	if MateScore-int32(ply) <= α {
		return KnownWinScore
	}

	entry, found := eng.retrieveHash()
	hash := entry.move
	if found && depth <= int32(entry.depth) {
		score := int32(entry.score)
		switch {
		case entry.bound == Exact:
			if α < score && score < β {
				eng.pv.Put(pos, hash)
			}
			return score
		case entry.bound == Upper && score <= α:
			return score
		case entry.bound == Lower && score >= β:
			return score
		}
	}

	if depth <= 0 {
		if α >= KnownWinScore || β <= KnownLossScore {
			return eng.Score()
		}
		score := eng.searchQuiescence(α, β)
		eng.updateHash(α, β, depth, score, NullMove)
		return score
	}

	sideIsChecked := pos.IsChecked(us)

	if depth > nullMoveDepthLimit &&
		!sideIsChecked &&
		pos.MinorsAndMajors(us) != 0 &&
		KnownLossScore < α && β < KnownWinScore {
		eng.DoMove(NullMove)
		reduction := min32(pos.MinorsAndMajors(us), 2)
		score := eng.tryMove(β-1, β, depth-reduction, 0, false, NullMove)
		if score >= β {
			return β
		}
	}

	bestMove, bestScore := NullMove, int32(-InfinityScore)

	static := int32(0)
	allowLeafPruning := false
	if depth <= futilityDepthLimit && !sideIsChecked && !pvNode &&
		KnownLossScore < α && β < KnownWinScore {
		allowLeafPruning = true
		static = eng.Score()
	}

	nullWindow := false
	allowLateMove := !sideIsChecked && depth > lmrDepthLimit

	dropped := false
	numMoves := int32(0)
	localα := α

	var moves []Move
	if sideIsChecked {
		pos.GenerateEvasions(&moves)
	} else {
		pos.GenerateMoves(All, &moves)
	}
	eng.table.orderMoves(moves, ply, hash, pos.LastMove())
	var triedQuiet []Move

	for _, move := range moves {
		critical := move == hash || eng.table.isKiller(ply, move)
		numMoves++

		newDepth := depth
		eng.DoMove(move)

		if pos.IsChecked(us) {
			eng.UndoMove()
			continue
		}

		givesCheck := pos.IsChecked(them)
		if givesCheck {
			newDepth += checkDepthExtension
		}

		lmr := int32(0)
		if allowLateMove && !givesCheck && !critical && numMoves > 1 {
			if move.IsQuiet() {
				lmr = 1 + min32(depth, numMoves)/5
			}
		}

		if allowLeafPruning && !givesCheck && !critical {
			if stat := eng.table.history.bonus(move); stat < -15 && (move.IsQuiet() || seeSign(pos, move)) {
				dropped = true
				eng.UndoMove()
				continue
			}
			if isFutile(pos, static, localα, depth*futilityMargin, move) {
				bestScore = max32(bestScore, static)
				dropped = true
				eng.UndoMove()
				continue
			}
		}

		if move.IsQuiet() {
			triedQuiet = append(triedQuiet, move)
		}

		score := eng.tryMove(localα, β, newDepth, lmr, nullWindow, move)
		if allowLeafPruning && !givesCheck {
			eng.table.history.update(move, score > α)
		}

		if score >= β {
			eng.table.recordCutoff(ply, pos.LastMove(), move, triedQuiet)
			eng.updateHash(α, β, depth, score, move)
			return score
		}
		if score > bestScore {
			nullWindow = true
			bestMove, bestScore = move, score
			localα = max32(localα, score)
		}
	}

	if !dropped {
		if bestMove == NullMove {
			if sideIsChecked {
				bestScore = MatedScore + int32(ply)
			} else {
				bestScore = 0
			}
		}
		eng.updateHash(α, β, depth, bestScore, bestMove)
		if α < bestScore && bestScore < β {
			eng.pv.Put(pos, bestMove)
		}
	}

	return bestScore
}

// search runs one iterative-deepening depth with a gradually widened
// aspiration window around estimated, the score from the previous depth.
func (eng *Engine) search(depth, estimated int32) int32 {
	γ, δ := estimated, int32(initialAspirationWindow)
	α, β := max32(γ-δ, -InfinityScore), min32(γ+δ, InfinityScore)
	score := estimated

	if depth < 4 {
		α, β = -InfinityScore, InfinityScore
	}

	for !eng.stopped {
		score = eng.searchTree(α, β, depth)
		if score <= α {
			α = max32(α-δ, -InfinityScore)
			δ += δ / 2
		} else if score >= β {
			β = min32(β+δ, InfinityScore)
			δ += δ / 2
		} else {
			return score
		}
	}
	return score
}

// Go runs iterative deepening under limits, returning the best move
// found, its principal variation and final statistics. Time control
// should be started by the caller via limits; Go blocks until the
// search stops itself or Stop is called from another goroutine.
func (eng *Engine) Go(limits Limits) (Move, []Move, Stats) {
	eng.tc = NewTimeControl(realClock{}, limits)
	eng.tt.NewGeneration()
	eng.table.rng = newSplitMix64(eng.Position.Zobrist())
	eng.Stats = Stats{Depth: -1}
	eng.rootPly = eng.Position.Ply()
	eng.stopped = false
	eng.checkpoint = checkpointStep

	start := time.Now()
	score := int32(0)
	var pv []Move
	maxDepth := 64
	if limits.Depth > 0 {
		maxDepth = limits.Depth
	}

	// Lazy SMP: helpers search the same tree from the same root along
	// different move orders, feeding bestmove/bound information into the
	// shared transposition table that the root search then benefits
	// from on its next probe. Only the root engine's own PV is reported.
	var helpers errgroup.Group
	for i := 1; i < eng.Options.Threads; i++ {
		helper := eng.newHelper(eng.seed + uint64(i))
		helpers.Go(func() error {
			helper.runHelper(maxDepth)
			return nil
		})
	}

	for depth := 1; depth <= maxDepth; depth++ {
		eng.Stats.Depth = depth
		score = eng.search(int32(depth), score)

		if !eng.stopped {
			pv = eng.pv.Get(eng.Position)
			if eng.Options.AnalyseMode {
				eng.Log.Info(infoLine(depth, score, eng.Stats.Nodes, time.Since(start).Milliseconds(), pv))
			}
		}
		if eng.tc.Aborted() && !limits.Infinite {
			break
		}
	}

	eng.tc.Stop()
	helpers.Wait()

	var best Move
	if len(pv) > 0 {
		best = pv[0]
	}
	return best, pv, eng.Stats
}

// Perft counts the leaf nodes reachable in exactly depth plies, used to
// validate move generation against known reference counts.
func (eng *Engine) Perft(depth int) uint64 {
	return perftCount(eng.Position, depth)
}

// Divide breaks a Perft count down by the first move played, keyed by
// UCI notation.
func (eng *Engine) Divide(depth int) map[string]uint64 {
	result := map[string]uint64{}
	if depth <= 0 {
		return result
	}
	var moves []Move
	eng.Position.GenerateLegalMoves(&moves)
	for _, m := range moves {
		eng.Position.DoMove(m)
		result[m.UCI()] = perftCount(eng.Position, depth-1)
		eng.Position.UndoMove()
	}
	return result
}

func perftCount(pos *Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var moves []Move
	pos.GenerateLegalMoves(&moves)
	if depth == 1 {
		return uint64(len(moves))
	}
	var total uint64
	for _, m := range moves {
		pos.DoMove(m)
		total += perftCount(pos, depth-1)
		pos.UndoMove()
	}
	return total
}
