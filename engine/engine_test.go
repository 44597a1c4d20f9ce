// Copyright 2014-2017 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"errors"
	"testing"
	"time"
)

func newTestEngine(t *testing.T, fen string) *Engine {
	t.Helper()
	pos := mustFEN(t, fen)
	eng, err := NewEngine(pos, NulLogger{}, Options{HashSizeMB: 1})
	if err != nil {
		t.Fatal(err)
	}
	return eng
}

func TestEnginePerftStartpos(t *testing.T) {
	eng := newTestEngine(t, startFEN)
	want := []uint64{1, 20, 400, 8902, 197281}
	for depth, w := range want {
		if got := eng.Perft(depth); got != w {
			t.Errorf("Perft(%d) = %d, want %d", depth, got, w)
		}
	}
}

func TestEnginePerftKiwipete(t *testing.T) {
	eng := newTestEngine(t, fenKiwipete)
	want := []uint64{1, 48, 2039, 97862}
	for depth, w := range want {
		if got := eng.Perft(depth); got != w {
			t.Errorf("Perft(%d) = %d, want %d", depth, got, w)
		}
	}
}

func TestEngineDivideSumsToPerft(t *testing.T) {
	eng := newTestEngine(t, startFEN)
	const depth = 3
	total := eng.Perft(depth)
	divide := eng.Divide(depth)

	var sum uint64
	for _, n := range divide {
		sum += n
	}
	if sum != total {
		t.Errorf("sum of Divide(%d) = %d, want Perft(%d) = %d", depth, sum, depth, total)
	}
}

func TestEngineFindsMateInOne(t *testing.T) {
	// White to move: Re1-e8 is a back-rank mate, the black king boxed
	// in by its own pawns.
	eng := newTestEngine(t, "6k1/5ppp/8/8/8/8/8/4R2K w - - 0 1")
	best, _, _ := eng.Go(Limits{Depth: 3})

	mate, err := eng.Position.UCIToMove("e1e8")
	if err != nil {
		t.Fatal(err)
	}
	if best != mate {
		t.Errorf("Go() returned %v, want the mating move %v", best, mate)
	}
}

func TestEngineScoreIsZeroAtStartpos(t *testing.T) {
	eng := newTestEngine(t, startFEN)
	if got := eng.Score(); got != 0 {
		t.Errorf("Score() at startpos = %d, want 0", got)
	}
}

func TestEngineStopEndsSearchPromptly(t *testing.T) {
	eng := newTestEngine(t, startFEN)
	done := make(chan struct{})
	go func() {
		eng.Go(Limits{Infinite: true})
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	eng.Stop()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Go() did not return promptly after Stop()")
	}
}

func TestEngineSetPositionReplaysMoves(t *testing.T) {
	eng := newTestEngine(t, startFEN)
	if err := eng.SetPosition(nil, "e2e4", "e7e5", "g1f3"); err != nil {
		t.Fatal(err)
	}
	if eng.Position.SideToMove() != Black {
		t.Errorf("after 3 plies, side to move = %v, want Black", eng.Position.SideToMove())
	}
}

func TestEngineNewGameClearsHashTable(t *testing.T) {
	eng := newTestEngine(t, startFEN)
	eng.Go(Limits{Depth: 3})
	if _, ok := eng.tt.Get(eng.Position); !ok {
		t.Skip("search did not populate the root position's hash entry")
	}
	eng.NewGame()
	if _, ok := eng.tt.Get(eng.Position); ok {
		t.Error("expected the transposition table to be empty after NewGame")
	}
}

func TestEnginePlaysASelfGameWithoutPanicking(t *testing.T) {
	pos := mustFEN(t, startFEN)
	eng, err := NewEngine(pos, NulLogger{}, Options{HashSizeMB: 1})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 6; i++ {
		best, _, _ := eng.Go(Limits{Depth: 2})
		if best == NullMove {
			break
		}
		eng.DoMove(best)
	}
}

func TestZobristFromScratchAfterTestGames(t *testing.T) {
	for _, game := range testGames[:2] {
		pos := mustFEN(t, startFEN)
		for _, uci := range splitFields(game) {
			move, err := pos.UCIToMove(uci)
			if err != nil {
				t.Fatalf("UCIToMove(%q): %v", uci, err)
			}
			pos.DoMove(move)
		}
		if got, want := pos.Zobrist(), zobristFromScratch(pos); got != want {
			t.Errorf("incremental hash %d, from scratch %d after replaying a game", got, want)
		}
	}
}

func TestNewEngineRejectsOutOfRangeOptions(t *testing.T) {
	pos := mustFEN(t, startFEN)
	_, err := NewEngine(pos, NulLogger{}, Options{Threads: -1})
	var oor *OutOfRange
	if !errors.As(err, &oor) {
		t.Fatalf("NewEngine with Threads=-1: got %v, want an *OutOfRange error", err)
	}
}

func TestEngineLazySMPFindsMateInOne(t *testing.T) {
	pos := mustFEN(t, "6k1/5ppp/8/8/8/8/8/4R2K w - - 0 1")
	eng, err := NewEngine(pos, NulLogger{}, Options{HashSizeMB: 1, Threads: 4})
	if err != nil {
		t.Fatal(err)
	}
	best, _, _ := eng.Go(Limits{Depth: 3})

	mate, err := eng.Position.UCIToMove("e1e8")
	if err != nil {
		t.Fatal(err)
	}
	if best != mate {
		t.Errorf("4-thread Go() returned %v, want the mating move %v", best, mate)
	}
}

func TestEngineRespectsNodeLimit(t *testing.T) {
	eng := newTestEngine(t, startFEN)
	eng.Go(Limits{Nodes: 1000})
	if got := eng.Stats.Nodes; got < 1000 {
		t.Errorf("search under a 1000 node cap visited only %d nodes", got)
	}
}

func splitFields(s string) []string {
	var fields []string
	start := -1
	for i := 0; i <= len(s); i++ {
		if i < len(s) && s[i] != ' ' {
			if start == -1 {
				start = i
			}
			continue
		}
		if start != -1 {
			fields = append(fields, s[start:i])
			start = -1
		}
	}
	return fields
}
