package main

import (
	"testing"

	"github.com/rookwood/corvid/engine"
)

func testHelper(t *testing.T, name string, maxDepth int) {
	fen := known[name]
	reference := expected[name]
	for depth := 0; depth <= maxDepth; depth++ {
		if testing.Short() && reference[depth] > 200000 {
			return
		}

		pos, err := engine.PositionFromFEN(fen)
		if err != nil {
			t.Fatalf("invalid FEN: %s", fen)
		}

		var c counters
		perft(pos, depth, &c)
		if c.nodes != reference[depth] {
			t.Errorf("%s at depth %d: expected %d nodes, got %d", name, depth, reference[depth], c.nodes)
		}
	}
}

func TestPerftStartpos(t *testing.T) {
	testHelper(t, "startpos", 5)
}

func TestPerftKiwipete(t *testing.T) {
	testHelper(t, "kiwipete", 4)
}

func TestPerftDuplain(t *testing.T) {
	testHelper(t, "duplain", 6)
}

func benchHelper(b *testing.B, name string, depth int) {
	pos, _ := engine.PositionFromFEN(known[name])
	for i := 0; i < b.N; i++ {
		var c counters
		perft(pos, depth, &c)
	}
}

func BenchmarkPerftStartpos(b *testing.B) {
	benchHelper(b, "startpos", 4)
}

func BenchmarkPerftKiwipete(b *testing.B) {
	benchHelper(b, "kiwipete", 3)
}

func BenchmarkPerftDuplain(b *testing.B) {
	benchHelper(b, "duplain", 4)
}
