// Perft is a perft tool.
//
// Perft's main purpose is to test, debug and benchmark move generation.
// To do this we count the number of nodes, captures, en passant,
// castles and promotions for given depths (usually small, 4-7) from a
// specific position. Perft can split up to any level to aid debugging.
//
// For more results and test description see:
//      https://www.chessprogramming.org/Perft
//      https://www.chessprogramming.org/Perft_Results
//
// Examples:
//
//	$ ./perft --fen startpos --max_depth 6
//	$ ./perft --fen kiwipete --max_depth 4 --divide
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rookwood/corvid/engine"
)

var (
	fen      = flag.String("fen", "startpos", "position to search, or one of startpos/kiwipete/duplain")
	minDepth = flag.Int("min_depth", 1, "minimum depth to search (inclusive)")
	maxDepth = flag.Int("max_depth", 5, "maximum depth to search (inclusive)")
	depth    = flag.Int("depth", 0, "if non zero, searches only this depth")
	divide   = flag.Bool("divide", false, "print a per-root-move node count breakdown")
)

type counters struct {
	nodes      uint64
	captures   uint64
	enpassant  uint64
	castles    uint64
	promotions uint64
}

func (c *counters) add(o counters) {
	c.nodes += o.nodes
	c.captures += o.captures
	c.enpassant += o.enpassant
	c.castles += o.castles
	c.promotions += o.promotions
}

var known = map[string]string{
	"startpos": "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
	"kiwipete": "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"duplain":  "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
}

var expected = map[string][]uint64{
	"startpos": {1, 20, 400, 8902, 197281, 4865609, 119060324},
	"kiwipete": {1, 48, 2039, 97862, 4085603, 193690690},
	"duplain":  {1, 14, 191, 2812, 43238, 674624, 11030083},
}

func perft(pos *engine.Position, depth int, counts *counters) {
	if depth == 0 {
		counts.nodes++
		return
	}

	var moves []engine.Move
	pos.GenerateMoves(engine.All, &moves)
	mover := pos.SideToMove()
	for _, move := range moves {
		pos.DoMove(move)
		if pos.IsChecked(mover) {
			pos.UndoMove()
			continue
		}

		if depth == 1 {
			switch {
			case move.MoveType() == engine.Enpassant:
				counts.enpassant++
				counts.captures++
			case move.Capture() != engine.NoPiece:
				counts.captures++
			}
			if move.MoveType() == engine.Castling {
				counts.castles++
			}
			if move.MoveType() == engine.Promotion {
				counts.promotions++
			}
		}

		perft(pos, depth-1, counts)
		pos.UndoMove()
	}
}

// runDivide counts each root move's subtree in its own goroutine, on a
// clone of pos, since the children are independent and depth is often
// large enough for this to matter.
func runDivide(pos *engine.Position, depth int) {
	var moves []engine.Move
	pos.GenerateLegalMoves(&moves)
	type line struct {
		uci   string
		nodes uint64
	}
	lines := make([]line, len(moves))

	g, _ := errgroup.WithContext(context.Background())
	for i, move := range moves {
		i, move := i, move
		g.Go(func() error {
			branch := pos.Clone()
			branch.DoMove(move)
			var c counters
			perft(branch, depth-1, &c)
			lines[i] = line{move.UCI(), c.nodes}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}

	sort.Slice(lines, func(i, j int) bool { return lines[i].uci < lines[j].uci })
	var total uint64
	for _, l := range lines {
		fmt.Printf("%s: %d\n", l.uci, l.nodes)
		total += l.nodes
	}
	fmt.Printf("total: %d\n", total)
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lshortfile)

	fenStr := *fen
	var reference []uint64
	if s, ok := known[fenStr]; ok {
		reference = expected[fenStr]
		fenStr = s
	}
	if *depth != 0 {
		*minDepth, *maxDepth = *depth, *depth
	}

	pos, err := engine.PositionFromFEN(fenStr)
	if err != nil {
		log.Fatalln("cannot parse --fen:", err)
	}

	if *divide {
		runDivide(pos, *maxDepth)
		return
	}

	fmt.Printf("Searching FEN %q\n", fenStr)
	fmt.Printf("depth        nodes   captures enpassant castles   promotions eval  KNps   elapsed\n")
	fmt.Printf("-----+------------+----------+---------+---------+----------+-----+------+-------\n")

	for d := *minDepth; d <= *maxDepth; d++ {
		start := time.Now()
		var c counters
		perft(pos, d, &c)
		elapsed := time.Since(start)

		ok := ""
		if d < len(reference) {
			if c.nodes == reference[d] {
				ok = "good"
			} else {
				ok = "bad"
			}
		}

		fmt.Printf("   %2d %12d %10d %9d %9d %10d %-4s %6.f %v\n",
			d, c.nodes, c.captures, c.enpassant, c.castles, c.promotions,
			ok, float64(c.nodes)/elapsed.Seconds()/1e3, elapsed)

		if ok == "bad" {
			fmt.Printf("   %2d %12d expected\n", d, reference[d])
			break
		}
	}
}
