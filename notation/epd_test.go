package notation

import (
	"testing"

	"github.com/rookwood/corvid/engine"
)

func testFENHelper(t *testing.T, expected *engine.Position, fen string) {
	epd, err := ParseFEN(fen)
	if err != nil {
		t.Fatal(err)
	}

	actual := epd.Position
	for sq := engine.Square(0); sq < 64; sq++ {
		if e, a := expected.Get(sq), actual.Get(sq); e != a {
			t.Errorf("at %v expected %v, got %v", sq, e, a)
		}
	}
	if expected.SideToMove() != actual.SideToMove() {
		t.Errorf("expected side to move %v, got %v", expected.SideToMove(), actual.SideToMove())
	}
	if expected.CastlingRights() != actual.CastlingRights() {
		t.Errorf("expected castling rights %v, got %v", expected.CastlingRights(), actual.CastlingRights())
	}
	if expected.EnpassantSquare() != actual.EnpassantSquare() {
		t.Errorf("expected enpassant square %v, got %v", expected.EnpassantSquare(), actual.EnpassantSquare())
	}
}

func TestFENStartPosition(t *testing.T) {
	expected, err := engine.PositionFromFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	testFENHelper(t, expected, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
}

func TestFENKiwipete(t *testing.T) {
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	expected, err := engine.PositionFromFEN(fen)
	if err != nil {
		t.Fatal(err)
	}
	testFENHelper(t, expected, fen)
}

func TestEPDParser(t *testing.T) {
	// An EPD from the Chess Chatter Club collection.
	line := `rnb2r1k/pp2p2p/2pp2p1/q2P1p2/8/1Pb2NP1/PB2PPBP/R2Q1RK1 w - - bm Qd2 Qe1; fmvn 123; hmvc 15; id "BK.14"; c9 "draw";`
	epd, err := ParseEPD(line)
	if err != nil {
		t.Fatal(err)
	}

	if epd.Id != "BK.14" {
		t.Errorf("expected id BK.14, got %s", epd.Id)
	}
	if len(epd.BestMove) != 2 {
		t.Fatalf("expected 2 best moves, got %d", len(epd.BestMove))
	}
	if epd.Position.FullmoveNumber() != 123 {
		t.Errorf("expected fullmove number 123, got %d", epd.Position.FullmoveNumber())
	}
	if epd.Position.HalfmoveClock() != 15 {
		t.Errorf("expected halfmove clock 15, got %d", epd.Position.HalfmoveClock())
	}
	if epd.Comment["c9"] != "draw" {
		t.Errorf("expected comment %q, got %q", "draw", epd.Comment["c9"])
	}
}

func TestEPDString(t *testing.T) {
	line := `r3r1k1/ppqb1ppp/8/4p1NQ/8/2P5/PP3PPP/R3R1K1 b - - bm Bf5; id "BK.12";`
	epd, err := ParseEPD(line)
	if err != nil {
		t.Fatal(err)
	}

	actual := epd.String()
	if line != actual {
		t.Errorf("invalid string:\n     got: %s\nexpected: %s\n", actual, line)
	}
}
