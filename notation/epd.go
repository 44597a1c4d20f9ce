// Package notation implements parsing of chess positions and test
// suites in FEN and EPD notation, external to the engine core so that
// puzzle and test-suite tooling can depend on it without pulling it
// into the search hot path.
package notation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rookwood/corvid/engine"
)

// EPD is one Extended Position Description record: a position plus the
// operations attached to it (best move, id, comments, move counters).
type EPD struct {
	Position *engine.Position
	Id       string
	BestMove []engine.Move
	Comment  map[string]string
}

// ParseFEN parses a plain FEN string (no trailing EPD operations) and
// returns it wrapped in an EPD.
func ParseFEN(line string) (*EPD, error) {
	pos, err := engine.PositionFromFEN(strings.TrimSpace(line))
	if err != nil {
		return nil, err
	}
	return &EPD{Position: pos, Comment: map[string]string{}}, nil
}

// ParseEPD parses a line in Extended Position Description format: four
// position fields followed by semicolon-terminated operations, e.g.
//
//	r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - bm Bb5; id "opening.1";
func ParseEPD(line string) (*EPD, error) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return nil, fmt.Errorf("notation: epd %q: fewer than 4 position fields", line)
	}
	fen := strings.Join(fields[:4], " ") + " 0 1"
	pos, err := engine.PositionFromFEN(fen)
	if err != nil {
		return nil, err
	}

	epd := &EPD{Position: pos, Comment: map[string]string{}}
	rest := strings.TrimSpace(strings.Join(fields[4:], " "))
	for _, op := range splitOperations(rest) {
		if err := applyOperation(epd, op); err != nil {
			return nil, fmt.Errorf("notation: epd %q: %v", line, err)
		}
	}
	return epd, nil
}

// splitOperations breaks the operations section of an EPD line into
// individual ";"-terminated operation strings, respecting quoted
// arguments so a ";" inside a comment string isn't treated as a
// separator.
func splitOperations(s string) []string {
	var ops []string
	var sb strings.Builder
	inQuote := false
	for _, r := range s {
		switch {
		case r == '"':
			inQuote = !inQuote
			sb.WriteRune(r)
		case r == ';' && !inQuote:
			if op := strings.TrimSpace(sb.String()); op != "" {
				ops = append(ops, op)
			}
			sb.Reset()
		default:
			sb.WriteRune(r)
		}
	}
	if op := strings.TrimSpace(sb.String()); op != "" {
		ops = append(ops, op)
	}
	return ops
}

// tokenizeOperation splits "operator arg1 arg2 ..." into its operator
// and arguments, treating a double-quoted run as one argument.
func tokenizeOperation(op string) (operator string, args []string) {
	var sb strings.Builder
	inQuote := false
	flush := func() {
		if tok := sb.String(); tok != "" {
			args = append(args, tok)
		}
		sb.Reset()
	}
	for _, r := range op {
		switch {
		case r == '"':
			inQuote = !inQuote
		case r == ' ' && !inQuote:
			flush()
		default:
			sb.WriteRune(r)
		}
	}
	flush()
	if len(args) == 0 {
		return "", nil
	}
	return args[0], args[1:]
}

func applyOperation(epd *EPD, op string) error {
	operator, args := tokenizeOperation(op)
	switch {
	case operator == "":
		return nil
	case operator == "id":
		if len(args) != 1 {
			return fmt.Errorf("id expects exactly one argument")
		}
		epd.Id = args[0]
	case operator == "bm":
		for _, san := range args {
			move, err := epd.Position.SANToMove(san)
			if err != nil {
				return fmt.Errorf("invalid move %q: %v", san, err)
			}
			epd.BestMove = append(epd.BestMove, move)
		}
	case operator == "fmvn":
		if len(args) != 1 {
			return fmt.Errorf("fmvn expects exactly one argument")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return err
		}
		epd.Position.SetFullmoveNumber(n)
	case operator == "hmvc":
		if len(args) != 1 {
			return fmt.Errorf("hmvc expects exactly one argument")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return err
		}
		epd.Position.SetHalfmoveClock(n)
	case len(operator) == 2 && operator[0] == 'c' && operator[1] >= '0' && operator[1] <= '9':
		if len(args) != 1 {
			return fmt.Errorf("%s expects exactly one argument", operator)
		}
		epd.Comment[operator] = args[0]
	}
	return nil
}

// String formats the EPD back to text, including any bm/id/comment operations.
func (e *EPD) String() string {
	fields := strings.Fields(e.Position.FEN())
	s := strings.Join(fields[:4], " ")

	for _, bm := range e.BestMove {
		s += " bm " + e.Position.MoveToSAN(bm) + ";"
	}
	if e.Id != "" {
		s += ` id "` + e.Id + `";`
	}
	for k, v := range e.Comment {
		s += " " + k + ` "` + v + `";`
	}
	return s
}
