package game

import (
	"testing"

	"github.com/hailam/chessrules/internal/board"
)

var pieceLetters = map[byte]board.PieceType{
	'p': board.Pawn, 'n': board.Knight, 'b': board.Bishop,
	'r': board.Rook, 'q': board.Queen, 'k': board.King,
}

// setup builds a board from pieces such as "Ka1" (white king) or "qh2"
// (black queen).
func setup(t testing.TB, pieces ...string) board.Board {
	t.Helper()
	b := board.EmptyBoard()
	for _, p := range pieces {
		pt, ok := pieceLetters[p[0]|0x20]
		if !ok || len(p) != 3 {
			t.Fatalf("bad piece %q", p)
		}
		c := board.Black
		if p[0] < 'a' {
			c = board.White
		}
		sq, err := board.ParseSquare(p[1:])
		if err != nil {
			t.Fatalf("bad square in %q: %v", p, err)
		}
		b.Put(sq, c, pt)
	}
	b.UpdateAttacks()
	return b
}

// scripted plays moves in coordinate notation and forfeits once they run out.
type scripted struct {
	t     testing.TB
	color board.Color
	moves []string
	calls int
}

func script(t testing.TB, c board.Color, moves ...string) *scripted {
	return &scripted{t: t, color: c, moves: moves}
}

func (s *scripted) RequestMove(b *board.Board) Action {
	s.calls++
	if len(s.moves) == 0 {
		return Forfeit
	}
	mv := s.moves[0]
	s.moves = s.moves[1:]
	cands := board.CandidateMoves(*b, s.color)
	i := board.FindCandidate(cands, mv)
	if i < 0 {
		s.t.Fatalf("%s: %s is not a legal move in\n%s", s.color, mv, b)
	}
	*b = cands[i]
	return Move
}

// cycle returns n moves walking a piece around squares, wrapping at the end.
func cycle(squares []string, n int) []string {
	moves := make([]string, n)
	for i := range moves {
		moves[i] = squares[i%len(squares)] + squares[(i+1)%len(squares)]
	}
	return moves
}
