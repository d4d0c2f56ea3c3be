package board

import (
	"fmt"
	"strings"
	"testing"
)

var pieceLetters = map[byte]PieceType{
	'p': Pawn, 'n': Knight, 'b': Bishop, 'r': Rook, 'q': Queen, 'k': King,
}

// setup builds a board from pieces such as "Ke1" (white king on e1) or
// "pd7" (black pawn on d7). All castling rights stay available.
func setup(t testing.TB, pieces ...string) Board {
	t.Helper()
	b := EmptyBoard()
	for _, p := range pieces {
		if len(p) != 3 {
			t.Fatalf("bad piece %q", p)
		}
		pt, ok := pieceLetters[p[0]|0x20]
		if !ok {
			t.Fatalf("bad piece letter in %q", p)
		}
		c := Black
		if p[0] >= 'A' && p[0] <= 'Z' {
			c = White
		}
		sq, err := ParseSquare(p[1:])
		if err != nil {
			t.Fatalf("bad square in %q: %v", p, err)
		}
		b.Put(sq, c, pt)
	}
	b.UpdateAttacks()
	return b
}

// fromFEN is a test fixture loader covering the fields the engine keeps:
// placement, side to move, castling rights and the en passant square.
func fromFEN(t testing.TB, fen string) (Board, Color) {
	t.Helper()
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		t.Fatalf("short FEN %q", fen)
	}

	b := EmptyBoard()
	rank, file := 7, 0
	for i := 0; i < len(fields[0]); i++ {
		ch := fields[0][i]
		switch {
		case ch == '/':
			rank, file = rank-1, 0
		case ch >= '1' && ch <= '8':
			file += int(ch - '0')
		default:
			pt, ok := pieceLetters[ch|0x20]
			if !ok {
				t.Fatalf("bad FEN piece %q", ch)
			}
			c := Black
			if ch < 'a' {
				c = White
			}
			b.Put(MakeSquare(file, rank), c, pt)
			file++
		}
	}

	side := White
	if fields[1] == "b" {
		side = Black
	}

	cr := AllCastling
	for _, ch := range fields[2] {
		switch ch {
		case 'K':
			cr &^= WhiteShortCastle
		case 'Q':
			cr &^= WhiteLongCastle
		case 'k':
			cr &^= BlackShortCastle
		case 'q':
			cr &^= BlackLongCastle
		}
	}
	b.SetCastlingRights(cr)

	if fields[3] != "-" {
		ep, err := ParseSquare(fields[3])
		if err != nil {
			t.Fatalf("bad en passant square: %v", err)
		}
		mover := side.Other()
		fwd := forward(mover)
		b.SetLastMove(Move{mover, Pawn, ep.Step(forward(side)), ep.Step(fwd)})
	}

	b.UpdateAttacks()
	return b, side
}

// toFEN writes the FEN fields the engine tracks, for feeding other libraries.
func toFEN(b *Board, side Color) string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			f := b[MakeSquare(file, rank)]
			if f.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				fmt.Fprintf(&sb, "%d", empty)
				empty = 0
			}
			sb.WriteByte(f.Char())
		}
		if empty > 0 {
			fmt.Fprintf(&sb, "%d", empty)
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	stm := "w"
	if side == Black {
		stm = "b"
	}

	// Only report rights the generator could still use.
	cr := b.CastlingRights()
	for _, c := range []Color{White, Black} {
		for _, r := range castleRules[c] {
			if !b[r.king].Is(c, King) || !b[r.rook].Is(c, Rook) {
				cr = cr.Remove(r.right)
			}
		}
	}

	ep := "-"
	if m := b.LastMove(); m.Piece == Pawn && (m.From.Rank()-m.To.Rank())*(m.From.Rank()-m.To.Rank()) == 4 {
		ep = m.From.Step(forward(m.Color)).String()
	}

	return fmt.Sprintf("%s %s %s %s 0 1", sb.String(), stm, cr, ep)
}

func moveStrings(cands []Board) []string {
	out := make([]string, len(cands))
	for i := range cands {
		out[i] = cands[i].LastMoveString()
	}
	return out
}

func countMoves(cands []Board, c Color, pt PieceType) int {
	n := 0
	for i := range cands {
		if m := cands[i].LastMove(); m.Color == c && m.Piece == pt {
			n++
		}
	}
	return n
}

func findMove(cands []Board, m Move) int {
	for i := range cands {
		if cands[i].CheckLastMove(m) {
			return i
		}
	}
	return -1
}

func requireValid(t *testing.T, cands []Board) {
	t.Helper()
	for i := range cands {
		if err := cands[i].Validate(); err != nil {
			t.Errorf("candidate %s: %v", cands[i].LastMoveString(), err)
		}
	}
}
