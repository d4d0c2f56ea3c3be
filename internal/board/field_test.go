package board

import "testing"

func TestFieldRoundTrip(t *testing.T) {
	for _, c := range []Color{White, Black} {
		for pt := Empty; pt <= King; pt++ {
			for meta := uint8(0); meta < 4; meta++ {
				f := NewField(c, pt).WithMeta(meta).withAttack(White)
				if f.Color() != c || f.Piece() != pt || f.Meta() != meta || !f.UnderAttack(White) || f.UnderAttack(Black) {
					t.Errorf("field %08b: color %v piece %v meta %d", f, f.Color(), f.Piece(), f.Meta())
				}

				f = f.WithPiece(Queen)
				if f.Color() != c || f.Meta() != meta {
					t.Errorf("WithPiece disturbed other bits: %08b", f)
				}
				f = f.withoutAttacks()
				if f.UnderAttack(White) || f.UnderAttack(Black) || f.Piece() != Queen {
					t.Errorf("withoutAttacks: %08b", f)
				}
			}
		}
	}
}

func TestFieldChar(t *testing.T) {
	tests := []struct {
		f    Field
		want byte
	}{
		{NewField(White, King), 'K'},
		{NewField(Black, King), 'k'},
		{NewField(Black, Pawn), 'p'},
		{NewField(White, Empty), '.'},
		{NewField(Black, Empty), '.'},
	}
	for _, tc := range tests {
		if got := tc.f.Char(); got != tc.want {
			t.Errorf("Char(%08b) = %c, want %c", tc.f, got, tc.want)
		}
	}
}

func TestLastMoveStriping(t *testing.T) {
	tests := []struct {
		name string
		move Move
		meta [8]uint8
	}{
		{
			name: "white pawn e2e3",
			move: Move{White, Pawn, E2, E3},
			meta: [8]uint8{0b11, 0, 0, 0b11, 0, 0, 0b01, 0b01},
		},
		{
			name: "black rook e3e2",
			move: Move{Black, Rook, E3, E2},
			meta: [8]uint8{0, 0b10, 0, 0b01, 0b01, 0, 0b11, 0},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := EmptyBoard()
			b.SetLastMove(tc.move)
			for i, want := range tc.meta {
				if got := b[i].Meta(); got != want {
					t.Errorf("square %d meta = %02b, want %02b", i, got, want)
				}
			}
			for i := 8; i < 64; i++ {
				if b[i].Meta() != 0 {
					t.Errorf("square %d meta = %02b, want 0", i, b[i].Meta())
				}
			}
			if !b.CheckLastMove(tc.move) {
				t.Errorf("CheckLastMove(%v) = false", tc.move)
			}
			other := tc.move
			other.Color = other.Color.Other()
			if b.CheckLastMove(other) {
				t.Errorf("CheckLastMove accepted wrong color")
			}
		})
	}
}

func TestMetadataIndependent(t *testing.T) {
	b := StartBoard()
	m := Move{Black, Knight, G8, F6}
	b.SetLastMove(m)
	b.SetCastlingRights(WhiteLongCastle | BlackShortCastle)

	if got := b.LastMove(); got != m {
		t.Errorf("LastMove = %+v, want %+v", got, m)
	}
	if got := b.CastlingRights(); got != WhiteLongCastle|BlackShortCastle {
		t.Errorf("CastlingRights = %04b", got)
	}
	if got := b.CastlingRights().String(); got != "Kq" {
		t.Errorf("CastlingRights.String = %q, want Kq", got)
	}

	start := StartBoard()
	for sq := range b {
		if b[sq].placement() != start[sq].placement() {
			t.Errorf("metadata changed placement on %v", Square(sq))
		}
	}
}

func TestSamePosition(t *testing.T) {
	a := StartBoard()
	b := StartBoard()
	b.SetLastMove(Move{White, Knight, G1, F3})
	if !SamePosition(&a, &b) {
		t.Errorf("last move should not affect position identity")
	}
	if a.PositionKey() != b.PositionKey() {
		t.Errorf("last move should not affect position key")
	}

	b.SetCastlingRights(WhiteShortCastle)
	if SamePosition(&a, &b) {
		t.Errorf("castling rights should affect position identity")
	}
	if a.PositionKey() == b.PositionKey() {
		t.Errorf("castling rights should affect position key")
	}
}

func TestValidate(t *testing.T) {
	b := StartBoard()
	if err := b.Validate(); err != nil {
		t.Fatalf("start board: %v", err)
	}

	if !ApplyMoveIfValid(&b, Move{White, Pawn, E2, E4}) {
		t.Fatal("e2e4 rejected")
	}
	if err := b.Validate(); err != nil {
		t.Errorf("after e2e4: %v", err)
	}

	b.SetLastMove(Move{White, Knight, E2, E4})
	if err := b.Validate(); err == nil {
		t.Errorf("expected inconsistent last move to fail validation")
	}

	empty := EmptyBoard()
	if err := empty.Validate(); err == nil {
		t.Errorf("expected board without kings to fail validation")
	}
}
