package board

import (
	"slices"
	"testing"
)

func TestPawnMoves(t *testing.T) {
	tests := []struct {
		name   string
		pieces []string
		side   Color
		move   Move
		want   bool
	}{
		{"white single", []string{"Ke1", "ke8", "Pe2"}, White, Move{White, Pawn, E2, E3}, true},
		{"black single", []string{"Ke1", "ke8", "pe7"}, Black, Move{Black, Pawn, E7, E6}, true},
		{"white double", []string{"Ke1", "ke8", "Pe2"}, White, Move{White, Pawn, E2, E4}, true},
		{"black double", []string{"Ke1", "ke8", "pe7"}, Black, Move{Black, Pawn, E7, E5}, true},
		{"white no double off home rank", []string{"Ke1", "ke8", "Pd3"}, White, Move{White, Pawn, D3, D5}, false},
		{"black no double off home rank", []string{"Ke1", "ke8", "pd6"}, Black, Move{Black, Pawn, D6, D4}, false},
		{"white blocked", []string{"Ke1", "ke8", "Pd2", "pd3"}, White, Move{White, Pawn, D2, D3}, false},
		{"black blocked", []string{"Ke1", "ke8", "pd7", "Pd6"}, Black, Move{Black, Pawn, D7, D6}, false},
		{"white double blocked close", []string{"Ke1", "ke8", "Pd2", "pd3"}, White, Move{White, Pawn, D2, D4}, false},
		{"black double blocked close", []string{"Ke1", "ke8", "pd7", "Pd6"}, Black, Move{Black, Pawn, D7, D5}, false},
		{"white double blocked far", []string{"Ke1", "ke8", "Pd2", "pd4"}, White, Move{White, Pawn, D2, D4}, false},
		{"black double blocked far", []string{"Ke1", "ke8", "pd7", "Pd5"}, Black, Move{Black, Pawn, D7, D5}, false},
		{"white capture left", []string{"Kh1", "kh8", "Pe2", "pd3"}, White, Move{White, Pawn, E2, D3}, true},
		{"white capture right", []string{"Kh1", "kh8", "Pe2", "pf3"}, White, Move{White, Pawn, E2, F3}, true},
		{"black capture left", []string{"Kh1", "kh8", "pf3", "Pe2"}, Black, Move{Black, Pawn, F3, E2}, true},
		{"black capture right", []string{"Kh1", "kh8", "pd3", "Pe2"}, Black, Move{Black, Pawn, D3, E2}, true},
		{"no capture onto empty", []string{"Kh1", "kh8", "Pe2"}, White, Move{White, Pawn, E2, D3}, false},
		{"no capture of own piece", []string{"Kh1", "kh8", "Pe2", "Nd3"}, White, Move{White, Pawn, E2, D3}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cands := CandidateMoves(setup(t, tc.pieces...), tc.side)
			requireValid(t, cands)
			if got := findMove(cands, tc.move) >= 0; got != tc.want {
				t.Errorf("%v present = %v, want %v (moves %v)", tc.move, got, tc.want, moveStrings(cands))
			}
		})
	}
}

func TestEnPassant(t *testing.T) {
	tests := []struct {
		name    string
		pieces  []string
		double  Move
		capture Move
		victim  Square
	}{
		{"white left", []string{"Ke1", "ke8", "Pe5", "pd7"}, Move{Black, Pawn, D7, D5}, Move{White, Pawn, E5, D6}, D5},
		{"white right", []string{"Ke1", "ke8", "Pe5", "pf7"}, Move{Black, Pawn, F7, F5}, Move{White, Pawn, E5, F6}, F5},
		{"black left", []string{"Ke1", "ke8", "pf4", "Pe2"}, Move{White, Pawn, E2, E4}, Move{Black, Pawn, F4, E3}, E4},
		{"black right", []string{"Ke1", "ke8", "pd4", "Pe2"}, Move{White, Pawn, E2, E4}, Move{Black, Pawn, D4, E3}, E4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := setup(t, tc.pieces...)
			if !ApplyMoveIfValid(&b, tc.double) {
				t.Fatalf("double step %v rejected", tc.double)
			}

			cands := CandidateMoves(b, tc.capture.Color)
			requireValid(t, cands)
			i := findMove(cands, tc.capture)
			if i < 0 {
				t.Fatalf("en passant %v missing from %v", tc.capture, moveStrings(cands))
			}
			if !cands[i][tc.victim].IsEmpty() {
				t.Errorf("captured pawn still on %v", tc.victim)
			}
			if !cands[i][tc.capture.To].Is(tc.capture.Color, Pawn) {
				t.Errorf("capturing pawn not on %v", tc.capture.To)
			}
		})
	}
}

func TestEnPassantOnlyImmediately(t *testing.T) {
	b := setup(t, "Ke1", "ke8", "Pe5", "pd7", "Nb1")
	ApplyMoveIfValid(&b, Move{Black, Pawn, D7, D5})
	ApplyMoveIfValid(&b, Move{White, Knight, B1, C3})
	ApplyMoveIfValid(&b, Move{Black, King, E8, F7})

	cands := CandidateMoves(b, White)
	if findMove(cands, Move{White, Pawn, E5, D6}) >= 0 {
		t.Errorf("en passant offered after an intervening move")
	}
}

func TestPromotion(t *testing.T) {
	tests := []struct {
		name   string
		pieces []string
		move   Move
	}{
		{"white push", []string{"Ke1", "ke8", "Pa7"}, Move{White, Pawn, A7, A8}},
		{"black push", []string{"Ke1", "ke8", "pa2"}, Move{Black, Pawn, A2, A1}},
		{"white capture", []string{"Ke1", "ke8", "Pa7", "Na8", "nb8"}, Move{White, Pawn, A7, B8}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cands := CandidateMoves(setup(t, tc.pieces...), tc.move.Color)
			requireValid(t, cands)

			var promoted []PieceType
			var boards []Board
			for i := range cands {
				if cands[i].CheckLastMove(tc.move) {
					promoted = append(promoted, cands[i][tc.move.To].Piece())
					boards = append(boards, cands[i])
				}
			}
			if !slices.Equal(promoted, PromotionPieces[:]) {
				t.Fatalf("promotions = %v, want %v", promoted, PromotionPieces)
			}
			for _, b := range boards[1:] {
				for sq := range b {
					if Square(sq) != tc.move.To && b[sq].placement() != boards[0][sq].placement() {
						t.Errorf("promotions differ on %v", Square(sq))
					}
				}
			}
			if got := boards[3].LastMoveString(); got != tc.move.String()+"q" {
				t.Errorf("LastMoveString = %q, want %sq", got, tc.move)
			}
		})
	}
}

func TestPieceMoveCounts(t *testing.T) {
	tests := []struct {
		name   string
		pieces []string
		side   Color
		piece  PieceType
		want   int
	}{
		{"white knight", []string{"Kh1", "kh8", "Nb3", "pc5", "Pd4"}, White, Knight, 5},
		{"black knight", []string{"Kh1", "kh8", "nb3", "pc5", "Pd4"}, Black, Knight, 5},
		{"white bishop", []string{"Kh1", "kh8", "Bb3", "pf7", "Pc2"}, White, Bishop, 6},
		{"black bishop", []string{"Kh1", "kh8", "bb3", "Pf7", "pc2"}, Black, Bishop, 6},
		{"white rook", []string{"Kh1", "kh8", "Rc5", "Pc7", "pf5"}, White, Rook, 10},
		{"black rook", []string{"Kh1", "kh8", "rc5", "pc7", "Pf5"}, Black, Rook, 10},
		{"white queen", []string{"Kh1", "kh8", "Qb3", "pf7", "Pc2"}, White, Queen, 20},
		{"black queen", []string{"Kh1", "kh8", "qb3", "Pf7", "pc2"}, Black, Queen, 20},
		{"white king", []string{"kh8", "Ke4", "pe3", "Pe5"}, White, King, 7},
		{"black king", []string{"Kh8", "ke4", "Pe3", "pe5"}, Black, King, 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cands := CandidateMoves(setup(t, tc.pieces...), tc.side)
			requireValid(t, cands)
			if got := countMoves(cands, tc.side, tc.piece); got != tc.want {
				t.Errorf("%v %v moves = %d, want %d (%v)", tc.side, tc.piece, got, tc.want, moveStrings(cands))
			}
		})
	}
}

func TestCastling(t *testing.T) {
	tests := []struct {
		name   string
		pieces []string
		side   Color
		king   Move
		rook   Move
	}{
		{"white short", []string{"ka8", "Ke1", "Rh1"}, White, Move{White, King, E1, G1}, Move{White, Rook, H1, F1}},
		{"white long", []string{"kh8", "Ke1", "Ra1"}, White, Move{White, King, E1, C1}, Move{White, Rook, A1, D1}},
		{"black short", []string{"Ka1", "ke8", "rh8"}, Black, Move{Black, King, E8, G8}, Move{Black, Rook, H8, F8}},
		{"black long", []string{"Kh1", "ke8", "ra8"}, Black, Move{Black, King, E8, C8}, Move{Black, Rook, A8, D8}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cands := CandidateMoves(setup(t, tc.pieces...), tc.side)
			requireValid(t, cands)
			i := findMove(cands, tc.king)
			if i < 0 {
				t.Fatalf("castle %v missing from %v", tc.king, moveStrings(cands))
			}
			if !cands[i][tc.rook.From].IsEmpty() || !cands[i][tc.rook.To].Is(tc.side, Rook) {
				t.Errorf("rook not moved %v", tc.rook)
			}
			cr := cands[i].CastlingRights()
			if !cr.Lost(ShortCastle(tc.side)) || !cr.Lost(LongCastle(tc.side)) {
				t.Errorf("castling rights after castling = %v", cr)
			}
			if cr.Lost(ShortCastle(tc.side.Other())) || cr.Lost(LongCastle(tc.side.Other())) {
				t.Errorf("opponent rights lost: %v", cr)
			}
		})
	}
}

func TestCastlingGates(t *testing.T) {
	short := Move{White, King, E1, G1}
	long := Move{White, King, E1, C1}

	tests := []struct {
		name     string
		pieces   []string
		prepare  []Move
		wantShrt bool
		wantLong bool
	}{
		{"both available", []string{"kc8", "Ke1", "Ra1", "Rh1"}, nil, true, true},
		{"king moved and returned", []string{"ke8", "Ke2", "Ra1", "Rh1"}, []Move{{White, King, E2, E1}}, false, false},
		{"short rook moved and returned", []string{"ke8", "Ke1", "Ra1", "Rh1"}, []Move{{White, Rook, H1, G1}, {White, Rook, G1, H1}}, false, true},
		{"long rook moved and returned", []string{"ke8", "Ke1", "Ra1", "Rh1"}, []Move{{White, Rook, A1, B1}, {White, Rook, B1, A1}}, true, false},
		{"rook captured on corner", []string{"kb8", "Ke1", "Ra1", "Rh1", "bg2"}, []Move{{Black, Bishop, G2, H1}}, false, true},
		{"king in check", []string{"kc8", "Ke1", "Ra1", "Rh1", "re7"}, nil, false, false},
		{"short transit attacked", []string{"kc8", "Ke1", "Ra1", "Rh1", "rf7"}, nil, false, true},
		{"short landing attacked", []string{"kc8", "Ke1", "Ra1", "Rh1", "rg7"}, nil, false, true},
		{"long transit attacked", []string{"kc8", "Ke1", "Ra1", "Rh1", "rd7"}, nil, true, false},
		{"long b-file attacked only", []string{"kc8", "Ke1", "Ra1", "Rh1", "rb7"}, nil, true, true},
		{"short path occupied", []string{"kc8", "Ke1", "Ra1", "Rh1", "Ng1"}, nil, false, true},
		{"long path occupied", []string{"kc8", "Ke1", "Ra1", "Rh1", "Nb1"}, nil, true, false},
		{"short rook missing", []string{"kc8", "Ke1", "Ra1"}, nil, false, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := setup(t, tc.pieces...)
			for _, m := range tc.prepare {
				if !ApplyMoveIfValid(&b, m) {
					t.Fatalf("prepare move %v rejected", m)
				}
			}
			cands := CandidateMoves(b, White)
			requireValid(t, cands)
			if got := findMove(cands, short) >= 0; got != tc.wantShrt {
				t.Errorf("short castle = %v, want %v", got, tc.wantShrt)
			}
			if got := findMove(cands, long) >= 0; got != tc.wantLong {
				t.Errorf("long castle = %v, want %v", got, tc.wantLong)
			}
		})
	}
}

func TestBlackLongCastleAttacked(t *testing.T) {
	long := Move{Black, King, E8, C8}
	for _, attacker := range []string{"Rc1", "Rd1", "Re1"} {
		t.Run(attacker, func(t *testing.T) {
			cands := CandidateMoves(setup(t, "Kh1", "ke8", "ra8", attacker), Black)
			if findMove(cands, long) >= 0 {
				t.Errorf("long castle offered with %s", attacker)
			}
		})
	}
}

func TestLegalityFilter(t *testing.T) {
	tests := []struct {
		name   string
		pieces []string
		side   Color
		want   []string
	}{
		{
			name:   "checkmated behind own pieces",
			pieces: []string{"Ka1", "ra2", "bb3", "pc2", "kh1", "Pb2", "Qb8", "Bh8", "Ne5"},
			side:   White,
			want:   []string{},
		},
		{
			name:   "one move stops mate",
			pieces: []string{"Kb1", "Pa2", "Pb2", "Pc2", "Qd7", "rh1", "kh8"},
			side:   White,
			want:   []string{"d7d1"},
		},
		{
			name:   "two moves stop mate",
			pieces: []string{"Kb1", "Pa2", "Pb2", "Pc2", "Qe4", "rh1", "kh8"},
			side:   White,
			want:   []string{"e4e1", "e4h1"},
		},
		{
			name:   "pinned pieces cannot move",
			pieces: []string{"ke8", "Ke4", "Pd4", "Nf5", "ra4", "bh7", "pc5"},
			side:   White,
			want:   []string{"e4d3", "e4e3", "e4f3", "e4f4", "e4d5", "e4e5"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cands := CandidateMoves(setup(t, tc.pieces...), tc.side)
			requireValid(t, cands)
			got := moveStrings(cands)
			slices.Sort(got)
			want := slices.Clone(tc.want)
			slices.Sort(want)
			if !slices.Equal(got, want) {
				t.Errorf("moves = %v, want %v", got, want)
			}
		})
	}
}

func TestCandidatesLeaveKingSafe(t *testing.T) {
	b, side := fromFEN(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -")
	for _, c := range []Color{side, side.Other()} {
		cands := CandidateMoves(b, c)
		for i := range cands {
			if cands[i].IsKingUnderAttack(c) {
				t.Errorf("%s leaves %v king attacked", cands[i].LastMoveString(), c)
			}
		}
	}
}

func TestAppendCandidateMovesUsesBuffer(t *testing.T) {
	buf := make([]Board, 3, MaxCandidates)
	out := AppendCandidateMoves(buf, StartBoard(), White)
	if len(out) != 23 {
		t.Fatalf("len = %d, want 3 + 20", len(out))
	}
	if &out[0] != &buf[0] {
		t.Errorf("candidates were not written into the supplied buffer")
	}
	if got := out[3].LastMoveString(); got != "b1a3" {
		t.Errorf("first candidate = %s, want b1a3", got)
	}
}

func TestRookCaptureLosesRight(t *testing.T) {
	b := setup(t, "Ke1", "ke8", "Rh1", "bg2")
	if !ApplyMoveIfValid(&b, Move{Black, Bishop, G2, H1}) {
		t.Fatal("Bxh1 rejected")
	}
	if cr := b.CastlingRights(); cr != WhiteShortCastle {
		t.Errorf("castling rights lost = %04b, want only white short", cr)
	}
}

func TestFindCandidate(t *testing.T) {
	cands := CandidateMoves(StartBoard(), White)
	i := FindCandidate(cands, "G1F3")
	if i < 0 {
		t.Fatal("g1f3 not found")
	}
	if m := cands[i].LastMove(); m != (Move{White, Knight, G1, F3}) {
		t.Errorf("found %+v", m)
	}
	if FindCandidate(cands, "e2e5") != -1 {
		t.Errorf("e2e5 should not be found")
	}
}

func TestCheckmateAndStalemate(t *testing.T) {
	tests := []struct {
		name    string
		fen     string
		inCheck bool
	}{
		{"back rank mate", "R6k/6pp/8/8/8/8/8/K7 b - - 0 1", true},
		{"cornered king", "8/8/8/8/8/B7/1Q6/k6K b - - 0 1", true},
		{"stalemate", "k7/8/1Q6/8/8/8/8/7K b - - 0 1", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, side := fromFEN(t, tc.fen)
			t.Log(b.String())
			if n := len(CandidateMoves(b, side)); n != 0 {
				t.Errorf("%d candidates, want 0", n)
			}
			if got := b.IsKingUnderAttack(side); got != tc.inCheck {
				t.Errorf("IsKingUnderAttack = %v, want %v", got, tc.inCheck)
			}
		})
	}
}

func TestNotCheckmate(t *testing.T) {
	// King can take the unprotected rook.
	b, side := fromFEN(t, "6Rk/8/8/8/8/8/8/K7 b - - 0 1")
	if !b.IsKingUnderAttack(side) {
		t.Fatal("expected black in check")
	}
	cands := CandidateMoves(b, side)
	if FindCandidate(cands, "h8g8") < 0 {
		t.Errorf("Kxg8 missing from %v", moveStrings(cands))
	}
}
