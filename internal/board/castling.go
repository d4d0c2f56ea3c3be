package board

// CastlingRights records which castling options have been lost.
// A set bit means the right is gone; the zero value keeps all four.
type CastlingRights uint8

const (
	WhiteShortCastle CastlingRights = 1 << iota // K
	WhiteLongCastle                             // Q
	BlackShortCastle                            // k
	BlackLongCastle                             // q
	AllCastling      CastlingRights = WhiteShortCastle | WhiteLongCastle | BlackShortCastle | BlackLongCastle
)

// Lost reports whether every right in r has been lost.
func (cr CastlingRights) Lost(r CastlingRights) bool {
	return cr&r == r
}

// Remove marks the rights in r as lost. Rights are never restored.
func (cr CastlingRights) Remove(r CastlingRights) CastlingRights {
	return cr | r
}

// ShortCastle returns the short castling right of color c.
func ShortCastle(c Color) CastlingRights {
	if c == White {
		return WhiteShortCastle
	}
	return BlackShortCastle
}

// LongCastle returns the long castling right of color c.
func LongCastle(c Color) CastlingRights {
	if c == White {
		return WhiteLongCastle
	}
	return BlackLongCastle
}

// String lists the rights still available in FEN letter order, or "-".
func (cr CastlingRights) String() string {
	s := ""
	if !cr.Lost(WhiteShortCastle) {
		s += "K"
	}
	if !cr.Lost(WhiteLongCastle) {
		s += "Q"
	}
	if !cr.Lost(BlackShortCastle) {
		s += "k"
	}
	if !cr.Lost(BlackLongCastle) {
		s += "q"
	}
	if s == "" {
		return "-"
	}
	return s
}

// cornerRight returns the right guarded by a rook home square, or 0.
func cornerRight(sq Square) CastlingRights {
	switch sq {
	case A1:
		return WhiteLongCastle
	case H1:
		return WhiteShortCastle
	case A8:
		return BlackLongCastle
	case H8:
		return BlackShortCastle
	}
	return 0
}

type castleRule struct {
	right  CastlingRights
	king   Square
	kingTo Square
	rook   Square
	rookTo Square
	empty  []Square
	safe   []Square
}

// castleRules is indexed by color, short castle first.
var castleRules = [2][2]castleRule{
	White: {
		{WhiteShortCastle, E1, G1, H1, F1, []Square{F1, G1}, []Square{E1, F1, G1}},
		{WhiteLongCastle, E1, C1, A1, D1, []Square{B1, C1, D1}, []Square{C1, D1, E1}},
	},
	Black: {
		{BlackShortCastle, E8, G8, H8, F8, []Square{F8, G8}, []Square{E8, F8, G8}},
		{BlackLongCastle, E8, C8, A8, D8, []Square{B8, C8, D8}, []Square{C8, D8, E8}},
	},
}

func (b *Board) updateCastlingRights(m Move) {
	cr := b.CastlingRights()
	next := cr
	if m.Piece == King {
		next = next.Remove(ShortCastle(m.Color) | LongCastle(m.Color))
	}
	if m.Piece == Rook {
		next = next.Remove(cornerRight(m.From))
	}
	// A piece landing on a rook's home square captured the rook or found it gone.
	next = next.Remove(cornerRight(m.To))
	if next != cr {
		b.SetCastlingRights(next)
	}
}
