package board

// Color represents the side owning a piece or moving.
// The values match the one-bit player field of a square.
type Color uint8

const (
	Black Color = iota
	White
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// PieceType represents the type of a chess piece. The values match the
// three-bit piece field of a square.
type PieceType uint8

const (
	Empty PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
	Invalid
)

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Empty:
		return "Empty"
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "Invalid"
	}
}

// Char returns the display character for the piece type (uppercase).
func (pt PieceType) Char() byte {
	const chars = ".PNBRQK*"
	if pt > Invalid {
		return '*'
	}
	return chars[pt]
}

// IsMinor reports whether the piece is a knight or a bishop.
func (pt PieceType) IsMinor() bool {
	return pt == Knight || pt == Bishop
}

// PromotionPieces lists promotion choices in generation order.
var PromotionPieces = [4]PieceType{Knight, Bishop, Rook, Queen}
