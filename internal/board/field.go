package board

import "github.com/hailam/chessrules/internal/bitfield"

// Field is the state of a single square packed into one byte:
// player (bit 0), piece (bits 1-3), under white attack (bit 4),
// under black attack (bit 5) and two meta bits (6-7).
type Field uint8

var (
	playerBits      = bitfield.Descriptor{Pos: 0, Width: 1}
	pieceBits       = bitfield.Descriptor{Pos: 1, Width: 3}
	whiteAttackBits = bitfield.Descriptor{Pos: 4, Width: 1}
	blackAttackBits = bitfield.Descriptor{Pos: 5, Width: 1}
	metaBits        = bitfield.Descriptor{Pos: 6, Width: 2}
)

// NewField returns a field holding a piece of the given color.
func NewField(c Color, pt PieceType) Field {
	return Field(0).WithColor(c).WithPiece(pt)
}

// Color returns the owner of the piece. Meaningless for empty squares.
func (f Field) Color() Color {
	return Color(bitfield.Get(uint8(f), playerBits))
}

// Piece returns the piece type on the square.
func (f Field) Piece() PieceType {
	return PieceType(bitfield.Get(uint8(f), pieceBits))
}

// WithColor returns f with the player bit replaced.
func (f Field) WithColor(c Color) Field {
	return Field(bitfield.Set(uint8(f), uint8(c), playerBits))
}

// WithPiece returns f with the piece replaced.
func (f Field) WithPiece(pt PieceType) Field {
	return Field(bitfield.Set(uint8(f), uint8(pt), pieceBits))
}

// IsEmpty returns true if no piece stands on the square.
func (f Field) IsEmpty() bool {
	return f.Piece() == Empty
}

// Owned reports whether a piece of color c stands on the square.
func (f Field) Owned(c Color) bool {
	return !f.IsEmpty() && f.Color() == c
}

// Is reports whether the square holds piece pt of color c.
func (f Field) Is(c Color, pt PieceType) bool {
	return f.Piece() == pt && pt != Empty && f.Color() == c
}

func attackBits(by Color) bitfield.Descriptor {
	if by == White {
		return whiteAttackBits
	}
	return blackAttackBits
}

// UnderAttack reports whether color by attacks the square.
func (f Field) UnderAttack(by Color) bool {
	return bitfield.Has(uint8(f), attackBits(by))
}

func (f Field) withAttack(by Color) Field {
	return Field(bitfield.Set(uint8(f), 1, attackBits(by)))
}

func (f Field) withoutAttacks() Field {
	v := bitfield.Set(uint8(f), 0, whiteAttackBits)
	return Field(bitfield.Set(v, 0, blackAttackBits))
}

// Meta returns the two meta bits of the square.
func (f Field) Meta() uint8 {
	return bitfield.Get(uint8(f), metaBits)
}

// WithMeta returns f with the meta bits replaced.
func (f Field) WithMeta(m uint8) Field {
	return Field(bitfield.Set(uint8(f), m, metaBits))
}

// placement is the player and piece part of the field, with the player
// bit dropped for empty squares.
func (f Field) placement() uint8 {
	if f.IsEmpty() {
		return 0
	}
	return uint8(f) & 0x0f
}

// Char returns the display character: uppercase for white, lowercase for
// black, '.' for an empty square.
func (f Field) Char() byte {
	c := f.Piece().Char()
	if f.IsEmpty() || f.Color() == White {
		return c
	}
	if c >= 'A' && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}
