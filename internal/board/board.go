package board

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Board is a complete position: 64 packed fields indexed A1..H8. It is a
// value type; copying it copies the position together with its last move,
// castling rights and attack map.
type Board [64]Field

// Validation errors.
var (
	ErrInconsistentLastMove = errors.New("last move inconsistent with placement")
	ErrKingCount            = errors.New("side must have exactly one king")
)

var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// EmptyBoard returns a board with no pieces, all castling rights available
// and no last move.
func EmptyBoard() Board {
	return Board{}
}

// StartBoard returns the standard starting position with its attack map.
func StartBoard() Board {
	b := EmptyBoard()
	for file := 0; file < 8; file++ {
		b.Put(MakeSquare(file, 0), White, backRank[file])
		b.Put(MakeSquare(file, 1), White, Pawn)
		b.Put(MakeSquare(file, 6), Black, Pawn)
		b.Put(MakeSquare(file, 7), Black, backRank[file])
	}
	b.UpdateAttacks()
	return b
}

// Put places a piece of color c on sq, keeping the square's attack and meta bits.
func (b *Board) Put(sq Square, c Color, pt PieceType) {
	b[sq] = b[sq].WithColor(c).WithPiece(pt)
}

// Clear removes any piece from sq, keeping the square's attack and meta bits.
func (b *Board) Clear(sq Square) {
	b[sq] = b[sq].WithColor(Black).WithPiece(Empty)
}

// KingSquare returns the square of c's king, or NoSquare if there is none.
func (b *Board) KingSquare(c Color) Square {
	for sq := A1; sq < NoSquare; sq++ {
		if b[sq].Is(c, King) {
			return sq
		}
	}
	return NoSquare
}

// SamePosition reports whether a and b have the same piece placement,
// ownership and castling rights. The last move, and with it en passant
// eligibility, is ignored, as are the attack maps.
func SamePosition(a, b *Board) bool {
	for sq := range a {
		if a[sq].placement() != b[sq].placement() {
			return false
		}
	}
	return a.CastlingRights() == b.CastlingRights()
}

// PositionKey hashes the same data SamePosition compares.
func (b *Board) PositionKey() uint64 {
	var buf [65]byte
	for sq := range b {
		buf[sq] = b[sq].placement()
	}
	buf[64] = byte(b.CastlingRights())
	return xxhash.Sum64(buf[:])
}

// Validate checks that the metadata agrees with the placement. It is a
// diagnostic; generation never calls it.
func (b *Board) Validate() error {
	for _, c := range []Color{White, Black} {
		n := 0
		for sq := range b {
			if b[sq].Is(c, King) {
				n++
			}
		}
		if n != 1 {
			return fmt.Errorf("%w: %s has %d", ErrKingCount, c, n)
		}
	}

	m := b.LastMove()
	if m.Piece == Empty {
		return nil
	}
	dest := b[m.To]
	if !dest.Owned(m.Color) {
		return fmt.Errorf("%w: %s %s, %s not held by %s", ErrInconsistentLastMove, m.Color, m, m.To, m.Color)
	}
	promoted := m.Piece == Pawn && m.To.RelativeRank(m.Color) == 7
	if dest.Piece() != m.Piece && !promoted {
		return fmt.Errorf("%w: %s %s, %s holds %s", ErrInconsistentLastMove, m.Color, m, m.To, dest.Piece())
	}
	if !b[m.From].IsEmpty() {
		return fmt.Errorf("%w: %s %s, %s still occupied", ErrInconsistentLastMove, m.Color, m, m.From)
	}
	return nil
}

// String returns a text grid of the board, rank 8 first.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := 0; file < 8; file++ {
			sb.WriteByte(b[MakeSquare(file, rank)].Char())
			sb.WriteByte(' ')
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	if m := b.LastMoveString(); m != "" {
		fmt.Fprintf(&sb, "Last move: %s %s %s\n", b.LastMove().Color, b.LastMove().Piece, m)
	}
	fmt.Fprintf(&sb, "Castling: %s\n", b.CastlingRights())
	return sb.String()
}
