package board

import (
	"strings"

	"github.com/hailam/chessrules/internal/bitfield"
)

// Move describes a single piece relocation. Castling is described by the
// king's move, promotion by the pawn's.
type Move struct {
	Color Color
	Piece PieceType
	From  Square
	To    Square
}

// Last-move word layout, striped across the meta bits of squares 0-7.
var (
	moveColorBits = bitfield.Descriptor{Pos: 0, Width: 1}
	movePieceBits = bitfield.Descriptor{Pos: 1, Width: 3}
	moveFromBits  = bitfield.Descriptor{Pos: 4, Width: 6}
	moveToBits    = bitfield.Descriptor{Pos: 10, Width: 6}
)

func (m Move) encode() uint16 {
	var v uint16
	v = bitfield.Set(v, uint16(m.Color), moveColorBits)
	v = bitfield.Set(v, uint16(m.Piece), movePieceBits)
	v = bitfield.Set(v, uint16(m.From), moveFromBits)
	v = bitfield.Set(v, uint16(m.To), moveToBits)
	return v
}

func decodeMove(v uint16) Move {
	return Move{
		Color: Color(bitfield.Get(v, moveColorBits)),
		Piece: PieceType(bitfield.Get(v, movePieceBits)),
		From:  Square(bitfield.Get(v, moveFromBits)),
		To:    Square(bitfield.Get(v, moveToBits)),
	}
}

// String returns the move in coordinate notation (e.g., "e2e4").
func (m Move) String() string {
	if m.Piece == Empty {
		return "0000"
	}
	return m.From.String() + m.To.String()
}

// LastMove returns the move recorded in the board metadata. A board that
// has not been moved on reports an Empty piece.
func (b *Board) LastMove() Move {
	return decodeMove(b.metaGet(lastMoveFirst, lastMoveWidth))
}

// SetLastMove records m in the board metadata.
func (b *Board) SetLastMove(m Move) {
	b.metaSet(lastMoveFirst, lastMoveWidth, m.encode())
}

// CheckLastMove reports whether m is exactly the recorded last move.
func (b *Board) CheckLastMove(m Move) bool {
	return b.LastMove() == m
}

// LastMoveString returns the last move in coordinate notation with a
// lowercase promotion suffix (e.g., "e7e8q"), or "" if none is recorded.
func (b *Board) LastMoveString() string {
	m := b.LastMove()
	if m.Piece == Empty || !m.From.IsValid() || !m.To.IsValid() {
		return ""
	}
	s := m.String()
	if m.Piece == Pawn {
		if placed := b[m.To].Piece(); placed != Pawn && placed != Empty {
			s += strings.ToLower(string(placed.Char()))
		}
	}
	return s
}

// FindCandidate returns the index of the candidate whose last move reads
// as move in coordinate notation, or -1.
func FindCandidate(candidates []Board, move string) int {
	move = strings.ToLower(strings.TrimSpace(move))
	for i := range candidates {
		if candidates[i].LastMoveString() == move {
			return i
		}
	}
	return -1
}
