// Package board implements the chess rules core: a byte-per-square board with
// striped metadata, attack maps, legality filtering and candidate generation.
package board

import "fmt"

// Square represents a square on the chess board (0-63).
// Uses Little-Endian Rank-File Mapping: A1=0, H1=7, A8=56, H8=63.
type Square uint8

// Square constants for all 64 squares.
const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
	NoSquare Square = 64
)

// InvalidCoord is the file or rank of NoSquare.
const InvalidCoord = 8

// File returns the file (column) of the square (0-7, where 0=a, 7=h),
// or InvalidCoord for NoSquare.
func (sq Square) File() int {
	if sq >= NoSquare {
		return InvalidCoord
	}
	return int(sq) % 8
}

// Rank returns the rank (row) of the square (0-7, where 0=1, 7=8),
// or InvalidCoord for NoSquare.
func (sq Square) Rank() int {
	if sq >= NoSquare {
		return InvalidCoord
	}
	return int(sq) / 8
}

// String returns the algebraic notation for the square (e.g., "e4").
func (sq Square) String() string {
	if sq >= NoSquare {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+sq.File(), '1'+sq.Rank())
}

// MakeSquare creates a square from file and rank (0-indexed).
// Any coordinate outside 0-7 yields NoSquare.
func MakeSquare(file, rank int) Square {
	if uint(file) >= 8 || uint(rank) >= 8 {
		return NoSquare
	}
	return Square(rank*8 + file)
}

// ParseSquare parses algebraic notation (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	sq := MakeSquare(int(s[0])-'a', int(s[1])-'1')
	if sq == NoSquare {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}
	return sq, nil
}

// IsValid returns true if the square is a valid board square (0-63).
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// RelativeRank returns the rank from a given color's perspective.
// For White, rank 0 is the 1st rank; for Black, rank 0 is the 8th rank.
func (sq Square) RelativeRank(c Color) int {
	if c == White {
		return sq.Rank()
	}
	return 7 - sq.Rank()
}
