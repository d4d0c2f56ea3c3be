package game

import "github.com/hailam/chessrules/internal/board"

// FiftyMoveLimit is the number of consecutive half-moves without a pawn
// move or capture that draws the game.
const FiftyMoveLimit = 50

// InsufficientMaterial reports whether only kings remain, each side
// keeping at most one knight or bishop.
func InsufficientMaterial(b *board.Board) bool {
	var minors [2]int
	for sq := range b {
		f := b[sq]
		switch pt := f.Piece(); {
		case pt == board.Empty || pt == board.King:
		case pt.IsMinor():
			minors[f.Color()]++
			if minors[f.Color()] > 1 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// fiftyMoveCounter counts half-moves since the last pawn move or capture.
type fiftyMoveCounter int

// update accounts for the move leading from prev to next.
func (c *fiftyMoveCounter) update(prev, next *board.Board) {
	m := next.LastMove()
	target := prev[m.To]
	if m.Piece == board.Pawn || target.Owned(m.Color.Other()) {
		*c = 0
		return
	}
	*c++
}

func (c fiftyMoveCounter) reached() bool {
	return c >= FiftyMoveLimit
}
