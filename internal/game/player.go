package game

import "github.com/hailam/chessrules/internal/board"

// Action is a player's answer to a move request.
type Action int

const (
	// Move means the board was overwritten with the chosen candidate.
	Move Action = iota
	// Forfeit resigns the game.
	Forfeit
)

func (a Action) String() string {
	if a == Forfeit {
		return "forfeit"
	}
	return "move"
}

// Player chooses moves for one side. RequestMove receives the current
// position and, to move, must overwrite it with one of the legal
// successors exactly as produced by board.AppendCandidateMoves. Any other
// board is rejected and the player is asked again.
type Player interface {
	RequestMove(b *board.Board) Action
}

// PlayerFunc adapts an ordinary function to the Player interface.
type PlayerFunc func(b *board.Board) Action

// RequestMove calls f(b).
func (f PlayerFunc) RequestMove(b *board.Board) Action {
	return f(b)
}
