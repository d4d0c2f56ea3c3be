// Package game runs a chess game between two players to a terminal result.
package game

import (
	"fmt"

	"github.com/hailam/chessrules/internal/board"
)

// Result is the outcome of a game.
type Result int

const (
	Error Result = iota
	WhiteWonForfeit
	WhiteWonCheckmate
	BlackWonForfeit
	BlackWonCheckmate
	DrawStalemate
	DrawInsufficientMaterial
	DrawRepetition
	DrawFiftyMoveRule
)

var resultNames = [...]string{
	Error:                    "error",
	WhiteWonForfeit:          "white-won-by-forfeit",
	WhiteWonCheckmate:        "white-won-by-checkmate",
	BlackWonForfeit:          "black-won-by-forfeit",
	BlackWonCheckmate:        "black-won-by-checkmate",
	DrawStalemate:            "draw-stalemate",
	DrawInsufficientMaterial: "draw-insufficient-material",
	DrawRepetition:           "draw-repetition",
	DrawFiftyMoveRule:        "draw-50-move-rule",
}

func (r Result) String() string {
	if r < 0 || int(r) >= len(resultNames) {
		return "unknown"
	}
	return resultNames[r]
}

// ParseResult is the inverse of Result.String.
func ParseResult(s string) (Result, bool) {
	for i, name := range resultNames {
		if name == s {
			return Result(i), true
		}
	}
	return Error, false
}

// IsDraw reports whether the game ended without a winner.
func (r Result) IsDraw() bool {
	return r >= DrawStalemate
}

// Winner returns the winning color. ok is false for draws and errors.
func (r Result) Winner() (c board.Color, ok bool) {
	switch r {
	case WhiteWonForfeit, WhiteWonCheckmate:
		return board.White, true
	case BlackWonForfeit, BlackWonCheckmate:
		return board.Black, true
	}
	return board.Black, false
}

func forfeitBy(c board.Color) Result {
	if c == board.White {
		return BlackWonForfeit
	}
	return WhiteWonForfeit
}

func checkmated(c board.Color) Result {
	if c == board.White {
		return BlackWonCheckmate
	}
	return WhiteWonCheckmate
}

func (r Result) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Result) UnmarshalText(text []byte) error {
	v, ok := ParseResult(string(text))
	if !ok {
		return fmt.Errorf("unknown game result %q", text)
	}
	*r = v
	return nil
}
