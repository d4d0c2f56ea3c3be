// Package player provides game.Player implementations: a seeded random
// mover, a fixed script and a line-oriented reader for terminals and pipes.
package player

import (
	"bufio"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/game"
)

// ResignWord forfeits the game when read by a Lines player.
const ResignWord = "resign"

// Random plays a uniformly chosen legal move.
type Random struct {
	Color board.Color
	rng   *rand.Rand
	cands []board.Board
}

// NewRandom returns a Random player for c. Equal seeds replay equal games.
func NewRandom(c board.Color, seed uint64) *Random {
	return &Random{
		Color: c,
		rng:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		cands: make([]board.Board, 0, board.MaxCandidates),
	}
}

func (r *Random) RequestMove(b *board.Board) game.Action {
	r.cands = board.AppendCandidateMoves(r.cands[:0], *b, r.Color)
	if len(r.cands) == 0 {
		return game.Forfeit
	}
	*b = r.cands[r.rng.IntN(len(r.cands))]
	return game.Move
}

// Scripted plays a fixed list of coordinate moves and forfeits when it
// runs out. An illegal entry leaves the board untouched, so the game
// rejects it and asks for the next one.
type Scripted struct {
	Color board.Color
	moves []string
}

func NewScripted(c board.Color, moves ...string) *Scripted {
	return &Scripted{Color: c, moves: moves}
}

// Remaining returns the number of unplayed moves.
func (s *Scripted) Remaining() int {
	return len(s.moves)
}

func (s *Scripted) RequestMove(b *board.Board) game.Action {
	if len(s.moves) == 0 {
		return game.Forfeit
	}
	mv := s.moves[0]
	s.moves = s.moves[1:]

	cands := board.CandidateMoves(*b, s.Color)
	if i := board.FindCandidate(cands, mv); i >= 0 {
		*b = cands[i]
	}
	return game.Move
}

// Lines reads one coordinate move per line. Unknown or illegal input is
// reported to the prompt writer and read again. ResignWord or the end of
// input forfeits.
type Lines struct {
	Color board.Color
	in    *bufio.Scanner
	out   io.Writer
	cands []board.Board
}

// NewLines returns a Lines player reading r. Prompts and the board go to
// w, which may be nil.
func NewLines(c board.Color, r io.Reader, w io.Writer) *Lines {
	if w == nil {
		w = io.Discard
	}
	return &Lines{
		Color: c,
		in:    bufio.NewScanner(r),
		out:   w,
		cands: make([]board.Board, 0, board.MaxCandidates),
	}
}

func (l *Lines) RequestMove(b *board.Board) game.Action {
	l.cands = board.AppendCandidateMoves(l.cands[:0], *b, l.Color)
	fmt.Fprintf(l.out, "%s\n%s to move: ", b, l.Color)

	for l.in.Scan() {
		text := strings.ToLower(strings.TrimSpace(l.in.Text()))
		switch {
		case text == "":
			continue
		case text == ResignWord:
			return game.Forfeit
		}
		if i := board.FindCandidate(l.cands, text); i >= 0 {
			*b = l.cands[i]
			return game.Move
		}
		fmt.Fprintf(l.out, "illegal move %q, try again: ", text)
	}
	return game.Forfeit
}
