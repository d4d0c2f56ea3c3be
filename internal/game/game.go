package game

import (
	"errors"
	"fmt"

	"github.com/go-logr/logr"
	"github.com/hailam/chessrules/internal/board"
)

// Setup errors. Play returns them together with the Error result.
var (
	ErrNoMemory  = errors.New("game memory too small")
	ErrNilPlayer = errors.New("nil player")
	ErrMoveLimit = errors.New("half-move limit reached without a result")
)

const (
	// MemorySize is the minimum number of boards Play needs: the
	// repetition history followed by room for every candidate move.
	MemorySize = HistorySize + board.MaxCandidates

	// DefaultMaxHalfMoves exceeds the longest game the fifty-move rule allows.
	DefaultMaxHalfMoves = 8192
)

// NewMemory allocates working memory for Play.
func NewMemory() []board.Board {
	return make([]board.Board, MemorySize)
}

// Ply describes an accepted move.
type Ply struct {
	Number int
	Color  board.Color
	Move   string
	Board  board.Board
}

type config struct {
	log          logr.Logger
	maxHalfMoves int
	onMove       func(Ply)
}

// Option configures Play.
type Option func(*config)

// WithLogger sets the logger. Rejected moves and results are logged at
// V(0), per-ply detail at V(1). The default discards everything.
func WithLogger(log logr.Logger) Option {
	return func(c *config) {
		c.log = log
	}
}

// WithMaxHalfMoves caps the game length; reaching it returns ErrMoveLimit.
func WithMaxHalfMoves(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxHalfMoves = n
		}
	}
}

// WithMoveHook registers fn to be called after every accepted move,
// before draw conditions are checked.
func WithMoveHook(fn func(Ply)) Option {
	return func(c *config) {
		c.onMove = fn
	}
}

func isNil(p Player) bool {
	if p == nil {
		return true
	}
	f, ok := p.(PlayerFunc)
	return ok && f == nil
}

// Play runs a game from start, white moving first, and returns its result.
//
// memory must hold at least MemorySize boards; it backs the repetition
// history and the candidate list so the game loop does not allocate.
// A player that keeps returning illegal boards is asked again without
// limit.
func Play(memory []board.Board, white, black Player, start board.Board, opts ...Option) (Result, error) {
	cfg := config{
		log:          logr.Discard(),
		maxHalfMoves: DefaultMaxHalfMoves,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	log := cfg.log

	if len(memory) < MemorySize {
		log.Info("game ended with error", "boards", len(memory), "need", MemorySize)
		return Error, fmt.Errorf("%w: have %d boards, need %d", ErrNoMemory, len(memory), MemorySize)
	}
	if isNil(white) || isNil(black) {
		log.Info("game ended with error", "reason", "nil player")
		return Error, ErrNilPlayer
	}

	var (
		hist    = newHistory(memory[:HistorySize])
		cands   = memory[HistorySize:HistorySize]
		players = [2]Player{board.Black: black, board.White: white}
		b       = start
		side    = board.White
		fifty   fiftyMoveCounter
	)
	// Callers may build start with Put alone.
	b.UpdateAttacks()
	saved := b

	log.Info("game started")
	for ply := 1; ply <= cfg.maxHalfMoves; ply++ {
		cands = board.AppendCandidateMoves(cands[:0], b, side)
		if len(cands) == 0 {
			result := DrawStalemate
			if b.IsKingUnderAttack(side) {
				result = checkmated(side)
			}
			log.Info("game over", "result", result, "ply", ply)
			return result, nil
		}

		log.V(1).Info("move requested", "ply", ply, "side", side, "candidates", len(cands))
		for {
			if players[side].RequestMove(&b) == Forfeit {
				result := forfeitBy(side)
				log.Info("game over", "result", result, "ply", ply)
				return result, nil
			}
			if contains(cands, &b) {
				break
			}
			log.Info("illegal move rejected", "ply", ply, "side", side)
			b = saved
		}

		move := b.LastMoveString()
		log.V(1).Info("move accepted", "ply", ply, "side", side, "move", move)
		if cfg.onMove != nil {
			cfg.onMove(Ply{Number: ply, Color: side, Move: move, Board: b})
		}

		result := Error
		switch {
		case InsufficientMaterial(&b):
			result = DrawInsufficientMaterial
		case hist.repeated(&b):
			result = DrawRepetition
		default:
			fifty.update(&saved, &b)
			if fifty.reached() {
				result = DrawFiftyMoveRule
			}
		}
		if result != Error {
			log.Info("game over", "result", result, "ply", ply)
			return result, nil
		}

		saved = b
		side = side.Other()
	}

	log.Info("game ended with error", "reason", "move limit", "limit", cfg.maxHalfMoves)
	return Error, fmt.Errorf("%w: %d", ErrMoveLimit, cfg.maxHalfMoves)
}

func contains(cands []board.Board, b *board.Board) bool {
	for i := range cands {
		if cands[i] == *b {
			return true
		}
	}
	return false
}
