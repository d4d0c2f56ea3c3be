package server

import (
	"sync"
	"time"

	"github.com/go-logr/logr"
	"github.com/gorilla/websocket"
	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/game"
	"github.com/hailam/chessrules/internal/storage"
)

// Message types sent by the server.
const (
	msgHello    = "hello"
	msgTurn     = "turn"
	msgRejected = "rejected"
	msgResult   = "result"
)

// message is a server-to-client websocket message.
type message struct {
	Type       string   `json:"type"`
	ID         string   `json:"id,omitempty"`
	Color      string   `json:"color,omitempty"`
	Board      string   `json:"board,omitempty"`
	LastMove   string   `json:"last_move,omitempty"`
	Candidates []string `json:"candidates,omitempty"`
	Move       string   `json:"move,omitempty"`
	Result     string   `json:"result,omitempty"`
	Moves      []string `json:"moves,omitempty"`
}

// reply is a client-to-server websocket message.
type reply struct {
	Move    string `json:"move"`
	Forfeit bool   `json:"forfeit"`
}

func colorName(c board.Color) string {
	if c == board.White {
		return "white"
	}
	return "black"
}

// session is a game in progress.
type session struct {
	id    string
	human board.Color

	mu    sync.Mutex
	board board.Board
	moves []string
}

func newSession(id string, human board.Color) *session {
	return &session{id: id, human: human, board: board.StartBoard()}
}

func (s *session) record(p game.Ply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.board = p.Board
	s.moves = append(s.moves, p.Move)
}

func (s *session) snapshot() board.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board
}

func (s *session) finish(result game.Result, started time.Time) *storage.GameRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := &storage.GameRecord{
		White:    "remote",
		Black:    "random",
		Result:   result,
		Moves:    append([]string(nil), s.moves...),
		Started:  started,
		Duration: time.Since(started),
		FinalKey: s.board.PositionKey(),
	}
	if s.human == board.Black {
		rec.White, rec.Black = rec.Black, rec.White
	}
	return rec
}

// remotePlayer relays move requests over a websocket. A read error or
// a forfeit message resigns; an unknown move is answered with a
// rejection and the board is left for the game to refuse.
type remotePlayer struct {
	conn  *websocket.Conn
	color board.Color
	log   logr.Logger
	cands []board.Board
}

func (p *remotePlayer) RequestMove(b *board.Board) game.Action {
	p.cands = board.AppendCandidateMoves(p.cands[:0], *b, p.color)
	moves := make([]string, len(p.cands))
	for i := range p.cands {
		moves[i] = p.cands[i].LastMoveString()
	}

	turn := message{Type: msgTurn, Board: b.String(), LastMove: b.LastMoveString(), Candidates: moves}
	if err := p.conn.WriteJSON(turn); err != nil {
		p.log.V(1).Info("write turn failed", "err", err.Error())
		return game.Forfeit
	}

	var r reply
	if err := p.conn.ReadJSON(&r); err != nil {
		p.log.V(1).Info("client gone", "err", err.Error())
		return game.Forfeit
	}
	if r.Forfeit {
		return game.Forfeit
	}
	if i := board.FindCandidate(p.cands, r.Move); i >= 0 {
		*b = p.cands[i]
		return game.Move
	}

	if err := p.conn.WriteJSON(message{Type: msgRejected, Move: r.Move}); err != nil {
		return game.Forfeit
	}
	return game.Move
}
