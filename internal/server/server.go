// Package server plays games against browsers and scripts over websockets
// and serves board images and the game archive.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-logr/logr"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/game"
	"github.com/hailam/chessrules/internal/player"
	"github.com/hailam/chessrules/internal/render"
	"github.com/hailam/chessrules/internal/storage"
)

const defaultArchiveLimit = 20

// Config configures a Server. Every field is optional.
type Config struct {
	Log logr.Logger
	// Storage archives finished games. Without it /archive answers 503.
	Storage *storage.Storage
	// Seed seeds the server's random players; session n uses Seed+n.
	Seed uint64
	// AccessLog receives one Apache-style line per request.
	AccessLog io.Writer
	// SquareSize is the square side of board images in pixels.
	SquareSize int
}

// Server is an http.Handler.
type Server struct {
	handler  http.Handler
	upgrader websocket.Upgrader
	log      logr.Logger
	store    *storage.Storage
	renderer *render.Renderer
	seed     uint64

	nextID   atomic.Uint64
	mu       sync.RWMutex
	sessions map[string]*session
}

func New(cfg Config) *Server {
	if cfg.Log.GetSink() == nil {
		cfg.Log = logr.Discard()
	}
	if cfg.SquareSize == 0 {
		cfg.SquareSize = 48
	}

	s := &Server{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		log:      cfg.Log,
		store:    cfg.Storage,
		renderer: render.NewRenderer(cfg.SquareSize, nil),
		seed:     cfg.Seed,
		sessions: make(map[string]*session),
	}

	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(notFoundHandler)
	router.HandleFunc("/healthz", s.healthHandler).Methods(http.MethodGet)
	router.HandleFunc("/play", s.playHandler).Methods(http.MethodGet)
	router.HandleFunc("/games/{id}/board.png", s.boardHandler).Methods(http.MethodGet)

	archive := router.PathPrefix("/archive").Subrouter()
	archive.Use(handlers.CompressHandler)
	archive.HandleFunc("", s.archiveHandler).Methods(http.MethodGet)
	archive.HandleFunc("/{id:[0-9]+}", s.gameHandler).Methods(http.MethodGet)

	var h http.Handler = router
	if cfg.AccessLog != nil {
		h = handlers.LoggingHandler(cfg.AccessLog, h)
	}
	s.handler = handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{s.log}))(h)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "Not Found", http.StatusNotFound)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "ok\n")
}

func (s *Server) session(id string) *session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[id]
}

// ActiveGames returns the number of games in progress.
func (s *Server) ActiveGames() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Server) boardHandler(w http.ResponseWriter, r *http.Request) {
	sess := s.session(mux.Vars(r)["id"])
	if sess == nil {
		http.Error(w, "no such game", http.StatusNotFound)
		return
	}
	b := sess.snapshot()

	etag := fmt.Sprintf(`"%016x-%s"`, b.PositionKey(), b.LastMoveString())
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if err := s.renderer.PNG(w, &b); err != nil {
		s.log.Error(err, "render board", "session", sess.id)
	}
}

func (s *Server) archiveHandler(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "archive disabled", http.StatusServiceUnavailable)
		return
	}
	limit := defaultArchiveLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			http.Error(w, "bad limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	games, err := s.store.ListGames(limit)
	if err != nil {
		s.log.Error(err, "list games")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if games == nil {
		games = []*storage.GameRecord{}
	}
	writeJSON(w, games)
}

func (s *Server) gameHandler(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "archive disabled", http.StatusServiceUnavailable)
		return
	}
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "bad id", http.StatusBadRequest)
		return
	}

	rec, err := s.store.LoadGame(id)
	switch {
	case errors.Is(err, storage.ErrGameNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case err != nil:
		s.log.Error(err, "load game", "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	default:
		writeJSON(w, rec)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func parseColor(s string) (board.Color, bool) {
	switch s {
	case "", "white":
		return board.White, true
	case "black":
		return board.Black, true
	}
	return board.White, false
}

func (s *Server) playHandler(w http.ResponseWriter, r *http.Request) {
	human, ok := parseColor(r.URL.Query().Get("color"))
	if !ok {
		http.Error(w, "color must be white or black", http.StatusBadRequest)
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied.
		s.log.V(1).Info("websocket upgrade failed", "err", err.Error())
		return
	}
	defer conn.Close()

	n := s.nextID.Add(1)
	sess := newSession(strconv.FormatUint(n, 10), human)
	log := s.log.WithValues("session", sess.id, "remote", conn.RemoteAddr().String())

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.sessions, sess.id)
		s.mu.Unlock()
	}()

	log.Info("game started", "human", human)
	if err := conn.WriteJSON(message{Type: msgHello, ID: sess.id, Color: colorName(human)}); err != nil {
		log.Error(err, "write hello")
		return
	}

	remote := &remotePlayer{conn: conn, color: human, log: log}
	computer := player.NewRandom(human.Other(), s.seed+n)
	var players [2]game.Player
	players[human], players[human.Other()] = remote, computer

	started := time.Now()
	result, err := game.Play(game.NewMemory(), players[board.White], players[board.Black], board.StartBoard(),
		game.WithLogger(log),
		game.WithMoveHook(sess.record),
	)
	if err != nil {
		log.Error(err, "game failed")
	}

	rec := sess.finish(result, started)
	if s.store != nil {
		if err := s.store.RecordGame(rec); err != nil {
			log.Error(err, "record game")
		}
	}
	if err := conn.WriteJSON(message{Type: msgResult, ID: sess.id, Result: result.String(), Moves: rec.Moves}); err != nil {
		log.V(1).Info("write result failed", "err", err.Error())
	}
	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// recoveryLogger sends handler panics to the server log.
type recoveryLogger struct {
	log logr.Logger
}

func (l recoveryLogger) Println(v ...interface{}) {
	l.log.Error(nil, "handler panic", "panic", fmt.Sprint(v...))
}
