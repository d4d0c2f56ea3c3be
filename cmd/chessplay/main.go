// Command chessplay plays one game between two players chosen on the
// command line and archives the result.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/game"
	"github.com/hailam/chessrules/internal/player"
	"github.com/hailam/chessrules/internal/render"
	"github.com/hailam/chessrules/internal/storage"
	"github.com/hailam/chessrules/internal/tui"
)

var (
	whiteKind = flag.String("white", "", "white player: random, stdin or tty")
	blackKind = flag.String("black", "", "black player: random, stdin or tty")
	seed      = flag.Uint64("seed", 0, "random player seed (0 = time based)")
	dbDir     = flag.String("db", "", "database directory (default: platform data dir)")
	noDB      = flag.Bool("no-db", false, "do not open the database")
	pngPath   = flag.String("png", "", "write the final board as PNG to this file")
	verbosity = flag.Int("v", 0, "log verbosity")
	maxPlies  = flag.Int("max-plies", game.DefaultMaxHalfMoves, "stop after this many half-moves")
	savePrefs = flag.Bool("save-prefs", false, "store -white, -black, -seed and -v as defaults")
)

func main() {
	flag.Parse()
	stdr.SetVerbosity(*verbosity)
	logger := stdr.New(log.New(os.Stderr, "", log.LstdFlags))

	if err := run(logger); err != nil {
		logger.Error(err, "chessplay failed")
		os.Exit(1)
	}
}

func run(logger logr.Logger) error {
	store, err := openStorage(logger)
	if err != nil {
		logger.Error(err, "database unavailable, game will not be archived")
	}
	if store != nil {
		defer store.Close()
	}

	prefs := storage.DefaultPreferences()
	if store != nil {
		if prefs, err = store.LoadPreferences(); err != nil {
			return err
		}
		welcome(os.Stdout, store, logger)
	}
	applyFlags(prefs)
	if prefs.Seed == 0 {
		prefs.Seed = uint64(time.Now().UnixNano())
	}

	var screen tcell.Screen
	if prefs.White == "tty" || prefs.Black == "tty" {
		if screen, err = tcell.NewScreen(); err != nil {
			return err
		}
		if err := screen.Init(); err != nil {
			return err
		}
		defer screen.Fini()
	}

	white, err := newPlayer(prefs.White, board.White, prefs.Seed, screen)
	if err != nil {
		return err
	}
	black, err := newPlayer(prefs.Black, board.Black, prefs.Seed+1, screen)
	if err != nil {
		return err
	}

	final := board.StartBoard()
	var moves []string
	started := time.Now()
	result, playErr := game.Play(game.NewMemory(), white, black, final,
		game.WithLogger(logger),
		game.WithMaxHalfMoves(*maxPlies),
		game.WithMoveHook(func(p game.Ply) {
			final = p.Board
			moves = append(moves, p.Move)
			if screen != nil {
				tui.Show(screen, &final, fmt.Sprintf("%d. %s %s", (p.Number+1)/2, p.Color, p.Move))
			}
		}),
	)
	if screen != nil {
		screen.Fini()
		screen = nil
	}
	if playErr != nil && !errors.Is(playErr, game.ErrMoveLimit) {
		return playErr
	}

	fmt.Printf("%s\n%s after %d plies\n", &final, result, len(moves))

	if *pngPath != "" {
		if err := writePNG(*pngPath, &final); err != nil {
			return err
		}
	}

	if store == nil {
		return nil
	}
	rec := &storage.GameRecord{
		White:    prefs.White,
		Black:    prefs.Black,
		Result:   result,
		Moves:    moves,
		Started:  started,
		Duration: time.Since(started),
		FinalKey: final.PositionKey(),
	}
	if err := store.RecordGame(rec); err != nil {
		return err
	}
	stats, err := store.LoadStats()
	if err != nil {
		return err
	}
	fmt.Printf("Game #%d archived. %s\n", rec.ID, stats)

	if *savePrefs {
		return store.SavePreferences(prefs)
	}
	return nil
}

func openStorage(logger logr.Logger) (*storage.Storage, error) {
	switch {
	case *noDB:
		return nil, nil
	case *dbDir != "":
		return storage.Open(*dbDir, storage.WithLogger(logger))
	default:
		return storage.NewStorage(storage.WithLogger(logger))
	}
}

// applyFlags overrides stored preferences with flags given explicitly.
func applyFlags(prefs *storage.UserPreferences) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "white":
			prefs.White = *whiteKind
		case "black":
			prefs.Black = *blackKind
		case "seed":
			prefs.Seed = *seed
		case "v":
			prefs.Verbosity = *verbosity
		}
	})
	stdr.SetVerbosity(prefs.Verbosity)
}

func newPlayer(kind string, c board.Color, seed uint64, screen tcell.Screen) (game.Player, error) {
	switch kind {
	case "random":
		return player.NewRandom(c, seed), nil
	case "stdin":
		return player.NewLines(c, os.Stdin, os.Stdout), nil
	case "tty":
		return tui.NewPlayer(screen, c), nil
	}
	return nil, fmt.Errorf("unknown player %q for %s", kind, c)
}

func writePNG(path string, b *board.Board) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render.NewRenderer(64, nil).PNG(f, b); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// welcome greets a first-time user once. Failing to remember the greeting
// only means it shows again, so errors are logged and not returned.
func welcome(w io.Writer, store *storage.Storage, logger logr.Logger) {
	first, err := store.IsFirstLaunch()
	if err != nil {
		logger.V(1).Info("could not read first launch", "err", err.Error())
		return
	}
	if !first {
		return
	}
	fmt.Fprintln(w, "Welcome to chessplay. Enter moves like e2e4 or e7e8q; type resign to give up.")
	if err := store.MarkFirstLaunchComplete(); err != nil {
		logger.V(1).Info("could not record first launch", "err", err.Error())
	}
}
