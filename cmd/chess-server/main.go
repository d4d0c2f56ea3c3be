// Command chess-server serves games against a random player over
// websockets.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/hailam/chessrules/internal/server"
	"github.com/hailam/chessrules/internal/storage"
)

var (
	addr      = flag.String("addr", ":8080", "listen address")
	dbDir     = flag.String("db", "", "database directory; empty disables the archive")
	seed      = flag.Uint64("seed", 0, "random player seed (0 = time based)")
	verbosity = flag.Int("v", 0, "log verbosity")
)

func main() {
	flag.Parse()
	stdr.SetVerbosity(*verbosity)
	logger := stdr.New(log.New(os.Stderr, "", log.LstdFlags))

	if err := run(logger); err != nil {
		logger.Error(err, "chess-server failed")
		os.Exit(1)
	}
}

func run(logger logr.Logger) error {
	cfg := server.Config{
		Log:       logger,
		Seed:      *seed,
		AccessLog: os.Stdout,
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	if *dbDir != "" {
		store, err := storage.Open(*dbDir, storage.WithLogger(logger))
		if err != nil {
			return fmt.Errorf("open database %s: %w", *dbDir, err)
		}
		defer store.Close()
		cfg.Storage = store
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           server.New(cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logger.Info("listening", "addr", *addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
