// Command perft counts the positions reachable from the initial position
// to verify move generation.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hailam/chessrules/internal/board"
)

var (
	depth      = flag.Int("depth", 5, "search depth in plies")
	divide     = flag.Bool("divide", false, "print the count below each root move")
	workers    = flag.Int("workers", 0, "goroutines for the root split (0 = GOMAXPROCS)")
	moves      = flag.String("moves", "", "comma-separated coordinate moves to play before counting")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()
	if *depth < 1 {
		log.Fatal("depth must be at least 1")
	}

	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	b, side, err := play(*moves)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	entries, err := board.Divide(ctx, b, side, *depth, *workers)
	if err != nil {
		log.Fatal(err)
	}

	var total uint64
	for _, e := range entries {
		total += e.Nodes
		if *divide {
			fmt.Printf("%s: %s\n", e.Move, humanize.Comma(int64(e.Nodes)))
		}
	}
	elapsed := time.Since(start)
	nps := float64(total) / max(elapsed.Seconds(), 1e-9)
	fmt.Printf("perft(%d) = %s nodes in %s (%s nps)\n",
		*depth, humanize.Comma(int64(total)), elapsed.Round(time.Millisecond), humanize.SIWithDigits(nps, 2, ""))
}

// play applies comma-separated coordinate moves to the initial position.
func play(list string) (board.Board, board.Color, error) {
	b, side := board.StartBoard(), board.White
	if list == "" {
		return b, side, nil
	}
	for _, mv := range strings.Split(list, ",") {
		cands := board.CandidateMoves(b, side)
		i := board.FindCandidate(cands, mv)
		if i < 0 {
			return b, side, fmt.Errorf("illegal move %q in\n%s", mv, &b)
		}
		b, side = cands[i], side.Other()
	}
	return b, side, nil
}
