package board

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Perft counts the leaf nodes of the legal move tree of the given depth
// below b, c to move.
func Perft(b Board, c Color, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	bufs := make([][]Board, depth+1)
	for i := range bufs {
		bufs[i] = make([]Board, 0, MaxCandidates)
	}
	return perft(b, c, depth, bufs)
}

func perft(b Board, c Color, depth int, bufs [][]Board) uint64 {
	cands := AppendCandidateMoves(bufs[depth][:0], b, c)
	bufs[depth] = cands
	if depth == 1 {
		return uint64(len(cands))
	}

	var nodes uint64
	for i := range cands {
		nodes += perft(cands[i], c.Other(), depth-1, bufs)
	}
	return nodes
}

// DivideEntry is the perft count below one root move.
type DivideEntry struct {
	Move  string
	Nodes uint64
}

// Divide runs Perft below every legal move of b, in candidate order,
// spreading root moves over up to workers goroutines. Zero workers
// means GOMAXPROCS.
func Divide(ctx context.Context, b Board, c Color, depth, workers int) ([]DivideEntry, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	roots := CandidateMoves(b, c)
	out := make([]DivideEntry, len(roots))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range roots {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = DivideEntry{
				Move:  roots[i].LastMoveString(),
				Nodes: Perft(roots[i], c.Other(), depth-1),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
