package game

import "github.com/hailam/chessrules/internal/board"

// HistorySize is the number of recent positions kept for repetition checks.
const HistorySize = 50

// history is a fixed-capacity ring of positions over caller memory.
type history struct {
	slots []board.Board
	next  int
	n     int
}

func newHistory(slots []board.Board) *history {
	return &history{slots: slots}
}

func (h *history) add(b *board.Board) {
	h.slots[h.next] = *b
	h.next = (h.next + 1) % len(h.slots)
	if h.n < len(h.slots) {
		h.n++
	}
}

// count returns how many stored positions match b.
func (h *history) count(b *board.Board) int {
	matches := 0
	for i := 0; i < h.n; i++ {
		if board.SamePosition(&h.slots[i], b) {
			matches++
		}
	}
	return matches
}

// repeated reports whether b is at least the third occurrence of its
// position, then records it. En passant eligibility is not part of the
// comparison.
func (h *history) repeated(b *board.Board) bool {
	if h.count(b) >= 2 {
		return true
	}
	h.add(b)
	return false
}
