// Package tui draws boards on a terminal and reads moves from the keyboard.
package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/game"
)

// Layout of a drawn board: a two-cell rank gutter, then eight squares
// of squareWidth cells, then a row of file letters.
const (
	squareWidth = 3
	gutter      = 2

	// BoardWidth and BoardHeight are the cells DrawBoard covers.
	BoardWidth  = gutter + 8*squareWidth
	BoardHeight = 9
)

var (
	lightStyle = tcell.StyleDefault.Background(tcell.NewRGBColor(240, 217, 181))
	darkStyle  = tcell.StyleDefault.Background(tcell.NewRGBColor(181, 136, 99))
	lastStyle  = tcell.StyleDefault.Background(tcell.NewRGBColor(205, 210, 106))
	checkStyle = tcell.StyleDefault.Background(tcell.NewRGBColor(220, 40, 40))
	labelStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// CellOf returns the screen cell holding the piece letter of sq when the
// board is drawn at x, y.
func CellOf(sq board.Square, x, y int) (int, int) {
	return x + gutter + sq.File()*squareWidth + squareWidth/2, y + 7 - sq.Rank()
}

// DrawBoard draws b with its top-left corner at x, y. White is at the
// bottom; white pieces are upper case.
func DrawBoard(s tcell.Screen, b *board.Board, x, y int) {
	view := *b
	view.UpdateAttacks()

	last := b.LastMove()
	highlight := last.Piece != board.Empty && last.From.IsValid() && last.To.IsValid()

	for sq := board.A1; sq < board.NoSquare; sq++ {
		style := lightStyle
		if (sq.File()+sq.Rank())%2 == 0 {
			style = darkStyle
		}
		if highlight && (sq == last.From || sq == last.To) {
			style = lastStyle
		}

		f := view[sq]
		if f.Piece() == board.King && view.IsKingUnderAttack(f.Color()) {
			style = checkStyle
		}

		fg := tcell.ColorBlack
		if f.Color() == board.White {
			fg = tcell.ColorWhite
		}
		style = style.Foreground(fg).Bold(true)

		cx, cy := CellOf(sq, x, y)
		r := rune(f.Char())
		if f.IsEmpty() {
			r = ' '
		}
		s.SetContent(cx-1, cy, ' ', nil, style)
		s.SetContent(cx, cy, r, nil, style)
		s.SetContent(cx+1, cy, ' ', nil, style)
	}

	for i := 0; i < 8; i++ {
		s.SetContent(x, y+7-i, rune('1'+i), nil, labelStyle)
		cx, _ := CellOf(board.MakeSquare(i, 0), x, y)
		s.SetContent(cx, y+8, rune('a'+i), nil, labelStyle)
	}
}

// DrawText writes text at x, y.
func DrawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

// Show redraws the whole screen with b and a status line below it.
func Show(s tcell.Screen, b *board.Board, status string) {
	s.Clear()
	DrawBoard(s, b, 1, 1)
	DrawText(s, 1, BoardHeight+2, tcell.StyleDefault, status)
	s.Show()
}

// Player reads coordinate moves typed on the terminal. Enter submits,
// Backspace edits and Escape forfeits.
type Player struct {
	Color  board.Color
	screen tcell.Screen
	cands  []board.Board
}

func NewPlayer(s tcell.Screen, c board.Color) *Player {
	return &Player{
		Color:  c,
		screen: s,
		cands:  make([]board.Board, 0, board.MaxCandidates),
	}
}

func (p *Player) RequestMove(b *board.Board) game.Action {
	p.cands = board.AppendCandidateMoves(p.cands[:0], *b, p.Color)
	input := make([]rune, 0, 5)
	status := ""

	for {
		Show(p.screen, b, fmt.Sprintf("%s to move: %s", p.Color, string(input)))
		DrawText(p.screen, 1, BoardHeight+3, labelStyle, status)
		p.screen.Show()

		switch ev := p.screen.PollEvent().(type) {
		case nil:
			// Screen finalized.
			return game.Forfeit
		case *tcell.EventResize:
			p.screen.Sync()
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				return game.Forfeit
			case tcell.KeyEnter:
				if i := board.FindCandidate(p.cands, string(input)); i >= 0 {
					*b = p.cands[i]
					return game.Move
				}
				status = fmt.Sprintf("illegal move %q", string(input))
				input = input[:0]
			case tcell.KeyBackspace, tcell.KeyBackspace2:
				if len(input) > 0 {
					input = input[:len(input)-1]
				}
			case tcell.KeyRune:
				if len(input) < cap(input) {
					input = append(input, ev.Rune())
				}
			}
		}
	}
}
