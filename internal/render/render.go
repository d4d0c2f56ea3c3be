// Package render draws boards as raster images.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"sync"

	"github.com/hailam/chessrules/internal/board"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Theme defines the color scheme for the board.
type Theme struct {
	LightSquare   color.RGBA
	DarkSquare    color.RGBA
	LastMoveColor color.RGBA
	CheckColor    color.RGBA
	WhitePiece    color.RGBA
	BlackPiece    color.RGBA
	PieceOutline  color.RGBA
}

// DefaultTheme returns the default color theme.
func DefaultTheme() *Theme {
	return &Theme{
		LightSquare:   color.RGBA{240, 217, 181, 255}, // Tan
		DarkSquare:    color.RGBA{181, 136, 99, 255},  // Brown
		LastMoveColor: color.RGBA{205, 210, 106, 160},
		CheckColor:    color.RGBA{220, 40, 40, 255},
		WhitePiece:    color.RGBA{250, 250, 250, 255},
		BlackPiece:    color.RGBA{50, 50, 50, 255},
		PieceOutline:  color.RGBA{0, 0, 0, 255},
	}
}

type spriteKey struct {
	color board.Color
	piece board.PieceType
}

// Renderer draws boards. It is safe for concurrent use.
type Renderer struct {
	theme      *Theme
	squareSize int

	mu      sync.Mutex
	sprites map[spriteKey]*image.RGBA
}

// NewRenderer returns a renderer with square sides of squareSize pixels.
// Sprites are rasterized on first use and cached.
func NewRenderer(squareSize int, theme *Theme) *Renderer {
	if theme == nil {
		theme = DefaultTheme()
	}
	return &Renderer{
		theme:      theme,
		squareSize: max(squareSize, 8),
		sprites:    make(map[spriteKey]*image.RGBA),
	}
}

// Size returns the side of a rendered board in pixels.
func (r *Renderer) Size() int {
	return 8 * r.squareSize
}

// SquareToImage returns the top-left pixel of sq. White is at the bottom.
func (r *Renderer) SquareToImage(sq board.Square) (x, y int) {
	return sq.File() * r.squareSize, (7 - sq.Rank()) * r.squareSize
}

// imageToSquare converts pixel coordinates to a square, or NoSquare.
func (r *Renderer) imageToSquare(x, y int) board.Square {
	if x < 0 || y < 0 || x >= r.Size() || y >= r.Size() {
		return board.NoSquare
	}
	return board.MakeSquare(x/r.squareSize, 7-y/r.squareSize)
}

func (r *Renderer) squareRect(sq board.Square) image.Rectangle {
	x, y := r.SquareToImage(sq)
	return image.Rect(x, y, x+r.squareSize, y+r.squareSize)
}

func (r *Renderer) sprite(c board.Color, pt board.PieceType) (*image.RGBA, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := spriteKey{c, pt}
	if s, ok := r.sprites[key]; ok {
		return s, nil
	}
	fill := r.theme.BlackPiece
	if c == board.White {
		fill = r.theme.WhitePiece
	}
	s, err := rasterizePiece(pt, fill, r.theme.PieceOutline, r.squareSize)
	if err != nil {
		return nil, err
	}
	r.sprites[key] = s
	return s, nil
}

// Draw renders b with its last move highlighted and a ring around a king
// in check.
func (r *Renderer) Draw(b *board.Board) (*image.RGBA, error) {
	size := r.Size()
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	for sq := board.A1; sq < board.NoSquare; sq++ {
		draw.Draw(img, r.squareRect(sq), image.NewUniform(r.squareColor(sq)), image.Point{}, draw.Src)
	}
	r.drawLabels(img)

	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	if m := b.LastMove(); m.Piece != board.Empty && m.From.IsValid() && m.To.IsValid() {
		filler := rasterx.NewFiller(size, size, scanner)
		filler.SetColor(r.theme.LastMoveColor)
		for _, sq := range []board.Square{m.From, m.To} {
			rect := r.squareRect(sq)
			rasterx.AddRect(float64(rect.Min.X), float64(rect.Min.Y), float64(rect.Max.X), float64(rect.Max.Y), 0, filler)
		}
		filler.Draw()
	}

	checked := *b
	checked.UpdateAttacks()
	for sq := board.A1; sq < board.NoSquare; sq++ {
		f := b[sq]
		if f.IsEmpty() {
			continue
		}
		s, err := r.sprite(f.Color(), f.Piece())
		if err != nil {
			return nil, err
		}
		draw.Draw(img, r.squareRect(sq), s, image.Point{}, draw.Over)
	}

	for _, c := range []board.Color{board.White, board.Black} {
		if checked.IsKingUnderAttack(c) {
			r.drawRing(scanner, checked.KingSquare(c))
		}
	}
	return img, nil
}

// drawRing strokes a circle inside sq.
func (r *Renderer) drawRing(scanner rasterx.Scanner, sq board.Square) {
	size := r.Size()
	rect := r.squareRect(sq)
	s := float64(r.squareSize)
	width := s / 12

	dasher := rasterx.NewDasher(size, size, scanner)
	dasher.SetStroke(fixed.Int26_6(width*64), 0, rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.ArcClip, nil, 0)
	dasher.SetColor(r.theme.CheckColor)
	rasterx.AddCircle(float64(rect.Min.X)+s/2, float64(rect.Min.Y)+s/2, s*0.46, dasher)
	dasher.Draw()
}

func (r *Renderer) squareColor(sq board.Square) color.RGBA {
	if (sq.File()+sq.Rank())%2 == 0 {
		return r.theme.DarkSquare
	}
	return r.theme.LightSquare
}

// drawLabels writes rank digits in the corner of the a-file and file
// letters along the first rank, each in the opposite square color.
func (r *Renderer) drawLabels(img *image.RGBA) {
	face := basicfont.Face7x13
	d := font.Drawer{Dst: img, Face: face}
	pad := max(r.squareSize/16, 1)

	for i := 0; i < 8; i++ {
		rankSq := board.MakeSquare(0, i)
		x, y := r.SquareToImage(rankSq)
		d.Src = image.NewUniform(r.squareColor(rankSq.Right()))
		d.Dot = fixed.P(x+pad, y+pad+face.Ascent)
		d.DrawString(string(rune('1' + i)))

		fileSq := board.MakeSquare(i, 0)
		x, y = r.SquareToImage(fileSq)
		d.Src = image.NewUniform(r.squareColor(fileSq.Up()))
		d.Dot = fixed.P(x+r.squareSize-pad-face.Width, y+r.squareSize-pad-face.Descent)
		d.DrawString(string(rune('a' + i)))
	}
}

// PNG writes b as a PNG image to w.
func (r *Renderer) PNG(w io.Writer, b *board.Board) error {
	img, err := r.Draw(b)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}
