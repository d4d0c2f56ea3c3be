package render

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	"image/color"

	"github.com/hailam/chessrules/internal/board"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"
)

//go:embed assets/pieces/*.svg
var pieceAssets embed.FS

// renderScale oversamples pieces before scaling them down to square size.
const renderScale = 3

// pieceSVG returns the piece outline with the fill and stroke
// placeholders set to the given colors.
func pieceSVG(pt board.PieceType, fill, stroke color.RGBA) ([]byte, error) {
	path := fmt.Sprintf("assets/pieces/%c.svg", pt.Char()|0x20)
	data, err := pieceAssets.ReadFile(path)
	if err != nil {
		return nil, err
	}
	data = bytes.ReplaceAll(data, []byte("{{fill}}"), []byte(hexColor(fill)))
	data = bytes.ReplaceAll(data, []byte("{{stroke}}"), []byte(hexColor(stroke)))
	return data, nil
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// rasterizePiece draws the piece at renderScale times size and scales it
// down to a size by size image.
func rasterizePiece(pt board.PieceType, fill, stroke color.RGBA, size int) (*image.RGBA, error) {
	data, err := pieceSVG(pt, fill, stroke)
	if err != nil {
		return nil, err
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", pt, err)
	}

	big := size * renderScale
	icon.SetTarget(0, 0, float64(big), float64(big))
	hi := image.NewRGBA(image.Rect(0, 0, big, big))
	scanner := rasterx.NewScannerGV(big, big, hi, hi.Bounds())
	icon.Draw(rasterx.NewDasher(big, big, scanner), 1.0)

	sprite := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.CatmullRom.Scale(sprite, sprite.Bounds(), hi, hi.Bounds(), xdraw.Over, nil)
	return sprite, nil
}
