// Package render draws a board snapshot as a PNG image. The teacher
// module declared golang/freetype and golang.org/x/image as
// dependencies but never called them (most likely pulled in for
// gorgonia's own debug graph rendering); this package gives them an
// actual job: drawing the grid, discs and move-count labels for a
// snapshot so self-play games can be inspected visually.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"strconv"

	"github.com/alphabeth/c4zero/game"
	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

const (
	cellSize   = 64
	margin     = 16
	discRadius = 26
)

var (
	boardBlue = color.RGBA{R: 0x1f, G: 0x4e, B: 0x8c, A: 0xff}
	bgWhite   = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	blackDisc = color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}
	whiteDisc = color.RGBA{R: 0xf5, G: 0xf5, B: 0xf5, A: 0xff}
	emptyHole = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	textColor = color.RGBA{R: 0x10, G: 0x10, B: 0x10, A: 0xff}
)

// PNG draws a snapshot as a game.GameConfig-sized grid of discs, with
// the move index labeled in the bottom-left corner.
func PNG(snap game.Snapshot, moveCount int) (image.Image, error) {
	cfg := snap.Config()
	width := cfg.Columns*cellSize + 2*margin
	height := cfg.Rows*cellSize + 2*margin + cellSize/2

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: bgWhite}, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(margin, margin, width-margin, height-margin-cellSize/2), &image.Uniform{C: boardBlue}, image.Point{}, draw.Src)

	for x := 0; x < cfg.Rows; x++ {
		for y := 0; y < cfg.Columns; y++ {
			cx := margin + y*cellSize + cellSize/2
			cy := margin + x*cellSize + cellSize/2
			col, ok := snap.Get(game.Position{X: x, Y: y})
			discColor := emptyHole
			if ok {
				switch col {
				case game.Black:
					discColor = blackDisc
				case game.White:
					discColor = whiteDisc
				}
			}
			drawDisc(img, cx, cy, discRadius, discColor)
		}
	}

	if err := drawLabel(img, margin, height-margin/2, labelForMoveCount(moveCount)); err != nil {
		return nil, err
	}
	return img, nil
}

func drawDisc(img *image.RGBA, cx, cy, r int, c color.Color) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				img.Set(cx+dx, cy+dy, c)
			}
		}
	}
}

func drawLabel(img *image.RGBA, x, y int, s string) error {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return err
	}
	ctx := freetype.NewContext()
	ctx.SetFont(f)
	ctx.SetFontSize(14)
	ctx.SetDPI(72)
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetSrc(&image.Uniform{C: textColor})

	pt := fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
	_, err = ctx.DrawString(s, pt)
	return err
}

func labelForMoveCount(n int) string {
	if n == 1 {
		return "1 move"
	}
	return strconv.Itoa(n) + " moves"
}
