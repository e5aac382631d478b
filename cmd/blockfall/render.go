package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/blockfall/driver"
	"github.com/plus3/blockfall/tetris"
)

const (
	margin     = 20
	panelCells = 6
	textScale  = 2
)

var palette = map[tetris.Kind]color.RGBA{
	tetris.I: {102, 191, 255, 255},
	tetris.J: {0, 121, 241, 255},
	tetris.L: {255, 161, 0, 255},
	tetris.O: {255, 203, 0, 255},
	tetris.S: {0, 158, 47, 255},
	tetris.T: {135, 60, 190, 255},
	tetris.Z: {255, 109, 194, 255},
}

var (
	ghostColor  = color.NRGBA{255, 255, 255, 80}
	borderColor = color.RGBA{130, 130, 130, 255}
	overColor   = color.RGBA{230, 41, 55, 255}
)

// kindOf maps a snapshot letter back to its kind.
func kindOf(letter byte) (tetris.Kind, bool) {
	for _, k := range tetris.Kinds {
		if k.Letter() == letter {
			return k, true
		}
	}
	return tetris.Empty, false
}

// screenSize returns the window size needed for a board of the given
// visible dimensions.
func screenSize(rows, cols, cell int) (int, int) {
	return 2*margin + (cols+panelCells)*cell + margin, 2*margin + rows*cell
}

type renderer struct {
	cell float32
	face text.Face
}

func (r *renderer) draw(screen *ebiten.Image, snap *driver.Snapshot) {
	screen.Fill(color.Black)
	if snap == nil || len(snap.Rows) == 0 {
		return
	}

	rows, cols := len(snap.Rows), len(snap.Rows[0])
	vector.StrokeRect(screen, margin-2, margin-2, float32(cols)*r.cell+4, float32(rows)*r.cell+4, 2, borderColor, false)

	for row, line := range snap.Rows {
		for col := 0; col < len(line); col++ {
			x := margin + float32(col)*r.cell
			y := margin + float32(row)*r.cell
			switch line[col] {
			case '.':
			case '*':
				vector.DrawFilledRect(screen, x, y, r.cell, r.cell, ghostColor, false)
			default:
				if k, ok := kindOf(line[col]); ok {
					r.drawCell(screen, x, y, palette[k])
				}
			}
		}
	}

	panelX := float64(margin + float32(cols)*r.cell + margin)
	r.drawText(screen, "SCORE", panelX, margin, color.White)
	r.drawText(screen, fmt.Sprint(snap.Score), panelX, margin+30, color.White)
	r.drawText(screen, "BEST", panelX, margin+70, color.White)
	r.drawText(screen, fmt.Sprint(snap.Best), panelX, margin+100, color.White)
	r.drawText(screen, "NEXT", panelX, margin+140, color.White)
	if len(snap.Next) == 1 {
		if k, ok := kindOf(snap.Next[0]); ok {
			r.drawPreview(screen, k, float32(panelX), margin+170)
		}
	}

	if snap.Over {
		midY := float64(margin + float32(rows)*r.cell/2)
		r.drawText(screen, "GAME OVER", margin+20, midY-20, overColor)
		if snap.NewBest {
			r.drawText(screen, "NEW BEST!", margin+20, midY+10, color.White)
		}
		r.drawText(screen, "R to restart", margin+20, midY+40, color.White)
	}
}

func (r *renderer) drawCell(screen *ebiten.Image, x, y float32, clr color.Color) {
	vector.DrawFilledRect(screen, x, y, r.cell, r.cell, clr, false)
	vector.StrokeRect(screen, x, y, r.cell, r.cell, 1, color.Black, false)
}

// drawPreview draws k in its spawn rotation with its top-left cell at x, y.
func (r *renderer) drawPreview(screen *ebiten.Image, k tetris.Kind, x, y float32) {
	cells := k.Rotations()[0]
	top, left := cells[0].Row, cells[0].Col
	for _, c := range cells {
		top, left = min(top, c.Row), min(left, c.Col)
	}
	for _, c := range cells {
		r.drawCell(screen, x+float32(c.Col-left)*r.cell, y+float32(c.Row-top)*r.cell, palette[k])
	}
}

func (r *renderer) drawText(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(textScale, textScale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, r.face, op)
}
