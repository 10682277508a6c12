package main

import (
	"image"
	"math"

	"github.com/gogpu/markers"
)

// brailleBuf is a grid of braille cells, 2x4 dots each.
type brailleBuf struct {
	w, h int       // in cells
	m    [][]uint8 // per-cell dot mask
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	for i := range m {
		m[i] = make([]uint8, w)
	}
	return &brailleBuf{w: w, h: h, m: m}
}

// dotBits maps a dot within a cell, [column][row], to its bit.
var dotBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// set sets the dot at dot coordinates (x, y).
func (b *brailleBuf) set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	cx, cy := x/dotsX, y/dotsY
	if cx >= b.w || cy >= b.h {
		return
	}
	b.m[cy][cx] |= dotBits[x%dotsX][y%dotsY]
}

// drawFrame sets every dot whose frame pixel is mostly opaque. The frame's
// top-left corner sits at its layer position offset by the pane (panX, panY).
func (b *brailleBuf) drawFrame(f markers.Frame, panX, panY float64) {
	r := f.PixelRatio
	if r <= 0 {
		r = 1
	}
	bounds := f.Image.Bounds()
	ox := float64(f.Position.X) + panX
	oy := float64(f.Position.Y) + panY

	for y := 0; y < b.h*dotsY; y++ {
		for x := 0; x < b.w*dotsX; x++ {
			p := image.Pt(
				int(math.Floor((float64(x)+0.5-ox)*r)),
				int(math.Floor((float64(y)+0.5-oy)*r)),
			)
			if !p.In(bounds) {
				continue
			}
			if _, _, _, a := f.Image.At(p.X, p.Y).RGBA(); a >= 0x8000 {
				b.set(x, y)
			}
		}
	}
}

func (b *brailleBuf) toLines() []string {
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		row := make([]rune, b.w)
		for x := 0; x < b.w; x++ {
			mask := b.m[y][x]
			if mask == 0 {
				row[x] = ' '
			} else {
				row[x] = rune(0x2800 + int(mask))
			}
		}
		out[y] = string(row)
	}
	return out
}
