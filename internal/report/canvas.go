// Package report renders static console and file output for finished runs:
// asciigraph time-series plots, braille trajectory canvases, styled
// summaries, and SVG export. There is no live view and no event loop;
// everything here formats data that already exists.
package report

import "strings"

// Braille patterns pack a 2x4 dot grid per character cell, offset 0x2800.
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille-dot drawing surface. Cell (col,row) holds 2x4
// sub-pixels, so the drawable area is (Width*2) x (Height*4).
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
	return c
}

// Set lights the sub-pixel at (x, y). Out-of-range coordinates are
// silently dropped so trajectories may leave the frame.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Line draws with Bresenham's algorithm in sub-pixel coordinates.
func (c *Canvas) Line(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Plot scales the series into the canvas and draws connected segments.
// The y axis points up.
func (c *Canvas) Plot(xs, ys []float64, xMin, xMax, yMin, yMax float64) {
	if len(xs) < 2 || xMax == xMin || yMax == yMin {
		return
	}
	w := float64(c.Width*2 - 1)
	h := float64(c.Height*4 - 1)

	px := func(i int) (int, int) {
		x := int((xs[i] - xMin) / (xMax - xMin) * w)
		y := int(h - (ys[i]-yMin)/(yMax-yMin)*h)
		return x, y
	}

	x0, y0 := px(0)
	for i := 1; i < len(xs); i++ {
		x1, y1 := px(i)
		c.Line(x0, y0, x1, y1)
		x0, y0 = x1, y1
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
