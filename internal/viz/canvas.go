package viz

import "strings"

// Braille cell layout, 2x4 dots per character cell:
//
//	1 4
//	2 5
//	3 6
//	7 8
//
// Unicode base 0x2800.
var brailleDots = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille pixel buffer. Coordinates given to Set and
// FillCircle are in dots: (cols*2) x (rows*4).
type Canvas struct {
	cols, rows int
	cells      []rune
}

func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{
		cols:  cols,
		rows:  rows,
		cells: make([]rune, cols*rows),
	}
	c.Clear()
	return c
}

func (c *Canvas) DotWidth() int  { return c.cols * 2 }
func (c *Canvas) DotHeight() int { return c.rows * 4 }

func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = 0x2800
	}
}

func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.cols || row >= c.rows {
		return
	}
	c.cells[row*c.cols+col] |= brailleDots[y%4][x%2]
}

// FillCircle sets every dot within radius r of (cx, cy).
func (c *Canvas) FillCircle(cx, cy, r int) {
	if r <= 0 {
		c.Set(cx, cy)
		return
	}
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				c.Set(cx+dx, cy+dy)
			}
		}
	}
}

// Border draws a one-dot frame along the canvas edges.
func (c *Canvas) Border() {
	w, h := c.DotWidth(), c.DotHeight()
	for x := 0; x < w; x++ {
		c.Set(x, 0)
		c.Set(x, h-1)
	}
	for y := 0; y < h; y++ {
		c.Set(0, y)
		c.Set(w-1, y)
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	b.Grow(c.rows * (c.cols + 1))
	for row := 0; row < c.rows; row++ {
		b.WriteString(string(c.cells[row*c.cols : (row+1)*c.cols]))
		b.WriteByte('\n')
	}
	return b.String()
}
