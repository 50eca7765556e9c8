package viz

import (
	"math"
	"strings"

	"github.com/san-kum/linksim/internal/linkage"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is Width×Height cells, or (Width*2)×(Height*4) dots.
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
	}
	c.Clear()
	return c
}

// Set lights the dot at (x, y). Dots off the canvas are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Lit reports whether the dot at (x, y) is set.
func (c *Canvas) Lit(x, y int) bool {
	if x < 0 || y < 0 {
		return false
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return false
	}
	return c.Grid[row][col]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
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

// DrawDot fills a (2r+1)-dot square centered on (x, y).
func (c *Canvas) DrawDot(x, y, r int) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			c.Set(x+dx, y+dy)
		}
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

// Viewport centers the ground pivot on the canvas and scales so a fully
// extended chain of the given reach fits in every direction.
type Viewport struct {
	cx, cy int
	scale  float64
}

func NewViewport(c *Canvas, reach float64) Viewport {
	w, h := c.Width*2, c.Height*4
	half := math.Min(float64(w), float64(h)) / 2
	if reach <= 0 {
		reach = 1
	}
	return Viewport{cx: w / 2, cy: h / 2, scale: 0.95 * half / reach}
}

// Project maps a chain point to dot coordinates. Screen y grows downward.
func (v Viewport) Project(p linkage.Point) (int, int) {
	return v.cx + int(math.Round(p.X*v.scale)), v.cy - int(math.Round(p.Y*v.scale))
}

// DrawPose draws each link as a line with a dot at every joint and a
// larger dot at the tip.
func (v Viewport) DrawPose(c *Canvas, pose linkage.Pose) {
	for i := 1; i < len(pose.Joints); i++ {
		x0, y0 := v.Project(pose.Joints[i-1])
		x1, y1 := v.Project(pose.Joints[i])
		c.DrawLine(x0, y0, x1, y1)
		c.DrawDot(x0, y0, 1)
	}
	tx, ty := v.Project(pose.Tip())
	c.DrawDot(tx, ty, 2)
}
