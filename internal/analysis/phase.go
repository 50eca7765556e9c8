package analysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/linksim/internal/dynamo"
)

type Point struct{ X, Y float64 }

// Portrait is the (θ, ω) trajectory of one joint.
type Portrait struct {
	Joint  int
	Points []Point
}

// JointPortrait reads joint j from states laid out as [θ..., ω...].
func JointPortrait(states []dynamo.State, joint int) (*Portrait, error) {
	if len(states) == 0 {
		return nil, fmt.Errorf("joint portrait: no states")
	}
	n := len(states[0]) / 2
	if joint < 0 || joint >= n {
		return nil, fmt.Errorf("joint portrait: joint %d out of range [0, %d)", joint, n)
	}

	p := &Portrait{Joint: joint, Points: make([]Point, 0, len(states))}
	for _, x := range states {
		if len(x) != 2*n {
			continue
		}
		p.Points = append(p.Points, Point{X: x[joint], Y: x[n+joint]})
	}
	return p, nil
}

// Bounds returns the extent of the points padded by 10% on each side.
func (p *Portrait) Bounds() (minX, maxX, minY, maxY float64) {
	minX, maxX = math.Inf(1), math.Inf(-1)
	minY, maxY = math.Inf(1), math.Inf(-1)
	for _, pt := range p.Points {
		minX, maxX = math.Min(minX, pt.X), math.Max(maxX, pt.X)
		minY, maxY = math.Min(minY, pt.Y), math.Max(maxY, pt.Y)
	}

	rangeX, rangeY := maxX-minX, maxY-minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	return minX - rangeX*0.1, maxX + rangeX*0.1, minY - rangeY*0.1, maxY + rangeY*0.1
}

// ASCII draws the portrait on a width×height character grid with axes
// where they cross the visible area.
func (p *Portrait) ASCII(width, height int) string {
	if p == nil || len(p.Points) == 0 || width < 2 || height < 2 {
		return ""
	}
	minX, maxX, minY, maxY := p.Bounds()
	rangeX, rangeY := maxX-minX, maxY-minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for _, pt := range p.Points {
		col := int((pt.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((pt.Y-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
