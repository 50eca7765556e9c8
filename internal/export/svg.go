// Package export renders chain poses and canvases as standalone SVG.
package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/san-kum/linksim/internal/linkage"
	"github.com/san-kum/linksim/internal/viz"
)

const (
	background = "#0a0a0a"
	linkColor  = "#00ff00"
	trailColor = "#00aaff"
)

// CanvasToSVG converts a Braille canvas to one circle per lit dot.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	w, h := canvas.Width*2, canvas.Height*4
	var sb strings.Builder
	header(&sb, float64(w)*scale, float64(h)*scale)
	fmt.Fprintf(&sb, "<g fill=\"%s\">\n", linkColor)

	dotRadius := scale * 0.4
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !canvas.Lit(x, y) {
				continue
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, dotRadius)
		}
	}

	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

// PoseBrailleSVG draws pose and trail on a Braille canvas the way the live
// viewer does and converts the lit dots to a size-wide SVG.
func PoseBrailleSVG(pose linkage.Pose, reach float64, size int, trail []linkage.Point) string {
	const cols, rows = 80, 40
	canvas := viz.NewCanvas(cols, rows)
	vp := viz.NewViewport(canvas, reach)
	for _, p := range trail {
		canvas.Set(vp.Project(p))
	}
	vp.DrawPose(canvas, pose)
	return CanvasToSVG(canvas, float64(max(size, 1))/(cols*2))
}

// frame maps chain coordinates into a size×size image centered on the ground
// pivot, with room for a fully extended chain of the given reach.
type frame struct {
	size, scale float64
}

func newFrame(size int, reach float64) frame {
	if reach <= 0 {
		reach = 1
	}
	return frame{size: float64(size), scale: 0.45 * float64(size) / reach}
}

func (f frame) project(p linkage.Point) (float64, float64) {
	return f.size/2 + p.X*f.scale, f.size/2 - p.Y*f.scale
}

// PoseSVG writes a vector drawing of pose: one line per link, a dot per
// joint, and optionally the tip trail leading up to it.
func PoseSVG(w io.Writer, pose linkage.Pose, reach float64, size int, trail []linkage.Point) error {
	if len(pose.Joints) < 2 {
		return fmt.Errorf("pose has %d joints", len(pose.Joints))
	}
	f := newFrame(size, reach)

	var sb strings.Builder
	header(&sb, float64(size), float64(size))

	if len(trail) > 1 {
		fmt.Fprintf(&sb, "<path fill=\"none\" stroke=\"%s\" stroke-width=\"1\" stroke-opacity=\"0.6\" d=\"", trailColor)
		writePath(&sb, f, trail)
		sb.WriteString("\"/>\n")
	}

	stroke := math.Max(2, f.size/150)
	fmt.Fprintf(&sb, "<g stroke=\"%s\" stroke-width=\"%.1f\" stroke-linecap=\"round\">\n", linkColor, stroke)
	for i := 1; i < len(pose.Joints); i++ {
		x0, y0 := f.project(pose.Joints[i-1])
		x1, y1 := f.project(pose.Joints[i])
		fmt.Fprintf(&sb, "<line x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\"/>\n", x0, y0, x1, y1)
	}
	sb.WriteString("</g>\n")

	fmt.Fprintf(&sb, "<g fill=\"%s\">\n", linkColor)
	for i, j := range pose.Joints {
		r := stroke * 1.5
		if i == len(pose.Joints)-1 {
			r = stroke * 2.5
		}
		x, y := f.project(j)
		fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", x, y, r)
	}
	sb.WriteString("</g>\n</svg>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func writePath(sb *strings.Builder, f frame, points []linkage.Point) {
	for i, p := range points {
		x, y := f.project(p)
		if i == 0 {
			fmt.Fprintf(sb, "M%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(sb, " L%.1f,%.1f", x, y)
		}
	}
}

func header(sb *strings.Builder, width, height float64) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)
}
