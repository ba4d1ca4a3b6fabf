// Package scanplot renders scans and fitted shapes to PNG files.
package scanplot

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/scangeom/geom"
)

// segmentColor is the overlay colour for fitted segments; near-black so the
// cluster palette stays readable underneath.
var segmentColor = color.RGBA{R: 20, G: 20, B: 20, A: 255}

// RenderPNG draws pts as one scatter with the fitted segments overlaid and
// writes the plot to path.
func RenderPNG(path string, pts []geom.Point, segments []geom.LineSegment) error {
	return RenderClustersPNG(path, [][]geom.Point{pts}, segments)
}

// RenderClustersPNG draws each cluster in its own colour with the fitted
// segments overlaid and writes the plot to path. Axes are forced to the same
// scale so the scene's shapes render undistorted.
func RenderClustersPNG(path string, clusters [][]geom.Point, segments []geom.LineSegment) error {
	p := plot.New()
	p.X.Label.Text = "x (m)"
	p.Y.Label.Text = "y (m)"

	colors := clusterPalette(len(clusters))
	plotted := false

	for i, cluster := range clusters {
		if len(cluster) == 0 {
			continue
		}
		xys := make(plotter.XYs, len(cluster))
		for j, pt := range cluster {
			xys[j] = plotter.XY{X: pt.X, Y: pt.Y}
		}
		scatter, err := plotter.NewScatter(xys)
		if err != nil {
			return fmt.Errorf("cluster %d scatter: %w", i, err)
		}
		scatter.GlyphStyle.Color = colors[i]
		scatter.GlyphStyle.Radius = vg.Points(1.5)
		p.Add(scatter)
		plotted = true
	}

	for i, seg := range segments {
		line, err := plotter.NewLine(plotter.XYs{
			{X: seg.Start.X, Y: seg.Start.Y},
			{X: seg.End.X, Y: seg.End.Y},
		})
		if err != nil {
			return fmt.Errorf("segment %d line: %w", i, err)
		}
		line.Color = segmentColor
		line.Width = vg.Points(2)
		p.Add(line)
		plotted = true
	}

	if !plotted {
		p.X.Min, p.X.Max = -1, 1
		p.Y.Min, p.Y.Max = -1, 1
	}
	equaliseAxes(p)

	if err := p.Save(8*vg.Inch, 8*vg.Inch, path); err != nil {
		return fmt.Errorf("save plot: %w", err)
	}
	return nil
}

// SegmentsFromCircle samples a circle into a closed chain of short segments
// so fitted circles can be drawn through the segment overlay.
func SegmentsFromCircle(c geom.Circle, steps int) []geom.LineSegment {
	if steps < 3 {
		steps = 3
	}
	segments := make([]geom.LineSegment, 0, steps)
	prev := c.PointAt(0)
	for k := 1; k <= steps; k++ {
		next := c.PointAt(2 * math.Pi * float64(k) / float64(steps))
		segments = append(segments, geom.LineSegment{Start: prev, End: next})
		prev = next
	}
	return segments
}

// equaliseAxes pads the data bounds and gives both axes the same span. The
// canvas is square, so equal spans mean one metre measures the same distance
// in x and y.
func equaliseAxes(p *plot.Plot) {
	xSpan := p.X.Max - p.X.Min
	ySpan := p.Y.Max - p.Y.Min
	span := math.Max(xSpan, ySpan)
	if span <= 0 || math.IsInf(span, 0) || math.IsNaN(span) {
		return
	}

	xMid := (p.X.Max + p.X.Min) / 2
	yMid := (p.Y.Max + p.Y.Min) / 2
	half := span/2 + span*0.05
	p.X.Min, p.X.Max = xMid-half, xMid+half
	p.Y.Min, p.Y.Max = yMid-half, yMid+half
}

// clusterPalette creates a palette of distinct colours, one per cluster.
func clusterPalette(n int) []color.Color {
	if n <= 0 {
		return nil
	}

	colors := make([]color.Color, n)
	for i := 0; i < n; i++ {
		hue := float64(i) / float64(n)
		r, g, b := hslToRGB(hue, 0.7, 0.5)
		colors[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return colors
}

// hslToRGB converts HSL to RGB (0-255 range)
func hslToRGB(h, s, l float64) (r, g, b uint8) {
	var rf, gf, bf float64

	if s == 0 {
		rf, gf, bf = l, l, l
	} else {
		var q float64
		if l < 0.5 {
			q = l * (1 + s)
		} else {
			q = l + s - l*s
		}
		p := 2*l - q
		rf = hueToRGB(p, q, h+1.0/3.0)
		gf = hueToRGB(p, q, h)
		bf = hueToRGB(p, q, h-1.0/3.0)
	}

	return uint8(rf * 255), uint8(gf * 255), uint8(bf * 255)
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t += 1
	}
	if t > 1 {
		t -= 1
	}
	if t < 1.0/6.0 {
		return p + (q-p)*6*t
	}
	if t < 1.0/2.0 {
		return q
	}
	if t < 2.0/3.0 {
		return p + (q-p)*(2.0/3.0-t)*6
	}
	return p
}
