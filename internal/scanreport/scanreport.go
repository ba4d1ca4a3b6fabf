// Package scanreport builds interactive HTML reports of scans and fits.
package scanreport

import (
	"fmt"
	"math"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/scangeom/geom"
)

// circleOutlineSteps is the sample count for drawing a fitted circle as a
// closed line series.
const circleOutlineSteps = 64

// BuildPage assembles a single-chart page showing the scan points (one
// scatter series per cluster, or one series for the raw points when clusters
// is empty), the fitted segments, and any fitted circles. Axis ranges are
// symmetric so the scene keeps its proportions.
func BuildPage(title string, pts []geom.Point, clusters [][]geom.Point, segments []geom.LineSegment, circles []geom.Circle) *components.Page {
	pad := axisPad(pts, clusters, segments, circles)

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Theme: "dark", Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("points=%d clusters=%d segments=%d circles=%d", len(pts), len(clusters), len(segments), len(circles)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Min: -pad, Max: pad, Name: "X (m)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Min: -pad, Max: pad, Name: "Y (m)", NameLocation: "middle", NameGap: 30}),
	)

	if len(clusters) > 0 {
		for i, cluster := range clusters {
			scatter.AddSeries(fmt.Sprintf("cluster %d", i), scatterData(cluster),
				charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 4}))
		}
	} else if len(pts) > 0 {
		scatter.AddSeries("scan", scatterData(pts),
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 4}))
	}

	overlay := charts.NewLine()
	// All segment series share one name so the legend carries a single
	// toggle for them; likewise for circles.
	for _, seg := range segments {
		overlay.AddSeries("segments", []opts.LineData{
			{Value: []interface{}{seg.Start.X, seg.Start.Y}},
			{Value: []interface{}{seg.End.X, seg.End.Y}},
		},
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
			charts.WithLineStyleOpts(opts.LineStyle{Width: 2}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: "#ff5252"}),
		)
	}
	for _, c := range circles {
		overlay.AddSeries("circles", circleOutline(c),
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
			charts.WithLineStyleOpts(opts.LineStyle{Width: 2}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: "#40c4ff"}),
		)
	}
	scatter.Overlap(overlay)

	page := components.NewPage()
	page.AddCharts(scatter)
	return page
}

// WriteHTML renders the page to path.
func WriteHTML(path string, page *components.Page) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := page.Render(f); err != nil {
		f.Close()
		return fmt.Errorf("render report: %w", err)
	}
	return f.Close()
}

func scatterData(pts []geom.Point) []opts.ScatterData {
	data := make([]opts.ScatterData, 0, len(pts))
	for _, pt := range pts {
		data = append(data, opts.ScatterData{Value: []interface{}{pt.X, pt.Y}})
	}
	return data
}

func circleOutline(c geom.Circle) []opts.LineData {
	data := make([]opts.LineData, 0, circleOutlineSteps+1)
	for k := 0; k <= circleOutlineSteps; k++ {
		pt := c.PointAt(2 * math.Pi * float64(k) / circleOutlineSteps)
		data = append(data, opts.LineData{Value: []interface{}{pt.X, pt.Y}})
	}
	return data
}

// axisPad returns a symmetric axis bound covering every drawable with a
// small margin, so points at the edges stay visible.
func axisPad(pts []geom.Point, clusters [][]geom.Point, segments []geom.LineSegment, circles []geom.Circle) float64 {
	maxAbs := 0.0
	grow := func(p geom.Point) {
		if math.Abs(p.X) > maxAbs {
			maxAbs = math.Abs(p.X)
		}
		if math.Abs(p.Y) > maxAbs {
			maxAbs = math.Abs(p.Y)
		}
	}

	for _, pt := range pts {
		grow(pt)
	}
	for _, cluster := range clusters {
		for _, pt := range cluster {
			grow(pt)
		}
	}
	for _, seg := range segments {
		grow(seg.Start)
		grow(seg.End)
	}
	for _, c := range circles {
		grow(c.Center.Add(geom.Point{X: c.Radius, Y: c.Radius}))
		grow(c.Center.Sub(geom.Point{X: c.Radius, Y: c.Radius}))
	}

	pad := maxAbs * 1.05
	if pad == 0 {
		pad = 1.0
	}
	return pad
}
