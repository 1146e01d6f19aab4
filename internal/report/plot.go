package report

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/schrodinger/internal/shooting"
)

var seriesColors = []asciigraph.AnsiColor{
	asciigraph.Blue, asciigraph.Red, asciigraph.Green, asciigraph.Yellow, asciigraph.Magenta, asciigraph.Cyan,
}

// downsample keeps at most width evenly spaced values, including both ends.
func downsample(data []float64, width int) []float64 {
	if width <= 1 || len(data) <= width {
		return data
	}
	out := make([]float64, width)
	step := float64(len(data)-1) / float64(width-1)
	for i := range out {
		out[i] = data[int(float64(i)*step+0.5)]
	}
	return out
}

// PlotWavefunctions draws every series on one chart.
func PlotWavefunctions(psis [][]float64, legends []string, width, height int, caption string) string {
	if len(psis) == 0 {
		return ""
	}

	data := make([][]float64, len(psis))
	for i, psi := range psis {
		data[i] = downsample(psi, width)
	}

	opts := []asciigraph.Option{
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.Precision(3),
	}
	if len(psis) > 1 {
		colors := make([]asciigraph.AnsiColor, len(psis))
		for i := range colors {
			colors[i] = seriesColors[i%len(seriesColors)]
		}
		opts = append(opts, asciigraph.SeriesColors(colors...))
		if len(legends) == len(psis) {
			opts = append(opts, asciigraph.SeriesLegends(legends...))
		}
	}
	return asciigraph.PlotMany(data, opts...)
}

// PlotScan draws the node-count staircase and the boundary value of a scan.
func PlotScan(points []shooting.ScanPoint, width, height int) string {
	if len(points) == 0 {
		return ""
	}
	nodes := make([]float64, len(points))
	for i, p := range points {
		nodes[i] = float64(p.Nodes)
	}

	caption := fmt.Sprintf("nodes vs E over [%g, %g]", points[0].Energy, points[len(points)-1].Energy)
	return asciigraph.Plot(downsample(nodes, width),
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.Precision(0),
	)
}
