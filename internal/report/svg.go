package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/schrodinger/internal/wave"
)

var palette = []string{"#440154", "#3b528b", "#21918c", "#5ec962", "#fde725", "#e45756"}

type svgFrame struct {
	width, height  int
	minX, maxX     float64
	minY, maxY     float64
	rangeX, rangeY float64
}

func (f svgFrame) px(x, y float64) (float64, float64) {
	return (x - f.minX) / f.rangeX * float64(f.width),
		float64(f.height) - (y-f.minY)/f.rangeY*float64(f.height)
}

func (f svgFrame) path(xs, ys []float64) string {
	var sb strings.Builder
	for i := range xs {
		if math.IsNaN(ys[i]) || math.IsInf(ys[i], 0) {
			continue
		}
		x, y := f.px(xs[i], ys[i])
		if sb.Len() == 0 {
			sb.WriteString(fmt.Sprintf("M%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	return sb.String()
}

// EigenfunctionsSVG draws each state as ψ·scale offset vertically by its
// energy, with a dashed line at every level and the potential clipped to
// the plotted energy range. potential may be nil.
func EigenfunctionsSVG(g *wave.Grid, states []wave.Eigenstate, potential []float64, scale float64, width, height int) string {
	if g == nil || len(states) == 0 {
		return ""
	}
	xs := g.Points()

	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, st := range states {
		for _, v := range st.Psi {
			y := st.Energy + scale*v
			minY, maxY = math.Min(minY, y), math.Max(maxY, y)
		}
	}
	rangeY := maxY - minY
	if rangeY == 0 || math.IsInf(rangeY, 0) || math.IsNaN(rangeY) {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1

	f := svgFrame{
		width: width, height: height,
		minX: xs[0], maxX: xs[len(xs)-1],
		minY: minY, maxY: maxY,
	}
	f.rangeX, f.rangeY = f.maxX-f.minX, f.maxY-f.minY

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#ffffff"/>
`, width, height, width, height))

	if len(potential) == len(xs) {
		clipped := make([]float64, len(potential))
		for i, v := range potential {
			clipped[i] = v
			if v > maxY || v < minY {
				clipped[i] = math.NaN()
			}
		}
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="#000000" stroke-width="1.5" d="%s"/>
`, f.path(xs, clipped)))
	}

	ys := make([]float64, len(xs))
	for i, st := range states {
		color := palette[i%len(palette)]
		_, ly := f.px(0, st.Energy)
		sb.WriteString(fmt.Sprintf(`<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#888888" stroke-dasharray="6,4"/>
`, ly, width, ly))

		for j := range xs {
			ys[j] = math.NaN()
			if j < len(st.Psi) {
				ys[j] = st.Energy + scale*st.Psi[j]
			}
		}
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="2.5" d="%s"/>
`, color, f.path(xs, ys)))
		sb.WriteString(fmt.Sprintf(`<text x="8" y="%.1f" font-size="12" fill="%s">n = %d; E = %.4f</text>
`, ly-4, color, st.Nodes, st.Energy))
	}

	sb.WriteString("</svg>")
	return sb.String()
}
