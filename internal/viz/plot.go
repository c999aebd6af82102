package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/rkode/internal/trajectory"
)

type PlotOptions struct {
	Width      int
	Height     int
	Caption    string
	Components []int // nil plots every component
	Theme      Theme
	Legends    bool
}

func DefaultPlotOptions() PlotOptions {
	return PlotOptions{Width: 70, Height: 15, Theme: ThemeCyberpunk, Legends: true}
}

// Plot renders state components of tr against the step index.
func Plot(tr *trajectory.Trajectory, opts PlotOptions) (string, error) {
	if tr.Len() == 0 {
		return "", fmt.Errorf("viz: empty trajectory")
	}

	comps := opts.Components
	if comps == nil {
		for i := 0; i < tr.Order(); i++ {
			comps = append(comps, i)
		}
	}

	series := make([][]float64, 0, len(comps))
	legends := make([]string, 0, len(comps))
	for _, idx := range comps {
		values, err := tr.Component(idx)
		if err != nil {
			return "", err
		}
		series = append(series, padSingle(values))
		legends = append(legends, fmt.Sprintf("y%d", idx))
	}

	options := []asciigraph.Option{
		asciigraph.Height(opts.Height),
		asciigraph.Width(opts.Width),
		asciigraph.Precision(3),
		asciigraph.SeriesColors(seriesColors(opts.Theme, len(series))...),
	}
	caption := opts.Caption
	if caption == "" {
		t0, _ := tr.At(0)
		tn, _, _ := tr.Last()
		caption = fmt.Sprintf("t = %g .. %g", t0, tn)
	}
	options = append(options, asciigraph.Caption(caption))
	if opts.Legends {
		options = append(options, asciigraph.SeriesLegends(legends...))
	}

	return asciigraph.PlotMany(series, options...), nil
}

// Series renders one slice of values, as used for metric histories.
func Series(values []float64, width, height int, caption string) string {
	if len(values) == 0 {
		return ""
	}
	return asciigraph.Plot(padSingle(values), asciigraph.Height(height), asciigraph.Width(width), asciigraph.Caption(caption))
}

func seriesColors(t Theme, n int) []asciigraph.AnsiColor {
	colors := make([]asciigraph.AnsiColor, n)
	for i := range colors {
		colors[i] = asciigraph.Default
		if len(t.Plot) > 0 {
			if c, ok := asciigraph.ColorNames[t.Plot[i%len(t.Plot)]]; ok {
				colors[i] = c
			}
		}
	}
	return colors
}

// padSingle repeats a lone point so the chart has a segment to draw.
func padSingle(values []float64) []float64 {
	if len(values) == 1 {
		return []float64{values[0], values[0]}
	}
	return values
}
