package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/rkode/internal/analysis"
	"github.com/san-kum/rkode/internal/trajectory"
)

// Palette used for successive series.
var Palette = []string{"#00ffff", "#ff00ff", "#ffff00", "#00ff88", "#ff8800"}

type SVGOptions struct {
	Width, Height int
	Background    string
}

func DefaultSVGOptions() SVGOptions {
	return SVGOptions{Width: 800, Height: 400, Background: "#0a0a0a"}
}

type frame struct {
	minX, minY, rangeX, rangeY float64
	width, height              int
}

// newFrame fits the given extent into width x height with 10% padding.
func newFrame(minX, maxX, minY, maxY float64, width, height int) frame {
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	return frame{minX: minX, minY: minY, rangeX: maxX - minX, rangeY: maxY - minY, width: width, height: height}
}

func (f frame) project(x, y float64) (float64, float64) {
	return (x - f.minX) / f.rangeX * float64(f.width),
		float64(f.height) - (y-f.minY)/f.rangeY*float64(f.height)
}

func header(sb *strings.Builder, opts SVGOptions) {
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, opts.Width, opts.Height, opts.Width, opts.Height, opts.Background))
}

func path(sb *strings.Builder, f frame, xs, ys []float64, stroke string) {
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, stroke))
	for i := range xs {
		x, y := f.project(xs[i], ys[i])
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	sb.WriteString("\"/>\n")
}

// PhaseSVG draws a phase portrait as a single polyline.
func PhaseSVG(w io.Writer, portrait *analysis.PhasePortrait2D, opts SVGOptions) error {
	points := portrait.Points
	if len(points) < 2 {
		return fmt.Errorf("export: need at least 2 points, got %d", len(points))
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
		xs[i], ys[i] = p.X, p.Y
	}

	var sb strings.Builder
	header(&sb, opts)
	path(&sb, newFrame(minX, maxX, minY, maxY, opts.Width, opts.Height), xs, ys, Palette[0])
	sb.WriteString("</svg>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// TimeSeriesSVG draws every state component against time, one colour each.
func TimeSeriesSVG(w io.Writer, tr *trajectory.Trajectory, opts SVGOptions) error {
	if tr.Len() < 2 {
		return fmt.Errorf("export: need at least 2 points, got %d", tr.Len())
	}

	minY, maxY := tr.States[0][0], tr.States[0][0]
	for _, s := range tr.States {
		for _, v := range s {
			minY, maxY = min(minY, v), max(maxY, v)
		}
	}
	f := newFrame(tr.Times[0], tr.Times[tr.Len()-1], minY, maxY, opts.Width, opts.Height)

	var sb strings.Builder
	header(&sb, opts)
	for idx := 0; idx < tr.Order(); idx++ {
		ys, err := tr.Component(idx)
		if err != nil {
			return err
		}
		path(&sb, f, tr.Times, ys, Palette[idx%len(Palette)])
	}
	sb.WriteString("</svg>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}
