package viz

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/rkode/internal/analysis"
	"github.com/san-kum/rkode/internal/dynamo"
	"github.com/san-kum/rkode/internal/trajectory"
)

func circle(n int) *trajectory.Trajectory {
	tr := &trajectory.Trajectory{}
	for i := 0; i < n; i++ {
		x := float64(i) / float64(n-1)
		tr.Times = append(tr.Times, x)
		tr.States = append(tr.States, dynamo.State{x, 1 - x})
	}
	return tr
}

func press(v Viewer, keys ...string) Viewer {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ := v.Update(msg)
		v = m.(Viewer)
	}
	return v
}

func TestViewerCursor(t *testing.T) {
	v := NewViewer("run", circle(25), nil)

	v = press(v, "left")
	if v.Cursor() != 0 {
		t.Errorf("cursor moved below zero: %d", v.Cursor())
	}

	v = press(v, "right", "right", "]")
	if v.Cursor() != 12 {
		t.Errorf("expected cursor 12, got %d", v.Cursor())
	}

	v = press(v, "]", "]", "]")
	if v.Cursor() != 24 {
		t.Errorf("expected cursor clamped to 24, got %d", v.Cursor())
	}

	v = press(v, "g")
	if v.Cursor() != 0 {
		t.Errorf("expected cursor 0 after home, got %d", v.Cursor())
	}
}

func TestViewerModes(t *testing.T) {
	v := NewViewer("run", circle(10), nil)

	v = press(v, "tab")
	if v.Component() != 1 {
		t.Errorf("expected component 1, got %d", v.Component())
	}
	v = press(v, "tab")
	if v.Component() != 0 {
		t.Errorf("expected component to wrap to 0, got %d", v.Component())
	}

	v = press(v, "p")
	if !v.Phase() {
		t.Error("expected phase mode")
	}

	v = press(v, "t")
	if v.Theme().Name != "retro" {
		t.Errorf("expected retro theme, got %s", v.Theme().Name)
	}
}

func TestViewerPhaseNeedsTwoComponents(t *testing.T) {
	tr := &trajectory.Trajectory{Times: []float64{0, 1}, States: []dynamo.State{{1}, {2}}}
	v := press(NewViewer("run", tr, nil), "p")
	if v.Phase() {
		t.Error("phase mode enabled for a scalar trajectory")
	}
}

func TestViewerQuit(t *testing.T) {
	v := NewViewer("run", circle(3), nil)
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestViewerView(t *testing.T) {
	v := NewViewer("harmonic rk4", circle(20), []Info{{"method", "rk4"}})
	m, _ := v.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	v = m.(Viewer)

	out := v.View()
	for _, want := range []string{"harmonic rk4", "rk4", "point", "0/19"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}

	v = press(v, "p")
	if out := v.View(); !strings.Contains(out, "phase") {
		t.Error("phase view missing label")
	}
}

func TestPlot(t *testing.T) {
	out, err := Plot(circle(30), DefaultPlotOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "y0") || !strings.Contains(out, "y1") {
		t.Errorf("expected legends in plot:\n%s", out)
	}

	if _, err := Plot(&trajectory.Trajectory{}, DefaultPlotOptions()); err == nil {
		t.Error("expected error for empty trajectory")
	}

	opts := DefaultPlotOptions()
	opts.Components = []int{3}
	if _, err := Plot(circle(5), opts); err == nil {
		t.Error("expected error for out of range component")
	}
}

func TestCanvasDrawPath(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawPath([]analysis.Point{{X: 0, Y: 0}, {X: 1, Y: 1}})

	out := c.String()
	if strings.Count(out, "\n") != 5 {
		t.Errorf("expected 5 rows, got %q", out)
	}
	if c.Grid[4][0] == 0x2800 || c.Grid[0][9] == 0x2800 {
		t.Error("expected both corners of the diagonal to be set")
	}
}

func TestSparkline(t *testing.T) {
	if got := SparklineChart([]float64{0, 1}, 2); got != "▁█" {
		t.Errorf("unexpected sparkline %q", got)
	}
}
