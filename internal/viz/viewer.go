package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/rkode/internal/analysis"
	"github.com/san-kum/rkode/internal/trajectory"
)

const pageSize = 10

// Info is one labelled line in the viewer header.
type Info struct {
	Label, Value string
}

// Viewer is a Bubble Tea model for browsing a recorded trajectory.
type Viewer struct {
	title         string
	info          []Info
	tr            *trajectory.Trajectory
	cursor        int
	component     int
	phase         bool
	theme         Theme
	styles        Styles
	width, height int
}

func NewViewer(title string, tr *trajectory.Trajectory, info []Info) Viewer {
	return Viewer{
		title:  title,
		info:   info,
		tr:     tr,
		theme:  ThemeCyberpunk,
		styles: NewStyles(ThemeCyberpunk),
		width:  80,
		height: 24,
	}
}

// WithTheme returns a copy of v using the named theme.
func (v Viewer) WithTheme(name string) Viewer {
	v.theme = GetTheme(name)
	v.styles = NewStyles(v.theme)
	return v
}

func (v Viewer) Cursor() int    { return v.cursor }
func (v Viewer) Component() int { return v.component }
func (v Viewer) Phase() bool    { return v.phase }
func (v Viewer) Theme() Theme   { return v.theme }

func (v Viewer) Init() tea.Cmd { return nil }

func (v Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v.handleKey(msg)
	case tea.WindowSizeMsg:
		v.width, v.height = msg.Width, msg.Height
	}
	return v, nil
}

func (v Viewer) handleKey(msg tea.KeyMsg) (Viewer, tea.Cmd) {
	last := v.tr.Len() - 1
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return v, tea.Quit
	case "right", "l":
		v.cursor = min(v.cursor+1, last)
	case "left", "h":
		v.cursor = max(v.cursor-1, 0)
	case "]":
		v.cursor = min(v.cursor+pageSize, last)
	case "[":
		v.cursor = max(v.cursor-pageSize, 0)
	case "home", "g":
		v.cursor = 0
	case "end", "G":
		v.cursor = max(last, 0)
	case "tab":
		if order := v.tr.Order(); order > 0 {
			v.component = (v.component + 1) % order
		}
	case "p":
		if v.tr.Order() >= 2 {
			v.phase = !v.phase
		}
	case "t":
		v.theme = nextTheme(v.theme)
		v.styles = NewStyles(v.theme)
	}
	return v, nil
}

func (v Viewer) View() string {
	s := v.styles
	var b strings.Builder

	b.WriteString(s.Title.Render(v.title) + "\n")
	for _, in := range v.info {
		b.WriteString(s.KeyValue(in.Label, in.Value) + "\n")
	}
	b.WriteString(s.Separator(v.width-2) + "\n")

	if v.tr.Len() == 0 {
		b.WriteString(s.Subtle.Render("empty trajectory") + "\n")
		return b.String()
	}

	chartW := max(v.width-14, 10)
	chartH := max(v.height-len(v.info)-10, 5)

	if v.phase {
		yIdx := (v.component + 1) % v.tr.Order()
		portrait, err := analysis.GeneratePhasePortrait(v.tr, v.component, yIdx)
		if err != nil {
			b.WriteString(err.Error() + "\n")
		} else {
			c := NewCanvas(chartW/2+1, chartH)
			c.DrawPath(portrait.Points)
			b.WriteString(s.Panel.Render(strings.TrimRight(c.String(), "\n")) + "\n")
			b.WriteString(s.Subtle.Render(fmt.Sprintf("phase: y%d vs y%d", yIdx, v.component)) + "\n")
		}
	} else {
		opts := PlotOptions{
			Width:      chartW,
			Height:     chartH,
			Components: []int{v.component},
			Theme:      v.theme,
		}
		chart, err := Plot(v.tr, opts)
		if err != nil {
			b.WriteString(err.Error() + "\n")
		} else {
			b.WriteString(chart + "\n")
		}
	}

	t, y := v.tr.At(v.cursor)
	b.WriteString(s.KeyValue("point", fmt.Sprintf("%d/%d", v.cursor, v.tr.Len()-1)) + "\n")
	b.WriteString(s.KeyValue("t", fmt.Sprintf("%g", t)) + "\n")
	b.WriteString(s.KeyValue("y", formatState(y)) + "\n\n")
	b.WriteString(s.KeyHint.Render("←/→ step  [/] page  tab component  p phase  t theme  q quit"))
	return b.String()
}

func formatState(y []float64) string {
	parts := make([]string, len(y))
	for i, v := range y {
		parts[i] = fmt.Sprintf("%.6g", v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// RunViewer blocks until the user quits the viewer.
func RunViewer(v Viewer) error {
	_, err := tea.NewProgram(v, tea.WithAltScreen()).Run()
	return err
}
