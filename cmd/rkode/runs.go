package main

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/rkode/internal/analysis"
	"github.com/san-kum/rkode/internal/export"
	"github.com/san-kum/rkode/internal/storage"
	"github.com/san-kum/rkode/internal/trajectory"
	"github.com/san-kum/rkode/internal/viz"
)

// source is a trajectory loaded from the run store or a file.
type source struct {
	title string
	info  []viz.Info
	tr    *trajectory.Trajectory
}

func loadSource(args []string) (*source, error) {
	if inputFile != "" {
		return loadFile(inputFile)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("need a run id or --file")
	}

	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return nil, err
	}
	tr, err := st.LoadTrajectory(args[0])
	if err != nil {
		return nil, err
	}
	if tr.Len() == 0 {
		return nil, fmt.Errorf("no data to plot")
	}

	return &source{
		title: meta.ID,
		info: []viz.Info{
			{Label: "field", Value: meta.Field},
			{Label: "method", Value: meta.Method},
			{Label: "h", Value: fmt.Sprintf("%g", meta.H)},
			{Label: "n", Value: fmt.Sprintf("%d", meta.N)},
		},
		tr: tr,
	}, nil
}

func loadFile(path string) (*source, error) {
	if filepath.Ext(path) == ".db" {
		db, err := sql.Open("sqlite", path)
		if err != nil {
			return nil, err
		}
		defer db.Close()

		name := runName
		if name == "" {
			runs, err := trajectory.SQLiteRuns(db)
			if err != nil {
				return nil, err
			}
			if len(runs) != 1 {
				return nil, fmt.Errorf("%s holds %d runs, pick one with --run: %v", path, len(runs), runs)
			}
			name = runs[0]
		}
		tr, err := trajectory.LoadSQLite(db, name)
		if err != nil {
			return nil, err
		}
		if tr.Len() == 0 {
			return nil, fmt.Errorf("no points for run %s in %s", name, path)
		}
		return &source{title: path, info: []viz.Info{{Label: "run", Value: name}}, tr: tr}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tr, err := trajectory.ReadCSV(f)
	if err != nil {
		return nil, err
	}
	if tr.Len() == 0 {
		return nil, fmt.Errorf("no data in %s", path)
	}
	return &source{title: path, tr: tr}, nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFIELD\tMETHOD\tTIME\tH\tN\tFINAL T")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%g\t%d\t%g\n",
			run.ID,
			run.Field,
			run.Method,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.H,
			run.N,
			run.FinalTime,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	src, err := loadSource(args)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", src.title)
	for _, in := range src.info {
		fmt.Printf("%s: %s\n", in.Label, in.Value)
	}
	fmt.Printf("samples: %d\n\n", src.tr.Len())

	numVars := min(src.tr.Order(), 6)
	for idx := 0; idx < numVars; idx++ {
		opts := viz.DefaultPlotOptions()
		opts.Height = 10
		opts.Width = 80
		opts.Components = []int{idx}
		opts.Legends = false
		opts.Caption = fmt.Sprintf("y%d vs time", idx)

		graph, err := viz.Plot(src.tr, opts)
		if err != nil {
			return err
		}
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	src, err := loadSource(args)
	if err != nil {
		return err
	}

	portrait, err := analysis.GeneratePhasePortrait(src.tr, xAxis, yAxis)
	if err != nil {
		return fmt.Errorf("state dimension too small for selected axes: %w", err)
	}

	fmt.Printf("phase space plot: %s\n", src.title)
	fmt.Printf("x-axis: y%d, y-axis: y%d\n\n", xAxis, yAxis)

	canvas := viz.NewCanvas(60, 20)
	canvas.DrawPath(portrait.Points)
	fmt.Print(canvas.String())
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	src, err := loadSource(args)
	if err != nil {
		return err
	}

	spec, err := analysis.ComponentSpectrum(src.tr, component)
	if err != nil {
		return err
	}

	fmt.Printf("frequency analysis: %s\n", src.title)
	fmt.Printf("component: y%d\n\n", component)

	plotData := spec.Power[:max(len(spec.Power)/4, 2)]
	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("power spectrum (y%d)", component)),
	)
	fmt.Println(graph)
	fmt.Println()

	fmt.Printf("dominant frequency: %.3f hz (resolution %.3f hz)\n", spec.Dominant, spec.BinWidth)
	if spec.Dominant > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/spec.Dominant)
	}

	return nil
}

func viewRun(cmd *cobra.Command, args []string) error {
	src, err := loadSource(args)
	if err != nil {
		return err
	}
	v := viz.NewViewer(src.title, src.tr, src.info).WithTheme(theme)
	return viz.RunViewer(v)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
}

func exportCSV(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportCSV(os.Stdout, args[0])
}

func exportSVG(cmd *cobra.Command, args []string) error {
	src, err := loadSource(args)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if outPath != "-" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	opts := export.DefaultSVGOptions()
	if svgX < 0 {
		return export.TimeSeriesSVG(w, src.tr, opts)
	}
	portrait, err := analysis.GeneratePhasePortrait(src.tr, svgX, svgY)
	if err != nil {
		return err
	}
	return export.PhaseSVG(w, portrait, opts)
}

// methodList parses "rk1,rk4" or separate arguments into method names.
func methodList(args []string) []string {
	var out []string
	for _, a := range args {
		for _, m := range strings.Split(a, ",") {
			if m = strings.TrimSpace(m); m != "" {
				out = append(out, m)
			}
		}
	}
	return out
}
