package main

import (
	"fmt"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/linksim/internal/analysis"
	"github.com/san-kum/linksim/internal/dynamo"
	"github.com/san-kum/linksim/internal/metrics"
	"github.com/san-kum/linksim/internal/storage"
	"github.com/san-kum/linksim/internal/viz"
)

var joint int

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	rows := make([][]string, len(runs))
	for i, run := range runs {
		rows[i] = []string{
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			fmt.Sprintf("%.2fs", run.Duration),
			fmt.Sprintf("%.4fs", run.Dt),
			run.Integrator,
			run.Controller,
		}
	}
	fmt.Println(viz.Table([]string{"id", "preset", "time", "duration", "dt", "integ", "ctrl"}, rows))
	return nil
}

// loadRun reads a saved run back into a Result. Controls are not
// restored.
func loadRun(runID string) (*storage.RunMetadata, *dynamo.Result, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	states, times, err := st.LoadStates(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(states) == 0 {
		return nil, nil, fmt.Errorf("run %s has no data", runID)
	}
	return meta, &dynamo.Result{
		States:     states,
		Times:      times,
		Metrics:    meta.Metrics,
		StepsTaken: meta.Steps,
	}, nil
}

func plotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot joint angles and rates of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(result.States))

	header := storage.Header(len(result.States[0]), 0)[1:]
	for i, name := range header {
		graph := asciigraph.Plot(metrics.Column(result.States, i),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name+" vs time"),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func phaseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase portrait (theta, omega) of one joint",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	cmd.Flags().IntVar(&joint, "joint", 1, "joint number, 1-based")
	return cmd
}

func phasePlot(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args[0])
	if err != nil {
		return err
	}
	p, err := analysis.JointPortrait(result.States, joint-1)
	if err != nil {
		return err
	}

	minX, maxX, minY, maxY := p.Bounds()
	fmt.Printf("phase portrait: %s joint %d\n", meta.ID, joint)
	fmt.Printf("theta [%.3f, %.3f]  omega [%.3f, %.3f]\n\n", minX, maxX, minY, maxY)
	fmt.Print(p.ASCII(80, 24))
	return nil
}

func analyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "series statistics and frequency analysis per joint",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args[0])
	if err != nil {
		return err
	}

	n := len(result.States[0]) / 2
	rows := make([][]string, 0, n)
	var first analysis.Spectrum
	for i := 0; i < n; i++ {
		angles := metrics.Column(result.States, i)
		s, err := metrics.Summarize(angles)
		if err != nil {
			return err
		}
		ps, err := analysis.PowerSpectrum(angles, meta.Dt)
		if err != nil {
			return err
		}
		if i == 0 {
			first = ps
		}
		f := ps.Peak()
		welch := "-"
		if w, err := analysis.WelchPSD(angles, meta.Dt, analysis.DefaultSegment); err == nil {
			welch = fmt.Sprintf("%.3f", w.Peak())
		}
		rows = append(rows, []string{
			"theta" + strconv.Itoa(i+1),
			formatValue(s.Mean), formatValue(s.StdDev), formatValue(s.Min), formatValue(s.Max), formatValue(s.P95),
			fmt.Sprintf("%.3f", f), welch,
		})
	}

	fmt.Printf("analysis: %s\n\n", meta.ID)
	fmt.Println(viz.Table([]string{"series", "mean", "stddev", "min", "max", "p95", "dominant hz", "welch hz"}, rows))

	if len(first.Amplitude) > 4 {
		graph := asciigraph.Plot(first.Amplitude[1:len(first.Amplitude)/4],
			asciigraph.Height(15),
			asciigraph.Width(80),
			asciigraph.Caption("amplitude spectrum (theta1)"),
		)
		fmt.Println(graph)
	}
	return nil
}

func exportCSVCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run states to CSV on stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, result, err := loadRun(args[0])
			if err != nil {
				return err
			}
			return storage.WriteCSV(os.Stdout, result)
		},
	}
}

func exportJSONCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON on stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, result, err := loadRun(args[0])
			if err != nil {
				return err
			}
			cfg, err := storage.New(dataDir).LoadConfig(args[0])
			if err != nil {
				return err
			}
			return storage.ExportJSON(os.Stdout, cfg, result)
		},
	}
}

func runProgram(m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
