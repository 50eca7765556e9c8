package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/linksim/internal/config"
	"github.com/san-kum/linksim/internal/dynamo"
	"github.com/san-kum/linksim/internal/experiment"
	"github.com/san-kum/linksim/internal/linkage"
	"github.com/san-kum/linksim/internal/metrics"
	"github.com/san-kum/linksim/internal/models"
	"github.com/san-kum/linksim/internal/storage"
	"github.com/san-kum/linksim/internal/viz"
)

var (
	gravities []float64
	parallel  int
	noSave    bool
	stream    int
)

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "integrate the configured chain and save the run",
		RunE:  runSimulation,
	}
	addSimFlags(cmd)
	cmd.Flags().BoolVar(&noSave, "no-save", false, "print metrics without saving the run")
	cmd.Flags().IntVar(&stream, "stream", 0, "print a CSV row every N steps instead of storing the run")
	return cmd
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	exp, err := experiment.New(cfg, experiment.NewRegistry(), log)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	if stream > 0 {
		return streamRun(ctx, exp)
	}

	exp.GetSimulator().AddObserver(experiment.NewProgress(log, cfg.Duration/10))

	start := time.Now()
	result, runErr := exp.Run(ctx)
	if result == nil {
		return runErr
	}
	elapsed := time.Since(start)

	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(preset, cfg, result)
		if err != nil {
			return err
		}
		log.Infof("saved run %s", runID)
		fmt.Printf("run id: %s\n", runID)
	}

	fmt.Printf("completed %d steps in %v\n\n", result.StepsTaken, elapsed)
	for i := 0; i < linkage.NumLinks; i++ {
		fmt.Printf("theta%d %s\n", i+1, viz.SparklineChart(metrics.Column(result.States, i), 60))
	}
	fmt.Println()
	fmt.Println(metricsTable(result.Metrics))
	return runErr
}

// streamRun writes every stream-th state to stdout as it is produced.
func streamRun(ctx context.Context, exp *experiment.Experiment) error {
	n := exp.Model().StateDim()
	w := csv.NewWriter(os.Stdout)
	if err := w.Write(storage.Header(n, exp.Model().ControlDim())); err != nil {
		return err
	}

	step := 0
	var writeErr error
	err := exp.RunWithCallback(ctx, func(x dynamo.State, u dynamo.Control, t float64) bool {
		defer func() { step++ }()
		if step%stream != 0 {
			return true
		}
		row := make([]string, 0, 1+len(x)+len(u))
		row = append(row, strconv.FormatFloat(t, 'g', -1, 64))
		for _, v := range x {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		for _, v := range u {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if writeErr = w.Write(row); writeErr != nil {
			return false
		}
		return true
	})
	w.Flush()
	if err != nil {
		return err
	}
	if writeErr != nil {
		return writeErr
	}
	return w.Error()
}

func metricsTable(m map[string]float64) string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([][]string, len(names))
	for i, name := range names {
		rows[i] = []string{name, strconv.FormatFloat(m[name], 'g', 6, 64)}
	}
	return viz.Table([]string{"metric", "value"}, rows)
}

func sweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "run the configured chain under several gravity values in parallel",
		RunE:  runSweep,
	}
	addSimFlags(cmd)
	cmd.Flags().Float64SliceVar(&gravities, "g", []float64{1.62, 3.71, 9.81, 24.79}, "gravity values")
	cmd.Flags().IntVar(&parallel, "parallel", 0, "maximum concurrent runs (0 = unlimited)")
	return cmd
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	ctx, cancel := signalContext()
	defer cancel()

	log.Infof("sweeping %d gravity values", len(gravities))
	results, err := experiment.Sweep(ctx, experiment.NewRegistry(), parallel, experiment.GravityVariants(cfg, gravities...)...)
	if err != nil {
		return err
	}

	headers := []string{"variant", "theta1", "theta2", "theta3", "energy_drift", "peak_torque"}
	rows := make([][]string, len(results))
	for i, r := range results {
		final := r.Result.States[len(r.Result.States)-1]
		rows[i] = []string{
			r.Name,
			formatValue(final[0]), formatValue(final[1]), formatValue(final[2]),
			strconv.FormatFloat(r.Result.Metrics["energy_drift"], 'g', 4, 64),
			strconv.FormatFloat(r.Result.Metrics["peak_torque"], 'g', 4, 64),
		}
	}
	fmt.Println(viz.Table(headers, rows))
	return nil
}

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [integrator...]",
		Short: "compare integrators on the configured chain",
		RunE:  compareIntegrators,
	}
	addSimFlags(cmd)
	return cmd
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	reg := experiment.NewRegistry()
	if len(args) == 0 {
		args = reg.ListIntegrators()
	}

	rows := make([][]string, 0, len(args))
	for _, name := range args {
		run := cfg.Clone()
		run.Integrator = name
		exp, err := experiment.New(run, reg, nil)
		if err != nil {
			rows = append(rows, []string{name, "error: " + err.Error(), "", ""})
			continue
		}

		start := time.Now()
		result, err := exp.Run(context.Background())
		elapsed := time.Since(start)
		if err != nil {
			rows = append(rows, []string{name, "error: " + err.Error(), "", ""})
			continue
		}

		final := result.States[len(result.States)-1]
		rows = append(rows, []string{
			name,
			formatValue(final[0]),
			strconv.FormatFloat(result.Metrics["energy_drift"], 'e', 2, 64),
			fmt.Sprintf("%.2f", float64(elapsed.Microseconds())/1000),
		})
	}

	fmt.Printf("comparing integrators (dt=%.4f, duration=%.1fs)\n", cfg.Dt, cfg.Duration)
	fmt.Println(viz.Table([]string{"integrator", "final theta1", "energy_drift", "time_ms"}, rows))
	return nil
}

func liveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "live",
		Short: "run the configured chain with live visualization",
		RunE:  runLive,
	}
	addSimFlags(cmd)
	return cmd
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	reg := experiment.NewRegistry()

	model, err := models.NewTripleLink(cfg.Linkage())
	if err != nil {
		return err
	}
	integ, err := reg.GetIntegrator(cfg.Integrator)
	if err != nil {
		return err
	}
	ctrl, err := reg.GetController(cfg)
	if err != nil {
		return err
	}

	title := "triple link"
	if preset != "" {
		title += " · " + preset
	}
	return runProgram(viz.NewModel(model, integ, ctrl, cfg.Dt, title))
}

func presetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets()
			rows := make([][]string, len(names))
			for i, name := range names {
				p := config.GetPreset(name)
				rows[i] = []string{name, p.Controller, p.Integrator, config.DescribePreset(name)}
			}
			fmt.Println(viz.Table([]string{"preset", "controller", "integrator", "description"}, rows))
			return nil
		},
	}
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [path]",
		Short: "write the resolved config to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}
}
