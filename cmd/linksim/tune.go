package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/linksim/internal/experiment"
	"github.com/san-kum/linksim/internal/export"
	"github.com/san-kum/linksim/internal/linkage"
	"github.com/san-kum/linksim/internal/models"
	"github.com/san-kum/linksim/internal/optim"
	"github.com/san-kum/linksim/internal/storage"
	"github.com/san-kum/linksim/internal/viz"
)

var (
	kpRange, kiRange, kdRange []float64
	metricName                string

	svgOut     string
	svgSize    int
	svgTrail   bool
	svgSample  int
	svgBraille bool
)

func tuneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search controller gains for the lowest metric",
		Long: "Runs the resolved config once per gain combination and reports the\n" +
			"combination with the lowest metric. Use with --preset hold or a\n" +
			"pid/pd config that sets joint targets.",
		RunE: runTune,
	}
	addSimFlags(cmd)
	f := cmd.Flags()
	f.Float64SliceVar(&kpRange, "kp-range", []float64{20, 40, 60}, "kp values to try")
	f.Float64SliceVar(&kiRange, "ki-range", nil, "ki values to try (default: keep configured ki)")
	f.Float64SliceVar(&kdRange, "kd-range", []float64{6, 12, 18}, "kd values to try")
	f.StringVar(&metricName, "metric", "tracking_error", "metric to minimize")
	return cmd
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	var names []string
	var ranges [][]float64
	for _, p := range []struct {
		name   string
		values []float64
	}{{"kp", kpRange}, {"ki", kiRange}, {"kd", kdRange}} {
		if len(p.values) > 0 {
			names = append(names, p.name)
			ranges = append(ranges, p.values)
		}
	}

	g, err := optim.NewGridSearch(names, ranges)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	start := time.Now()
	best, err := g.Search(ctx, cfg, experiment.NewRegistry(), metricName)
	if err != nil {
		return err
	}
	log.WithField("points", best.Evaluated).Infof("search finished in %v", time.Since(start))

	keys := make([]string, 0, len(best.Params))
	for k := range best.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys)+3)
	for _, k := range keys {
		rows = append(rows, []string{k, formatValue(best.Params[k])})
	}
	rows = append(rows,
		[]string{metricName, formatValue(best.Value)},
		[]string{"evaluated", fmt.Sprint(best.Evaluated)},
		[]string{"diverged", fmt.Sprint(best.Diverged)},
	)
	fmt.Println(viz.Table([]string{"param", "value"}, rows))
	return nil
}

func exportSVGCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "draw the final pose of a run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	f := cmd.Flags()
	f.StringVarP(&svgOut, "out", "o", "", "output file (default: stdout)")
	f.IntVar(&svgSize, "size", 600, "image width and height in pixels")
	f.BoolVar(&svgTrail, "trail", true, "draw the tip trail")
	f.IntVar(&svgSample, "every", 5, "trail sample interval in steps")
	f.BoolVar(&svgBraille, "braille", false, "render through the terminal Braille canvas instead of vector lines")
	return cmd
}

func exportSVG(cmd *cobra.Command, args []string) error {
	_, result, err := loadRun(args[0])
	if err != nil {
		return err
	}
	cfg, err := storage.New(dataDir).LoadConfig(args[0])
	if err != nil {
		return err
	}
	model, err := models.NewTripleLink(cfg.Linkage())
	if err != nil {
		return err
	}

	var trail []linkage.Point
	if svgTrail {
		every := max(svgSample, 1)
		for i := 0; i < len(result.States); i += every {
			pose, err := model.Chain(result.States[i]).Pose()
			if err != nil {
				return err
			}
			trail = append(trail, pose.Tip())
		}
	}

	last := model.Chain(result.States[len(result.States)-1])
	pose, err := last.Pose()
	if err != nil {
		return err
	}
	if svgTrail {
		trail = append(trail, pose.Tip())
	}

	w := os.Stdout
	if svgOut != "" {
		f, err := os.Create(svgOut)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if svgBraille {
		_, err := io.WriteString(w, export.PoseBrailleSVG(pose, last.Reach(), svgSize, trail))
		return err
	}
	return export.PoseSVG(w, pose, last.Reach(), svgSize, trail)
}
