package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/san-kum/linksim/internal/linkage"
	"github.com/san-kum/linksim/internal/viz"
)

var (
	asJSON      bool
	fromInverse bool
	steps       int
)

// inverseJSON omits cond when A is singular; JSON has no infinity.
type inverseJSON struct {
	Unknowns map[string]float64 `json:"unknowns"`
	Rank     int                `json:"rank"`
	Cond     *float64           `json:"cond,omitempty"`
	Residual float64            `json:"residual"`
}

func inverseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inverse",
		Short: "solve the joint reactions for the configured motion",
		RunE:  runInverse,
	}
	addLoadFlags(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the solution as JSON")
	return cmd
}

func runInverse(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	sol, err := cfg.Linkage().InverseDynamics()
	if err != nil {
		return err
	}
	if !sol.WellConditioned(linkage.DefaultMaxCond) {
		log.Warnf("system is ill-conditioned: rank %d, cond %.3g", sol.Rank, sol.Cond)
	}

	if asJSON {
		out := inverseJSON{
			Unknowns: make(map[string]float64, linkage.NumUnknowns),
			Rank:     sol.Rank,
			Residual: sol.Residual,
		}
		for i, name := range linkage.UnknownNames {
			out.Unknowns[name] = sol.F[i]
		}
		if !math.IsInf(sol.Cond, 0) {
			out.Cond = &sol.Cond
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	rows := make([][]string, 0, linkage.NumUnknowns)
	for i, name := range linkage.UnknownNames {
		rows = append(rows, []string{name, formatValue(sol.F[i])})
	}
	fmt.Println(viz.Table([]string{"unknown", "value"}, rows))
	fmt.Printf("rank %d  cond %.3g  residual %.3g\n", sol.Rank, sol.Cond, sol.Residual)
	return nil
}

func forwardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forward",
		Short: "angular accelerations from the stored joint loads",
		RunE:  runForward,
	}
	addLoadFlags(cmd)
	cmd.Flags().BoolVar(&fromInverse, "from-inverse", false, "replace the stored loads with the inverse solution first")
	return cmd
}

func runForward(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	chain := cfg.Linkage()
	if fromInverse {
		sol, err := chain.InverseDynamics()
		if err != nil {
			return err
		}
		if chain, err = chain.WithLoads(sol); err != nil {
			return err
		}
	}

	alphas, err := chain.ForwardDynamicsFull()
	if err != nil {
		return err
	}
	printAlphas(chain, alphas)
	return nil
}

func torquesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "torques T1 T2 T3",
		Short: "angular accelerations for the given joint torques",
		Args:  cobra.ExactArgs(linkage.NumLinks),
		RunE:  runTorques,
	}
	addLoadFlags(cmd)
	return cmd
}

func runTorques(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	tq, err := parseFloats(args)
	if err != nil {
		return err
	}

	chain := cfg.Linkage()
	alphas, err := chain.ForwardDynamicsTorques(tq)
	if err != nil {
		return err
	}
	printAlphas(chain, alphas)
	return nil
}

func stepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "step",
		Short: "advance the chain under constant torques with semi-implicit Euler",
		RunE:  runStep,
	}
	addLoadFlags(cmd)
	cmd.Flags().Float64Var(&dt, "dt", 0.01, "timestep")
	cmd.Flags().IntVar(&steps, "steps", 1, "number of steps")
	return cmd
}

func runStep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	chain := cfg.Linkage()
	tq := cfg.TorqueVector()
	for i := 0; i < steps; i++ {
		if _, err := chain.StepForwardTorques(cfg.Dt, tq); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}

	rows := make([][]string, len(chain.Links))
	for i, l := range chain.Links {
		rows[i] = []string{strconv.Itoa(i + 1), formatValue(l.Theta), formatValue(l.Omega), formatValue(l.Alpha)}
	}
	fmt.Println(viz.Table([]string{"link", "theta", "omega", "alpha"}, rows))
	fmt.Printf("t = %g after %d steps\n", float64(steps)*cfg.Dt, steps)
	return nil
}

func printAlphas(chain linkage.Linkage, alphas []float64) {
	rows := make([][]string, len(alphas))
	for i, a := range alphas {
		rows[i] = []string{strconv.Itoa(i + 1), formatValue(chain.Links[i].Theta), formatValue(a)}
	}
	fmt.Println(viz.Table([]string{"link", "theta", "alpha"}, rows))
}

func parseFloats(args []string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		out[i] = v
	}
	return out, nil
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
