package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/linksim/internal/config"
	"github.com/san-kum/linksim/internal/logging"
)

var (
	dataDir    string
	configFile string
	preset     string
	logLevel   string

	dt         float64
	duration   float64
	gravity    float64
	integrator string
	controller string
	torques    []float64
	targets    []float64
	kp, ki, kd float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "linksim",
		Short:         "three-link planar linkage dynamics lab",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".linksim", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "start from a named preset")
	pf.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		inverseCmd(),
		forwardCmd(),
		torquesCmd(),
		stepCmd(),
		runCmd(),
		sweepCmd(),
		compareCmd(),
		tuneCmd(),
		listCmd(),
		plotCmd(),
		phaseCmd(),
		analyzeCmd(),
		exportCSVCmd(),
		exportJSONCmd(),
		exportSVGCmd(),
		liveCmd(),
		presetsCmd(),
		initCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// addSimFlags registers the flags that override config values for
// commands that integrate the model.
func addSimFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	f.Float64Var(&duration, "time", config.DefaultDuration, "duration")
	f.StringVar(&integrator, "integrator", "semi_implicit", "integrator")
	f.StringVar(&controller, "controller", "none", "controller")
	f.Float64Var(&kp, "kp", config.DefaultKp, "pid kp")
	f.Float64Var(&ki, "ki", config.DefaultKi, "pid ki")
	f.Float64Var(&kd, "kd", config.DefaultKd, "pid kd")
	f.Float64SliceVar(&targets, "target", nil, "pid target angles, one per joint")
	addLoadFlags(cmd)
}

func addLoadFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64Var(&gravity, "gravity", 9.81, "gravitational acceleration")
	f.Float64SliceVar(&torques, "torque", nil, "joint torques T1,T2,T3")
}

// resolveConfig layers defaults, the preset, the config file and finally
// any flag the user set explicitly.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	f := cmd.Flags()
	if f.Changed("dt") {
		cfg.Dt = dt
	}
	if f.Changed("time") {
		cfg.Duration = duration
	}
	if f.Changed("gravity") {
		cfg.Gravity = gravity
	}
	if f.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if f.Changed("controller") {
		cfg.Controller = controller
	}
	if f.Changed("torque") {
		cfg.Torques = torques
		if !f.Changed("controller") && cfg.Controller == "none" {
			cfg.Controller = "constant"
		}
	}
	if f.Changed("target") {
		cfg.PID.Targets = targets
	}
	if f.Changed("kp") {
		cfg.PID.Kp = kp
	}
	if f.Changed("ki") {
		cfg.PID.Ki = ki
	}
	if f.Changed("kd") {
		cfg.PID.Kd = kd
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) logging.Logger {
	log, err := logging.New(cfg.LogLevel, os.Stderr)
	if err != nil {
		return logging.Nop()
	}
	return log
}
