package config

import (
	"fmt"
	"os"
	"slices"

	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/linksim/internal/linkage"
)

const (
	DefaultDt       = 0.01
	DefaultDuration = 10.0
	DefaultKp       = 40.0
	DefaultKi       = 20.0
	DefaultKd       = 12.0
)

// Controllers accepted by Validate.
var Controllers = []string{"none", "constant", "pid", "pd"}

type Config struct {
	Integrator string       `yaml:"integrator"`
	Controller string       `yaml:"controller"`
	Dt         float64      `yaml:"dt"`
	Duration   float64      `yaml:"duration"`
	Gravity    float64      `yaml:"gravity"`
	Links      []LinkConfig `yaml:"links"`
	Torques    []float64    `yaml:"torques,omitempty"`
	PID        PIDConfig    `yaml:"pid"`
	LogLevel   string       `yaml:"log_level"`
}

// LinkConfig mirrors linkage.Link. A zero inertia_origin is filled from
// the parallel axis theorem.
type LinkConfig struct {
	Length        float64 `yaml:"length"`
	Radius        float64 `yaml:"radius"`
	Mass          float64 `yaml:"mass"`
	InertiaCenter float64 `yaml:"inertia_center"`
	InertiaOrigin float64 `yaml:"inertia_origin,omitempty"`
	Theta         float64 `yaml:"theta"`
	Omega         float64 `yaml:"omega"`
	Alpha         float64 `yaml:"alpha"`
	ForceX        float64 `yaml:"force_x"`
	ForceY        float64 `yaml:"force_y"`
	Torque        float64 `yaml:"torque"`
}

type PIDConfig struct {
	Kp      float64   `yaml:"kp"`
	Ki      float64   `yaml:"ki"`
	Kd      float64   `yaml:"kd"`
	Targets []float64 `yaml:"targets,omitempty"`
}

func DefaultConfig() *Config {
	links := make([]LinkConfig, linkage.NumLinks)
	for i := range links {
		links[i] = FromLink(linkage.DefaultLink())
	}
	return &Config{
		Integrator: "semi_implicit",
		Controller: "none",
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		Gravity:    linkage.StandardGravity,
		Links:      links,
		PID: PIDConfig{
			Kp: DefaultKp,
			Ki: DefaultKi,
			Kd: DefaultKd,
		},
		LogLevel: "info",
	}
}

// Load reads a YAML file over DefaultConfig. Missing keys keep their
// defaults; a links list replaces the default chain entirely.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports every problem at once. Integrator names are checked by
// the experiment registry, which owns them.
func (c *Config) Validate() error {
	var err error
	if c.Dt <= 0 {
		err = multierr.Append(err, fmt.Errorf("dt must be positive, got %g", c.Dt))
	}
	if c.Duration <= 0 {
		err = multierr.Append(err, fmt.Errorf("duration must be positive, got %g", c.Duration))
	}
	if len(c.Links) != linkage.NumLinks {
		err = multierr.Append(err, fmt.Errorf("links: want %d, got %d", linkage.NumLinks, len(c.Links)))
	}
	for i, l := range c.Links {
		if l.InertiaCenter <= 0 && l.InertiaOrigin <= 0 {
			err = multierr.Append(err, fmt.Errorf("links[%d]: inertia must be positive", i))
		}
	}
	if !slices.Contains(Controllers, c.Controller) {
		err = multierr.Append(err, fmt.Errorf("unknown controller %q (available: %v)", c.Controller, Controllers))
	}
	if c.Controller == "constant" && len(c.Torques) != linkage.NumLinks {
		err = multierr.Append(err, fmt.Errorf("torques: want %d, got %d", linkage.NumLinks, len(c.Torques)))
	}
	if (c.Controller == "pid" || c.Controller == "pd") && len(c.PID.Targets) != linkage.NumLinks {
		err = multierr.Append(err, fmt.Errorf("pid.targets: want %d, got %d", linkage.NumLinks, len(c.PID.Targets)))
	}
	if _, lvlErr := logrus.ParseLevel(c.LogLevel); lvlErr != nil {
		err = multierr.Append(err, fmt.Errorf("log_level: %w", lvlErr))
	}
	return err
}

// Clone returns a deep copy safe to modify independently of c.
func (c *Config) Clone() *Config {
	out := *c
	out.Links = append([]LinkConfig(nil), c.Links...)
	out.Torques = append([]float64(nil), c.Torques...)
	out.PID.Targets = append([]float64(nil), c.PID.Targets...)
	return &out
}

// Linkage builds the chain described by the config.
func (c *Config) Linkage() linkage.Linkage {
	links := make([]linkage.Link, len(c.Links))
	for i, lc := range c.Links {
		links[i] = lc.Link()
	}
	l := linkage.New(links...)
	l.Gravity = c.Gravity
	return l
}

// TorqueVector returns the configured torques, or zeros when none are set.
func (c *Config) TorqueVector() []float64 {
	if len(c.Torques) == 0 {
		return make([]float64, linkage.NumLinks)
	}
	out := make([]float64, len(c.Torques))
	copy(out, c.Torques)
	return out
}

func (lc LinkConfig) Link() linkage.Link {
	origin := lc.InertiaOrigin
	if origin == 0 {
		origin = linkage.ParallelAxis(lc.InertiaCenter, lc.Mass, lc.Radius)
	}
	return linkage.Link{
		Length:        lc.Length,
		Radius:        lc.Radius,
		Mass:          lc.Mass,
		InertiaCenter: lc.InertiaCenter,
		InertiaOrigin: origin,
		Theta:         lc.Theta,
		Omega:         lc.Omega,
		Alpha:         lc.Alpha,
		ForceX:        lc.ForceX,
		ForceY:        lc.ForceY,
		Torque:        lc.Torque,
	}
}

func FromLink(l linkage.Link) LinkConfig {
	return LinkConfig{
		Length:        l.Length,
		Radius:        l.Radius,
		Mass:          l.Mass,
		InertiaCenter: l.InertiaCenter,
		InertiaOrigin: l.InertiaOrigin,
		Theta:         l.Theta,
		Omega:         l.Omega,
		Alpha:         l.Alpha,
		ForceX:        l.ForceX,
		ForceY:        l.ForceY,
		Torque:        l.Torque,
	}
}
