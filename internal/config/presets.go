package config

import (
	"math"
	"sort"
)

type preset struct {
	description string
	build       func(*Config)
}

var presets = map[string]preset{
	"swing": {
		description: "default chain released with no joint torque",
		build: func(c *Config) {
			c.Integrator = "rk4"
			c.Duration = 5
		},
	},
	"stand": {
		description: "upright chain holding still under gravity-balancing torques",
		build: func(c *Config) {
			upright(c)
			c.Controller = "constant"
			c.Torques = holdingTorques(c)
		},
	},
	"collapse": {
		description: "upright chain with the motors switched off",
		build: func(c *Config) {
			upright(c)
			c.Duration = 3
		},
	},
	"hold": {
		description: "PID drives the default chain to vertical",
		build: func(c *Config) {
			for i := range c.Links {
				c.Links[i].Omega = 0
			}
			c.Controller = "pid"
			c.PID.Targets = []float64{math.Pi / 2, math.Pi / 2, math.Pi / 2}
			c.Duration = 20
		},
	},
}

func upright(c *Config) {
	for i := range c.Links {
		c.Links[i].Theta = math.Pi / 2
		c.Links[i].Omega = 0
	}
}

// holdingTorques balances the m·g·r load each joint carries in the torque
// model: T_i = T_{i+1} + m_i·g·r_i.
func holdingTorques(c *Config) []float64 {
	t := make([]float64, len(c.Links))
	carry := 0.0
	for i := len(c.Links) - 1; i >= 0; i-- {
		carry += c.Links[i].Mass * c.Gravity * c.Links[i].Radius
		t[i] = carry
	}
	return t
}

// GetPreset returns a fresh config for the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	p.build(cfg)
	return cfg
}

func DescribePreset(name string) string {
	return presets[name].description
}

func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
