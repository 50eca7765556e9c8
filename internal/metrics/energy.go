package metrics

import (
	"math"

	"github.com/san-kum/linksim/internal/dynamo"
	"github.com/san-kum/linksim/internal/linkage"
)

// Energy evaluates Σ ½·Io·ω² + m·g·r·θ, the quantity the torque-driven
// linkage conserves when no joint torque is applied. Only the link inertias
// and gravity of chain are used; angles and rates come from the state.
func Energy(chain linkage.Linkage, x dynamo.State) float64 {
	n := len(chain.Links)
	if len(x) != 2*n {
		return math.NaN()
	}
	e := 0.0
	for i, link := range chain.Links {
		theta, omega := x[i], x[n+i]
		e += 0.5*link.InertiaOrigin*omega*omega + link.Mass*chain.Gravity*link.Radius*theta
	}
	return e
}

// EnergyDrift is the largest relative change of Energy from the first
// sample. It is only meaningful for unforced runs.
type EnergyDrift struct {
	chain    linkage.Linkage
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift(chain linkage.Linkage) *EnergyDrift {
	return &EnergyDrift{chain: chain.Clone()}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(x dynamo.State, u dynamo.Control, t float64) {
	energy := Energy(e.chain, x)
	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	scale := math.Abs(e.initial)
	if scale < 1e-12 {
		scale = 1
	}
	e.maxDrift = math.Max(e.maxDrift, math.Abs(energy-e.initial)/scale)
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}
