package metrics

import (
	"math"

	"github.com/san-kum/linksim/internal/dynamo"
)

// ControlEffort is the mean over samples of Σ|u_i|.
type ControlEffort struct {
	name    string
	sum     float64
	samples int
}

func NewControlEffort() *ControlEffort {
	return &ControlEffort{
		name: "control_effort",
	}
}

func (c *ControlEffort) Name() string {
	return c.name
}

func (c *ControlEffort) Observe(x dynamo.State, u dynamo.Control, t float64) {
	for _, val := range u {
		c.sum += math.Abs(val)
	}
	c.samples++
}

func (c *ControlEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *ControlEffort) Reset() {
	c.sum = 0
	c.samples = 0
}

// PeakTorque is the largest |u_i| seen on any joint.
type PeakTorque struct {
	peak float64
}

func NewPeakTorque() *PeakTorque {
	return &PeakTorque{}
}

func (p *PeakTorque) Name() string { return "peak_torque" }

func (p *PeakTorque) Observe(x dynamo.State, u dynamo.Control, t float64) {
	for _, val := range u {
		p.peak = math.Max(p.peak, math.Abs(val))
	}
}

func (p *PeakTorque) Value() float64 { return p.peak }
func (p *PeakTorque) Reset()         { p.peak = 0 }
