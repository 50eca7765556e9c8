package control

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/san-kum/linksim/internal/dynamo"
)

// PID drives each joint angle toward its target. Gains are shared across
// joints. The derivative term uses the measured joint rate, so target steps
// do not kick.
type PID struct {
	Kp      float64
	Ki      float64
	Kd      float64
	Targets []float64

	integral []float64
	prevT    float64
	first    bool
}

func NewPID(targets []float64, kp, ki, kd float64) *PID {
	tg := make([]float64, len(targets))
	copy(tg, targets)
	return &PID{
		Kp:       kp,
		Ki:       ki,
		Kd:       kd,
		Targets:  tg,
		integral: make([]float64, len(targets)),
		first:    true,
	}
}

// Compute expects x = [q..., q̇...] with one q per target. Any other
// layout yields zero torques.
func (p *PID) Compute(x dynamo.State, t float64) dynamo.Control {
	n := len(p.Targets)
	u := make(dynamo.Control, n)
	if len(x) != 2*n {
		return u
	}

	dt := 0.0
	if !p.first {
		dt = t - p.prevT
	}
	p.first = false
	p.prevT = t

	for i := 0; i < n; i++ {
		err := p.Targets[i] - x[i]
		if dt > 0 {
			p.integral[i] += err * dt
		}
		u[i] = p.Kp*err + p.Ki*p.integral[i] - p.Kd*x[n+i]
	}
	return u
}

// Reset clears integral state
func (p *PID) Reset() {
	for i := range p.integral {
		p.integral[i] = 0
	}
	p.first = true
}

// GetParams returns tunable parameters for live adjustment. Targets are
// exposed as Target1, Target2, ...
func (p *PID) GetParams() map[string]float64 {
	params := map[string]float64{
		"Kp": p.Kp,
		"Ki": p.Ki,
		"Kd": p.Kd,
	}
	for i, target := range p.Targets {
		params["Target"+strconv.Itoa(i+1)] = target
	}
	return params
}

func (p *PID) SetParam(name string, value float64) error {
	switch name {
	case "Kp":
		p.Kp = value
	case "Ki":
		p.Ki = value
	case "Kd":
		p.Kd = value
	default:
		idx, ok := targetIndex(name)
		if !ok || idx >= len(p.Targets) {
			return fmt.Errorf("%w: %s", dynamo.ErrUnknownParam, name)
		}
		p.Targets[idx] = value
	}
	return nil
}

func targetIndex(name string) (int, bool) {
	rest, ok := strings.CutPrefix(name, "Target")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 1 {
		return 0, false
	}
	return n - 1, true
}
