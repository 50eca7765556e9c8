package models

import (
	"fmt"

	"github.com/san-kum/linksim/internal/dynamo"
	"github.com/san-kum/linksim/internal/linkage"
)

// TripleLink is a three-link chain driven by joint torques. The state is
// [θ1, θ2, θ3, ω1, ω2, ω3] and the control is [T1, T2, T3]; accelerations
// come from linkage.ForwardDynamicsTorques.
type TripleLink struct {
	chain   linkage.Linkage
	scratch linkage.Linkage
}

// NewTripleLink copies l; its geometry, inertia and gravity parameterize
// the system and its angles and rates become InitialState.
func NewTripleLink(l linkage.Linkage) (*TripleLink, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &TripleLink{chain: l.Clone(), scratch: l.Clone()}, nil
}

func (m *TripleLink) StateDim() int   { return 2 * linkage.NumLinks }
func (m *TripleLink) ControlDim() int { return linkage.NumLinks }

func (m *TripleLink) Derive(x dynamo.State, u dynamo.Control, t float64) (dynamo.State, error) {
	if len(x) != m.StateDim() {
		return nil, fmt.Errorf("%w: state has %d values, want %d", dynamo.ErrDimensionMismatch, len(x), m.StateDim())
	}
	apply(&m.scratch, x)

	alphas, err := m.scratch.ForwardDynamicsTorques(u)
	if err != nil {
		return nil, err
	}

	n := linkage.NumLinks
	dx := make(dynamo.State, 2*n)
	copy(dx[:n], x[n:])
	copy(dx[n:], alphas)
	return dx, nil
}

// InitialState returns the angles and rates of the chain NewTripleLink was
// given.
func (m *TripleLink) InitialState() dynamo.State {
	return StateOf(m.chain)
}

// Chain returns a copy of the model's linkage with x applied.
func (m *TripleLink) Chain(x dynamo.State) linkage.Linkage {
	l := m.chain.Clone()
	if len(x) == m.StateDim() {
		apply(&l, x)
	}
	return l
}

// StateOf packs the angles and rates of l into a state vector.
func StateOf(l linkage.Linkage) dynamo.State {
	n := len(l.Links)
	x := make(dynamo.State, 2*n)
	for i, link := range l.Links {
		x[i] = link.Theta
		x[n+i] = link.Omega
	}
	return x
}

func apply(l *linkage.Linkage, x dynamo.State) {
	n := len(l.Links)
	for i := range l.Links {
		l.Links[i].Theta = x[i]
		l.Links[i].Omega = x[n+i]
	}
}

// GetParams exposes gravity and the link masses for live tuning.
func (m *TripleLink) GetParams() map[string]float64 {
	params := map[string]float64{"gravity": m.chain.Gravity}
	for i, link := range m.chain.Links {
		params[massParam(i)] = link.Mass
	}
	return params
}

func (m *TripleLink) SetParam(name string, value float64) error {
	if name == "gravity" {
		m.chain.Gravity = value
		m.scratch.Gravity = value
		return nil
	}
	for i := range m.chain.Links {
		if name == massParam(i) {
			m.chain.Links[i].Mass = value
			m.scratch.Links[i].Mass = value
			return nil
		}
	}
	return fmt.Errorf("%w: %s", dynamo.ErrUnknownParam, name)
}

func massParam(i int) string {
	return fmt.Sprintf("m%d", i+1)
}
