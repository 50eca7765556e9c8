package control

import "github.com/san-kum/linksim/internal/dynamo"

type None struct {
	dim int
}

func NewNone(dim int) *None {
	return &None{
		dim: dim,
	}
}

func (n *None) Compute(x dynamo.State, t float64) dynamo.Control {
	return make(dynamo.Control, n.dim)
}

// Constant applies the same torques at every step.
type Constant struct {
	u dynamo.Control
}

func NewConstant(torques []float64) *Constant {
	u := make(dynamo.Control, len(torques))
	copy(u, torques)
	return &Constant{u: u}
}

// Set replaces the torques; a vector of a different length is ignored.
func (c *Constant) Set(torques []float64) {
	if len(torques) != len(c.u) {
		return
	}
	copy(c.u, torques)
}

func (c *Constant) Compute(x dynamo.State, t float64) dynamo.Control {
	return c.u.Clone()
}
