package control

import (
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/linksim/internal/dynamo"
)

// LQR applies u = -K(x - target) for a precomputed gain matrix K with one
// row per control and one column per state.
type LQR struct {
	K      *mat.Dense
	Target dynamo.State

	dx *mat.VecDense
	u  *mat.VecDense
}

func NewLQR(k *mat.Dense, target dynamo.State) *LQR {
	rows, cols := k.Dims()
	return &LQR{
		K:      k,
		Target: target.Clone(),
		dx:     mat.NewVecDense(cols, nil),
		u:      mat.NewVecDense(rows, nil),
	}
}

// NewJointPD builds diagonal gains acting like independent PD loops on
// every joint of an n-joint chain: u_i = kp(target_i - θ_i) - kd ω_i.
func NewJointPD(targets []float64, kp, kd float64) *LQR {
	n := len(targets)
	k := mat.NewDense(n, 2*n, nil)
	for i := 0; i < n; i++ {
		k.Set(i, i, kp)
		k.Set(i, n+i, kd)
	}
	target := make(dynamo.State, 2*n)
	copy(target, targets)
	return NewLQR(k, target)
}

// Compute returns zero torques when x does not match the gain columns.
func (l *LQR) Compute(x dynamo.State, t float64) dynamo.Control {
	rows, cols := l.K.Dims()
	out := make(dynamo.Control, rows)
	if len(x) != cols {
		return out
	}

	for j := 0; j < cols; j++ {
		target := 0.0
		if j < len(l.Target) {
			target = l.Target[j]
		}
		l.dx.SetVec(j, x[j]-target)
	}
	l.u.MulVec(l.K, l.dx)
	for i := range out {
		out[i] = -l.u.AtVec(i)
	}
	return out
}
