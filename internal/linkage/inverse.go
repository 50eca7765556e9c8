package linkage

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	// rankTolerance is the relative singular value cutoff used to decide
	// the numerical rank of the inverse dynamics system.
	rankTolerance = 1e-12

	// DefaultMaxCond is the condition number above which a solution is
	// treated as low confidence.
	DefaultMaxCond = 1e12
)

// InverseSolution is the result of InverseDynamics.
type InverseSolution struct {
	// F is ordered [Fx1, Fx2, Fy1, Fy2, T1, T2, Fx3, Fy3, T3].
	F []float64

	// Rank is the numerical rank of A; less than NumUnknowns means F is
	// the minimum norm least squares solution.
	Rank int

	// Cond is the 2-norm condition number of A.
	Cond float64

	// Residual is ‖A·F − b‖₂.
	Residual float64
}

// Load returns the reaction at the proximal joint of link i.
func (s InverseSolution) Load(i int) (fx, fy, torque float64) {
	return s.F[fxIndex[i]], s.F[fyIndex[i]], s.F[tqIndex[i]]
}

// FullRank reports whether every unknown was determined.
func (s InverseSolution) FullRank() bool {
	return s.Rank == NumUnknowns
}

// WellConditioned reports whether the solution is full rank with a
// condition number no greater than maxCond.
func (s InverseSolution) WellConditioned(maxCond float64) bool {
	return s.FullRank() && !math.IsInf(s.Cond, 0) && s.Cond <= maxCond
}

// InverseDynamics solves for the joint reactions and torques that produce
// the links' current θ, ω and α. The linkage is not modified.
func (l Linkage) InverseDynamics() (InverseSolution, error) {
	if err := l.validate("inverse dynamics"); err != nil {
		return InverseSolution{}, err
	}
	return solve(l.assemble())
}

func solve(sys *System) (InverseSolution, error) {
	var svd mat.SVD
	if ok := svd.Factorize(sys.A, mat.SVDThin); !ok {
		return InverseSolution{}, ErrFactorization
	}

	rank := svd.Rank(rankTolerance)
	var f mat.VecDense
	svd.SolveVecTo(&f, sys.B, rank)

	var r mat.VecDense
	r.MulVec(sys.A, &f)
	r.SubVec(&r, sys.B)

	return InverseSolution{
		F:        mat.Col(nil, 0, &f),
		Rank:     rank,
		Cond:     svd.Cond(),
		Residual: mat.Norm(&r, 2),
	}, nil
}

// WithLoads returns a copy of l whose links carry the proximal reactions
// from sol, ready for ForwardDynamicsFull.
func (l Linkage) WithLoads(sol InverseSolution) (Linkage, error) {
	if err := l.validate("with loads"); err != nil {
		return Linkage{}, err
	}
	if len(sol.F) != NumUnknowns {
		return Linkage{}, vectorLengthError("with loads", NumUnknowns, len(sol.F))
	}

	out := l.Clone()
	for i := range out.Links {
		out.Links[i].ForceX, out.Links[i].ForceY, out.Links[i].Torque = sol.Load(i)
	}
	return out, nil
}
