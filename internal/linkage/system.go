package linkage

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Positions of the unknowns in the inverse dynamics vector. Links 1 and 2
// carry both their proximal reaction and the one transmitted to the next
// link; link 3 is free, so its distal reaction is zero and not an unknown.
const (
	IdxFx1 = iota
	IdxFx2
	IdxFy1
	IdxFy2
	IdxT1
	IdxT2
	IdxFx3
	IdxFy3
	IdxT3
	NumUnknowns
)

// UnknownNames labels the inverse dynamics vector in Idx order.
var UnknownNames = [NumUnknowns]string{"Fx1", "Fx2", "Fy1", "Fy2", "T1", "T2", "Fx3", "Fy3", "T3"}

var (
	fxIndex = [NumLinks]int{IdxFx1, IdxFx2, IdxFx3}
	fyIndex = [NumLinks]int{IdxFy1, IdxFy2, IdxFy3}
	tqIndex = [NumLinks]int{IdxT1, IdxT2, IdxT3}
)

// System is the linear system A·f = b whose solution f holds the joint
// reactions in Idx order. A depends only on lengths, radii and angles.
type System struct {
	A *mat.Dense
	B *mat.VecDense
}

// Assemble builds the inverse dynamics system for the current state.
func (l Linkage) Assemble() (*System, error) {
	if err := l.validate("assemble"); err != nil {
		return nil, err
	}
	return l.assemble(), nil
}

// assemble writes three rows per link: force balance in x, force balance
// in y and moment balance about the center of mass.
func (l Linkage) assemble() *System {
	a := mat.NewDense(NumUnknowns, NumUnknowns, nil)
	b := mat.NewVecDense(NumUnknowns, nil)

	// For a point at distance d along a link, the acceleration relative to
	// the link's proximal joint is (-d·(STA+CTW2), d·(CTA-STW2)). jointX and
	// jointY accumulate the same terms for the proximal joint itself.
	var jointX, jointY float64
	last := len(l.Links) - 1

	for i, link := range l.Links {
		s := math.Sin(link.Theta)
		c := math.Cos(link.Theta)
		rowX, rowY, rowM := 3*i, 3*i+1, 3*i+2

		a.Set(rowX, fxIndex[i], 1)
		a.Set(rowY, fyIndex[i], 1)
		a.Set(rowM, fxIndex[i], link.Radius*s)
		a.Set(rowM, fyIndex[i], -link.Radius*c)
		a.Set(rowM, tqIndex[i], 1)

		if i < last {
			d := link.distal()
			a.Set(rowX, fxIndex[i+1], -1)
			a.Set(rowY, fyIndex[i+1], -1)
			a.Set(rowM, fxIndex[i+1], d*s)
			a.Set(rowM, fyIndex[i+1], -d*c)
			a.Set(rowM, tqIndex[i+1], -1)
		}

		tangential := link.STA() + link.CTW2()
		normal := link.CTA() - link.STW2()

		b.SetVec(rowX, -link.Mass*(jointX+link.Radius*tangential))
		b.SetVec(rowY, link.Mass*(jointY+link.Radius*normal+l.Gravity))
		b.SetVec(rowM, link.InertiaCenter*link.Alpha)

		jointX += link.Length * tangential
		jointY += link.Length * normal
	}

	return &System{A: a, B: b}
}
