package linkage

import "math"

// ForwardDynamicsFull returns [α1, α2, α3] from the moment balance of each
// link about its center of mass, using the ForceX, ForceY and Torque stored
// on every link. The reaction a link transmits across its distal joint is
// the next link's stored load; the free end transmits none.
func (l Linkage) ForwardDynamicsFull() ([]float64, error) {
	if err := l.validate("forward dynamics"); err != nil {
		return nil, err
	}

	alphas := make([]float64, len(l.Links))
	last := len(l.Links) - 1
	for i, link := range l.Links {
		s := math.Sin(link.Theta)
		c := math.Cos(link.Theta)

		moment := link.Torque + link.ForceX*link.Radius*s - link.ForceY*link.Radius*c
		if i < last {
			next := l.Links[i+1]
			moment += -next.Torque + next.ForceX*link.distal()*s - next.ForceY*link.distal()*c
		}
		alphas[i] = moment / link.InertiaCenter
	}
	return alphas, nil
}

// ForwardDynamicsTorques returns [α1, α2, α3] for the joint torques
// [T1, T2, T3] from the moment balance of each link about its proximal
// joint. Gravity is taken to act on the link's own mass at its own radius;
// the weight of downstream links and reaction force coupling are ignored.
func (l Linkage) ForwardDynamicsTorques(torques []float64) ([]float64, error) {
	const op = "forward dynamics torques"
	if err := l.validate(op); err != nil {
		return nil, err
	}
	if len(torques) != NumLinks {
		return nil, vectorLengthError(op, NumLinks, len(torques))
	}
	return l.torqueAlphas(torques), nil
}

func (l Linkage) torqueAlphas(torques []float64) []float64 {
	alphas := make([]float64, len(l.Links))
	last := len(l.Links) - 1
	for i, link := range l.Links {
		moment := torques[i] - link.Mass*l.Gravity*link.Radius
		if i < last {
			moment -= torques[i+1]
		}
		alphas[i] = moment / link.InertiaOrigin
	}
	return alphas
}
