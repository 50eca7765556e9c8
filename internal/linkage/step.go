package linkage

// StepForwardTorques advances the linkage by dt under the joint torques
// using semi-implicit Euler: ω is updated first and the new ω advances θ.
// Alpha on each link is set to the acceleration used for the step.
//
// The linkage is modified in place and a copy of the result is returned for
// callers that keep a history. On error nothing is modified. There is no
// step size control; large dt diverges.
func (l *Linkage) StepForwardTorques(dt float64, torques []float64) (Linkage, error) {
	alphas, err := l.ForwardDynamicsTorques(torques)
	if err != nil {
		return Linkage{}, err
	}

	for i := range l.Links {
		link := &l.Links[i]
		link.Alpha = alphas[i]
		link.Omega += alphas[i] * dt
		link.Theta += link.Omega * dt
	}
	return l.Clone(), nil
}
