package linkage

import "math"

// Link is one rigid segment. Units are assumed consistent; nothing here
// checks that length, mass or inertia are physically valid.
type Link struct {
	Length        float64 // joint to joint
	Radius        float64 // proximal joint to center of mass
	Mass          float64
	InertiaCenter float64 // about the center of mass
	InertiaOrigin float64 // about the proximal joint

	Theta float64 // rad
	Omega float64 // rad/s
	Alpha float64 // rad/s^2

	// Reaction at the proximal joint. Set by the caller for forward
	// dynamics or copied from an inverse solution with WithLoads.
	ForceX float64
	ForceY float64
	Torque float64 // ccw positive
}

const (
	DefaultLength        = 2.0
	DefaultRadius        = 1.0
	DefaultMass          = 1.0
	DefaultInertiaCenter = 1.0
	DefaultTheta         = math.Pi / 4
	DefaultOmega         = 1.0
	DefaultAlpha         = 1.0
	DefaultForceX        = 1.0
	DefaultForceY        = -1.0
	DefaultTorque        = 1.0
)

// DefaultLink returns a link filled with arbitrary illustrative values.
func DefaultLink() Link {
	return Link{
		Length:        DefaultLength,
		Radius:        DefaultRadius,
		Mass:          DefaultMass,
		InertiaCenter: DefaultInertiaCenter,
		InertiaOrigin: ParallelAxis(DefaultInertiaCenter, DefaultMass, DefaultRadius),
		Theta:         DefaultTheta,
		Omega:         DefaultOmega,
		Alpha:         DefaultAlpha,
		ForceX:        DefaultForceX,
		ForceY:        DefaultForceY,
		Torque:        DefaultTorque,
	}
}

// ParallelAxis shifts an inertia about the center of mass to a point at
// distance r from it.
func ParallelAxis(inertiaCenter, mass, r float64) float64 {
	return inertiaCenter + mass*r*r
}

// CTA returns cos(θ)·α.
func (l Link) CTA() float64 {
	return math.Cos(l.Theta) * l.Alpha
}

// STA returns sin(θ)·α.
func (l Link) STA() float64 {
	return math.Sin(l.Theta) * l.Alpha
}

// CTW2 returns cos(θ)·ω².
func (l Link) CTW2() float64 {
	return math.Cos(l.Theta) * math.Pow(l.Omega, 2)
}

// STW2 returns sin(θ)·ω².
func (l Link) STW2() float64 {
	return math.Sin(l.Theta) * math.Pow(l.Omega, 2)
}

// distal is the distance from the center of mass to the distal joint.
func (l Link) distal() float64 {
	return l.Length - l.Radius
}
