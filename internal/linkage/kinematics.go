package linkage

import "math"

// Point is a position in the plane of the chain, ground pivot at the origin.
type Point struct {
	X, Y float64
}

// Pose holds the planar positions of the chain's joints and centers of mass.
// Joints has one more entry than the chain has links: the ground pivot
// first and the free tip last.
type Pose struct {
	Joints  []Point
	Centers []Point
}

// Tip returns the position of the free end.
func (p Pose) Tip() Point {
	return p.Joints[len(p.Joints)-1]
}

// Pose composes the links' absolute angles into joint and center of mass
// positions. Each link points along (cos θ, sin θ) from its proximal joint.
func (l Linkage) Pose() (Pose, error) {
	if err := l.validate("pose"); err != nil {
		return Pose{}, err
	}

	pose := Pose{
		Joints:  make([]Point, 0, len(l.Links)+1),
		Centers: make([]Point, 0, len(l.Links)),
	}
	at := Point{}
	pose.Joints = append(pose.Joints, at)
	for _, link := range l.Links {
		c := math.Cos(link.Theta)
		s := math.Sin(link.Theta)
		pose.Centers = append(pose.Centers, Point{X: at.X + link.Radius*c, Y: at.Y + link.Radius*s})
		at = Point{X: at.X + link.Length*c, Y: at.Y + link.Length*s}
		pose.Joints = append(pose.Joints, at)
	}
	return pose, nil
}

// Reach is the distance from the ground pivot to the tip when the chain is
// fully extended.
func (l Linkage) Reach() float64 {
	total := 0.0
	for _, link := range l.Links {
		total += math.Abs(link.Length)
	}
	return total
}
