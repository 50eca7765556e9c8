package linkage

// NumLinks is the only chain length the solvers accept.
const NumLinks = 3

// StandardGravity is the gravitational acceleration used by Default, m/s^2.
const StandardGravity = 9.81

// Linkage is an ordered chain of links. Links[0] is pinned to the ground,
// Links[len-1] is the free end.
type Linkage struct {
	Links   []Link
	Gravity float64
}

// New builds a linkage from explicit links under standard gravity. The
// links are copied; the length is checked by the solvers, not here.
func New(links ...Link) Linkage {
	ls := make([]Link, len(links))
	copy(ls, links)
	return Linkage{Links: ls, Gravity: StandardGravity}
}

// Default returns a three-link chain of DefaultLink segments.
func Default() Linkage {
	links := make([]Link, NumLinks)
	for i := range links {
		links[i] = DefaultLink()
	}
	return Linkage{Links: links, Gravity: StandardGravity}
}

// Clone returns a copy that shares no memory with l.
func (l Linkage) Clone() Linkage {
	c := New(l.Links...)
	c.Gravity = l.Gravity
	return c
}

// Validate reports an ErrInvalidChainLength shape error unless the chain
// has exactly NumLinks links.
func (l Linkage) Validate() error {
	return l.validate("validate")
}

func (l Linkage) validate(op string) error {
	if len(l.Links) != NumLinks {
		return chainLengthError(op, len(l.Links))
	}
	return nil
}

// Thetas returns the link angles in chain order.
func (l Linkage) Thetas() []float64 {
	out := make([]float64, len(l.Links))
	for i, link := range l.Links {
		out[i] = link.Theta
	}
	return out
}

// Omegas returns the link angular velocities in chain order.
func (l Linkage) Omegas() []float64 {
	out := make([]float64, len(l.Links))
	for i, link := range l.Links {
		out[i] = link.Omega
	}
	return out
}

// Alphas returns the link angular accelerations in chain order.
func (l Linkage) Alphas() []float64 {
	out := make([]float64, len(l.Links))
	for i, link := range l.Links {
		out[i] = link.Alpha
	}
	return out
}
