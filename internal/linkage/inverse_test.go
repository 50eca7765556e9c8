package linkage_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/linksim/internal/linkage"
)

// defaultReactions is this package's solve of the default chain under
// standard gravity, ordered [Fx1, Fx2, Fy1, Fy2, T1, T2, Fx3, Fy3, T3].
// T1 uses the same center of mass moment row as the other links, so it
// differs from solvers that build the link 1 row without the radius terms.
var defaultReactions = []float64{
	-12.727922061357855,
	-11.31370849898476,
	29.43,
	19.62,
	100.43045771096027,
	47.74687009376013,
	-7.071067811865475,
	9.81,
	12.93671752344003,
}

func chainOf(n int) linkage.Linkage {
	links := make([]linkage.Link, n)
	for i := range links {
		links[i] = linkage.DefaultLink()
	}
	return linkage.New(links...)
}

var _ = Describe("InverseDynamics", func() {
	It("matches the reference solve of the default chain", func() {
		sol, err := linkage.Default().InverseDynamics()
		Expect(err).NotTo(HaveOccurred())
		Expect(sol.F).To(HaveLen(linkage.NumUnknowns))
		for i, want := range defaultReactions {
			Expect(sol.F[i]).To(BeNumerically("~", want, 1e-9), "unknown %d", i)
		}
		Expect(sol.Rank).To(Equal(linkage.NumUnknowns))
		Expect(sol.Residual).To(BeNumerically("<", 1e-9))
		Expect(sol.WellConditioned(linkage.DefaultMaxCond)).To(BeTrue())
	})

	It("flags a degenerate chain as low confidence", func() {
		l := linkage.Default()
		l.Links[0].Radius = 1e14
		sol, err := l.InverseDynamics()
		Expect(err).NotTo(HaveOccurred())
		Expect(sol.Rank).To(BeNumerically("<", linkage.NumUnknowns))
		Expect(sol.FullRank()).To(BeFalse())
		Expect(sol.WellConditioned(linkage.DefaultMaxCond)).To(BeFalse())
		Expect(sol.Cond).To(BeNumerically(">", linkage.DefaultMaxCond))
		Expect(sol.Residual).To(BeNumerically(">", 1e6))
	})

	DescribeTable("reports a failed factorization for non-finite angles",
		func(theta float64) {
			l := linkage.Default()
			l.Links[1].Theta = theta
			var err error
			Expect(func() { _, err = l.InverseDynamics() }).NotTo(Panic())
			Expect(err).To(MatchError(linkage.ErrFactorization))
		},
		Entry("NaN", math.NaN()),
		Entry("+Inf", math.Inf(1)),
	)

	It("returns zero reactions for a massless chain", func() {
		l := linkage.Default()
		for i := range l.Links {
			l.Links[i].Mass = 0
			l.Links[i].InertiaCenter = 0
		}
		sol, err := l.InverseDynamics()
		Expect(err).NotTo(HaveOccurred())
		for i, f := range sol.F {
			Expect(f).To(BeNumerically("~", 0, 1e-12), "unknown %d", i)
		}
	})

	It("leaves the linkage untouched", func() {
		l := linkage.Default()
		before := l.Clone()
		_, err := l.InverseDynamics()
		Expect(err).NotTo(HaveOccurred())
		Expect(l).To(Equal(before))
	})

	It("maps the solution back onto each link's proximal joint", func() {
		sol, err := linkage.Default().InverseDynamics()
		Expect(err).NotTo(HaveOccurred())

		fx, fy, t := sol.Load(0)
		Expect([]float64{fx, fy, t}).To(Equal([]float64{sol.F[linkage.IdxFx1], sol.F[linkage.IdxFy1], sol.F[linkage.IdxT1]}))
		fx, fy, t = sol.Load(1)
		Expect([]float64{fx, fy, t}).To(Equal([]float64{sol.F[linkage.IdxFx2], sol.F[linkage.IdxFy2], sol.F[linkage.IdxT2]}))
		fx, fy, t = sol.Load(2)
		Expect([]float64{fx, fy, t}).To(Equal([]float64{sol.F[linkage.IdxFx3], sol.F[linkage.IdxFy3], sol.F[linkage.IdxT3]}))
	})

	DescribeTable("rejects chains that are not three links long",
		func(n int) {
			_, err := chainOf(n).InverseDynamics()
			Expect(err).To(MatchError(linkage.ErrInvalidChainLength))

			var shape *linkage.ShapeError
			Expect(errors.As(err, &shape)).To(BeTrue())
			Expect(shape.Got).To(Equal(n))
			Expect(shape.Want).To(Equal(linkage.NumLinks))
		},
		Entry("empty", 0),
		Entry("two links", 2),
		Entry("four links", 4),
	)

	DescribeTable("agrees with ForwardDynamicsFull",
		func(mutate func(*linkage.Linkage)) {
			l := linkage.Default()
			mutate(&l)

			sol, err := l.InverseDynamics()
			Expect(err).NotTo(HaveOccurred())
			loaded, err := l.WithLoads(sol)
			Expect(err).NotTo(HaveOccurred())

			alphas, err := loaded.ForwardDynamicsFull()
			Expect(err).NotTo(HaveOccurred())
			for i, link := range l.Links {
				Expect(alphas[i]).To(BeNumerically("~", link.Alpha, 1e-9), "link %d", i)
			}
		},
		Entry("default chain", func(*linkage.Linkage) {}),
		Entry("mixed angles and rates", func(l *linkage.Linkage) {
			l.Links[0].Theta, l.Links[1].Theta, l.Links[2].Theta = 0.3, 1.9, -2.4
			l.Links[0].Omega, l.Links[1].Omega, l.Links[2].Omega = -0.5, 3, 0.25
			l.Links[0].Alpha, l.Links[1].Alpha, l.Links[2].Alpha = 2, -1.5, 0.75
		}),
		Entry("uneven links", func(l *linkage.Linkage) {
			l.Links[0] = linkage.Link{Length: 0.45, Radius: 0.2, Mass: 7.5, InertiaCenter: 0.12, Theta: 1.4, Omega: 0.8, Alpha: -0.3}
			l.Links[1] = linkage.Link{Length: 0.42, Radius: 0.18, Mass: 3.2, InertiaCenter: 0.05, Theta: 1.7, Omega: -1.1, Alpha: 0.9}
			l.Links[2] = linkage.Link{Length: 0.2, Radius: 0.08, Mass: 1.1, InertiaCenter: 0.004, Theta: 0.1, Omega: 2.2, Alpha: 4}
		}),
		Entry("axis aligned angles", func(l *linkage.Linkage) {
			l.Links[0].Theta, l.Links[1].Theta, l.Links[2].Theta = 0, math.Pi/2, math.Pi
		}),
		Entry("all vertical", func(l *linkage.Linkage) {
			for i := range l.Links {
				l.Links[i].Theta = math.Pi / 2
			}
		}),
		Entry("zero gravity", func(l *linkage.Linkage) {
			l.Gravity = 0
		}),
	)
})

var _ = Describe("Assemble", func() {
	It("builds a square system over the nine unknowns", func() {
		sys, err := linkage.Default().Assemble()
		Expect(err).NotTo(HaveOccurred())
		r, c := sys.A.Dims()
		Expect(r).To(Equal(linkage.NumUnknowns))
		Expect(c).To(Equal(linkage.NumUnknowns))
		Expect(sys.B.Len()).To(Equal(linkage.NumUnknowns))
	})

	It("keeps A fixed when only rates, accelerations and inertial terms change", func() {
		base := linkage.Default()
		want, err := base.Assemble()
		Expect(err).NotTo(HaveOccurred())

		varied := base.Clone()
		for i := range varied.Links {
			varied.Links[i].Omega = float64(i) - 4
			varied.Links[i].Alpha = 10 * float64(i+1)
			varied.Links[i].Mass = 0.3 * float64(i+2)
			varied.Links[i].InertiaCenter = 5
		}
		varied.Gravity = 1.62
		got, err := varied.Assemble()
		Expect(err).NotTo(HaveOccurred())

		Expect(mat.Equal(want.A, got.A)).To(BeTrue())
		Expect(mat.Equal(want.B, got.B)).To(BeFalse())
	})

	It("changes A with the angles", func() {
		base := linkage.Default()
		want, err := base.Assemble()
		Expect(err).NotTo(HaveOccurred())

		base.Links[1].Theta = 0.2
		got, err := base.Assemble()
		Expect(err).NotTo(HaveOccurred())
		Expect(mat.Equal(want.A, got.A)).To(BeFalse())
	})

	It("adds the weight of each link to its vertical row", func() {
		l := linkage.Default()
		for i := range l.Links {
			l.Links[i].Omega = 0
			l.Links[i].Alpha = 0
		}
		sys, err := l.Assemble()
		Expect(err).NotTo(HaveOccurred())
		for i := 0; i < linkage.NumLinks; i++ {
			Expect(sys.B.AtVec(3*i + 1)).To(Equal(linkage.StandardGravity))
			Expect(sys.B.AtVec(3 * i)).To(BeZero())
			Expect(sys.B.AtVec(3*i + 2)).To(BeZero())
		}
	})

	It("rejects the wrong chain length", func() {
		_, err := chainOf(4).Assemble()
		Expect(err).To(MatchError(linkage.ErrInvalidChainLength))
	})
})

var _ = Describe("WithLoads", func() {
	It("copies the solved reactions onto the links", func() {
		l := linkage.Default()
		sol, err := l.InverseDynamics()
		Expect(err).NotTo(HaveOccurred())

		loaded, err := l.WithLoads(sol)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded.Links[2].ForceX).To(Equal(sol.F[linkage.IdxFx3]))
		Expect(loaded.Links[0].Torque).To(Equal(sol.F[linkage.IdxT1]))
		Expect(l.Links[0].Torque).To(Equal(linkage.DefaultTorque))
	})

	It("rejects a truncated solution", func() {
		_, err := linkage.Default().WithLoads(linkage.InverseSolution{F: make([]float64, 8)})
		Expect(err).To(MatchError(linkage.ErrInvalidInputVectorLength))
	})
})
