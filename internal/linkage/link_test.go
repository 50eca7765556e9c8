package linkage_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/linksim/internal/linkage"
)

var _ = Describe("Link", func() {
	It("fills the default values", func() {
		l := linkage.DefaultLink()
		Expect(l.Length).To(Equal(2.0))
		Expect(l.Radius).To(Equal(1.0))
		Expect(l.Mass).To(Equal(1.0))
		Expect(l.InertiaCenter).To(Equal(1.0))
		Expect(l.InertiaOrigin).To(Equal(2.0))
		Expect(l.Theta).To(Equal(math.Pi / 4))
		Expect(l.Omega).To(Equal(1.0))
		Expect(l.Alpha).To(Equal(1.0))
		Expect(l.ForceX).To(Equal(1.0))
		Expect(l.ForceY).To(Equal(-1.0))
		Expect(l.Torque).To(Equal(1.0))
	})

	It("computes the trigonometric helpers from the current state", func() {
		l := linkage.Link{Theta: 0.7, Omega: 2, Alpha: 3}
		Expect(l.CTA()).To(Equal(math.Cos(0.7) * 3))
		Expect(l.STA()).To(Equal(math.Sin(0.7) * 3))
		Expect(l.CTW2()).To(Equal(math.Cos(0.7) * 4))
		Expect(l.STW2()).To(Equal(math.Sin(0.7) * 4))
	})

	It("vanishes at rest", func() {
		l := linkage.Link{Theta: 1.2}
		Expect(l.CTA()).To(BeZero())
		Expect(l.STA()).To(BeZero())
		Expect(l.CTW2()).To(BeZero())
		Expect(l.STW2()).To(BeZero())
	})

	It("shifts inertia with the parallel axis theorem", func() {
		Expect(linkage.ParallelAxis(0.5, 2, 3)).To(Equal(18.5))
	})
})

var _ = Describe("Linkage", func() {
	It("defaults to three links under standard gravity", func() {
		l := linkage.Default()
		Expect(l.Links).To(HaveLen(linkage.NumLinks))
		Expect(l.Gravity).To(Equal(linkage.StandardGravity))
		Expect(l.Validate()).To(Succeed())
	})

	It("copies links on construction and clone", func() {
		links := []linkage.Link{linkage.DefaultLink(), linkage.DefaultLink(), linkage.DefaultLink()}
		l := linkage.New(links...)
		links[0].Theta = 5
		Expect(l.Links[0].Theta).To(Equal(math.Pi / 4))

		c := l.Clone()
		c.Links[1].Omega = 7
		c.Gravity = 0
		Expect(l.Links[1].Omega).To(Equal(1.0))
		Expect(l.Gravity).To(Equal(linkage.StandardGravity))
	})

	It("reports the wrong chain length", func() {
		err := linkage.New(linkage.DefaultLink()).Validate()
		Expect(err).To(MatchError(linkage.ErrInvalidChainLength))

		var shape *linkage.ShapeError
		Expect(err).To(BeAssignableToTypeOf(shape))
		Expect(err.Error()).To(ContainSubstring("want 3, got 1"))
	})

	It("lists the kinematic state in chain order", func() {
		l := linkage.Default()
		l.Links[2].Theta = 0.1
		l.Links[1].Omega = -2
		l.Links[0].Alpha = 4
		Expect(l.Thetas()).To(Equal([]float64{math.Pi / 4, math.Pi / 4, 0.1}))
		Expect(l.Omegas()).To(Equal([]float64{1, -2, 1}))
		Expect(l.Alphas()).To(Equal([]float64{4, 1, 1}))
	})
})
