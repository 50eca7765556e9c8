package linkage_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/linksim/internal/linkage"
)

var _ = Describe("StepForwardTorques", func() {
	It("leaves angles and rates alone when dt is zero", func() {
		l := linkage.Default()
		thetas, omegas := l.Thetas(), l.Omegas()

		_, err := l.StepForwardTorques(0, []float64{3, -2, 1})
		Expect(err).NotTo(HaveOccurred())
		Expect(l.Thetas()).To(Equal(thetas))
		Expect(l.Omegas()).To(Equal(omegas))
	})

	It("advances the angle with the updated rate", func() {
		l := linkage.Default()
		const dt = 0.1

		_, err := l.StepForwardTorques(dt, []float64{0, 0, 0})
		Expect(err).NotTo(HaveOccurred())

		alpha := -linkage.StandardGravity / 2
		omega := 1 + alpha*dt
		for _, link := range l.Links {
			Expect(link.Alpha).To(BeNumerically("~", alpha, 1e-12))
			Expect(link.Omega).To(BeNumerically("~", omega, 1e-12))
			Expect(link.Theta).To(BeNumerically("~", math.Pi/4+omega*dt, 1e-12))
		}
	})

	It("returns a copy of the stepped linkage", func() {
		l := linkage.Default()
		out, err := l.StepForwardTorques(0.01, []float64{1, 1, 1})
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal(l))

		out.Links[0].Theta = 42
		Expect(l.Links[0].Theta).NotTo(Equal(42.0))
	})

	It("holds still when torques cancel gravity and nothing moves", func() {
		l := linkage.Default()
		for i := range l.Links {
			l.Links[i].Omega = 0
		}
		w := linkage.StandardGravity
		torques := []float64{3 * w, 2 * w, w}

		for i := 0; i < 100; i++ {
			_, err := l.StepForwardTorques(0.01, torques)
			Expect(err).NotTo(HaveOccurred())
		}
		for _, link := range l.Links {
			Expect(link.Theta).To(BeNumerically("~", math.Pi/4, 1e-9))
			Expect(link.Omega).To(BeNumerically("~", 0, 1e-9))
		}
	})

	It("modifies nothing on bad input", func() {
		l := linkage.Default()
		before := l.Clone()
		_, err := l.StepForwardTorques(0.1, []float64{1, 2})
		Expect(err).To(MatchError(linkage.ErrInvalidInputVectorLength))
		Expect(l).To(Equal(before))

		short := chainOf(2)
		_, err = short.StepForwardTorques(0.1, []float64{1, 2, 3})
		Expect(err).To(MatchError(linkage.ErrInvalidChainLength))
	})
})
