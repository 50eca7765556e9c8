package linkage_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/linksim/internal/linkage"
)

var _ = Describe("Pose", func() {
	It("places joints and centers along the default diagonal", func() {
		pose, err := linkage.Default().Pose()
		Expect(err).NotTo(HaveOccurred())
		Expect(pose.Joints).To(HaveLen(4))
		Expect(pose.Centers).To(HaveLen(3))

		h := math.Sqrt2 / 2
		for i, j := range pose.Joints {
			Expect(j.X).To(BeNumerically("~", 2*h*float64(i), 1e-12))
			Expect(j.Y).To(BeNumerically("~", 2*h*float64(i), 1e-12))
		}
		for i, c := range pose.Centers {
			Expect(c.X).To(BeNumerically("~", h*float64(2*i+1), 1e-12))
			Expect(c.Y).To(BeNumerically("~", h*float64(2*i+1), 1e-12))
		}
		Expect(pose.Tip()).To(Equal(pose.Joints[3]))
	})

	It("folds back on itself", func() {
		l := linkage.Default()
		l.Links[0].Theta, l.Links[1].Theta, l.Links[2].Theta = 0, math.Pi, 0
		pose, err := l.Pose()
		Expect(err).NotTo(HaveOccurred())
		Expect(pose.Tip().X).To(BeNumerically("~", 2, 1e-12))
		Expect(pose.Tip().Y).To(BeNumerically("~", 0, 1e-12))
		Expect(l.Reach()).To(Equal(6.0))
	})

	It("rejects the wrong chain length", func() {
		_, err := chainOf(1).Pose()
		Expect(err).To(MatchError(linkage.ErrInvalidChainLength))
	})
})
