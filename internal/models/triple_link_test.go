package models_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/linksim/internal/dynamo"
	"github.com/san-kum/linksim/internal/linkage"
	"github.com/san-kum/linksim/internal/models"
)

var _ = Describe("TripleLink", func() {
	var model *models.TripleLink

	BeforeEach(func() {
		var err error
		model, err = models.NewTripleLink(linkage.Default())
		Expect(err).NotTo(HaveOccurred())
	})

	It("reports its dimensions", func() {
		Expect(model.StateDim()).To(Equal(6))
		Expect(model.ControlDim()).To(Equal(3))
	})

	It("rejects chains of the wrong length", func() {
		_, err := models.NewTripleLink(linkage.New(linkage.DefaultLink()))
		Expect(err).To(MatchError(linkage.ErrInvalidChainLength))
	})

	It("derives rates and torque accelerations", func() {
		x := model.InitialState()
		u := dynamo.Control{5, 1, 0}

		dx, err := model.Derive(x, u, 0)
		Expect(err).NotTo(HaveOccurred())

		want, err := model.Chain(x).ForwardDynamicsTorques(u)
		Expect(err).NotTo(HaveOccurred())
		Expect([]float64(dx[:3])).To(Equal(model.Chain(x).Omegas()))
		Expect([]float64(dx[3:])).To(Equal(want))
	})

	It("reports control length errors", func() {
		_, err := model.Derive(model.InitialState(), dynamo.Control{1, 2}, 0)
		Expect(err).To(MatchError(linkage.ErrInvalidInputVectorLength))
	})

	It("reports state length errors", func() {
		_, err := model.Derive(dynamo.State{1, 2}, dynamo.Control{1, 2, 3}, 0)
		Expect(err).To(MatchError(dynamo.ErrDimensionMismatch))
	})

	It("round-trips state through the chain", func() {
		x := dynamo.State{0.1, 0.2, 0.3, -1, -2, -3}
		Expect(models.StateOf(model.Chain(x))).To(Equal(x))
	})

	It("does not keep a reference to the caller's chain", func() {
		chain := linkage.Default()
		m, err := models.NewTripleLink(chain)
		Expect(err).NotTo(HaveOccurred())
		chain.Links[0].Theta = 3
		Expect(m.InitialState()[0]).To(Equal(linkage.DefaultTheta))
	})

	It("tunes gravity and masses", func() {
		Expect(model.SetParam("gravity", 0)).To(Succeed())
		Expect(model.SetParam("m2", 4)).To(Succeed())
		Expect(model.GetParams()).To(HaveKeyWithValue("gravity", 0.0))
		Expect(model.GetParams()).To(HaveKeyWithValue("m2", 4.0))

		dx, err := model.Derive(model.InitialState(), dynamo.Control{0, 0, 0}, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect([]float64(dx[3:])).To(Equal([]float64{0, 0, 0}))

		Expect(model.SetParam("length", 1)).To(MatchError(dynamo.ErrUnknownParam))
	})
})
