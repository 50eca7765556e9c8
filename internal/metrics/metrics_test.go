package metrics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/linksim/internal/dynamo"
	"github.com/san-kum/linksim/internal/integrators"
	"github.com/san-kum/linksim/internal/linkage"
	"github.com/san-kum/linksim/internal/metrics"
	"github.com/san-kum/linksim/internal/models"
)

var _ = Describe("ControlEffort", func() {
	It("averages the absolute torque sum", func() {
		m := metrics.NewControlEffort()
		Expect(m.Value()).To(Equal(0.0))

		m.Observe(nil, dynamo.Control{1, -2, 3}, 0)
		m.Observe(nil, dynamo.Control{0, 0, -2}, 0.1)
		Expect(m.Value()).To(BeNumerically("~", 4, 1e-12))

		m.Reset()
		Expect(m.Value()).To(Equal(0.0))
	})
})

var _ = Describe("PeakTorque", func() {
	It("tracks the largest magnitude", func() {
		m := metrics.NewPeakTorque()
		m.Observe(nil, dynamo.Control{1, -7, 3}, 0)
		m.Observe(nil, dynamo.Control{5, 0, 0}, 0)
		Expect(m.Name()).To(Equal("peak_torque"))
		Expect(m.Value()).To(Equal(7.0))
	})
})

var _ = Describe("Stability", func() {
	It("counts samples with any rate above threshold", func() {
		m := metrics.NewStability(1)
		Expect(m.Value()).To(Equal(1.0))

		m.Observe(dynamo.State{5, 5, 5, 0.1, 0.2, 0.3}, nil, 0)
		m.Observe(dynamo.State{0, 0, 0, 0.1, 2, 0.3}, nil, 0)
		Expect(m.Value()).To(BeNumerically("~", 0.5, 1e-12))
	})
})

var _ = Describe("EnergyDrift", func() {
	It("stays small for an unforced semi-implicit run", func() {
		chain := linkage.Default()
		model, err := models.NewTripleLink(chain)
		Expect(err).NotTo(HaveOccurred())

		drift := metrics.NewEnergyDrift(chain)
		sim := dynamo.New(model, integrators.NewSemiImplicitEuler(), zeroTorques{})
		sim.AddMetric(drift)

		res, err := sim.Run(ctx(), model.InitialState(), dynamo.Config{Dt: 0.001, Duration: 1})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Metrics).To(HaveKey("energy_drift"))
		Expect(res.Metrics["energy_drift"]).To(BeNumerically("<", 1e-2))
	})

	It("is NaN for a mismatched state", func() {
		Expect(math.IsNaN(metrics.Energy(linkage.Default(), dynamo.State{1}))).To(BeTrue())
	})
})

var _ = Describe("Summarize", func() {
	It("describes a series", func() {
		s, err := metrics.Summarize([]float64{1, 2, 3, 4, 5})
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Mean).To(BeNumerically("~", 3, 1e-12))
		Expect(s.StdDev).To(BeNumerically("~", math.Sqrt(2), 1e-12))
		Expect(s.Min).To(Equal(1.0))
		Expect(s.Max).To(Equal(5.0))
		Expect(s.P95).To(BeNumerically("<=", 5))
	})

	It("rejects an empty series", func() {
		_, err := metrics.Summarize(nil)
		Expect(err).To(HaveOccurred())
	})

	It("extracts columns", func() {
		rows := []dynamo.State{{1, 2}, {3, 4}, {5}}
		Expect(metrics.Column(rows, 1)).To(Equal([]float64{2, 4}))
	})
})

var _ = Describe("TrackingError", func() {
	It("only scores samples inside the settle window", func() {
		m := metrics.NewTrackingError([]float64{1, 2}, 10, 0.5)
		Expect(m.Name()).To(Equal("tracking_error"))
		Expect(math.IsInf(m.Value(), 1)).To(BeTrue())

		m.Observe(dynamo.State{100, 100, 0, 0}, nil, 1)
		m.Observe(dynamo.State{1.5, 2, 0, 0}, nil, 6)
		m.Observe(dynamo.State{1, 1.5, 0, 0}, nil, 9)
		Expect(m.Value()).To(BeNumerically("~", 0.5, 1e-12))

		m.Reset()
		Expect(math.IsInf(m.Value(), 1)).To(BeTrue())
	})

	It("scores the whole run for an out-of-range settle fraction", func() {
		m := metrics.NewTrackingError([]float64{0}, 10, 0)
		m.Observe(dynamo.State{-2, 0}, nil, 0)
		Expect(m.Value()).To(Equal(2.0))
	})
})
