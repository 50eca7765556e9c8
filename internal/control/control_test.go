package control_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/linksim/internal/control"
	"github.com/san-kum/linksim/internal/dynamo"
)

var _ = Describe("None", func() {
	It("returns zero torques of the configured size", func() {
		u := control.NewNone(3).Compute(dynamo.State{1, 2, 3, 4, 5, 6}, 0)
		Expect(u).To(Equal(dynamo.Control{0, 0, 0}))
	})
})

var _ = Describe("Constant", func() {
	It("returns a copy of its torques", func() {
		c := control.NewConstant([]float64{1, 2, 3})
		u := c.Compute(nil, 0)
		u[0] = 99
		Expect(c.Compute(nil, 1)).To(Equal(dynamo.Control{1, 2, 3}))
	})

	It("ignores torque vectors of the wrong length", func() {
		c := control.NewConstant([]float64{1, 2, 3})
		c.Set([]float64{4, 5})
		Expect(c.Compute(nil, 0)).To(Equal(dynamo.Control{1, 2, 3}))
		c.Set([]float64{4, 5, 6})
		Expect(c.Compute(nil, 0)).To(Equal(dynamo.Control{4, 5, 6}))
	})
})

var _ = Describe("PID", func() {
	var pid *control.PID

	BeforeEach(func() {
		pid = control.NewPID([]float64{1, 0, 0}, 10, 1, 2)
	})

	It("pushes each joint toward its target", func() {
		u := pid.Compute(dynamo.State{0, 0.5, -0.5, 0, 0, 0}, 0)
		Expect(u[0]).To(BeNumerically("~", 10, 1e-12))
		Expect(u[1]).To(BeNumerically("~", -5, 1e-12))
		Expect(u[2]).To(BeNumerically("~", 5, 1e-12))
	})

	It("damps on the measured rate", func() {
		u := pid.Compute(dynamo.State{1, 0, 0, 3, 0, 0}, 0)
		Expect(u[0]).To(BeNumerically("~", -6, 1e-12))
	})

	It("accumulates the integral between calls", func() {
		x := dynamo.State{0, 0, 0, 0, 0, 0}
		pid.Compute(x, 0)
		u := pid.Compute(x, 0.5)
		Expect(u[0]).To(BeNumerically("~", 10+0.5, 1e-12))

		pid.Reset()
		u = pid.Compute(x, 1)
		Expect(u[0]).To(BeNumerically("~", 10, 1e-12))
	})

	It("returns zero torques for a mismatched state", func() {
		Expect(pid.Compute(dynamo.State{1, 2}, 0)).To(Equal(dynamo.Control{0, 0, 0}))
	})

	It("tunes gains and targets", func() {
		Expect(pid.SetParam("Kp", 3)).To(Succeed())
		Expect(pid.SetParam("Target2", math.Pi)).To(Succeed())
		Expect(pid.GetParams()).To(HaveKeyWithValue("Kp", 3.0))
		Expect(pid.GetParams()).To(HaveKeyWithValue("Target2", math.Pi))
		Expect(pid.SetParam("Target4", 1)).To(MatchError(dynamo.ErrUnknownParam))
		Expect(pid.SetParam("Kx", 1)).To(MatchError(dynamo.ErrUnknownParam))
	})
})

var _ = Describe("LQR", func() {
	It("is zero at the target", func() {
		pd := control.NewJointPD([]float64{0.5, 0, 0}, 10, 2)
		Expect(pd.Compute(dynamo.State{0.5, 0, 0, 0, 0, 0}, 0)).To(Equal(dynamo.Control{0, 0, 0}))
	})

	It("matches the PID without integral action", func() {
		targets := []float64{1, 0, -1}
		pd := control.NewJointPD(targets, 10, 2)
		pid := control.NewPID(targets, 10, 0, 2)

		x := dynamo.State{0.2, 0.1, 0.3, 1, -1, 0.5}
		want := pid.Compute(x, 0)
		got := pd.Compute(x, 0)
		for i := range want {
			Expect(got[i]).To(BeNumerically("~", want[i], 1e-12))
		}
	})

	It("returns zero torques for a mismatched state", func() {
		pd := control.NewJointPD([]float64{1, 1, 1}, 1, 1)
		Expect(pd.Compute(dynamo.State{1}, 0)).To(Equal(dynamo.Control{0, 0, 0}))
	})
})
