package analysis_test

import (
	"math"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/linksim/internal/analysis"
	"github.com/san-kum/linksim/internal/dynamo"
)

func sine(freq, dt float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 3 + math.Sin(2*math.Pi*freq*float64(i)*dt)
	}
	return out
}

var _ = Describe("PowerSpectrum", func() {
	It("finds a pure tone on a bin", func() {
		// 1000 samples at 100 Hz give 0.1 Hz bins; 2 Hz is bin 20.
		f, err := analysis.DominantFrequency(sine(2, 0.01, 1000), 0.01)
		Expect(err).NotTo(HaveOccurred())
		Expect(f).To(BeNumerically("~", 2, 1e-9))
	})

	It("handles lengths that are not powers of two", func() {
		s, err := analysis.PowerSpectrum(sine(5, 0.01, 300), 0.01)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Freqs).To(HaveLen(151))
		Expect(s.Amplitude).To(HaveLen(151))
		Expect(s.Amplitude[0]).To(BeNumerically("~", 0, 1e-9))
		Expect(s.Amplitude[15]).To(BeNumerically("~", 0.5, 1e-9))
	})

	It("rejects short series and bad intervals", func() {
		_, err := analysis.PowerSpectrum([]float64{1}, 0.01)
		Expect(err).To(MatchError(analysis.ErrShortSeries))
		_, err = analysis.PowerSpectrum([]float64{1, 2}, 0)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("WelchPSD", func() {
	It("peaks within one bin of the tone", func() {
		s, err := analysis.WelchPSD(sine(2, 0.01, 2048), 0.01, 256)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Freqs).To(HaveLen(129))
		Expect(s.Peak()).To(BeNumerically("~", 2, 100.0/256))
	})

	It("uses the default segment when none is given", func() {
		s, err := analysis.WelchPSD(sine(1, 0.01, 1024), 0.01, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Freqs).To(HaveLen(analysis.DefaultSegment/2 + 1))
	})

	It("rejects series shorter than a segment", func() {
		_, err := analysis.WelchPSD(sine(1, 0.01, 100), 0.01, 256)
		Expect(err).To(MatchError(analysis.ErrShortSeries))
		_, err = analysis.WelchPSD(sine(1, 0.01, 300), -1, 256)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("JointPortrait", func() {
	states := []dynamo.State{
		{0, 1, 2, 10, 11, 12},
		{1, 2, 3, 20, 21, 22},
	}

	It("pairs each angle with its rate", func() {
		p, err := analysis.JointPortrait(states, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Points).To(Equal([]analysis.Point{{X: 1, Y: 11}, {X: 2, Y: 21}}))
	})

	It("rejects joints outside the chain", func() {
		_, err := analysis.JointPortrait(states, 3)
		Expect(err).To(HaveOccurred())
		_, err = analysis.JointPortrait(nil, 0)
		Expect(err).To(HaveOccurred())
	})

	It("renders onto a grid of the requested size", func() {
		p, err := analysis.JointPortrait(states, 0)
		Expect(err).NotTo(HaveOccurred())
		lines := strings.Split(strings.TrimSuffix(p.ASCII(20, 5), "\n"), "\n")
		Expect(lines).To(HaveLen(5))
		Expect(strings.Count(p.ASCII(20, 5), "•")).To(Equal(2))
	})
})
