package analysis

import (
	"fmt"

	"github.com/mjibson/go-dsp/spectral"
	"github.com/mjibson/go-dsp/window"
)

// DefaultSegment is the Welch segment length in samples.
const DefaultSegment = 256

// WelchPSD estimates the one-sided power spectral density of series by
// averaging Hann-windowed segments of the given length with half overlap.
// Long runs get a smoother estimate than PowerSpectrum at the cost of
// frequency resolution.
func WelchPSD(series []float64, dt float64, segment int) (Spectrum, error) {
	if segment <= 0 {
		segment = DefaultSegment
	}
	if len(series) < segment {
		return Spectrum{}, fmt.Errorf("%w: %d samples, segment %d", ErrShortSeries, len(series), segment)
	}
	if dt <= 0 {
		return Spectrum{}, fmt.Errorf("welch: dt must be positive, got %f", dt)
	}

	centered, err := center(series)
	if err != nil {
		return Spectrum{}, err
	}

	pxx, freqs := spectral.Pwelch(centered, 1/dt, &spectral.PwelchOptions{
		NFFT:     segment,
		Noverlap: segment / 2,
		Window:   window.Hann,
	})
	return Spectrum{Freqs: freqs, Amplitude: pxx}, nil
}

// Peak returns the frequency of the largest non-DC bin of s.
func (s Spectrum) Peak() float64 {
	if len(s.Amplitude) < 2 {
		return 0
	}
	best := 1
	for i := 2; i < len(s.Amplitude); i++ {
		if s.Amplitude[i] > s.Amplitude[best] {
			best = i
		}
	}
	return s.Freqs[best]
}
