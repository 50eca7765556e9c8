package analysis

import (
	"errors"
	"fmt"
	"math/cmplx"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/dsp/fourier"
)

var ErrShortSeries = errors.New("series too short for spectrum")

// Spectrum is a one-sided spectrum. Amplitude holds |X_k|/n for
// PowerSpectrum and power density for WelchPSD. Freqs are in Hz when the
// sample interval is in seconds.
type Spectrum struct {
	Freqs     []float64
	Amplitude []float64
}

// PowerSpectrum returns |X_k|/n for k = 0..n/2 of the mean-removed
// series sampled every dt.
func PowerSpectrum(series []float64, dt float64) (Spectrum, error) {
	n := len(series)
	if n < 2 {
		return Spectrum{}, fmt.Errorf("%w: %d samples", ErrShortSeries, n)
	}
	if dt <= 0 {
		return Spectrum{}, fmt.Errorf("power spectrum: dt must be positive, got %f", dt)
	}

	centered, err := center(series)
	if err != nil {
		return Spectrum{}, err
	}

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, centered)

	s := Spectrum{
		Freqs:     make([]float64, len(coeffs)),
		Amplitude: make([]float64, len(coeffs)),
	}
	for i, c := range coeffs {
		s.Freqs[i] = fft.Freq(i) / dt
		s.Amplitude[i] = cmplx.Abs(c) / float64(n)
	}
	return s, nil
}

// center removes the series mean so the DC bin does not swamp the rest.
func center(series []float64) ([]float64, error) {
	mean, err := stats.Mean(series)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(series))
	for i, v := range series {
		out[i] = v - mean
	}
	return out, nil
}

// DominantFrequency returns the frequency of the largest non-DC bin.
func DominantFrequency(series []float64, dt float64) (float64, error) {
	s, err := PowerSpectrum(series, dt)
	if err != nil {
		return 0, err
	}
	return s.Peak(), nil
}
