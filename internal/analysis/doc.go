// Package analysis characterizes recorded linkage trajectories.
//
//   - [PowerSpectrum]: one-sided amplitude spectrum of a sampled series
//   - [DominantFrequency]: the strongest non-DC frequency, in Hz
//   - [WelchPSD]: segment-averaged power spectral density for long runs
//   - [JointPortrait]: (θ, ω) trajectory of one joint from a run
//
// The spectrum is computed with gonum's real FFT, so the series length need
// not be a power of two:
//
//	angles := metrics.Column(res.States, 0)
//	f, err := analysis.DominantFrequency(angles, cfg.Dt)
package analysis
