// Package analysis characterizes recorded muscle trajectories in the
// frequency domain.
//
//   - [PowerSpectrum]: one-sided power spectrum of a sampled trace
//   - [Spectrum.Peak]: strongest spectral line above DC
//   - [RingFrequency]: predicted damped oscillation frequency
//
// The length trace of a pulsed muscle carries two lines: the pulse rate
// of the pressure drive and the ring-down of the mass-spring-damper
// after each release. Both should be visible in the spectrum of a
// healthy run:
//
//	spec := analysis.PowerSpectrum(lengths, dt)
//	f, _ := spec.Peak()
package analysis
