package analysis

import (
	"math"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// Spectrum is a one-sided power spectrum of a uniformly sampled trace.
// Freqs[k] is in Hz, Power[k] is unnormalized spectral power.
type Spectrum struct {
	Freqs []float64
	Power []float64
}

// PowerSpectrum computes the one-sided power spectrum of a trace
// sampled every dt seconds. The mean is removed and a Hann window
// applied so the drive line and the ring-down line stand out against
// leakage; the input is zero-padded to the next power of two.
func PowerSpectrum(trace []float64, dt float64) *Spectrum {
	if len(trace) < 2 || dt <= 0 {
		return &Spectrum{}
	}

	data := make([]float64, len(trace))
	copy(data, trace)

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))
	for i := range data {
		data[i] -= mean
	}

	window.Apply(data, window.Hann)

	n := 1
	for n < len(data) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, data)

	bins := fft.FFTReal(padded)

	half := n / 2
	s := &Spectrum{
		Freqs: make([]float64, half),
		Power: make([]float64, half),
	}
	df := 1.0 / (float64(n) * dt)
	for k := 0; k < half; k++ {
		s.Freqs[k] = float64(k) * df
		re, im := real(bins[k]), imag(bins[k])
		s.Power[k] = (re*re + im*im) / float64(n)
	}
	return s
}

// Peak returns the frequency and power of the strongest line above DC.
func (s *Spectrum) Peak() (freq, power float64) {
	for k := 1; k < len(s.Power); k++ {
		if s.Power[k] > power {
			power = s.Power[k]
			freq = s.Freqs[k]
		}
	}
	return freq, power
}

// RingFrequency is the damped oscillation frequency in Hz of a
// mass-spring-damper released from offset, zero when overdamped.
func RingFrequency(stiffness, damping, mass float64) float64 {
	if stiffness <= 0 || mass <= 0 {
		return 0
	}
	w0sq := stiffness / mass
	a := damping / (2 * mass)
	d := w0sq - a*a
	if d <= 0 {
		return 0
	}
	return math.Sqrt(d) / (2 * math.Pi)
}
