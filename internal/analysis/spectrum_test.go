package analysis

import (
	"math"
	"testing"
)

func TestPowerSpectrumFindsSine(t *testing.T) {
	const (
		dt   = 0.001
		n    = 4096
		freq = 7.0
	)
	trace := make([]float64, n)
	for i := range trace {
		trace[i] = 0.3 + 0.01*math.Sin(2*math.Pi*freq*float64(i)*dt)
	}

	spec := PowerSpectrum(trace, dt)
	if len(spec.Freqs) != n/2 {
		t.Fatalf("spectrum has %d bins, want %d", len(spec.Freqs), n/2)
	}

	got, power := spec.Peak()
	df := 1.0 / (float64(n) * dt)
	if math.Abs(got-freq) > df {
		t.Errorf("peak at %.3f Hz, want %.3f +- %.3f", got, freq, df)
	}
	if power <= 0 {
		t.Errorf("peak power = %v, want > 0", power)
	}
}

func TestPowerSpectrumRemovesMean(t *testing.T) {
	trace := make([]float64, 256)
	for i := range trace {
		trace[i] = 0.3
	}

	spec := PowerSpectrum(trace, 0.001)
	if spec.Power[0] > 1e-18 {
		t.Errorf("DC bin = %v for a constant trace, want ~0", spec.Power[0])
	}
	if f, p := spec.Peak(); p > 1e-18 {
		t.Errorf("constant trace has a peak at %.2f Hz with power %v", f, p)
	}
}

func TestPowerSpectrumPadsToPowerOfTwo(t *testing.T) {
	trace := make([]float64, 1000)
	for i := range trace {
		trace[i] = math.Sin(float64(i) * 0.1)
	}

	spec := PowerSpectrum(trace, 0.01)
	// 1000 samples pad to 1024, half-spectrum is 512 bins.
	if len(spec.Power) != 512 {
		t.Errorf("spectrum has %d bins, want 512", len(spec.Power))
	}
}

func TestPowerSpectrumDegenerate(t *testing.T) {
	if s := PowerSpectrum(nil, 0.001); len(s.Power) != 0 {
		t.Error("nil trace should yield an empty spectrum")
	}
	if s := PowerSpectrum([]float64{1, 2, 3}, 0); len(s.Power) != 0 {
		t.Error("zero dt should yield an empty spectrum")
	}
	if f, p := (&Spectrum{}).Peak(); f != 0 || p != 0 {
		t.Error("empty spectrum should have a zero peak")
	}
}

func TestRingFrequency(t *testing.T) {
	tests := []struct {
		name      string
		stiffness float64
		damping   float64
		mass      float64
		want      float64
	}{
		{"underdamped", 1047.2, 5.0, 0.5, 7.240},
		{"undamped", 1047.2, 0, 0.5, 7.284},
		{"overdamped", 1047.2, 500.0, 0.5, 0},
		{"invalid mass", 1047.2, 5.0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RingFrequency(tt.stiffness, tt.damping, tt.mass)
			if math.Abs(got-tt.want) > 1e-3 {
				t.Errorf("RingFrequency = %.4f, want %.4f", got, tt.want)
			}
		})
	}
}
