package muscle

import "math"

// SquareWave is the periodic pressure drive: Amplitude for the first
// PulseWidth seconds of every Period, zero for the rest. The pulse is
// on at t=0 and the leading edge is inclusive, the trailing edge
// exclusive.
type SquareWave struct {
	Amplitude  float64 // Pa
	PulseWidth float64 // s
	Period     float64 // s
}

// Pressure implements dynamo.Forcing.
func (w SquareWave) Pressure(t float64) float64 {
	if math.Mod(t, w.Period) < w.PulseWidth {
		return w.Amplitude
	}
	return 0
}
