package metrics

import (
	"math"

	"github.com/fluidx-lab/musclesim/internal/dynamo"
)

// PeakVelocity tracks the largest absolute end velocity seen in a run.
type PeakVelocity struct {
	name string
	max  float64
}

func NewPeakVelocity() *PeakVelocity {
	return &PeakVelocity{
		name: "velocity_peak",
	}
}

func (v *PeakVelocity) Name() string { return v.name }

func (v *PeakVelocity) Observe(x dynamo.State, p float64, t float64) {
	if len(x) < 2 {
		return
	}
	if speed := math.Abs(x[1]); speed > v.max {
		v.max = speed
	}
}

func (v *PeakVelocity) Value() float64 {
	return v.max
}

func (v *PeakVelocity) Reset() {
	v.max = 0
}
