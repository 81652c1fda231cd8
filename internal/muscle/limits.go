package muscle

import "github.com/fluidx-lab/musclesim/internal/dynamo"

// Stroke clamps the length into [Min, Max] after each integration step
// and zeroes the velocity component pointing into the violated bound.
// A zero Min or Max disables that side. The LengthFloor always holds,
// so a fully unbounded muscle can still not invert through zero length.
type Stroke struct {
	Min float64 // m
	Max float64 // m
}

// Enforce implements dynamo.Constraint.
func (s Stroke) Enforce(x dynamo.State) (dynamo.State, bool) {
	length, velocity := x[0], x[1]
	clamped := false

	floor := s.Min
	if floor < LengthFloor {
		floor = LengthFloor
	}
	if length < floor {
		length = floor
		if velocity < 0 {
			velocity = 0
		}
		clamped = true
	}
	if s.Max > 0 && length > s.Max {
		length = s.Max
		if velocity > 0 {
			velocity = 0
		}
		clamped = true
	}

	if !clamped {
		return x, false
	}
	return dynamo.State{length, velocity}, true
}
