package integrators

import "github.com/fluidx-lab/musclesim/internal/dynamo"

// SemiImplicitEuler updates velocities from the current derivative and
// then advances positions with the new velocities. For the split layout
// (first half positions, second half velocities) this is symplectic and
// keeps oscillatory systems bounded where explicit Euler spirals out.
type SemiImplicitEuler struct{}

func NewSemiImplicitEuler() *SemiImplicitEuler {
	return &SemiImplicitEuler{}
}

func (e *SemiImplicitEuler) Step(sys dynamo.System, x dynamo.State, p float64, t float64, dt float64) dynamo.State {
	n := len(x)
	half := n / 2
	dx := sys.Derive(x, p, t)

	result := make(dynamo.State, n)
	for i := half; i < n; i++ {
		result[i] = x[i] + dt*dx[i]
	}
	for i := 0; i < half; i++ {
		result[i] = x[i] + dt*result[half+i]
	}
	return result
}
