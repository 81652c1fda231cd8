package integrators

import (
	"testing"

	"github.com/fluidx-lab/musclesim/internal/dynamo"
)

// benchActuator is a damped driven oscillator shaped like the muscle
// model: x'' = -k(x-x0) - c*x' - p*a.
type benchActuator struct{}

func (b *benchActuator) StateDim() int { return 2 }

func (b *benchActuator) Derive(x dynamo.State, p float64, t float64) dynamo.State {
	const (
		k  = 1047.2
		c  = 5.0
		x0 = 0.3
		a  = 3.14e-4
		m  = 0.5
	)
	return dynamo.State{x[1], (-k*(x[0]-x0) - c*x[1] - p*a) / m}
}

func BenchmarkSemiImplicitEuler(b *testing.B) {
	integrator := NewSemiImplicitEuler()
	sys := &benchActuator{}
	x := dynamo.State{0.3, 0.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(sys, x, 1e6, 0, 0.001)
	}
}

func BenchmarkRK4(b *testing.B) {
	integrator := NewRK4()
	sys := &benchActuator{}
	x := dynamo.State{0.3, 0.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(sys, x, 1e6, 0, 0.001)
	}
}

func BenchmarkLeapfrog(b *testing.B) {
	integrator := NewLeapfrog()
	sys := &benchActuator{}
	x := dynamo.State{0.3, 0.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(sys, x, 1e6, 0, 0.001)
	}
}
