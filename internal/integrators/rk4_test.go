package integrators

import (
	"math"
	"testing"

	"github.com/fluidx-lab/musclesim/internal/dynamo"
)

// harmonic is a unit oscillator, x'' = -x. The pressure input is ignored.
type harmonic struct{}

func (h *harmonic) Derive(x dynamo.State, p float64, t float64) dynamo.State {
	return dynamo.State{x[1], -x[0]}
}

func (h *harmonic) StateDim() int { return 2 }

// pushed accelerates at the pressure value, x'' = p.
type pushed struct{}

func (s *pushed) Derive(x dynamo.State, p float64, t float64) dynamo.State {
	return dynamo.State{x[1], p}
}

func (s *pushed) StateDim() int { return 2 }

func TestRK4Accuracy(t *testing.T) {
	sys := &harmonic{}
	integ := NewRK4()

	x := dynamo.State{1.0, 0.0}
	dt := 0.01
	steps := 100

	for i := 0; i < steps; i++ {
		x = integ.Step(sys, x, 0, float64(i)*dt, dt)
	}

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(x[0]-expectedX) > 1e-4 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], expectedX)
	}
	if math.Abs(x[1]-expectedV) > 1e-4 {
		t.Errorf("velocity error too large: got %.6f, expected %.6f", x[1], expectedV)
	}
}

func TestRK4ConstantPressure(t *testing.T) {
	sys := &pushed{}
	integ := NewRK4()

	x := dynamo.State{0.0, 0.0}
	dt := 0.001
	p := 2.0

	for i := 0; i < 1000; i++ {
		x = integ.Step(sys, x, p, float64(i)*dt, dt)
	}

	// x(1) = p/2, v(1) = p; polynomial dynamics, RK4 is exact.
	if math.Abs(x[0]-1.0) > 1e-9 {
		t.Errorf("position = %.12f, expected 1", x[0])
	}
	if math.Abs(x[1]-2.0) > 1e-9 {
		t.Errorf("velocity = %.12f, expected 2", x[1])
	}
}

func TestRK4DoesNotMutateInput(t *testing.T) {
	sys := &harmonic{}
	integ := NewRK4()

	x := dynamo.State{1.0, 0.5}
	integ.Step(sys, x, 0, 0, 0.01)

	if x[0] != 1.0 || x[1] != 0.5 {
		t.Errorf("input state mutated: %v", x)
	}
}
