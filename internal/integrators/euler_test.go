package integrators

import (
	"math"
	"testing"

	"github.com/fluidx-lab/musclesim/internal/dynamo"
)

func TestSemiImplicitEulerAccuracy(t *testing.T) {
	sys := &harmonic{}
	integ := NewSemiImplicitEuler()

	x := dynamo.State{1.0, 0.0}
	dt := 0.01
	steps := 100

	for i := 0; i < steps; i++ {
		x = integ.Step(sys, x, 0, float64(i)*dt, dt)
	}

	expectedX := math.Cos(float64(steps) * dt)
	if math.Abs(x[0]-expectedX) > 0.02 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], expectedX)
	}
}

func TestSemiImplicitEulerEnergyBounded(t *testing.T) {
	// Explicit Euler gains energy on an oscillator without bound; the
	// symplectic update must stay in a narrow band over many periods.
	sys := &harmonic{}
	integ := NewSemiImplicitEuler()

	x := dynamo.State{1.0, 0.0}
	dt := 0.01
	steps := 62832 // ~100 periods

	maxEnergy := 0.0
	for i := 0; i < steps; i++ {
		x = integ.Step(sys, x, 0, float64(i)*dt, dt)
		e := 0.5 * (x[0]*x[0] + x[1]*x[1])
		if e > maxEnergy {
			maxEnergy = e
		}
	}

	if maxEnergy > 0.55 {
		t.Errorf("energy grew to %.4f, expected to stay near 0.5", maxEnergy)
	}
}

func TestSemiImplicitEulerConstantPressure(t *testing.T) {
	sys := &pushed{}
	integ := NewSemiImplicitEuler()

	x := dynamo.State{0.0, 0.0}
	dt := 0.001
	p := 2.0

	for i := 0; i < 1000; i++ {
		x = integ.Step(sys, x, p, float64(i)*dt, dt)
	}

	// velocity update is exact for constant acceleration
	if math.Abs(x[1]-2.0) > 1e-9 {
		t.Errorf("velocity = %.12f, expected 2", x[1])
	}
	if math.Abs(x[0]-1.0) > 0.01 {
		t.Errorf("position = %.6f, expected ~1", x[0])
	}
}
