package integrators

import (
	"math"
	"testing"

	"github.com/fluidx-lab/musclesim/internal/dynamo"
)

func TestLeapfrogAccuracy(t *testing.T) {
	sys := &harmonic{}
	integ := NewLeapfrog()

	x := dynamo.State{1.0, 0.0}
	dt := 0.01
	steps := 100

	for i := 0; i < steps; i++ {
		x = integ.Step(sys, x, 0, float64(i)*dt, dt)
	}

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(x[0]-expectedX) > 1e-3 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], expectedX)
	}
	if math.Abs(x[1]-expectedV) > 1e-3 {
		t.Errorf("velocity error too large: got %.6f, expected %.6f", x[1], expectedV)
	}
}

func TestLeapfrogConstantPressure(t *testing.T) {
	sys := &pushed{}
	integ := NewLeapfrog()

	x := dynamo.State{0.0, 0.0}
	dt := 0.001
	p := 2.0

	for i := 0; i < 1000; i++ {
		x = integ.Step(sys, x, p, float64(i)*dt, dt)
	}

	// kick-drift-kick is exact for constant acceleration
	if math.Abs(x[0]-1.0) > 1e-9 {
		t.Errorf("position = %.12f, expected 1", x[0])
	}
	if math.Abs(x[1]-2.0) > 1e-9 {
		t.Errorf("velocity = %.12f, expected 2", x[1])
	}
}
