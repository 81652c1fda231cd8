package metrics

import (
	"math"
	"testing"

	"github.com/fluidx-lab/musclesim/internal/dynamo"
)

func TestContractionTracksPeak(t *testing.T) {
	m := NewContraction(0.30)

	m.Observe(dynamo.State{0.30, 0}, 0, 0)
	m.Observe(dynamo.State{0.24, -1}, 1e6, 1)
	m.Observe(dynamo.State{0.18, 0}, 1e6, 2)
	m.Observe(dynamo.State{0.27, 1}, 0, 3)

	if got := m.Value(); math.Abs(got-0.4) > 1e-12 {
		t.Errorf("Value() = %g, want 0.4", got)
	}
}

func TestContractionIgnoresStretch(t *testing.T) {
	m := NewContraction(0.30)
	m.Observe(dynamo.State{0.33, 0}, 0, 0)
	if got := m.Value(); got != 0 {
		t.Errorf("Value() after stretch only = %g, want 0", got)
	}
}

func TestPeakVelocity(t *testing.T) {
	m := NewPeakVelocity()

	m.Observe(dynamo.State{0.30, 0.2}, 0, 0)
	m.Observe(dynamo.State{0.29, -0.8}, 0, 1)
	m.Observe(dynamo.State{0.28, 0.5}, 0, 2)

	if got := m.Value(); math.Abs(got-0.8) > 1e-12 {
		t.Errorf("Value() = %g, want 0.8 (absolute)", got)
	}
}

func TestPressureDuty(t *testing.T) {
	m := NewPressureDuty()

	for i := 0; i < 10; i++ {
		p := 0.0
		if i < 3 {
			p = 1e6
		}
		m.Observe(dynamo.State{0.3, 0}, p, float64(i))
	}

	if got := m.Value(); math.Abs(got-0.3) > 1e-12 {
		t.Errorf("Value() = %g, want 0.3", got)
	}
}

func TestReset(t *testing.T) {
	tests := []struct {
		name string
		m    dynamo.Metric
	}{
		{"contraction", NewContraction(0.30)},
		{"velocity", NewPeakVelocity()},
		{"duty", NewPressureDuty()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.m.Observe(dynamo.State{0.18, -2}, 1e6, 0)
			if tt.m.Value() == 0 {
				t.Fatal("expected non-zero value before reset")
			}
			tt.m.Reset()
			if tt.m.Value() != 0 {
				t.Errorf("Value() after Reset = %g, want 0", tt.m.Value())
			}
		})
	}
}

func TestEmptyValues(t *testing.T) {
	if NewContraction(0.3).Value() != 0 {
		t.Error("contraction with no samples should be 0")
	}
	if NewPeakVelocity().Value() != 0 {
		t.Error("peak velocity with no samples should be 0")
	}
	if NewPressureDuty().Value() != 0 {
		t.Error("duty with no samples should be 0")
	}
}
