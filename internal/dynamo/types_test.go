package dynamo

import (
	"math"
	"testing"
)

func TestStateClone(t *testing.T) {
	s := State{1.0, 2.0, 3.0}
	c := s.Clone()

	if len(c) != len(s) {
		t.Fatalf("clone length = %d, want %d", len(c), len(s))
	}
	c[0] = 99.0
	if s[0] != 1.0 {
		t.Error("mutating clone changed the original")
	}
}

func TestStateIsValid(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  bool
	}{
		{"finite", State{0.3, -0.05}, true},
		{"empty", State{}, true},
		{"nan", State{0.3, math.NaN()}, false},
		{"positive inf", State{math.Inf(1), 0}, false},
		{"negative inf", State{0, math.Inf(-1)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStateNorm(t *testing.T) {
	s := State{3.0, 4.0}
	if got := s.Norm(); math.Abs(got-5.0) > 1e-12 {
		t.Errorf("Norm() = %g, want 5", got)
	}
}

func TestConfigSteps(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want int
	}{
		// 10/0.001 is not exact in binary; truncation would lose a step.
		{"dt 1e-3 over 10s", Config{Dt: 0.001, Duration: 10.0}, 10000},
		{"dt 1e-3 over 25s", Config{Dt: 0.001, Duration: 25.0}, 25000},
		{"dt 0.1 over 1s", Config{Dt: 0.1, Duration: 1.0}, 10},
		{"dt equals duration", Config{Dt: 0.5, Duration: 0.5}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.Steps(); got != tt.want {
				t.Errorf("Steps() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"default", DefaultConfig(), false},
		{"zero dt", Config{Dt: 0, Duration: 1}, true},
		{"negative dt", Config{Dt: -0.01, Duration: 1}, true},
		{"zero duration", Config{Dt: 0.01, Duration: 0}, true},
		{"duration below half step", Config{Dt: 1.0, Duration: 0.4}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestResultComponent(t *testing.T) {
	r := &Result{
		States: []State{{0.30, 0.0}, {0.29, -0.1}, {0.28, -0.2}},
	}
	lengths := r.Component(0)
	want := []float64{0.30, 0.29, 0.28}
	for i := range want {
		if lengths[i] != want[i] {
			t.Errorf("Component(0)[%d] = %g, want %g", i, lengths[i], want[i])
		}
	}
	if r.Samples() != 0 {
		t.Errorf("Samples() = %d, want 0 (no times recorded)", r.Samples())
	}
}
