package muscle

import (
	"testing"

	"github.com/fluidx-lab/musclesim/internal/dynamo"
)

func TestStrokeEnforce(t *testing.T) {
	s := Stroke{Min: 0.18, Max: 0.33}

	tests := []struct {
		name        string
		in          dynamo.State
		want        dynamo.State
		wantClamped bool
	}{
		{"inside band", dynamo.State{0.30, -0.5}, dynamo.State{0.30, -0.5}, false},
		{"below min still contracting", dynamo.State{0.15, -2.0}, dynamo.State{0.18, 0}, true},
		{"below min already recovering", dynamo.State{0.15, 1.5}, dynamo.State{0.18, 1.5}, true},
		{"above max still extending", dynamo.State{0.40, 3.0}, dynamo.State{0.33, 0}, true},
		{"above max already returning", dynamo.State{0.40, -1.0}, dynamo.State{0.33, -1.0}, true},
		{"exactly at min", dynamo.State{0.18, -1.0}, dynamo.State{0.18, -1.0}, false},
		{"exactly at max", dynamo.State{0.33, 1.0}, dynamo.State{0.33, 1.0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, clamped := s.Enforce(tt.in)
			if clamped != tt.wantClamped {
				t.Fatalf("clamped = %v, want %v", clamped, tt.wantClamped)
			}
			if got[0] != tt.want[0] || got[1] != tt.want[1] {
				t.Errorf("Enforce(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestStrokeFloorAlwaysHolds(t *testing.T) {
	// No band configured: the inversion floor still applies.
	s := Stroke{}

	got, clamped := s.Enforce(dynamo.State{-0.05, -10})
	if !clamped {
		t.Fatal("negative length must clamp")
	}
	if got[0] != LengthFloor {
		t.Errorf("length = %g, want floor %g", got[0], LengthFloor)
	}
	if got[1] != 0 {
		t.Errorf("inward velocity = %g, want zeroed", got[1])
	}

	// Unclamped far from the floor.
	if _, clamped := s.Enforce(dynamo.State{1.5, 0}); clamped {
		t.Error("no band and length above floor should not clamp")
	}
}

func TestStrokeDoesNotMutateInput(t *testing.T) {
	s := Stroke{Min: 0.18, Max: 0.33}
	in := dynamo.State{0.10, -1.0}
	s.Enforce(in)
	if in[0] != 0.10 || in[1] != -1.0 {
		t.Errorf("input mutated: %v", in)
	}
}
