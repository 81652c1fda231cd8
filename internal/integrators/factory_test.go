package integrators

import "testing"

func TestNewKnownNames(t *testing.T) {
	for _, name := range Names() {
		integ, err := New(name)
		if err != nil {
			t.Errorf("New(%q) error = %v", name, err)
			continue
		}
		if integ == nil {
			t.Errorf("New(%q) returned nil integrator", name)
		}
	}
}

func TestNewUnknownName(t *testing.T) {
	if _, err := New("dormand-prince"); err == nil {
		t.Error("New() with unknown name expected an error")
	}
}

func TestNewReturnsFreshInstances(t *testing.T) {
	a, _ := New("rk4")
	b, _ := New("rk4")
	if a == b {
		t.Error("New() returned a shared instance; scratch buffers must not be shared")
	}
}
