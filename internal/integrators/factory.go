package integrators

import (
	"fmt"

	"github.com/fluidx-lab/musclesim/internal/dynamo"
)

// New returns the integrator registered under name. Each call returns a
// fresh instance; integrators with scratch buffers are not safe to share.
func New(name string) (dynamo.Integrator, error) {
	switch name {
	case "euler":
		return NewSemiImplicitEuler(), nil
	case "rk4":
		return NewRK4(), nil
	case "leapfrog":
		return NewLeapfrog(), nil
	default:
		return nil, fmt.Errorf("unknown integrator %q (have: %v)", name, Names())
	}
}

func Names() []string {
	return []string{"euler", "rk4", "leapfrog"}
}
