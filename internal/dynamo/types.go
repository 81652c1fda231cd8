package dynamo

import (
	"fmt"
	"math"
)

// State is a simulation state vector. The hydraulic muscle model uses
// dimension 2 with the layout State{length, velocity}, both in SI units.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// System is an ODE dX/dt = f(X, p, t) driven by a scalar pressure input p
// in pascals.
type System interface {
	Derive(x State, p float64, t float64) State
	StateDim() int
}

// Forcing supplies the exogenous pressure input as a function of time.
// Implementations must be pure: the same t always yields the same pressure.
type Forcing interface {
	Pressure(t float64) float64
}

// Integrator advances a system by one fixed step of size dt. The pressure
// p is held constant across the step.
type Integrator interface {
	Step(sys System, x State, p float64, t float64, dt float64) State
}

// Constraint projects a state back into its admissible region after an
// integration step. The boolean reports whether the state was modified.
type Constraint interface {
	Enforce(x State) (State, bool)
}

// Metric observes every recorded sample and reduces the trajectory to a
// single summary value.
type Metric interface {
	Name() string
	Observe(x State, p float64, t float64)
	Value() float64
	Reset()
}

// Observer is notified of every recorded sample.
type Observer interface {
	OnStep(x State, p float64, t float64)
}

// Configurable exposes model parameters for inspection.
type Configurable interface {
	GetParams() map[string]float64
}

// Energetic reports the instantaneous mechanical energy of a state.
type Energetic interface {
	Energy(x State) float64
}

// Config holds the time discretization of a run.
type Config struct {
	Dt       float64
	Duration float64
}

func DefaultConfig() Config {
	return Config{
		Dt:       0.001,
		Duration: 25.0,
	}
}

// Steps returns the number of fixed steps a run takes. Duration/Dt is
// rounded so that dt values like 1e-3 do not lose a step to float
// truncation.
func (c Config) Steps() int {
	return int(math.Round(c.Duration / c.Dt))
}

func (c Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %g", c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %g", c.Duration)
	}
	if c.Steps() < 1 {
		return fmt.Errorf("duration %g too short for dt %g", c.Duration, c.Dt)
	}
	return nil
}

// Result is a completed (or aborted) trajectory. Times, States and
// Pressures are parallel slices with one entry per recorded sample;
// samples are recorded before each step, so the initial condition is
// always the first entry.
type Result struct {
	Times      []float64
	States     []State
	Pressures  []float64
	Metrics    map[string]float64
	StepsTaken int
	ClampCount int
}

// Samples returns the number of recorded samples.
func (r *Result) Samples() int {
	return len(r.Times)
}

// Component extracts one state component as a flat series, e.g.
// Component(0) is the length trace for the muscle layout.
func (r *Result) Component(i int) []float64 {
	out := make([]float64, len(r.States))
	for j, x := range r.States {
		out[j] = x[i]
	}
	return out
}
