package dynamo

import (
	"context"
	"fmt"
)

// Simulator advances a System through time with a fixed-step Integrator,
// sampling the Forcing once per step and holding it constant across the
// step. Samples are recorded before each step so a run of N steps yields
// exactly N samples starting at t=0.
type Simulator struct {
	sys        System
	integrator Integrator
	forcing    Forcing
	constraint Constraint
	metrics    []Metric
	observers  []Observer
}

func New(sys System, integrator Integrator, forcing Forcing) *Simulator {
	return &Simulator{
		sys:        sys,
		integrator: integrator,
		forcing:    forcing,
	}
}

// SetConstraint installs a post-step projection, e.g. travel limits.
func (s *Simulator) SetConstraint(c Constraint) {
	s.constraint = c
}

func (s *Simulator) AddMetric(m Metric) {
	s.metrics = append(s.metrics, m)
}

func (s *Simulator) AddObserver(o Observer) {
	s.observers = append(s.observers, o)
}

// Run simulates from x0 for cfg.Duration and returns the recorded
// trajectory. A non-finite state aborts the run with a *SimulationError
// wrapping ErrUnstable; the partial trajectory up to the failing step is
// returned alongside the error.
func (s *Simulator) Run(ctx context.Context, x0 State, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(x0) != s.sys.StateDim() {
		return nil, fmt.Errorf("%w: state has dim %d, system wants %d",
			ErrDimensionMismatch, len(x0), s.sys.StateDim())
	}
	if !x0.IsValid() {
		return nil, ErrInvalidState
	}

	steps := cfg.Steps()
	result := &Result{
		Times:     make([]float64, 0, steps),
		States:    make([]State, 0, steps),
		Pressures: make([]float64, 0, steps),
		Metrics:   make(map[string]float64),
	}
	for _, m := range s.metrics {
		m.Reset()
	}

	x := x0.Clone()
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		// t from the step index rather than accumulation, so pulse
		// edges land where the waveform says they do.
		t := float64(i) * cfg.Dt
		p := s.forcing.Pressure(t)

		result.Times = append(result.Times, t)
		result.States = append(result.States, x.Clone())
		result.Pressures = append(result.Pressures, p)
		for _, m := range s.metrics {
			m.Observe(x, p, t)
		}
		for _, o := range s.observers {
			o.OnStep(x, p, t)
		}

		x = s.integrator.Step(s.sys, x, p, t, cfg.Dt)
		if s.constraint != nil {
			var clamped bool
			x, clamped = s.constraint.Enforce(x)
			if clamped {
				result.ClampCount++
			}
		}
		if !x.IsValid() {
			return result, &SimulationError{
				Step:    i,
				Time:    t,
				State:   x.Clone(),
				Wrapped: ErrUnstable,
			}
		}
		result.StepsTaken++
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}
