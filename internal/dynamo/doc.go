// Package dynamo provides core simulation primitives for forced
// dynamical systems.
//
// The package defines the fundamental interfaces and types for numerical
// simulation of ordinary differential equations (ODEs):
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, p, t)) driven by
//     a scalar pressure input
//   - [Forcing]: the pressure input as a function of time
//   - [Integrator]: fixed-step numerical integrator interface
//   - [Constraint]: post-step state projection (travel limits)
//   - [Simulator]: orchestrates simulation runs
//
// # Example
//
//	m, _ := muscle.New(muscle.DefaultParams())
//	integ := integrators.NewSemiImplicitEuler()
//	sim := dynamo.New(m, integ, m.Waveform())
//	result, _ := sim.Run(ctx, m.InitialState(), cfg)
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe; run each on its own goroutine
// with its own Simulator value.
package dynamo
