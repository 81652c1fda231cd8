// Package muscle models a hydraulic artificial muscle as a lumped
// parameter system: an elastic tube that shortens and bulges when
// pressurized, re-extended between pulses by a constant tensile load.
//
// The state layout is State{length, velocity} in SI units, with positive
// velocity meaning elongation. Four axial forces act on the free end:
//
//   - elastic restoring force, -k*(L-L0) with k = E*A0/L0
//   - viscous damping, -c*v
//   - hydraulic contraction, -P*A(L)
//   - the external load, +F (tensile)
//
// The wall is inextensible in the hoop sense, so the enclosed volume is
// conserved: the cross-section at length L is A(L) = V0/L and the radius
// follows r(L) = r0*sqrt(L0/L). Shorter means fatter, exactly.
//
// [Muscle] implements dynamo.System; [SquareWave] implements
// dynamo.Forcing; [Stroke] implements dynamo.Constraint.
package muscle
