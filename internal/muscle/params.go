package muscle

import (
	"errors"
	"fmt"
	"math"
)

// Reference actuator: a 30 cm silicone tube, 1 cm bore, driven by 1 MPa
// pulses of 0.5 s every 5 s against a 10 N hanging load.
const (
	DefaultRestLength     = 0.30  // m
	DefaultRadius         = 0.010 // m
	DefaultElasticModulus = 1.0e6 // Pa
	DefaultDamping        = 5.0   // N·s/m
	DefaultMass           = 0.5   // kg
	DefaultLoad           = 10.0  // N
	DefaultPressureAmp    = 1.0e6 // Pa
	DefaultPulseWidth     = 0.5   // s
	DefaultPeriod         = 5.0   // s

	DefaultMinStroke = 0.6 // fraction of rest length
	DefaultMaxStroke = 1.1 // fraction of rest length

	// LengthFloor is the hard lower bound on length. The effective area
	// V0/L diverges as L -> 0; the floor keeps the model defined even
	// with travel limits disabled.
	LengthFloor = 1e-6 // m
)

// ErrNonPhysical flags a parameter set the model cannot represent.
var ErrNonPhysical = errors.New("muscle: non-physical parameter")

// Params describes one actuator. Values are set once before a run and
// never mutated while simulating.
type Params struct {
	RestLength     float64 // L0 in m
	Radius         float64 // unpressurized bore radius r0 in m
	ElasticModulus float64 // E in Pa
	Damping        float64 // c in N·s/m
	Mass           float64 // lumped moving mass in kg
	Load           float64 // tensile load on the free end in N
	PressureAmp    float64 // pulse amplitude in Pa
	PulseWidth     float64 // pulse on-time in s
	Period         float64 // pulse repetition period in s

	// Travel limits as fractions of RestLength. Zero disables the band;
	// LengthFloor still applies.
	MinStroke float64
	MaxStroke float64
}

func DefaultParams() Params {
	return Params{
		RestLength:     DefaultRestLength,
		Radius:         DefaultRadius,
		ElasticModulus: DefaultElasticModulus,
		Damping:        DefaultDamping,
		Mass:           DefaultMass,
		Load:           DefaultLoad,
		PressureAmp:    DefaultPressureAmp,
		PulseWidth:     DefaultPulseWidth,
		Period:         DefaultPeriod,
		MinStroke:      DefaultMinStroke,
		MaxStroke:      DefaultMaxStroke,
	}
}

// Area0 returns the unpressurized cross-section A0 = pi*r0².
func (p Params) Area0() float64 {
	return math.Pi * p.Radius * p.Radius
}

// Volume0 returns the conserved enclosed volume V0 = A0*L0.
func (p Params) Volume0() float64 {
	return p.Area0() * p.RestLength
}

// Stiffness returns the Hookean constant k = E*A0/L0.
func (p Params) Stiffness() float64 {
	return p.ElasticModulus * p.Area0() / p.RestLength
}

// EffectiveArea returns the pressurized cross-section at length l under
// volume conservation, A(l) = V0/l.
func (p Params) EffectiveArea(l float64) float64 {
	return p.Volume0() / l
}

func (p Params) Validate() error {
	for _, v := range []float64{
		p.RestLength, p.Radius, p.ElasticModulus, p.Damping, p.Mass,
		p.Load, p.PressureAmp, p.PulseWidth, p.Period, p.MinStroke, p.MaxStroke,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite parameter value", ErrNonPhysical)
		}
	}
	if p.RestLength <= 0 {
		return fmt.Errorf("%w: rest length %g", ErrNonPhysical, p.RestLength)
	}
	if p.Radius <= 0 {
		return fmt.Errorf("%w: radius %g", ErrNonPhysical, p.Radius)
	}
	if p.ElasticModulus <= 0 {
		return fmt.Errorf("%w: elastic modulus %g", ErrNonPhysical, p.ElasticModulus)
	}
	if p.Damping < 0 {
		return fmt.Errorf("%w: damping %g", ErrNonPhysical, p.Damping)
	}
	if p.Mass <= 0 {
		return fmt.Errorf("%w: mass %g", ErrNonPhysical, p.Mass)
	}
	if p.PressureAmp < 0 {
		return fmt.Errorf("%w: pressure amplitude %g", ErrNonPhysical, p.PressureAmp)
	}
	if p.PulseWidth <= 0 {
		return fmt.Errorf("%w: pulse width %g", ErrNonPhysical, p.PulseWidth)
	}
	if p.Period <= 0 {
		return fmt.Errorf("%w: period %g", ErrNonPhysical, p.Period)
	}
	if p.PulseWidth > p.Period {
		return fmt.Errorf("%w: pulse width %g exceeds period %g", ErrNonPhysical, p.PulseWidth, p.Period)
	}
	if p.MinStroke < 0 || p.MaxStroke < 0 {
		return fmt.Errorf("%w: negative stroke fraction", ErrNonPhysical)
	}
	if p.MinStroke > 0 && p.MaxStroke > 0 && p.MinStroke >= p.MaxStroke {
		return fmt.Errorf("%w: min stroke %g not below max stroke %g", ErrNonPhysical, p.MinStroke, p.MaxStroke)
	}
	return nil
}
