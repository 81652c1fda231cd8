package muscle

import "github.com/fluidx-lab/musclesim/internal/dynamo"

// Muscle is the lumped model of one actuator: a point mass at the free
// end moved by the sum of elastic, damping, hydraulic and load forces.
// It implements dynamo.System with the state layout State{length, velocity}.
type Muscle struct {
	p Params
}

func New(p Params) (*Muscle, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Muscle{p: p}, nil
}

func (m *Muscle) Params() Params { return m.p }

func (m *Muscle) StateDim() int { return 2 }

// NetForce sums the axial forces at the given state. Positive is toward
// elongation: pressure pulls the end in through the bulging wall, the
// hanging load pulls it back out.
func (m *Muscle) NetForce(length, velocity, pressure float64) float64 {
	elastic := -m.p.Stiffness() * (length - m.p.RestLength)
	damping := -m.p.Damping * velocity
	hydraulic := -pressure * m.p.EffectiveArea(length)
	return elastic + damping + hydraulic + m.p.Load
}

// Derive implements dynamo.System.
func (m *Muscle) Derive(x dynamo.State, p float64, t float64) dynamo.State {
	length, velocity := x[0], x[1]
	return dynamo.State{velocity, m.NetForce(length, velocity, p) / m.p.Mass}
}

// InitialState is the muscle at rest length with zero velocity.
func (m *Muscle) InitialState() dynamo.State {
	return dynamo.State{m.p.RestLength, 0}
}

// Waveform returns the pressure drive built from the parameters.
func (m *Muscle) Waveform() SquareWave {
	return SquareWave{
		Amplitude:  m.p.PressureAmp,
		PulseWidth: m.p.PulseWidth,
		Period:     m.p.Period,
	}
}

// Stroke returns the travel limits built from the parameters.
func (m *Muscle) Stroke() Stroke {
	s := Stroke{}
	if m.p.MinStroke > 0 {
		s.Min = m.p.MinStroke * m.p.RestLength
	}
	if m.p.MaxStroke > 0 {
		s.Max = m.p.MaxStroke * m.p.RestLength
	}
	return s
}

// Energy implements dynamo.Energetic: elastic plus kinetic energy in J.
func (m *Muscle) Energy(x dynamo.State) float64 {
	d := x[0] - m.p.RestLength
	return 0.5*m.p.Stiffness()*d*d + 0.5*m.p.Mass*x[1]*x[1]
}

// GetParams implements dynamo.Configurable.
func (m *Muscle) GetParams() map[string]float64 {
	return map[string]float64{
		"rest_length":     m.p.RestLength,
		"radius":          m.p.Radius,
		"elastic_modulus": m.p.ElasticModulus,
		"damping":         m.p.Damping,
		"mass":            m.p.Mass,
		"load":            m.p.Load,
		"pressure_amp":    m.p.PressureAmp,
		"pulse_width":     m.p.PulseWidth,
		"period":          m.p.Period,
		"min_stroke":      m.p.MinStroke,
		"max_stroke":      m.p.MaxStroke,
	}
}
