package muscle

import (
	"errors"
	"math"
	"testing"
)

func TestDefaultParamsValidate(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Fatalf("DefaultParams().Validate() = %v", err)
	}
}

func TestValidateRejectsNonPhysical(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"zero rest length", func(p *Params) { p.RestLength = 0 }},
		{"negative rest length", func(p *Params) { p.RestLength = -0.3 }},
		{"zero radius", func(p *Params) { p.Radius = 0 }},
		{"zero modulus", func(p *Params) { p.ElasticModulus = 0 }},
		{"negative damping", func(p *Params) { p.Damping = -1 }},
		{"zero mass", func(p *Params) { p.Mass = 0 }},
		{"negative pressure", func(p *Params) { p.PressureAmp = -1e5 }},
		{"zero pulse width", func(p *Params) { p.PulseWidth = 0 }},
		{"zero period", func(p *Params) { p.Period = 0 }},
		{"pulse wider than period", func(p *Params) { p.PulseWidth = 6.0 }},
		{"nan rest length", func(p *Params) { p.RestLength = math.NaN() }},
		{"inverted stroke band", func(p *Params) { p.MinStroke, p.MaxStroke = 1.1, 0.6 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			err := p.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !errors.Is(err, ErrNonPhysical) {
				t.Errorf("error = %v, want ErrNonPhysical", err)
			}
		})
	}
}

func TestStiffness(t *testing.T) {
	p := DefaultParams()
	// k = E*A0/L0 = 1e6 * pi*1e-4 / 0.3
	want := 1e6 * math.Pi * 1e-4 / 0.3
	if got := p.Stiffness(); math.Abs(got-want) > 1e-9 {
		t.Errorf("Stiffness() = %g, want %g", got, want)
	}
}

func TestArea0(t *testing.T) {
	p := DefaultParams()
	want := math.Pi * 1e-4
	if got := p.Area0(); math.Abs(got-want) > 1e-18 {
		t.Errorf("Area0() = %g, want %g", got, want)
	}
}

func TestEffectiveAreaConservesVolume(t *testing.T) {
	p := DefaultParams()
	v0 := p.Volume0()
	for _, l := range []float64{0.18, 0.24, 0.30, 0.33, 0.60} {
		if got := p.EffectiveArea(l) * l; math.Abs(got-v0)/v0 > 1e-12 {
			t.Errorf("A(%g)*l = %g, want V0 = %g", l, got, v0)
		}
	}
}

func TestEffectiveAreaGrowsWhenShorter(t *testing.T) {
	p := DefaultParams()
	if p.EffectiveArea(0.18) <= p.EffectiveArea(0.30) {
		t.Error("effective area should grow as the muscle shortens")
	}
}

func TestStrokeDisabledByZero(t *testing.T) {
	p := DefaultParams()
	p.MinStroke, p.MaxStroke = 0, 0
	if err := p.Validate(); err != nil {
		t.Errorf("Validate() with disabled stroke band = %v", err)
	}
}
